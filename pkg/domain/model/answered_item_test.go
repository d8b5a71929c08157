package model_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/chek-project/chek-kma/pkg/domain/model"
	"github.com/chek-project/chek-kma/pkg/domain/types"
)

func TestAnsweredItem_UnmarshalJSON(t *testing.T) {
	t.Run("keeps unknown fields", func(t *testing.T) {
		var item model.AnsweredItem
		err := json.Unmarshal([]byte(`{"label":"Internal staff","level":3,"justification":"ok","extra":{"a":1},"benchmark":5}`), &item)
		gt.NoError(t, err).Required()

		gt.V(t, item.Label).Equal("Internal staff")
		gt.V(t, item.Level).NotNil()
		gt.V(t, *item.Level).Equal(types.Level(3))
		gt.V(t, *item.Justification).Equal("ok")
		gt.Value(t, item.Benchmark).Nil()

		raw, ok := item.Field("extra")
		gt.Bool(t, ok).True()
		gt.V(t, string(raw)).Equal(`{"a":1}`)
	})

	t.Run("missing label", func(t *testing.T) {
		var item model.AnsweredItem
		err := json.Unmarshal([]byte(`{"level":3}`), &item)
		gt.Error(t, err).Is(model.ErrMissingLabel)
	})

	t.Run("label is not a string", func(t *testing.T) {
		var item model.AnsweredItem
		gt.Error(t, json.Unmarshal([]byte(`{"label":12}`), &item)).Is(model.ErrInvalidLabelType)
		gt.Error(t, json.Unmarshal([]byte(`{"label":null}`), &item)).Is(model.ErrInvalidLabelType)
	})

	t.Run("not an object", func(t *testing.T) {
		var item model.AnsweredItem
		gt.Error(t, json.Unmarshal([]byte(`"Internal staff"`), &item))
	})
}

func TestAnsweredItem_MarshalJSON(t *testing.T) {
	var item model.AnsweredItem
	gt.NoError(t, json.Unmarshal([]byte(`{"label":"Internal staff","id":7}`), &item)).Required()

	t.Run("unmatched benchmark is null", func(t *testing.T) {
		data, err := json.Marshal(item)
		gt.NoError(t, err).Required()

		var out map[string]any
		gt.NoError(t, json.Unmarshal(data, &out)).Required()
		v, ok := out["benchmark"]
		gt.Bool(t, ok).True()
		gt.Value(t, v).Nil()
		gt.V(t, out["id"]).Equal(float64(7))
		gt.V(t, out["label"]).Equal("Internal staff")
	})

	t.Run("matched benchmark is numeric", func(t *testing.T) {
		level := types.Level(2)
		enriched := item.WithBenchmark(&level)
		data, err := json.Marshal(enriched)
		gt.NoError(t, err).Required()

		var out map[string]any
		gt.NoError(t, json.Unmarshal(data, &out)).Required()
		gt.V(t, out["benchmark"]).Equal(float64(2))
		gt.V(t, out["id"]).Equal(float64(7))

		// the source item is not mutated
		gt.Value(t, item.Benchmark).Nil()
	})
}

func TestAnsweredItem_Gap(t *testing.T) {
	level := types.Level(4)
	bench := types.Level(2)

	item := model.AnsweredItem{Label: "x", Level: &level}
	_, ok := item.Gap()
	gt.Bool(t, ok).False()

	gap, ok := item.WithBenchmark(&bench).Gap()
	gt.Bool(t, ok).True()
	gt.V(t, gap).Equal(2)
}

func TestProject_JSON(t *testing.T) {
	var projects []model.Project
	err := json.Unmarshal([]byte(`[{"id":1,"name":"Bolzano","maturity_assessment":true},{"id":2,"name":null}]`), &projects)
	gt.NoError(t, err).Required()
	gt.A(t, projects).Length(2)
	gt.V(t, projects[0].ID).Equal(types.ProjectID(1))
	gt.V(t, projects[0].Name).Equal("Bolzano")
	gt.V(t, projects[1].Name).Equal("")

	data, err := json.Marshal(projects[0])
	gt.NoError(t, err).Required()
	var out map[string]any
	gt.NoError(t, json.Unmarshal(data, &out)).Required()
	gt.V(t, out["maturity_assessment"]).Equal(true)

	var p model.Project
	gt.Error(t, json.Unmarshal([]byte(`{"name":"x"}`), &p)).Is(model.ErrMissingProjectID)
	gt.Error(t, json.Unmarshal([]byte(`{"id":"x"}`), &p)).Is(model.ErrMissingProjectID)
}
