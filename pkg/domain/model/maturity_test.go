package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/chek-project/chek-kma/pkg/domain/model"
	"github.com/chek-project/chek-kma/pkg/domain/types"
)

func levelPtr(l int) *types.Level {
	v := types.Level(l)
	return &v
}

func TestMaturityData_Summaries(t *testing.T) {
	data := model.NewMaturityData()
	data[types.MaturityCategoryOrganisation] = []model.AnsweredItem{
		{Label: "Internal staff", Level: levelPtr(3), Benchmark: levelPtr(2)},
		{Label: "Unknown", Level: levelPtr(1)},
	}

	summaries := data.Summaries()
	gt.A(t, summaries).Length(4)
	gt.V(t, summaries[0].Category).Equal(types.MaturityCategoryTechnology)
	gt.V(t, summaries[0].Answered).Equal(0)
	gt.Value(t, summaries[0].MeanLevel).Nil()

	org := summaries[1]
	gt.V(t, org.Category).Equal(types.MaturityCategoryOrganisation)
	gt.V(t, org.Answered).Equal(2)
	gt.V(t, org.Matched).Equal(1)
	gt.V(t, *org.MeanLevel).Equal(2.0)
	gt.V(t, *org.MeanBenchmark).Equal(2.0)
}

func TestMaturityData_MarshalJSON(t *testing.T) {
	data := model.MaturityData{types.MaturityCategoryProcess: nil}
	raw, err := json.Marshal(data)
	gt.NoError(t, err).Required()
	gt.V(t, string(raw)).Equal(`{"Process":[]}`)
}

func TestMaturityData_Clone(t *testing.T) {
	data := model.NewMaturityData()
	data[types.MaturityCategoryProcess] = []model.AnsweredItem{{Label: "Transparency", Benchmark: levelPtr(4)}}

	clone := data.Clone()
	*clone[types.MaturityCategoryProcess][0].Benchmark = 1
	gt.V(t, *data[types.MaturityCategoryProcess][0].Benchmark).Equal(types.Level(4))
}

func TestMaturityLoadResult_Err(t *testing.T) {
	result := &model.MaturityLoadResult{
		Data:     model.NewMaturityData(),
		Failures: map[types.MaturityCategory]error{},
	}
	gt.NoError(t, result.Err())

	errA := errors.New("connection refused")
	errB := errors.New("status 500")
	result.Failures[types.MaturityCategoryProcess] = errB
	result.Failures[types.MaturityCategoryTechnology] = errA

	gt.A(t, result.Failed()).Length(2)
	gt.V(t, result.Failed()[0]).Equal(types.MaturityCategoryTechnology)
	gt.V(t, result.Failed()[1]).Equal(types.MaturityCategoryProcess)

	err := result.Err()
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, errA)).True()
	gt.Bool(t, errors.Is(err, errB)).True()
}
