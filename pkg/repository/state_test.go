package repository_test

import (
	"sync"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/chek-project/chek-kma/pkg/domain/interfaces"
	"github.com/chek-project/chek-kma/pkg/domain/model"
	"github.com/chek-project/chek-kma/pkg/domain/types"
	"github.com/chek-project/chek-kma/pkg/repository/memory"
)

func runMaturityStateTest(t *testing.T, newState func(t *testing.T) interfaces.MaturityState) {
	t.Helper()

	t.Run("projects start absent", func(t *testing.T) {
		state := newState(t)
		gt.Bool(t, state.Projects() == nil).True()
	})

	t.Run("SetProjects replaces and nil clears", func(t *testing.T) {
		state := newState(t)
		state.SetProjects([]model.Project{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}})
		gt.A(t, state.Projects()).Length(2)

		state.SetProjects([]model.Project{{ID: 3}})
		gt.A(t, state.Projects()).Length(1)
		gt.V(t, state.Projects()[0].ID).Equal(types.ProjectID(3))

		state.SetProjects(nil)
		gt.Bool(t, state.Projects() == nil).True()
	})

	t.Run("empty project list is not absent", func(t *testing.T) {
		state := newState(t)
		state.SetProjects([]model.Project{})
		gt.Bool(t, state.Projects() != nil).True()
		gt.A(t, state.Projects()).Length(0)
	})

	t.Run("maturity data is replaced, never merged", func(t *testing.T) {
		state := newState(t)
		first := model.NewMaturityData()
		first[types.MaturityCategoryProcess] = []model.AnsweredItem{{Label: "Transparency"}}
		state.SetMaturityData(7, first)

		second := model.MaturityData{types.MaturityCategoryTechnology: {{Label: "Communication system"}}}
		state.SetMaturityData(7, second)

		got, ok := state.MaturityData(7)
		gt.Bool(t, ok).True()
		gt.V(t, len(got)).Equal(1)
		_, hasProcess := got[types.MaturityCategoryProcess]
		gt.Bool(t, hasProcess).False()
	})

	t.Run("returned data is a copy", func(t *testing.T) {
		state := newState(t)
		data := model.NewMaturityData()
		data[types.MaturityCategoryProcess] = []model.AnsweredItem{{Label: "Transparency"}}
		state.SetMaturityData(1, data)

		data[types.MaturityCategoryProcess][0].Label = "mutated"
		got, _ := state.MaturityData(1)
		gt.V(t, got[types.MaturityCategoryProcess][0].Label).Equal("Transparency")

		got[types.MaturityCategoryProcess][0].Label = "mutated again"
		again, _ := state.MaturityData(1)
		gt.V(t, again[types.MaturityCategoryProcess][0].Label).Equal("Transparency")
	})

	t.Run("unknown project", func(t *testing.T) {
		state := newState(t)
		_, ok := state.MaturityData(99)
		gt.Bool(t, ok).False()
	})

	t.Run("ProjectIDs and Reset", func(t *testing.T) {
		state := newState(t)
		state.SetMaturityData(3, model.NewMaturityData())
		state.SetMaturityData(1, model.NewMaturityData())
		state.SetProjects([]model.Project{{ID: 1}})

		gt.V(t, state.ProjectIDs()).Equal([]types.ProjectID{1, 3})

		state.Reset()
		gt.A(t, state.ProjectIDs()).Length(0)
		gt.Bool(t, state.Projects() == nil).True()
	})

	t.Run("concurrent writers", func(t *testing.T) {
		state := newState(t)
		var wg sync.WaitGroup
		for i := 1; i <= 20; i++ {
			wg.Add(1)
			go func(id types.ProjectID) {
				defer wg.Done()
				state.SetMaturityData(id, model.NewMaturityData())
				state.SetProjects([]model.Project{{ID: id}})
				_ = state.Projects()
			}(types.ProjectID(i))
		}
		wg.Wait()
		gt.A(t, state.ProjectIDs()).Length(20)
	})
}

func TestMemoryMaturityState(t *testing.T) {
	runMaturityStateTest(t, func(t *testing.T) interfaces.MaturityState {
		return memory.New()
	})
}

func TestMemorySessionStorage(t *testing.T) {
	s := memory.NewSessionStorage()

	_, ok := s.GetItem("chek_access_token")
	gt.Bool(t, ok).False()

	s.SetItem("chek_access_token", "abc")
	v, ok := s.GetItem("chek_access_token")
	gt.Bool(t, ok).True()
	gt.V(t, v).Equal("abc")

	s.SetItem("other", "x")
	s.RemoveItem("chek_access_token")
	_, ok = s.GetItem("chek_access_token")
	gt.Bool(t, ok).False()

	s.Clear()
	_, ok = s.GetItem("other")
	gt.Bool(t, ok).False()
}
