package types_test

import (
	"errors"
	"testing"

	"github.com/chek-project/chek-kma/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestParseMaturityCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    types.MaturityCategory
		wantErr bool
	}{
		{"Technology", types.MaturityCategoryTechnology, false},
		{"organisation", types.MaturityCategoryOrganisation, false},
		{"Organization", types.MaturityCategoryOrganisation, false},
		{" Information ", types.MaturityCategoryInformation, false},
		{"PROCESS", types.MaturityCategoryProcess, false},
		{"", "", true},
		{"Policy", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := types.ParseMaturityCategory(tt.input)
			if tt.wantErr {
				gt.Error(t, err).Is(types.ErrUnknownCategory)
				return
			}
			gt.NoError(t, err).Required()
			gt.V(t, got).Equal(tt.want)
		})
	}
}

func TestAllMaturityCategories(t *testing.T) {
	all := types.AllMaturityCategories()
	gt.A(t, all).Length(4)
	for _, c := range all {
		gt.Bool(t, c.IsValid()).True()
	}
	gt.Bool(t, types.MaturityCategory("Organization").IsValid()).False()
}

func TestMaturityCategory_EndpointName(t *testing.T) {
	gt.V(t, types.MaturityCategoryTechnology.EndpointName()).Equal("technology")
	gt.V(t, types.MaturityCategoryOrganisation.EndpointName()).Equal("organisation")
	gt.V(t, types.MaturityCategoryInformation.EndpointName()).Equal("information")
	gt.V(t, types.MaturityCategoryProcess.EndpointName()).Equal("process")
}

func TestLevel_Validate(t *testing.T) {
	for l := types.MinLevel; l <= types.MaxLevel; l++ {
		gt.NoError(t, l.Validate())
	}
	gt.Bool(t, errors.Is(types.Level(-1).Validate(), types.ErrInvalidLevel)).True()
	gt.Bool(t, errors.Is(types.Level(6).Validate(), types.ErrInvalidLevel)).True()
}

func TestParseProjectID(t *testing.T) {
	id, err := types.ParseProjectID("42")
	gt.NoError(t, err).Required()
	gt.V(t, id).Equal(types.ProjectID(42))
	gt.V(t, id.String()).Equal("42")

	_, err = types.ParseProjectID("abc")
	gt.Error(t, err)

	_, err = types.ParseProjectID("0")
	gt.Error(t, err)
}

func TestSessionID(t *testing.T) {
	id := types.NewSessionID()
	gt.Bool(t, id.IsValid()).True()
	gt.V(t, id).NotEqual(types.NewSessionID())
	gt.Bool(t, types.SessionID("not-a-uuid").IsValid()).False()
}
