package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// MaturityCategory is one of the four groupings partitioning questions and benchmark entries
type MaturityCategory string

const (
	MaturityCategoryTechnology   MaturityCategory = "Technology"
	MaturityCategoryOrganisation MaturityCategory = "Organisation"
	MaturityCategoryInformation  MaturityCategory = "Information"
	MaturityCategoryProcess      MaturityCategory = "Process"
)

// ErrUnknownCategory is returned when a string does not name a maturity category
var ErrUnknownCategory = goerr.New("unknown maturity category")

// AllMaturityCategories returns the categories in the order the backend is queried
func AllMaturityCategories() []MaturityCategory {
	return []MaturityCategory{
		MaturityCategoryTechnology,
		MaturityCategoryOrganisation,
		MaturityCategoryInformation,
		MaturityCategoryProcess,
	}
}

// IsValid checks if the category is one of the four known categories
func (c MaturityCategory) IsValid() bool {
	switch c {
	case MaturityCategoryTechnology,
		MaturityCategoryOrganisation,
		MaturityCategoryInformation,
		MaturityCategoryProcess:
		return true
	default:
		return false
	}
}

// String returns the string representation of the category
func (c MaturityCategory) String() string {
	return string(c)
}

// EndpointName returns the lower-case suffix used by get_maturity_entries_* endpoints
func (c MaturityCategory) EndpointName() string {
	return strings.ToLower(string(c))
}

// ParseMaturityCategory parses a category name case-insensitively.
// The questionnaire spelling "Organization" is accepted as Organisation.
func ParseMaturityCategory(s string) (MaturityCategory, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "technology":
		return MaturityCategoryTechnology, nil
	case "organisation", "organization":
		return MaturityCategoryOrganisation, nil
	case "information":
		return MaturityCategoryInformation, nil
	case "process":
		return MaturityCategoryProcess, nil
	default:
		return "", goerr.Wrap(ErrUnknownCategory, "failed to parse maturity category", goerr.V("category", s))
	}
}
