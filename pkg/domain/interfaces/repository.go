package interfaces

import (
	"github.com/chek-project/chek-kma/pkg/domain/model"
	"github.com/chek-project/chek-kma/pkg/domain/types"
)

// MaturityState holds the state owned by one maturity store.
// Implementations return copies so callers cannot mutate stored data.
type MaturityState interface {
	// Projects returns the loaded projects, or nil when none are loaded
	Projects() []model.Project

	// SetProjects replaces the project list. nil marks projects as absent.
	SetProjects(projects []model.Project)

	// MaturityData returns the committed data for a project
	MaturityData(projectID types.ProjectID) (model.MaturityData, bool)

	// SetMaturityData replaces the data of a project in one step
	SetMaturityData(projectID types.ProjectID, data model.MaturityData)

	// ProjectIDs lists projects with committed maturity data
	ProjectIDs() []types.ProjectID

	// Reset drops all state
	Reset()
}

// SessionStorage is a per-session string key/value store
type SessionStorage interface {
	GetItem(key string) (string, bool)
	SetItem(key, value string)
	RemoveItem(key string)
	Clear()
}
