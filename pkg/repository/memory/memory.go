package memory

import (
	"slices"
	"sync"

	"github.com/chek-project/chek-kma/pkg/domain/interfaces"
	"github.com/chek-project/chek-kma/pkg/domain/model"
	"github.com/chek-project/chek-kma/pkg/domain/types"
)

// MaturityState is the in-memory state of one maturity store
type MaturityState struct {
	mu           sync.RWMutex
	projects     []model.Project
	maturityData map[types.ProjectID]model.MaturityData
}

var _ interfaces.MaturityState = &MaturityState{}

func New() *MaturityState {
	return &MaturityState{
		maturityData: make(map[types.ProjectID]model.MaturityData),
	}
}

func (m *MaturityState) Projects() []model.Project {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneProjects(m.projects)
}

func (m *MaturityState) SetProjects(projects []model.Project) {
	copied := cloneProjects(projects)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects = copied
}

func (m *MaturityState) MaturityData(projectID types.ProjectID) (model.MaturityData, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.maturityData[projectID]
	if !ok {
		return nil, false
	}
	return data.Clone(), true
}

func (m *MaturityState) SetMaturityData(projectID types.ProjectID, data model.MaturityData) {
	copied := data.Clone()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.maturityData[projectID] = copied
}

func (m *MaturityState) ProjectIDs() []types.ProjectID {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]types.ProjectID, 0, len(m.maturityData))
	for id := range m.maturityData {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (m *MaturityState) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects = nil
	m.maturityData = make(map[types.ProjectID]model.MaturityData)
}

func cloneProjects(projects []model.Project) []model.Project {
	if projects == nil {
		return nil
	}
	out := make([]model.Project, len(projects))
	for i, p := range projects {
		out[i] = p.Clone()
	}
	return out
}
