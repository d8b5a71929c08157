package interfaces

import (
	"context"

	"github.com/chek-project/chek-kma/pkg/domain/model"
	"github.com/chek-project/chek-kma/pkg/domain/types"
)

// MaturityAPI is the backend serving projects and self-reported maturity entries
type MaturityAPI interface {
	// ListProjects fetches the projects visible to the current bearer token
	ListProjects(ctx context.Context) ([]model.Project, error)

	// GetMaturityEntries fetches the answered items of one category for a project
	GetMaturityEntries(ctx context.Context, category types.MaturityCategory, projectID types.ProjectID) ([]model.AnsweredItem, error)
}

// TokenSource yields the bearer token. It is consulted on every request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
