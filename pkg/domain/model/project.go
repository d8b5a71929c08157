package model

import (
	"bytes"
	"encoding/json"
	"maps"

	"github.com/m-mizutani/goerr/v2"

	"github.com/chek-project/chek-kma/pkg/domain/types"
)

// Project is a project descriptor returned by the backend. Only id is interpreted;
// the remaining fields are kept verbatim.
type Project struct {
	ID   types.ProjectID
	Name string

	fields map[string]json.RawMessage
}

// UnmarshalJSON parses a project descriptor; id must be an integer
func (p *Project) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return goerr.Wrap(err, "project is not a JSON object")
	}

	rawID, ok := raw["id"]
	if !ok || bytes.Equal(bytes.TrimSpace(rawID), jsonNull) {
		return goerr.Wrap(ErrMissingProjectID, "project without id")
	}
	var id int64
	if err := json.Unmarshal(rawID, &id); err != nil {
		return goerr.Wrap(ErrMissingProjectID, "project id is not an integer", goerr.V("id", string(rawID)))
	}

	project := Project{ID: types.ProjectID(id), fields: raw}
	if v, ok := raw["name"]; ok {
		// name is optional and may be null
		_ = json.Unmarshal(v, &project.Name)
	}

	*p = project
	return nil
}

// MarshalJSON writes the project back with all original fields
func (p Project) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.fields)+2)
	for k, v := range p.fields {
		out[k] = v
	}
	out["id"] = int64(p.ID)
	if p.Name != "" {
		out["name"] = p.Name
	}
	return json.Marshal(out)
}

// Clone returns a deep copy
func (p Project) Clone() Project {
	return Project{ID: p.ID, Name: p.Name, fields: maps.Clone(p.fields)}
}

// Field returns a raw backend field by name
func (p Project) Field(name string) (json.RawMessage, bool) {
	v, ok := p.fields[name]
	return v, ok
}
