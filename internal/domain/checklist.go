package domain

import (
	"encoding/json"
)

// Checklist represents a ClickUp task checklist.
type Checklist struct {
	ID         string          `json:"id"`
	TaskID     string          `json:"task_id,omitempty"`
	Name       string          `json:"name"`
	Orderindex json.RawMessage `json:"orderindex,omitempty"`
	Resolved   int             `json:"resolved"`
	Unresolved int             `json:"unresolved"`
	Items      []ChecklistItem `json:"items"`
}

// ChecklistItem represents a single item inside a checklist.
// Parent is a pointer because the API reports top-level items with an
// explicit null parent.
type ChecklistItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Orderindex  json.RawMessage `json:"orderindex,omitempty"`
	Assignee    *User           `json:"assignee"`
	Resolved    bool            `json:"resolved"`
	Parent      *string         `json:"parent"`
	DateCreated string          `json:"date_created,omitempty"`
	Children    []ChecklistItem `json:"children,omitempty"`
}

// ChecklistEnvelope is the wrapper the API returns around checklist
// mutations: {"checklist": {...}}.
type ChecklistEnvelope struct {
	Checklist Checklist `json:"checklist"`
}

// ChecklistCreate is the request body for creating a checklist on a task.
type ChecklistCreate struct {
	Name string `json:"name"`
}

// ChecklistEdit describes an update to an existing checklist.
// Position is a pointer so that position zero can be transmitted.
type ChecklistEdit struct {
	Name     string
	Position *int
}

// BodyMap builds the JSON body for the edit request. Only supplied
// fields appear in the body.
func (e *ChecklistEdit) BodyMap() map[string]interface{} {
	body := make(map[string]interface{})
	if e.Name != "" {
		body["name"] = e.Name
	}
	if e.Position != nil {
		body["position"] = *e.Position
	}
	return body
}

// ChecklistItemCreate is the request body for adding an item to a
// checklist. Assignee is a pointer so that it is omitted when not given.
type ChecklistItemCreate struct {
	Name     string `json:"name"`
	Assignee *int   `json:"assignee,omitempty"`
}

// ChecklistItemEdit describes an update to a checklist item.
// Assignee and Parent are tri-state: unset leaves the field unchanged,
// explicit null clears it (unassign / move to top level), and a value
// sets it.
type ChecklistItemEdit struct {
	Name     string
	Resolved *bool
	Assignee Optional
	Parent   Optional
}

// BodyMap builds the JSON body for the item edit request, preserving
// the absent / null / value distinction for the tri-state fields.
func (e *ChecklistItemEdit) BodyMap() map[string]interface{} {
	body := make(map[string]interface{})
	if e.Name != "" {
		body["name"] = e.Name
	}
	if e.Resolved != nil {
		body["resolved"] = *e.Resolved
	}
	e.Assignee.Apply(body, "assignee")
	e.Parent.Apply(body, "parent")
	return body
}
