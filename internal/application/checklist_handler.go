package application

import (
	"context"
	"fmt"

	"clickup-mcp-server/internal/domain"
	"clickup-mcp-server/internal/infrastructure"
)

// ChecklistHandler implements ToolHandler for the checklist family.
// It routes MCP tool calls to the appropriate ChecklistClient methods and
// wraps responses using the ResponseMapper.
type ChecklistHandler struct {
	client *infrastructure.ChecklistClient
	mapper domain.ResponseMapper
}

// NewChecklistHandler creates a new ChecklistHandler instance.
func NewChecklistHandler(client *infrastructure.ChecklistClient, mapper domain.ResponseMapper) *ChecklistHandler {
	return &ChecklistHandler{
		client: client,
		mapper: mapper,
	}
}

// Tool name constants for checklist operations
const (
	ToolCreateChecklist     = "create_checklist"
	ToolEditChecklist       = "edit_checklist"
	ToolDeleteChecklist     = "delete_checklist"
	ToolCreateChecklistItem = "create_checklist_item"
	ToolEditChecklistItem   = "edit_checklist_item"
	ToolDeleteChecklistItem = "delete_checklist_item"
)

// HandlerName returns the identifier for this handler.
func (h *ChecklistHandler) HandlerName() string {
	return "checklist"
}

// scopeSchemaProperties returns the shared schema fragment for tools that
// accept custom task ids. When customTaskIds is true the request always
// carries a team id: the caller's if given, otherwise the configured
// default.
func scopeSchemaProperties() (map[string]interface{}, map[string]interface{}) {
	customTaskIDs := map[string]interface{}{
		"type":        "boolean",
		"description": "Treat task ids as custom task ids. Adds the team id to the request (the configured default when teamId is not given).",
	}
	teamID := map[string]interface{}{
		"type":        "string",
		"description": "Team id qualifying custom task ids (optional; defaults to the configured team).",
	}
	return customTaskIDs, teamID
}

// ListTools returns available tools for checklist operations.
func (h *ChecklistHandler) ListTools() []domain.ToolDefinition {
	customTaskIDs, teamID := scopeSchemaProperties()

	return []domain.ToolDefinition{
		{
			Name:        ToolCreateChecklist,
			Description: "Create a checklist on a task",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"taskId": map[string]interface{}{
						"type":        "string",
						"description": "The id of the task to attach the checklist to",
					},
					"name": map[string]interface{}{
						"type":        "string",
						"description": "The checklist name",
					},
					"customTaskIds": customTaskIDs,
					"teamId":        teamID,
				},
				Required: []string{"taskId", "name"},
			},
		},
		{
			Name:        ToolEditChecklist,
			Description: "Rename or reposition an existing checklist",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"checklistId": map[string]interface{}{
						"type":        "string",
						"description": "The checklist id",
					},
					"name": map[string]interface{}{
						"type":        "string",
						"description": "The new checklist name",
					},
					"position": map[string]interface{}{
						"type":        "integer",
						"description": "Zero-based position of the checklist on the task (optional)",
					},
				},
				Required: []string{"checklistId", "name"},
			},
		},
		{
			Name:        ToolDeleteChecklist,
			Description: "Delete a checklist",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"checklistId": map[string]interface{}{
						"type":        "string",
						"description": "The checklist id",
					},
				},
				Required: []string{"checklistId"},
			},
		},
		{
			Name:        ToolCreateChecklistItem,
			Description: "Add an item to a checklist",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"checklistId": map[string]interface{}{
						"type":        "string",
						"description": "The checklist id",
					},
					"name": map[string]interface{}{
						"type":        "string",
						"description": "The item text",
					},
					"assignee": map[string]interface{}{
						"type":        "integer",
						"description": "User id to assign the item to (optional)",
					},
				},
				Required: []string{"checklistId", "name"},
			},
		},
		{
			Name:        ToolEditChecklistItem,
			Description: "Update a checklist item. Pass assignee: null to unassign, parent: null to move the item to the top level; omitting either leaves it unchanged.",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"checklistId": map[string]interface{}{
						"type":        "string",
						"description": "The checklist id",
					},
					"checklistItemId": map[string]interface{}{
						"type":        "string",
						"description": "The checklist item id",
					},
					"name": map[string]interface{}{
						"type":        "string",
						"description": "The new item text (optional)",
					},
					"resolved": map[string]interface{}{
						"type":        "boolean",
						"description": "Whether the item is resolved (optional)",
					},
					"assignee": map[string]interface{}{
						"type":        "integer",
						"description": "User id to assign, or null to unassign (optional)",
					},
					"parent": map[string]interface{}{
						"type":        "string",
						"description": "Parent item id to nest under, or null to un-nest (optional)",
					},
				},
				Required: []string{"checklistId", "checklistItemId"},
			},
		},
		{
			Name:        ToolDeleteChecklistItem,
			Description: "Delete a checklist item",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"checklistId": map[string]interface{}{
						"type":        "string",
						"description": "The checklist id",
					},
					"checklistItemId": map[string]interface{}{
						"type":        "string",
						"description": "The checklist item id",
					},
				},
				Required: []string{"checklistId", "checklistItemId"},
			},
		},
	}
}

// Handle processes an MCP tool call request for checklist operations.
func (h *ChecklistHandler) Handle(ctx context.Context, req *domain.ToolRequest) (*domain.ToolResponse, error) {
	if req.Arguments == nil {
		req.Arguments = make(map[string]interface{})
	}

	switch req.Name {
	case ToolCreateChecklist:
		return h.handleCreateChecklist(ctx, req.Arguments)
	case ToolEditChecklist:
		return h.handleEditChecklist(ctx, req.Arguments)
	case ToolDeleteChecklist:
		return h.handleDeleteChecklist(ctx, req.Arguments)
	case ToolCreateChecklistItem:
		return h.handleCreateChecklistItem(ctx, req.Arguments)
	case ToolEditChecklistItem:
		return h.handleEditChecklistItem(ctx, req.Arguments)
	case ToolDeleteChecklistItem:
		return h.handleDeleteChecklistItem(ctx, req.Arguments)
	default:
		return nil, &domain.Error{
			Code:    domain.MethodNotFound,
			Message: fmt.Sprintf("unknown checklist tool: %s", req.Name),
		}
	}
}

// handleCreateChecklist handles the create_checklist tool call.
func (h *ChecklistHandler) handleCreateChecklist(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	taskID, err := getStringParam(args, "taskId", true)
	if err != nil {
		return nil, err
	}
	name, err := getStringParam(args, "name", true)
	if err != nil {
		return nil, err
	}

	scope, err := getScopeOptions(args)
	if err != nil {
		return nil, err
	}

	envelope, err := h.client.CreateChecklist(ctx, taskID, &domain.ChecklistCreate{Name: name}, scope)
	if err != nil {
		return nil, h.mapper.MapError(err)
	}

	return h.mapper.MapToToolResponse(envelope)
}

// handleEditChecklist handles the edit_checklist tool call.
func (h *ChecklistHandler) handleEditChecklist(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	checklistID, err := getStringParam(args, "checklistId", true)
	if err != nil {
		return nil, err
	}
	name, err := getStringParam(args, "name", true)
	if err != nil {
		return nil, err
	}
	position, err := getIntPtrParam(args, "position")
	if err != nil {
		return nil, err
	}

	result, err := h.client.EditChecklist(ctx, checklistID, &domain.ChecklistEdit{
		Name:     name,
		Position: position,
	})
	if err != nil {
		return nil, h.mapper.MapError(err)
	}

	return h.mapper.MapToToolResponse(result)
}

// handleDeleteChecklist handles the delete_checklist tool call.
func (h *ChecklistHandler) handleDeleteChecklist(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	checklistID, err := getStringParam(args, "checklistId", true)
	if err != nil {
		return nil, err
	}

	result, err := h.client.DeleteChecklist(ctx, checklistID)
	if err != nil {
		return nil, h.mapper.MapError(err)
	}

	return h.mapper.MapToToolResponse(result)
}

// handleCreateChecklistItem handles the create_checklist_item tool call.
func (h *ChecklistHandler) handleCreateChecklistItem(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	checklistID, err := getStringParam(args, "checklistId", true)
	if err != nil {
		return nil, err
	}
	name, err := getStringParam(args, "name", true)
	if err != nil {
		return nil, err
	}
	assignee, err := getIntPtrParam(args, "assignee")
	if err != nil {
		return nil, err
	}

	envelope, err := h.client.CreateChecklistItem(ctx, checklistID, &domain.ChecklistItemCreate{
		Name:     name,
		Assignee: assignee,
	})
	if err != nil {
		return nil, h.mapper.MapError(err)
	}

	return h.mapper.MapToToolResponse(envelope)
}

// handleEditChecklistItem handles the edit_checklist_item tool call.
// The assignee and parent fields are tri-state: absent leaves the field
// unchanged, explicit null clears it, a value sets it.
func (h *ChecklistHandler) handleEditChecklistItem(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	checklistID, err := getStringParam(args, "checklistId", true)
	if err != nil {
		return nil, err
	}
	itemID, err := getStringParam(args, "checklistItemId", true)
	if err != nil {
		return nil, err
	}

	name, err := getStringParam(args, "name", false)
	if err != nil {
		return nil, err
	}
	resolved, err := getBoolPtrParam(args, "resolved")
	if err != nil {
		return nil, err
	}
	assignee, err := getTriStateIntParam(args, "assignee")
	if err != nil {
		return nil, err
	}
	parent, err := getTriStateStringParam(args, "parent")
	if err != nil {
		return nil, err
	}

	envelope, err := h.client.EditChecklistItem(ctx, checklistID, itemID, &domain.ChecklistItemEdit{
		Name:     name,
		Resolved: resolved,
		Assignee: assignee,
		Parent:   parent,
	})
	if err != nil {
		return nil, h.mapper.MapError(err)
	}

	return h.mapper.MapToToolResponse(envelope)
}

// handleDeleteChecklistItem handles the delete_checklist_item tool call.
func (h *ChecklistHandler) handleDeleteChecklistItem(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	checklistID, err := getStringParam(args, "checklistId", true)
	if err != nil {
		return nil, err
	}
	itemID, err := getStringParam(args, "checklistItemId", true)
	if err != nil {
		return nil, err
	}

	result, err := h.client.DeleteChecklistItem(ctx, checklistID, itemID)
	if err != nil {
		return nil, h.mapper.MapError(err)
	}

	return h.mapper.MapToToolResponse(result)
}
