package domain

import (
	"context"
)

// ToolHandler processes requests for one ClickUp resource family.
// Each family (checklists, task relationships) has its own handler
// that implements this interface.
type ToolHandler interface {
	// Handle processes an MCP tool call request.
	// Returns the tool response or an error if processing fails.
	Handle(ctx context.Context, req *ToolRequest) (*ToolResponse, error)

	// ListTools returns available tools for this handler.
	// Each tool represents a specific operation (e.g., create_checklist,
	// add_task_dependency) and corresponds 1:1 to one client method.
	ListTools() []ToolDefinition

	// HandlerName returns the identifier for this handler.
	// This is used for logging and registry diagnostics.
	HandlerName() string
}
