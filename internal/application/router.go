package application

import (
	"context"
	"fmt"

	"clickup-mcp-server/internal/domain"
)

// RequestRouter dispatches MCP tool requests to the appropriate ToolHandler.
// It builds a name-indexed registry from each handler's advertised tool
// definitions at construction time; the tool names in this catalog have no
// uniform prefix (create_checklist, add_task_dependency), so routing is by
// exact name rather than by prefix.
type RequestRouter struct {
	byName   map[string]domain.ToolHandler
	handlers map[string]domain.ToolHandler
	tools    []domain.ToolDefinition
}

// NewRequestRouter creates a new RequestRouter with the provided handlers.
// Each handler's ListTools() output is indexed by tool name; a duplicate
// tool name across handlers is a wiring bug and is rejected here, before
// the server ever advertises its capabilities.
func NewRequestRouter(handlers ...domain.ToolHandler) (*RequestRouter, error) {
	router := &RequestRouter{
		byName:   make(map[string]domain.ToolHandler),
		handlers: make(map[string]domain.ToolHandler),
	}

	for _, handler := range handlers {
		router.handlers[handler.HandlerName()] = handler

		for _, tool := range handler.ListTools() {
			if existing, dup := router.byName[tool.Name]; dup {
				return nil, fmt.Errorf("duplicate tool name %q registered by handlers %q and %q",
					tool.Name, existing.HandlerName(), handler.HandlerName())
			}
			router.byName[tool.Name] = handler
			router.tools = append(router.tools, tool)
		}
	}

	return router, nil
}

// Route dispatches a tool request to the handler that advertised the tool.
// An unknown tool name fails immediately, naming the offending identifier;
// no handler is invoked and no network call is made.
func (r *RequestRouter) Route(ctx context.Context, req *domain.ToolRequest) (*domain.ToolResponse, error) {
	handler, exists := r.byName[req.Name]
	if !exists {
		return nil, &domain.Error{
			Code:    domain.MethodNotFound,
			Message: fmt.Sprintf("unknown tool: %s", req.Name),
		}
	}

	return handler.Handle(ctx, req)
}

// ListAllTools returns the tool definitions from all registered handlers
// in registration order. This is used for MCP tool discovery (tools/list).
func (r *RequestRouter) ListAllTools() []domain.ToolDefinition {
	tools := make([]domain.ToolDefinition, len(r.tools))
	copy(tools, r.tools)
	return tools
}

// GetHandler returns the handler registered under a family name.
// This is useful for testing and debugging.
func (r *RequestRouter) GetHandler(handlerName string) (domain.ToolHandler, bool) {
	handler, exists := r.handlers[handlerName]
	return handler, exists
}
