package application

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"clickup-mcp-server/internal/domain"
)

// trackingToolHandler records invocations for property checks.
type trackingToolHandler struct {
	name     string
	tools    []domain.ToolDefinition
	onHandle func(ctx context.Context, req *domain.ToolRequest) (*domain.ToolResponse, error)
}

func (h *trackingToolHandler) HandlerName() string {
	return h.name
}

func (h *trackingToolHandler) ListTools() []domain.ToolDefinition {
	return h.tools
}

func (h *trackingToolHandler) Handle(ctx context.Context, req *domain.ToolRequest) (*domain.ToolResponse, error) {
	if h.onHandle != nil {
		return h.onHandle(ctx, req)
	}
	return &domain.ToolResponse{
		Content: []domain.ContentBlock{{Type: "text", Text: "ok"}},
	}, nil
}

// catalogToolNames is the full set of tool names the server advertises.
var catalogToolNames = gen.OneConstOf(
	ToolCreateChecklist, ToolEditChecklist, ToolDeleteChecklist,
	ToolCreateChecklistItem, ToolEditChecklistItem, ToolDeleteChecklistItem,
	ToolAddTaskDependency, ToolDeleteTaskDependency,
	ToolAddTaskLink, ToolDeleteTaskLink,
	ToolAddTagToTask, ToolRemoveTagFromTask,
	ToolGetTaskComments, ToolCreateTaskComment,
	ToolGetListComments, ToolCreateListComment,
	ToolGetChatViewComments, ToolCreateChatViewComment,
	ToolUpdateComment, ToolDeleteComment,
	ToolGetThreadedComments, ToolCreateThreadedComment,
)

// For any advertised tool name and argument set, routing delivers the
// request to the handler that advertised the name with the name and all
// arguments intact.
func TestRequestForwardingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("Requests reach the advertising handler with arguments preserved", prop.ForAll(
		func(toolName string, key string, value string, number int, flag bool) bool {
			arguments := map[string]interface{}{
				key:      value,
				"number": number,
				"flag":   flag,
			}

			var received *domain.ToolRequest
			handler := &trackingToolHandler{
				name: "tracking",
				tools: []domain.ToolDefinition{
					{Name: toolName, Description: "test", InputSchema: domain.JSONSchema{Type: "object"}},
				},
				onHandle: func(ctx context.Context, req *domain.ToolRequest) (*domain.ToolResponse, error) {
					received = req
					return &domain.ToolResponse{
						Content: []domain.ContentBlock{{Type: "text", Text: "ok"}},
					}, nil
				},
			}

			router, err := NewRequestRouter(handler)
			if err != nil {
				return false
			}

			_, err = router.Route(context.Background(), &domain.ToolRequest{
				Name:      toolName,
				Arguments: arguments,
			})
			if err != nil {
				return false
			}

			if received == nil || received.Name != toolName {
				return false
			}
			if len(received.Arguments) != len(arguments) {
				return false
			}
			if received.Arguments[key] != value {
				return false
			}
			return received.Arguments["number"] == number && received.Arguments["flag"] == flag
		},
		catalogToolNames,
		gen.Identifier(),
		gen.AlphaString(),
		gen.Int(),
		gen.Bool(),
	))

	properties.Property("Unregistered tool names are rejected without reaching handlers", prop.ForAll(
		func(unknownName string) bool {
			called := false
			handler := &trackingToolHandler{
				name: "tracking",
				tools: []domain.ToolDefinition{
					{Name: "known_tool", Description: "test", InputSchema: domain.JSONSchema{Type: "object"}},
				},
				onHandle: func(ctx context.Context, req *domain.ToolRequest) (*domain.ToolResponse, error) {
					called = true
					return nil, nil
				},
			}

			router, err := NewRequestRouter(handler)
			if err != nil {
				return false
			}

			_, err = router.Route(context.Background(), &domain.ToolRequest{
				Name:      "missing_" + unknownName,
				Arguments: map[string]interface{}{},
			})

			if err == nil {
				return false
			}
			rpcErr, ok := err.(*domain.Error)
			if !ok || rpcErr.Code != domain.MethodNotFound {
				return false
			}
			return !called
		},
		gen.Identifier(),
	))

	properties.TestingRun(t)
}

// For any structurally invalid JSON-RPC request, the server rejects it
// before any tool handler can run.
func TestMalformedRequestProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	newIdleServer := func() *Server {
		router, _ := NewRequestRouter()
		return NewServer(newStubTransport(), router, testConfig(), nil)
	}

	properties.Property("Invalid versions fail structural validation", prop.ForAll(
		func(version string, method string) bool {
			if version == "2.0" {
				return true
			}

			server := newIdleServer()
			err := server.validateRequest(&domain.Request{
				JSONRPC: version,
				ID:      1,
				Method:  method,
			})
			return err != nil
		},
		gen.OneConstOf("1.0", "2.1", "", "2", "jsonrpc"),
		gen.OneConstOf("initialize", "tools/list", "tools/call"),
	))

	properties.Property("Empty method fails structural validation", prop.ForAll(
		func(id int) bool {
			server := newIdleServer()
			err := server.validateRequest(&domain.Request{
				JSONRPC: "2.0",
				ID:      id,
				Method:  "",
			})
			return err != nil
		},
		gen.Int(),
	))

	properties.Property("Tool calls without a name never parse", prop.ForAll(
		func(key string, value string) bool {
			server := newIdleServer()

			_, err := server.parseToolRequest(map[string]interface{}{
				"arguments": map[string]interface{}{key: value},
			})
			if err == nil {
				return false
			}

			_, err = server.parseToolRequest(nil)
			return err != nil
		},
		gen.Identifier(),
		gen.AlphaString(),
	))

	properties.Property("Missing arguments parse to an empty map", prop.ForAll(
		func(toolName string) bool {
			server := newIdleServer()

			toolReq, err := server.parseToolRequest(map[string]interface{}{
				"name": toolName,
			})
			if err != nil {
				return false
			}
			return toolReq.Arguments != nil && len(toolReq.Arguments) == 0
		},
		catalogToolNames,
	))

	properties.TestingRun(t)
}

// For any pair of dependency directions, the request is accepted exactly
// when one and only one direction is named.
func TestDependencyDirectionProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("Exactly one direction is required", prop.ForAll(
		func(dependsOn string, dependencyOf string) bool {
			args := map[string]interface{}{}
			if dependsOn != "" {
				args["dependsOn"] = dependsOn
			}
			if dependencyOf != "" {
				args["dependencyOf"] = dependencyOf
			}

			link, err := getDependencyLink(args)

			oneDirection := (dependsOn != "") != (dependencyOf != "")
			if !oneDirection {
				if err == nil {
					return false
				}
				rpcErr, ok := err.(*domain.Error)
				return ok && rpcErr.Code == domain.InvalidParams
			}

			if err != nil {
				return false
			}
			return link.DependsOn == dependsOn && link.DependencyOf == dependencyOf
		},
		gen.OneGenOf(gen.Const(""), gen.Identifier()),
		gen.OneGenOf(gen.Const(""), gen.Identifier()),
	))

	properties.TestingRun(t)
}
