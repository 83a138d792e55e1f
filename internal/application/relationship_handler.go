package application

import (
	"context"
	"fmt"

	"clickup-mcp-server/internal/domain"
	"clickup-mcp-server/internal/infrastructure"
)

// RelationshipHandler implements ToolHandler for the task-relationship
// family: dependencies, task links, tags, and comments. It routes MCP
// tool calls to the appropriate RelationshipClient methods and wraps
// responses using the ResponseMapper.
type RelationshipHandler struct {
	client *infrastructure.RelationshipClient
	mapper domain.ResponseMapper
}

// NewRelationshipHandler creates a new RelationshipHandler instance.
func NewRelationshipHandler(client *infrastructure.RelationshipClient, mapper domain.ResponseMapper) *RelationshipHandler {
	return &RelationshipHandler{
		client: client,
		mapper: mapper,
	}
}

// Tool name constants for relationship operations
const (
	ToolAddTaskDependency     = "add_task_dependency"
	ToolDeleteTaskDependency  = "delete_task_dependency"
	ToolAddTaskLink           = "add_task_link"
	ToolDeleteTaskLink        = "delete_task_link"
	ToolAddTagToTask          = "add_tag_to_task"
	ToolRemoveTagFromTask     = "remove_tag_from_task"
	ToolGetTaskComments       = "get_task_comments"
	ToolCreateTaskComment     = "create_task_comment"
	ToolGetListComments       = "get_list_comments"
	ToolCreateListComment     = "create_list_comment"
	ToolGetChatViewComments   = "get_chat_view_comments"
	ToolCreateChatViewComment = "create_chat_view_comment"
	ToolUpdateComment         = "update_comment"
	ToolDeleteComment         = "delete_comment"
	ToolGetThreadedComments   = "get_threaded_comments"
	ToolCreateThreadedComment = "create_threaded_comment"
)

// HandlerName returns the identifier for this handler.
func (h *RelationshipHandler) HandlerName() string {
	return "relationship"
}

// commentCursorSchema returns the shared schema fragment for paginated
// comment retrieval.
func commentCursorSchema() (map[string]interface{}, map[string]interface{}) {
	start := map[string]interface{}{
		"type":        "integer",
		"description": "Millisecond timestamp of the oldest comment already seen (pagination cursor, optional)",
	}
	startID := map[string]interface{}{
		"type":        "string",
		"description": "Id of the comment at the cursor position (pagination cursor, optional)",
	}
	return start, startID
}

// dependencyLinkSchema returns the shared schema fragment naming a
// dependency edge.
func dependencyLinkSchema() (map[string]interface{}, map[string]interface{}) {
	dependsOn := map[string]interface{}{
		"type":        "string",
		"description": "Id of the task this task depends on (exactly one of dependsOn/dependencyOf)",
	}
	dependencyOf := map[string]interface{}{
		"type":        "string",
		"description": "Id of the task that depends on this task (exactly one of dependsOn/dependencyOf)",
	}
	return dependsOn, dependencyOf
}

// ListTools returns available tools for relationship operations.
func (h *RelationshipHandler) ListTools() []domain.ToolDefinition {
	customTaskIDs, teamID := scopeSchemaProperties()
	start, startID := commentCursorSchema()
	dependsOn, dependencyOf := dependencyLinkSchema()

	taskIDProp := map[string]interface{}{
		"type":        "string",
		"description": "The task id",
	}
	commentTextProp := map[string]interface{}{
		"type":        "string",
		"description": "The comment text",
	}
	assigneeProp := map[string]interface{}{
		"type":        "integer",
		"description": "User id to assign the comment to (optional)",
	}
	notifyAllProp := map[string]interface{}{
		"type":        "boolean",
		"description": "Notify all task watchers (optional)",
	}

	return []domain.ToolDefinition{
		{
			Name:        ToolAddTaskDependency,
			Description: "Add a dependency edge to a task. Exactly one of dependsOn or dependencyOf must be provided.",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"taskId":        taskIDProp,
					"dependsOn":     dependsOn,
					"dependencyOf":  dependencyOf,
					"customTaskIds": customTaskIDs,
					"teamId":        teamID,
				},
				Required: []string{"taskId"},
			},
		},
		{
			Name:        ToolDeleteTaskDependency,
			Description: "Remove a dependency edge from a task. Exactly one of dependsOn or dependencyOf must be provided.",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"taskId":        taskIDProp,
					"dependsOn":     dependsOn,
					"dependencyOf":  dependencyOf,
					"customTaskIds": customTaskIDs,
					"teamId":        teamID,
				},
				Required: []string{"taskId"},
			},
		},
		{
			Name:        ToolAddTaskLink,
			Description: "Link two tasks together",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"taskId": taskIDProp,
					"linksTo": map[string]interface{}{
						"type":        "string",
						"description": "The id of the task to link to",
					},
					"customTaskIds": customTaskIDs,
					"teamId":        teamID,
				},
				Required: []string{"taskId", "linksTo"},
			},
		},
		{
			Name:        ToolDeleteTaskLink,
			Description: "Remove a link between two tasks",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"taskId": taskIDProp,
					"linksTo": map[string]interface{}{
						"type":        "string",
						"description": "The id of the linked task",
					},
					"customTaskIds": customTaskIDs,
					"teamId":        teamID,
				},
				Required: []string{"taskId", "linksTo"},
			},
		},
		{
			Name:        ToolAddTagToTask,
			Description: "Add a tag to a task",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"taskId": taskIDProp,
					"tagName": map[string]interface{}{
						"type":        "string",
						"description": "The tag name (free text)",
					},
					"customTaskIds": customTaskIDs,
					"teamId":        teamID,
				},
				Required: []string{"taskId", "tagName"},
			},
		},
		{
			Name:        ToolRemoveTagFromTask,
			Description: "Remove a tag from a task",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"taskId": taskIDProp,
					"tagName": map[string]interface{}{
						"type":        "string",
						"description": "The tag name (free text)",
					},
					"customTaskIds": customTaskIDs,
					"teamId":        teamID,
				},
				Required: []string{"taskId", "tagName"},
			},
		},
		{
			Name:        ToolGetTaskComments,
			Description: "Retrieve comments on a task (paginated via start/startId)",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"taskId":        taskIDProp,
					"start":         start,
					"startId":       startID,
					"customTaskIds": customTaskIDs,
					"teamId":        teamID,
				},
				Required: []string{"taskId"},
			},
		},
		{
			Name:        ToolCreateTaskComment,
			Description: "Create a comment on a task",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"taskId":        taskIDProp,
					"commentText":   commentTextProp,
					"assignee":      assigneeProp,
					"notifyAll":     notifyAllProp,
					"customTaskIds": customTaskIDs,
					"teamId":        teamID,
				},
				Required: []string{"taskId", "commentText"},
			},
		},
		{
			Name:        ToolGetListComments,
			Description: "Retrieve comments on a list (paginated via start/startId)",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"listId": map[string]interface{}{
						"type":        "string",
						"description": "The list id",
					},
					"start":   start,
					"startId": startID,
				},
				Required: []string{"listId"},
			},
		},
		{
			Name:        ToolCreateListComment,
			Description: "Create a comment on a list",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"listId": map[string]interface{}{
						"type":        "string",
						"description": "The list id",
					},
					"commentText": commentTextProp,
					"assignee":    assigneeProp,
					"notifyAll":   notifyAllProp,
				},
				Required: []string{"listId", "commentText"},
			},
		},
		{
			Name:        ToolGetChatViewComments,
			Description: "Retrieve comments on a chat view (paginated via start/startId)",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"viewId": map[string]interface{}{
						"type":        "string",
						"description": "The chat view id",
					},
					"start":   start,
					"startId": startID,
				},
				Required: []string{"viewId"},
			},
		},
		{
			Name:        ToolCreateChatViewComment,
			Description: "Create a comment on a chat view",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"viewId": map[string]interface{}{
						"type":        "string",
						"description": "The chat view id",
					},
					"commentText": commentTextProp,
					"notifyAll":   notifyAllProp,
				},
				Required: []string{"viewId", "commentText"},
			},
		},
		{
			Name:        ToolUpdateComment,
			Description: "Update a comment. Pass assignee: null to unassign; omitting it leaves the assignee unchanged.",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"commentId": map[string]interface{}{
						"type":        "string",
						"description": "The comment id",
					},
					"commentText": map[string]interface{}{
						"type":        "string",
						"description": "The new comment text (optional)",
					},
					"assignee": map[string]interface{}{
						"type":        "integer",
						"description": "User id to assign, or null to unassign (optional)",
					},
					"resolved": map[string]interface{}{
						"type":        "boolean",
						"description": "Whether the comment is resolved (optional)",
					},
				},
				Required: []string{"commentId"},
			},
		},
		{
			Name:        ToolDeleteComment,
			Description: "Delete a comment",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"commentId": map[string]interface{}{
						"type":        "string",
						"description": "The comment id",
					},
				},
				Required: []string{"commentId"},
			},
		},
		{
			Name:        ToolGetThreadedComments,
			Description: "Retrieve the replies to a comment",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"commentId": map[string]interface{}{
						"type":        "string",
						"description": "The parent comment id",
					},
				},
				Required: []string{"commentId"},
			},
		},
		{
			Name:        ToolCreateThreadedComment,
			Description: "Create a reply to a comment",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"commentId": map[string]interface{}{
						"type":        "string",
						"description": "The parent comment id",
					},
					"commentText": commentTextProp,
					"assignee":    assigneeProp,
					"notifyAll":   notifyAllProp,
				},
				Required: []string{"commentId", "commentText"},
			},
		},
	}
}

// Handle processes an MCP tool call request for relationship operations.
func (h *RelationshipHandler) Handle(ctx context.Context, req *domain.ToolRequest) (*domain.ToolResponse, error) {
	if req.Arguments == nil {
		req.Arguments = make(map[string]interface{})
	}

	switch req.Name {
	case ToolAddTaskDependency:
		return h.handleAddDependency(ctx, req.Arguments)
	case ToolDeleteTaskDependency:
		return h.handleDeleteDependency(ctx, req.Arguments)
	case ToolAddTaskLink:
		return h.handleTaskLink(ctx, req.Arguments, true)
	case ToolDeleteTaskLink:
		return h.handleTaskLink(ctx, req.Arguments, false)
	case ToolAddTagToTask:
		return h.handleTag(ctx, req.Arguments, true)
	case ToolRemoveTagFromTask:
		return h.handleTag(ctx, req.Arguments, false)
	case ToolGetTaskComments:
		return h.handleGetTaskComments(ctx, req.Arguments)
	case ToolCreateTaskComment:
		return h.handleCreateTaskComment(ctx, req.Arguments)
	case ToolGetListComments:
		return h.handleGetListComments(ctx, req.Arguments)
	case ToolCreateListComment:
		return h.handleCreateListComment(ctx, req.Arguments)
	case ToolGetChatViewComments:
		return h.handleGetChatViewComments(ctx, req.Arguments)
	case ToolCreateChatViewComment:
		return h.handleCreateChatViewComment(ctx, req.Arguments)
	case ToolUpdateComment:
		return h.handleUpdateComment(ctx, req.Arguments)
	case ToolDeleteComment:
		return h.handleDeleteComment(ctx, req.Arguments)
	case ToolGetThreadedComments:
		return h.handleGetThreadedComments(ctx, req.Arguments)
	case ToolCreateThreadedComment:
		return h.handleCreateThreadedComment(ctx, req.Arguments)
	default:
		return nil, &domain.Error{
			Code:    domain.MethodNotFound,
			Message: fmt.Sprintf("unknown relationship tool: %s", req.Name),
		}
	}
}

// getDependencyLink extracts the dependency edge from the arguments and
// enforces the mutual-exclusion constraint: exactly one of dependsOn or
// dependencyOf must be present. Checked here, not delegated to the
// remote API, so the failure is immediate and local.
func getDependencyLink(args map[string]interface{}) (*domain.DependencyLink, error) {
	dependsOn, err := getStringParam(args, "dependsOn", false)
	if err != nil {
		return nil, err
	}
	dependencyOf, err := getStringParam(args, "dependencyOf", false)
	if err != nil {
		return nil, err
	}

	if (dependsOn == "") == (dependencyOf == "") {
		return nil, &domain.Error{
			Code:    domain.InvalidParams,
			Message: "exactly one of dependsOn or dependencyOf must be provided",
		}
	}

	return &domain.DependencyLink{
		DependsOn:    dependsOn,
		DependencyOf: dependencyOf,
	}, nil
}

// handleAddDependency handles the add_task_dependency tool call.
func (h *RelationshipHandler) handleAddDependency(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	taskID, err := getStringParam(args, "taskId", true)
	if err != nil {
		return nil, err
	}
	link, err := getDependencyLink(args)
	if err != nil {
		return nil, err
	}
	scope, err := getScopeOptions(args)
	if err != nil {
		return nil, err
	}

	result, err := h.client.AddDependency(ctx, taskID, link, scope)
	if err != nil {
		return nil, h.mapper.MapError(err)
	}

	return h.mapper.MapToToolResponse(result)
}

// handleDeleteDependency handles the delete_task_dependency tool call.
func (h *RelationshipHandler) handleDeleteDependency(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	taskID, err := getStringParam(args, "taskId", true)
	if err != nil {
		return nil, err
	}
	link, err := getDependencyLink(args)
	if err != nil {
		return nil, err
	}
	scope, err := getScopeOptions(args)
	if err != nil {
		return nil, err
	}

	result, err := h.client.DeleteDependency(ctx, taskID, link, scope)
	if err != nil {
		return nil, h.mapper.MapError(err)
	}

	return h.mapper.MapToToolResponse(result)
}

// handleTaskLink handles add_task_link and delete_task_link.
func (h *RelationshipHandler) handleTaskLink(ctx context.Context, args map[string]interface{}, add bool) (*domain.ToolResponse, error) {
	taskID, err := getStringParam(args, "taskId", true)
	if err != nil {
		return nil, err
	}
	linksTo, err := getStringParam(args, "linksTo", true)
	if err != nil {
		return nil, err
	}
	scope, err := getScopeOptions(args)
	if err != nil {
		return nil, err
	}

	var result map[string]interface{}
	if add {
		result, err = h.client.AddTaskLink(ctx, taskID, linksTo, scope)
	} else {
		result, err = h.client.DeleteTaskLink(ctx, taskID, linksTo, scope)
	}
	if err != nil {
		return nil, h.mapper.MapError(err)
	}

	return h.mapper.MapToToolResponse(result)
}

// handleTag handles add_tag_to_task and remove_tag_from_task.
func (h *RelationshipHandler) handleTag(ctx context.Context, args map[string]interface{}, add bool) (*domain.ToolResponse, error) {
	taskID, err := getStringParam(args, "taskId", true)
	if err != nil {
		return nil, err
	}
	tagName, err := getStringParam(args, "tagName", true)
	if err != nil {
		return nil, err
	}
	scope, err := getScopeOptions(args)
	if err != nil {
		return nil, err
	}

	var result map[string]interface{}
	if add {
		result, err = h.client.AddTagToTask(ctx, taskID, tagName, scope)
	} else {
		result, err = h.client.RemoveTagFromTask(ctx, taskID, tagName, scope)
	}
	if err != nil {
		return nil, h.mapper.MapError(err)
	}

	return h.mapper.MapToToolResponse(result)
}

// getCommentCreate extracts the shared comment-creation fields.
func getCommentCreate(args map[string]interface{}) (*domain.CommentCreate, error) {
	commentText, err := getStringParam(args, "commentText", true)
	if err != nil {
		return nil, err
	}
	assignee, err := getIntPtrParam(args, "assignee")
	if err != nil {
		return nil, err
	}
	notifyAll, err := getBoolPtrParam(args, "notifyAll")
	if err != nil {
		return nil, err
	}

	return &domain.CommentCreate{
		CommentText: commentText,
		Assignee:    assignee,
		NotifyAll:   notifyAll,
	}, nil
}

// handleGetTaskComments handles the get_task_comments tool call.
func (h *RelationshipHandler) handleGetTaskComments(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	taskID, err := getStringParam(args, "taskId", true)
	if err != nil {
		return nil, err
	}
	opts, err := getCommentListOptions(args)
	if err != nil {
		return nil, err
	}
	scope, err := getScopeOptions(args)
	if err != nil {
		return nil, err
	}

	page, err := h.client.GetTaskComments(ctx, taskID, opts, scope)
	if err != nil {
		return nil, h.mapper.MapError(err)
	}

	return h.mapper.MapToToolResponse(page)
}

// handleCreateTaskComment handles the create_task_comment tool call.
func (h *RelationshipHandler) handleCreateTaskComment(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	taskID, err := getStringParam(args, "taskId", true)
	if err != nil {
		return nil, err
	}
	comment, err := getCommentCreate(args)
	if err != nil {
		return nil, err
	}
	scope, err := getScopeOptions(args)
	if err != nil {
		return nil, err
	}

	result, err := h.client.CreateTaskComment(ctx, taskID, comment, scope)
	if err != nil {
		return nil, h.mapper.MapError(err)
	}

	return h.mapper.MapToToolResponse(result)
}

// handleGetListComments handles the get_list_comments tool call.
func (h *RelationshipHandler) handleGetListComments(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	listID, err := getStringParam(args, "listId", true)
	if err != nil {
		return nil, err
	}
	opts, err := getCommentListOptions(args)
	if err != nil {
		return nil, err
	}

	page, err := h.client.GetListComments(ctx, listID, opts)
	if err != nil {
		return nil, h.mapper.MapError(err)
	}

	return h.mapper.MapToToolResponse(page)
}

// handleCreateListComment handles the create_list_comment tool call.
func (h *RelationshipHandler) handleCreateListComment(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	listID, err := getStringParam(args, "listId", true)
	if err != nil {
		return nil, err
	}
	comment, err := getCommentCreate(args)
	if err != nil {
		return nil, err
	}

	result, err := h.client.CreateListComment(ctx, listID, comment)
	if err != nil {
		return nil, h.mapper.MapError(err)
	}

	return h.mapper.MapToToolResponse(result)
}

// handleGetChatViewComments handles the get_chat_view_comments tool call.
func (h *RelationshipHandler) handleGetChatViewComments(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	viewID, err := getStringParam(args, "viewId", true)
	if err != nil {
		return nil, err
	}
	opts, err := getCommentListOptions(args)
	if err != nil {
		return nil, err
	}

	page, err := h.client.GetChatViewComments(ctx, viewID, opts)
	if err != nil {
		return nil, h.mapper.MapError(err)
	}

	return h.mapper.MapToToolResponse(page)
}

// handleCreateChatViewComment handles the create_chat_view_comment tool call.
func (h *RelationshipHandler) handleCreateChatViewComment(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	viewID, err := getStringParam(args, "viewId", true)
	if err != nil {
		return nil, err
	}
	comment, err := getCommentCreate(args)
	if err != nil {
		return nil, err
	}

	result, err := h.client.CreateChatViewComment(ctx, viewID, comment)
	if err != nil {
		return nil, h.mapper.MapError(err)
	}

	return h.mapper.MapToToolResponse(result)
}

// handleUpdateComment handles the update_comment tool call.
// The assignee field is tri-state: absent leaves the assignment
// unchanged, explicit null unassigns, a value sets the assignee.
func (h *RelationshipHandler) handleUpdateComment(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	commentID, err := getStringParam(args, "commentId", true)
	if err != nil {
		return nil, err
	}
	commentText, err := getStringParam(args, "commentText", false)
	if err != nil {
		return nil, err
	}
	assignee, err := getTriStateIntParam(args, "assignee")
	if err != nil {
		return nil, err
	}
	resolved, err := getBoolPtrParam(args, "resolved")
	if err != nil {
		return nil, err
	}

	result, err := h.client.UpdateComment(ctx, commentID, &domain.CommentUpdate{
		CommentText: commentText,
		Assignee:    assignee,
		Resolved:    resolved,
	})
	if err != nil {
		return nil, h.mapper.MapError(err)
	}

	return h.mapper.MapToToolResponse(result)
}

// handleDeleteComment handles the delete_comment tool call.
func (h *RelationshipHandler) handleDeleteComment(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	commentID, err := getStringParam(args, "commentId", true)
	if err != nil {
		return nil, err
	}

	result, err := h.client.DeleteComment(ctx, commentID)
	if err != nil {
		return nil, h.mapper.MapError(err)
	}

	return h.mapper.MapToToolResponse(result)
}

// handleGetThreadedComments handles the get_threaded_comments tool call.
func (h *RelationshipHandler) handleGetThreadedComments(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	commentID, err := getStringParam(args, "commentId", true)
	if err != nil {
		return nil, err
	}

	page, err := h.client.GetThreadedComments(ctx, commentID)
	if err != nil {
		return nil, h.mapper.MapError(err)
	}

	return h.mapper.MapToToolResponse(page)
}

// handleCreateThreadedComment handles the create_threaded_comment tool call.
func (h *RelationshipHandler) handleCreateThreadedComment(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	commentID, err := getStringParam(args, "commentId", true)
	if err != nil {
		return nil, err
	}
	comment, err := getCommentCreate(args)
	if err != nil {
		return nil, err
	}

	result, err := h.client.CreateThreadedComment(ctx, commentID, comment)
	if err != nil {
		return nil, h.mapper.MapError(err)
	}

	return h.mapper.MapToToolResponse(result)
}
