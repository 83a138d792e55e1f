package infrastructure

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"clickup-mcp-server/internal/domain"
)

// RelationshipClient handles the ClickUp task-relationship API family:
// dependencies, task links, tags, and comments. It implements the
// ClickUpClient interface with one method per operation; each method
// performs exactly one HTTP round trip.
type RelationshipClient struct {
	baseURL    string
	teamID     string
	httpClient *http.Client
}

// NewRelationshipClient creates a new relationship API client.
// The teamID is the default scope id substituted when a caller requests
// custom task ids without naming a team.
func NewRelationshipClient(baseURL, teamID string, httpClient *http.Client) *RelationshipClient {
	return &RelationshipClient{
		baseURL:    baseURL,
		teamID:     teamID,
		httpClient: httpClient,
	}
}

// BaseURL returns the configured API base URL.
func (c *RelationshipClient) BaseURL() string {
	return c.baseURL
}

// Do executes an HTTP request with common headers set.
// This method is part of the ClickUpClient interface.
func (c *RelationshipClient) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// doJSON executes one request and decodes the body into a generic map,
// passing the upstream payload through unchanged. Used by the mutation
// endpoints, which answer with small or empty bodies.
func (c *RelationshipClient) doJSON(ctx context.Context, method, endpoint string, body interface{}) (map[string]interface{}, error) {
	req, err := newJSONRequest(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	result := make(map[string]interface{})
	if err := decodeJSON(resp, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// getComments executes one comment-listing request against the given
// endpoint with the pagination cursor applied.
func (c *RelationshipClient) getComments(ctx context.Context, endpoint string, opts *domain.CommentListOptions, scope *domain.ScopeOptions) (*domain.CommentPage, error) {
	params := url.Values{}
	if opts != nil {
		if opts.Start != nil {
			params.Set("start", strconv.FormatInt(*opts.Start, 10))
		}
		if opts.StartID != "" {
			params.Set("start_id", opts.StartID)
		}
	}
	applyScope(params, scope, c.teamID)

	req, err := newJSONRequest(ctx, http.MethodGet, withQuery(endpoint, params), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var page domain.CommentPage
	if err := decodeJSON(resp, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// AddDependency creates a dependency edge for a task. The link must name
// exactly one of depends_on or dependency_of (validated by the handler).
// POST /task/{task_id}/dependency
func (c *RelationshipClient) AddDependency(ctx context.Context, taskID string, link *domain.DependencyLink, scope *domain.ScopeOptions) (map[string]interface{}, error) {
	params := url.Values{}
	applyScope(params, scope, c.teamID)
	endpoint := withQuery(fmt.Sprintf("%s/task/%s/dependency", c.baseURL, taskID), params)

	return c.doJSON(ctx, http.MethodPost, endpoint, link)
}

// DeleteDependency removes a dependency edge. The edge is named in query
// parameters rather than the body.
// DELETE /task/{task_id}/dependency
func (c *RelationshipClient) DeleteDependency(ctx context.Context, taskID string, link *domain.DependencyLink, scope *domain.ScopeOptions) (map[string]interface{}, error) {
	params := url.Values{}
	if link.DependsOn != "" {
		params.Set("depends_on", link.DependsOn)
	}
	if link.DependencyOf != "" {
		params.Set("dependency_of", link.DependencyOf)
	}
	applyScope(params, scope, c.teamID)
	endpoint := withQuery(fmt.Sprintf("%s/task/%s/dependency", c.baseURL, taskID), params)

	return c.doJSON(ctx, http.MethodDelete, endpoint, nil)
}

// AddTaskLink links two tasks.
// POST /task/{task_id}/link/{links_to}
func (c *RelationshipClient) AddTaskLink(ctx context.Context, taskID, linksTo string, scope *domain.ScopeOptions) (map[string]interface{}, error) {
	params := url.Values{}
	applyScope(params, scope, c.teamID)
	endpoint := withQuery(fmt.Sprintf("%s/task/%s/link/%s", c.baseURL, taskID, linksTo), params)

	return c.doJSON(ctx, http.MethodPost, endpoint, nil)
}

// DeleteTaskLink removes a link between two tasks.
// DELETE /task/{task_id}/link/{links_to}
func (c *RelationshipClient) DeleteTaskLink(ctx context.Context, taskID, linksTo string, scope *domain.ScopeOptions) (map[string]interface{}, error) {
	params := url.Values{}
	applyScope(params, scope, c.teamID)
	endpoint := withQuery(fmt.Sprintf("%s/task/%s/link/%s", c.baseURL, taskID, linksTo), params)

	return c.doJSON(ctx, http.MethodDelete, endpoint, nil)
}

// AddTagToTask adds a tag to a task. The tag name is free text and is
// percent-encoded as a path segment; structural ids stay verbatim.
// POST /task/{task_id}/tag/{tag_name}
func (c *RelationshipClient) AddTagToTask(ctx context.Context, taskID, tagName string, scope *domain.ScopeOptions) (map[string]interface{}, error) {
	params := url.Values{}
	applyScope(params, scope, c.teamID)
	endpoint := withQuery(fmt.Sprintf("%s/task/%s/tag/%s", c.baseURL, taskID, url.PathEscape(tagName)), params)

	return c.doJSON(ctx, http.MethodPost, endpoint, nil)
}

// RemoveTagFromTask removes a tag from a task.
// DELETE /task/{task_id}/tag/{tag_name}
func (c *RelationshipClient) RemoveTagFromTask(ctx context.Context, taskID, tagName string, scope *domain.ScopeOptions) (map[string]interface{}, error) {
	params := url.Values{}
	applyScope(params, scope, c.teamID)
	endpoint := withQuery(fmt.Sprintf("%s/task/%s/tag/%s", c.baseURL, taskID, url.PathEscape(tagName)), params)

	return c.doJSON(ctx, http.MethodDelete, endpoint, nil)
}

// GetTaskComments retrieves comments on a task, newest first, paged by
// the start/start_id cursor.
// GET /task/{task_id}/comment
func (c *RelationshipClient) GetTaskComments(ctx context.Context, taskID string, opts *domain.CommentListOptions, scope *domain.ScopeOptions) (*domain.CommentPage, error) {
	return c.getComments(ctx, fmt.Sprintf("%s/task/%s/comment", c.baseURL, taskID), opts, scope)
}

// CreateTaskComment creates a comment on a task.
// POST /task/{task_id}/comment
func (c *RelationshipClient) CreateTaskComment(ctx context.Context, taskID string, comment *domain.CommentCreate, scope *domain.ScopeOptions) (map[string]interface{}, error) {
	params := url.Values{}
	applyScope(params, scope, c.teamID)
	endpoint := withQuery(fmt.Sprintf("%s/task/%s/comment", c.baseURL, taskID), params)

	return c.doJSON(ctx, http.MethodPost, endpoint, comment)
}

// GetListComments retrieves comments on a list.
// GET /list/{list_id}/comment
func (c *RelationshipClient) GetListComments(ctx context.Context, listID string, opts *domain.CommentListOptions) (*domain.CommentPage, error) {
	return c.getComments(ctx, fmt.Sprintf("%s/list/%s/comment", c.baseURL, listID), opts, nil)
}

// CreateListComment creates a comment on a list.
// POST /list/{list_id}/comment
func (c *RelationshipClient) CreateListComment(ctx context.Context, listID string, comment *domain.CommentCreate) (map[string]interface{}, error) {
	endpoint := fmt.Sprintf("%s/list/%s/comment", c.baseURL, listID)

	return c.doJSON(ctx, http.MethodPost, endpoint, comment)
}

// GetChatViewComments retrieves comments on a chat view.
// GET /view/{view_id}/comment
func (c *RelationshipClient) GetChatViewComments(ctx context.Context, viewID string, opts *domain.CommentListOptions) (*domain.CommentPage, error) {
	return c.getComments(ctx, fmt.Sprintf("%s/view/%s/comment", c.baseURL, viewID), opts, nil)
}

// CreateChatViewComment creates a comment on a chat view.
// POST /view/{view_id}/comment
func (c *RelationshipClient) CreateChatViewComment(ctx context.Context, viewID string, comment *domain.CommentCreate) (map[string]interface{}, error) {
	endpoint := fmt.Sprintf("%s/view/%s/comment", c.baseURL, viewID)

	return c.doJSON(ctx, http.MethodPost, endpoint, comment)
}

// UpdateComment updates a comment. The update's tri-state assignee field
// allows explicit null to unassign the comment.
// PUT /comment/{comment_id}
func (c *RelationshipClient) UpdateComment(ctx context.Context, commentID string, update *domain.CommentUpdate) (map[string]interface{}, error) {
	endpoint := fmt.Sprintf("%s/comment/%s", c.baseURL, commentID)

	return c.doJSON(ctx, http.MethodPut, endpoint, update.BodyMap())
}

// DeleteComment deletes a comment.
// DELETE /comment/{comment_id}
func (c *RelationshipClient) DeleteComment(ctx context.Context, commentID string) (map[string]interface{}, error) {
	endpoint := fmt.Sprintf("%s/comment/%s", c.baseURL, commentID)

	return c.doJSON(ctx, http.MethodDelete, endpoint, nil)
}

// GetThreadedComments retrieves the replies to a comment.
// GET /comment/{comment_id}/reply
func (c *RelationshipClient) GetThreadedComments(ctx context.Context, commentID string) (*domain.CommentPage, error) {
	return c.getComments(ctx, fmt.Sprintf("%s/comment/%s/reply", c.baseURL, commentID), nil, nil)
}

// CreateThreadedComment creates a reply to a comment.
// POST /comment/{comment_id}/reply
func (c *RelationshipClient) CreateThreadedComment(ctx context.Context, commentID string, comment *domain.CommentCreate) (map[string]interface{}, error) {
	endpoint := fmt.Sprintf("%s/comment/%s/reply", c.baseURL, commentID)

	return c.doJSON(ctx, http.MethodPost, endpoint, comment)
}
