package infrastructure

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"clickup-mcp-server/internal/domain"
)

// ChecklistClient handles the ClickUp checklist API family.
// It implements the ClickUpClient interface and provides one method per
// checklist operation exposed by the MCP server. Each method performs
// exactly one HTTP round trip and returns the decoded response body or
// the upstream failure.
type ChecklistClient struct {
	baseURL    string
	teamID     string
	httpClient *http.Client
}

// NewChecklistClient creates a new checklist API client.
// The baseURL should be the API root (e.g., "https://api.clickup.com/api/v2").
// The teamID is the default scope id substituted when a caller requests
// custom task ids without naming a team. The httpClient should be an
// authenticated client from the AuthenticationManager.
func NewChecklistClient(baseURL, teamID string, httpClient *http.Client) *ChecklistClient {
	return &ChecklistClient{
		baseURL:    baseURL,
		teamID:     teamID,
		httpClient: httpClient,
	}
}

// BaseURL returns the configured API base URL.
func (c *ChecklistClient) BaseURL() string {
	return c.baseURL
}

// Do executes an HTTP request with common headers set.
// This method is part of the ClickUpClient interface.
func (c *ChecklistClient) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// CreateChecklist creates a checklist on a task.
// POST /task/{task_id}/checklist
func (c *ChecklistClient) CreateChecklist(ctx context.Context, taskID string, create *domain.ChecklistCreate, scope *domain.ScopeOptions) (*domain.ChecklistEnvelope, error) {
	params := url.Values{}
	applyScope(params, scope, c.teamID)
	endpoint := withQuery(fmt.Sprintf("%s/task/%s/checklist", c.baseURL, taskID), params)

	req, err := newJSONRequest(ctx, http.MethodPost, endpoint, create)
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

	var envelope domain.ChecklistEnvelope
	if err := decodeJSON(resp, &envelope); err != nil {
		return nil, err
	}

	return &envelope, nil
}

// EditChecklist renames or repositions an existing checklist.
// PUT /checklist/{checklist_id}
func (c *ChecklistClient) EditChecklist(ctx context.Context, checklistID string, edit *domain.ChecklistEdit) (map[string]interface{}, error) {
	endpoint := fmt.Sprintf("%s/checklist/%s", c.baseURL, checklistID)

	req, err := newJSONRequest(ctx, http.MethodPut, endpoint, edit.BodyMap())
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

// DeleteChecklist deletes a checklist.
// DELETE /checklist/{checklist_id}
func (c *ChecklistClient) DeleteChecklist(ctx context.Context, checklistID string) (map[string]interface{}, error) {
	endpoint := fmt.Sprintf("%s/checklist/%s", c.baseURL, checklistID)

	req, err := newJSONRequest(ctx, http.MethodDelete, endpoint, nil)
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

// CreateChecklistItem adds an item to a checklist.
// POST /checklist/{checklist_id}/checklist_item
func (c *ChecklistClient) CreateChecklistItem(ctx context.Context, checklistID string, item *domain.ChecklistItemCreate) (*domain.ChecklistEnvelope, error) {
	endpoint := fmt.Sprintf("%s/checklist/%s/checklist_item", c.baseURL, checklistID)

	req, err := newJSONRequest(ctx, http.MethodPost, endpoint, item)
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

	var envelope domain.ChecklistEnvelope
	if err := decodeJSON(resp, &envelope); err != nil {
		return nil, err
	}

	return &envelope, nil
}

// EditChecklistItem updates an item. The edit's tri-state fields allow
// explicit null to unassign the item or move it to the top level.
// PUT /checklist/{checklist_id}/checklist_item/{checklist_item_id}
func (c *ChecklistClient) EditChecklistItem(ctx context.Context, checklistID, itemID string, edit *domain.ChecklistItemEdit) (*domain.ChecklistEnvelope, error) {
	endpoint := fmt.Sprintf("%s/checklist/%s/checklist_item/%s", c.baseURL, checklistID, itemID)

	req, err := newJSONRequest(ctx, http.MethodPut, endpoint, edit.BodyMap())
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

	var envelope domain.ChecklistEnvelope
	if err := decodeJSON(resp, &envelope); err != nil {
		return nil, err
	}

	return &envelope, nil
}

// DeleteChecklistItem removes an item from a checklist.
// DELETE /checklist/{checklist_id}/checklist_item/{checklist_item_id}
func (c *ChecklistClient) DeleteChecklistItem(ctx context.Context, checklistID, itemID string) (map[string]interface{}, error) {
	endpoint := fmt.Sprintf("%s/checklist/%s/checklist_item/%s", c.baseURL, checklistID, itemID)

	req, err := newJSONRequest(ctx, http.MethodDelete, endpoint, nil)
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
