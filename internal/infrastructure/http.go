package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"clickup-mcp-server/internal/domain"
)

// newJSONRequest builds an HTTP request with an optional JSON body.
// The endpoint must be fully composed (path and query) by the caller.
func newJSONRequest(ctx context.Context, method, endpoint string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	return req, nil
}

// checkStatus verifies the response carries a success status code.
// On failure it drains the body and returns a domain.HTTPError carrying
// the raw upstream payload, uninterpreted.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(resp.Body)
	return domain.NewHTTPError(resp.StatusCode, http.StatusText(resp.StatusCode), string(body))
}

// decodeJSON decodes the response body into out. An empty body decodes
// to the zero value, since several ClickUp mutation endpoints answer
// with no payload at all.
func decodeJSON(resp *http.Response, out interface{}) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// applyScope adds the custom-task-id qualifiers to a query parameter set.
// When the flag is set the scope id is mandatory: the caller-supplied
// team id wins, otherwise the configured default is substituted. When the
// flag is unset neither parameter appears.
func applyScope(params url.Values, scope *domain.ScopeOptions, defaultTeamID string) {
	if scope == nil || !scope.UseCustomTaskIDs {
		return
	}

	teamID := scope.TeamID
	if teamID == "" {
		teamID = defaultTeamID
	}

	params.Set("custom_task_ids", "true")
	params.Set("team_id", teamID)
}

// withQuery appends encoded query parameters to an endpoint when any
// are present.
func withQuery(endpoint string, params url.Values) string {
	if len(params) == 0 {
		return endpoint
	}
	return endpoint + "?" + params.Encode()
}
