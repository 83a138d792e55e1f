package domain

import (
	"net/http"
)

// ClickUpClient defines common operations for all resource-family clients.
// Each family client (checklists, relationships) implements this interface
// to provide authenticated API access against the shared base URL.
type ClickUpClient interface {
	// BaseURL returns the configured API base URL (e.g.,
	// "https://api.clickup.com/api/v2").
	BaseURL() string

	// Do executes an HTTP request with authentication.
	// The request should already be constructed with the appropriate
	// method, path, query parameters, and body. This method adds common
	// headers and executes the request.
	Do(req *http.Request) (*http.Response, error)
}
