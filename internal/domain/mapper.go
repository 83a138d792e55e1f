package domain

// ResponseMapper converts API responses to MCP tool responses.
// This interface is responsible for wrapping ClickUp API responses
// into MCP-compliant format that can be consumed by MCP clients.
// It never reshapes the response payload itself.
type ResponseMapper interface {
	// MapToToolResponse converts an API response to MCP format.
	// The apiResponse parameter should be the deserialized JSON response
	// from the ClickUp API. Returns an error if serialization fails.
	MapToToolResponse(apiResponse interface{}) (*ToolResponse, error)

	// MapError converts an API error to MCP error format.
	// This method maps HTTP status codes and error responses from the
	// ClickUp API to appropriate JSON-RPC error codes and messages.
	MapError(err error) *Error
}
