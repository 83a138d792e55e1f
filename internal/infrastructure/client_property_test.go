package infrastructure

import (
	"net/url"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"clickup-mcp-server/internal/domain"
)

// For any combination of scope flag, caller team id, and configured team
// id, the custom-task-id qualifiers appear on the request if and only if
// the flag is set, and the team id is the caller's when given, otherwise
// the configured default.
func TestScopeQualifierProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("Unset flag never emits qualifiers", prop.ForAll(
		func(callerTeam string, defaultTeam string) bool {
			params := url.Values{}
			applyScope(params, &domain.ScopeOptions{UseCustomTaskIDs: false, TeamID: callerTeam}, defaultTeam)

			if params.Get("custom_task_ids") != "" {
				return false
			}
			return params.Get("team_id") == ""
		},
		gen.AlphaString(),
		gen.Identifier(),
	))

	properties.Property("Nil scope never emits qualifiers", prop.ForAll(
		func(defaultTeam string) bool {
			params := url.Values{}
			applyScope(params, nil, defaultTeam)
			return len(params) == 0
		},
		gen.Identifier(),
	))

	properties.Property("Set flag always carries a team id", prop.ForAll(
		func(callerTeam string, defaultTeam string) bool {
			params := url.Values{}
			applyScope(params, &domain.ScopeOptions{UseCustomTaskIDs: true, TeamID: callerTeam}, defaultTeam)

			if params.Get("custom_task_ids") != "true" {
				return false
			}

			want := callerTeam
			if want == "" {
				want = defaultTeam
			}
			return params.Get("team_id") == want
		},
		gen.AlphaString(),
		gen.Identifier(),
	))

	properties.Property("Existing query parameters survive scoping", prop.ForAll(
		func(key string, value string, defaultTeam string) bool {
			if key == "custom_task_ids" || key == "team_id" {
				return true
			}

			params := url.Values{}
			params.Set(key, value)
			applyScope(params, &domain.ScopeOptions{UseCustomTaskIDs: true}, defaultTeam)

			return params.Get(key) == value
		},
		gen.Identifier(),
		gen.AlphaString(),
		gen.Identifier(),
	))

	properties.TestingRun(t)
}

// For any endpoint and parameter set, withQuery appends a query string
// exactly when parameters exist, and never mangles the endpoint itself.
func TestQueryCompositionProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("Empty parameter sets leave the endpoint untouched", prop.ForAll(
		func(endpoint string) bool {
			return withQuery(endpoint, url.Values{}) == endpoint
		},
		gen.AlphaString(),
	))

	properties.Property("Non-empty parameter sets append after the endpoint", prop.ForAll(
		func(endpoint string, key string, value string) bool {
			params := url.Values{}
			params.Set(key, value)

			composed := withQuery(endpoint, params)
			if !strings.HasPrefix(composed, endpoint+"?") {
				return false
			}

			parsed, err := url.ParseQuery(strings.TrimPrefix(composed, endpoint+"?"))
			if err != nil {
				return false
			}
			return parsed.Get(key) == value
		},
		gen.AlphaString(),
		gen.Identifier(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// For any tag name, the encoded path segment round-trips back to the
// original name, so free-text tags can never break the URL structure.
func TestTagSegmentEncodingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("Tag segments round-trip through path escaping", prop.ForAll(
		func(tagName string) bool {
			escaped := url.PathEscape(tagName)

			// The escaped form must be a single path segment.
			if strings.Contains(escaped, "/") {
				return false
			}

			decoded, err := url.PathUnescape(escaped)
			if err != nil {
				return false
			}
			return decoded == tagName
		},
		gen.OneGenOf(
			gen.AlphaString(),
			gen.OneConstOf("needs review", "prio/high", "ünïcode", "50%", "a+b", "tag#1"),
		),
	))

	properties.TestingRun(t)
}
