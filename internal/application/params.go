package application

import (
	"fmt"

	"clickup-mcp-server/internal/domain"
)

// getStringParam extracts a string parameter from the arguments map.
// Returns an error if the parameter is required but missing or not a string.
func getStringParam(args map[string]interface{}, name string, required bool) (string, error) {
	value, exists := args[name]
	if !exists {
		if required {
			return "", &domain.Error{
				Code:    domain.InvalidParams,
				Message: fmt.Sprintf("missing required parameter: %s", name),
			}
		}
		return "", nil
	}

	strValue, ok := value.(string)
	if !ok {
		return "", &domain.Error{
			Code:    domain.InvalidParams,
			Message: fmt.Sprintf("parameter %s must be a string", name),
		}
	}

	return strValue, nil
}

// getIntParam extracts an integer parameter from the arguments map.
// JSON numbers arrive as float64, so both numeric forms are accepted.
// Returns an error if the parameter is required but missing, or exists
// with a non-numeric type.
func getIntParam(args map[string]interface{}, name string, required bool) (int, error) {
	value, exists := args[name]
	if !exists {
		if required {
			return 0, &domain.Error{
				Code:    domain.InvalidParams,
				Message: fmt.Sprintf("missing required parameter: %s", name),
			}
		}
		return 0, nil
	}

	switch v := value.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	default:
		return 0, &domain.Error{
			Code:    domain.InvalidParams,
			Message: fmt.Sprintf("parameter %s must be an integer", name),
		}
	}
}

// getBoolParam extracts a boolean parameter from the arguments map.
func getBoolParam(args map[string]interface{}, name string, required bool) (bool, error) {
	value, exists := args[name]
	if !exists {
		if required {
			return false, &domain.Error{
				Code:    domain.InvalidParams,
				Message: fmt.Sprintf("missing required parameter: %s", name),
			}
		}
		return false, nil
	}

	boolValue, ok := value.(bool)
	if !ok {
		return false, &domain.Error{
			Code:    domain.InvalidParams,
			Message: fmt.Sprintf("parameter %s must be a boolean", name),
		}
	}

	return boolValue, nil
}

// getIntPtrParam extracts an optional integer parameter, returning nil
// when the parameter is absent.
func getIntPtrParam(args map[string]interface{}, name string) (*int, error) {
	if _, exists := args[name]; !exists {
		return nil, nil
	}

	v, err := getIntParam(args, name, true)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// getBoolPtrParam extracts an optional boolean parameter, returning nil
// when the parameter is absent.
func getBoolPtrParam(args map[string]interface{}, name string) (*bool, error) {
	if _, exists := args[name]; !exists {
		return nil, nil
	}

	v, err := getBoolParam(args, name, true)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// getInt64PtrParam extracts an optional 64-bit integer parameter
// (millisecond timestamps), returning nil when absent.
func getInt64PtrParam(args map[string]interface{}, name string) (*int64, error) {
	value, exists := args[name]
	if !exists {
		return nil, nil
	}

	switch v := value.(type) {
	case float64:
		n := int64(v)
		return &n, nil
	case int:
		n := int64(v)
		return &n, nil
	case int64:
		return &v, nil
	default:
		return nil, &domain.Error{
			Code:    domain.InvalidParams,
			Message: fmt.Sprintf("parameter %s must be an integer", name),
		}
	}
}

// getTriStateIntParam extracts a tri-state integer parameter: an absent
// key maps to unset, an explicit JSON null maps to a clear signal, and
// a number maps to a value. A key present with any other type is an
// error. This distinction is preserved all the way to the wire.
func getTriStateIntParam(args map[string]interface{}, name string) (domain.Optional, error) {
	value, exists := args[name]
	if !exists {
		return domain.Unset(), nil
	}
	if value == nil {
		return domain.Null(), nil
	}

	switch v := value.(type) {
	case float64:
		return domain.Value(int(v)), nil
	case int:
		return domain.Value(v), nil
	default:
		return domain.Unset(), &domain.Error{
			Code:    domain.InvalidParams,
			Message: fmt.Sprintf("parameter %s must be an integer or null", name),
		}
	}
}

// getTriStateStringParam extracts a tri-state string parameter.
// See getTriStateIntParam for the three-way semantics.
func getTriStateStringParam(args map[string]interface{}, name string) (domain.Optional, error) {
	value, exists := args[name]
	if !exists {
		return domain.Unset(), nil
	}
	if value == nil {
		return domain.Null(), nil
	}

	strValue, ok := value.(string)
	if !ok {
		return domain.Unset(), &domain.Error{
			Code:    domain.InvalidParams,
			Message: fmt.Sprintf("parameter %s must be a string or null", name),
		}
	}

	return domain.Value(strValue), nil
}

// getScopeOptions extracts the custom-task-id scope qualifiers shared by
// the task-addressed tools. Returns nil when the flag is not set, so no
// scope parameters are added to the outbound request.
func getScopeOptions(args map[string]interface{}) (*domain.ScopeOptions, error) {
	useCustomIDs, err := getBoolParam(args, "customTaskIds", false)
	if err != nil {
		return nil, err
	}

	teamID, err := getStringParam(args, "teamId", false)
	if err != nil {
		return nil, err
	}

	if !useCustomIDs && teamID == "" {
		return nil, nil
	}

	return &domain.ScopeOptions{
		UseCustomTaskIDs: useCustomIDs,
		TeamID:           teamID,
	}, nil
}

// getCommentListOptions extracts the comment pagination cursor.
func getCommentListOptions(args map[string]interface{}) (*domain.CommentListOptions, error) {
	start, err := getInt64PtrParam(args, "start")
	if err != nil {
		return nil, err
	}

	startID, err := getStringParam(args, "startId", false)
	if err != nil {
		return nil, err
	}

	if start == nil && startID == "" {
		return nil, nil
	}

	return &domain.CommentListOptions{
		Start:   start,
		StartID: startID,
	}, nil
}
