package domain

import (
	"encoding/json"
	"testing"
)

func TestOptional_ZeroValueIsUnset(t *testing.T) {
	var o Optional

	if o.Present() {
		t.Error("Expected zero value to be unset")
	}
	if o.IsNull() {
		t.Error("Expected zero value not to be null")
	}

	body := make(map[string]interface{})
	o.Apply(body, "field")
	if _, exists := body["field"]; exists {
		t.Error("Expected unset field to be omitted from body")
	}
}

func TestOptional_Null(t *testing.T) {
	o := Null()

	if !o.Present() {
		t.Error("Expected null to be present")
	}
	if !o.IsNull() {
		t.Error("Expected null to report IsNull")
	}

	body := make(map[string]interface{})
	o.Apply(body, "assignee")

	v, exists := body["assignee"]
	if !exists {
		t.Fatal("Expected null field to appear in body")
	}
	if v != nil {
		t.Errorf("Expected nil value, got %v", v)
	}

	// The nil value must serialize as JSON null.
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal body: %v", err)
	}
	if string(data) != `{"assignee":null}` {
		t.Errorf("Expected explicit null in JSON, got %s", data)
	}
}

func TestOptional_Value(t *testing.T) {
	o := Value(42)

	if !o.Present() {
		t.Error("Expected value to be present")
	}
	if o.IsNull() {
		t.Error("Expected value not to report IsNull")
	}

	v, ok := o.Get()
	if !ok {
		t.Fatal("Expected Get to report presence")
	}
	if v != 42 {
		t.Errorf("Expected 42, got %v", v)
	}

	body := make(map[string]interface{})
	o.Apply(body, "assignee")
	if body["assignee"] != 42 {
		t.Errorf("Expected 42 in body, got %v", body["assignee"])
	}
}

func TestOptional_ValueNilEqualsNull(t *testing.T) {
	o := Value(nil)

	if !o.IsNull() {
		t.Error("Expected Value(nil) to behave as explicit null")
	}
}

func TestChecklistItemEdit_BodyMapTriState(t *testing.T) {
	resolved := true
	edit := &ChecklistItemEdit{
		Name:     "updated item",
		Resolved: &resolved,
		Assignee: Null(),
		// Parent left unset
	}

	body := edit.BodyMap()

	if body["name"] != "updated item" {
		t.Errorf("Expected name in body, got %v", body["name"])
	}
	if body["resolved"] != true {
		t.Errorf("Expected resolved true, got %v", body["resolved"])
	}

	v, exists := body["assignee"]
	if !exists {
		t.Fatal("Expected assignee key for explicit null")
	}
	if v != nil {
		t.Errorf("Expected nil assignee, got %v", v)
	}

	if _, exists := body["parent"]; exists {
		t.Error("Expected unset parent to be omitted")
	}
}

func TestChecklistItemEdit_BodyMapOmitsEmpty(t *testing.T) {
	edit := &ChecklistItemEdit{}

	body := edit.BodyMap()
	if len(body) != 0 {
		t.Errorf("Expected empty body for empty edit, got %v", body)
	}
}

func TestChecklistEdit_BodyMapPositionZero(t *testing.T) {
	position := 0
	edit := &ChecklistEdit{Name: "renamed", Position: &position}

	body := edit.BodyMap()
	if body["name"] != "renamed" {
		t.Errorf("Expected name in body, got %v", body["name"])
	}
	if body["position"] != 0 {
		t.Errorf("Expected position zero to be transmitted, got %v", body["position"])
	}
}

func TestCommentUpdate_BodyMapTriState(t *testing.T) {
	resolved := false
	update := &CommentUpdate{
		CommentText: "edited",
		Assignee:    Value(7),
		Resolved:    &resolved,
	}

	body := update.BodyMap()
	if body["comment_text"] != "edited" {
		t.Errorf("Expected comment_text, got %v", body["comment_text"])
	}
	if body["assignee"] != 7 {
		t.Errorf("Expected assignee 7, got %v", body["assignee"])
	}
	if body["resolved"] != false {
		t.Errorf("Expected resolved false, got %v", body["resolved"])
	}

	// Unassign case: assignee must be present as null.
	unassign := &CommentUpdate{Assignee: Null()}
	body = unassign.BodyMap()
	v, exists := body["assignee"]
	if !exists || v != nil {
		t.Errorf("Expected explicit null assignee, got %v (exists=%v)", v, exists)
	}
	if _, exists := body["comment_text"]; exists {
		t.Error("Expected empty comment_text to be omitted")
	}
}
