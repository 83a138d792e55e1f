package infrastructure

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clickup-mcp-server/internal/domain"
)

// mockRelationshipServer accepts any relationship/comment route and replies
// with a payload appropriate for the path shape.
func mockRelationshipServer(recorder *requestRecorder) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder.record(r)

		switch {
		case r.URL.Path == "/task/gone/dependency":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"err":"Task not found","ECODE":"ITEM_013"}`))

		case r.Method == "GET" && strings.HasSuffix(r.URL.Path, "/comment"):
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"comments":[{"id":"901","comment_text":"first","date":"1700000000000","user":{"id":42,"username":"rosa"}}]}`))

		case r.Method == "GET" && strings.HasSuffix(r.URL.Path, "/reply"):
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"comments":[]}`))

		default:
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{}`))
		}
	}))
}

func newTestRelationshipClient(server *httptest.Server) *RelationshipClient {
	return NewRelationshipClient(server.URL, "9001", server.Client())
}

func TestRelationshipClient_AddDependency(t *testing.T) {
	recorder := &requestRecorder{}
	server := mockRelationshipServer(recorder)
	defer server.Close()

	client := newTestRelationshipClient(server)

	_, err := client.AddDependency(context.Background(), "task-1", &domain.DependencyLink{DependsOn: "task-2"}, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	req := recorder.last(t)
	if req.Method != "POST" || req.Path != "/task/task-1/dependency" {
		t.Errorf("Expected POST /task/task-1/dependency, got %s %s", req.Method, req.Path)
	}
	if req.Body["depends_on"] != "task-2" {
		t.Errorf("Expected depends_on task-2, got %v", req.Body["depends_on"])
	}
	// The unused direction never reaches the wire.
	if _, exists := req.Body["dependency_of"]; exists {
		t.Error("Expected dependency_of to be omitted from body")
	}
}

func TestRelationshipClient_DeleteDependency_QueryParams(t *testing.T) {
	recorder := &requestRecorder{}
	server := mockRelationshipServer(recorder)
	defer server.Close()

	client := newTestRelationshipClient(server)

	_, err := client.DeleteDependency(context.Background(), "task-1",
		&domain.DependencyLink{DependencyOf: "task-3"},
		&domain.ScopeOptions{UseCustomTaskIDs: true})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	req := recorder.last(t)
	if req.Method != "DELETE" {
		t.Errorf("Expected DELETE, got %s", req.Method)
	}
	if req.Query["dependency_of"] != "task-3" {
		t.Errorf("Expected dependency_of=task-3 in query, got %s", req.Query["dependency_of"])
	}
	if _, exists := req.Query["depends_on"]; exists {
		t.Error("Expected depends_on to be absent from query")
	}
	if req.Query["custom_task_ids"] != "true" || req.Query["team_id"] != "9001" {
		t.Errorf("Expected scope qualifiers with default team, got %v", req.Query)
	}
}

func TestRelationshipClient_TaskLinks(t *testing.T) {
	recorder := &requestRecorder{}
	server := mockRelationshipServer(recorder)
	defer server.Close()

	client := newTestRelationshipClient(server)

	if _, err := client.AddTaskLink(context.Background(), "task-1", "task-2", nil); err != nil {
		t.Fatalf("AddTaskLink failed: %v", err)
	}
	req := recorder.last(t)
	if req.Method != "POST" || req.Path != "/task/task-1/link/task-2" {
		t.Errorf("Expected POST /task/task-1/link/task-2, got %s %s", req.Method, req.Path)
	}

	if _, err := client.DeleteTaskLink(context.Background(), "task-1", "task-2", nil); err != nil {
		t.Fatalf("DeleteTaskLink failed: %v", err)
	}
	req = recorder.last(t)
	if req.Method != "DELETE" || req.Path != "/task/task-1/link/task-2" {
		t.Errorf("Expected DELETE /task/task-1/link/task-2, got %s %s", req.Method, req.Path)
	}
}

func TestRelationshipClient_TagNameEncoding(t *testing.T) {
	recorder := &requestRecorder{}
	server := mockRelationshipServer(recorder)
	defer server.Close()

	client := newTestRelationshipClient(server)

	if _, err := client.AddTagToTask(context.Background(), "task-1", "needs review", nil); err != nil {
		t.Fatalf("AddTagToTask failed: %v", err)
	}

	req := recorder.last(t)
	if req.EscapedPath != "/task/task-1/tag/needs%20review" {
		t.Errorf("Expected percent-encoded tag segment, got %s", req.EscapedPath)
	}

	if _, err := client.RemoveTagFromTask(context.Background(), "task-1", "prio/high", nil); err != nil {
		t.Fatalf("RemoveTagFromTask failed: %v", err)
	}

	req = recorder.last(t)
	if req.Method != "DELETE" {
		t.Errorf("Expected DELETE, got %s", req.Method)
	}
	// A slash inside a tag name must not create an extra path segment.
	if req.EscapedPath != "/task/task-1/tag/prio%2Fhigh" {
		t.Errorf("Expected encoded slash in tag segment, got %s", req.EscapedPath)
	}
}

func TestRelationshipClient_GetTaskComments_Cursor(t *testing.T) {
	recorder := &requestRecorder{}
	server := mockRelationshipServer(recorder)
	defer server.Close()

	client := newTestRelationshipClient(server)

	start := int64(1700000000000)
	page, err := client.GetTaskComments(context.Background(), "task-1",
		&domain.CommentListOptions{Start: &start, StartID: "900"}, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(page.Comments) != 1 {
		t.Fatalf("Expected 1 comment, got %d", len(page.Comments))
	}
	if page.Comments[0].User.Username != "rosa" {
		t.Errorf("Expected username rosa, got %s", page.Comments[0].User.Username)
	}

	req := recorder.last(t)
	if req.Query["start"] != "1700000000000" {
		t.Errorf("Expected start=1700000000000, got %s", req.Query["start"])
	}
	if req.Query["start_id"] != "900" {
		t.Errorf("Expected start_id=900, got %s", req.Query["start_id"])
	}
}

func TestRelationshipClient_GetTaskComments_NoCursor(t *testing.T) {
	recorder := &requestRecorder{}
	server := mockRelationshipServer(recorder)
	defer server.Close()

	client := newTestRelationshipClient(server)

	if _, err := client.GetTaskComments(context.Background(), "task-1", nil, nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	req := recorder.last(t)
	if _, exists := req.Query["start"]; exists {
		t.Error("Expected no start param without cursor")
	}
	if _, exists := req.Query["start_id"]; exists {
		t.Error("Expected no start_id param without cursor")
	}
}

func TestRelationshipClient_CreateTaskComment(t *testing.T) {
	recorder := &requestRecorder{}
	server := mockRelationshipServer(recorder)
	defer server.Close()

	client := newTestRelationshipClient(server)

	notifyAll := true
	_, err := client.CreateTaskComment(context.Background(), "task-1",
		&domain.CommentCreate{CommentText: "looks good", NotifyAll: &notifyAll},
		&domain.ScopeOptions{UseCustomTaskIDs: true, TeamID: "777"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	req := recorder.last(t)
	if req.Method != "POST" || req.Path != "/task/task-1/comment" {
		t.Errorf("Expected POST /task/task-1/comment, got %s %s", req.Method, req.Path)
	}
	if req.Body["comment_text"] != "looks good" {
		t.Errorf("Expected comment_text, got %v", req.Body["comment_text"])
	}
	if req.Body["notify_all"] != true {
		t.Errorf("Expected notify_all true, got %v", req.Body["notify_all"])
	}
	if req.Query["team_id"] != "777" {
		t.Errorf("Expected caller team_id to win, got %s", req.Query["team_id"])
	}
}

func TestRelationshipClient_ListAndViewComments(t *testing.T) {
	recorder := &requestRecorder{}
	server := mockRelationshipServer(recorder)
	defer server.Close()

	client := newTestRelationshipClient(server)

	if _, err := client.GetListComments(context.Background(), "list-1", nil); err != nil {
		t.Fatalf("GetListComments failed: %v", err)
	}
	if got := recorder.last(t).Path; got != "/list/list-1/comment" {
		t.Errorf("Expected /list/list-1/comment, got %s", got)
	}

	if _, err := client.CreateListComment(context.Background(), "list-1", &domain.CommentCreate{CommentText: "hi"}); err != nil {
		t.Fatalf("CreateListComment failed: %v", err)
	}

	if _, err := client.GetChatViewComments(context.Background(), "view-1", nil); err != nil {
		t.Fatalf("GetChatViewComments failed: %v", err)
	}
	if got := recorder.last(t).Path; got != "/view/view-1/comment" {
		t.Errorf("Expected /view/view-1/comment, got %s", got)
	}

	if _, err := client.CreateChatViewComment(context.Background(), "view-1", &domain.CommentCreate{CommentText: "hi"}); err != nil {
		t.Fatalf("CreateChatViewComment failed: %v", err)
	}
	req := recorder.last(t)
	if req.Method != "POST" || req.Path != "/view/view-1/comment" {
		t.Errorf("Expected POST /view/view-1/comment, got %s %s", req.Method, req.Path)
	}
}

func TestRelationshipClient_UpdateComment_NullAssignee(t *testing.T) {
	recorder := &requestRecorder{}
	server := mockRelationshipServer(recorder)
	defer server.Close()

	client := newTestRelationshipClient(server)

	resolved := true
	_, err := client.UpdateComment(context.Background(), "901", &domain.CommentUpdate{
		CommentText: "edited",
		Assignee:    domain.Null(),
		Resolved:    &resolved,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	req := recorder.last(t)
	if req.Method != "PUT" || req.Path != "/comment/901" {
		t.Errorf("Expected PUT /comment/901, got %s %s", req.Method, req.Path)
	}
	assignee, exists := req.Body["assignee"]
	if !exists || assignee != nil {
		t.Errorf("Expected explicit null assignee, got %v (exists=%v)", assignee, exists)
	}
	if req.Body["resolved"] != true {
		t.Errorf("Expected resolved true, got %v", req.Body["resolved"])
	}
}

func TestRelationshipClient_DeleteComment(t *testing.T) {
	recorder := &requestRecorder{}
	server := mockRelationshipServer(recorder)
	defer server.Close()

	client := newTestRelationshipClient(server)

	if _, err := client.DeleteComment(context.Background(), "901"); err != nil {
		t.Fatalf("DeleteComment failed: %v", err)
	}
	req := recorder.last(t)
	if req.Method != "DELETE" || req.Path != "/comment/901" {
		t.Errorf("Expected DELETE /comment/901, got %s %s", req.Method, req.Path)
	}
}

func TestRelationshipClient_ThreadedComments(t *testing.T) {
	recorder := &requestRecorder{}
	server := mockRelationshipServer(recorder)
	defer server.Close()

	client := newTestRelationshipClient(server)

	page, err := client.GetThreadedComments(context.Background(), "901")
	if err != nil {
		t.Fatalf("GetThreadedComments failed: %v", err)
	}
	if len(page.Comments) != 0 {
		t.Errorf("Expected empty reply page, got %d", len(page.Comments))
	}
	if got := recorder.last(t).Path; got != "/comment/901/reply" {
		t.Errorf("Expected /comment/901/reply, got %s", got)
	}

	if _, err := client.CreateThreadedComment(context.Background(), "901", &domain.CommentCreate{CommentText: "reply"}); err != nil {
		t.Fatalf("CreateThreadedComment failed: %v", err)
	}
	req := recorder.last(t)
	if req.Method != "POST" || req.Path != "/comment/901/reply" {
		t.Errorf("Expected POST /comment/901/reply, got %s %s", req.Method, req.Path)
	}
}

func TestRelationshipClient_UpstreamError(t *testing.T) {
	recorder := &requestRecorder{}
	server := mockRelationshipServer(recorder)
	defer server.Close()

	client := newTestRelationshipClient(server)

	_, err := client.AddDependency(context.Background(), "gone", &domain.DependencyLink{DependsOn: "task-2"}, nil)
	if err == nil {
		t.Fatal("Expected error for missing task")
	}

	httpErr, ok := err.(domain.HTTPError)
	if !ok {
		t.Fatalf("Expected domain.HTTPError, got %T: %v", err, err)
	}
	if httpErr.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", httpErr.StatusCode)
	}
	if !strings.Contains(httpErr.Body, "ITEM_013") {
		t.Errorf("Expected upstream error code in body, got %s", httpErr.Body)
	}
}
