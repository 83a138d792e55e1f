package domain

// User represents a ClickUp user reference as it appears in checklist
// assignees and comment authors.
type User struct {
	ID             int    `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email,omitempty"`
	Color          string `json:"color,omitempty"`
	Initials       string `json:"initials,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// CommentFragment is one piece of a comment's rich-text body.
type CommentFragment struct {
	Text string `json:"text"`
}

// Comment represents a ClickUp comment on a task, list, or chat view.
// Date is a millisecond timestamp transmitted as a string; it doubles as
// the pagination cursor together with the comment id.
type Comment struct {
	ID          string            `json:"id"`
	Comment     []CommentFragment `json:"comment,omitempty"`
	CommentText string            `json:"comment_text"`
	User        *User             `json:"user,omitempty"`
	Resolved    bool              `json:"resolved"`
	Assignee    *User             `json:"assignee,omitempty"`
	AssignedBy  *User             `json:"assigned_by,omitempty"`
	ReplyCount  string            `json:"reply_count,omitempty"`
	Date        string            `json:"date"`
}

// CommentPage is the wrapper the API returns when listing comments:
// {"comments": [...]}.
type CommentPage struct {
	Comments []Comment `json:"comments"`
}

// CommentCreate is the request body for creating a comment.
// Assignee and NotifyAll are pointers so they are omitted when the
// caller did not supply them.
type CommentCreate struct {
	CommentText string `json:"comment_text"`
	Assignee    *int   `json:"assignee,omitempty"`
	NotifyAll   *bool  `json:"notify_all,omitempty"`
}

// CommentUpdate describes an update to an existing comment.
// Assignee is tri-state: explicit null unassigns the comment.
type CommentUpdate struct {
	CommentText string
	Assignee    Optional
	Resolved    *bool
}

// BodyMap builds the JSON body for the comment update request,
// preserving the absent / null / value distinction for Assignee.
func (u *CommentUpdate) BodyMap() map[string]interface{} {
	body := make(map[string]interface{})
	if u.CommentText != "" {
		body["comment_text"] = u.CommentText
	}
	u.Assignee.Apply(body, "assignee")
	if u.Resolved != nil {
		body["resolved"] = *u.Resolved
	}
	return body
}

// CommentListOptions carries the pagination cursor for comment listing.
// Start is the millisecond timestamp of the oldest comment already seen;
// StartID is the id of that comment. Both must be set to page; ordering
// across pages is the caller's responsibility.
type CommentListOptions struct {
	Start   *int64
	StartID string
}
