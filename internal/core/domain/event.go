package domain

import "time"

// EventType names a change that already committed to the store.
type EventType string

const (
	EventUserRegistered EventType = "user.registered"
	EventPostCreated    EventType = "post.created"
	EventPostUpdated    EventType = "post.updated"
	EventPostDeleted    EventType = "post.deleted"
	EventCommentAdded   EventType = "comment.added"
)

// BlogEvent is published after a successful write. PostID is the ordering key;
// events for the same post are delivered in the order they were produced.
type BlogEvent struct {
	Type       EventType `json:"type"`
	PostID     int64     `json:"post_id,omitempty"`
	UserID     int64     `json:"user_id,omitempty"`
	CommentID  int64     `json:"comment_id,omitempty"`
	Title      string    `json:"title,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
