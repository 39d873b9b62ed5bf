package domain

import (
	"time"

	"github.com/google/uuid"
)

// MessageRole identifies the sender of a transcript entry.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is one transcript entry. Messages are immutable once appended;
// a transcript only ever grows, except when the whole course transcript is
// cleared as a side effect of replacing the course document.
type Message struct {
	ID        uuid.UUID   `json:"id"`
	CourseID  string      `json:"course_id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

// TranscriptStore keeps the ordered per-course conversation history.
type TranscriptStore interface {
	Append(courseID string, msg Message)
	List(courseID string) []Message
	Clear(courseID string)
	ClearAll()
}
