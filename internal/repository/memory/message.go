package memory

import (
	"sync"

	"github.com/sayafh/curriculum-chat/internal/domain"
)

// TranscriptStore implements domain.TranscriptStore with per-course ordered
// slices. Appends past the retention cap drop the oldest messages so a long
// running session cannot grow memory without bound.
type TranscriptStore struct {
	mu          sync.Mutex
	byCourse    map[string][]domain.Message
	maxMessages int
}

// NewTranscriptStore creates a store. maxMessages <= 0 disables the cap.
func NewTranscriptStore(maxMessages int) *TranscriptStore {
	return &TranscriptStore{
		byCourse:    make(map[string][]domain.Message),
		maxMessages: maxMessages,
	}
}

// Append adds a message to the end of the course transcript.
func (s *TranscriptStore) Append(courseID string, msg domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := append(s.byCourse[courseID], msg)
	if s.maxMessages > 0 && len(msgs) > s.maxMessages {
		msgs = msgs[len(msgs)-s.maxMessages:]
	}
	s.byCourse[courseID] = msgs
}

// List returns a copy of the course transcript in insertion order. It never
// returns nil.
func (s *TranscriptStore) List(courseID string) []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.byCourse[courseID]
	out := make([]domain.Message, len(msgs))
	copy(out, msgs)
	return out
}

// Clear drops the transcript for a course.
func (s *TranscriptStore) Clear(courseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byCourse, courseID)
}

// ClearAll drops every transcript.
func (s *TranscriptStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byCourse = make(map[string][]domain.Message)
}
