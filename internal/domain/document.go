package domain

import (
	"time"

	"github.com/google/uuid"
)

// AcceptedMediaType is the only document type the upload boundary accepts.
const AcceptedMediaType = "application/pdf"

// MaxDocumentSize is the upload size ceiling in bytes (200 MiB).
const MaxDocumentSize = 200 * 1024 * 1024

// CurriculumDocument is the document attached to a course. The payload is
// kept as the original bytes; nothing is parsed or indexed.
type CurriculumDocument struct {
	ID        uuid.UUID `json:"id"`
	CourseID  string    `json:"course_id"`
	Filename  string    `json:"filename"`
	MediaType string    `json:"media_type"`
	Data      []byte    `json:"-"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// DocumentRef is the metadata handed back to callers and to the Answer
// Gateway. It carries the payload so the gateway can inline it, but JSON
// consumers only see the metadata.
type DocumentRef struct {
	ID        uuid.UUID `json:"id"`
	CourseID  string    `json:"course_id"`
	Filename  string    `json:"filename"`
	MediaType string    `json:"media_type"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
	Data      []byte    `json:"-"`
}

// Ref converts a document to its reference form.
func (d *CurriculumDocument) Ref() *DocumentRef {
	return &DocumentRef{
		ID:        d.ID,
		CourseID:  d.CourseID,
		Filename:  d.Filename,
		MediaType: d.MediaType,
		Size:      d.Size,
		CreatedAt: d.CreatedAt,
		Data:      d.Data,
	}
}

// CurriculumRegistry holds at most one document per course.
type CurriculumRegistry interface {
	Attach(courseID string, data []byte, filename, mediaType string) (*DocumentRef, error)
	Get(courseID string) *DocumentRef
	Clear(courseID string)
	ClearAll()
}
