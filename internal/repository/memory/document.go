package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/sayafh/curriculum-chat/internal/domain"
)

// CurriculumRegistry implements domain.CurriculumRegistry on an in-memory
// TTL cache. At most one document is held per course; attaching replaces.
type CurriculumRegistry struct {
	mu       sync.Mutex
	docs     *gocache.Cache
	ttl      time.Duration
	maxSize  int64
	accepted string
}

// NewCurriculumRegistry creates a registry. A zero ttl keeps documents for
// the process lifetime; a positive ttl evicts them after that idle period.
func NewCurriculumRegistry(ttl time.Duration) *CurriculumRegistry {
	cleanup := 10 * time.Minute
	if ttl <= 0 {
		ttl = gocache.NoExpiration
		cleanup = 0
	}
	return &CurriculumRegistry{
		docs:     gocache.New(ttl, cleanup),
		ttl:      ttl,
		maxSize:  domain.MaxDocumentSize,
		accepted: domain.AcceptedMediaType,
	}
}

// Attach validates and stores a document for a course, replacing any prior
// one. Validation failures perform no mutation.
func (r *CurriculumRegistry) Attach(courseID string, data []byte, filename, mediaType string) (*domain.DocumentRef, error) {
	if mediaType != r.accepted {
		return nil, domain.ErrInvalidDocumentType
	}
	if int64(len(data)) > r.maxSize {
		return nil, &domain.SizeLimitError{Size: int64(len(data)), Limit: r.maxSize}
	}

	doc := &domain.CurriculumDocument{
		ID:        uuid.New(),
		CourseID:  courseID,
		Filename:  filename,
		MediaType: mediaType,
		Data:      data,
		Size:      int64(len(data)),
		CreatedAt: time.Now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs.Set(courseID, doc, gocache.DefaultExpiration)

	return doc.Ref(), nil
}

// Get returns the document reference for a course, or nil when none is
// attached.
func (r *CurriculumRegistry) Get(courseID string) *domain.DocumentRef {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.docs.Get(courseID)
	if !ok {
		return nil
	}
	return v.(*domain.CurriculumDocument).Ref()
}

// Clear removes the document for a course. Removing a missing document is a
// no-op.
func (r *CurriculumRegistry) Clear(courseID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs.Delete(courseID)
}

// ClearAll removes every attached document.
func (r *CurriculumRegistry) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs.Flush()
}
