package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sayafh/curriculum-chat/internal/domain"
	"github.com/sayafh/curriculum-chat/internal/gateway"
)

// User-facing failure texts, kept from the observed product behavior.
const (
	msgOversize       = "⚠️ حجم الملف كبير جداً لعملية التحليل اللحظية (تجاوز 200MB). يرجى محاولة رفع نسخة من الكتاب تحتوي على نصوص أكثر وصور أقل، أو تقسيم الملف."
	msgGenericError   = "حدث خطأ أثناء معالجة البيانات."
	msgGatewayTimeout = "انتهت مهلة معالجة السؤال. يرجى المحاولة مرة أخرى."
)

// ClearScope selects what the "change document" action wipes.
const (
	ClearScopeCourse = "course"
	ClearScopeAll    = "all"
)

// Policy holds the document-replacement behaviors that were left as an open
// product decision: whether replacing a document also clears transcripts,
// and whether the clear applies to one course or all of them.
type Policy struct {
	ClearTranscriptOnReplace bool
	ClearScope               string
}

// Controller owns one session's view state and drives the single
// outstanding question/answer exchange. All operations serialize on the
// status guard; HTTP handlers may call from any goroutine.
type Controller struct {
	catalog     *domain.Catalog
	registry    domain.CurriculumRegistry
	transcripts domain.TranscriptStore
	gw          gateway.Gateway
	policy      Policy

	// mu guards state and lastActive. Ask releases it around the gateway
	// call; the processing status is the guard against a second send.
	mu         sync.Mutex
	state      domain.Session
	lastActive time.Time
}

// NewController creates a controller in the Home view with idle status.
func NewController(
	catalog *domain.Catalog,
	registry domain.CurriculumRegistry,
	transcripts domain.TranscriptStore,
	gw gateway.Gateway,
	policy Policy,
) *Controller {
	if policy.ClearScope == "" {
		policy.ClearScope = ClearScopeCourse
	}
	c := &Controller{
		catalog:     catalog,
		registry:    registry,
		transcripts: transcripts,
		gw:          gw,
		policy:      policy,
		state: domain.Session{
			View:   domain.ViewHome,
			Status: domain.StatusIdle,
		},
		lastActive: time.Now(),
	}
	return c
}

func (c *Controller) lock()   { c.mu.Lock() }
func (c *Controller) unlock() { c.mu.Unlock() }

// Snapshot returns a copy of the current session state.
func (c *Controller) Snapshot() domain.Session {
	c.lock()
	defer c.unlock()
	return c.state
}

// LastActive reports when the session last handled an event.
func (c *Controller) LastActive() time.Time {
	c.lock()
	defer c.unlock()
	return c.lastActive
}

func (c *Controller) touch() {
	c.lastActive = time.Now()
}

// HasDocument reports whether a course has an attached document.
func (c *Controller) HasDocument(courseID string) bool {
	return c.registry.Get(courseID) != nil
}

// Document returns the attached document reference for the selected course,
// or nil.
func (c *Controller) Document() *domain.DocumentRef {
	c.lock()
	courseID := c.state.CourseID
	c.unlock()
	if courseID == "" {
		return nil
	}
	return c.registry.Get(courseID)
}

// SelectCourse moves Home -> CourseDetail and records the selection.
func (c *Controller) SelectCourse(courseID string) (domain.Session, error) {
	c.lock()
	defer c.unlock()
	c.touch()

	if c.state.View != domain.ViewHome {
		return c.state, domain.ErrInvalidTransition
	}
	if _, ok := c.catalog.Get(courseID); !ok {
		return c.state, domain.ErrUnknownCourse
	}

	c.state.View = domain.ViewCourseDetail
	c.state.CourseID = courseID
	return c.state, nil
}

// Back moves Chat -> CourseDetail, or CourseDetail -> Home clearing the
// selection. Backing out of Home is not a transition.
func (c *Controller) Back() (domain.Session, error) {
	c.lock()
	defer c.unlock()
	c.touch()

	switch c.state.View {
	case domain.ViewChat:
		c.state.View = domain.ViewCourseDetail
	case domain.ViewCourseDetail:
		c.state.View = domain.ViewHome
		c.state.CourseID = ""
	default:
		return c.state, domain.ErrInvalidTransition
	}
	return c.state, nil
}

// SetChapterFocus updates the free-text focus hint. Empty means whole
// document.
func (c *Controller) SetChapterFocus(chapter string) (domain.Session, error) {
	c.lock()
	defer c.unlock()
	c.touch()

	if c.state.CourseID == "" {
		return c.state, domain.ErrNoCourseSelected
	}
	c.state.ChapterFocus = strings.TrimSpace(chapter)
	return c.state, nil
}

// Upload attaches a document to the selected course. The status walks
// idle -> file_processing -> idle; validation failures leave the registry
// untouched and the view unchanged.
func (c *Controller) Upload(data []byte, filename, mediaType string) (*domain.DocumentRef, error) {
	c.lock()
	c.touch()

	if c.state.View != domain.ViewCourseDetail || c.state.CourseID == "" {
		c.unlock()
		return nil, domain.ErrInvalidTransition
	}
	if c.state.Status == domain.StatusProcessing || c.state.Status == domain.StatusFileProcessing {
		c.unlock()
		return nil, domain.ErrBusy
	}

	courseID := c.state.CourseID
	c.state.Status = domain.StatusFileProcessing
	c.unlock()

	replaced := c.registry.Get(courseID) != nil
	ref, err := c.registry.Attach(courseID, data, filename, mediaType)

	c.lock()
	c.state.Status = domain.StatusIdle
	c.unlock()

	if err != nil {
		return nil, err
	}

	// A new document invalidates answers grounded in the old one.
	if replaced && c.policy.ClearTranscriptOnReplace {
		c.clearTranscripts(courseID)
	}

	log.Info().
		Str("course_id", courseID).
		Str("filename", filename).
		Int64("size", ref.Size).
		Bool("replaced", replaced).
		Msg("curriculum document attached")

	return ref, nil
}

// ChangeDocument is the "change" action on the course card: it detaches the
// document per the configured scope and optionally drops transcripts.
func (c *Controller) ChangeDocument() (domain.Session, error) {
	c.lock()
	courseID := c.state.CourseID
	view := c.state.View
	c.unlock()

	if view != domain.ViewCourseDetail || courseID == "" {
		return c.Snapshot(), domain.ErrInvalidTransition
	}

	if c.policy.ClearScope == ClearScopeAll {
		c.registry.ClearAll()
	} else {
		c.registry.Clear(courseID)
	}
	if c.policy.ClearTranscriptOnReplace {
		c.clearTranscripts(courseID)
	}

	return c.Snapshot(), nil
}

func (c *Controller) clearTranscripts(courseID string) {
	if c.policy.ClearScope == ClearScopeAll {
		c.transcripts.ClearAll()
	} else {
		c.transcripts.Clear(courseID)
	}
}

// StartChat moves CourseDetail -> Chat. Requires an attached document and
// idle status.
func (c *Controller) StartChat() (domain.Session, error) {
	c.lock()
	defer c.unlock()
	c.touch()

	if c.state.View != domain.ViewCourseDetail || c.state.CourseID == "" {
		return c.state, domain.ErrInvalidTransition
	}
	if c.state.Status != domain.StatusIdle && c.state.Status != domain.StatusError {
		return c.state, domain.ErrBusy
	}
	if c.registry.Get(c.state.CourseID) == nil {
		return c.state, domain.ErrNoDocument
	}

	c.state.View = domain.ViewChat
	c.state.Status = domain.StatusIdle
	return c.state, nil
}

// Exchange is the result of one question/answer round trip.
type Exchange struct {
	User      domain.Message `json:"user"`
	Assistant domain.Message `json:"assistant"`
	Failed    bool           `json:"failed"`
}

// Ask runs one question/answer exchange. The user message is appended
// before the gateway call and stays even if the call fails; the failure
// text then becomes the assistant turn and status moves to error. A second
// Ask while one is in flight is rejected at the boundary.
func (c *Controller) Ask(ctx context.Context, question string) (*Exchange, error) {
	question = strings.TrimSpace(question)

	c.lock()
	c.touch()

	if c.state.View != domain.ViewChat || c.state.CourseID == "" {
		c.unlock()
		return nil, domain.ErrInvalidTransition
	}
	if question == "" {
		c.unlock()
		return nil, domain.ErrEmptyQuestion
	}
	if c.state.Status == domain.StatusProcessing || c.state.Status == domain.StatusFileProcessing {
		c.unlock()
		return nil, domain.ErrBusy
	}

	courseID := c.state.CourseID
	focus := c.state.ChapterFocus

	doc := c.registry.Get(courseID)
	if doc == nil {
		c.unlock()
		return nil, domain.ErrNoDocument
	}

	// History is the transcript before this question; the question itself
	// travels as the current turn.
	history := historyTurns(c.transcripts.List(courseID))

	userMsg := domain.Message{
		ID:        uuid.New(),
		CourseID:  courseID,
		Role:      domain.RoleUser,
		Content:   question,
		CreatedAt: time.Now(),
	}
	c.transcripts.Append(courseID, userMsg)

	c.state.Status = domain.StatusProcessing
	c.unlock()

	answer, err := c.gw.Ask(ctx, gateway.AskRequest{
		Question:     question,
		ChapterFocus: focus,
		Document:     doc,
		History:      history,
	})

	c.lock()
	defer c.unlock()

	exchange := &Exchange{User: userMsg}

	if err != nil {
		c.state.Status = domain.StatusError
		exchange.Failed = true
		exchange.Assistant = domain.Message{
			ID:        uuid.New(),
			CourseID:  courseID,
			Role:      domain.RoleAssistant,
			Content:   failureText(err),
			CreatedAt: time.Now(),
		}
		c.transcripts.Append(courseID, exchange.Assistant)

		log.Warn().
			Err(err).
			Str("course_id", courseID).
			Msg("answer gateway call failed")

		return exchange, nil
	}

	c.state.Status = domain.StatusIdle
	exchange.Assistant = domain.Message{
		ID:        uuid.New(),
		CourseID:  courseID,
		Role:      domain.RoleAssistant,
		Content:   answer,
		CreatedAt: time.Now(),
	}
	c.transcripts.Append(courseID, exchange.Assistant)

	return exchange, nil
}

// Transcript returns the selected course's conversation history.
func (c *Controller) Transcript() ([]domain.Message, error) {
	c.lock()
	courseID := c.state.CourseID
	c.unlock()

	if courseID == "" {
		return nil, domain.ErrNoCourseSelected
	}
	return c.transcripts.List(courseID), nil
}

func historyTurns(msgs []domain.Message) []gateway.Turn {
	turns := make([]gateway.Turn, 0, len(msgs))
	for _, m := range msgs {
		turns = append(turns, gateway.Turn{Role: m.Role, Content: m.Content})
	}
	return turns
}

func failureText(err error) string {
	switch {
	case errors.Is(err, domain.ErrGatewayOversize):
		return msgOversize
	case errors.Is(err, domain.ErrGatewayTimeout):
		return msgGatewayTimeout
	}
	if text := err.Error(); text != "" {
		return text
	}
	return msgGenericError
}
