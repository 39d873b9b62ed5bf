package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/sayafh/curriculum-chat/internal/api/middleware"
	"github.com/sayafh/curriculum-chat/internal/api/response"
)

var validate = validator.New()

// SessionHandler drives the session controller's view transitions and the
// question/answer exchange.
type SessionHandler struct{}

// NewSessionHandler creates a new session handler
func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Get returns the current session snapshot.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := middleware.GetController(r.Context())
	if !ok {
		response.InternalError(w, "missing session")
		return
	}
	response.OK(w, ctrl.Snapshot())
}

type selectCourseRequest struct {
	CourseID string `json:"course_id" validate:"required,max=64"`
}

// Select handles the home-screen course selection.
func (h *SessionHandler) Select(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := middleware.GetController(r.Context())
	if !ok {
		response.InternalError(w, "missing session")
		return
	}

	var req selectCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	state, err := ctrl.SelectCourse(req.CourseID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.OK(w, state)
}

// Back navigates one view up.
func (h *SessionHandler) Back(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := middleware.GetController(r.Context())
	if !ok {
		response.InternalError(w, "missing session")
		return
	}

	state, err := ctrl.Back()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.OK(w, state)
}

// Start enters the chat view when a document is attached.
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := middleware.GetController(r.Context())
	if !ok {
		response.InternalError(w, "missing session")
		return
	}

	state, err := ctrl.StartChat()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.OK(w, state)
}

type focusRequest struct {
	Chapter string `json:"chapter" validate:"max=500"`
}

// Focus sets the chapter-focus hint. An empty chapter means the whole
// document.
func (h *SessionHandler) Focus(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := middleware.GetController(r.Context())
	if !ok {
		response.InternalError(w, "missing session")
		return
	}

	var req focusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	state, err := ctrl.SetChapterFocus(req.Chapter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.OK(w, state)
}

type askRequest struct {
	Question string `json:"question" validate:"required,max=4000"`
}

// Ask runs one question/answer exchange and returns both appended messages.
// A failed gateway call still returns 200: the failure is recorded in the
// transcript, which is the contract the presentation layer renders.
func (h *SessionHandler) Ask(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := middleware.GetController(r.Context())
	if !ok {
		response.InternalError(w, "missing session")
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	exchange, err := ctrl.Ask(r.Context(), req.Question)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.OK(w, exchange)
}

// Transcript returns the selected course's conversation history.
func (h *SessionHandler) Transcript(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := middleware.GetController(r.Context())
	if !ok {
		response.InternalError(w, "missing session")
		return
	}

	msgs, err := ctrl.Transcript()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.OK(w, msgs)
}
