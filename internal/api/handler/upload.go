package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/sayafh/curriculum-chat/internal/api/middleware"
	"github.com/sayafh/curriculum-chat/internal/api/response"
	"github.com/sayafh/curriculum-chat/internal/domain"
)

// UploadHandler handles curriculum document upload and removal for the
// selected course.
type UploadHandler struct{}

// NewUploadHandler creates a new upload handler
func NewUploadHandler() *UploadHandler {
	return &UploadHandler{}
}

// Upload attaches a PDF to the selected course. The form field is "file";
// the declared Content-Type of the part is the media type the registry
// validates.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := middleware.GetController(r.Context())
	if !ok {
		response.InternalError(w, "missing session")
		return
	}

	// Parse up to the ceiling plus slack for the multipart framing; the
	// registry enforces the exact byte limit.
	if err := r.ParseMultipartForm(domain.MaxDocumentSize + 1<<20); err != nil {
		writeDomainError(w, domain.ErrUploadIO)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "no file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeDomainError(w, errors.Join(domain.ErrUploadIO, err))
		return
	}

	mediaType := header.Header.Get("Content-Type")

	ref, err := ctrl.Upload(data, header.Filename, mediaType)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response.Created(w, ref)
}

// Get returns the attached document's metadata for the selected course.
func (h *UploadHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := middleware.GetController(r.Context())
	if !ok {
		response.InternalError(w, "missing session")
		return
	}

	ref := ctrl.Document()
	if ref == nil {
		response.NotFound(w, "no document attached")
		return
	}
	response.OK(w, ref)
}

// Delete is the "change document" action: it detaches per the configured
// scope and clears transcripts per policy.
func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := middleware.GetController(r.Context())
	if !ok {
		response.InternalError(w, "missing session")
		return
	}

	state, err := ctrl.ChangeDocument()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.OK(w, state)
}
