package handler

import (
	"errors"
	"net/http"

	"github.com/sayafh/curriculum-chat/internal/api/response"
	"github.com/sayafh/curriculum-chat/internal/domain"
)

// writeDomainError maps domain failures to HTTP statuses. Guard violations
// are conflicts: the request was well-formed but the session is not in a
// state that allows it.
func writeDomainError(w http.ResponseWriter, err error) {
	if se, ok := domain.IsSizeLimit(err); ok {
		response.Error(w, http.StatusRequestEntityTooLarge, se.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidDocumentType),
		errors.Is(err, domain.ErrEmptyQuestion),
		errors.Is(err, domain.ErrUploadIO):
		response.BadRequest(w, err.Error())
	case errors.Is(err, domain.ErrUnknownCourse):
		response.NotFound(w, err.Error())
	case errors.Is(err, domain.ErrBusy),
		errors.Is(err, domain.ErrNoDocument),
		errors.Is(err, domain.ErrNoCourseSelected),
		errors.Is(err, domain.ErrInvalidTransition):
		response.Conflict(w, err.Error())
	default:
		response.InternalError(w, err.Error())
	}
}
