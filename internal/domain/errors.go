package domain

import (
	"errors"
	"fmt"
)

// Upload failure taxonomy.
var (
	// ErrInvalidDocumentType is returned when the declared media type is not
	// the accepted one. The registry is left untouched.
	ErrInvalidDocumentType = errors.New("invalid document type: only application/pdf is accepted")

	// ErrUploadIO is returned when the uploaded file cannot be read.
	ErrUploadIO = errors.New("failed to read uploaded file")
)

// Gateway failure taxonomy.
var (
	// ErrGatewayOversize means the remote service rejected the combined
	// payload as too large.
	ErrGatewayOversize = errors.New("gateway rejected payload as too large")

	// ErrGatewayTimeout means the gateway call exceeded its deadline.
	ErrGatewayTimeout = errors.New("gateway call timed out")
)

// Session guard failures.
var (
	ErrBusy              = errors.New("an operation is already in progress")
	ErrNoCourseSelected  = errors.New("no course selected")
	ErrUnknownCourse     = errors.New("unknown course")
	ErrNoDocument        = errors.New("no curriculum document attached for this course")
	ErrEmptyQuestion     = errors.New("question must not be empty")
	ErrInvalidTransition = errors.New("action not available in the current view")
)

// SizeLimitError reports an upload that exceeds the size ceiling. It keeps
// the observed size so the user message can report it.
type SizeLimitError struct {
	Size  int64
	Limit int64
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("file too large: %.1fMB exceeds the %dMB limit",
		float64(e.Size)/(1024*1024), e.Limit/(1024*1024))
}

// IsSizeLimit reports whether err is a SizeLimitError.
func IsSizeLimit(err error) (*SizeLimitError, bool) {
	var se *SizeLimitError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
