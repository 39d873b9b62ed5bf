package gateway

import (
	"context"

	"github.com/sayafh/curriculum-chat/internal/domain"
)

// Turn is one prior exchange entry, translated for the remote service.
type Turn struct {
	Role    domain.MessageRole
	Content string
}

// AskRequest carries everything the gateway needs for one call. The gateway
// is stateless across calls; all conversational context travels here.
type AskRequest struct {
	Question     string
	ChapterFocus string
	Document     *domain.DocumentRef
	History      []Turn
}

// Gateway answers a question against the attached curriculum document.
// Failures surface as domain.ErrGatewayOversize for payload-size rejections
// and plain errors otherwise; the returned text is passed through as-is
// whether or not it follows the two-section answer convention.
type Gateway interface {
	Ask(ctx context.Context, req AskRequest) (string, error)
}
