package gemini

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sayafh/curriculum-chat/internal/domain"
	"github.com/sayafh/curriculum-chat/internal/gateway"
)

func TestBuildHistory_RoleMapping(t *testing.T) {
	history := BuildHistory([]gateway.Turn{
		{Role: domain.RoleUser, Content: "سؤال"},
		{Role: domain.RoleAssistant, Content: "إجابة"},
	})

	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, genai.Text("سؤال"), history[0].Parts[0])
	assert.Equal(t, "model", history[1].Role, "assistant turns use the model role on the wire")
	assert.Equal(t, genai.Text("إجابة"), history[1].Parts[0])
}

func TestBuildParts_ChapterFocusPrefix(t *testing.T) {
	parts := BuildParts(gateway.AskRequest{
		Question:     "ما هو قيد الإهلاك؟",
		ChapterFocus: "الفصل الخامس",
	})

	require.Len(t, parts, 1)
	assert.Equal(t, genai.Text("(يرجى التركيز على: الفصل الخامس) ما هو قيد الإهلاك؟"), parts[0])
}

func TestBuildParts_NoFocusNoPrefix(t *testing.T) {
	parts := BuildParts(gateway.AskRequest{Question: "سؤال"})

	require.Len(t, parts, 1)
	assert.Equal(t, genai.Text("سؤال"), parts[0])
}

func TestBuildParts_InlinesDocument(t *testing.T) {
	parts := BuildParts(gateway.AskRequest{
		Question: "سؤال",
		Document: &domain.DocumentRef{
			MediaType: "application/pdf",
			Data:      []byte("%PDF-1.4"),
		},
	})

	require.Len(t, parts, 2)
	blob, ok := parts[1].(genai.Blob)
	require.True(t, ok)
	assert.Equal(t, "application/pdf", blob.MIMEType)
	assert.Equal(t, []byte("%PDF-1.4"), blob.Data)
}

func TestMapError_Oversize(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want error
	}{
		{"explicit limit text", "request payload exceeds supported limit", domain.ErrGatewayOversize},
		{"http 413", "googleapi: Error 413: Request Entity Too Large", domain.ErrGatewayOversize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(context.Background(), errMsg(tt.msg))
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestMapError_GenericPassesThrough(t *testing.T) {
	got := mapError(context.Background(), errMsg("quota exceeded for project"))
	assert.NotErrorIs(t, got, domain.ErrGatewayOversize)
	assert.Contains(t, got.Error(), "quota exceeded for project")
}

type errMsg string

func (e errMsg) Error() string { return string(e) }
