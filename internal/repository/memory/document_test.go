package memory

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sayafh/curriculum-chat/internal/domain"
)

func TestCurriculumRegistry_AttachReplaces(t *testing.T) {
	r := NewCurriculumRegistry(0)

	first, err := r.Attach("mkt", []byte("%PDF one"), "one.pdf", "application/pdf")
	require.NoError(t, err)

	second, err := r.Attach("mkt", []byte("%PDF two"), "two.pdf", "application/pdf")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	got := r.Get("mkt")
	require.NotNil(t, got)
	assert.Equal(t, second.ID, got.ID)
	assert.Equal(t, "two.pdf", got.Filename)
}

func TestCurriculumRegistry_RejectsWrongType(t *testing.T) {
	r := NewCurriculumRegistry(0)

	_, err := r.Attach("mkt", []byte("plain text"), "notes.txt", "text/plain")
	assert.ErrorIs(t, err, domain.ErrInvalidDocumentType)
	assert.Nil(t, r.Get("mkt"), "rejected upload must not mutate the registry")
}

func TestCurriculumRegistry_RejectsOversize(t *testing.T) {
	r := NewCurriculumRegistry(0)

	data := make([]byte, domain.MaxDocumentSize+1)
	_, err := r.Attach("mkt", data, "big.pdf", "application/pdf")

	se, ok := domain.IsSizeLimit(err)
	require.True(t, ok)
	assert.Equal(t, int64(domain.MaxDocumentSize+1), se.Size)
	assert.Contains(t, se.Error(), "200.0MB", "message reports the observed size in MiB to one decimal")
	assert.Nil(t, r.Get("mkt"))
}

func TestCurriculumRegistry_RoundTripMetadata(t *testing.T) {
	r := NewCurriculumRegistry(0)

	payload := []byte(strings.Repeat("x", 5*1024*1024))
	ref, err := r.Attach("mkt", payload, "chapter5.pdf", "application/pdf")
	require.NoError(t, err)

	got := r.Get("mkt")
	require.NotNil(t, got)
	assert.Equal(t, ref.ID, got.ID)
	assert.Equal(t, "chapter5.pdf", got.Filename)
	assert.Equal(t, "application/pdf", got.MediaType)
	assert.Equal(t, int64(len(payload)), got.Size)
	assert.Equal(t, payload, got.Data)
}

func TestCurriculumRegistry_ClearIsIdempotent(t *testing.T) {
	r := NewCurriculumRegistry(0)

	r.Clear("mkt") // nothing attached, no-op

	_, err := r.Attach("mkt", []byte("%PDF"), "a.pdf", "application/pdf")
	require.NoError(t, err)

	r.Clear("mkt")
	assert.Nil(t, r.Get("mkt"))
	r.Clear("mkt")
}

func TestCurriculumRegistry_ClearAll(t *testing.T) {
	r := NewCurriculumRegistry(0)

	_, err := r.Attach("mkt", []byte("%PDF"), "a.pdf", "application/pdf")
	require.NoError(t, err)
	_, err = r.Attach("acc-en", []byte("%PDF"), "b.pdf", "application/pdf")
	require.NoError(t, err)

	r.ClearAll()
	assert.Nil(t, r.Get("mkt"))
	assert.Nil(t, r.Get("acc-en"))
}

func TestCurriculumRegistry_TTLEviction(t *testing.T) {
	r := NewCurriculumRegistry(20 * time.Millisecond)

	_, err := r.Attach("mkt", []byte("%PDF"), "a.pdf", "application/pdf")
	require.NoError(t, err)
	require.NotNil(t, r.Get("mkt"))

	time.Sleep(40 * time.Millisecond)
	assert.Nil(t, r.Get("mkt"))
}
