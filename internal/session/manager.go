package session

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sayafh/curriculum-chat/internal/domain"
	"github.com/sayafh/curriculum-chat/internal/gateway"
	"github.com/sayafh/curriculum-chat/internal/repository/memory"
)

// Manager keys one Controller per user session. Each controller owns its
// own registry and transcript store so uploads and conversations from
// different sessions stay isolated; the catalog and gateway are shared.
type Manager struct {
	mu          sync.RWMutex
	controllers map[string]*Controller

	catalog     *domain.Catalog
	gw          gateway.Gateway
	policy      Policy
	maxMessages int
	documentTTL time.Duration
	idleTTL     time.Duration
}

// ManagerOptions configures per-session controller construction.
type ManagerOptions struct {
	Policy      Policy
	MaxMessages int
	DocumentTTL time.Duration
	IdleTTL     time.Duration
}

// NewManager creates an empty session manager.
func NewManager(catalog *domain.Catalog, gw gateway.Gateway, opts ManagerOptions) *Manager {
	return &Manager{
		controllers: make(map[string]*Controller),
		catalog:     catalog,
		gw:          gw,
		policy:      opts.Policy,
		maxMessages: opts.MaxMessages,
		documentTTL: opts.DocumentTTL,
		idleTTL:     opts.IdleTTL,
	}
}

// Get returns the controller for a session ID, creating one on first use.
func (m *Manager) Get(sessionID string) *Controller {
	m.mu.RLock()
	ctrl, ok := m.controllers[sessionID]
	m.mu.RUnlock()
	if ok {
		return ctrl
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if ctrl, ok := m.controllers[sessionID]; ok {
		return ctrl
	}

	ctrl = NewController(
		m.catalog,
		memory.NewCurriculumRegistry(m.documentTTL),
		memory.NewTranscriptStore(m.maxMessages),
		m.gw,
		m.policy,
	)
	m.controllers[sessionID] = ctrl

	log.Debug().Str("session_id", sessionID).Msg("session created")
	return ctrl
}

// Has reports whether a session exists without creating one.
func (m *Manager) Has(sessionID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.controllers[sessionID]
	return ok
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.controllers)
}

// Sweep evicts sessions idle longer than the configured TTL and returns how
// many were removed. Intended to run periodically from the server loop.
func (m *Manager) Sweep() int {
	if m.idleTTL <= 0 {
		return 0
	}
	cutoff := time.Now().Add(-m.idleTTL)

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, ctrl := range m.controllers {
		if ctrl.LastActive().Before(cutoff) {
			delete(m.controllers, id)
			evicted++
		}
	}
	if evicted > 0 {
		log.Info().Int("evicted", evicted).Msg("idle sessions swept")
	}
	return evicted
}
