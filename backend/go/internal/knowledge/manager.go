package knowledge

import (
	"Sceptre/backend/go/internal/config"
	"sync"
	"time"
)

// Manager owns the per-session knowledge bases. It is injected into the
// verification service and the chat responder instead of living as package
// state, so tests can run against isolated instances.
type Manager struct {
	mu      sync.Mutex
	bases   map[string]*Base
	maxDocs int
	maxAge  time.Duration
}

// NewManager creates a manager whose bases use the configured bounds.
func NewManager(cfg config.KnowledgeConfig) *Manager {
	return &Manager{
		bases:   make(map[string]*Base),
		maxDocs: cfg.MaxDocuments,
		maxAge:  time.Duration(cfg.MaxAgeHours) * time.Hour,
	}
}

// Base returns the knowledge base for a session, creating it on first use.
func (m *Manager) Base(sessionID string) *Base {
	m.mu.Lock()
	defer m.mu.Unlock()

	base, ok := m.bases[sessionID]
	if !ok {
		base = NewBase(m.maxDocs, m.maxAge)
		m.bases[sessionID] = base
	}
	return base
}

// Refresh clears the knowledge base for a session, if one exists.
func (m *Manager) Refresh(sessionID string) {
	m.mu.Lock()
	base, ok := m.bases[sessionID]
	m.mu.Unlock()

	if ok {
		base.Clear()
	}
}
