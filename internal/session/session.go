package session

import (
	"sync"

	"github.com/liminalpurple/sticker-gallery/internal/host"
)

// Manager owns the current credential and identity snapshot. The two are
// always replaced together so the UI never shows one user's name with
// another's credential.
type Manager struct {
	bridge host.Bridge

	mu          sync.Mutex
	credential  string
	identity    host.Identity
	hasIdentity bool
}

// NewManager captures the initial credential and identity from the bridge.
func NewManager(bridge host.Bridge) *Manager {
	m := &Manager{bridge: bridge}
	m.credential = bridge.InitData()
	m.identity, m.hasIdentity = bridge.Identity()
	return m
}

// Embedded reports whether the manager is backed by a recognized host
// environment.
func (m *Manager) Embedded() bool {
	return m.bridge.Embedded()
}

// Credential returns the currently held credential, empty if absent.
func (m *Manager) Credential() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.credential
}

// Identity returns the currently held identity snapshot.
func (m *Manager) Identity() (host.Identity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity, m.hasIdentity
}

// Refresh re-reads the credential and identity from the host. It returns true
// only when the newly read credential differs by value from the held one, and
// then swaps credential and identity atomically. When the host yields no new
// value the call is a no-op. Synchronous; no network.
func (m *Manager) Refresh() bool {
	fresh := m.bridge.InitData()

	m.mu.Lock()
	defer m.mu.Unlock()

	if fresh == "" || fresh == m.credential {
		return false
	}

	m.credential = fresh
	m.identity, m.hasIdentity = m.bridge.Identity()
	return true
}
