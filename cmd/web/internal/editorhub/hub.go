package editorhub

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"thirdcoast.systems/photoedit/pkg/photoedit"
)

const (
	// Fallbacks when the config leaves a limit unset.
	defaultMaxSessions = 500
	defaultIdleTimeout = 30 * time.Minute
)

// ErrTooManySessions is returned when the hub is at capacity.
var ErrTooManySessions = errors.New("too many editor sessions")

// Hub owns one editor per browser session. Sessions that stop making
// requests are closed by PruneIdle, which releases their image.
type Hub struct {
	mu sync.Mutex

	sessions map[string]*session

	maxSessions int
	idleTimeout time.Duration
	now         func() time.Time
}

type session struct {
	editor   *photoedit.Editor
	lastSeen time.Time
}

// NewHub creates an editor hub. Zero limits fall back to the defaults.
func NewHub(maxSessions int, idleTimeout time.Duration) *Hub {
	if maxSessions <= 0 {
		maxSessions = defaultMaxSessions
	}
	if idleTimeout <= 0 {
		idleTimeout = defaultIdleTimeout
	}
	return &Hub{
		sessions:    make(map[string]*session),
		maxSessions: maxSessions,
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// GetOrCreate returns the editor for id, creating it if needed, and marks
// the session as active.
func (h *Hub) GetOrCreate(id string) (*photoedit.Editor, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[id]
	if !ok {
		if len(h.sessions) >= h.maxSessions {
			return nil, ErrTooManySessions
		}
		s = &session{editor: photoedit.NewEditor()}
		h.sessions[id] = s
	}
	s.lastSeen = h.now()
	return s.editor, nil
}

// Get returns the editor for id without creating one.
func (h *Hub) Get(id string) (*photoedit.Editor, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[id]
	if !ok {
		return nil, false
	}
	s.lastSeen = h.now()
	return s.editor, true
}

// Close removes the session and closes its editor.
func (h *Hub) Close(id string) {
	h.mu.Lock()
	s, ok := h.sessions[id]
	if ok {
		delete(h.sessions, id)
	}
	h.mu.Unlock()

	if ok {
		s.editor.Close()
	}
}

// Len returns the number of open sessions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// PruneIdle closes sessions that have been idle longer than the timeout.
func (h *Hub) PruneIdle(now time.Time) int {
	h.mu.Lock()
	var stale []*session
	for id, s := range h.sessions {
		if now.Sub(s.lastSeen) <= h.idleTimeout {
			continue
		}
		delete(h.sessions, id)
		stale = append(stale, s)
	}
	h.mu.Unlock()

	// Editors are closed outside the hub lock.
	for _, s := range stale {
		s.editor.Close()
	}
	return len(stale)
}

// CloseAll closes every session. Used on shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	all := h.sessions
	h.sessions = make(map[string]*session)
	h.mu.Unlock()

	for _, s := range all {
		s.editor.Close()
	}
}

// Run prunes idle sessions every interval until ctx is cancelled, then
// closes the rest.
func (h *Hub) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.CloseAll()
			return
		case <-ticker.C:
			if n := h.PruneIdle(h.now()); n > 0 {
				slog.Info("pruned idle editor sessions", "count", n, "remaining", h.Len())
			}
		}
	}
}
