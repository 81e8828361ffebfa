package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	SessionName       = "photoedit_session"
	EditorIDKey       = "editor_id"
	SessionCreatedKey = "created_at"
)

var ErrNoSession = errors.New("no editor session")

// Manager stores the browser's editor session id in a signed cookie.
type Manager struct {
	store *sessions.CookieStore
}

func NewManager(secret string) *Manager {
	if secret == "" {
		secret = generateSecret()
	}
	return &Manager{
		store: sessions.NewCookieStore([]byte(secret)),
	}
}

func generateSecret() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.StdEncoding.EncodeToString(b)
}

// EditorID returns the editor session id for the request, minting and saving
// a new one when the browser has none.
func (m *Manager) EditorID(w http.ResponseWriter, r *http.Request) (string, error) {
	if id, err := m.Lookup(r); err == nil {
		return id, nil
	}

	session, _ := m.store.Get(r, SessionName)
	id := uuid.NewString()
	session.Values[EditorIDKey] = id
	session.Values[SessionCreatedKey] = time.Now().Unix()

	// Determine if we're on HTTPS
	isHTTPS := r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"

	session.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400, // 1 day
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   isHTTPS,
	}

	if err := session.Save(r, w); err != nil {
		return "", err
	}
	return id, nil
}

// Lookup returns the editor session id without creating one.
func (m *Manager) Lookup(r *http.Request) (string, error) {
	session, err := m.store.Get(r, SessionName)
	if err != nil {
		_, cookieErr := r.Cookie(SessionName)
		slog.Warn("failed to decode session", "error", err, "host", r.Host, "has_cookie", cookieErr == nil)
		return "", err
	}

	val, ok := session.Values[EditorIDKey]
	if !ok {
		return "", ErrNoSession
	}
	id, ok := val.(string)
	if !ok || id == "" {
		return "", ErrNoSession
	}
	return id, nil
}

// CreatedAt returns the time the session was created.
// Returns zero time if the session is missing or invalid.
func (m *Manager) CreatedAt(r *http.Request) time.Time {
	session, err := m.store.Get(r, SessionName)
	if err != nil {
		return time.Time{}
	}

	unix, ok := session.Values[SessionCreatedKey].(int64)
	if !ok {
		return time.Time{}
	}
	return time.Unix(unix, 0)
}

// Clear expires the session cookie.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, SessionName)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
