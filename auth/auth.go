package auth

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"

	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/repositories"
)

const (
	cookieName = "session-cookie"
	tokenKey   = "token"
)

// Manager ties the browser cookie to the server-side session table.
// The cookie only ever carries an opaque token; the user id lives in
// the sessions table with an expiry.
type Manager struct {
	store    *sessions.CookieStore
	sessions repositories.SessionRepository
	ttl      time.Duration
}

func NewManager(secret string, repo repositories.SessionRepository, ttl time.Duration) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
	}
	return &Manager{store: store, sessions: repo, ttl: ttl}
}

// SignIn issues a fresh token for the user and writes it to the cookie.
func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request, userID uint) error {
	session, err := m.sessions.Create(userID, m.ttl)
	if err != nil {
		return err
	}

	cookie, _ := m.store.Get(r, cookieName)
	cookie.Values[tokenKey] = session.Token
	return cookie.Save(r, w)
}

// SignOut deletes the server-side session and expires the cookie.
// Safe to call for anonymous requests.
func (m *Manager) SignOut(w http.ResponseWriter, r *http.Request) error {
	cookie, _ := m.store.Get(r, cookieName)
	if token, ok := cookie.Values[tokenKey].(string); ok && token != "" {
		if err := m.sessions.Delete(token); err != nil {
			logrus.Warnf("Failed to delete session: %v", err)
		}
	}
	delete(cookie.Values, tokenKey)
	cookie.Options.MaxAge = -1
	return cookie.Save(r, w)
}

// CurrentUserID resolves the cookie's token to a user id. A missing,
// tampered, or expired token reports (0, false).
func (m *Manager) CurrentUserID(r *http.Request) (uint, bool) {
	cookie, err := m.store.Get(r, cookieName)
	if err != nil {
		return 0, false
	}
	token, ok := cookie.Values[tokenKey].(string)
	if !ok || token == "" {
		return 0, false
	}
	session, err := m.sessions.Find(token)
	if err != nil {
		logrus.Errorf("Session lookup failed: %v", err)
		return 0, false
	}
	if session == nil {
		return 0, false
	}
	return session.UserID, true
}

// Flash queues a message shown on the next rendered page.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, message string) {
	cookie, _ := m.store.Get(r, cookieName)
	cookie.AddFlash(message)
	if err := cookie.Save(r, w); err != nil {
		logrus.Warnf("Failed to save flash: %v", err)
	}
}

// Flashes drains and returns any queued messages.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []string {
	cookie, _ := m.store.Get(r, cookieName)
	raw := cookie.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := cookie.Save(r, w); err != nil {
		logrus.Warnf("Failed to save session after draining flashes: %v", err)
	}
	messages := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			messages = append(messages, s)
		}
	}
	return messages
}
