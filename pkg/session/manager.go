package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	defaultCookieName = "gb_session"
	defaultTTL        = 24 * time.Hour
)

// envelope is the wire form of a session inside the cookie.
type envelope struct {
	Values   map[string]json.RawMessage `json:"values,omitempty"`
	Flashes  []Flash                    `json:"flashes,omitempty"`
	IssuedAt int64                      `json:"iat"`
}

// Manager signs, writes and reads session cookies.
type Manager struct {
	name   string
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithCookieName overrides the cookie name.
func WithCookieName(name string) Option {
	return func(m *Manager) {
		if name != "" {
			m.name = name
		}
	}
}

// WithTTL overrides how long a cookie stays valid.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithSecure marks the cookie Secure; on behind TLS, off for local
// development.
func WithSecure(secure bool) Option {
	return func(m *Manager) {
		m.secure = secure
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager builds a cookie session manager. The secret must not be
// empty; rotating it invalidates every outstanding session.
func NewManager(secret []byte, opts ...Option) (*Manager, error) {
	if len(secret) == 0 {
		return nil, errors.New("session: secret must not be empty")
	}
	m := &Manager{
		name:   defaultCookieName,
		secret: secret,
		ttl:    defaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Load reads the session cookie from the request. An absent, expired
// or tampered cookie yields a fresh empty session; Load never fails.
func (m *Manager) Load(r *http.Request) *Session {
	cookie, err := r.Cookie(m.name)
	if err != nil {
		return NewSession()
	}
	env, ok := m.decode(cookie.Value)
	if !ok {
		return NewSession()
	}
	sess := NewSession()
	if env.Values != nil {
		sess.values = env.Values
	}
	sess.flashes = env.Flashes
	return sess
}

// Save writes the session back to the response. An empty session
// expires the cookie instead of writing a hollow one.
func (m *Manager) Save(w http.ResponseWriter, sess *Session) error {
	if sess.Empty() {
		http.SetCookie(w, &http.Cookie{
			Name:     m.name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   m.secure,
			SameSite: http.SameSiteLaxMode,
		})
		return nil
	}
	value, err := m.encode(envelope{
		Values:   sess.values,
		Flashes:  sess.flashes,
		IssuedAt: m.now().Unix(),
	})
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *Manager) encode(env envelope) (string, error) {
	raw, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("session: encode envelope: %w", err)
	}
	body := base64.RawURLEncoding.EncodeToString(raw)
	return body + "." + m.sign(body), nil
}

// decode verifies the signature and TTL. It reports ok=false for any
// problem so callers cannot tell a tampered cookie from a missing one.
func (m *Manager) decode(value string) (envelope, bool) {
	body, sig, found := strings.Cut(value, ".")
	if !found || body == "" || sig == "" {
		return envelope{}, false
	}
	if !hmac.Equal([]byte(m.sign(body)), []byte(sig)) {
		return envelope{}, false
	}
	raw, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return envelope{}, false
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return envelope{}, false
	}
	issued := time.Unix(env.IssuedAt, 0)
	if m.now().After(issued.Add(m.ttl)) {
		return envelope{}, false
	}
	return env, true
}

func (m *Manager) sign(body string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(body))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
