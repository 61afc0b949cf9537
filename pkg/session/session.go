// Package session keeps per-visitor state in an HMAC-signed cookie.
// There is no server-side store; everything a request needs rides in
// the cookie, so tampering is detected by signature and a bad cookie
// simply means a fresh session.
package session

import (
	"encoding/json"
	"fmt"
)

// Flash categories understood by the layout.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Flash is a one-shot notice rendered on the next page view.
type Flash struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

// Session is the decoded per-visitor state. Values are stored as raw
// JSON so callers keep their own types.
type Session struct {
	values  map[string]json.RawMessage
	flashes []Flash
	dirty   bool
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{values: make(map[string]json.RawMessage)}
}

// Set stores a JSON-encodable value under key.
func (s *Session) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("session: encode %q: %w", key, err)
	}
	if s.values == nil {
		s.values = make(map[string]json.RawMessage)
	}
	s.values[key] = raw
	s.dirty = true
	return nil
}

// Get decodes the value stored under key into dest. The first return
// is false when the key is absent.
func (s *Session) Get(key string, dest any) (bool, error) {
	raw, ok := s.values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return true, fmt.Errorf("session: decode %q: %w", key, err)
	}
	return true, nil
}

// Has reports whether key is present.
func (s *Session) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Delete removes key.
func (s *Session) Delete(key string) {
	if _, ok := s.values[key]; ok {
		delete(s.values, key)
		s.dirty = true
	}
}

// AddFlash queues a one-shot notice for the next render.
func (s *Session) AddFlash(category, message string) {
	s.flashes = append(s.flashes, Flash{Message: message, Category: category})
	s.dirty = true
}

// Flashes returns the queued notices and removes them, so each flash
// renders at most once.
func (s *Session) Flashes() []Flash {
	if len(s.flashes) == 0 {
		return nil
	}
	out := s.flashes
	s.flashes = nil
	s.dirty = true
	return out
}

// Clear drops all values and pending flashes.
func (s *Session) Clear() {
	s.values = make(map[string]json.RawMessage)
	s.flashes = nil
	s.dirty = true
}

// Dirty reports whether the session changed since it was loaded and
// needs to be written back.
func (s *Session) Dirty() bool {
	return s.dirty
}

// Empty reports whether the session carries no state at all.
func (s *Session) Empty() bool {
	return len(s.values) == 0 && len(s.flashes) == 0
}
