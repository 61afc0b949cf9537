package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func roundTrip(t *testing.T, m *Manager, sess *Session) *Session {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, m.Save(rec, sess))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	return m.Load(req)
}

func TestRoundTrip(t *testing.T) {
	m, err := NewManager(testSecret)
	require.NoError(t, err)

	sess := NewSession()
	require.NoError(t, sess.Set("category", "green"))
	require.NoError(t, sess.Set("count", 3))

	loaded := roundTrip(t, m, sess)

	var category string
	ok, err := loaded.Get("category", &category)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "green", category)

	var count int
	ok, err = loaded.Get("count", &count)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 3, count)

	ok, err = loaded.Get("missing", &category)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFlashReadOnce(t *testing.T) {
	m, err := NewManager(testSecret)
	require.NoError(t, err)

	sess := NewSession()
	sess.AddFlash(FlashSuccess, "Thanks, you are in.")
	sess.AddFlash(FlashInfo, "Answer a few questions next.")

	loaded := roundTrip(t, m, sess)

	flashes := loaded.Flashes()
	require.Len(t, flashes, 2)
	require.Equal(t, Flash{Message: "Thanks, you are in.", Category: FlashSuccess}, flashes[0])

	// consumed: a second read returns nothing
	require.Nil(t, loaded.Flashes())
	require.True(t, loaded.Dirty())

	// and after saving the drained session, the next load has none
	require.NoError(t, loaded.Set("keep", true))
	again := roundTrip(t, m, loaded)
	require.Nil(t, again.Flashes())
	require.True(t, again.Has("keep"))
}

func TestTamperedCookieLooksAbsent(t *testing.T) {
	m, err := NewManager(testSecret)
	require.NoError(t, err)

	sess := NewSession()
	require.NoError(t, sess.Set("category", "green"))

	rec := httptest.NewRecorder()
	require.NoError(t, m.Save(rec, sess))
	cookie := rec.Result().Cookies()[0]

	mutate := func(t *testing.T, value string) {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: value})
		loaded := m.Load(req)
		require.True(t, loaded.Empty(), "tampered cookie must load as empty")
	}

	t.Run("flipped payload byte", func(t *testing.T) {
		body, sig, _ := strings.Cut(cookie.Value, ".")
		flipped := "A" + body[1:]
		if flipped == body {
			flipped = "B" + body[1:]
		}
		mutate(t, flipped+"."+sig)
	})

	t.Run("wrong signature", func(t *testing.T) {
		body, _, _ := strings.Cut(cookie.Value, ".")
		mutate(t, body+".bm90LWEtc2lnbmF0dXJl")
	})

	t.Run("no separator", func(t *testing.T) {
		mutate(t, "garbage")
	})

	t.Run("signed by another secret", func(t *testing.T) {
		other, err := NewManager([]byte("another-secret-entirely-32-bytes"))
		require.NoError(t, err)
		rec := httptest.NewRecorder()
		stranger := NewSession()
		require.NoError(t, stranger.Set("category", "sll"))
		require.NoError(t, other.Save(rec, stranger))
		mutate(t, rec.Result().Cookies()[0].Value)
	})
}

func TestExpiredCookie(t *testing.T) {
	current := time.Now()
	m, err := NewManager(testSecret,
		WithTTL(time.Hour),
		WithClock(func() time.Time { return current }),
	)
	require.NoError(t, err)

	sess := NewSession()
	require.NoError(t, sess.Set("category", "green"))

	rec := httptest.NewRecorder()
	require.NoError(t, m.Save(rec, sess))
	cookie := rec.Result().Cookies()[0]

	current = current.Add(2 * time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	require.True(t, m.Load(req).Empty())
}

func TestSaveEmptyExpiresCookie(t *testing.T) {
	m, err := NewManager(testSecret)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Save(rec, NewSession()))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, -1, cookies[0].MaxAge)
	require.Empty(t, cookies[0].Value)
}

func TestCookieAttributes(t *testing.T) {
	m, err := NewManager(testSecret, WithSecure(true), WithCookieName("gb_test"))
	require.NoError(t, err)

	sess := NewSession()
	sess.AddFlash(FlashError, "nope")

	rec := httptest.NewRecorder()
	require.NoError(t, m.Save(rec, sess))
	cookie := rec.Result().Cookies()[0]
	require.Equal(t, "gb_test", cookie.Name)
	require.True(t, cookie.HttpOnly)
	require.True(t, cookie.Secure)
	require.Equal(t, "/", cookie.Path)
}

func TestNewManagerRequiresSecret(t *testing.T) {
	_, err := NewManager(nil)
	require.Error(t, err)
}
