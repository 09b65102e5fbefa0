package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	quotedto "thrivehub/internal/modules/quote/dto"
	"thrivehub/internal/platform/calendar"
	"thrivehub/internal/platform/id"
)

const (
	sessionCookie = "thrivehub_session"
	maxSessions   = 1024
)

type sessionEntry struct {
	cache *quotedto.QuoteCache
	seen  time.Time
}

// sessions maps a browser cookie to its quote cache. Caches from earlier
// days are dropped, and at most maxSessions are kept, evicting the least
// recently seen.
type sessions struct {
	mu      sync.Mutex
	ids     id.Generator
	limit   int
	entries map[string]*sessionEntry
}

func newSessions(ids id.Generator, limit int) *sessions {
	if limit <= 0 {
		limit = maxSessions
	}
	return &sessions{ids: ids, limit: limit, entries: map[string]*sessionEntry{}}
}

// resolve returns the session id for the request, issuing a cookie when the
// browser has none or sends a malformed one.
func (s *sessions) resolve(c echo.Context) string {
	if cookie, err := c.Cookie(sessionCookie); err == nil && id.Valid(cookie.Value) {
		return cookie.Value
	}
	sid := s.ids.New()
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sid
}

// with runs fn holding the session's cache. Calls for one process are
// serialized, which also keeps the cache free of races.
func (s *sessions) with(sid string, now time.Time, fn func(*quotedto.QuoteCache) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[sid]
	if !ok {
		s.pruneLocked(now)
		entry = &sessionEntry{cache: &quotedto.QuoteCache{}}
		s.entries[sid] = entry
	}
	entry.seen = now
	return fn(entry.cache)
}

func (s *sessions) pruneLocked(now time.Time) {
	today := calendar.Of(now)
	for sid, entry := range s.entries {
		if entry.cache.Date != today {
			delete(s.entries, sid)
		}
	}
	for len(s.entries) >= s.limit {
		var oldest string
		var oldestSeen time.Time
		for sid, entry := range s.entries {
			if oldest == "" || entry.seen.Before(oldestSeen) {
				oldest, oldestSeen = sid, entry.seen
			}
		}
		delete(s.entries, oldest)
	}
}

func (s *sessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
