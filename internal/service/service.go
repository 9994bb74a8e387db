package service

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/angelofallars/facturier/internal/invoice"
	"github.com/angelofallars/facturier/internal/registry"
)

// session is the state owned by one browser session.
type session struct {
	mu     sync.Mutex
	draft  *invoice.Draft
	editor *registry.Editor
}

// Sessions hands out per-session state, creating it on first use. Idle
// sessions expire after the configured TTL.
type Sessions struct {
	mu       sync.Mutex
	cache    *cache.Cache
	ttl      time.Duration
	policy   invoice.Policy
	now      func() time.Time
	registry *registry.Registry
}

func NewSessions(ttl time.Duration, policy invoice.Policy, reg *registry.Registry) *Sessions {
	return &Sessions{
		cache:    cache.New(ttl, ttl/2),
		ttl:      ttl,
		policy:   policy,
		now:      time.Now,
		registry: reg,
	}
}

// WithClock replaces the clock used to date new drafts.
func (s *Sessions) WithClock(now func() time.Time) *Sessions {
	s.now = now
	return s
}

func (s *Sessions) Count() int { return s.cache.ItemCount() }

// with runs f on the session id while holding the session's lock, and
// extends the session's lifetime.
func (s *Sessions) with(id string, f func(*session)) {
	sess := s.get(id)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	f(sess)
}

func (s *Sessions) get(id string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sess *session
	if v, ok := s.cache.Get(id); ok {
		sess = v.(*session)
	} else {
		sess = &session{
			draft:  invoice.NewDraft(s.policy, s.now),
			editor: registry.NewEditor(s.registry),
		}
	}
	s.cache.Set(id, sess, s.ttl)
	return sess
}
