// Package ratelimit bounds how many operations a caller may perform per
// category within a fixed time window.
package ratelimit

import (
	"sync"
	"time"
)

// Category names a class of endpoint with its own quota configuration.
type Category string

const (
	CategoryAuth    Category = "auth"
	CategoryAPI     Category = "api"
	CategoryUpload  Category = "upload"
	CategoryDefault Category = "default"
)

// Quota configures one category.
type Quota struct {
	MaxRequests int
	Window      time.Duration
	Message     string
}

// DefaultQuotas returns the stock per-category configuration. Callers may
// override individual entries before constructing the store.
func DefaultQuotas() map[Category]Quota {
	return map[Category]Quota{
		CategoryAuth:    {MaxRequests: 5, Window: 15 * time.Minute, Message: "Too many authentication attempts, please try again later"},
		CategoryAPI:     {MaxRequests: 100, Window: time.Hour, Message: "API rate limit exceeded, please slow down"},
		CategoryUpload:  {MaxRequests: 10, Window: time.Hour, Message: "Upload limit reached, please try again later"},
		CategoryDefault: {MaxRequests: 60, Window: time.Minute, Message: "Too many requests, please try again later"},
	}
}

// Result reports the outcome of one quota check.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
	Message    string
}

type entry struct {
	mu          sync.Mutex
	count       int
	windowStart time.Time
}

// Store tracks per-identifier request counts in fixed windows. One store is
// constructed at process start and handed to every request path; tests build
// their own isolated instances.
type Store struct {
	quotas  map[Category]Quota
	entries sync.Map
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

// NewStore constructs a Store with the given per-category quotas. Categories
// absent from quotas fall back to the default category's quota.
func NewStore(quotas map[Category]Quota) *Store {
	if quotas == nil {
		quotas = DefaultQuotas()
	}
	return &Store{
		quotas: quotas,
		now:    time.Now,
		stop:   make(chan struct{}),
	}
}

func (s *Store) quota(category Category) Quota {
	if q, ok := s.quotas[category]; ok {
		return q
	}
	return s.quotas[CategoryDefault]
}

// Check performs one atomic admit-or-reject decision for (identifier,
// category). Interleaved concurrent checks for the same key never double- or
// under-count: the per-entry mutex covers the whole read-modify-write.
func (s *Store) Check(identifier string, category Category) Result {
	q := s.quota(category)
	now := s.now()

	key := string(category) + ":" + identifier
	v, _ := s.entries.LoadOrStore(key, &entry{})
	e := v.(*entry)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.count == 0 || now.Sub(e.windowStart) > q.Window {
		e.count = 1
		e.windowStart = now
	} else {
		e.count++
	}

	resetAt := e.windowStart.Add(q.Window)
	if e.count > q.MaxRequests {
		return Result{
			Allowed:    false,
			Limit:      q.MaxRequests,
			Remaining:  0,
			ResetAt:    resetAt,
			RetryAfter: resetAt.Sub(now),
			Message:    q.Message,
		}
	}
	return Result{
		Allowed:   true,
		Limit:     q.MaxRequests,
		Remaining: q.MaxRequests - e.count,
		ResetAt:   resetAt,
		Message:   q.Message,
	}
}

// Prune drops entries whose window expired before cutoff.
func (s *Store) Prune() {
	now := s.now()
	s.entries.Range(func(key, v any) bool {
		e := v.(*entry)
		e.mu.Lock()
		// An entry is stale once its longest possible window has passed.
		stale := now.Sub(e.windowStart) > s.longestWindow()
		e.mu.Unlock()
		if stale {
			s.entries.Delete(key)
		}
		return true
	})
}

func (s *Store) longestWindow() time.Duration {
	var max time.Duration
	for _, q := range s.quotas {
		if q.Window > max {
			max = q.Window
		}
	}
	return max
}

// StartPruning launches a background loop that prunes stale entries every
// interval until Stop is called.
func (s *Store) StartPruning(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Prune()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop terminates the pruning loop.
func (s *Store) Stop() {
	s.once.Do(func() { close(s.stop) })
}
