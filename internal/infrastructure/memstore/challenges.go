package memstore

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/studlink-api/internal/domain"
)

// ChallengeStore is an in-memory OTP challenge store keyed by email.
// The mutex makes the read-check-delete sequence in Consume atomic, so two
// concurrent verification attempts against the same challenge cannot both
// succeed. Intended for development and tests; production uses DynamoDB.
type ChallengeStore struct {
	mu    sync.Mutex
	items map[string]domain.Challenge
}

func NewChallengeStore() *ChallengeStore {
	return &ChallengeStore{items: make(map[string]domain.Challenge)}
}

// Put stores the challenge, overwriting any live challenge for the same email.
func (s *ChallengeStore) Put(_ context.Context, c *domain.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[c.Email] = *c
	return nil
}

// Consume performs the read-check-delete sequence as one atomic unit.
// A matching, unexpired challenge is deleted and returned. A wrong code
// leaves the challenge intact so the caller may retry. An expired challenge
// is deleted on discovery and must be re-requested.
func (s *ChallengeStore) Consume(_ context.Context, email, code string) (*domain.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.items[email]
	if !ok {
		return nil, domain.ErrChallengeNotFound
	}
	if c.Code != code {
		return nil, domain.ErrCodeMismatch
	}
	if c.Expired(time.Now()) {
		delete(s.items, email)
		return nil, domain.ErrChallengeExpired
	}
	delete(s.items, email)
	return &c, nil
}

// Delete removes the challenge for email, if any.
func (s *ChallengeStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, email)
	return nil
}

// StartSweeper evicts expired challenges every interval until ctx is done.
// Without it, unconsumed expired entries would be retained indefinitely.
func (s *ChallengeStore) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if n := s.sweep(time.Now()); n > 0 {
					slog.Debug("evicted expired challenges", "count", n)
				}
			}
		}
	}()
}

func (s *ChallengeStore) sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for email, c := range s.items {
		if c.Expired(now) {
			delete(s.items, email)
			n++
		}
	}
	return n
}
