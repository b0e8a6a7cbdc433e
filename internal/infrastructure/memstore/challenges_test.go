package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studlink-api/internal/domain"
)

func liveChallenge(email, code string) *domain.Challenge {
	return &domain.Challenge{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(10 * time.Minute).Unix(),
	}
}

func TestConsume_HappyPath(t *testing.T) {
	s := NewChallengeStore()
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, liveChallenge("a@x.edu", "482193")))

	c, err := s.Consume(ctx, "a@x.edu", "482193")
	require.NoError(t, err)
	assert.Equal(t, "a@x.edu", c.Email)

	// Consumed exactly once: a second attempt with the same code fails.
	_, err = s.Consume(ctx, "a@x.edu", "482193")
	assert.ErrorIs(t, err, domain.ErrChallengeNotFound)
}

func TestConsume_NeverRequested(t *testing.T) {
	s := NewChallengeStore()
	_, err := s.Consume(context.Background(), "b@x.edu", "000000")
	assert.ErrorIs(t, err, domain.ErrChallengeNotFound)
}

func TestConsume_WrongCode_KeepsChallenge(t *testing.T) {
	s := NewChallengeStore()
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, liveChallenge("a@x.edu", "482193")))

	_, err := s.Consume(ctx, "a@x.edu", "111111")
	assert.ErrorIs(t, err, domain.ErrCodeMismatch)

	// Retry with the correct code still succeeds.
	_, err = s.Consume(ctx, "a@x.edu", "482193")
	assert.NoError(t, err)
}

func TestConsume_Expired_DeletesChallenge(t *testing.T) {
	s := NewChallengeStore()
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, &domain.Challenge{
		Email:     "a@x.edu",
		Code:      "482193",
		ExpiresAt: time.Now().Add(-time.Second).Unix(),
	}))

	_, err := s.Consume(ctx, "a@x.edu", "482193")
	assert.ErrorIs(t, err, domain.ErrChallengeExpired)

	// One-shot expiry consumption: resubmitting fails with not-found.
	_, err = s.Consume(ctx, "a@x.edu", "482193")
	assert.ErrorIs(t, err, domain.ErrChallengeNotFound)
}

func TestPut_OverwritesExistingChallenge(t *testing.T) {
	s := NewChallengeStore()
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, liveChallenge("a@x.edu", "111111")))
	require.NoError(t, s.Put(ctx, liveChallenge("a@x.edu", "222222")))

	// Old code no longer verifies.
	_, err := s.Consume(ctx, "a@x.edu", "111111")
	assert.ErrorIs(t, err, domain.ErrCodeMismatch)

	_, err = s.Consume(ctx, "a@x.edu", "222222")
	assert.NoError(t, err)
}

func TestDelete_RemovesChallenge(t *testing.T) {
	s := NewChallengeStore()
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, liveChallenge("a@x.edu", "482193")))
	require.NoError(t, s.Delete(ctx, "a@x.edu"))

	_, err := s.Consume(ctx, "a@x.edu", "482193")
	assert.ErrorIs(t, err, domain.ErrChallengeNotFound)
}

func TestConsume_Concurrent_AtMostOneSuccess(t *testing.T) {
	s := NewChallengeStore()
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, liveChallenge("a@x.edu", "482193")))

	const attempts = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Consume(ctx, "a@x.edu", "482193"); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, successes)
}

func TestSweep_EvictsOnlyExpired(t *testing.T) {
	s := NewChallengeStore()
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, liveChallenge("live@x.edu", "111111")))
	require.NoError(t, s.Put(ctx, &domain.Challenge{
		Email:     "stale@x.edu",
		Code:      "222222",
		ExpiresAt: time.Now().Add(-time.Minute).Unix(),
	}))

	assert.Equal(t, 1, s.sweep(time.Now()))

	_, err := s.Consume(ctx, "live@x.edu", "111111")
	assert.NoError(t, err)
	_, err = s.Consume(ctx, "stale@x.edu", "222222")
	assert.ErrorIs(t, err, domain.ErrChallengeNotFound)
}
