package worker

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"doable/internal/domain/entity"
	"doable/internal/domain/repository"
	"doable/internal/infra/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSessionRepo struct {
	mu       sync.Mutex
	sessions []*entity.Session
}

func (r *stubSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = append(r.sessions, session)

	return nil
}

func (r *stubSessionRepo) FindByTokenHash(_ context.Context, tokenHash string) (*entity.Session, error) {
	return nil, repository.ErrSessionNotFound
}

func (r *stubSessionRepo) DeleteByTokenHash(_ context.Context, tokenHash string) error {
	return repository.ErrSessionNotFound
}

func (r *stubSessionRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.sessions[:0]
	var removed int64
	for _, session := range r.sessions {
		if session.Expired(now) {
			removed++

			continue
		}
		kept = append(kept, session)
	}
	r.sessions = kept

	return removed, nil
}

func (r *stubSessionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}

func TestSessionSweeper_RemovesOnlyExpiredSessions(t *testing.T) {
	repo := &stubSessionRepo{}
	require.NoError(t, repo.Create(context.Background(), &entity.Session{
		TokenHash: "stale",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))
	require.NoError(t, repo.Create(context.Background(), &entity.Session{
		TokenHash: "live",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	sweeper := &sessionSweeper{
		interval:    50 * time.Millisecond,
		sessionRepo: repo,
		collector:   metrics.NewCollector(metrics.Params{}),
		logger:      slog.New(slog.DiscardHandler),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}

	go func() {
		_ = sweeper.Serve(context.Background())
	}()

	// The first sweep runs immediately on start.
	require.Eventually(t, func() bool {
		return repo.count() == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, sweeper.stopHook(context.Background()))

	session, err := repo.DeleteExpired(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, session)
	assert.Equal(t, 1, repo.count())
}

func TestSessionSweeper_StopUnblocksServe(t *testing.T) {
	sweeper := &sessionSweeper{
		interval:    time.Hour,
		sessionRepo: &stubSessionRepo{},
		collector:   metrics.NewCollector(metrics.Params{}),
		logger:      slog.New(slog.DiscardHandler),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}

	served := make(chan error, 1)
	go func() {
		served <- sweeper.Serve(context.Background())
	}()

	require.NoError(t, sweeper.stopHook(context.Background()))

	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after stop")
	}
}
