package impl

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"doable/config"
	"doable/internal/domain/entity"
	domainerrors "doable/internal/domain/errors"
	"doable/internal/domain/repository"
)

// fakeHasher is a deterministic stand-in for the password hasher so tests can
// predict stored digests.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) string {
	return "digest:" + password
}

func (h fakeHasher) Check(password, digest string) bool {
	return h.Hash(password) == digest
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*entity.User

	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entity.User)}
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == username {
			copied := *user

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByCredentials(_ context.Context, username, digest string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == username && user.PasswordDigest == digest {
			copied := *user

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user

	return &copied, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}

	for _, existing := range r.users {
		if existing.Username == user.Username {
			return domainerrors.ErrUsernameTaken
		}
	}

	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied

	return nil
}

// fakeSessionRepo is an in-memory SessionRepository keyed by token hash.
type fakeSessionRepo struct {
	mu       sync.Mutex
	nextID   int64
	sessions map[string]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	session.ID = r.nextID
	session.CreatedAt = time.Now()
	copied := *session
	r.sessions[session.TokenHash] = &copied

	return nil
}

func (r *fakeSessionRepo) FindByTokenHash(_ context.Context, tokenHash string) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[tokenHash]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	if session.Expired(time.Now()) {
		return nil, repository.ErrSessionExpired
	}
	copied := *session

	return &copied, nil
}

func (r *fakeSessionRepo) DeleteByTokenHash(_ context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[tokenHash]; !ok {
		return repository.ErrSessionNotFound
	}
	delete(r.sessions, tokenHash)

	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for hash, session := range r.sessions {
		if session.Expired(now) {
			delete(r.sessions, hash)
			removed++
		}
	}

	return removed, nil
}

// fakeTodoRepo is an in-memory TodoRepository mirroring the row-count
// semantics of the real one.
type fakeTodoRepo struct {
	mu     sync.Mutex
	nextID int64
	todos  map[int64]*entity.Todo

	listErr error
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{todos: make(map[int64]*entity.Todo)}
}

func (r *fakeTodoRepo) FindActiveByOwner(_ context.Context, ownerID int64) ([]*entity.Todo, error) {
	return r.list(ownerID, false, func(a, b *entity.Todo) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})
}

func (r *fakeTodoRepo) FindDeletedByOwner(_ context.Context, ownerID int64) ([]*entity.Todo, error) {
	return r.list(ownerID, true, func(a, b *entity.Todo) bool {
		return a.UpdatedAt.After(b.UpdatedAt)
	})
}

func (r *fakeTodoRepo) list(ownerID int64, deleted bool, less func(a, b *entity.Todo) bool) ([]*entity.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listErr != nil {
		return nil, r.listErr
	}

	matches := make([]*entity.Todo, 0, len(r.todos))
	for _, todo := range r.todos {
		if todo.OwnerID == ownerID && todo.IsDeleted == deleted {
			copied := *todo
			matches = append(matches, &copied)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return less(matches[i], matches[j]) })

	return matches, nil
}

func (r *fakeTodoRepo) Create(_ context.Context, todo *entity.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	todo.ID = r.nextID
	now := time.Now()
	todo.CreatedAt = now
	todo.UpdatedAt = now
	copied := *todo
	r.todos[todo.ID] = &copied

	return nil
}

func (r *fakeTodoRepo) FindByID(_ context.Context, id, ownerID int64) (*entity.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	todo, ok := r.todos[id]
	if !ok || todo.OwnerID != ownerID || todo.IsDeleted {
		return nil, repository.ErrTodoNotFound
	}
	copied := *todo

	return &copied, nil
}

func (r *fakeTodoRepo) UpdateCompletion(_ context.Context, id int64, completed bool, ownerID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	todo, ok := r.todos[id]
	if !ok || todo.OwnerID != ownerID || todo.IsDeleted {
		return 0, nil
	}
	todo.Completed = completed
	todo.UpdatedAt = time.Now()

	return 1, nil
}

func (r *fakeTodoRepo) SoftDelete(_ context.Context, id, ownerID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	todo, ok := r.todos[id]
	if !ok || todo.OwnerID != ownerID || todo.IsDeleted {
		return 0, nil
	}
	todo.IsDeleted = true
	todo.UpdatedAt = time.Now()

	return 1, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testSessionConfig(ttl time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.Session = &config.SessionConfig{
		CookieName: "doable_session",
		TTL:        ttl,
	}

	return cfg
}
