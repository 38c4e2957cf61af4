package memory

import (
	"context"
	"sync"

	"github.com/obs-bank/ledger-core/internal/apperrors"
	"github.com/obs-bank/ledger-core/internal/core/domain"
	portsrepo "github.com/obs-bank/ledger-core/internal/core/ports/repositories"
)

type UserRepository struct {
	mu         sync.RWMutex
	byID       map[string]domain.User
	byUsername map[string]string // username -> user ID
}

// NewUserRepository creates an empty in-memory user store.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:       make(map[string]domain.User),
		byUsername: make(map[string]string),
	}
}

var _ portsrepo.UserRepository = (*UserRepository)(nil)

// SaveUser persists a new user.
func (r *UserRepository) SaveUser(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[user.Username]; exists {
		return apperrors.ErrDuplicate
	}

	r.byID[user.UserID] = user
	r.byUsername[user.Username] = user.UserID
	return nil
}

// FindUserByID retrieves a user by its unique identifier.
func (r *UserRepository) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &user, nil
}

// FindUserByUsername retrieves a user by username.
func (r *UserRepository) FindUserByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userID, ok := r.byUsername[username]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	user := r.byID[userID]
	return &user, nil
}
