package services

import (
	"context"

	"github.com/obs-bank/ledger-core/internal/core/domain"
	"github.com/obs-bank/ledger-core/internal/dto"
)

// UserSvcFacade covers registration and credential verification. Token
// issuance stays in the handler layer; the service deals in domain users.
type UserSvcFacade interface {
	// Register creates a new user with the CUSTOMER role.
	Register(ctx context.Context, req dto.SignupRequest) (*domain.User, error)

	// Authenticate verifies the username/password pair and returns the user.
	// Fails with apperrors.ErrUnauthorized on a mismatch.
	Authenticate(ctx context.Context, req dto.SigninRequest) (*domain.User, error)

	// GetUserByID retrieves a user by its identifier.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
