package domain

import (
	"context"
	"errors"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// UnknownUser is the display name shown when an account has no usable name.
const UnknownUser = "Unknown User"

// User represents the core account model in the application domain.
type User struct {
	ID       *surrealmodels.RecordID `json:"id,omitempty"`
	Email    string                  `json:"email"`
	Password string                  `json:"password,omitempty"`
	Name     *string                 `json:"name,omitempty"`
}

// DisplayName returns the user's human-readable name. A nil user, a nil name,
// or an empty name all degrade to the UnknownUser literal rather than failing.
func (u *User) DisplayName() string {
	if u == nil || u.Name == nil || *u.Name == "" {
		return UnknownUser
	}
	return *u.Name
}

var (
	// ErrUserAlreadyExists is returned when registering an email that is taken.
	ErrUserAlreadyExists = errors.New("user with this email already exists")
	// ErrInvalidCredentials is returned when a sign-in attempt is rejected.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserRepository defines the contract for account storage and authentication.
// It lives in the domain because it's a requirement OF the domain, not of the
// database implementation.
type UserRepository interface {
	// SignUp creates the account and returns a session token for it.
	SignUp(ctx context.Context, user *User, password string) (string, error)
	// SignIn verifies credentials and returns a session token.
	SignIn(ctx context.Context, user *User, password string) (string, error)
	// Authenticate resolves a session token to the account it belongs to.
	Authenticate(ctx context.Context, token string) (*User, error)
	// FindUserByEmail returns the account for an email, or nil when absent.
	FindUserByEmail(ctx context.Context, email string) (*User, error)
}
