package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/surrealdb/surrealdb.go"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mwhitaker/blenny/internal/domain"
)

// SurrealUserStore implements domain.UserRepository on SurrealDB's
// record-access ("account") scope.
type SurrealUserStore struct {
	db     *surrealdb.DB
	ns     string
	dbName string
}

// NewSurrealUserStore creates a new SurrealUserStore.
func NewSurrealUserStore(db *surrealdb.DB, ns, dbName string) *SurrealUserStore {
	return &SurrealUserStore{db: db, ns: ns, dbName: dbName}
}

// FindUserByEmail queries for a single user by their email address.
func (s *SurrealUserStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	// Ensure the correct namespace and database are selected for this operation.
	if err := s.db.Use(ctx, s.ns, s.dbName); err != nil {
		return nil, fmt.Errorf("failed to set database scope: %w", err)
	}

	query := "SELECT * FROM user WHERE email = $email"
	params := map[string]any{"email": email}

	user, err := QueryOne[domain.User](ctx, s.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}

	return user, nil
}

// SignUp registers a new account and returns its session token. A display
// name is always persisted: the caller's choice when one was given,
// otherwise one derived from the email's local part.
func (s *SurrealUserStore) SignUp(ctx context.Context, user *domain.User, password string) (string, error) {
	var name string
	if user.Name != nil {
		name = *user.Name
	}
	if name == "" {
		if derived := displayNameFromEmail(user.Email); derived != "" {
			name = derived
			user.Name = &name
		}
	}

	// Format matches the JavaScript SDK's implementation
	token, err := s.db.SignUp(ctx, map[string]interface{}{
		"ns":       s.ns,      // lowercase 'ns' to match JS SDK
		"db":       s.dbName,  // lowercase 'db' to match JS SDK
		"ac":       "account", // access control namespace
		"email":    user.Email,
		"name":     name,
		"password": password,
	})

	// Check for a specific duplicate user error from the database driver.
	if err != nil && strings.Contains(err.Error(), "already exists") {
		return "", domain.ErrUserAlreadyExists
	}

	if err == nil && token != "" {
		slog.Info("Successfully signed up user", "email", user.Email)
	}

	return token, err
}

// SignIn authenticates an existing account and returns its session token.
func (s *SurrealUserStore) SignIn(ctx context.Context, user *domain.User, password string) (string, error) {
	// Format matches the JavaScript SDK's implementation
	token, err := s.db.SignIn(ctx, map[string]interface{}{
		"ns":       s.ns,      // lowercase 'ns' to match JS SDK
		"db":       s.dbName,  // lowercase 'db' to match JS SDK
		"ac":       "account", // access control namespace
		"email":    user.Email,
		"password": password,
	})

	if err == nil && token != "" {
		slog.Info("Successfully signed in user", "email", user.Email)
	}

	return token, err
}

// Authenticate validates a session token and returns the associated user.
func (s *SurrealUserStore) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	// This validates the token against the 'account' scope and sets the auth
	// context for subsequent queries on this connection.
	err := s.db.Authenticate(ctx, token)
	if err != nil {
		// This error indicates the token is invalid or expired.
		return nil, domain.ErrInvalidCredentials
	}

	// After successful authentication, fetch the current user's record.
	users, err := Query[domain.User](ctx, s.db, "SELECT * FROM $auth", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get authenticated user: %w", err)
	}

	if len(users) == 0 || users[0].ID == nil {
		return nil, fmt.Errorf("no authenticated user found")
	}

	user := &users[0]

	// Clear the password before returning
	user.Password = ""

	return user, nil
}

// displayNameFromEmail derives a presentable name from the local part of an
// email address: "ada.lovelace@example.com" becomes "Ada Lovelace".
func displayNameFromEmail(email string) string {
	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}

	local = strings.NewReplacer(".", " ", "_", " ", "-", " ", "+", " ").Replace(local)
	local = strings.Join(strings.Fields(local), " ")
	if local == "" {
		return ""
	}

	return cases.Title(language.English).String(strings.ToLower(local))
}
