package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"dashboard/internal/adapters/storage"
	"dashboard/internal/domain/account"
)

// AccountStoreForLogin defines the store interface needed by Login.
type AccountStoreForLogin interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the identity placed in the session.
type LoginResult struct {
	AccountID string
	Email     string
	Name      string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	AccountStore AccountStoreForLogin
}

var (
	// ErrInvalidCredentials covers unknown email and wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrLoginUnavailable means the account lookup itself failed.
	ErrLoginUnavailable = errors.New("login unavailable")
)

// ExecuteLogin validates credentials and returns account info for session creation.
// PRE: none
// POST: returns ErrInvalidCredentials for bad input, ErrLoginUnavailable when storage fails
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || !strings.Contains(email, "@") || len(input.Password) < account.MinPassword {
		slog.Info("auth_event", "event", "login_failed", "reason", "malformed")
		return LoginResult{}, ErrInvalidCredentials
	}

	acct, err := deps.AccountStore.GetByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		slog.Info("auth_event", "event", "login_failed", "email", email, "reason", "not_found")
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		slog.Error("auth_event", "event", "login_error", "email", email, "reason", storage.Reason(err), "error", err)
		return LoginResult{}, ErrLoginUnavailable
	}

	if err := acct.CheckPassword(input.Password); err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", email, "reason", "wrong_password")
		return LoginResult{}, ErrInvalidCredentials
	}

	slog.Info("auth_event", "event", "login_success", "email", email)
	return LoginResult{AccountID: acct.ID, Email: acct.Email, Name: acct.Name}, nil
}
