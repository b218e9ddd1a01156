// Package auth implements the credential-and-token core: registration,
// login and the access gate over protected routes.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/kbukum/authd/internal/apperrors"
	"github.com/kbukum/authd/internal/logger"
	"github.com/kbukum/authd/internal/password"
	"github.com/kbukum/authd/internal/token"
	"github.com/kbukum/authd/internal/user"
	"github.com/kbukum/authd/internal/validation"
)

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=256"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Phone    string `json:"phone" validate:"required,max=32"`
}

// LoginRequest is the payload for a login attempt.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult carries the issued bearer token.
type LoginResult struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

// Service orchestrates the authentication flows. It holds no mutable
// state: every field is fixed at construction, so one Service serves all
// requests concurrently.
type Service struct {
	store  user.Store
	hasher *password.Hasher
	tokens *token.Service
	log    *logger.Logger

	// dummyHash is verified against on the unknown-username path so a
	// failed lookup costs about as much as a failed password check.
	dummyHash string
}

// NewService creates the auth service.
func NewService(store user.Store, hasher *password.Hasher, tokens *token.Service, log *logger.Logger) (*Service, error) {
	dummy, err := hasher.Hash("authd-timing-equalizer")
	if err != nil {
		return nil, err
	}
	return &Service{
		store:     store,
		hasher:    hasher,
		tokens:    tokens,
		log:       log.WithComponent("auth"),
		dummyHash: dummy,
	}, nil
}

// Register creates a new active account with a hashed credential and
// returns its public view. Duplicate usernames or emails yield a conflict;
// the response never carries the password hash.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (user.PublicUser, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)

	if err := validation.Validate(req); err != nil {
		return user.PublicUser{}, err
	}

	exists, err := s.store.Exists(ctx, req.Username, req.Email)
	if err != nil {
		return user.PublicUser{}, apperrors.Database(err)
	}
	if exists {
		s.log.Warn("Registration rejected: account exists", logger.Fields(
			logger.FieldUsername, req.Username,
		))
		return user.PublicUser{}, apperrors.AlreadyExists()
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, password.ErrEmptyPassword) || errors.Is(err, password.ErrPasswordTooLong) {
			return user.PublicUser{}, apperrors.Validation(err.Error())
		}
		return user.PublicUser{}, apperrors.Internal(err)
	}

	u := &user.User{
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Active:       true,
	}
	if err := s.store.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrDuplicate) {
			// Lost the race against a concurrent registration; the unique
			// index is the source of truth.
			return user.PublicUser{}, apperrors.AlreadyExists()
		}
		return user.PublicUser{}, apperrors.Database(err)
	}

	s.log.Info("User registered", logger.Fields(
		logger.FieldUserID, u.ID,
		logger.FieldUsername, u.Username,
	))
	return u.Public(), nil
}

// Login verifies the credentials and issues a bearer token. Unknown
// username, deactivated account and wrong password all return the same
// generic error after comparable work, so neither the response nor its
// timing reveals whether the account exists.
func (s *Service) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	if err := validation.Validate(req); err != nil {
		return LoginResult{}, err
	}

	u, err := s.store.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			s.hasher.Verify(req.Password, s.dummyHash)
			s.log.Warn("Login failed: unknown username", logger.Fields(
				logger.FieldUsername, req.Username,
				logger.FieldReason, "user_not_found",
			))
			return LoginResult{}, apperrors.InvalidCredentials()
		}
		return LoginResult{}, apperrors.Database(err)
	}

	ok := s.hasher.Verify(req.Password, u.PasswordHash)

	if !u.Active {
		s.log.Warn("Login failed: account deactivated", logger.Fields(
			logger.FieldUserID, u.ID,
			logger.FieldReason, "account_inactive",
		))
		return LoginResult{}, apperrors.InvalidCredentials()
	}
	if !ok {
		s.log.Warn("Login failed: wrong password", logger.Fields(
			logger.FieldUserID, u.ID,
			logger.FieldReason, "password_mismatch",
		))
		return LoginResult{}, apperrors.InvalidCredentials()
	}

	tok, err := s.tokens.Issue(u.ID)
	if err != nil {
		return LoginResult{}, apperrors.Internal(err)
	}

	s.log.Info("User logged in", logger.Fields(
		logger.FieldUserID, u.ID,
	))
	return LoginResult{
		Token:     tok,
		TokenType: "Bearer",
		ExpiresIn: int64(s.tokens.TTL().Seconds()),
	}, nil
}

// Profile returns the public view of the authenticated subject. A
// well-formed token whose subject no longer resolves is treated as an
// authentication failure, not a 404.
func (s *Service) Profile(ctx context.Context, userID string) (user.PublicUser, error) {
	u, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.PublicUser{}, apperrors.Unauthorized().WithReason(apperrors.ReasonUnknownSubject)
		}
		return user.PublicUser{}, apperrors.Database(err)
	}
	return u.Public(), nil
}
