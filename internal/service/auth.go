package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/hash"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/tokens"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type AuthService struct {
	Repo   UserStore
	Tokens *tokens.Issuer
	Events mykafka.Publisher
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = models.RoleUser
	}

	switch {
	case name == "":
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	case email == "":
		return nil, fmt.Errorf("%w: email required", ErrValidation)
	case req.Password == "":
		return nil, fmt.Errorf("%w: password required", ErrValidation)
	case !models.ValidRole(role):
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if err := hash.ValidatePassword(req.Password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
		Role:         role,
	}

	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	publish(ctx, s.Events, mykafka.TopicUserEvents, user.ID.String(), map[string]any{
		"type":   "user_registered",
		"userID": user.ID.String(),
		"role":   user.Role,
	})

	return user, nil
}

// Login reads the user by email once and never writes. A missing user and a
// wrong password return the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		l.Error("login_error", "status", 500, "reason", "cannot read user", "error", err)
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.Tokens.CreateAccessToken(user.ID.String(), user.Role)
	if err != nil {
		l.Error("login_error", "status", 500, "reason", "cannot sign token", "error", err)
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &LoginResult{Token: token, ExpiresAt: exp, User: user}, nil
}
