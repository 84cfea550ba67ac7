package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/aussiebroadwan/hireproof/internal/verify/store"
	"github.com/aussiebroadwan/hireproof/pkg/cryptox"
	"github.com/aussiebroadwan/hireproof/pkg/idx"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 128

	bootstrapPasswordLength = 24
)

type UserService struct {
	Store store.Store
	Now   func() time.Time
}

type RegisterParams struct {
	Email       string
	DisplayName string
	Password    string
	Role        domain.Role
}

// Register creates a seeker or employer account. Admins are only created
// by the bootstrap path.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (domain.User, error) {
	if p.Role != domain.RoleSeeker && p.Role != domain.RoleEmployer {
		return domain.User{}, domain.Validation("role must be SEEKER or EMPLOYER")
	}
	email, err := normalizeEmail(p.Email)
	if err != nil {
		return domain.User{}, err
	}
	name := strings.TrimSpace(p.DisplayName)
	if name == "" {
		return domain.User{}, domain.Validation("displayName is required")
	}
	if n := utf8.RuneCountInString(p.Password); n < MinPasswordLength || n > MaxPasswordLength {
		return domain.User{}, domain.Validation("password must be %d to %d characters", MinPasswordLength, MaxPasswordLength)
	}

	return s.create(ctx, email, name, p.Password, p.Role)
}

func (s *UserService) create(ctx context.Context, email, name, password string, role domain.Role) (domain.User, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := clock(s.Now).now()
	u := domain.User{
		ID:           string(idx.NewAt(now)),
		Email:        email,
		DisplayName:  name,
		PasswordHash: hash,
		Role:         role,
		Status:       domain.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = s.Store.Users().CreateUser(ctx, u)
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.User{}, domain.ErrEmailTaken
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// Login checks the primary credential. Unknown email and wrong password
// are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to load user: %w", err)
	}

	err = cryptox.VerifyPassword(password, u.PasswordHash)
	if errors.Is(err, cryptox.ErrPasswordMismatch) {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to verify password: %w", err)
	}

	if u.Status == domain.UserSuspended {
		return domain.User{}, domain.ErrAccountSuspended
	}
	return u, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, domain.ErrNotFound
	}
	return u, err
}

// EnsureBootstrapAdmin creates the first admin when none exists. Without
// a configured password one is generated and logged once.
func (s *UserService) EnsureBootstrapAdmin(ctx context.Context, logger *slog.Logger, email, password string) error {
	n, err := s.Store.Users().CountUsersByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if n > 0 {
		return nil
	}

	addr, err := normalizeEmail(email)
	if err != nil {
		return fmt.Errorf("bootstrap admin email: %w", err)
	}

	generated := password == ""
	if generated {
		password, err = cryptox.GeneratePassword(bootstrapPasswordLength)
		if err != nil {
			return err
		}
	}

	u, err := s.create(ctx, addr, "Administrator", password, domain.RoleAdmin)
	if err != nil {
		return err
	}

	if generated {
		logger.Warn("bootstrap admin created with generated password",
			"email", u.Email,
			"password", password,
		)
	} else {
		logger.Info("bootstrap admin created", "email", u.Email)
	}
	return nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", domain.Validation("email is not a valid address")
	}
	return email, nil
}

// requireActive reloads the caller behind a token. A suspension takes
// effect on the next write, not when the token expires.
func requireActive(ctx context.Context, users store.Users, userID string) error {
	u, err := users.GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.ErrAccountMissing
	}
	if err != nil {
		return fmt.Errorf("failed to load caller: %w", err)
	}
	if u.Status == domain.UserSuspended {
		return domain.ErrAccountSuspended
	}
	return nil
}
