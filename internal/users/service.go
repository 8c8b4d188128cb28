package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/shared/validation"
)

// Balances reads a user's credit balance.
type Balances interface {
	Balance(ctx context.Context, userID string) (int, error)
}

type Service struct {
	Repo     Repo
	Tokens   *auth.Manager
	Credits  Balances
	HashCost int
}

func NewService(repo Repo, tokens *auth.Manager, credits Balances) *Service {
	return &Service{Repo: repo, Tokens: tokens, Credits: credits, HashCost: bcrypt.DefaultCost}
}

// Signup creates a password account. Emails are unique case-insensitively.
func (s *Service) Signup(ctx context.Context, in SignupInput) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	in.Username = strings.TrimSpace(in.Username)
	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost())
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	user := User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	telemetry.Info("user.signup", map[string]any{"user_id": user.ID})
	return user, nil
}

// Authenticate checks credentials and returns the matching user.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	user, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if user.PasswordHash == "" {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and issues a token pair along with the credit balance.
func (s *Service) Login(ctx context.Context, in LoginInput) (Session, error) {
	user, err := s.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		return Session{}, err
	}
	return s.sessionFor(ctx, user)
}

// Refresh exchanges a refresh token for a new access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.Tokens.Verify(refreshToken, auth.TokenRefresh)
	if err != nil {
		return "", err
	}
	user, err := s.Repo.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", auth.ErrInvalidToken
		}
		return "", err
	}
	return s.Tokens.IssueAccess(identity(user))
}

// LoginExternal links an identity verified by an external provider to an
// account with the same email, creating a password-less account if needed.
func (s *Service) LoginExternal(ctx context.Context, email, name string) (Session, error) {
	email = normalizeEmail(email)
	if email == "" {
		return Session{}, errors.New("email is required")
	}
	user, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		username := strings.TrimSpace(name)
		if username == "" {
			username = strings.SplitN(email, "@", 2)[0]
		}
		user = User{ID: uuid.NewString(), Username: username, Email: email}
		err = s.Repo.Create(ctx, user)
		if errors.Is(err, ErrEmailTaken) {
			user, err = s.Repo.GetByEmail(ctx, email)
		}
	}
	if err != nil {
		return Session{}, err
	}
	return s.sessionFor(ctx, user)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

// Balance returns the user's credits, or zero when no ledger is wired.
func (s *Service) Balance(ctx context.Context, userID string) (int, error) {
	if s.Credits == nil {
		return 0, nil
	}
	return s.Credits.Balance(ctx, userID)
}

func (s *Service) sessionFor(ctx context.Context, user User) (Session, error) {
	pair, err := s.Tokens.IssuePair(identity(user))
	if err != nil {
		return Session{}, err
	}
	credits, err := s.Balance(ctx, user.ID)
	if err != nil {
		return Session{}, err
	}
	return Session{User: user, Access: pair.Access, Refresh: pair.Refresh, Credits: credits}, nil
}

func (s *Service) hashCost() int {
	if s.HashCost == 0 {
		return bcrypt.DefaultCost
	}
	return s.HashCost
}

func identity(u User) auth.Identity {
	return auth.Identity{UserID: u.ID, Email: u.Email, Staff: u.IsStaff}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
