package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token types carried in the "typ" claim.
const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	errMissingSecret = errors.New("jwt secret not configured")
)

// Claims represents the identity contained in a JWT.
type Claims struct {
	Email     string `json:"email,omitempty"`
	Staff     bool   `json:"staff,omitempty"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// Identity is the subset of a user that ends up in tokens.
type Identity struct {
	UserID string
	Email  string
	Staff  bool
}

// TokenPair is returned on login.
type TokenPair struct {
	Access  string
	Refresh string
}

// Manager issues and verifies HS256 access and refresh tokens.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewManager builds a Manager; an empty secret is rejected.
func NewManager(secret string, accessTTL, refreshTTL time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, errMissingSecret
	}
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

// IssuePair signs a fresh access and refresh token for id.
func (m *Manager) IssuePair(id Identity) (TokenPair, error) {
	access, err := m.sign(id, TokenAccess, m.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := m.sign(id, TokenRefresh, m.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// IssueAccess signs a single access token.
func (m *Manager) IssueAccess(id Identity) (string, error) {
	return m.sign(id, TokenAccess, m.accessTTL)
}

// Verify parses token and checks that it is of the wanted type.
func (m *Manager) Verify(token, wantType string) (Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" || claims.TokenType != wantType {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

func (m *Manager) sign(id Identity, typ string, ttl time.Duration) (string, error) {
	if id.UserID == "" {
		return "", errors.New("user id is required")
	}
	now := m.now().UTC()
	claims := Claims{
		Email:     id.Email,
		Staff:     id.Staff,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}
