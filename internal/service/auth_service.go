package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"inkpost/internal/models"
	"inkpost/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Domain errors for auth flows.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserExists         = errors.New("user already in use")
	ErrNoAdminPassword    = errors.New("admin password is not configured")
)

// AuthService handles admin accounts and session tokens.
type AuthService struct {
	users       repository.Users
	signingKey  []byte
	tokenTTL    time.Duration
	revocations RevocationStore
	now         func() time.Time
}

// NewAuthService builds the service. A zero ttl issues tokens without expiry;
// a nil revocation store disables server-side logout.
func NewAuthService(users repository.Users, signingKey []byte, ttl time.Duration, revocations RevocationStore) *AuthService {
	if revocations == nil {
		revocations = NoopRevocations{}
	}
	return &AuthService{
		users:       users,
		signingKey:  signingKey,
		tokenTTL:    ttl,
		revocations: revocations,
		now:         time.Now,
	}
}

// Claims defines JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"userId"`
}

// SignUp hashes password and creates a new user. The returned user carries no hash.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.User{}, fmt.Errorf("%w: username is required", ErrValidation)
	}
	hash, err := hashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	id, err := s.users.Create(ctx, username, hash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.User{}, ErrUserExists
		}
		return models.User{}, err
	}
	return models.User{ID: id, Username: username}, nil
}

// Login validates credentials and returns a signed session token.
// Unknown users and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (Session, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return Session{}, err
	}
	if u == nil {
		return Session{}, ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	return s.issueToken(u.ID)
}

// ParseToken verifies the signature (and expiry, when present) and returns the user id.
func (s *AuthService) ParseToken(ctx context.Context, accessToken string) (int, error) {
	claims, err := s.parse(accessToken)
	if err != nil {
		return 0, err
	}
	if claims.ID != "" {
		revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return 0, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return 0, ErrInvalidToken
		}
	}
	return claims.UserID, nil
}

// Revoke marks the token as unusable until it would have expired anyway.
// Tokens that do not verify are ignored: they are already unusable.
func (s *AuthService) Revoke(ctx context.Context, accessToken string) error {
	claims, err := s.parse(accessToken)
	if err != nil || claims.ID == "" {
		return nil
	}
	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
		if ttl <= 0 {
			return nil
		}
	}
	return s.revocations.Revoke(ctx, claims.ID, ttl)
}

// EnsureAdmin creates the bootstrap account when no user exists yet.
// It reports whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	n, err := s.users.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if strings.TrimSpace(password) == "" {
		return false, ErrNoAdminPassword
	}
	if _, err := s.SignUp(ctx, username, password); err != nil {
		// another instance may have won the race
		if errors.Is(err, ErrUserExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *AuthService) parse(accessToken string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) issueToken(userID int) (Session, error) {
	now := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(now),
		},
		UserID: userID,
	}
	var expiresAt time.Time
	if s.tokenTTL > 0 {
		expiresAt = now.Add(s.tokenTTL)
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}
	return Session{Token: signed, ExpiresAt: expiresAt}, nil
}

func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", fmt.Errorf("%w: password is required", ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password is too long", ErrValidation)
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
