package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrRevokedToken = errors.New("token has been revoked")
)

// Claims is the payload of both access and refresh tokens.
type Claims struct {
	UserID uint64 `json:"userId"`
	jwt.RegisteredClaims
}

// TokenPair is what a successful login or rotation hands back to the client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// TokenService issues and verifies HS256 signed session tokens.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	denylist      Denylist
	now           func() time.Time
}

func NewTokenService(cfg TokenConfig, denylist Denylist) *TokenService {
	if denylist == nil {
		denylist = NopDenylist{}
	}
	return &TokenService{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		denylist:      denylist,
		now:           time.Now,
	}
}

// SetClock replaces the time source. Used by tests.
func (s *TokenService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *TokenService) AccessTTL() time.Duration { return s.accessTTL }
func (s *TokenService) RefreshTTL() time.Duration { return s.refreshTTL }

func (s *TokenService) IssueAccessToken(userID uint64) (string, error) {
	return s.issue(userID, s.accessSecret, s.accessTTL)
}

func (s *TokenService) IssueRefreshToken(userID uint64) (string, error) {
	return s.issue(userID, s.refreshSecret, s.refreshTTL)
}

// IssuePair issues a fresh access and refresh token for userID.
func (s *TokenService) IssuePair(userID uint64) (TokenPair, error) {
	access, err := s.IssueAccessToken(userID)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.IssueRefreshToken(userID)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *TokenService) issue(userID uint64, secret []byte, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and lifetime of token against secret.
// Every failure is reported as ErrInvalidToken.
func (s *TokenService) Verify(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *TokenService) VerifyAccessToken(token string) (*Claims, error) {
	return s.Verify(token, s.accessSecret)
}

// VerifyRefreshToken verifies token and rejects it when its id is on the
// denylist.
func (s *TokenService) VerifyRefreshToken(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.Verify(token, s.refreshSecret)
	if err != nil {
		return nil, err
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check denylist: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrRevokedToken)
	}
	return claims, nil
}

// Rotate exchanges a valid refresh token for a new pair. The presented
// token is revoked until its own expiry.
func (s *TokenService) Rotate(ctx context.Context, oldRefresh string) (TokenPair, *Claims, error) {
	claims, err := s.VerifyRefreshToken(ctx, oldRefresh)
	if err != nil {
		return TokenPair{}, nil, err
	}

	if err := s.revokeClaims(ctx, claims); err != nil {
		return TokenPair{}, nil, err
	}

	pair, err := s.IssuePair(claims.UserID)
	if err != nil {
		return TokenPair{}, nil, err
	}
	return pair, claims, nil
}

// Revoke puts a refresh token on the denylist. Tokens that do not verify
// are already unusable and are ignored.
func (s *TokenService) Revoke(ctx context.Context, refresh string) error {
	claims, err := s.Verify(refresh, s.refreshSecret)
	if err != nil {
		return nil
	}
	return s.revokeClaims(ctx, claims)
}

func (s *TokenService) revokeClaims(ctx context.Context, claims *Claims) error {
	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
