package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

const defaultTokenTTL = 24 * time.Hour

// TokenService mints and validates the signed verification tokens embedded in
// email links. A token binds exactly one email address for a limited window.
type TokenService interface {
	Issue(email string) (string, error)
	Decode(token string) (string, error)
}

type emailClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type tokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService takes the secret per instance so tests can run with their
// own keys. Rotating the secret invalidates all outstanding tokens. A zero
// ttl means the default 24h window.
func NewTokenService(secret string, ttl time.Duration) TokenService {
	if ttl == 0 {
		ttl = defaultTokenTTL
	}
	return &tokenService{secret: []byte(secret), ttl: ttl}
}

func (s *tokenService) Issue(email string) (string, error) {
	now := time.Now()
	claims := &emailClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *tokenService) Decode(token string) (string, error) {
	claims := &emailClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !parsed.Valid || claims.Email == "" {
		return "", ErrTokenInvalid
	}
	return claims.Email, nil
}
