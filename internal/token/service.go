// Package token issues and validates the bearer tokens that gate access to
// protected resources.
//
// Tokens are self-contained HS256 JWTs carrying subject, issued-at and
// expiry claims. The server holds no per-token state: validity is
// determined purely by the signature and expiry check at presentation
// time. There is no revocation list; a token stays valid for its full TTL
// regardless of later account changes. If revocation is ever needed, add a
// denylist keyed by token ID as an extra validation step.
package token

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the identity and timing assertions embedded in a token.
type Claims struct {
	gojwt.RegisteredClaims
}

// UserID returns the authenticated subject carried by the claims.
func (c *Claims) UserID() string {
	return c.Subject
}

// Validation failure classes. The HTTP boundary collapses all of them into
// one generic unauthorized response; they exist so logs can tell the
// rejection causes apart.
var (
	// ErrMalformed indicates the token could not be parsed into claims.
	ErrMalformed = errors.New("token: malformed")
	// ErrInvalidSignature indicates the signature did not match the claims.
	ErrInvalidSignature = errors.New("token: invalid signature")
	// ErrExpired indicates the token is past its expiry.
	ErrExpired = errors.New("token: expired")
)

// Service issues and validates signed tokens. The signing secret is fixed
// at construction and never mutated, so a single Service is safe for
// concurrent use across requests.
type Service struct {
	cfg Config
	key []byte
	now func() time.Time
}

// NewService creates a token service. It fails when the signing secret is
// absent or malformed; callers are expected to treat that as fatal at
// startup.
func NewService(cfg Config) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		cfg: cfg,
		key: []byte(cfg.Secret),
		now: time.Now,
	}, nil
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.cfg.TTL
}

// Issue creates a signed token asserting the given user as subject, valid
// from now until now + TTL.
func (s *Service) Issue(userID string) (string, error) {
	now := s.now()
	claims := &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.cfg.TTL)),
			ID:        uuid.New().String(),
		},
	}

	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Validate parses the token string, verifies its signature against the
// server secret and checks expiry. On success it returns the claims; on
// failure it returns one of ErrMalformed, ErrInvalidSignature or
// ErrExpired.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc, s.parserOptions()...)
	if err != nil {
		return nil, classifyError(err)
	}
	if !parsed.Valid {
		return nil, ErrMalformed
	}
	return claims, nil
}

// keyFunc is the jwt.Keyfunc used during token parsing.
func (s *Service) keyFunc(token *gojwt.Token) (interface{}, error) {
	if token.Method.Alg() != gojwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("token: unexpected signing method: %s", token.Method.Alg())
	}
	return s.key, nil
}

// parserOptions returns jwt.ParserOption based on config.
func (s *Service) parserOptions() []gojwt.ParserOption {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithLeeway(s.cfg.Leeway),
		gojwt.WithIssuedAt(),
		gojwt.WithTimeFunc(func() time.Time { return s.now() }),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, gojwt.WithIssuer(s.cfg.Issuer))
	}
	return opts
}

// classifyError maps golang-jwt errors onto this package's failure classes.
func classifyError(err error) error {
	switch {
	case errors.Is(err, gojwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
		return ErrInvalidSignature
	default:
		return ErrMalformed
	}
}
