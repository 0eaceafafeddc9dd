// Package token signs and verifies the HS256 JWT bearer tokens the API accepts
package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	pnet "interestd/internal/platform/net"
)

var (
	// ErrMalformed means the token is not a compact JWT
	ErrMalformed = jwt.ErrTokenMalformed
	// ErrSignature means the signature does not match the secret or the alg is not HS256
	ErrSignature = jwt.ErrTokenSignatureInvalid
	// ErrExpired means exp is in the past
	ErrExpired = jwt.ErrTokenExpired
	// ErrClaims means the user or role claim is missing or unknown
	ErrClaims = errors.New("token: invalid claims")
)

// Claims carried by a token
// uid wins over sub so issuers that only set sub still work
type Claims struct {
	UserID string `json:"uid,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// User returns uid, or sub when uid is absent
func (c Claims) User() string {
	if u := strings.TrimSpace(c.UserID); u != "" {
		return u
	}
	return strings.TrimSpace(c.Subject)
}

// Validate is run by the jwt parser after the registered claims pass
func (c Claims) Validate() error {
	if c.User() == "" {
		return ErrClaims
	}
	switch c.Role {
	case pnet.RoleUser, pnet.RoleTrainer, pnet.RoleAdmin:
		return nil
	}
	return ErrClaims
}

// Signer mints and verifies tokens with one shared secret
type Signer struct {
	secret []byte
	now    func() time.Time
}

// New returns a signer; the secret must be non empty
func New(secret string) (*Signer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token: empty secret")
	}
	return &Signer{secret: []byte(secret), now: time.Now}, nil
}

// WithClock overrides the time source used for iat, exp and expiry checks
func (s *Signer) WithClock(now func() time.Time) *Signer {
	c := *s
	c.now = now
	return &c
}

// Sign mints a token for user with role valid for ttl
func (s *Signer) Sign(userID, role string, ttl time.Duration) (string, error) {
	now := s.now()
	c := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if err := c.Validate(); err != nil {
		return "", err
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

// Verify checks alg, signature and expiry and returns the claims
// exp is required; a token without one never expires and is refused
func (s *Signer) Verify(tok string) (Claims, error) {
	var c Claims
	_, err := jwt.ParseWithClaims(strings.TrimSpace(tok), &c,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Claims{}, err
	}
	return c, nil
}

// Parse adapts Verify to the httpkit.TokenFunc shape
func (s *Signer) Parse(tok string) (string, string, error) {
	c, err := s.Verify(tok)
	if err != nil {
		return "", "", err
	}
	return c.User(), c.Role, nil
}
