// Package session implements the stateless cookie-session credential:
// a signed token minted at login and re-verified on every request. There is
// no server-side session store; logout is the client discarding the cookie.
package session

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the cookie that transports the session token.
const CookieName = "session_id"

// DefaultMaxAge is the validity window of a minted token.
const DefaultMaxAge = 7 * 24 * time.Hour

// Verification failures. The HTTP layer collapses all of these into a
// uniform "not authenticated" response; the distinction exists for
// logging and metrics only.
var (
	ErrMalformed        = errors.New("session: malformed token")
	ErrInvalidSignature = errors.New("session: invalid token signature")
	ErrExpired          = errors.New("session: token expired")
	ErrMemberNotFound   = errors.New("session: member no longer exists")
)

// Codec mints and verifies session tokens. It is a pure function of
// (token, secret, clock): no storage access, no process-wide state. The
// signing secret is passed in explicitly from configuration.
type Codec struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

// NewCodec returns a Codec signing with the given secret and the default
// 7-day validity window.
func NewCodec(secret string) *Codec {
	return &Codec{
		secret: []byte(secret),
		maxAge: DefaultMaxAge,
		now:    time.Now,
	}
}

// Mint produces a signed token carrying the member ID and issue time.
// The secret never appears in the token, only the HMAC signature does.
func (c *Codec) Mint(memberID uint) (string, error) {
	now := c.now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(memberID), 10),
		"iss": "commune-api",
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"exp": now.Add(c.maxAge).Unix(),
		"jti": uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify checks the token's signature and validity window and returns the
// carried member ID. Failures are ErrMalformed, ErrInvalidSignature, or
// ErrExpired.
func (c *Codec) Verify(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now), jwt.WithIssuer("commune-api"))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return 0, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenUnverifiable):
			return 0, ErrInvalidSignature
		default:
			return 0, ErrMalformed
		}
	}
	if !token.Valid {
		return 0, ErrInvalidSignature
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrMalformed
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, ErrMalformed
	}

	memberID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || memberID == 0 {
		return 0, ErrMalformed
	}

	return uint(memberID), nil
}
