// Package auth issues and verifies the self-contained tokens handed out by
// registration and login. Tokens are HS256 JWTs carrying a single identity
// claim ({"user":{"id":...}}) plus the registered expiry; the server re-reads
// everything else from storage on each authenticated request.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// UserClaim is the identity payload embedded in issued tokens. It carries
// only the record id.
type UserClaim struct {
	ID string `json:"id"`
}

// Claims is the full token payload: the user claim plus registered claims
// (expiry).
type Claims struct {
	User UserClaim `json:"user"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies tokens with an immutable secret and ttl loaded
// once at startup.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer constructs an Issuer. An empty secret is a configuration error,
// not a per-request one: callers must abort startup on ErrMissingSecret.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, common.ErrMissingSecret
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a token whose user claim references userID and whose expiry is
// now plus the configured ttl.
func (i *Issuer) Issue(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		User: UserClaim{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(i.ttl)),
		},
	})

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// UserID verifies tokenString and returns the claimed user id. Expired
// tokens yield common.ErrTokenExpired; anything else that fails verification
// (bad signature, wrong algorithm, malformed input, empty claim) yields
// common.ErrInvalidToken. Both read as unauthorized at the boundary, but the
// kinds stay distinct for logging.
func (i *Issuer) UserID(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.User.ID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.User.ID, nil
}
