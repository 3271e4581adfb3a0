package jwt

import (
	"errors"
	"strconv"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// ErrInvalidToken is the single failure returned for every rejected
// token. Decode errors, signature mismatches and expiry violations are
// deliberately indistinguishable to callers.
var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	TokenType string `json:"token_type"`
	jwtgo.RegisteredClaims
}

// UserID parses the subject claim back to the numeric user id. The
// subject is always the decimal string form of the id; anything else
// is rejected rather than partially parsed.
func (c *Claims) UserID() (int64, error) {
	if c.Subject == "" {
		return 0, ErrInvalidToken
	}
	for _, r := range c.Subject {
		if r < '0' || r > '9' {
			return 0, ErrInvalidToken
		}
	}
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// GenerateToken creates a signed access token for the given user id.
func GenerateToken(userID int64, expiration time.Duration, secret string) (string, error) {
	return generate(userID, TokenTypeAccess, expiration, secret)
}

// GenerateRefreshToken creates a signed refresh token for the given user id.
func GenerateRefreshToken(userID int64, expiration time.Duration, secret string) (string, error) {
	return generate(userID, TokenTypeRefresh, expiration, secret)
}

func generate(userID int64, tokenType string, expiration time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := Claims{
		TokenType: tokenType,
		RegisteredClaims: jwtgo.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwtgo.NewNumericDate(now),
			ExpiresAt: jwtgo.NewNumericDate(now.Add(expiration)),
		},
	}

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken verifies the signature and expiry of a token and
// returns its claims. The signature is always verified, never just
// decoded, and only HMAC signing is accepted.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwtgo.ParseWithClaims(tokenString, &Claims{}, func(t *jwtgo.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwtgo.WithValidMethods([]string{jwtgo.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
