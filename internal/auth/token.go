package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"transit/internal/domain"
)

// ErrInvalidToken is returned when a token is missing, malformed, expired
// or signed with the wrong key.
var ErrInvalidToken = errors.New("invalid access token")

// Claims is the verified identity carried by an access token. Handlers
// trust this pair completely; token issuance mechanics live here and in the
// auth handler only.
type Claims struct {
	UserID int64
	Role   domain.Role
}

// NewAccessToken builds and signs an HS256 JWT for a user with the standard
// sub/role/exp/iat claims.
func NewAccessToken(secret string, userID int64, role domain.Role, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAccessToken verifies a signed token and extracts its claims.
func ParseAccessToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := mapClaims["sub"].(float64)
	if !ok || sub <= 0 {
		return nil, ErrInvalidToken
	}
	role, ok := mapClaims["role"].(string)
	if !ok || role == "" {
		return nil, ErrInvalidToken
	}

	return &Claims{
		UserID: int64(sub),
		Role:   domain.Role(role),
	}, nil
}
