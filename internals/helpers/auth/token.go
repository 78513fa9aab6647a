// file: internals/helpers/auth/token.go
package helper

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carried by access and refresh tokens. Subject is the username.
type Claims struct {
	UserID   int64  `json:"user_id"`
	ChurchID int64  `json:"church_id,omitempty"`
	Role     string `json:"role"`
	Type     string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenUser is what a token is issued for.
type TokenUser struct {
	ID       int64
	Username string
	ChurchID int64
	Role     string
}

// IssueToken signs a token of typ for u, valid for ttl from now.
func IssueToken(u TokenUser, typ, secret string, ttl time.Duration, now time.Time) (string, time.Time, error) {
	if strings.TrimSpace(secret) == "" {
		return "", time.Time{}, errors.New("jwt secret not configured")
	}
	exp := now.Add(ttl)
	claims := Claims{
		UserID:   u.ID,
		ChurchID: u.ChurchID,
		Role:     u.Role,
		Type:     typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseToken verifies signature, expiry and token type.
func ParseToken(raw, typ, secret string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	// tokens minted before typ existed count as access tokens
	got := claims.Type
	if got == "" {
		got = TokenAccess
	}
	if got != typ || claims.UserID <= 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ExtractBearerToken reads "Authorization: Bearer <token>", falling back to
// the access_token cookie when allowed.
func ExtractBearerToken(c *fiber.Ctx, allowCookie bool) string {
	authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	fields := strings.Fields(authz)
	if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
		return strings.Trim(fields[1], "\"'")
	}
	if allowCookie {
		return strings.TrimSpace(c.Cookies("access_token"))
	}
	return ""
}
