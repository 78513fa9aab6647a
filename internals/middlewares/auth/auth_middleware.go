// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"database/sql"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"programpro_backend/internals/configs"
	helperAuth "programpro_backend/internals/helpers/auth"
)

type AuthJWTOpts struct {
	// Secret used to verify access tokens; defaults to configs.JWTSecret.
	Secret string
	// Read access_token cookie when there is no Authorization header.
	AllowCookieFallback bool
	// Optional: request goes through anonymously when no token is sent.
	Optional bool
}

type account struct {
	ID       int64
	Username string
	Role     sql.NullString
	ChurchID sql.NullInt64
}

// AuthMiddleware verifies the bearer token, rejects revoked tokens and
// reloads the account so role and church changes apply immediately.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return AuthJWT(db, AuthJWTOpts{AllowCookieFallback: true})
}

// OptionalAuth sets the user locals when a valid token is sent, but never
// rejects the request for lacking one.
func OptionalAuth(db *gorm.DB) fiber.Handler {
	return AuthJWT(db, AuthJWTOpts{AllowCookieFallback: true, Optional: true})
}

func AuthJWT(db *gorm.DB, o AuthJWTOpts) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := helperAuth.ExtractBearerToken(c, o.AllowCookieFallback)
		if raw == "" {
			if o.Optional {
				return c.Next()
			}
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - No token provided")
		}

		secret := o.Secret
		if strings.TrimSpace(secret) == "" {
			secret = configs.JWTSecret
		}
		if secret == "" {
			log.Println("[ERROR] JWT_SECRET is empty")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims, err := helperAuth.ParseToken(raw, helperAuth.TokenAccess, secret)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or expired token")
		}

		ctx := c.UserContext()
		revoked, err := helperAuth.IsBlacklisted(ctx, db, raw, secret)
		if err != nil {
			log.Println("[ERROR] blacklist check:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		if revoked {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
		}

		var acc account
		err = db.WithContext(ctx).Raw(
			`SELECT id, username, role, church_id FROM users WHERE id = ?`, claims.UserID,
		).Row().Scan(&acc.ID, &acc.Username, &acc.Role, &acc.ChurchID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			log.Println("[ERROR] load user:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}

		role := helperAuth.RoleUser
		if acc.Role.Valid && strings.TrimSpace(acc.Role.String) != "" {
			role = strings.ToLower(strings.TrimSpace(acc.Role.String))
		}

		c.Locals(helperAuth.LocUserID, acc.ID)
		c.Locals(helperAuth.LocChurchID, acc.ChurchID.Int64)
		c.Locals(helperAuth.LocRole, role)
		c.Locals(helperAuth.LocUsername, acc.Username)
		c.Locals(helperAuth.LocRawToken, raw)
		c.Locals(helperAuth.LocClaims, claims)
		return c.Next()
	}
}
