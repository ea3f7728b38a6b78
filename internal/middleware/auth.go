package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/donorfinder/internal/config"
	"github.com/example/donorfinder/internal/utils"
)

const (
	userContextKey  = "currentUserID"
	adminContextKey = "currentAdminID"
	roleContextKey  = "currentRole"
)

// AuthMiddleware validates bearer tokens for the given realm and loads the
// authenticated identity into context. One constructor serves both realms;
// the realm decides which secret verifies and which context key is set, so
// a route can never be wired to the wrong check by copy-paste.
func AuthMiddleware(cfg *config.Config, realm config.Realm) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		secret, err := cfg.SecretFor(realm)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "misconfigured auth realm")
		}

		subjectID, role, err := utils.ParseToken(secret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusForbidden, "invalid or expired token")
		}

		if realm == config.RealmAdmin {
			c.Locals(adminContextKey, subjectID)
		} else {
			c.Locals(userContextKey, subjectID)
		}
		c.Locals(roleContextKey, role)
		return c.Next()
	}
}

// GetCurrentUserID extracts the authenticated user ID from context.
func GetCurrentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	return localUUID(c, userContextKey)
}

// GetCurrentAdminID extracts the authenticated admin ID from context.
func GetCurrentAdminID(c *fiber.Ctx) (uuid.UUID, bool) {
	return localUUID(c, adminContextKey)
}

func localUUID(c *fiber.Ctx, key string) (uuid.UUID, bool) {
	value := c.Locals(key)
	if value == nil {
		return uuid.Nil, false
	}

	if id, ok := value.(uuid.UUID); ok {
		return id, true
	}

	return uuid.Nil, false
}
