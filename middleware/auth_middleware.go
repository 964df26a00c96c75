package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"

	"github.com/anjiri1684/study_platform/database"
	"github.com/anjiri1684/study_platform/models"
	"github.com/anjiri1684/study_platform/services"
)

const (
	userKey  = "user"
	emailKey = "email"
	roleKey  = "role"
)

// Protected verifies the bearer token. A request without an Authorization
// header gets 401; any token that fails verification gets 403.
func Protected(tokens *services.TokenService) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:     tokens.Secret(),
		SigningMethod:  "HS256",
		Claims:         &services.Claims{},
		ContextKey:     userKey,
		ErrorHandler:   jwtError,
		SuccessHandler: attachEmail,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if c.Get(fiber.HeaderAuthorization) == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized access"})
	}
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Forbidden access"})
}

func attachEmail(c *fiber.Ctx) error {
	token, ok := c.Locals(userKey).(*jwt.Token)
	if !ok {
		return jwtError(c, errors.New("token missing from context"))
	}
	claims, ok := token.Claims.(*services.Claims)
	if !ok || claims.Email == "" {
		return jwtError(c, errors.New("token has no email claim"))
	}
	c.Locals(emailKey, claims.Email)
	return c.Next()
}

// Email returns the verified caller email, or "" outside Protected routes.
func Email(c *fiber.Ctx) string {
	email, _ := c.Locals(emailKey).(string)
	return email
}

// Role returns the role loaded by a role gate earlier in the chain.
func Role(c *fiber.Ctx) models.Role {
	role, _ := c.Locals(roleKey).(models.Role)
	return role
}

func AdminRequired(roles *services.RoleService) fiber.Handler {
	return requireRole(roles, models.RoleAdmin)
}

func TutorRequired(roles *services.RoleService) fiber.Handler {
	return requireRole(roles, models.RoleTutor)
}

func requireRole(roles *services.RoleService, want models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, err := roles.Lookup(c.UserContext(), Email(c))
		if errors.Is(err, database.ErrNotFound) || (err == nil && role != want) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Forbidden access",
			})
		}
		if err != nil {
			return err
		}
		c.Locals(roleKey, role)
		return c.Next()
	}
}
