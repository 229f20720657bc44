package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Shifts-api/internal/application/auth"
	"github.com/jhoicas/Shifts-api/internal/domain"
	"github.com/jhoicas/Shifts-api/internal/domain/entity"
)

// Locals key holding *auth.Claims.
const LocalClaims = "claims"

// AuthMiddleware authenticates the Bearer token through gate and stores the claims in c.Locals.
func AuthMiddleware(gate *auth.Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := gate.Authenticate(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return respondError(c, err)
		}
		c.Locals(LocalClaims, claims)
		return c.Next()
	}
}

// RequireRole lets the request through when the caller holds one of roles. Must run after AuthMiddleware.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := GetClaims(c)
		if claims == nil {
			return respondError(c, domain.NewError(domain.ErrUnauthenticated, "Authentication required"))
		}
		for _, r := range roles {
			if claims.Role == r {
				return c.Next()
			}
		}
		if len(roles) == 0 {
			return c.Next()
		}
		return respondError(c, auth.AuthorizeRole(claims, roles[0]))
	}
}

// GetClaims returns the authenticated caller, or nil before AuthMiddleware.
func GetClaims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(LocalClaims).(*auth.Claims)
	return claims
}
