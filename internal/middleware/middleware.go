package middleware

import (
	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/pkg/access"
	"Meal-Planner-Backend/pkg/jwt"
	"Meal-Planner-Backend/pkg/user"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	Middleware interface {
		AuthMiddleware(jwtService jwt.JWTService, userRepository user.UserRepository) fiber.Handler
		RequireRole(role domain.Role) fiber.Handler
		CORSMiddleware() fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

// AuthMiddleware resolves the bearer token (header first, cookie fallback
// for the browser flow) and stores the identity on the request. The role
// claim baked into the token is ignored: a promotion must take effect on
// the next request, not after re-login, so the role is re-derived from the
// stored identity every time. Failures redirect to the login page rather
// than returning an error body.
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService, userRepository user.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromRequest(c)
		if token == "" {
			return c.Redirect(domain.PathLogin, fiber.StatusSeeOther)
		}

		userID, _, err := jwtService.GetUserIDByToken(token)
		if err != nil {
			return c.Redirect(domain.PathLogin, fiber.StatusSeeOther)
		}

		u, err := userRepository.GetUserByID(c.Context(), userID)
		if err != nil {
			return c.Redirect(domain.PathLogin, fiber.StatusSeeOther)
		}

		c.Locals("user_id", userID)
		c.Locals("role", string(access.Classify(u)))
		return c.Next()
	}
}

// RequireRole gates a route on the derived role. A mismatch redirects the
// caller to their own dashboard, keeping the soft failure model.
func (m *middleware) RequireRole(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actual, _ := c.Locals("role").(string)
		if actual == string(role) {
			return c.Next()
		}
		return c.Redirect(access.DashboardRoute(domain.Role(actual)), fiber.StatusSeeOther)
	}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New()
}

func tokenFromRequest(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Cookies("token")
}
