package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Shifts-api/internal/application/auth"
	"github.com/jhoicas/Shifts-api/internal/application/dto"
	"github.com/jhoicas/Shifts-api/internal/application/shift"
	"github.com/jhoicas/Shifts-api/internal/domain/entity"
)

// RouterDeps dependencies of the API routes.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	ShiftUC   *shift.UseCase
	Gate      *auth.Gate
	StartedAt time.Time
}

// Router registers the API routes and the JSON 404 fallback. Call it after global middleware.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	api.Get("/health", healthHandler(deps.StartedAt))

	requireAuth := AuthMiddleware(deps.Gate)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth (public, except the directory)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/signup", authHandler.Register)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Get("/employees", requireAuth, adminOnly, authHandler.Employees)

	// Shifts (authenticated). Auth is attached per route so unknown paths still reach NotFound.
	shifts := api.Group("/shifts")
	shiftHandler := NewShiftHandler(deps.ShiftUC)
	shifts.Post("/", requireAuth, adminOnly, shiftHandler.Create)
	shifts.Get("/", requireAuth, shiftHandler.List)
	shifts.Get("/roster.pdf", requireAuth, shiftHandler.Roster)
	shifts.Delete("/:id", requireAuth, shiftHandler.Delete)

	app.Use(NotFound)
}

func healthHandler(startedAt time.Time) fiber.Handler {
	if startedAt.IsZero() {
		startedAt = time.Now()
	}
	return func(c *fiber.Ctx) error {
		now := time.Now()
		return c.JSON(dto.HealthResponse{
			Status:    "healthy",
			Timestamp: now.UTC().Format(time.RFC3339),
			Uptime:    now.Sub(startedAt).Seconds(),
		})
	}
}
