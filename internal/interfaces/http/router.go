package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/b2b-portal-api/internal/application/analytics"
	"github.com/jhoicas/b2b-portal-api/internal/application/auth"
	"github.com/jhoicas/b2b-portal-api/internal/application/usecase"
	"github.com/jhoicas/b2b-portal-api/internal/domain/rbac"
	"github.com/jhoicas/b2b-portal-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	Authenticator *auth.Authenticator
	DashboardUC   *appanalytics.DashboardUseCase
	UserUC        *usecase.UserUseCase
	OrderUC       *usecase.OrderUseCase
	Log           *logger.Logger
}

// NewApp crea la app Fiber con el manejo de errores y los middlewares globales.
func NewApp(appName string, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PATCH,OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": appName})
	})
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	api := app.Group("/api")

	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "B2B Mobile API", "status": "running"})
	})

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token); cada ruta declara su permiso
	guard := AuthMiddleware(deps.Authenticator, log)
	can := func(action rbac.Action) fiber.Handler { return RequirePermission(action, log) }

	authGroup.Get("/me", guard, authHandler.Me)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/stats", guard, can(rbac.ViewDashboard), dashboardHandler.GetStats)

	userHandler := NewUserHandler(deps.UserUC)
	api.Get("/users", guard, can(rbac.ListUsers), userHandler.List)
	api.Patch("/users/:id/status", guard, can(rbac.ManageUsers), userHandler.SetStatus)

	orderHandler := NewOrderHandler(deps.OrderUC)
	api.Post("/orders", guard, can(rbac.ManageOrders), orderHandler.Create)
	api.Patch("/orders/:id/status", guard, can(rbac.ManageOrders), orderHandler.UpdateStatus)
}
