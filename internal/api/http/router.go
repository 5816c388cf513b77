package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/storefront-api/internal/api/http/handlers"
	"github.com/spec-kit/storefront-api/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Orders         *handlers.OrdersHandler
	AuthMiddleware *auth.AuthMiddleware
	Gatherer       prometheus.Gatherer
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/logout", cfg.Auth.Logout)

	authenticated := cfg.AuthMiddleware.Handle
	adminOnly := auth.RequireAdmin()

	users := api.Group("/users", authenticated)
	users.Get("/", adminOnly, cfg.Users.List)
	users.Get("/showMe", cfg.Users.ShowMe)
	users.Patch("/updateUser", cfg.Users.Update)
	users.Patch("/updateUserPassword", cfg.Users.UpdatePassword)
	users.Get("/:id", cfg.Users.Get)

	orders := api.Group("/orders", authenticated)
	orders.Post("/", cfg.Orders.Create)
	orders.Get("/", adminOnly, cfg.Orders.List)
	orders.Get("/showAllMyOrders", cfg.Orders.ListMine)
	orders.Get("/:id", cfg.Orders.Get)
	orders.Patch("/:id", cfg.Orders.Update)
}
