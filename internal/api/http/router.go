package http

import (
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Behnamfe76/directory-console/internal/api/http/handlers"
	"github.com/Behnamfe76/directory-console/internal/observability"
	"github.com/Behnamfe76/directory-console/internal/store"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Session     *handlers.SessionHandler
	Alert       *handlers.AlertHandler
	Departments *handlers.DepartmentsHandler
	Employees   *handlers.EmployeesHandler
	Images      *handlers.ImageHandler
	Metrics     *observability.Metrics
	Gate        fiber.Handler
}

// NewApp builds the fiber application with sonic as its JSON codec. Context
// strings are immutable: sessions, metrics labels and log fields outlive the
// request that produced them.
func NewApp(appName string, bodyLimit int) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               appName,
		BodyLimit:             bodyLimit,
		Immutable:             true,
		DisableStartupMessage: true,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
	})
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if registry := cfg.Metrics.Registry(); registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	consoleGroup := app.Group("/console", cfg.Gate)

	consoleGroup.Get("/session", cfg.Session.Get)
	consoleGroup.Post("/session/logout", cfg.Session.Logout)

	consoleGroup.Get("/alert", cfg.Alert.Get)
	consoleGroup.Post("/alert/dismiss", cfg.Alert.Dismiss)

	consoleGroup.Post("/employees/image", cfg.Images.Upload)

	registerScreen(consoleGroup.Group("/departments"), cfg.Departments)
	registerScreen(consoleGroup.Group("/employees"), cfg.Employees)
}

func registerScreen[T store.Entity, F comparable](group fiber.Router, h *handlers.ScreenHandler[T, F]) {
	group.Get("", h.View)
	group.Post("/reload", h.Reload)
	group.Post("/unmount", h.Unmount)

	group.Post("/form", h.OpenCreate)
	group.Put("/form", h.ChangeForm)
	group.Post("/form/submit", h.SubmitForm)
	group.Post("/form/cancel", h.CancelForm)

	group.Post("/delete/confirm", h.ConfirmDelete)
	group.Post("/delete/cancel", h.CancelDelete)
	group.Post("/error/clear", h.ClearError)

	group.Post("/:id/form", h.OpenEdit)
	group.Post("/:id/delete", h.RequestDelete)
}
