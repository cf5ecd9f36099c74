package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/myenergy/tracker/docs"
	"github.com/myenergy/tracker/internal/api/handler"
	"github.com/myenergy/tracker/internal/api/middleware"
	"github.com/myenergy/tracker/internal/core/domain"
	"github.com/myenergy/tracker/internal/core/ports"
)

// Services groups the use cases exposed over HTTP.
type Services struct {
	Auth        ports.AuthService
	Directory   ports.DirectoryService
	Consumption ports.ConsumptionService
	Users       ports.UserService
	Dashboard   ports.DashboardService
	Backup      ports.BackupService
}

// Deps carries everything NewRouter needs to wire the routes.
type Deps struct {
	Services  Services
	Sessions  ports.SessionRepository
	JWTSecret string
	Health    []handler.HealthCheck
	Logger    zerolog.Logger
	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "energy",
		Registerer: registerer(deps.Registry),
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Services.Auth)
	directoryHandler := handler.NewDirectoryHandler(deps.Services.Directory)
	consumptionHandler := handler.NewConsumptionHandler(deps.Services.Consumption)
	userHandler := handler.NewUserHandler(deps.Services.Users)
	dashboardHandler := handler.NewDashboardHandler(deps.Services.Dashboard)
	backupHandler := handler.NewBackupHandler(deps.Services.Backup)
	healthHandler := handler.NewHealthHandler(deps.Health...)

	authMiddleware := middleware.Auth(deps.JWTSecret, deps.Sessions)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Public routes ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: gatherer(deps.Registry),
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)

	// --- Authenticated routes ---
	authed := []echo.MiddlewareFunc{authMiddleware}
	v1.POST("/auth/logout", authHandler.Logout, authed...)
	v1.GET("/me", authHandler.Me, authed...)
	v1.PUT("/me", authHandler.UpdateMe, authed...)

	v1.GET("/dashboard", dashboardHandler.Get, authed...)
	v1.GET("/consumptions", consumptionHandler.List, authed...)
	v1.POST("/houses/:id/consumptions", consumptionHandler.Create, authed...)

	v1.GET("/clients", directoryHandler.ListClients, authed...)
	v1.GET("/clients/:id/houses", directoryHandler.ListHouses, authed...)
	v1.POST("/clients/:id/houses", directoryHandler.CreateHouse, authed...)

	// --- Admin routes ---
	admin := []echo.MiddlewareFunc{authMiddleware, adminOnly}
	v1.POST("/clients", directoryHandler.CreateClient, admin...)
	v1.DELETE("/houses/:id", directoryHandler.DeleteHouse, admin...)
	v1.DELETE("/consumptions/:id", consumptionHandler.Delete, admin...)
	v1.GET("/users", userHandler.List, admin...)
	v1.DELETE("/users/:id", userHandler.Delete, admin...)
	v1.GET("/backup/export", backupHandler.Export, admin...)
	v1.POST("/backup/import", backupHandler.Import, admin...)

	return e
}

// requestLogger writes one access log line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

func registerer(reg *prometheus.Registry) prometheus.Registerer {
	if reg == nil {
		return prometheus.DefaultRegisterer
	}
	return reg
}

func gatherer(reg *prometheus.Registry) prometheus.Gatherer {
	if reg == nil {
		return prometheus.DefaultGatherer
	}
	return reg
}
