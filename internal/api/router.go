package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/sirpyerre/blog-api/docs"
	"github.com/sirpyerre/blog-api/internal/api/handler"
	"github.com/sirpyerre/blog-api/internal/api/middleware"
	"github.com/sirpyerre/blog-api/internal/core/domain"
	"github.com/sirpyerre/blog-api/internal/core/ports"
)

// Deps are the services and probes the HTTP layer is built on.
type Deps struct {
	Auth ports.AuthService
	Blog ports.BlogService
	// Pingers are checked by /health/ready, keyed by dependency name.
	Pingers map[string]ports.Pinger
	Log     zerolog.Logger
	// Registry receives the HTTP request metrics. Nil means the default
	// Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(metricsConfig(deps.Registry)))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	postHandler := handler.NewPostHandler(deps.Blog)
	commentHandler := handler.NewCommentHandler(deps.Blog)

	requireSession := middleware.Auth(deps.Auth)
	optionalSession := middleware.OptionalAuth(deps.Auth)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, requireSession)
	auth.GET("/me", authHandler.Me, requireSession)

	// --- Blog routes ---
	v1 := e.Group("/v1")
	v1.GET("/posts", postHandler.List)
	v1.GET("/posts/:id", postHandler.Get)
	v1.GET("/posts/:id/comments", commentHandler.List)
	v1.POST("/posts/:id/comments", commentHandler.Create, optionalSession)
	v1.GET("/users/:id", postHandler.GetUser)
	v1.GET("/users/:id/posts", postHandler.ListByAuthor)

	adminOnly := []echo.MiddlewareFunc{requireSession, middleware.RequireRole(domain.RoleAdmin)}
	v1.POST("/posts", postHandler.Create, adminOnly...)
	v1.PATCH("/posts/:id", postHandler.Update, adminOnly...)
	v1.DELETE("/posts/:id", postHandler.Delete, adminOnly...)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Pingers)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(handlerConfig(deps.Registry)))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func metricsConfig(reg *prometheus.Registry) echoprometheus.MiddlewareConfig {
	cfg := echoprometheus.MiddlewareConfig{
		Namespace: "blog",
		Subsystem: "http",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}
	if reg != nil {
		cfg.Registerer = reg
	}
	return cfg
}

func handlerConfig(reg *prometheus.Registry) echoprometheus.HandlerConfig {
	if reg == nil {
		return echoprometheus.HandlerConfig{}
	}
	return echoprometheus.HandlerConfig{Gatherer: reg}
}

// requestLogger emits one structured line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
