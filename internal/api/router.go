package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/displaydynamix/studio-api/docs"
	"github.com/displaydynamix/studio-api/internal/api/handler"
	"github.com/displaydynamix/studio-api/internal/api/middleware"
	"github.com/displaydynamix/studio-api/internal/core/domain"
	"github.com/displaydynamix/studio-api/internal/core/ports"
	"github.com/displaydynamix/studio-api/internal/infrastructure/config"
)

// RouterDeps carries everything the HTTP layer needs. Services come in as
// ports so the router never sees concrete implementations.
type RouterDeps struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Mongo     *mongo.Database
	Redis     *redis.Client
	Auth      ports.AuthService
	Users     ports.UserService
	Templates ports.TemplateService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     deps.Config.CORS.AllowedOrigins,
		AllowCredentials: deps.Config.CORS.AllowCredentials,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddleware("studio"))

	// --- Unauthenticated surface ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "Display Dynamix Studio API",
			"docs":    "/swagger/index.html",
		})
	})

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)
	e.GET("/health", healthHandler.Liveness)           // liveness  - is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness - are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- API surface ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Users, deps.Config.Auth.PasswordMinLength)
	userHandler := handler.NewUserHandler(deps.Users, deps.Config.Auth.PasswordMinLength)
	templateHandler := handler.NewTemplateHandler(deps.Templates, deps.Users)

	authed := middleware.Auth(deps.Auth)

	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/token", authHandler.Token)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, authed)
	auth.POST("/change-password", authHandler.ChangePassword, authed)

	users := e.Group("/api/users", authed, middleware.RequireRoles(domain.RoleAdmin))
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/active", userHandler.ListActive)
	users.GET("/role/:role", userHandler.ListByRole)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)
	users.POST("/:id/activate", userHandler.Activate)
	users.POST("/:id/deactivate", userHandler.Deactivate)

	templates := e.Group("/api/templates", authed)
	templates.GET("", templateHandler.List)
	templates.POST("", templateHandler.Create)
	templates.GET("/:id", templateHandler.Get)
	templates.PUT("/:id", templateHandler.Update)
	templates.DELETE("/:id", templateHandler.Delete)

	return e
}
