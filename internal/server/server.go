// Package server contains the HTTP handlers for the application's API
// endpoints. It is the presentation collaborator of the two stores: it
// validates input, calls a store operation, and renders the result.
package server

import (
	"log/slog"

	"inkwell/internal/config"
	"inkwell/internal/middleware"
	"inkwell/internal/store"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config   *config.Config
	log      *slog.Logger
	identity *store.IdentityStore
	content  *store.ContentStore
	prom     *fiberprometheus.FiberPrometheus
}

// NewServer creates a server around already-constructed stores. The stores
// are injected, never created here, so tests and the seed command can share
// the same wiring.
func NewServer(cfg *config.Config, identity *store.IdentityStore, content *store.ContentStore, log *slog.Logger) *Server {
	return &Server{
		config:   cfg,
		log:      log,
		identity: identity,
		content:  content,
		prom:     fiberprometheus.New("inkwell-api"),
	}
}

// SetupMiddleware attaches the shared middleware stack.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	s.prom.RegisterAt(app, "/metrics")
	app.Use(s.prom.Middleware)

	app.Use(middleware.StructuredLogger(s.log))

	app.Use(cors.New(cors.Config{
		AllowOrigins: s.config.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
}

// SetupRoutes attaches all API routes.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health", s.HealthCheck)

	auth := api.Group("/auth")
	auth.Post("/signup", s.Signup)
	auth.Post("/login", s.Login)
	auth.Post("/logout", s.authRequired(), s.Logout)
	auth.Get("/me", s.authRequired(), s.Me)

	posts := api.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Get("/:id", s.GetPost)
	posts.Post("/", s.authRequired(), s.CreatePost)
	posts.Put("/:id", s.authRequired(), s.UpdatePost)
	posts.Delete("/:id", s.authRequired(), s.DeletePost)
	posts.Post("/:id/like", s.authRequired(), s.ToggleLike)
	posts.Post("/:id/comments", s.authRequired(), s.CreateComment)
	posts.Delete("/:id/comments/:commentId", s.authRequired(), s.DeleteComment)

	api.Get("/categories", s.GetCategories)
}

// HealthCheck handles GET /health
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) authRequired() fiber.Handler {
	return middleware.AuthRequired(s.config.JWTSecret)
}
