package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/agent-swarm/server/internal/agent/graph"
	logx "github.com/agent-swarm/server/pkg/logger"
)

// Config holds the HTTP listener settings.
type Config struct {
	Port               string `envconfig:"PORT" default:"8000"`
	CorsAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

type Server struct {
	app    *fiber.App
	cfg    Config
	runner graph.Runner
}

func New(cfg Config, runner graph.Runner) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CorsAllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	s := &Server{
		app:    app,
		cfg:    cfg,
		runner: runner,
	}
	s.registerRoutes()
	return s
}

// App exposes the fiber app for handler tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	logx.Info().Str("port", s.cfg.Port).Msg("Server listening")
	return s.app.Listen(":" + s.cfg.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) registerRoutes() {
	s.app.Get("/health", s.handleHealth)
	s.app.Post("/query", s.handleQuery)
}
