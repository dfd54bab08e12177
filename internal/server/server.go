// Package server exposes the question source over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/practicekit/internal/aigen"
	"github.com/abhisek/practicekit/internal/config"
	"github.com/abhisek/practicekit/internal/curriculum"
	"github.com/abhisek/practicekit/internal/generator"
	"github.com/abhisek/practicekit/internal/paper"
	"github.com/abhisek/practicekit/internal/registry"
	"github.com/abhisek/practicekit/internal/store"
)

// Options configures a Server. Only Config and Log are required.
type Options struct {
	Config config.ServerConfig
	Log    *logrus.Logger

	// Rand drives local generators. Defaults to generator.NewRand().
	Rand generator.Rand

	// Library defaults to the built-in blueprints.
	Library *paper.Library

	// AI serves source=ai requests. Nil means local only.
	AI *aigen.Generator

	// Events records answers posted to a session. Nil disables recording.
	Events store.EventRepo

	Version string
	Clock   func() time.Time
}

// Server is the HTTP API.
type Server struct {
	app       *fiber.App
	log       *logrus.Logger
	cfg       config.ServerConfig
	validator *Validator

	rand    generator.Rand
	regs    map[string]*registry.Registry
	library *paper.Library
	ai      *aigen.Generator
	events  store.EventRepo
	version string
	now     func() time.Time
}

// New builds the server and registers its routes.
func New(opts Options) (*Server, error) {
	if opts.Log == nil {
		return nil, errors.New("server: logger is required")
	}
	s := &Server{
		log:       opts.Log,
		cfg:       opts.Config,
		validator: NewValidator(),
		rand:      opts.Rand,
		library:   opts.Library,
		ai:        opts.AI,
		events:    opts.Events,
		version:   opts.Version,
		now:       opts.Clock,
	}
	if s.cfg.MaxCount < 1 {
		s.cfg.MaxCount = 50
	}
	if s.rand == nil {
		s.rand = generator.NewRand()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.version == "" {
		s.version = "dev"
	}
	if s.library == nil {
		lib, err := paper.NewLibrary()
		if err != nil {
			return nil, err
		}
		s.library = lib
	}

	regs, err := curriculum.Registries(s.rand)
	if err != nil {
		return nil, fmt.Errorf("build registries: %w", err)
	}
	s.regs = regs

	s.app = fiber.New(fiber.Config{
		AppName:      "practicekit",
		ErrorHandler: errorHandler(s.log),
	})
	s.routes()
	return s, nil
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	if addr == "" {
		addr = s.cfg.Addr
	}
	return s.app.Listen(addr)
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) routes() {
	s.app.Use(recover.New())
	s.app.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path}\n",
		Output: s.log.Out,
	}))
	s.app.Use(s.corsMiddleware())

	api := s.app.Group("/api")
	{
		api.Get("/health", s.health)
		api.Get("/version", s.versionInfo)
		api.Get("/grades", s.grades)
		api.Get("/topics", s.topics)
		api.Get("/practice/generate", s.generate)
		api.Get("/papers", s.papers)
		api.Get("/papers/:name", s.paper)
		api.Get("/puzzle/today", s.puzzle)
		api.Post("/answers/check", s.check)
		api.Post("/sessions/:id/answers", s.recordAnswer)
	}
}

func (s *Server) corsMiddleware() fiber.Handler {
	origins := "*"
	if len(s.cfg.CORSOrigins) > 0 {
		origins = strings.Join(s.cfg.CORSOrigins, ",")
	}
	return cors.New(cors.Config{
		AllowHeaders:  "Origin, Content-Type, Accept, Content-Length, Accept-Encoding",
		AllowMethods:  "GET, POST",
		AllowOrigins:  origins,
		ExposeHeaders: "Content-Length, Content-Type",
	})
}

func errorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Error(err)
			return NewInternalServerError().Send(c)
		}
		return NewFailed(err.Error(), fiber.NewError(code, ""), log).Send(c)
	}
}

// registry returns the registry for a grade ID, ignoring case.
func (s *Server) registry(grade string) (*registry.Registry, error) {
	g, ok := curriculum.Lookup(grade)
	if !ok {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unknown grade %q", grade))
	}
	return s.regs[g.ID], nil
}
