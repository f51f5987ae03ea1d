// Package api - HTTP server assembly.
package api

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Normalno100/InsuranceApplication-sub001/api/middleware"
	"github.com/Normalno100/InsuranceApplication-sub001/core/engine"
	"github.com/Normalno100/InsuranceApplication-sub001/core/refdata"
)

// Version is the API version reported by /version
const Version = "0.1.0"

// Server wraps the Fiber application
type Server struct {
	app     *fiber.App
	handler *Handler
}

// NewServer assembles the HTTP surface over a pipeline and its reference data
func NewServer(pipeline *engine.Pipeline, data refdata.Provider, readTimeout time.Duration) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "travel-quote API",
		ReadTimeout:  readTimeout,
		WriteTimeout: readTimeout,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	s := &Server{
		app:     app,
		handler: NewHandler(pipeline, data, nil),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.app.Use(recover.New())
	s.app.Use(requestid.New())
	s.app.Use(middleware.Metrics())

	api := s.app.Group("/api/v1")
	api.Post("/quote", s.handler.Quote)
	api.Get("/health", s.handler.Health)
	api.Get("/version", s.handler.Version)
	api.Get("/refdata/countries", s.handler.Countries)

	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

// Listen serves until the listener fails or the server is shut down
func (s *Server) Listen(address string) error {
	return s.app.Listen(address)
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the Fiber application, for tests
func (s *Server) App() *fiber.App {
	return s.app
}
