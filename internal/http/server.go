package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/INDA23PlusPlus/redkar-chess/internal/core"
	"github.com/INDA23PlusPlus/redkar-chess/internal/processor"
	"github.com/INDA23PlusPlus/redkar-chess/internal/service"
)

const defaultRateLimit = 10 // req/sec

// Config tunes the HTTP app
type Config struct {
	DevMode   bool // doubles the rate limit
	RateLimit int  // requests per second per client; 0 uses the default, negative disables
	AccessLog bool
}

// NewFiberApp builds the REST API over the processor
func NewFiberApp(proc *processor.Processor, svc *service.Service, cfg Config) *fiber.App {
	h := NewHTTPHandler(proc, svc)

	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          service.WaitTimeout + 5*time.Second, // long-poll responses
		IdleTimeout:           30 * time.Second,
		DisableStartupMessage: !cfg.DevMode,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	if cfg.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${status} ${method} ${path} ${latency}\n",
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Health check (no rate limit)
	app.Get("/health", h.Health)

	api := app.Group("/api/v1")

	maxReq := cfg.RateLimit
	if maxReq == 0 {
		maxReq = defaultRateLimit
	}
	if cfg.DevMode {
		maxReq *= 2 // Loosen rate limiter for testing
	}
	if maxReq > 0 {
		api.Use(limiter.New(limiter.Config{
			Max:          maxReq,
			Expiration:   1 * time.Second,
			KeyGenerator: clientKey,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(core.ErrorResponse{
					Error:   "rate limit exceeded",
					Code:    core.ErrCodeRateLimitExceeded,
					Details: fmt.Sprintf("%d requests per second allowed", maxReq),
				})
			},
		}))
	}

	api.Use(contentTypeValidator)
	api.Use(validationMiddleware)

	api.Post("/games", h.CreateGame)
	api.Get("/games/:gameId", h.GetGame)
	api.Delete("/games/:gameId", h.DeleteGame)
	api.Post("/games/:gameId/moves", h.MakeMove)
	api.Get("/games/:gameId/moves", h.GetLegalMoves)
	api.Get("/games/:gameId/board", h.GetBoard)

	return app
}

// clientKey takes the first X-Forwarded-For address, falling back to the peer IP
func clientKey(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return xff
	}
	return c.IP()
}

// contentTypeValidator ensures POST requests carry application/json
func contentTypeValidator(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		contentType := c.Get("Content-Type")
		if i := strings.IndexByte(contentType, ';'); i != -1 {
			contentType = strings.TrimSpace(contentType[:i])
		}
		if contentType != fiber.MIMEApplicationJSON && contentType != "" {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(core.ErrorResponse{
				Error:   "unsupported media type",
				Code:    core.ErrCodeInvalidContent,
				Details: "Content-Type must be application/json",
			})
		}
	}
	return c.Next()
}

// customErrorHandler provides consistent error responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	response := core.ErrorResponse{
		Error: "internal server error",
		Code:  core.ErrCodeInternalError,
	}

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		response.Error = e.Message

		switch code {
		case fiber.StatusNotFound:
			response.Code = core.ErrCodeGameNotFound
		case fiber.StatusBadRequest:
			response.Code = core.ErrCodeInvalidRequest
		case fiber.StatusTooManyRequests:
			response.Code = core.ErrCodeRateLimitExceeded
		}
	}

	return c.Status(code).JSON(response)
}
