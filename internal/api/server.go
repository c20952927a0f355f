package api

import (
	"errors"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-converter/internal/converter"
	"github.com/insightdelivered/statement-converter/internal/extractor"
	"github.com/insightdelivered/statement-converter/internal/logger"
	"github.com/insightdelivered/statement-converter/internal/metrics"
	"github.com/insightdelivered/statement-converter/internal/parser"
	"github.com/insightdelivered/statement-converter/internal/writer"
)

// Options configures the fiber application.
type Options struct {
	Logger       zerolog.Logger
	Metrics      *metrics.Metrics
	Gatherer     prometheus.Gatherer // serves /metrics when set
	BodyLimit    int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	StaticDir    string
}

// NewApp builds the fiber application with middleware and routes.
func NewApp(h *Handler, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "statement-converter",
		BodyLimit:             opts.BodyLimit,
		ReadTimeout:           opts.ReadTimeout,
		WriteTimeout:          opts.WriteTimeout,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(opts.Logger),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	app.Use(requestLogger(opts.Logger, opts.Metrics))

	RegisterRoutes(app, h)
	if opts.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	// Serve the web client; unknown non-API paths fall back to index.html.
	if opts.StaticDir != "" {
		app.Static("/", opts.StaticDir)
		app.Get("/*", func(c *fiber.Ctx) error {
			return c.SendFile(filepath.Join(opts.StaticDir, "index.html"))
		})
	}

	return app
}

// RegisterRoutes sets up the API routes.
func RegisterRoutes(app *fiber.App, h *Handler) {
	api := app.Group("/api")
	api.Get("/health", h.HandleHealth)
	api.Post("/process-pdf", h.HandleProcessPDF)
	api.Post("/parse-text", h.HandleParseText)
	api.Post("/anonymous/convert", h.HandleAnonymousConvert)
}

// requestLogger attaches a request scoped logger to the user context and
// logs every completed request.
func requestLogger(base zerolog.Logger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		reqID, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
		log := base.With().Str("request_id", reqID).Logger()
		c.SetUserContext(logger.WithContext(c.UserContext(), log))

		err := c.Next()
		if err != nil {
			// Let the error handler write the response so the status is final.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		route := c.Route().Path
		log.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("remote_addr", c.IP()).
			Msg("request completed")

		if m != nil {
			m.HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
			m.HTTPDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		}
		return nil
	}
}

// errorHandler maps errors to status codes and the JSON error body.
func errorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, detail := classify(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		}
		return c.Status(status).JSON(ErrorResponse{Success: false, Detail: detail})
	}
}

func classify(err error) (int, string) {
	var ferr *fiber.Error
	switch {
	case errors.As(err, &ferr):
		return ferr.Code, ferr.Message
	case errors.Is(err, converter.ErrUnrecognizedLayout):
		return fiber.StatusUnprocessableEntity, "Unsupported statement format: no known account or section headers found."
	case errors.Is(err, parser.ErrMissingAccountNumber):
		return fiber.StatusUnprocessableEntity, "Unsupported or unparseable statement format: no account number found."
	case errors.Is(err, extractor.ErrNotPDF):
		return fiber.StatusBadRequest, "Only PDF files are supported."
	case errors.Is(err, converter.ErrExtraction):
		return fiber.StatusUnprocessableEntity, "PDF extraction failed: " + err.Error()
	case errors.Is(err, converter.ErrEmptyDocument):
		return fiber.StatusBadRequest, "The uploaded document is empty."
	case errors.Is(err, writer.ErrUnsupportedTarget):
		return fiber.StatusBadRequest, err.Error()
	default:
		return fiber.StatusInternalServerError, "Internal server error."
	}
}
