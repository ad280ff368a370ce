package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

type AppOptions struct {
	// AccessLog enables the per-request log line.
	AccessLog bool
	Logger    *zap.Logger
}

// NewApp builds the fiber application with the standard middleware chain and
// every route registered.
func NewApp(handler *Handler, options AppOptions) *fiber.App {
	zapLogger := options.Logger
	if zapLogger == nil {
		zapLogger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               "Emerald",
		DisableStartupMessage: true,
		ErrorHandler:          jsonErrorHandler(zapLogger),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	if options.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
			Output: zap.NewStdLog(zapLogger.Named("http")).Writer(),
		}))
	}
	app.Use(compress.New())

	RegisterRoutes(app, handler)
	app.Use(func(c *fiber.Ctx) error {
		return apiError(c, fiber.StatusNotFound, "not found")
	})
	return app
}

func jsonErrorHandler(zapLogger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "internal error"
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
			message = fiberErr.Message
		}
		if status >= fiber.StatusInternalServerError {
			zapLogger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		}
		return apiError(c, status, message)
	}
}
