package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-devconnect"
)

// accessLog logs one line per request. It runs before the app error
// handler, so the status of a failed request is derived from its error.
func accessLog(logger devconnect.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status, _ = devconnect.RenderError(err)
		}

		args := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration", time.Since(start).String(),
		}
		if id, ok := c.Locals("requestid").(string); ok {
			args = append(args, "request_id", id)
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("request", args...)
		case status >= fiber.StatusBadRequest:
			logger.Warn("request", args...)
		default:
			logger.Info("request", args...)
		}

		return err
	}
}

// routerLogger hands router messages to the app logger. The router mixes
// printf style messages with key/value pairs. Route registration is
// logged at debug.
type routerLogger struct {
	logger devconnect.Logger
}

func (l routerLogger) Debug(format string, args ...any) {
	msg, kv := routerArgs(format, args)
	l.logger.Debug(msg, kv...)
}

func (l routerLogger) Info(format string, args ...any) {
	msg, kv := routerArgs(format, args)
	l.logger.Debug(msg, kv...)
}

func (l routerLogger) Warn(format string, args ...any) {
	msg, kv := routerArgs(format, args)
	l.logger.Warn(msg, kv...)
}

func (l routerLogger) Error(format string, args ...any) {
	msg, kv := routerArgs(format, args)
	l.logger.Error(msg, kv...)
}

func routerArgs(format string, args []any) (string, []any) {
	if strings.Contains(format, "%") {
		return fmt.Sprintf(format, args...), nil
	}
	return format, args
}
