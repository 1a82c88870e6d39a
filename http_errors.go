package devconnect

import (
	"sort"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

// ErrServer is the message sent for anything we do not expose to clients
const ErrServer = "Server Error"

// ErrorItem is one entry of a validation error response
type ErrorItem struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// ErrorsResponse is the body used for validation failures
type ErrorsResponse struct {
	Errors []ErrorItem `json:"errors"`
}

// MessageResponse is the body used for every other failure
type MessageResponse struct {
	Msg string `json:"msg"`
}

// NewBadInput reports a request we could not decode
func NewBadInput(message string, source error) *goerrors.Error {
	if source == nil {
		return goerrors.New(message, goerrors.CategoryBadInput)
	}
	return goerrors.Wrap(source, goerrors.CategoryBadInput, message)
}

// HTTPErrorHandler renders errors returned by handlers and middleware
func HTTPErrorHandler(logger Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = defLogger{}
	}

	return func(c *fiber.Ctx, err error) error {
		status, body := RenderError(err)
		if status >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Method(),
				"path", c.Path(),
				"error", err,
			)
		}
		return c.Status(status).JSON(body)
	}
}

// RenderError maps an error to its HTTP status and response body
func RenderError(err error) (int, any) {
	var fe *fiber.Error
	if goerrors.As(err, &fe) {
		return fe.Code, MessageResponse{Msg: fe.Message}
	}

	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return fiber.StatusInternalServerError, MessageResponse{Msg: ErrServer}
	}

	switch richErr.Category {
	case goerrors.CategoryValidation, goerrors.CategoryBadInput:
		return statusFor(richErr, fiber.StatusBadRequest), validationBody(richErr)
	case goerrors.CategoryConflict:
		return statusFor(richErr, fiber.StatusBadRequest), ErrorsResponse{
			Errors: []ErrorItem{{Msg: richErr.Message}},
		}
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return statusFor(richErr, fiber.StatusUnauthorized), MessageResponse{Msg: richErr.Message}
	case goerrors.CategoryNotFound:
		return statusFor(richErr, fiber.StatusBadRequest), MessageResponse{Msg: richErr.Message}
	case goerrors.CategoryInternal, goerrors.CategoryExternal:
		return fiber.StatusInternalServerError, MessageResponse{Msg: ErrServer}
	}

	// any other category is only exposed when it carries a client code
	if status := statusFor(richErr, 0); status != 0 {
		return status, MessageResponse{Msg: richErr.Message}
	}
	return fiber.StatusInternalServerError, MessageResponse{Msg: ErrServer}
}

func statusFor(err *goerrors.Error, def int) int {
	if err.Code >= 400 && err.Code < 500 {
		return err.Code
	}
	return def
}

func validationBody(err *goerrors.Error) ErrorsResponse {
	fields := make(goerrors.ValidationErrors, len(err.ValidationErrors))
	copy(fields, err.ValidationErrors)

	if len(fields) == 0 {
		return ErrorsResponse{Errors: []ErrorItem{{Msg: err.Message}}}
	}

	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Field < fields[j].Field
	})

	out := ErrorsResponse{Errors: make([]ErrorItem, 0, len(fields))}
	for _, f := range fields {
		out.Errors = append(out.Errors, ErrorItem{Msg: f.Message, Param: f.Field})
	}
	return out
}
