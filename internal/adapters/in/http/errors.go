package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/generated/servers"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// statusFor maps the ledger error taxonomy onto HTTP status codes. The
// second result reports whether the error is an expected business outcome.
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, errs.ErrInsufficientStock),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrAlreadyFulfilled),
		errors.Is(err, errs.ErrObjectConflict):
		return http.StatusConflict, true
	case errors.Is(err, errs.ErrValidation):
		return http.StatusUnprocessableEntity, true
	default:
		return http.StatusInternalServerError, false
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	code, expected := statusFor(err)
	if !expected {
		s.logger.Error("request failed",
			zap.String("method", ctx.Request().Method),
			zap.String("path", ctx.Path()),
			zap.Error(err))
		return ctx.JSON(code, servers.Error{Code: code, Message: http.StatusText(code)})
	}
	return ctx.JSON(code, servers.Error{Code: code, Message: err.Error()})
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{Code: http.StatusBadRequest, Message: message})
}
