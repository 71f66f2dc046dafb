package http

import (
	"errors"
	"net/http"
	"strconv"

	"collections-backend/internal/domain/disposition"
	"collections-backend/internal/pkg/xerrors"

	"github.com/labstack/echo/v4"
)

// statusFor maps the error taxonomy to HTTP. exhausted is route-specific:
// an empty pool is 204 for allocation but 422 for batch operations.
func statusFor(err error, exhausted int) int {
	switch {
	case errors.Is(err, xerrors.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, xerrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, xerrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, xerrors.ErrExhausted):
		return exhausted
	case errors.Is(err, xerrors.ErrTransient):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Map domain errors → HTTP codes
func writeError(c echo.Context, err error, exhausted int) error {
	code := statusFor(err, exhausted)
	if code == http.StatusNoContent {
		return c.NoContent(code)
	}

	resp := ErrorResponse{Error: err.Error()}
	var ve *disposition.ValidationError
	if errors.As(err, &ve) {
		resp.Error = xerrors.ErrValidation.Error()
		resp.Details = fromViolations(ve.Violations)
	}
	if code == http.StatusInternalServerError {
		c.Logger().Error(err)
		resp.Error = "internal error"
	}
	if code == http.StatusServiceUnavailable {
		c.Response().Header().Set("Retry-After", "1")
	}
	return c.JSON(code, resp)
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Details: ToFieldErrors(err),
	})
}

// pathID reads a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	raw := c.Param(name)
	if raw == "" {
		return 0, errors.New("missing " + name + " path param")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name + " path param")
	}
	return id, nil
}

func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}
