package errors

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"farmdx/internal/dataprocessing"
)

// ErrorHandler provides centralized error handling at the transport
// boundary. It maps typed domain errors onto API errors and logs each
// failure with request context.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger.With(slog.String("component", "error_handler")),
	}
}

// HandleError converts any error to the API error envelope and responds.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	render.Render(w, r, NewErrorResponse(h.toAPIError(err, r)))
}

// toAPIError maps domain errors to API errors; unknown errors become a
// generic 500 without leaking internals.
func (h *ErrorHandler) toAPIError(err error, r *http.Request) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var schemaErr *dataprocessing.SchemaError
	if errors.As(err, &schemaErr) {
		return SchemaErrorResponse(schemaErr)
	}

	var dateErr *dataprocessing.DateParseError
	if errors.As(err, &dateErr) {
		return DateParseErrorResponse(dateErr)
	}

	var farmErr *dataprocessing.EmptyFarmError
	if errors.As(err, &farmErr) {
		return EmptyFarmErrorResponse(farmErr)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return New(http.StatusGatewayTimeout, "TIMEOUT", "The request took too long to process")
	}

	return ErrInternalServer
}
