package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/srgjo27/ticket_inventory/internal/core/domain"
)

// ErrorHandler renders every error as {"message": ...}. Insufficient inventory also
// carries the remaining count.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	} else {
		slog.Error("Unhandled request error", "error", err, "method", c.Request().Method, "uri", c.Request().RequestURI)
	}

	body := map[string]any{"message": msg}

	var inv *domain.InsufficientInventoryError
	if errors.As(err, &inv) {
		body["remaining"] = inv.Remaining
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, body)
}

// domainError maps a service error to the HTTP error the client sees. Unexpected failures
// keep the cause internal and show an opaque message.
func domainError(err error) *echo.HTTPError {
	var status int
	switch {
	case domain.IsNotFound(err):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrEventInactive),
		errors.Is(err, domain.ErrInsufficientInventory),
		errors.Is(err, domain.ErrTicketAlreadyCancelled),
		errors.Is(err, domain.ErrTicketAlreadyUsed),
		errors.Is(err, domain.ErrTicketCancelled),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidPaymentMethod):
		status = http.StatusBadRequest
	default:
		return &echo.HTTPError{
			Code:     http.StatusInternalServerError,
			Message:  "internal server error",
			Internal: err,
		}
	}

	return &echo.HTTPError{Code: status, Message: err.Error(), Internal: err}
}
