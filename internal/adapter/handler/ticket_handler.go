package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/srgjo27/ticket_inventory/internal/core/domain"
	"github.com/srgjo27/ticket_inventory/internal/core/services"
)

// InventoryManager is the slice of services.InventoryService the HTTP layer drives.
type InventoryManager interface {
	Purchase(ctx context.Context, req services.PurchaseRequest) (*domain.PurchaseResult, error)
	Cancel(ctx context.Context, ticketID uuid.UUID, requester domain.Principal) error
	MarkUsed(ctx context.Context, code string) error
	ListOwnedTickets(ctx context.Context, owner domain.Principal, page, limit int) (*domain.TicketPage, error)
	GetTicketByCode(ctx context.Context, code string, requester domain.Principal) (*domain.TicketDetails, error)
	GetAvailability(ctx context.Context, eventID uuid.UUID) (*domain.Availability, error)
}

type TicketHandler struct {
	svc InventoryManager
}

func NewTicketHandler(svc InventoryManager) *TicketHandler {
	return &TicketHandler{svc: svc}
}

func (h *TicketHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	tickets := e.Group("/api/v1/tickets", auth)
	tickets.POST("/purchase", h.Purchase)
	tickets.DELETE("/:id", h.Cancel)
	tickets.PUT("/mark-used/:code", h.MarkUsed, RequireValidator())
	tickets.GET("/my-tickets", h.ListMyTickets)
	tickets.GET("/code/:code", h.GetByCode)

	e.GET("/api/v1/events/:id/availability", h.GetAvailability)
}

func (h *TicketHandler) Purchase(c echo.Context) error {
	buyer, ok := PrincipalFrom(c)
	if !ok {
		return errUnauthenticated
	}

	// an omitted quantity buys a single ticket; an explicit 0 is still rejected
	req := PurchaseTicketsRequest{Quantity: 1}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "event_id must be a valid uuid")
	}

	res, err := h.svc.Purchase(c.Request().Context(), services.PurchaseRequest{
		EventID:       eventID,
		Buyer:         buyer,
		Quantity:      req.Quantity,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, ToPurchaseResponse(res))
}

func (h *TicketHandler) Cancel(c echo.Context) error {
	requester, ok := PrincipalFrom(c)
	if !ok {
		return errUnauthenticated
	}

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ticket id")
	}

	if err := h.svc.Cancel(c.Request().Context(), ticketID, requester); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "ticket cancelled"})
}

func (h *TicketHandler) MarkUsed(c echo.Context) error {
	code := c.Param("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "ticket code is required")
	}

	if err := h.svc.MarkUsed(c.Request().Context(), code); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "ticket marked as used"})
}

func (h *TicketHandler) ListMyTickets(c echo.Context) error {
	owner, ok := PrincipalFrom(c)
	if !ok {
		return errUnauthenticated
	}

	page, err := queryInt(c, "page")
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	res, err := h.svc.ListOwnedTickets(c.Request().Context(), owner, page, limit)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, ToTicketPageResponse(res))
}

func (h *TicketHandler) GetByCode(c echo.Context) error {
	requester, ok := PrincipalFrom(c)
	if !ok {
		return errUnauthenticated
	}

	details, err := h.svc.GetTicketByCode(c.Request().Context(), c.Param("code"), requester)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, ToTicketResponse(details))
}

func (h *TicketHandler) GetAvailability(c echo.Context) error {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	availability, err := h.svc.GetAvailability(c.Request().Context(), eventID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, availability)
}

// queryInt returns 0 for an absent parameter so the service applies its default.
func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return n, nil
}
