// Package http exposes the dispatch engine over REST and an SSE event
// stream. Identity arrives in X-Actor-Id and X-Actor-Role headers;
// authentication itself is handled upstream.
package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/dispatch"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/eventbus"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles HTTP requests by delegating to the dispatch facade.
type Server struct {
	facade *dispatch.Facade
	bus    *eventbus.Bus
}

// NewServer creates a new HTTP server.
func NewServer(facade *dispatch.Facade, bus *eventbus.Bus) *Server {
	return &Server{facade: facade, bus: bus}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/assign", s.AssignPartner)
	api.POST("/orders/:id/status", s.AdvanceStatus)
	api.POST("/partners", s.RegisterPartner)
	api.GET("/partners/available", s.ListAvailablePartners)
	api.PUT("/partners/availability", s.SetAvailability)
	api.PUT("/partners/location", s.UpdateLocation)
	api.GET("/partners/current-delivery", s.GetCurrentDelivery)
	api.GET("/events", s.StreamEvents)
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderRequest is the body of POST /orders.
type NewOrderRequest struct {
	Items    string          `json:"items"`
	PrepTime int             `json:"prepTime"`
	Location LocationRequest `json:"customerLocation"`
}

// LocationRequest is a geographic position in a request body.
type LocationRequest struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address"`
}

// AssignRequest is the body of POST /orders/:id/assign.
type AssignRequest struct {
	PartnerID string `json:"partnerId"`
}

// StatusRequest is the body of POST /orders/:id/status.
type StatusRequest struct {
	Status string `json:"status"`
}

// AvailabilityRequest is the body of PUT /partners/availability.
type AvailabilityRequest struct {
	IsAvailable bool `json:"isAvailable"`
}

// RegisterPartnerRequest is the body of POST /partners.
type RegisterPartnerRequest struct {
	Name string `json:"name"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req NewOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	location, err := kernel.NewGeoPoint(req.Location.Lat, req.Location.Lon, req.Location.Address)
	if err != nil {
		return badRequest(ctx, err)
	}

	snapshot, err := s.facade.CreateOrder(ctx.Request().Context(), actor, req.Items, req.PrepTime, location)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, snapshot)
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	orders, err := s.facade.ListOrders(ctx.Request().Context(), actor)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	snapshot, err := s.facade.GetOrder(ctx.Request().Context(), orderID, actor.ID)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshot)
}

// AssignPartner handles POST /api/v1/orders/:id/assign.
func (s *Server) AssignPartner(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var req AssignRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	partnerID, err := kernel.UUIDFromString(req.PartnerID)
	if err != nil {
		return badRequest(ctx, err)
	}

	snapshot, err := s.facade.AssignPartner(ctx.Request().Context(), orderID, actor.ID, partnerID)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshot)
}

// AdvanceStatus handles POST /api/v1/orders/:id/status.
func (s *Server) AdvanceStatus(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var req StatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, err)
	}

	snapshot, err := s.facade.AdvanceStatus(ctx.Request().Context(), orderID, actor.ID, target)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshot)
}

// RegisterPartner handles POST /api/v1/partners.
func (s *Server) RegisterPartner(ctx echo.Context) error {
	var req RegisterPartnerRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	snapshot, err := s.facade.RegisterPartner(ctx.Request().Context(), req.Name)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, snapshot)
}

// ListAvailablePartners handles GET /api/v1/partners/available.
func (s *Server) ListAvailablePartners(ctx echo.Context) error {
	partners, err := s.facade.ListAvailablePartners(ctx.Request().Context())
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, partners)
}

// SetAvailability handles PUT /api/v1/partners/availability.
func (s *Server) SetAvailability(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req AvailabilityRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	snapshot, err := s.facade.SetPartnerAvailability(ctx.Request().Context(), actor, req.IsAvailable)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshot)
}

// UpdateLocation handles PUT /api/v1/partners/location.
func (s *Server) UpdateLocation(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req LocationRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	location, err := kernel.NewGeoPoint(req.Lat, req.Lon, req.Address)
	if err != nil {
		return badRequest(ctx, err)
	}

	snapshot, err := s.facade.UpdateLocation(ctx.Request().Context(), actor, location)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshot)
}

// GetCurrentDelivery handles GET /api/v1/partners/current-delivery.
func (s *Server) GetCurrentDelivery(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	snapshot, err := s.facade.GetCurrentDelivery(ctx.Request().Context(), actor.ID)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshot)
}

// actorFromHeaders resolves the acting identity from request headers.
func actorFromHeaders(ctx echo.Context) (kernel.Actor, error) {
	id, err := kernel.UUIDFromString(ctx.Request().Header.Get("X-Actor-Id"))
	if err != nil {
		return kernel.Actor{}, errors.New("missing or invalid X-Actor-Id header")
	}

	role, err := kernel.RoleFromString(ctx.Request().Header.Get("X-Actor-Role"))
	if err != nil {
		return kernel.Actor{}, errors.New("missing or invalid X-Actor-Role header")
	}

	return kernel.NewActor(id, role)
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

// domainError maps domain error kinds to HTTP statuses.
func domainError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		code = http.StatusBadRequest
	case errors.Is(err, errs.ErrUnauthorized):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrPartnerUnavailable),
		errors.Is(err, errs.ErrConflict):
		code = http.StatusConflict
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}
