package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"petsit-marketplace/internal/dto"
	"petsit-marketplace/internal/middleware"
	"petsit-marketplace/internal/models"
	"petsit-marketplace/internal/service"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/bookings", h.CreateBooking)
	g.GET("/bookings", h.ListBookings)
	g.GET("/bookings/:id", h.GetBooking)
	g.PUT("/bookings/:id", h.UpdateBooking)
	g.DELETE("/bookings/:id", h.CancelBooking)
	g.POST("/requests", h.CreateRequest)
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.PetID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "pet_id is required")
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "start_date and end_date are required")
	}

	actor := middleware.ActorFrom(c)
	booking, err := h.svc.CreateBooking(c.Request().Context(), service.CreateBookingInput{
		UserID:              actor.UserID,
		PetID:               req.PetID,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		ServiceID:           req.ServiceID,
		ServiceType:         req.ServiceType,
		PricePerHour:        req.PricePerHour,
		SpecialInstructions: req.SpecialInstructions,
		Location:            req.Location,
		EmergencyContact:    req.EmergencyContact,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	var status *models.BookingStatus
	if s := c.QueryParam("status"); s != "" {
		bs := models.BookingStatus(s)
		if !bs.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status filter")
		}
		status = &bs
	}

	bookings, err := h.svc.ListBookings(c.Request().Context(), middleware.ActorFrom(c), status)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = dto.ToBookingResponse(&b)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	booking, err := h.svc.GetBooking(c.Request().Context(), id, middleware.ActorFrom(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.svc.UpdateBooking(c.Request().Context(), id, middleware.ActorFrom(c), service.UpdateBookingPatch{
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		ServiceType:         req.ServiceType,
		SpecialInstructions: req.SpecialInstructions,
		Location:            req.Location,
		EmergencyContact:    req.EmergencyContact,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	booking, err := h.svc.CancelBooking(c.Request().Context(), id, middleware.ActorFrom(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) CreateRequest(c echo.Context) error {
	var req dto.CreateRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	actor := middleware.ActorFrom(c)
	model := &models.Request{
		UserID:        actor.UserID,
		PetID:         req.PetID,
		ServiceType:   req.ServiceType,
		Description:   req.Description,
		PreferredDate: req.PreferredDate,
	}
	if err := h.svc.CreateRequest(c.Request().Context(), model); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToRequestResponse(model))
}
