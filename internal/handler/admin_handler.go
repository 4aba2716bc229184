package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"petsit-marketplace/internal/client"
	"petsit-marketplace/internal/dto"
	"petsit-marketplace/internal/middleware"
	"petsit-marketplace/internal/repository"
	"petsit-marketplace/internal/service"
)

type AdminHandler struct {
	bookings service.BookingService
	repo     repository.BookingRepository
	revenue  client.RevenueClient
}

func NewAdminHandler(bookings service.BookingService, repo repository.BookingRepository, revenue client.RevenueClient) *AdminHandler {
	return &AdminHandler{bookings: bookings, repo: repo, revenue: revenue}
}

func (h *AdminHandler) RegisterRoutes(g *echo.Group) {
	g.PUT("/bookings/:id/status", h.SetStatus, middleware.RequireAdmin)
	g.GET("/admin/dashboard", h.Dashboard, middleware.RequireAdmin)
}

func (h *AdminHandler) SetStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.AdminSetStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.bookings.AdminSetStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// Dashboard aggregates booking counts with a best-effort revenue read from
// the payment service. Revenue failures degrade the response instead of
// failing it.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	counts, err := h.repo.CountByStatus(ctx)
	if err != nil {
		return toHTTPError(err)
	}

	resp := dto.DashboardResponse{Bookings: counts}
	if h.revenue != nil {
		summary, err := h.revenue.Summary(ctx, middleware.TokenFrom(c))
		if err != nil {
			log.Printf("[dashboard] revenue fetch failed: %v", err)
			resp.RevenueUnavailable = true
		} else {
			resp.Revenue = summary
		}
	} else {
		resp.RevenueUnavailable = true
	}
	return c.JSON(http.StatusOK, resp)
}
