package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"petsit-marketplace/internal/dto"
	"petsit-marketplace/internal/middleware"
	"petsit-marketplace/internal/models"
	"petsit-marketplace/internal/service"
)

// JobHandler is the sitter-facing surface: the open job board, the claim
// endpoint and the status advance endpoint.
type JobHandler struct {
	claims   service.ClaimService
	bookings service.BookingService
}

func NewJobHandler(claims service.ClaimService, bookings service.BookingService) *JobHandler {
	return &JobHandler{claims: claims, bookings: bookings}
}

func (h *JobHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/jobs", h.ListOpenJobs)
	g.GET("/jobs/requests", h.ListOpenRequests)
	g.POST("/jobs/:id/accept", h.AcceptJob)
	g.PUT("/jobs/:id/status", h.UpdateJobStatus)
}

func serviceTypeFilter(c echo.Context) *models.ServiceType {
	if s := c.QueryParam("service_type"); s != "" {
		t := models.ServiceType(s)
		return &t
	}
	return nil
}

func (h *JobHandler) ListOpenJobs(c echo.Context) error {
	jobs, err := h.claims.ListOpenJobs(c.Request().Context(), serviceTypeFilter(c))
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]dto.BookingResponse, len(jobs))
	for i, b := range jobs {
		resp[i] = dto.ToBookingResponse(&b)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) ListOpenRequests(c echo.Context) error {
	reqs, err := h.claims.ListOpenRequests(c.Request().Context(), serviceTypeFilter(c))
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]dto.RequestResponse, len(reqs))
	for i, r := range reqs {
		resp[i] = dto.ToRequestResponse(&r)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) AcceptJob(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	actor := middleware.ActorFrom(c)
	result, err := h.claims.AcceptJob(c.Request().Context(), id, actor.UserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToClaimResponse(result))
}

func (h *JobHandler) UpdateJobStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateJobStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	actor := middleware.ActorFrom(c)
	booking, err := h.bookings.UpdateJobStatus(c.Request().Context(), id, actor.UserID, req.Status)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}
