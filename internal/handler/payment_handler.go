package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"petsit-marketplace/internal/dto"
	"petsit-marketplace/internal/metrics"
	"petsit-marketplace/internal/middleware"
	"petsit-marketplace/internal/service"
)

type PaymentHandler struct {
	svc service.PaymentService
}

func NewPaymentHandler(svc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

func (h *PaymentHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/transactions", h.RecordTransaction)
	g.GET("/transactions", h.ListTransactions)
	g.POST("/transactions/:id/refund", h.RecordRefund, middleware.RequireAdmin)
	g.GET("/revenue/summary", h.RevenueSummary, middleware.RequireAdmin)
}

func (h *PaymentHandler) RecordTransaction(c echo.Context) error {
	var req dto.RecordTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.BookingID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "booking_id and amount are required")
	}

	tx, err := h.svc.RecordTransaction(c.Request().Context(), service.RecordTransactionInput{
		BookingID:     req.BookingID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		ProofPath:     req.ProofPath,
	})
	if err != nil {
		return toHTTPError(err)
	}

	metrics.TransactionsRecorded.WithLabelValues(string(tx.Status)).Inc()
	return c.JSON(http.StatusCreated, dto.ToTransactionResponse(tx))
}

func (h *PaymentHandler) RecordRefund(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	refund, err := h.svc.RecordRefund(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	metrics.TransactionsRecorded.WithLabelValues(string(refund.Status)).Inc()
	return c.JSON(http.StatusCreated, dto.ToTransactionResponse(refund))
}

func (h *PaymentHandler) ListTransactions(c echo.Context) error {
	bookingID, err := strconv.ParseUint(c.QueryParam("booking_id"), 10, 64)
	if err != nil || bookingID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "booking_id query parameter is required")
	}

	txs, err := h.svc.ListByBooking(c.Request().Context(), uint(bookingID))
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]dto.TransactionResponse, len(txs))
	for i, t := range txs {
		resp[i] = dto.ToTransactionResponse(&t)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *PaymentHandler) RevenueSummary(c echo.Context) error {
	months := 12
	if m := c.QueryParam("months"); m != "" {
		n, err := strconv.Atoi(m)
		if err != nil || n < 1 || n > 36 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid months parameter")
		}
		months = n
	}

	summary, err := h.svc.RevenueSummary(c.Request().Context(), months)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, summary)
}
