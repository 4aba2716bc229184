package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"petsit-marketplace/internal/client"
	"petsit-marketplace/internal/models"
	"petsit-marketplace/internal/repository"
	"petsit-marketplace/internal/service"
)

// --- Mock BookingService ---

type mockBookingService struct {
	createBookingFn   func(ctx context.Context, in service.CreateBookingInput) (*models.Booking, error)
	getBookingFn      func(ctx context.Context, id uint, actor service.Actor) (*models.Booking, error)
	listBookingsFn    func(ctx context.Context, actor service.Actor, status *models.BookingStatus) ([]models.Booking, error)
	updateBookingFn   func(ctx context.Context, id uint, actor service.Actor, patch service.UpdateBookingPatch) (*models.Booking, error)
	cancelBookingFn   func(ctx context.Context, id uint, actor service.Actor) (*models.Booking, error)
	updateJobStatusFn func(ctx context.Context, id, sitterID uint, status models.BookingStatus) (*models.Booking, error)
	adminSetStatusFn  func(ctx context.Context, id uint, status models.BookingStatus) (*models.Booking, error)
	createRequestFn   func(ctx context.Context, req *models.Request) error
}

func (m *mockBookingService) CreateBooking(ctx context.Context, in service.CreateBookingInput) (*models.Booking, error) {
	return m.createBookingFn(ctx, in)
}
func (m *mockBookingService) GetBooking(ctx context.Context, id uint, actor service.Actor) (*models.Booking, error) {
	return m.getBookingFn(ctx, id, actor)
}
func (m *mockBookingService) ListBookings(ctx context.Context, actor service.Actor, status *models.BookingStatus) ([]models.Booking, error) {
	return m.listBookingsFn(ctx, actor, status)
}
func (m *mockBookingService) UpdateBooking(ctx context.Context, id uint, actor service.Actor, patch service.UpdateBookingPatch) (*models.Booking, error) {
	return m.updateBookingFn(ctx, id, actor, patch)
}
func (m *mockBookingService) CancelBooking(ctx context.Context, id uint, actor service.Actor) (*models.Booking, error) {
	return m.cancelBookingFn(ctx, id, actor)
}
func (m *mockBookingService) UpdateJobStatus(ctx context.Context, id, sitterID uint, status models.BookingStatus) (*models.Booking, error) {
	return m.updateJobStatusFn(ctx, id, sitterID, status)
}
func (m *mockBookingService) AdminSetStatus(ctx context.Context, id uint, status models.BookingStatus) (*models.Booking, error) {
	return m.adminSetStatusFn(ctx, id, status)
}
func (m *mockBookingService) CreateRequest(ctx context.Context, req *models.Request) error {
	return m.createRequestFn(ctx, req)
}

// --- Mock ClaimService ---

type mockClaimService struct {
	acceptJobFn        func(ctx context.Context, jobID, sitterID uint) (*service.ClaimResult, error)
	listOpenJobsFn     func(ctx context.Context, serviceType *models.ServiceType) ([]models.Booking, error)
	listOpenRequestsFn func(ctx context.Context, serviceType *models.ServiceType) ([]models.Request, error)
}

func (m *mockClaimService) AcceptJob(ctx context.Context, jobID, sitterID uint) (*service.ClaimResult, error) {
	return m.acceptJobFn(ctx, jobID, sitterID)
}
func (m *mockClaimService) ListOpenJobs(ctx context.Context, serviceType *models.ServiceType) ([]models.Booking, error) {
	return m.listOpenJobsFn(ctx, serviceType)
}
func (m *mockClaimService) ListOpenRequests(ctx context.Context, serviceType *models.ServiceType) ([]models.Request, error) {
	return m.listOpenRequestsFn(ctx, serviceType)
}

// --- Mock PaymentService ---

type mockPaymentService struct {
	recordTransactionFn func(ctx context.Context, in service.RecordTransactionInput) (*models.Transaction, error)
	recordRefundFn      func(ctx context.Context, transactionID uint) (*models.Transaction, error)
	listByBookingFn     func(ctx context.Context, bookingID uint) ([]models.Transaction, error)
	revenueSummaryFn    func(ctx context.Context, months int) (*service.RevenueSummary, error)
}

func (m *mockPaymentService) RecordTransaction(ctx context.Context, in service.RecordTransactionInput) (*models.Transaction, error) {
	return m.recordTransactionFn(ctx, in)
}
func (m *mockPaymentService) RecordRefund(ctx context.Context, transactionID uint) (*models.Transaction, error) {
	return m.recordRefundFn(ctx, transactionID)
}
func (m *mockPaymentService) ListByBooking(ctx context.Context, bookingID uint) ([]models.Transaction, error) {
	return m.listByBookingFn(ctx, bookingID)
}
func (m *mockPaymentService) RevenueSummary(ctx context.Context, months int) (*service.RevenueSummary, error) {
	return m.revenueSummaryFn(ctx, months)
}

// --- Mock repository and revenue client for the admin dashboard ---

type mockCountingRepo struct {
	repository.BookingRepository

	countByStatusFn func(ctx context.Context) (map[models.BookingStatus]int64, error)
}

func (m *mockCountingRepo) CountByStatus(ctx context.Context) (map[models.BookingStatus]int64, error) {
	return m.countByStatusFn(ctx)
}

type mockRevenueClient struct {
	summaryFn func(ctx context.Context, token string) (*client.RevenueSummary, error)
}

func (m *mockRevenueClient) Summary(ctx context.Context, token string) (*client.RevenueSummary, error) {
	return m.summaryFn(ctx, token)
}

// --- Request plumbing ---

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asUser(c echo.Context, id uint) {
	c.Set("actor", service.Actor{UserID: id, Role: "user"})
}

func asSitter(c echo.Context, id uint) {
	c.Set("actor", service.Actor{UserID: id, Role: "sitter"})
}

func asAdmin(c echo.Context, id uint) {
	c.Set("actor", service.Actor{UserID: id, Role: "admin"})
}

func httpCode(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}

func sampleBooking(id uint) *models.Booking {
	return &models.Booking{
		ID:          id,
		UserID:      7,
		PetID:       3,
		ServiceType: models.ServiceWalking,
		StartDate:   time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 8, 1, 13, 0, 0, 0, time.UTC),
		TotalHours:  3,
		Status:      models.StatusPending,
	}
}
