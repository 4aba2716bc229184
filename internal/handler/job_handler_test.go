package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"petsit-marketplace/internal/dto"
	"petsit-marketplace/internal/models"
	"petsit-marketplace/internal/service"
)

func TestAcceptJob_ReturnsClaimedBooking(t *testing.T) {
	claims := &mockClaimService{
		acceptJobFn: func(ctx context.Context, jobID, sitterID uint) (*service.ClaimResult, error) {
			assert.Equal(t, uint(42), jobID)
			assert.Equal(t, uint(12), sitterID)
			b := sampleBooking(42)
			sid := sitterID
			b.SitterID = &sid
			b.Status = models.StatusAccepted
			return &service.ClaimResult{Booking: b}, nil
		},
	}
	h := NewJobHandler(claims, &mockBookingService{})

	c, rec := newTestContext(http.MethodPost, "/api/v1/jobs/42/accept", "")
	c.SetParamNames("id")
	c.SetParamValues("42")
	asSitter(c, 12)

	err := h.AcceptJob(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ClaimResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Booking)
	assert.Nil(t, resp.Request)
	assert.Equal(t, models.StatusAccepted, resp.Booking.Status)
}

func TestAcceptJob_AlreadyClaimedConflict(t *testing.T) {
	claims := &mockClaimService{
		acceptJobFn: func(ctx context.Context, jobID, sitterID uint) (*service.ClaimResult, error) {
			return nil, service.ErrAlreadyClaimed
		},
	}
	h := NewJobHandler(claims, &mockBookingService{})

	c, _ := newTestContext(http.MethodPost, "/api/v1/jobs/42/accept", "")
	c.SetParamNames("id")
	c.SetParamValues("42")
	asSitter(c, 13)

	err := h.AcceptJob(c)
	assert.Equal(t, http.StatusConflict, httpCode(err))
}

func TestAcceptJob_UnapprovedSitterForbidden(t *testing.T) {
	claims := &mockClaimService{
		acceptJobFn: func(ctx context.Context, jobID, sitterID uint) (*service.ClaimResult, error) {
			return nil, service.ErrSitterNotApproved
		},
	}
	h := NewJobHandler(claims, &mockBookingService{})

	c, _ := newTestContext(http.MethodPost, "/api/v1/jobs/42/accept", "")
	c.SetParamNames("id")
	c.SetParamValues("42")
	asSitter(c, 12)

	err := h.AcceptJob(c)
	assert.Equal(t, http.StatusForbidden, httpCode(err))
}

func TestAcceptJob_NothingToClaim(t *testing.T) {
	claims := &mockClaimService{
		acceptJobFn: func(ctx context.Context, jobID, sitterID uint) (*service.ClaimResult, error) {
			return nil, service.ErrJobNotFound
		},
	}
	h := NewJobHandler(claims, &mockBookingService{})

	c, _ := newTestContext(http.MethodPost, "/api/v1/jobs/42/accept", "")
	c.SetParamNames("id")
	c.SetParamValues("42")
	asSitter(c, 12)

	err := h.AcceptJob(c)
	assert.Equal(t, http.StatusNotFound, httpCode(err))
}

func TestListOpenJobs_ForwardsServiceTypeFilter(t *testing.T) {
	claims := &mockClaimService{
		listOpenJobsFn: func(ctx context.Context, serviceType *models.ServiceType) ([]models.Booking, error) {
			assert.NotNil(t, serviceType)
			assert.Equal(t, models.ServiceBoarding, *serviceType)
			return []models.Booking{*sampleBooking(1), *sampleBooking(2)}, nil
		},
	}
	h := NewJobHandler(claims, &mockBookingService{})

	c, rec := newTestContext(http.MethodGet, "/api/v1/jobs?service_type=boarding", "")
	asSitter(c, 12)

	err := h.ListOpenJobs(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.BookingResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestListOpenRequests_Success(t *testing.T) {
	claims := &mockClaimService{
		listOpenRequestsFn: func(ctx context.Context, serviceType *models.ServiceType) ([]models.Request, error) {
			assert.Nil(t, serviceType)
			return []models.Request{{ID: 5, UserID: 7, ServiceType: models.ServiceWalking, Status: models.RequestOpen}}, nil
		},
	}
	h := NewJobHandler(claims, &mockBookingService{})

	c, rec := newTestContext(http.MethodGet, "/api/v1/jobs/requests", "")
	asSitter(c, 12)

	err := h.ListOpenRequests(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateJobStatus_Advances(t *testing.T) {
	bookings := &mockBookingService{
		updateJobStatusFn: func(ctx context.Context, id, sitterID uint, status models.BookingStatus) (*models.Booking, error) {
			assert.Equal(t, uint(42), id)
			assert.Equal(t, uint(12), sitterID)
			assert.Equal(t, models.StatusInProgress, status)
			b := sampleBooking(42)
			b.Status = status
			return b, nil
		},
	}
	h := NewJobHandler(&mockClaimService{}, bookings)

	c, rec := newTestContext(http.MethodPut, "/api/v1/jobs/42/status", `{"status": "in_progress"}`)
	c.SetParamNames("id")
	c.SetParamValues("42")
	asSitter(c, 12)

	err := h.UpdateJobStatus(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateJobStatus_WrongSitterForbidden(t *testing.T) {
	bookings := &mockBookingService{
		updateJobStatusFn: func(ctx context.Context, id, sitterID uint, status models.BookingStatus) (*models.Booking, error) {
			return nil, service.ErrForbidden
		},
	}
	h := NewJobHandler(&mockClaimService{}, bookings)

	c, _ := newTestContext(http.MethodPut, "/api/v1/jobs/42/status", `{"status": "completed"}`)
	c.SetParamNames("id")
	c.SetParamValues("42")
	asSitter(c, 99)

	err := h.UpdateJobStatus(c)
	assert.Equal(t, http.StatusForbidden, httpCode(err))
}

func TestUpdateJobStatus_SkippedStateConflict(t *testing.T) {
	bookings := &mockBookingService{
		updateJobStatusFn: func(ctx context.Context, id, sitterID uint, status models.BookingStatus) (*models.Booking, error) {
			return nil, service.ErrInvalidTransition
		},
	}
	h := NewJobHandler(&mockClaimService{}, bookings)

	c, _ := newTestContext(http.MethodPut, "/api/v1/jobs/42/status", `{"status": "completed"}`)
	c.SetParamNames("id")
	c.SetParamValues("42")
	asSitter(c, 12)

	err := h.UpdateJobStatus(c)
	assert.Equal(t, http.StatusConflict, httpCode(err))
}
