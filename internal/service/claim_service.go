package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"petsit-marketplace/internal/client"
	"petsit-marketplace/internal/models"
	"petsit-marketplace/internal/repository"
)

// ClaimResult reports which flavor of work item was claimed. Exactly one of
// Booking and Request is set.
type ClaimResult struct {
	Booking *models.Booking `json:"booking,omitempty"`
	Request *models.Request `json:"request,omitempty"`
}

// ClaimService arbitrates concurrent accept attempts on open work. At most
// one sitter wins a given job; everyone else gets ErrAlreadyClaimed.
type ClaimService interface {
	AcceptJob(ctx context.Context, jobID, sitterID uint) (*ClaimResult, error)
	ListOpenJobs(ctx context.Context, serviceType *models.ServiceType) ([]models.Booking, error)
	ListOpenRequests(ctx context.Context, serviceType *models.ServiceType) ([]models.Request, error)
}

type claimService struct {
	bookings repository.BookingRepository
	requests repository.RequestRepository
	catalog  client.CatalogClient
}

func NewClaimService(
	bookings repository.BookingRepository,
	requests repository.RequestRepository,
	catalog client.CatalogClient,
) ClaimService {
	return &claimService{bookings: bookings, requests: requests, catalog: catalog}
}

// AcceptJob claims the pending booking with the given id for the sitter. The
// booking and request tables have separate id spaces; the booking flow is
// tried first and the request flow only when no booking row exists at all.
// Both flows resolve the claim with a single conditional update, so the
// arbitration holds across concurrent callers and across service replicas.
func (s *claimService) AcceptJob(ctx context.Context, jobID, sitterID uint) (*ClaimResult, error) {
	profile, err := s.catalog.GetSitter(ctx, sitterID)
	switch {
	case errors.Is(err, client.ErrNotFound):
		return nil, ErrSitterNotFound
	case errors.Is(err, client.ErrUnavailable):
		return nil, ErrDependencyUnavailable
	case err != nil:
		return nil, err
	}
	if profile.ApprovalStatus != "approved" {
		return nil, ErrSitterNotApproved
	}

	rows, err := s.bookings.ClaimPending(ctx, jobID, sitterID)
	if err != nil {
		return nil, err
	}
	if rows > 0 {
		booking, err := s.bookings.FindByID(ctx, jobID)
		if err != nil {
			return nil, err
		}
		return &ClaimResult{Booking: booking}, nil
	}

	// Zero rows affected: either the booking exists but is no longer
	// claimable (lost the race, or cancelled), or there is no booking with
	// this id and the request flow applies.
	if _, err := s.bookings.FindByID(ctx, jobID); err == nil {
		return nil, ErrAlreadyClaimed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return s.acceptRequest(ctx, jobID, sitterID)
}

func (s *claimService) acceptRequest(ctx context.Context, requestID, sitterID uint) (*ClaimResult, error) {
	rows, err := s.requests.ClaimOpen(ctx, requestID, sitterID)
	if err != nil {
		return nil, err
	}
	if rows > 0 {
		req, err := s.requests.FindByID(ctx, requestID)
		if err != nil {
			return nil, err
		}
		return &ClaimResult{Request: req}, nil
	}

	if _, err := s.requests.FindByID(ctx, requestID); err == nil {
		return nil, ErrAlreadyClaimed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return nil, ErrJobNotFound
}

func (s *claimService) ListOpenJobs(ctx context.Context, serviceType *models.ServiceType) ([]models.Booking, error) {
	pending := models.StatusPending
	return s.bookings.List(ctx, repository.BookingFilter{
		Status:      &pending,
		ServiceType: serviceType,
		Unclaimed:   true,
	})
}

func (s *claimService) ListOpenRequests(ctx context.Context, serviceType *models.ServiceType) ([]models.Request, error) {
	return s.requests.ListOpen(ctx, serviceType)
}
