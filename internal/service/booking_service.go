package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"petsit-marketplace/internal/client"
	"petsit-marketplace/internal/models"
	"petsit-marketplace/internal/repository"
)

type CreateBookingInput struct {
	UserID              uint
	PetID               uint
	StartDate           time.Time
	EndDate             time.Time
	ServiceID           *uint
	ServiceType         models.ServiceType
	PricePerHour        decimal.Decimal
	SpecialInstructions string
	Location            string
	EmergencyContact    string
}

type UpdateBookingPatch struct {
	StartDate           *time.Time
	EndDate             *time.Time
	ServiceType         *models.ServiceType
	SpecialInstructions *string
	Location            *string
	EmergencyContact    *string
}

// PricingPolicy controls what happens when the catalog cannot be reached
// during booking creation. Fallback pricing is opt-in: with FallbackEnabled
// false the operation fails instead of silently substituting a default rate.
type PricingPolicy struct {
	FallbackEnabled bool
	FallbackRate    decimal.Decimal
}

type BookingService interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, id uint, actor Actor) (*models.Booking, error)
	ListBookings(ctx context.Context, actor Actor, status *models.BookingStatus) ([]models.Booking, error)
	UpdateBooking(ctx context.Context, id uint, actor Actor, patch UpdateBookingPatch) (*models.Booking, error)
	CancelBooking(ctx context.Context, id uint, actor Actor) (*models.Booking, error)
	UpdateJobStatus(ctx context.Context, id, sitterID uint, status models.BookingStatus) (*models.Booking, error)
	AdminSetStatus(ctx context.Context, id uint, status models.BookingStatus) (*models.Booking, error)
	CreateRequest(ctx context.Context, req *models.Request) error
}

type bookingService struct {
	bookings repository.BookingRepository
	requests repository.RequestRepository
	catalog  client.CatalogClient
	pets     client.PetClient
	pricing  PricingPolicy
}

func NewBookingService(
	bookings repository.BookingRepository,
	requests repository.RequestRepository,
	catalog client.CatalogClient,
	pets client.PetClient,
	pricing PricingPolicy,
) BookingService {
	return &bookingService{
		bookings: bookings,
		requests: requests,
		catalog:  catalog,
		pets:     pets,
		pricing:  pricing,
	}
}

// ceilHours rounds a duration up to whole hours. end > start is validated
// before this runs, so the result is always >= 1.
func ceilHours(start, end time.Time) int {
	d := end.Sub(start)
	h := int(d / time.Hour)
	if d%time.Hour != 0 {
		h++
	}
	return h
}

func (s *bookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if !in.EndDate.After(in.StartDate) {
		return nil, ErrInvalidDates
	}

	pet, err := s.pets.GetPet(ctx, in.PetID)
	switch {
	case errors.Is(err, client.ErrNotFound):
		return nil, ErrInvalidPet
	case errors.Is(err, client.ErrUnavailable):
		return nil, ErrDependencyUnavailable
	case err != nil:
		return nil, err
	}
	if pet.UserID != in.UserID {
		return nil, ErrInvalidPet
	}

	serviceType := in.ServiceType
	if serviceType == "" {
		serviceType = models.ServiceSitting
	}

	rate := in.PricePerHour
	if in.ServiceID != nil {
		listing, err := s.catalog.GetService(ctx, *in.ServiceID)
		switch {
		case errors.Is(err, client.ErrNotFound):
			return nil, ErrServiceNotFound
		case errors.Is(err, client.ErrUnavailable):
			if !s.pricing.FallbackEnabled {
				return nil, ErrDependencyUnavailable
			}
			log.Printf("[pricing] catalog unreachable for service %d, using fallback rate %s", *in.ServiceID, s.pricing.FallbackRate)
			rate = s.pricing.FallbackRate
		case err != nil:
			return nil, err
		default:
			if !listing.Availability {
				return nil, ErrServiceUnavailable
			}
			rate = listing.PricePerHour
			if t := models.ServiceType(listing.ServiceType); t != "" {
				serviceType = t
			}
		}
	}
	if !rate.IsPositive() {
		return nil, ErrInvalidPrice
	}

	hours := ceilHours(in.StartDate, in.EndDate)
	booking := &models.Booking{
		UserID:              in.UserID,
		PetID:               in.PetID,
		ServiceID:           in.ServiceID,
		ServiceType:         serviceType,
		StartDate:           in.StartDate,
		EndDate:             in.EndDate,
		TotalHours:          hours,
		PricePerHour:        rate,
		TotalPrice:          rate.Mul(decimal.NewFromInt(int64(hours))),
		Status:              models.StatusPending,
		PaymentStatus:       models.PaymentUnpaid,
		SpecialInstructions: in.SpecialInstructions,
		Location:            in.Location,
		EmergencyContact:    in.EmergencyContact,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// canView limits booking reads to the owning user, the assigned sitter and admins.
func canView(b *models.Booking, actor Actor) bool {
	if actor.Admin() || b.UserID == actor.UserID {
		return true
	}
	return b.SitterID != nil && *b.SitterID == actor.UserID
}

func (s *bookingService) GetBooking(ctx context.Context, id uint, actor Actor) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !canView(booking, actor) {
		return nil, ErrForbidden
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, actor Actor, status *models.BookingStatus) ([]models.Booking, error) {
	filter := repository.BookingFilter{Status: status}
	switch {
	case actor.Admin():
		// no scoping
	case actor.Sitter():
		filter.SitterID = &actor.UserID
	default:
		filter.UserID = &actor.UserID
	}
	return s.bookings.List(ctx, filter)
}

func (s *bookingService) UpdateBooking(ctx context.Context, id uint, actor Actor, patch UpdateBookingPatch) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.UserID != actor.UserID {
		return nil, ErrForbidden
	}
	if booking.Status != models.StatusPending {
		return nil, ErrInvalidTransition
	}

	datesChanged := false
	if patch.StartDate != nil {
		booking.StartDate = *patch.StartDate
		datesChanged = true
	}
	if patch.EndDate != nil {
		booking.EndDate = *patch.EndDate
		datesChanged = true
	}
	if patch.ServiceType != nil {
		booking.ServiceType = *patch.ServiceType
	}
	if patch.SpecialInstructions != nil {
		booking.SpecialInstructions = *patch.SpecialInstructions
	}
	if patch.Location != nil {
		booking.Location = *patch.Location
	}
	if patch.EmergencyContact != nil {
		booking.EmergencyContact = *patch.EmergencyContact
	}

	if datesChanged {
		if !booking.EndDate.After(booking.StartDate) {
			return nil, ErrInvalidDates
		}
		booking.TotalHours = ceilHours(booking.StartDate, booking.EndDate)
		booking.TotalPrice = booking.PricePerHour.Mul(decimal.NewFromInt(int64(booking.TotalHours)))
	}

	if err := s.bookings.Save(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, id uint, actor Actor) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !actor.Admin() && booking.UserID != actor.UserID {
		return nil, ErrForbidden
	}

	// Cancelling twice is a no-op, not an error.
	if booking.Status == models.StatusCancelled {
		return booking, nil
	}
	if !booking.Status.CanTransition(models.StatusCancelled) {
		return nil, ErrInvalidTransition
	}

	if err := s.bookings.UpdateStatus(ctx, id, models.StatusCancelled); err != nil {
		return nil, err
	}
	booking.Status = models.StatusCancelled
	return booking, nil
}

// UpdateJobStatus advances a claimed booking on behalf of its sitter. The
// repository predicate rechecks sitter identity and the current status, so a
// stale read here cannot produce a bad write.
func (s *bookingService) UpdateJobStatus(ctx context.Context, id, sitterID uint, status models.BookingStatus) (*models.Booking, error) {
	var from models.BookingStatus
	switch status {
	case models.StatusInProgress:
		from = models.StatusAccepted
	case models.StatusCompleted:
		from = models.StatusInProgress
	default:
		return nil, ErrInvalidStatus
	}

	rows, err := s.bookings.AdvanceBySitter(ctx, id, sitterID, from, status)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		booking, err := s.bookings.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBookingNotFound
			}
			return nil, err
		}
		if booking.SitterID == nil || *booking.SitterID != sitterID {
			return nil, ErrForbidden
		}
		return nil, ErrInvalidTransition
	}
	return s.bookings.FindByID(ctx, id)
}

func (s *bookingService) AdminSetStatus(ctx context.Context, id uint, status models.BookingStatus) (*models.Booking, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !booking.Status.CanAdminOverride(status) {
		return nil, ErrInvalidTransition
	}
	if !booking.Status.CanTransition(status) {
		log.Printf("[admin] override transition on booking %d: %s -> %s", id, booking.Status, status)
	}
	if err := s.bookings.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	booking.Status = status
	return booking, nil
}

func (s *bookingService) CreateRequest(ctx context.Context, req *models.Request) error {
	if req.ServiceType == "" {
		req.ServiceType = models.ServiceSitting
	}
	req.Status = models.RequestOpen
	req.SitterID = nil
	return s.requests.Create(ctx, req)
}
