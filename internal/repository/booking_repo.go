package repository

import (
	"context"

	"gorm.io/gorm"

	"petsit-marketplace/internal/models"
)

type BookingFilter struct {
	UserID      *uint
	SitterID    *uint
	Status      *models.BookingStatus
	ServiceType *models.ServiceType
	Unclaimed   bool
}

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
	Save(ctx context.Context, booking *models.Booking) error
	UpdateStatus(ctx context.Context, id uint, status models.BookingStatus) error
	UpdatePaymentStatus(ctx context.Context, id uint, status models.PaymentStatus) error
	ClaimPending(ctx context.Context, id, sitterID uint) (int64, error)
	AdvanceBySitter(ctx context.Context, id, sitterID uint, from, to models.BookingStatus) (int64, error)
	CountByStatus(ctx context.Context) (map[models.BookingStatus]int64, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx)
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.SitterID != nil {
		q = q.Where("sitter_id = ?", *filter.SitterID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.ServiceType != nil {
		q = q.Where("service_type = ?", *filter.ServiceType)
	}
	if filter.Unclaimed {
		q = q.Where("sitter_id IS NULL")
	}
	if err := q.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) Save(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uint, status models.BookingStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *bookingRepository) UpdatePaymentStatus(ctx context.Context, id uint, status models.PaymentStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update("payment_status", status).Error
}

// ClaimPending assigns the sitter and flips the booking to accepted in one
// conditional update. Zero rows affected means the booking was missing,
// already claimed, or no longer pending; callers disambiguate with FindByID.
// Two replicas racing here cannot both win: the WHERE clause is evaluated
// under the row lock taken by the UPDATE itself.
func (r *bookingRepository) ClaimPending(ctx context.Context, id, sitterID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ? AND sitter_id IS NULL", id, models.StatusPending).
		Updates(map[string]any{"sitter_id": sitterID, "status": models.StatusAccepted})
	return res.RowsAffected, res.Error
}

// AdvanceBySitter moves a booking between sitter-visible states. The sitter_id
// predicate keeps a second sitter from operating on a booking claimed by
// another; the from predicate keeps the transition single-shot.
func (r *bookingRepository) AdvanceBySitter(ctx context.Context, id, sitterID uint, from, to models.BookingStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND sitter_id = ? AND status = ?", id, sitterID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *bookingRepository) CountByStatus(ctx context.Context) (map[models.BookingStatus]int64, error) {
	type row struct {
		Status models.BookingStatus
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[models.BookingStatus]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}
