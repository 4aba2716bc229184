package repository

import (
	"context"

	"gorm.io/gorm"

	"petsit-marketplace/internal/models"
)

type RequestRepository interface {
	Create(ctx context.Context, req *models.Request) error
	FindByID(ctx context.Context, id uint) (*models.Request, error)
	ListOpen(ctx context.Context, serviceType *models.ServiceType) ([]models.Request, error)
	ClaimOpen(ctx context.Context, id, sitterID uint) (int64, error)
	UpdateStatus(ctx context.Context, id uint, status models.RequestStatus) error
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *models.Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *requestRepository) FindByID(ctx context.Context, id uint) (*models.Request, error) {
	var req models.Request
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) ListOpen(ctx context.Context, serviceType *models.ServiceType) ([]models.Request, error) {
	var reqs []models.Request
	q := r.db.WithContext(ctx).Where("status = ?", models.RequestOpen)
	if serviceType != nil {
		q = q.Where("service_type = ?", *serviceType)
	}
	if err := q.Order("created_at DESC").Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// ClaimOpen is the request-flow twin of BookingRepository.ClaimPending and
// shares the same conditional-update contract.
func (r *requestRepository) ClaimOpen(ctx context.Context, id, sitterID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Request{}).
		Where("id = ? AND status = ? AND sitter_id IS NULL", id, models.RequestOpen).
		Updates(map[string]any{"sitter_id": sitterID, "status": models.RequestAccepted})
	return res.RowsAffected, res.Error
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id uint, status models.RequestStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Request{}).
		Where("id = ?", id).
		Update("status", status).Error
}
