package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"petsit-marketplace/internal/models"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	FindByID(ctx context.Context, id uint) (*models.Transaction, error)
	FindByBookingID(ctx context.Context, bookingID uint) ([]models.Transaction, error)
	ListByStatusSince(ctx context.Context, status models.TransactionStatus, since time.Time) ([]models.Transaction, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *transactionRepository) FindByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.WithContext(ctx).First(&tx, id).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) FindByBookingID(ctx context.Context, bookingID uint) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("id ASC").
		Find(&txs).Error
	if err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *transactionRepository) ListByStatusSince(ctx context.Context, status models.TransactionStatus, since time.Time) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.WithContext(ctx).
		Where("status = ? AND payment_date >= ?", status, since).
		Order("payment_date ASC").
		Find(&txs).Error
	if err != nil {
		return nil, err
	}
	return txs, nil
}
