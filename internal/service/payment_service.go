package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"petsit-marketplace/internal/models"
	"petsit-marketplace/internal/repository"
)

// EventPublisher pushes settlement events onto the message bus. The booking
// service consumes them to reconcile payment_status; delivery is best-effort
// and never fails the settlement write.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type PaymentEvent struct {
	TransactionID uint            `json:"transaction_id"`
	BookingID     uint            `json:"booking_id"`
	Amount        decimal.Decimal `json:"amount"`
}

type RecordTransactionInput struct {
	BookingID     uint
	Amount        decimal.Decimal
	PaymentMethod string
	ProofPath     *string
}

type MonthRevenue struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

type RevenueSummary struct {
	Total   decimal.Decimal `json:"total"`
	Monthly []MonthRevenue  `json:"monthly"`
}

type PaymentService interface {
	RecordTransaction(ctx context.Context, in RecordTransactionInput) (*models.Transaction, error)
	RecordRefund(ctx context.Context, transactionID uint) (*models.Transaction, error)
	ListByBooking(ctx context.Context, bookingID uint) ([]models.Transaction, error)
	RevenueSummary(ctx context.Context, months int) (*RevenueSummary, error)
}

type paymentService struct {
	transactions repository.TransactionRepository
	publisher    EventPublisher
	now          func() time.Time
}

func NewPaymentService(transactions repository.TransactionRepository, publisher EventPublisher) PaymentService {
	return &paymentService{
		transactions: transactions,
		publisher:    publisher,
		now:          time.Now,
	}
}

func (s *paymentService) RecordTransaction(ctx context.Context, in RecordTransactionInput) (*models.Transaction, error) {
	if in.BookingID == 0 {
		return nil, ErrBookingNotFound
	}
	if !in.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	method := in.PaymentMethod
	if method == "" {
		method = "qr"
	}
	tx := &models.Transaction{
		BookingID:     in.BookingID,
		Amount:        in.Amount,
		PaymentMethod: method,
		Status:        models.TxSuccess,
		PaymentDate:   s.now(),
		ProofPath:     in.ProofPath,
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, err
	}

	s.publish("payment.recorded", tx)
	return tx, nil
}

// RecordRefund appends a refund row for a previously successful transaction.
// The original row is never edited.
func (s *paymentService) RecordRefund(ctx context.Context, transactionID uint) (*models.Transaction, error) {
	orig, err := s.transactions.FindByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	if orig.Status != models.TxSuccess {
		return nil, ErrAlreadyRefunded
	}

	siblings, err := s.transactions.FindByBookingID(ctx, orig.BookingID)
	if err != nil {
		return nil, err
	}
	for _, t := range siblings {
		if t.Status == models.TxRefund {
			return nil, ErrAlreadyRefunded
		}
	}

	refund := &models.Transaction{
		BookingID:     orig.BookingID,
		Amount:        orig.Amount,
		PaymentMethod: orig.PaymentMethod,
		Status:        models.TxRefund,
		PaymentDate:   s.now(),
	}
	if err := s.transactions.Create(ctx, refund); err != nil {
		return nil, err
	}

	s.publish("payment.refunded", refund)
	return refund, nil
}

func (s *paymentService) ListByBooking(ctx context.Context, bookingID uint) ([]models.Transaction, error) {
	return s.transactions.FindByBookingID(ctx, bookingID)
}

// RevenueSummary aggregates successful transactions by calendar month over
// the trailing window. Rows with a zero payment_date are skipped rather than
// failing the whole aggregate.
func (s *paymentService) RevenueSummary(ctx context.Context, months int) (*RevenueSummary, error) {
	if months <= 0 {
		months = 12
	}
	now := s.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	txs, err := s.transactions.ListByStatusSince(ctx, models.TxSuccess, start)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]decimal.Decimal, months)
	total := decimal.Zero
	for _, tx := range txs {
		if tx.PaymentDate.IsZero() {
			log.Printf("[revenue] skipping transaction %d: missing payment date", tx.ID)
			continue
		}
		key := tx.PaymentDate.UTC().Format("2006-01")
		buckets[key] = buckets[key].Add(tx.Amount)
		total = total.Add(tx.Amount)
	}

	monthly := make([]MonthRevenue, 0, months)
	for i := 0; i < months; i++ {
		m := start.AddDate(0, i, 0)
		key := m.Format("2006-01")
		amount, ok := buckets[key]
		if !ok {
			amount = decimal.Zero
		}
		monthly = append(monthly, MonthRevenue{Month: key, Amount: amount})
	}

	return &RevenueSummary{Total: total, Monthly: monthly}, nil
}

func (s *paymentService) publish(key string, tx *models.Transaction) {
	if s.publisher == nil {
		return
	}
	event := PaymentEvent{TransactionID: tx.ID, BookingID: tx.BookingID, Amount: tx.Amount}
	if err := s.publisher.Publish(key, event); err != nil {
		log.Printf("[payment] publish %s for booking %d failed: %v", key, tx.BookingID, err)
	}
}
