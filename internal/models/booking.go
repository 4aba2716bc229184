package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusAccepted   BookingStatus = "accepted"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

type ServiceType string

const (
	ServiceSitting  ServiceType = "sitting"
	ServiceWalking  ServiceType = "walking"
	ServiceBoarding ServiceType = "boarding"
	ServiceGrooming ServiceType = "grooming"
)

// transitions is the fixed lifecycle table. Terminal states have no entry.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusAccepted, StatusCancelled},
	StatusAccepted:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
}

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s BookingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether the lifecycle table allows moving from s to next.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// CanAdminOverride reports whether an admin may force the move from s to next.
// Admins may jump between any two non-terminal states; entering a terminal
// state still has to follow the lifecycle table.
func (s BookingStatus) CanAdminOverride(next BookingStatus) bool {
	if s.CanTransition(next) {
		return true
	}
	return !s.Terminal() && !next.Terminal() && s != next
}

type Booking struct {
	ID                  uint            `gorm:"primaryKey" json:"id"`
	UserID              uint            `gorm:"not null;index" json:"user_id"`
	PetID               uint            `gorm:"not null" json:"pet_id"`
	SitterID            *uint           `gorm:"index" json:"sitter_id,omitempty"`
	ServiceID           *uint           `json:"service_id,omitempty"`
	ServiceType         ServiceType     `gorm:"type:varchar(20);not null;default:'sitting'" json:"service_type"`
	StartDate           time.Time       `gorm:"not null" json:"start_date"`
	EndDate             time.Time       `gorm:"not null" json:"end_date"`
	TotalHours          int             `gorm:"not null" json:"total_hours"`
	PricePerHour        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price_per_hour"`
	TotalPrice          decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_price"`
	Status              BookingStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentStatus       PaymentStatus   `gorm:"type:varchar(20);not null;default:'unpaid'" json:"payment_status"`
	SpecialInstructions string          `gorm:"type:text" json:"special_instructions,omitempty"`
	Location            string          `gorm:"type:varchar(500)" json:"location,omitempty"`
	EmergencyContact    string          `gorm:"type:varchar(20)" json:"emergency_contact,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}
