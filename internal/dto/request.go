package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"petsit-marketplace/internal/models"
)

type CreateBookingRequest struct {
	PetID               uint                `json:"pet_id"`
	StartDate           time.Time           `json:"start_date"`
	EndDate             time.Time           `json:"end_date"`
	ServiceID           *uint               `json:"service_id,omitempty"`
	ServiceType         models.ServiceType  `json:"service_type,omitempty"`
	PricePerHour        decimal.Decimal     `json:"price_per_hour,omitempty"`
	SpecialInstructions string              `json:"special_instructions,omitempty"`
	Location            string              `json:"location,omitempty"`
	EmergencyContact    string              `json:"emergency_contact,omitempty"`
}

type UpdateBookingRequest struct {
	StartDate           *time.Time          `json:"start_date,omitempty"`
	EndDate             *time.Time          `json:"end_date,omitempty"`
	ServiceType         *models.ServiceType `json:"service_type,omitempty"`
	SpecialInstructions *string             `json:"special_instructions,omitempty"`
	Location            *string             `json:"location,omitempty"`
	EmergencyContact    *string             `json:"emergency_contact,omitempty"`
}

type CreateRequestRequest struct {
	PetID         *uint              `json:"pet_id,omitempty"`
	ServiceType   models.ServiceType `json:"service_type,omitempty"`
	Description   string             `json:"description,omitempty"`
	PreferredDate *time.Time         `json:"preferred_date,omitempty"`
}

type UpdateJobStatusRequest struct {
	Status models.BookingStatus `json:"status"`
}

type AdminSetStatusRequest struct {
	Status models.BookingStatus `json:"status"`
}

type RecordTransactionRequest struct {
	BookingID     uint            `json:"booking_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	ProofPath     *string         `json:"proof_path,omitempty"`
}
