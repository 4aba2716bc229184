package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"petsit-marketplace/internal/client"
	"petsit-marketplace/internal/models"
	"petsit-marketplace/internal/service"
)

type BookingResponse struct {
	ID                  uint                 `json:"id"`
	UserID              uint                 `json:"user_id"`
	PetID               uint                 `json:"pet_id"`
	SitterID            *uint                `json:"sitter_id,omitempty"`
	ServiceID           *uint                `json:"service_id,omitempty"`
	ServiceType         models.ServiceType   `json:"service_type"`
	StartDate           time.Time            `json:"start_date"`
	EndDate             time.Time            `json:"end_date"`
	TotalHours          int                  `json:"total_hours"`
	PricePerHour        decimal.Decimal      `json:"price_per_hour"`
	TotalPrice          decimal.Decimal      `json:"total_price"`
	Status              models.BookingStatus `json:"status"`
	PaymentStatus       models.PaymentStatus `json:"payment_status"`
	SpecialInstructions string               `json:"special_instructions,omitempty"`
	Location            string               `json:"location,omitempty"`
	EmergencyContact    string               `json:"emergency_contact,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:                  b.ID,
		UserID:              b.UserID,
		PetID:               b.PetID,
		SitterID:            b.SitterID,
		ServiceID:           b.ServiceID,
		ServiceType:         b.ServiceType,
		StartDate:           b.StartDate,
		EndDate:             b.EndDate,
		TotalHours:          b.TotalHours,
		PricePerHour:        b.PricePerHour,
		TotalPrice:          b.TotalPrice,
		Status:              b.Status,
		PaymentStatus:       b.PaymentStatus,
		SpecialInstructions: b.SpecialInstructions,
		Location:            b.Location,
		EmergencyContact:    b.EmergencyContact,
		CreatedAt:           b.CreatedAt,
	}
}

type RequestResponse struct {
	ID            uint                 `json:"id"`
	UserID        uint                 `json:"user_id"`
	PetID         *uint                `json:"pet_id,omitempty"`
	SitterID      *uint                `json:"sitter_id,omitempty"`
	ServiceType   models.ServiceType   `json:"service_type"`
	Description   string               `json:"description,omitempty"`
	PreferredDate *time.Time           `json:"preferred_date,omitempty"`
	Status        models.RequestStatus `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
}

func ToRequestResponse(r *models.Request) RequestResponse {
	return RequestResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		PetID:         r.PetID,
		SitterID:      r.SitterID,
		ServiceType:   r.ServiceType,
		Description:   r.Description,
		PreferredDate: r.PreferredDate,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
	}
}

type ClaimResponse struct {
	Booking *BookingResponse `json:"booking,omitempty"`
	Request *RequestResponse `json:"request,omitempty"`
}

func ToClaimResponse(res *service.ClaimResult) ClaimResponse {
	var out ClaimResponse
	if res.Booking != nil {
		b := ToBookingResponse(res.Booking)
		out.Booking = &b
	}
	if res.Request != nil {
		r := ToRequestResponse(res.Request)
		out.Request = &r
	}
	return out
}

type TransactionResponse struct {
	ID            uint                     `json:"id"`
	BookingID     uint                     `json:"booking_id"`
	Amount        decimal.Decimal          `json:"amount"`
	PaymentMethod string                   `json:"payment_method"`
	Status        models.TransactionStatus `json:"status"`
	PaymentDate   time.Time                `json:"payment_date"`
	ProofPath     *string                  `json:"proof_path,omitempty"`
}

func ToTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID,
		BookingID:     t.BookingID,
		Amount:        t.Amount,
		PaymentMethod: t.PaymentMethod,
		Status:        t.Status,
		PaymentDate:   t.PaymentDate,
		ProofPath:     t.ProofPath,
	}
}

type DashboardResponse struct {
	Bookings           map[models.BookingStatus]int64 `json:"bookings"`
	Revenue            *client.RevenueSummary         `json:"revenue,omitempty"`
	RevenueUnavailable bool                           `json:"revenue_unavailable,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}
