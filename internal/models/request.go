package models

import "time"

// RequestStatus tracks the inquiry-first flow. A request starts open with no
// committed dates or price; once a sitter engages it is promoted into a
// Booking and the request moves to accepted.
type RequestStatus string

const (
	RequestOpen      RequestStatus = "open"
	RequestAccepted  RequestStatus = "accepted"
	RequestCompleted RequestStatus = "completed"
	RequestCancelled RequestStatus = "cancelled"
)

func (s RequestStatus) Terminal() bool {
	return s == RequestCompleted || s == RequestCancelled
}

type Request struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	UserID        uint          `gorm:"not null;index" json:"user_id"`
	PetID         *uint         `json:"pet_id,omitempty"`
	SitterID      *uint         `gorm:"index" json:"sitter_id,omitempty"`
	ServiceType   ServiceType   `gorm:"type:varchar(20);not null;default:'sitting'" json:"service_type"`
	Description   string        `gorm:"type:text" json:"description,omitempty"`
	PreferredDate *time.Time    `json:"preferred_date,omitempty"`
	Status        RequestStatus `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
