package service

import "errors"

var (
	ErrBookingNotFound       = errors.New("booking not found")
	ErrJobNotFound           = errors.New("no such pending job")
	ErrRequestNotFound       = errors.New("request not found")
	ErrServiceNotFound       = errors.New("service listing not found")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrInvalidDates          = errors.New("end date must be after start date")
	ErrInvalidPet            = errors.New("pet does not exist or does not belong to user")
	ErrInvalidPrice          = errors.New("price per hour must be positive")
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrServiceUnavailable    = errors.New("service listing is not available")
	ErrForbidden             = errors.New("not allowed to access this booking")
	ErrAlreadyClaimed        = errors.New("job is no longer available")
	ErrSitterNotFound        = errors.New("sitter profile not found")
	ErrSitterNotApproved     = errors.New("sitter account not approved yet")
	ErrInvalidTransition     = errors.New("status transition not allowed")
	ErrInvalidStatus         = errors.New("invalid status")
	ErrAlreadyRefunded       = errors.New("transaction already refunded")
	ErrDependencyUnavailable = errors.New("upstream service unavailable")
)

// Actor identifies the authenticated caller of an operation, as extracted
// from the bearer token issued by the identity service.
type Actor struct {
	UserID uint
	Role   string
}

func (a Actor) Admin() bool  { return a.Role == "admin" }
func (a Actor) Sitter() bool { return a.Role == "sitter" }
