package service

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"petsit-marketplace/internal/client"
	"petsit-marketplace/internal/models"
	"petsit-marketplace/internal/repository"
)

// --- Mock BookingRepository ---

type mockBookingRepo struct {
	createFn          func(ctx context.Context, b *models.Booking) error
	findByIDFn        func(ctx context.Context, id uint) (*models.Booking, error)
	listFn            func(ctx context.Context, filter repository.BookingFilter) ([]models.Booking, error)
	saveFn            func(ctx context.Context, b *models.Booking) error
	updateStatusFn    func(ctx context.Context, id uint, status models.BookingStatus) error
	updatePaymentFn   func(ctx context.Context, id uint, status models.PaymentStatus) error
	claimPendingFn    func(ctx context.Context, id, sitterID uint) (int64, error)
	advanceBySitterFn func(ctx context.Context, id, sitterID uint, from, to models.BookingStatus) (int64, error)
	countByStatusFn   func(ctx context.Context) (map[models.BookingStatus]int64, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	return m.createFn(ctx, b)
}
func (m *mockBookingRepo) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockBookingRepo) List(ctx context.Context, filter repository.BookingFilter) ([]models.Booking, error) {
	return m.listFn(ctx, filter)
}
func (m *mockBookingRepo) Save(ctx context.Context, b *models.Booking) error {
	return m.saveFn(ctx, b)
}
func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id uint, status models.BookingStatus) error {
	return m.updateStatusFn(ctx, id, status)
}
func (m *mockBookingRepo) UpdatePaymentStatus(ctx context.Context, id uint, status models.PaymentStatus) error {
	return m.updatePaymentFn(ctx, id, status)
}
func (m *mockBookingRepo) ClaimPending(ctx context.Context, id, sitterID uint) (int64, error) {
	return m.claimPendingFn(ctx, id, sitterID)
}
func (m *mockBookingRepo) AdvanceBySitter(ctx context.Context, id, sitterID uint, from, to models.BookingStatus) (int64, error) {
	return m.advanceBySitterFn(ctx, id, sitterID, from, to)
}
func (m *mockBookingRepo) CountByStatus(ctx context.Context) (map[models.BookingStatus]int64, error) {
	return m.countByStatusFn(ctx)
}

// --- Mock RequestRepository ---

type mockRequestRepo struct {
	createFn       func(ctx context.Context, r *models.Request) error
	findByIDFn     func(ctx context.Context, id uint) (*models.Request, error)
	listOpenFn     func(ctx context.Context, serviceType *models.ServiceType) ([]models.Request, error)
	claimOpenFn    func(ctx context.Context, id, sitterID uint) (int64, error)
	updateStatusFn func(ctx context.Context, id uint, status models.RequestStatus) error
}

func (m *mockRequestRepo) Create(ctx context.Context, r *models.Request) error {
	return m.createFn(ctx, r)
}
func (m *mockRequestRepo) FindByID(ctx context.Context, id uint) (*models.Request, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockRequestRepo) ListOpen(ctx context.Context, serviceType *models.ServiceType) ([]models.Request, error) {
	return m.listOpenFn(ctx, serviceType)
}
func (m *mockRequestRepo) ClaimOpen(ctx context.Context, id, sitterID uint) (int64, error) {
	return m.claimOpenFn(ctx, id, sitterID)
}
func (m *mockRequestRepo) UpdateStatus(ctx context.Context, id uint, status models.RequestStatus) error {
	return m.updateStatusFn(ctx, id, status)
}

// --- Mock collaborator clients ---

type mockCatalog struct {
	getServiceFn func(ctx context.Context, serviceID uint) (*client.ServiceListing, error)
	getSitterFn  func(ctx context.Context, sitterID uint) (*client.SitterProfile, error)
}

func (m *mockCatalog) GetService(ctx context.Context, serviceID uint) (*client.ServiceListing, error) {
	return m.getServiceFn(ctx, serviceID)
}
func (m *mockCatalog) GetSitter(ctx context.Context, sitterID uint) (*client.SitterProfile, error) {
	return m.getSitterFn(ctx, sitterID)
}

type mockPets struct {
	getPetFn func(ctx context.Context, petID uint) (*client.Pet, error)
}

func (m *mockPets) GetPet(ctx context.Context, petID uint) (*client.Pet, error) {
	return m.getPetFn(ctx, petID)
}

func ownedPet(userID uint) *mockPets {
	return &mockPets{
		getPetFn: func(ctx context.Context, petID uint) (*client.Pet, error) {
			return &client.Pet{PetID: petID, UserID: userID}, nil
		},
	}
}

func approvedSitters() *mockCatalog {
	return &mockCatalog{
		getSitterFn: func(ctx context.Context, sitterID uint) (*client.SitterProfile, error) {
			return &client.SitterProfile{SitterID: sitterID, ApprovalStatus: "approved"}, nil
		},
	}
}

// --- In-memory booking store with an atomic claim, for race tests ---

type memBookingRepo struct {
	mockBookingRepo

	mu       sync.Mutex
	bookings map[uint]*models.Booking
}

func newMemBookingRepo(seed ...*models.Booking) *memBookingRepo {
	m := &memBookingRepo{bookings: make(map[uint]*models.Booking)}
	for _, b := range seed {
		cp := *b
		m.bookings[b.ID] = &cp
	}
	return m
}

func (m *memBookingRepo) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

// ClaimPending mirrors the conditional UPDATE: the check and the write happen
// under one lock, the way the database evaluates the WHERE clause.
func (m *memBookingRepo) ClaimPending(ctx context.Context, id, sitterID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.Status != models.StatusPending || b.SitterID != nil {
		return 0, nil
	}
	sid := sitterID
	b.SitterID = &sid
	b.Status = models.StatusAccepted
	return 1, nil
}

type memRequestRepo struct {
	mockRequestRepo

	mu       sync.Mutex
	requests map[uint]*models.Request
}

func newMemRequestRepo(seed ...*models.Request) *memRequestRepo {
	m := &memRequestRepo{requests: make(map[uint]*models.Request)}
	for _, r := range seed {
		cp := *r
		m.requests[r.ID] = &cp
	}
	return m
}

func (m *memRequestRepo) FindByID(ctx context.Context, id uint) (*models.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memRequestRepo) ClaimOpen(ctx context.Context, id, sitterID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok || r.Status != models.RequestOpen || r.SitterID != nil {
		return 0, nil
	}
	sid := sitterID
	r.SitterID = &sid
	r.Status = models.RequestAccepted
	return 1, nil
}

func date(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}
