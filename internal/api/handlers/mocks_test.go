package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/metrics"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/models"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/services"
)

// --- Mocks ---

// MockListingService
type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) ListListings(ctx context.Context, status models.StatusFilter) ([]services.ListingView, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.ListingView), args.Error(1)
}
func (m *MockListingService) FindListingByID(ctx context.Context, listingID int) (*services.ListingView, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ListingView), args.Error(1)
}
func (m *MockListingService) GetListingMetrics(ctx context.Context, listingID int) (*metrics.Snapshot, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*metrics.Snapshot), args.Error(1)
}
func (m *MockListingService) GalleryFrame(ctx context.Context, listingID int, kind services.GalleryKind, index int) (*services.GalleryFrame, error) {
	args := m.Called(ctx, listingID, kind, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.GalleryFrame), args.Error(1)
}
func (m *MockListingService) Stats(ctx context.Context) services.InventoryStats {
	args := m.Called(ctx)
	return args.Get(0).(services.InventoryStats)
}
func (m *MockListingService) CreateListing(ctx context.Context) (*models.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}
func (m *MockListingService) UpdateListing(ctx context.Context, listingID int, patch models.ListingPatch) (*models.Listing, error) {
	args := m.Called(ctx, listingID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}
func (m *MockListingService) DeleteListing(ctx context.Context, listingID int, confirmed bool) error {
	args := m.Called(ctx, listingID, confirmed)
	return args.Error(0)
}

// MockReservationService
type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) Reserve(ctx context.Context, listingID int, form models.ContactForm) (*models.ReservationReceipt, error) {
	args := m.Called(ctx, listingID, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReservationReceipt), args.Error(1)
}
