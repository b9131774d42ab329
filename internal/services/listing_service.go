package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/logging"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/metrics"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/models"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/money"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/store"
)

// IListingService defines the catalogue queries and the admin commands.
// Admin commands assume the caller has already been authorized.
type IListingService interface {
	ListListings(ctx context.Context, status models.StatusFilter) ([]ListingView, error)
	FindListingByID(ctx context.Context, listingID int) (*ListingView, error)
	GetListingMetrics(ctx context.Context, listingID int) (*metrics.Snapshot, error)
	GalleryFrame(ctx context.Context, listingID int, kind GalleryKind, index int) (*GalleryFrame, error)
	Stats(ctx context.Context) InventoryStats
	// Admin commands
	CreateListing(ctx context.Context) (*models.Listing, error)
	UpdateListing(ctx context.Context, listingID int, patch models.ListingPatch) (*models.Listing, error)
	DeleteListing(ctx context.Context, listingID int, confirmed bool) error
}

// ListingView is a listing together with everything derived from it for display.
type ListingView struct {
	models.Listing
	FormattedPrice string           `json:"formattedPrice"`
	Metrics        metrics.Snapshot `json:"metrics"`
}

// InventoryStats summarises the whole inventory.
type InventoryStats struct {
	Listings   int `json:"listings"`
	TotalUnits int `json:"total_units"`
	SoldUnits  int `json:"sold_units"`
	SoldOut    int `json:"sold_out"`
}

// Defaults for a listing created from the admin screen.
const (
	defaultImage     = "https://images.unsplash.com/photo-1613490493576-7fde63acd811?w=800&q=80"
	defaultFloorplan = "https://images.unsplash.com/photo-1503387762-592deb58ef4e?w=800&q=80"
)

// listingService implements IListingService.
type listingService struct {
	inventory *store.Inventory
	prices    *money.Formatter
	now       func() time.Time
}

// NewListingService creates a new ListingService over inventory.
// now is the clock used for sales velocity and new sales start dates; nil means time.Now.
func NewListingService(inventory *store.Inventory, prices *money.Formatter, now func() time.Time) IListingService {
	if now == nil {
		now = time.Now
	}
	return &listingService{inventory: inventory, prices: prices, now: now}
}

func (s *listingService) view(l models.Listing, now time.Time) ListingView {
	return ListingView{
		Listing:        l,
		FormattedPrice: s.prices.Format(l.Price),
		Metrics:        metrics.Compute(l, now),
	}
}

// ListListings returns the listings matching status in inventory order.
func (s *listingService) ListListings(ctx context.Context, status models.StatusFilter) ([]ListingView, error) {
	now := s.now()
	filtered := store.FilterByStatus(s.inventory.All(), status)
	views := make([]ListingView, 0, len(filtered))
	for _, l := range filtered {
		views = append(views, s.view(l, now))
	}
	return views, nil
}

// FindListingByID returns one listing with its derived figures.
func (s *listingService) FindListingByID(ctx context.Context, listingID int) (*ListingView, error) {
	l, err := s.inventory.Get(listingID)
	if err != nil {
		return nil, err
	}
	v := s.view(l, s.now())
	return &v, nil
}

// GetListingMetrics returns availability, urgency and velocity for one listing.
func (s *listingService) GetListingMetrics(ctx context.Context, listingID int) (*metrics.Snapshot, error) {
	l, err := s.inventory.Get(listingID)
	if err != nil {
		return nil, err
	}
	snap := metrics.Compute(l, s.now())
	return &snap, nil
}

// Stats sums units over the inventory.
func (s *listingService) Stats(ctx context.Context) InventoryStats {
	var st InventoryStats
	for _, l := range s.inventory.All() {
		st.Listings++
		st.TotalUnits += l.TotalUnits
		st.SoldUnits += l.SoldUnits
		if l.SoldUnits >= l.TotalUnits {
			st.SoldOut++
		}
	}
	return st
}

// CreateListing appends a listing with default values for immediate editing.
func (s *listingService) CreateListing(ctx context.Context) (*models.Listing, error) {
	today := s.now().UTC().Format(models.DateLayout)
	created := s.inventory.Append(func(id int) models.Listing {
		return models.Listing{
			ID:             id,
			Title:          "Nieuw Project",
			Location:       "Locatie",
			Price:          300000,
			M2:             120,
			Bedrooms:       3,
			DeliveryDate:   "Q1 2026",
			ROI:            6.5,
			TotalUnits:     20,
			SoldUnits:      0,
			SalesStartDate: today,
			Exclusive:      false,
			Images:         []string{defaultImage},
			Floorplans:     []string{defaultFloorplan},
			Description:    "Nieuwe projectomschrijving",
			Features:       []string{"Feature 1", "Feature 2"},
		}
	})
	logging.FromContext(ctx).Info("Listing created", "listing_id", created.ID)
	return &created, nil
}

// UpdateListing merges patch onto the listing. The merged listing must still satisfy
// every invariant, otherwise nothing changes.
func (s *listingService) UpdateListing(ctx context.Context, listingID int, patch models.ListingPatch) (*models.Listing, error) {
	if patch.IsEmpty() {
		return nil, &ValidationError{Message: "no fields provided for update"}
	}
	updated, err := s.inventory.Mutate(listingID, func(l *models.Listing) error {
		patch.Apply(l)
		if v := l.Violations(); len(v) > 0 {
			return &ValidationError{Message: "update would leave the listing invalid", Fields: v}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update listing %d: %w", listingID, err)
	}
	logging.FromContext(ctx).Info("Listing updated", "listing_id", listingID)
	return &updated, nil
}

// DeleteListing removes a listing. It refuses to act unless confirmed is true.
func (s *listingService) DeleteListing(ctx context.Context, listingID int, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	if err := s.inventory.Remove(listingID); err != nil {
		return fmt.Errorf("failed to delete listing %d: %w", listingID, err)
	}
	logging.FromContext(ctx).Info("Listing deleted", "listing_id", listingID)
	return nil
}
