package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/metrics"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/models"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/money"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/store"
)

var fixedNow = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func testListing(id, total, sold int) models.Listing {
	return models.Listing{
		ID:             id,
		Title:          "Project",
		Location:       "Denia, Valencia",
		Price:          485000,
		TotalUnits:     total,
		SoldUnits:      sold,
		SalesStartDate: "2024-08-01",
		Images:         []string{"a.jpg", "b.jpg", "c.jpg"},
		Floorplans:     []string{"plan.jpg"},
	}
}

func setupListingService(t *testing.T, seed ...models.Listing) (IListingService, *store.Inventory) {
	inv, err := store.NewInventory(seed)
	require.NoError(t, err)
	return NewListingService(inv, money.MustFormatter("nl-NL", "EUR"), clock), inv
}

func TestListingService_ListListings(t *testing.T) {
	svc, _ := setupListingService(t, testListing(1, 24, 19), testListing(2, 10, 10), testListing(3, 16, 13))
	ctx := context.Background()

	all, err := svc.ListListings(ctx, models.StatusAll)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "€ 485.000", all[0].FormattedPrice)
	assert.Equal(t, 5, all[0].Metrics.Availability.Available)
	assert.Equal(t, metrics.LevelAlmostSoldOut, all[0].Metrics.Urgency.Level)

	avail, _ := svc.ListListings(ctx, models.StatusAvailable)
	assert.Len(t, avail, 2)
	sold, _ := svc.ListListings(ctx, models.StatusSoldOut)
	require.Len(t, sold, 1)
	assert.Equal(t, 2, sold[0].ID)
}

func TestListingService_FindAndMetrics(t *testing.T) {
	svc, _ := setupListingService(t, testListing(1, 24, 19))
	ctx := context.Background()

	v, err := svc.FindListingByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Project", v.Title)

	m, err := svc.GetListingMetrics(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 79, m.Availability.PercentageSold)
	assert.Equal(t, 5, m.Velocity.MonthsElapsed)

	_, err = svc.FindListingByID(ctx, 9)
	assert.ErrorIs(t, err, ErrListingNotFound)
	_, err = svc.GetListingMetrics(ctx, 9)
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestListingService_CreateUsesDefaults(t *testing.T) {
	svc, inv := setupListingService(t, testListing(1, 24, 19), testListing(2, 16, 13))
	ctx := context.Background()

	created, err := svc.CreateListing(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, created.ID)
	assert.Equal(t, "Nieuw Project", created.Title)
	assert.Equal(t, int64(300000), created.Price)
	assert.Equal(t, 20, created.TotalUnits)
	assert.Equal(t, 0, created.SoldUnits)
	assert.Equal(t, "2025-01-01", created.SalesStartDate)
	assert.Equal(t, []string{"Feature 1", "Feature 2"}, created.Features)
	assert.Empty(t, created.Violations())

	all := inv.All()
	assert.Equal(t, 3, all[len(all)-1].ID, "new listings are appended at the end")
}

func TestListingService_CreateThenDelete(t *testing.T) {
	svc, inv := setupListingService(t, testListing(1, 24, 19), testListing(2, 16, 13))
	ctx := context.Background()
	before := inv.Len()

	created, err := svc.CreateListing(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteListing(ctx, created.ID, true))
	assert.Equal(t, before, inv.Len())

	again, err := svc.CreateListing(ctx)
	require.NoError(t, err)
	assert.Greater(t, again.ID, created.ID, "ids strictly increase")
}

func TestListingService_UpdateListing(t *testing.T) {
	svc, _ := setupListingService(t, testListing(1, 24, 19))
	ctx := context.Background()

	title := "Moderne Villa"
	updated, err := svc.UpdateListing(ctx, 1, models.ListingPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Moderne Villa", updated.Title)
	assert.Equal(t, 19, updated.SoldUnits)

	_, err = svc.UpdateListing(ctx, 42, models.ListingPatch{Title: &title})
	assert.ErrorIs(t, err, ErrListingNotFound)

	_, err = svc.UpdateListing(ctx, 1, models.ListingPatch{})
	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))
}

func TestListingService_UpdateRejectsInvariantViolations(t *testing.T) {
	svc, inv := setupListingService(t, testListing(1, 24, 19))
	ctx := context.Background()

	total := 10
	_, err := svc.UpdateListing(ctx, 1, models.ListingPatch{TotalUnits: &total})
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Fields, "soldUnits")

	l, _ := inv.Get(1)
	assert.Equal(t, 24, l.TotalUnits, "rejected patch leaves the listing unchanged")

	empty := []string{}
	_, err = svc.UpdateListing(ctx, 1, models.ListingPatch{Images: &empty})
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"images"}, vErr.Fields)
}

func TestListingService_DeleteRequiresConfirmation(t *testing.T) {
	svc, inv := setupListingService(t, testListing(1, 24, 19))
	ctx := context.Background()

	assert.ErrorIs(t, svc.DeleteListing(ctx, 1, false), ErrConfirmationRequired)
	assert.Equal(t, 1, inv.Len())

	assert.ErrorIs(t, svc.DeleteListing(ctx, 2, true), ErrListingNotFound)
	require.NoError(t, svc.DeleteListing(ctx, 1, true))
	assert.Equal(t, 0, inv.Len())
}

func TestListingService_Stats(t *testing.T) {
	svc, _ := setupListingService(t, testListing(1, 24, 19), testListing(2, 10, 10))
	st := svc.Stats(context.Background())
	assert.Equal(t, InventoryStats{Listings: 2, TotalUnits: 34, SoldUnits: 29, SoldOut: 1}, st)
}

func TestListingService_GalleryFrame(t *testing.T) {
	svc, _ := setupListingService(t, testListing(1, 24, 19))
	ctx := context.Background()

	f, err := svc.GalleryFrame(ctx, 1, GalleryImages, 0)
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", f.Locator)
	assert.Equal(t, 1, f.Next)
	assert.Equal(t, 2, f.Prev)

	f, err = svc.GalleryFrame(ctx, 1, GalleryImages, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, f.Index, "index wraps forwards")

	f, err = svc.GalleryFrame(ctx, 1, GalleryImages, -1)
	require.NoError(t, err)
	assert.Equal(t, "c.jpg", f.Locator, "index wraps backwards")

	f, err = svc.GalleryFrame(ctx, 1, GalleryFloorplans, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, f.Next)
	assert.Equal(t, 0, f.Prev)

	_, err = svc.GalleryFrame(ctx, 1, GalleryKind("videos"), 0)
	assert.ErrorIs(t, err, ErrInvalidGalleryKind)
}

func TestListingService_GalleryFrameEmpty(t *testing.T) {
	l := testListing(1, 24, 19)
	l.Floorplans = nil
	svc, _ := setupListingService(t, l)

	_, err := svc.GalleryFrame(context.Background(), 1, GalleryFloorplans, 0)
	assert.ErrorIs(t, err, ErrEmptyGallery)
}
