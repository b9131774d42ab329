package services

import (
	"context"

	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/models"
)

// GalleryKind selects which media sequence of a listing to page through.
type GalleryKind string

const (
	GalleryImages     GalleryKind = "images"
	GalleryFloorplans GalleryKind = "floorplans"
)

// GalleryFrame is one position in a cyclic media sequence.
type GalleryFrame struct {
	ListingID int         `json:"listing_id"`
	Kind      GalleryKind `json:"kind"`
	Index     int         `json:"index"`
	Count     int         `json:"count"`
	Locator   string      `json:"locator"`
	Next      int         `json:"next"`
	Prev      int         `json:"prev"`
}

// wrap maps any index, including negative ones, into [0, n).
func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// GalleryFrame returns the media locator at index, wrapping around in both directions.
func (s *listingService) GalleryFrame(ctx context.Context, listingID int, kind GalleryKind, index int) (*GalleryFrame, error) {
	l, err := s.inventory.Get(listingID)
	if err != nil {
		return nil, err
	}
	var seq []string
	switch kind {
	case GalleryImages:
		seq = l.Images
	case GalleryFloorplans:
		seq = l.Floorplans
	default:
		return nil, ErrInvalidGalleryKind
	}
	return frameOf(l, kind, seq, index)
}

func frameOf(l models.Listing, kind GalleryKind, seq []string, index int) (*GalleryFrame, error) {
	n := len(seq)
	if n == 0 {
		return nil, ErrEmptyGallery
	}
	i := wrap(index, n)
	return &GalleryFrame{
		ListingID: l.ID,
		Kind:      kind,
		Index:     i,
		Count:     n,
		Locator:   seq[i],
		Next:      wrap(i+1, n),
		Prev:      wrap(i-1, n),
	}, nil
}
