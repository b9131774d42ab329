package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/store"
)

var (
	// ErrListingNotFound is returned for any operation on an id that is not in the inventory.
	ErrListingNotFound = store.ErrNotFound
	// ErrCapacityExceeded is returned when a reservation targets a sold-out listing
	// and the capacity policy is reject.
	ErrCapacityExceeded = errors.New("listing is sold out")
	// ErrConfirmationRequired is returned by an unconfirmed delete.
	ErrConfirmationRequired = errors.New("deletion must be explicitly confirmed")
	// ErrEmptyGallery is returned when the requested media sequence has no entries.
	ErrEmptyGallery = errors.New("gallery has no entries")
	// ErrInvalidGalleryKind is returned for a gallery kind other than images or floorplans.
	ErrInvalidGalleryKind = errors.New("gallery kind must be images or floorplans")
)

// ValidationError reports user input that was rejected without touching the inventory.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}
