package models

import (
	"strings"
	"time"
)

// ContactForm is the transient reservation request. It is never stored on a Listing.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message,omitempty"` // Optional
}

// MissingFields returns the required fields that are empty after trimming.
func (f ContactForm) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(f.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(f.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(f.Phone) == "" {
		missing = append(missing, "phone")
	}
	return missing
}

// ReservationReceipt is returned after a committed reservation.
type ReservationReceipt struct {
	ListingID  int       `json:"listing_id"`
	Title      string    `json:"title"`
	SoldUnits  int       `json:"sold_units"`
	Available  int       `json:"available"`
	Clamped    bool      `json:"clamped,omitempty"` // Capacity was already exhausted (clamp policy)
	ReservedAt time.Time `json:"reserved_at"`
}

// ReservationNotice is handed to the follow-up channel after a commit.
type ReservationNotice struct {
	Receipt ReservationReceipt `json:"receipt"`
	Contact ContactForm        `json:"contact"`
}
