package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/config"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/logging"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/models"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/store"
)

// IReservationService defines the reservation workflow.
type IReservationService interface {
	Reserve(ctx context.Context, listingID int, form models.ContactForm) (*models.ReservationReceipt, error)
}

// ReservationNotifier forwards a committed reservation to the sales follow-up channel.
type ReservationNotifier interface {
	NotifyReservation(ctx context.Context, notice models.ReservationNotice) error
}

// LogNotifier only logs reservations. It is used when no task queue is configured.
type LogNotifier struct{}

// NotifyReservation implements ReservationNotifier.
func (LogNotifier) NotifyReservation(ctx context.Context, notice models.ReservationNotice) error {
	logging.FromContext(ctx).Info("Reservation follow-up (no queue configured)",
		"listing_id", notice.Receipt.ListingID,
		"contact_email", notice.Contact.Email)
	return nil
}

// reservationService implements IReservationService.
type reservationService struct {
	inventory *store.Inventory
	notifier  ReservationNotifier
	clamp     bool
	now       func() time.Time
}

// NewReservationService creates a new ReservationService.
// capacityPolicy is config.CapacityPolicyReject or config.CapacityPolicyClamp.
func NewReservationService(inventory *store.Inventory, notifier ReservationNotifier, capacityPolicy string, now func() time.Time) IReservationService {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	if now == nil {
		now = time.Now
	}
	return &reservationService{
		inventory: inventory,
		notifier:  notifier,
		clamp:     capacityPolicy == config.CapacityPolicyClamp,
		now:       now,
	}
}

var errClamped = errors.New("clamped")

// Reserve validates the contact form and consumes one unit of the listing.
// Validation failures leave the inventory untouched. A commit cannot be undone.
func (s *reservationService) Reserve(ctx context.Context, listingID int, form models.ContactForm) (*models.ReservationReceipt, error) {
	logger := logging.FromContext(ctx).With("listing_id", listingID)

	if missing := form.MissingFields(); len(missing) > 0 {
		logger.Info("Reservation rejected by validation", "missing", strings.Join(missing, ","))
		return nil, &ValidationError{Message: "required contact fields are missing", Fields: missing}
	}

	clamped := false
	l, err := s.inventory.Mutate(listingID, func(l *models.Listing) error {
		if l.SoldUnits >= l.TotalUnits {
			if s.clamp {
				return errClamped
			}
			return ErrCapacityExceeded
		}
		l.SoldUnits++
		return nil
	})
	switch {
	case errors.Is(err, errClamped):
		clamped = true
		logger.Warn("Reservation on sold-out listing clamped", "sold_units", l.SoldUnits)
	case err != nil:
		if errors.Is(err, ErrCapacityExceeded) {
			logger.Info("Reservation refused, listing sold out")
		}
		return nil, fmt.Errorf("reservation for listing %d failed: %w", listingID, err)
	}

	receipt := &models.ReservationReceipt{
		ListingID:  l.ID,
		Title:      l.Title,
		SoldUnits:  l.SoldUnits,
		Available:  l.TotalUnits - l.SoldUnits,
		Clamped:    clamped,
		ReservedAt: s.now().UTC(),
	}
	logger.Info("Reservation committed", "sold_units", receipt.SoldUnits, "available", receipt.Available)

	notice := models.ReservationNotice{Receipt: *receipt, Contact: form}
	if err := s.notifier.NotifyReservation(ctx, notice); err != nil {
		logger.Error("Failed to dispatch reservation follow-up", "error", err)
	}
	return receipt, nil
}
