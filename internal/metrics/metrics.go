// Package metrics derives availability, urgency and sales velocity from a listing.
// Every function here is pure: it reads a listing snapshot and never mutates it.
package metrics

import (
	"math"
	"time"

	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/models"
)

// monthLength is the fixed month used for velocity. Calendar months are deliberately not used.
const monthLength = 30 * 24 * time.Hour

// Availability holds the unit counts of a listing.
type Availability struct {
	Available      int `json:"available"`
	PercentageSold int `json:"percentage_sold"`
}

// Velocity holds the sales-speed figures of a listing.
type Velocity struct {
	MonthsElapsed int     `json:"months_elapsed"`
	SoldPerMonth  float64 `json:"sold_per_month"`
}

// Snapshot bundles every derived figure for one listing.
type Snapshot struct {
	ListingID    int          `json:"listing_id"`
	Availability Availability `json:"availability"`
	Urgency      Tier         `json:"urgency"`
	Velocity     Velocity     `json:"velocity"`
}

// roundHalfUp rounds like JavaScript's Math.round.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// AvailabilityOf computes available units and the rounded percentage sold.
// TotalUnits must be positive (a Listing invariant).
func AvailabilityOf(l models.Listing) Availability {
	return Availability{
		Available:      l.TotalUnits - l.SoldUnits,
		PercentageSold: roundHalfUp(float64(l.SoldUnits) / float64(l.TotalUnits) * 100),
	}
}

// VelocityOf computes sold units per elapsed 30-day month, with at least one month elapsed.
// A listing with an unparseable start date is treated as having started at now.
func VelocityOf(l models.Listing, now time.Time) Velocity {
	months := 1
	if start, err := l.SalesStart(); err == nil {
		elapsed := float64(now.Sub(start)) / float64(monthLength)
		if m := roundHalfUp(elapsed); m > months {
			months = m
		}
	}
	return Velocity{
		MonthsElapsed: months,
		SoldPerMonth:  float64(l.SoldUnits) / float64(months),
	}
}

// Compute returns the full metrics snapshot for l at time now.
func Compute(l models.Listing, now time.Time) Snapshot {
	a := AvailabilityOf(l)
	return Snapshot{
		ListingID:    l.ID,
		Availability: a,
		Urgency:      UrgencyOf(a.Available),
		Velocity:     VelocityOf(l, now),
	}
}
