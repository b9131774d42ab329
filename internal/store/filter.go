package store

import (
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/metrics"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/models"
)

// FilterByStatus returns the listings matching status in their original order.
func FilterByStatus(listings []models.Listing, status models.StatusFilter) []models.Listing {
	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		available := metrics.AvailabilityOf(l).Available
		switch status {
		case models.StatusAvailable:
			if available > 0 {
				out = append(out, l)
			}
		case models.StatusSoldOut:
			if available == 0 {
				out = append(out, l)
			}
		default:
			out = append(out, l)
		}
	}
	return out
}
