package models

import "strings"

// StatusFilter selects listings by availability.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusAvailable StatusFilter = "available"
	StatusSoldOut   StatusFilter = "sold-out"
)

// ParseStatusFilter maps a query value to a StatusFilter.
// The Dutch labels of the original catalogue are accepted as aliases.
// Anything unrecognised, including the empty string, selects StatusAll.
func ParseStatusFilter(s string) StatusFilter {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "available", "beschikbaar":
		return StatusAvailable
	case "sold-out", "soldout", "sold_out", "uitverkocht":
		return StatusSoldOut
	default:
		return StatusAll
	}
}
