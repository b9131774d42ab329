package models

import (
	"fmt"
	"time"
)

// DateLayout is the layout of SalesStartDate.
const DateLayout = "2006-01-02"

// Listing represents one new-build property project offered for reservation.
type Listing struct {
	ID             int      `bson:"id" json:"id"`
	Title          string   `bson:"title" json:"title"`
	Location       string   `bson:"location" json:"location"`
	Description    string   `bson:"description" json:"description"`
	Price          int64    `bson:"price" json:"price"` // Whole currency units
	M2             int      `bson:"m2" json:"m2"`
	Bedrooms       int      `bson:"bedrooms" json:"bedrooms"`
	DeliveryDate   string   `bson:"deliveryDate" json:"deliveryDate"` // Free text, e.g. "Q2 2026"
	ROI            float64  `bson:"roi" json:"roi"`
	TotalUnits     int      `bson:"totalUnits" json:"totalUnits"`
	SoldUnits      int      `bson:"soldUnits" json:"soldUnits"`
	SalesStartDate string   `bson:"salesStartDate" json:"salesStartDate"` // YYYY-MM-DD
	Exclusive      bool     `bson:"exclusive" json:"exclusive"`
	Images         []string `bson:"images" json:"images"`
	Floorplans     []string `bson:"floorplans" json:"floorplans"`
	Features       []string `bson:"features" json:"features"`
}

// SalesStart parses SalesStartDate as a UTC calendar date.
func (l *Listing) SalesStart() (time.Time, error) {
	t, err := time.Parse(DateLayout, l.SalesStartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid salesStartDate %q: %w", l.SalesStartDate, err)
	}
	return t, nil
}

// Clone returns a deep copy so callers never share slices with the store.
func (l Listing) Clone() Listing {
	c := l
	c.Images = append([]string(nil), l.Images...)
	c.Floorplans = append([]string(nil), l.Floorplans...)
	c.Features = append([]string(nil), l.Features...)
	return c
}

// Violations reports every invariant the listing breaks, as JSON field names.
// An empty result means the listing is valid.
func (l *Listing) Violations() []string {
	var fields []string
	if l.Price < 0 {
		fields = append(fields, "price")
	}
	if l.M2 < 0 {
		fields = append(fields, "m2")
	}
	if l.Bedrooms < 0 {
		fields = append(fields, "bedrooms")
	}
	if l.ROI < 0 {
		fields = append(fields, "roi")
	}
	if l.TotalUnits <= 0 {
		fields = append(fields, "totalUnits")
	}
	if l.SoldUnits < 0 || l.SoldUnits > l.TotalUnits {
		fields = append(fields, "soldUnits")
	}
	if _, err := l.SalesStart(); err != nil {
		fields = append(fields, "salesStartDate")
	}
	if len(l.Images) == 0 {
		fields = append(fields, "images")
	}
	return fields
}

// ListingPatch is a partial update. Nil fields are left untouched.
type ListingPatch struct {
	Title          *string   `json:"title,omitempty"`
	Location       *string   `json:"location,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Price          *int64    `json:"price,omitempty"`
	M2             *int      `json:"m2,omitempty"`
	Bedrooms       *int      `json:"bedrooms,omitempty"`
	DeliveryDate   *string   `json:"deliveryDate,omitempty"`
	ROI            *float64  `json:"roi,omitempty"`
	TotalUnits     *int      `json:"totalUnits,omitempty"`
	SoldUnits      *int      `json:"soldUnits,omitempty"`
	SalesStartDate *string   `json:"salesStartDate,omitempty"`
	Exclusive      *bool     `json:"exclusive,omitempty"`
	Images         *[]string `json:"images,omitempty"`
	Floorplans     *[]string `json:"floorplans,omitempty"`
	Features       *[]string `json:"features,omitempty"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p ListingPatch) IsEmpty() bool {
	return p == ListingPatch{}
}

// Apply merges the patch onto l (shallow field overwrite).
func (p ListingPatch) Apply(l *Listing) {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.Location != nil {
		l.Location = *p.Location
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.Price != nil {
		l.Price = *p.Price
	}
	if p.M2 != nil {
		l.M2 = *p.M2
	}
	if p.Bedrooms != nil {
		l.Bedrooms = *p.Bedrooms
	}
	if p.DeliveryDate != nil {
		l.DeliveryDate = *p.DeliveryDate
	}
	if p.ROI != nil {
		l.ROI = *p.ROI
	}
	if p.TotalUnits != nil {
		l.TotalUnits = *p.TotalUnits
	}
	if p.SoldUnits != nil {
		l.SoldUnits = *p.SoldUnits
	}
	if p.SalesStartDate != nil {
		l.SalesStartDate = *p.SalesStartDate
	}
	if p.Exclusive != nil {
		l.Exclusive = *p.Exclusive
	}
	if p.Images != nil {
		l.Images = append([]string(nil), (*p.Images)...)
	}
	if p.Floorplans != nil {
		l.Floorplans = append([]string(nil), (*p.Floorplans)...)
	}
	if p.Features != nil {
		l.Features = append([]string(nil), (*p.Features)...)
	}
}
