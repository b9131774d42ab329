package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validListing() Listing {
	return Listing{
		ID:             1,
		Title:          "Villa",
		Price:          485000,
		TotalUnits:     24,
		SoldUnits:      19,
		SalesStartDate: "2024-08-01",
		Images:         []string{"a.jpg"},
	}
}

func TestListing_Violations(t *testing.T) {
	l := validListing()
	assert.Empty(t, l.Violations())

	l.TotalUnits = 0
	l.SoldUnits = 1
	l.Images = nil
	l.SalesStartDate = "01/08/2024"
	assert.ElementsMatch(t, []string{"totalUnits", "soldUnits", "images", "salesStartDate"}, l.Violations())
}

func TestListing_CloneDoesNotShareSlices(t *testing.T) {
	l := validListing()
	c := l.Clone()
	c.Images[0] = "changed.jpg"
	assert.Equal(t, "a.jpg", l.Images[0])
}

func TestListingPatch_Apply(t *testing.T) {
	l := validListing()
	title := "Penthouse"
	sold := 20
	ListingPatch{Title: &title, SoldUnits: &sold}.Apply(&l)

	assert.Equal(t, "Penthouse", l.Title)
	assert.Equal(t, 20, l.SoldUnits)
	assert.Equal(t, int64(485000), l.Price, "fields not in the patch are preserved")
	assert.True(t, ListingPatch{}.IsEmpty())
}

func TestContactForm_MissingFields(t *testing.T) {
	assert.Empty(t, ContactForm{Name: "Jan", Email: "jan@example.com", Phone: "0612345678"}.MissingFields())
	assert.Equal(t, []string{"name", "phone"}, ContactForm{Name: "  ", Email: "jan@example.com"}.MissingFields())
}

func TestParseStatusFilter(t *testing.T) {
	assert.Equal(t, StatusAvailable, ParseStatusFilter("available"))
	assert.Equal(t, StatusAvailable, ParseStatusFilter("beschikbaar"))
	assert.Equal(t, StatusSoldOut, ParseStatusFilter("sold-out"))
	assert.Equal(t, StatusSoldOut, ParseStatusFilter("uitverkocht"))
	assert.Equal(t, StatusAll, ParseStatusFilter("alle"))
	assert.Equal(t, StatusAll, ParseStatusFilter("bogus"))
	assert.Equal(t, StatusAll, ParseStatusFilter(""))
}
