// Package store holds the in-memory inventory of listings, the only state of record.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/models"
)

// ErrNotFound is returned when no listing has the requested id.
var ErrNotFound = errors.New("listing not found")

// Inventory is the ordered collection of listings.
// Reads return deep copies; every write holds the lock for its whole read-modify-write.
type Inventory struct {
	mu       sync.RWMutex
	listings []models.Listing
	lastID   int // Highest id ever issued or seeded, so deleted ids are never reused
}

// NewInventory builds an inventory from seed listings, preserving their order.
// Seeds must satisfy the listing invariants and carry unique ids.
func NewInventory(seed []models.Listing) (*Inventory, error) {
	inv := &Inventory{listings: make([]models.Listing, 0, len(seed))}
	seen := make(map[int]bool, len(seed))
	for _, l := range seed {
		if l.ID <= 0 {
			return nil, fmt.Errorf("seed listing %q has non-positive id %d", l.Title, l.ID)
		}
		if seen[l.ID] {
			return nil, fmt.Errorf("duplicate seed listing id %d", l.ID)
		}
		if v := l.Violations(); len(v) > 0 {
			return nil, fmt.Errorf("seed listing %d violates invariants on %v", l.ID, v)
		}
		seen[l.ID] = true
		inv.listings = append(inv.listings, l.Clone())
		if l.ID > inv.lastID {
			inv.lastID = l.ID
		}
	}
	return inv, nil
}

// All returns a copy of every listing in store order.
func (s *Inventory) All() []models.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Listing, len(s.listings))
	for i, l := range s.listings {
		out[i] = l.Clone()
	}
	return out
}

// Len returns the number of listings.
func (s *Inventory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listings)
}

// Get returns a copy of the listing with the given id.
func (s *Inventory) Get(id int) (models.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.Listing{}, fmt.Errorf("listing %d: %w", id, ErrNotFound)
	}
	return s.listings[i].Clone(), nil
}

// Append allocates the next id, builds the listing with build and appends it.
func (s *Inventory) Append(build func(id int) models.Listing) models.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	l := build(s.lastID)
	l.ID = s.lastID
	s.listings = append(s.listings, l.Clone())
	return l.Clone()
}

// Mutate runs fn on a working copy of the listing under the write lock.
// The copy replaces the stored listing only when fn returns nil.
func (s *Inventory) Mutate(id int, fn func(l *models.Listing) error) (models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.Listing{}, fmt.Errorf("listing %d: %w", id, ErrNotFound)
	}
	working := s.listings[i].Clone()
	if err := fn(&working); err != nil {
		return s.listings[i].Clone(), err
	}
	working.ID = id
	s.listings[i] = working
	return working.Clone(), nil
}

// Remove deletes the listing with the given id, keeping the order of the rest.
func (s *Inventory) Remove(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("listing %d: %w", id, ErrNotFound)
	}
	s.listings = append(s.listings[:i], s.listings[i+1:]...)
	return nil
}

// indexOf must be called with the lock held.
func (s *Inventory) indexOf(id int) int {
	for i := range s.listings {
		if s.listings[i].ID == id {
			return i
		}
	}
	return -1
}
