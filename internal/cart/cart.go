// Package cart holds the storefront shopping-cart state: the authoritative
// list of lines a user intends to purchase for one session, mirrored to a
// Storage backend on every mutation.
package cart

import (
	"io"
	"log"
	"strings"
)

// Line is one product entry in the cart, keyed by product id.
type Line struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Item is the raw input to Add. Price and Quantity arrive straight off a
// product payload, so they may be numbers or display strings like "PKR 1,000".
type Item struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Price interface{} `json:"price"`
}

// Store maintains the cart lines and their derived aggregates. All operations
// run on the caller's goroutine; Store is not safe for concurrent use, which
// matches its single-session, interaction-driven usage.
type Store struct {
	storage Storage
	logger  *log.Logger
	lines   []Line
}

// New builds a Store over the given storage, loading any previously persisted
// lines. Corrupt or malformed stored data is discarded with a logged warning
// rather than surfaced to the caller.
func New(storage Storage, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Store{storage: storage, logger: logger}
	if storage == nil {
		return s
	}
	stored, err := storage.Load()
	if err != nil {
		logger.Printf("cart: discarding stored cart: %v", err)
		return s
	}
	for _, l := range stored {
		id := strings.TrimSpace(l.ID)
		if id == "" {
			continue
		}
		qty := l.Quantity
		if qty < 1 {
			qty = 1
		}
		s.lines = append(s.lines, Line{
			ID:       id,
			Name:     l.Name,
			Price:    ParsePrice(l.Price, 0),
			Quantity: qty,
		})
	}
	return s
}

// Add merges quantity into an existing line with the same id, or appends a new
// line with normalized price and quantity. An empty id is a silent no-op.
func (s *Store) Add(item Item, quantity int) {
	id := strings.TrimSpace(item.ID)
	if id == "" {
		return
	}
	qty := quantity
	if qty < 1 {
		qty = 1
	}
	for i := range s.lines {
		if s.lines[i].ID == id {
			s.lines[i].Quantity += qty
			s.persist()
			return
		}
	}
	s.lines = append(s.lines, Line{
		ID:       id,
		Name:     item.Name,
		Price:    ParsePrice(item.Price, 0),
		Quantity: qty,
	})
	s.persist()
}

// UpdateQuantity replaces the matching line's quantity, clamped to a minimum
// of 1. Unknown ids are a no-op.
func (s *Store) UpdateQuantity(id string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range s.lines {
		if s.lines[i].ID == id {
			s.lines[i].Quantity = quantity
			s.persist()
			return
		}
	}
}

// Remove drops the line with the given id, if present.
func (s *Store) Remove(id string) {
	kept := s.lines[:0]
	changed := false
	for _, l := range s.lines {
		if l.ID == id {
			changed = true
			continue
		}
		kept = append(kept, l)
	}
	s.lines = kept
	if changed {
		s.persist()
	}
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.lines = nil
	s.persist()
}

// Lines returns a copy of the current cart lines in insertion order.
func (s *Store) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Count is the total quantity across all lines.
func (s *Store) Count() int {
	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

// Subtotal is the sum of price times quantity across all lines.
func (s *Store) Subtotal() float64 {
	var sum float64
	for _, l := range s.lines {
		sum += l.Price * float64(l.Quantity)
	}
	return sum
}

func (s *Store) persist() {
	if s.storage == nil {
		return
	}
	if err := s.storage.Save(s.Lines()); err != nil {
		s.logger.Printf("cart: persist failed: %v", err)
	}
}
