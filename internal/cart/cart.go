// Package cart holds the shop's single shared cart.
//
// There is exactly one Store per process and every caller sees and mutates
// the same lines; nothing is scoped by session or user. The mutex only makes
// each call atomic. A sequence of calls (snapshot, then clear) is not
// isolated from other callers.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/tienda/internal/models"
)

// Line is a denormalized snapshot of a product taken when it was first
// added. Later price changes to the product do not reach the line.
type Line struct {
	ID       uint            `json:"id"`
	Nombre   string          `json:"nombre"`
	Precio   decimal.Decimal `json:"precio"`
	Cantidad int             `json:"cantidad"`
}

type Store struct {
	mu    sync.Mutex
	lines []Line
}

func NewStore() *Store {
	return &Store{}
}

// Add increments the line for p or appends a new one with Cantidad 1.
// It returns the cart after the change.
func (s *Store) Add(p models.Product) []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(p.ID); i >= 0 {
		s.lines[i].Cantidad++
	} else {
		s.lines = append(s.lines, Line{ID: p.ID, Nombre: p.Nombre, Precio: p.Precio, Cantidad: 1})
	}
	return s.copyLocked()
}

// Remove drops the line with the given product id. ok is false when no such
// line exists, in which case the cart is unchanged.
func (s *Store) Remove(id uint) (lines []Line, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return s.copyLocked(), false
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	return s.copyLocked(), true
}

func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

// View returns the lines and their total, computed now from the snapshots.
func (s *Store) View() ([]Line, decimal.Decimal) {
	lines := s.Lines()
	return lines, Total(lines)
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Precio.Mul(decimal.NewFromInt(int64(l.Cantidad))))
	}
	return total
}

func (s *Store) indexLocked(id uint) int {
	for i := range s.lines {
		if s.lines[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) copyLocked() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}
