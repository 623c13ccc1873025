package cart

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Line is one cart entry. Re-adding a product appends another Line instead
// of merging quantities, so the same product can appear on several lines.
type Line struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// Cart is a mutable, short-lived shopping cart.
type Cart struct {
	ID        string    `json:"id"`
	Lines     []Line    `json:"lines"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store keeps carts in memory with a sliding TTL. Carts are anonymous and
// disposable, so process-local storage is the whole persistence story.
type Store struct {
	mu    sync.Mutex
	carts map[string]*Cart
	ttl   time.Duration
	now   func() time.Time
	exp   map[string]time.Time
}

// NewStore constructs a cart store. now is optional and defaults to time.Now.
func NewStore(ttl time.Duration, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Store{
		carts: make(map[string]*Cart),
		exp:   make(map[string]time.Time),
		ttl:   ttl,
		now:   now,
	}
}

// Create makes an empty cart and returns its id.
func (s *Store) Create() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c := &Cart{ID: uuid.NewString(), Lines: []Line{}, CreatedAt: now, UpdatedAt: now}
	s.carts[c.ID] = c
	s.exp[c.ID] = now.Add(s.ttl)
	return *c
}

// Get returns a copy of the cart. Expired carts read as missing. Any hit
// slides the expiry forward.
func (s *Store) Get(id string) (Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.live(id)
	if !ok {
		return Cart{}, false
	}
	s.exp[id] = s.now().Add(s.ttl)
	return s.snapshot(c), true
}

// AddLine appends a line to the cart. Duplicate products are allowed.
func (s *Store) AddLine(id string, line Line) (Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.live(id)
	if !ok {
		return Cart{}, false
	}
	c.Lines = append(c.Lines, line)
	s.touch(c)
	return s.snapshot(c), true
}

// RemoveLines drops every line referencing productID.
func (s *Store) RemoveLines(id string, productID int64) (Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.live(id)
	if !ok {
		return Cart{}, false
	}
	kept := c.Lines[:0]
	for _, line := range c.Lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	c.Lines = kept
	s.touch(c)
	return s.snapshot(c), true
}

// Clear empties the cart but keeps it alive.
func (s *Store) Clear(id string) (Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.live(id)
	if !ok {
		return Cart{}, false
	}
	c.Lines = c.Lines[:0]
	s.touch(c)
	return s.snapshot(c), true
}

// Len reports the number of live carts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	now := s.now()
	for id := range s.carts {
		if s.exp[id].After(now) {
			n++
		}
	}
	return n
}

// Sweep drops expired carts and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, deadline := range s.exp {
		if !deadline.After(now) {
			delete(s.carts, id)
			delete(s.exp, id)
			removed++
		}
	}
	return removed
}

// RunSweeper sweeps on the given interval until ctx is cancelled.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration, logger zerolog.Logger) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				logger.Debug().Int("expired_carts", n).Msg("cart sweep")
			}
		}
	}
}

func (s *Store) live(id string) (*Cart, bool) {
	c, ok := s.carts[id]
	if !ok {
		return nil, false
	}
	if !s.exp[id].After(s.now()) {
		delete(s.carts, id)
		delete(s.exp, id)
		return nil, false
	}
	return c, true
}

func (s *Store) touch(c *Cart) {
	c.UpdatedAt = s.now()
	s.exp[c.ID] = c.UpdatedAt.Add(s.ttl)
}

func (s *Store) snapshot(c *Cart) Cart {
	out := *c
	out.Lines = append([]Line(nil), c.Lines...)
	return out
}
