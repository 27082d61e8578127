package cart

import "sync"

// Sessions tracks one open cart per terminal. Carts are created on first
// use and live until the process exits; they are never persisted.
type Sessions struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewSessions creates an empty session registry.
func NewSessions() *Sessions {
	return &Sessions{carts: make(map[string]*Cart)}
}

// Do runs fn against the terminal's cart while holding the registry lock,
// serializing all cart access for that terminal.
func (s *Sessions) Do(terminal string, fn func(c *Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[terminal]
	if !ok {
		c = New()
		s.carts[terminal] = c
	}
	return fn(c)
}
