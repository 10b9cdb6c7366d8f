package voice

import (
	"fmt"
	"sync"

	"go.uber.org/multierr"
)

type release struct {
	name string
	fn   func() error
}

// Scope owns resources acquired together and releases them in reverse order.
// Every release runs even if a previous one failed or panicked.
type Scope struct {
	mu       sync.Mutex
	releases []release
	closed   bool
	closeErr error
}

// NewScope builds empty scope
func NewScope() *Scope {
	return &Scope{}
}

// Defer registers release of already acquired resource. Registering on closed scope
// releases the resource immediately.
func (s *Scope) Defer(name string, fn func() error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return safeRelease(release{name: name, fn: fn})
	}

	s.releases = append(s.releases, release{name: name, fn: fn})
	s.mu.Unlock()
	return nil
}

// Close releases resources in reverse order, errors of all releases are combined
func (s *Scope) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return s.closeErr
	}
	s.closed = true
	releases := s.releases
	s.releases = nil
	s.mu.Unlock()

	var err error
	for i := len(releases) - 1; i >= 0; i-- {
		err = multierr.Append(err, safeRelease(releases[i]))
	}

	s.mu.Lock()
	s.closeErr = err
	s.mu.Unlock()
	return err
}

func safeRelease(r release) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("release of %s panicked - %v", r.name, p)
		}
	}()

	if err := r.fn(); err != nil {
		return fmt.Errorf("failed to release %s - %w", r.name, err)
	}
	return nil
}
