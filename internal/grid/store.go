package grid

import (
	"errors"
	"sync"
	"sync/atomic"

	logger "github.com/uioperator/uictl/internal/logger"
)

// BoundsProvider supplies the rectangle of the primary display. Configure and
// Reset re-sample it so the grid tracks display geometry changes.
type BoundsProvider interface {
	PrimaryBounds() (Rectangle, error)
}

// BoundsProviderFunc adapts a plain function to the BoundsProvider interface.
type BoundsProviderFunc func() (Rectangle, error)

// PrimaryBounds calls f.
func (f BoundsProviderFunc) PrimaryBounds() (Rectangle, error) { return f() }

// Store holds the single process-wide grid configuration. Reads are lock-free
// snapshots; mutations are serialized by a mutex and published with a single
// atomic swap, so a resolve running concurrently with Configure never observes
// a torn mix of old and new fields. Nothing is persisted: the store resets to
// defaults on restart.
type Store struct {
	mu      sync.Mutex
	current atomic.Pointer[Config]
	bounds  BoundsProvider
}

// NewStore creates a store seeded with the default 3x3 alphanumeric grid over
// the provider's primary display bounds.
func NewStore(bounds BoundsProvider, opts ...ConfigureOption) (*Store, error) {
	s := &Store{bounds: bounds}
	if _, err := s.Reset(opts...); err != nil {
		return nil, err
	}
	return s, nil
}

// Snapshot returns the active configuration. Callers take exactly one
// snapshot per top-level resolve and use it for the whole walk.
func (s *Store) Snapshot() Config {
	return *s.current.Load()
}

// ConfigureOption adjusts a Configure or Reset call.
type ConfigureOption func(*configureOptions)

type configureOptions struct {
	bounds *Rectangle
}

// WithBounds overrides the display-provider bounds for this mutation. Used by
// tests and by callers that manage display geometry themselves.
func WithBounds(r Rectangle) ConfigureOption {
	return func(o *configureOptions) { o.bounds = &r }
}

// Configure atomically replaces the active grid shape. On any error the
// previous configuration stays active.
func (s *Store) Configure(rows, columns int, scheme Scheme, opts ...ConfigureOption) (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.replace(rows, columns, scheme, opts)
	if err != nil {
		return Config{}, err
	}
	logger.Info("Grid configured",
		"rows", cfg.Rows, "columns", cfg.Columns, "scheme", cfg.Scheme.String(), "bounds", cfg.Bounds.String())
	return cfg, nil
}

// Reset restores the default 3x3 alphanumeric grid and re-samples bounds.
func (s *Store) Reset(opts ...ConfigureOption) (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.replace(DefaultRows, DefaultColumns, SchemeAlphanumeric, opts)
	if err != nil {
		return Config{}, err
	}
	logger.Info("Grid reset to defaults", "bounds", cfg.Bounds.String())
	return cfg, nil
}

// replace builds, validates, and publishes a new configuration. Caller holds
// the mutex.
func (s *Store) replace(rows, columns int, scheme Scheme, opts []ConfigureOption) (Config, error) {
	var o configureOptions
	for _, opt := range opts {
		opt(&o)
	}

	var bounds Rectangle
	switch {
	case o.bounds != nil:
		bounds = *o.bounds
	case s.bounds != nil:
		var err error
		bounds, err = s.bounds.PrimaryBounds()
		if err != nil {
			return Config{}, err
		}
	default:
		return Config{}, errors.New("no display bounds provider configured")
	}

	cfg, err := NewConfig(rows, columns, scheme, bounds)
	if err != nil {
		return Config{}, err
	}
	s.current.Store(&cfg)
	return cfg, nil
}
