package display

import (
	"context"
	"fmt"
	"sync"

	grid "github.com/uioperator/uictl/internal/grid"
)

// Registry manages display server providers and handles detection.
type Registry struct {
	providers []Provider
	mu        sync.RWMutex
}

var globalRegistry = &Registry{}

// Register adds a provider to the global registry. Called from init()
// functions in the backend packages; registration order sets priority.
func Register(provider Provider) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.providers = append(globalRegistry.providers, provider)
}

// Detect returns the first available provider.
func Detect() (Provider, error) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	for _, p := range globalRegistry.providers {
		if p.Available() {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no compatible display server detected (tried %d providers)", len(globalRegistry.providers))
}

// Providers returns all registered providers in priority order.
func Providers() []Provider {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	out := make([]Provider, len(globalRegistry.providers))
	copy(out, globalRegistry.providers)
	return out
}

// BoundsProvider adapts a display provider into the grid.BoundsProvider the
// configuration store re-samples on Configure and Reset. Each call opens a
// fresh controller so hot-plugged geometry changes are observed.
func BoundsProvider(p Provider) grid.BoundsProvider {
	return grid.BoundsProviderFunc(func() (grid.Rectangle, error) {
		ctrl, err := p.Controller("")
		if err != nil {
			return grid.Rectangle{}, fmt.Errorf("display bounds unavailable: %w", err)
		}
		defer func() { _ = ctrl.Close() }()
		return ctrl.PrimaryBounds(context.Background())
	})
}
