package source

import (
	"context"
	"errors"
	"fmt"
)

// Soft-failure taxonomy for a single fetch attempt. The aggregator treats
// both as non-fatal: it logs and moves on to the next configured attempt.
var (
	// ErrUnavailable covers network faults, timeouts, and non-success
	// HTTP statuses.
	ErrUnavailable = errors.New("source unavailable")

	// ErrParse covers response bodies that do not match the expected
	// document shape.
	ErrParse = errors.New("source parse mismatch")
)

// Candidate is a raw, not yet validated news item extracted by an adapter.
// Validation against Article invariants happens in the aggregator.
type Candidate struct {
	Title       string
	URL         string
	Description string
}

// Adapter fetches one upstream source for a single query variant. An
// implementation performs exactly one network retrieval per call and does
// not retry; trying the next query variant is the aggregator's job.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, query string) ([]Candidate, error)
}

// Attempt pairs an adapter with one query variant. The aggregator walks
// attempts in configured priority order.
type Attempt struct {
	Adapter Adapter
	Query   string
}

// Registry keeps a mapping from source names to their adapters.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{adapters: map[string]Adapter{}}
}

// Register adds or replaces an adapter implementation.
func (r *Registry) Register(adapter Adapter) {
	if r.adapters == nil {
		r.adapters = map[string]Adapter{}
	}
	r.adapters[adapter.Name()] = adapter
}

// Resolve returns an adapter by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Adapter, error) {
	if adapter, ok := r.adapters[name]; ok {
		return adapter, nil
	}
	return nil, fmt.Errorf("source %s is not registered", name)
}
