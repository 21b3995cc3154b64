package edition

import (
	"fmt"

	"boomerang-server/card"
	"boomerang-server/game"
	"boomerang-server/gameerrors"
	"boomerang-server/rules"
)

// Edition bundles the rules, cards and scoring of one version of the game.
type Edition interface {
	ID() string
	Name() string
	Rules() rules.Rules
	Catalog() ([]card.Card, error)
	NewScoresheet(ledger *game.RegionLedger) (game.Scoresheet, error)
}

// Registry holds all registered editions indexed by their ID.
type Registry struct {
	editions map[string]Edition
	order    []string // registration order for deterministic All()
}

// NewRegistry creates a new empty edition registry.
func NewRegistry() *Registry {
	return &Registry{editions: make(map[string]Edition)}
}

// Register adds an edition to the registry.
func (r *Registry) Register(e Edition) {
	id := e.ID()
	if _, exists := r.editions[id]; !exists {
		r.order = append(r.order, id)
	}
	r.editions[id] = e
}

// Get returns the edition registered as id.
func (r *Registry) Get(id string) (Edition, error) {
	e, ok := r.editions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", gameerrors.ErrUnknownEdition, id)
	}
	return e, nil
}

// All returns every edition in registration order.
func (r *Registry) All() []Edition {
	out := make([]Edition, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.editions[id])
	}
	return out
}

// RegisterAll registers the built-in editions. catalogPath, when set,
// replaces the embedded Australia catalog.
func RegisterAll(r *Registry, catalogPath string) {
	r.Register(&Australia{CatalogPath: catalogPath})
}
