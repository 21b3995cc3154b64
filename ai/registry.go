package ai

import (
	"fmt"
	"math/rand"
	"sort"

	"boomerang-server/gameerrors"
)

// Factory builds a policy around its own random source.
type Factory func(rng *rand.Rand) Policy

var registry = make(map[string]Factory)

// Register adds or overwrites the policy for name.
func Register(name string, f Factory) {
	registry[name] = f
}

func init() {
	Register("standard", func(rng *rand.Rand) Policy { return NewStandard(rng) })
	Register("collector", func(rng *rand.Rand) Policy { return NewCollector(rng) })
}

// New returns the policy registered as name, seeded with seed.
func New(name string, seed int64) (Policy, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", gameerrors.ErrUnknownPolicy, name)
	}
	return f(rand.New(rand.NewSource(seed))), nil
}

// Names lists registered policies in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
