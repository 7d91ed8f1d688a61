package config

import "strings"

// Strategy is anything addressable by a set of keys — a ResourceProvider
// keyed by provider identifier, or a ResourceLoader keyed by file
// extension. Mirrors §4.5.
type Strategy interface {
	Keys() []string
}

// NormalizeKey is the registry's default key-normalisation function:
// case-folds to lower-case, the canonical form every bundled
// provider/loader key is written in.
func NormalizeKey(key string) string { return strings.ToLower(key) }

// StrategyRegistry is a key-normalised, insertion-ordered lookup table
// built from an ordered list of strategies. Later strategies win on key
// collision; the iteration order of Keys() still reflects first
// insertion.
type StrategyRegistry[S Strategy] struct {
	normalize func(string) string
	index     map[string]S
	order     []string
}

// NewStrategyRegistry builds a registry from strategies in order, using
// normalize (or NormalizeKey if nil) to canonicalise keys.
func NewStrategyRegistry[S Strategy](strategies []S, normalize func(string) string) *StrategyRegistry[S] {
	if normalize == nil {
		normalize = NormalizeKey
	}
	r := &StrategyRegistry[S]{normalize: normalize, index: make(map[string]S)}
	for _, s := range strategies {
		for _, key := range s.Keys() {
			nk := normalize(key)
			if _, exists := r.index[nk]; !exists {
				r.order = append(r.order, nk)
			}
			r.index[nk] = s
		}
	}
	return r
}

// Lookup returns the strategy registered for key (normalised), and
// whether it was found.
func (r *StrategyRegistry[S]) Lookup(key string) (S, bool) {
	s, ok := r.index[r.normalize(key)]
	return s, ok
}

// Keys returns every registered (normalised) key in first-insertion
// order.
func (r *StrategyRegistry[S]) Keys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// StrategyResolver wraps a registry plus a factory for the "not found"
// error, so callers get a typed *Error{Kind: KindProvider/KindLoader}
// out of a failed lookup instead of a bare bool.
type StrategyResolver[S Strategy] struct {
	registry *StrategyRegistry[S]
	notFound func(key string) error
}

// NewStrategyResolver pairs a registry with its not-found error factory.
func NewStrategyResolver[S Strategy](registry *StrategyRegistry[S], notFound func(key string) error) *StrategyResolver[S] {
	return &StrategyResolver[S]{registry: registry, notFound: notFound}
}

// Resolve looks up key, returning the typed not-found error from the
// resolver's factory on a miss.
func (r *StrategyResolver[S]) Resolve(key string) (S, error) {
	s, ok := r.registry.Lookup(key)
	if !ok {
		var zero S
		return zero, r.notFound(key)
	}
	return s, nil
}
