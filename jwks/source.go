package jwks

import (
	"context"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

// Source provides verification key candidates for token decoding.
//
// Get returns the keys matching the criterion. An empty result means
// the source was reachable but holds no matching key; only a failure
// to consult the source at all is an error. Implementations must be
// safe for concurrent use, since one Source is typically shared by
// every decode in the process.
type Source interface {
	Get(ctx context.Context, criterion Criterion) ([]jwk.Key, error)
}

// StaticSource serves keys from a fixed in-memory key set. It never
// fails and never blocks, which also makes it a convenient Source
// for tests.
type StaticSource struct {
	keys jwk.Set
}

// NewStaticSource builds a StaticSource around the given key set. A
// nil set behaves like an empty one.
func NewStaticSource(set jwk.Set) *StaticSource {
	if set == nil {
		set = jwk.NewSet()
	}
	return &StaticSource{keys: set}
}

// Get returns the keys in the set that match the criterion.
func (s *StaticSource) Get(ctx context.Context, criterion Criterion) ([]jwk.Key, error) {
	return filterKeys(s.keys, criterion), nil
}
