// Package reference provides independent arbitrary-precision oracles used to
// cross-check modcalc's own arithmetic.
//
// The default oracle wraps the standard library's math/big. Building with
// the "gmp" tag registers an additional oracle backed by libgmp, which then
// becomes the default. Oracles exchange values as decimal strings so that no
// caller ever shares a representation with the engine under test.
package reference

import (
	"fmt"
	"sort"
	"sync"
)

// Oracle computes exact results for the operations modcalc implements.
type Oracle interface {
	// Name returns the backend name (e.g., "big").
	Name() string
	// Add returns a + b.
	Add(a, b string) (string, error)
	// Sub returns a - b; it fails when the result would be negative.
	Sub(a, b string) (string, error)
	// Mul returns a·b.
	Mul(a, b string) (string, error)
	// DivMod returns ⌊a/b⌋ and a mod b.
	DivMod(a, b string) (string, string, error)
	// ModPow returns base^exp mod m.
	ModPow(base, exp, m string) (string, error)
	// ModInverse returns a⁻¹ mod m; it fails when none exists.
	ModInverse(a, m string) (string, error)
	// ProbablyPrime reports whether n is prime with overwhelming probability.
	ProbablyPrime(n string) (bool, error)
}

// OracleFactory builds an Oracle.
type OracleFactory func() Oracle

var (
	registryMu sync.RWMutex
	registry   = map[string]OracleFactory{}
)

// Register makes an oracle available under name. It is called from init
// functions of the backend files.
func Register(name string, factory OracleFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Get returns the oracle registered under name.
func Get(name string) (Oracle, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("reference oracle %q not registered", name)
	}
	return factory(), nil
}

// List returns the registered oracle names in sorted order.
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default returns the preferred oracle: GMP when compiled in, math/big
// otherwise.
func Default() Oracle {
	if o, err := Get("gmp"); err == nil {
		return o
	}
	o, _ := Get("big")
	return o
}
