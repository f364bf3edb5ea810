package engine

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	apperrors "github.com/agbru/modcalc/internal/errors"
	"github.com/agbru/modcalc/internal/logging"
)

// Registry is a thread-safe catalogue of operations. It implements
// Evaluator.
type Registry struct {
	mu         sync.RWMutex
	operations map[string]Operation
	logger     logging.Logger
	running    atomic.Int64
}

// Ensure Registry implements Evaluator.
var _ Evaluator = (*Registry)(nil)

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for evaluation events.
func WithLogger(logger logging.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		operations: make(map[string]Operation),
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Running returns the number of computations started by Evaluate that have
// not finished yet, whether or not their caller is still waiting.
func (r *Registry) Running() int64 { return r.running.Load() }

// NewDefaultRegistry creates a registry holding every built-in operation.
//
// Parameters:
//   - opts: Optional settings such as WithLogger.
//
// Returns:
//   - *Registry: A registry with Builtins registered.
func NewDefaultRegistry(opts ...RegistryOption) *Registry {
	r := NewRegistry(opts...)
	for _, op := range Builtins() {
		if err := r.Register(op); err != nil {
			panic(fmt.Sprintf("engine: invalid built-in operation: %v", err))
		}
	}
	return r
}

// Register adds op, replacing any operation with the same name.
//
// Returns:
//   - error: A ValidationError if op has no name or no methods.
func (r *Registry) Register(op Operation) error {
	if op.Name == "" {
		return apperrors.NewValidationError("name", "operation name is empty", nil)
	}
	if len(op.Methods) == 0 {
		return apperrors.NewValidationError("methods", "operation has no methods", op.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.operations[op.Name] = op
	return nil
}

// Lookup returns the operation registered under name.
func (r *Registry) Lookup(name string) (Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.operations[name]
	if !ok {
		return Operation{}, apperrors.NewArithmeticError("lookup", apperrors.ErrUnknownOperation, "%q", name)
	}
	return op, nil
}

// Has reports whether an operation is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.operations[name]
	return ok
}

// List returns the registered operation names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.operations))
	for name := range r.operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	globalOnce     sync.Once
	globalRegistry *Registry
)

// GlobalRegistry returns a shared registry of the built-in operations.
func GlobalRegistry() *Registry {
	globalOnce.Do(func() { globalRegistry = NewDefaultRegistry() })
	return globalRegistry
}
