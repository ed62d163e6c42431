package strategy

import (
	"strings"

	"go.uber.org/zap"
)

// DefaultName is the strategy used when none is requested or the requested
// name is unknown.
const DefaultName = "FIFO"

// Registry maps strategy names to instances. Names are case-insensitive and
// re-registering a name overwrites silently.
type Registry struct {
	strategies map[string]DeductionStrategy
	logger     *zap.Logger
}

func NewRegistry(logger *zap.Logger, strategies ...DeductionStrategy) *Registry {
	r := &Registry{
		strategies: make(map[string]DeductionStrategy),
		logger:     logger,
	}
	for _, s := range strategies {
		r.Register(s)
	}
	return r
}

// NewDefaultRegistry returns a registry with FIFO and LIFO registered.
func NewDefaultRegistry(logger *zap.Logger) *Registry {
	return NewRegistry(logger, FIFO{}, LIFO{})
}

func (r *Registry) Register(s DeductionStrategy) {
	r.strategies[strings.ToUpper(s.Name())] = s
}

// Resolve returns the strategy registered under name. An unknown or empty
// name resolves to the default strategy; this is a logged fallback, never an
// error.
func (r *Registry) Resolve(name string) DeductionStrategy {
	if name == "" {
		return r.strategies[DefaultName]
	}

	s, ok := r.strategies[strings.ToUpper(name)]
	if !ok {
		r.logger.Warn("unknown deduction strategy, falling back to default",
			zap.String("strategy", name),
			zap.String("default", DefaultName))
		return r.strategies[DefaultName]
	}

	return s
}
