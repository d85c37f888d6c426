package invoker

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// Supported executable names.
const (
	CommandNPM = "npm"
	CommandNPX = "npx"
)

// SupportedCommands lists the executables a Registry will hand out.
var SupportedCommands = []string{CommandNPM, CommandNPX}

// ErrUnsupportedCommand is returned by Registry.Get for any name outside
// SupportedCommands.
var ErrUnsupportedCommand = errors.New("command not supported")

// Registry memoizes one Invoker per executable name. Entries are created on
// first use and live as long as the Registry.
type Registry struct {
	logger *slog.Logger
	dir    string
	env    []string

	mu       sync.Mutex
	invokers map[string]*Invoker
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithDir sets the working directory of every Invoker the Registry creates.
func WithDir(dir string) RegistryOption {
	return func(r *Registry) { r.dir = dir }
}

// WithEnv appends env entries to every Invoker the Registry creates.
func WithEnv(env ...string) RegistryOption {
	return func(r *Registry) { r.env = append(r.env, env...) }
}

// NewRegistry returns an empty Registry whose invokers log to logger.
func NewRegistry(logger *slog.Logger, opts ...RegistryOption) *Registry {
	r := &Registry{
		logger:   logger,
		invokers: make(map[string]*Invoker),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the Invoker for name, creating it on first call.
func (r *Registry) Get(name string) (*Invoker, error) {
	if !slices.Contains(SupportedCommands, name) {
		return nil, fmt.Errorf("%w: %q (supported: %v)", ErrUnsupportedCommand, name, SupportedCommands)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if inv, ok := r.invokers[name]; ok {
		return inv, nil
	}
	inv := &Invoker{
		Name:   name,
		Dir:    r.dir,
		Env:    slices.Clone(r.env),
		Logger: r.logger,
	}
	r.invokers[name] = inv
	return inv, nil
}
