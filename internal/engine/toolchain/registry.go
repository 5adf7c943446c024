package toolchain

import (
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

type registryKey struct {
	backend domain.Backend
	kind    string
}

// Registry maps (worker backend, job kind) pairs to handlers. Dispatch
// is an explicit lookup rather than import-time registration, so tests
// can build registries with exactly the handlers they need.
type Registry struct {
	handlers map[registryKey]ports.Handler
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[registryKey]ports.Handler)}
}

// Register binds a handler to a (backend, kind) pair, replacing any
// previous binding.
func (r *Registry) Register(backend domain.Backend, kind string, h ports.Handler) {
	r.handlers[registryKey{backend: backend, kind: kind}] = h
}

// Lookup returns the handler for a (backend, kind) pair.
func (r *Registry) Lookup(backend domain.Backend, kind string) (ports.Handler, error) {
	h, ok := r.handlers[registryKey{backend: backend, kind: kind}]
	if !ok {
		err := zerr.With(domain.ErrNoHandler, "backend", string(backend))
		return nil, zerr.With(err, "kind", kind)
	}
	return h, nil
}
