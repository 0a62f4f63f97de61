package semprops

import (
	"log/slog"

	"github.com/mesh-intelligence/semprops/pkg/types"
)

// Engine bundles the resolver and encoder behind the library's top-level
// operations. It holds no mutable state of its own.
type Engine struct {
	resolver *Resolver
	encoder  *Encoder
	logger   *slog.Logger
	caller   string
}

// New returns an Engine over registry and ns. Options set the logger and
// the default caller name used by BuildAssignments.
func New(registry types.PropertyRegistry, ns types.NamespaceService, opts ...Option) *Engine {
	s := newSettings(opts)
	return &Engine{
		resolver: NewResolver(registry, ns),
		encoder:  NewEncoder(),
		logger:   s.logger,
		caller:   s.caller,
	}
}

// Resolver returns the engine's resolver.
func (e *Engine) Resolver() *Resolver {
	return e.resolver
}

func (e *Engine) Normalize(raw string) string {
	return e.resolver.Normalizer().Normalize(raw)
}

func (e *Engine) ResolveID(raw string) string {
	return e.resolver.ResolveID(raw)
}

func (e *Engine) ResolveLabel(raw string, fallbackToID bool) string {
	return e.resolver.ResolveLabel(raw, fallbackToID)
}

// EncodeValue encodes a scalar, null, or record value.
func (e *Engine) EncodeValue(v any) (string, error) {
	return e.encoder.EncodeAny(v)
}

// BuildAssignments runs a Builder with the engine's caller name.
func (e *Engine) BuildAssignments(arr types.AssignmentArray, linkbackProperty, linkbackValue string) (types.Assignments, error) {
	return NewBuilder(e.resolver, WithCaller(e.caller), WithLogger(e.logger)).
		Build(arr, linkbackProperty, linkbackValue)
}

// NewConverter returns a Converter for caller on page.
func (e *Engine) NewConverter(caller string, page types.Page) *Converter {
	return NewConverter(caller, page, e.resolver, WithLogger(e.logger))
}

// NewBuffer returns an empty request-scoped Buffer.
func (e *Engine) NewBuffer() *Buffer {
	return NewBuffer(e.resolver, WithCaller(e.caller), WithLogger(e.logger))
}
