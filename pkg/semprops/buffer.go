package semprops

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/mesh-intelligence/semprops/pkg/types"
)

// PendingValue is a resolved property value waiting to be stored.
type PendingValue struct {
	PropertyID string `json:"property_id"`
	Value      string `json:"value"`
}

// Buffer collects property values added while one page is processed until
// they are moved to a data container. It is safe for concurrent use. A
// Buffer belongs to one request; create a new one per page.
type Buffer struct {
	resolver *Resolver
	encoder  *Encoder
	caller   string
	logger   *slog.Logger

	mu      sync.Mutex
	pending []PendingValue
}

// NewBuffer returns an empty Buffer.
func NewBuffer(resolver *Resolver, opts ...Option) *Buffer {
	s := newSettings(opts)
	return &Buffer{
		resolver: resolver,
		encoder:  NewEncoder(),
		caller:   s.caller,
		logger:   s.logger,
	}
}

// Add queues value for property. An unknown or blank property is a fatal
// error. An empty value string is ignored.
func (b *Buffer) Add(property, value string) error {
	ref, err := b.resolver.Resolve(property)
	if err != nil {
		return types.NewCallerError(b.caller, types.SeverityFatal, err)
	}
	if value == "" {
		return nil
	}
	b.mu.Lock()
	b.pending = append(b.pending, PendingValue{PropertyID: ref.ID, Value: value})
	b.mu.Unlock()
	return nil
}

// AddValue encodes v and queues it for property.
func (b *Buffer) AddValue(property string, v any) error {
	s, err := b.encoder.EncodeAny(v)
	if err != nil {
		return types.NewCallerError(b.caller, types.SeverityFatal, err)
	}
	return b.Add(property, s)
}

// Len returns the number of queued values.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// DrainAll returns the queued values in insertion order and empties the
// buffer.
func (b *Buffer) DrainAll() []PendingValue {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.pending
	b.pending = nil
	return out
}

// MoveTo drains the buffer into container under subject. If the container
// fails, the values it did not accept are queued again ahead of anything
// added in the meantime.
func (b *Buffer) MoveTo(subject types.Subject, container types.DataContainer) error {
	values := b.DrainAll()
	for i, pv := range values {
		if err := container.AddValue(subject, pv.PropertyID, pv.Value); err != nil {
			b.requeue(values[i:])
			return fmt.Errorf("moving value %d of %d for %s: %w", i+1, len(values), subject, err)
		}
	}
	b.logger.Debug("moved pending values",
		"subject", subject.String(),
		"values", len(values))
	return nil
}

func (b *Buffer) requeue(values []PendingValue) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(append([]PendingValue(nil), values...), b.pending...)
}
