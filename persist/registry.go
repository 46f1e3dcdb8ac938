package persist

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Exporter is implemented by every persistable behaviour.
type Exporter interface {
	// Tag returns the stable identifier of the concrete behaviour kind.
	Tag() string
	// Export snapshots the behaviour's configuration.
	Export() Record
}

// Factory rebuilds a behaviour from a record.
type Factory func(Record) (any, error)

// Registry maps tags to factories. Registration is additive and safe for
// concurrent use; it is normally done once at startup.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	order     []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register binds tag to factory. Registering a tag twice fails with
// ErrTagCollision.
func (r *Registry) Register(tag string, factory Factory) error {
	if tag == "" {
		return errors.New("persist: empty tag")
	}
	if factory == nil {
		return fmt.Errorf("persist: nil factory for tag %q", tag)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[tag]; exists {
		return fmt.Errorf("persist: %w: %q", ErrTagCollision, tag)
	}
	r.factories[tag] = factory
	r.order = append(r.order, tag)
	return nil
}

// RegisterFunc registers a factory that decodes fields through a Reader.
// Any field error reported by the Reader fails the import.
func RegisterFunc[T any](r *Registry, tag string, build func(*Reader) (T, error)) error {
	return r.Register(tag, func(rec Record) (any, error) {
		rd := NewReader(rec)
		v, err := build(rd)
		if rdErr := rd.Err(); rdErr != nil {
			return nil, rdErr
		}
		if err != nil {
			return nil, err
		}
		return v, nil
	})
}

// Registered reports whether tag has a factory.
func (r *Registry) Registered(tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[tag]
	return ok
}

// Tags returns every registered tag in registration order.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Export snapshots e. The behaviour's tag must be registered so that the
// record can be imported again.
func (r *Registry) Export(e Exporter) (Record, error) {
	if e == nil {
		return Record{}, errors.New("persist: export of nil behaviour")
	}
	tag := e.Tag()
	if !r.Registered(tag) {
		return Record{}, &UnregisteredTagError{Tag: tag}
	}
	rec := e.Export()
	if rec.Tag != tag {
		return Record{}, &MalformedRecordError{Tag: tag, Reason: fmt.Sprintf("exported with tag %q", rec.Tag)}
	}
	return rec.Clone(), nil
}

// Import rebuilds a behaviour from rec.
func (r *Registry) Import(rec Record) (any, error) {
	r.mu.RLock()
	factory, ok := r.factories[rec.Tag]
	r.mu.RUnlock()
	if !ok {
		return nil, &UnregisteredTagError{Tag: rec.Tag}
	}

	v, err := factory(rec)
	if err != nil {
		var malformed *MalformedRecordError
		if !errors.As(err, &malformed) {
			err = &MalformedRecordError{Tag: rec.Tag, Reason: err.Error()}
		}
		return nil, err
	}
	return v, nil
}

// ImportAs is Import restricted to behaviours assignable to T.
func ImportAs[T any](r *Registry, rec Record) (T, error) {
	var zero T
	v, err := r.Import(rec)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("persist: %w: tag %q built %T", ErrUnexpectedType, rec.Tag, v)
	}
	return t, nil
}

// ImportAll imports every record it can. Records that fail are skipped; their
// errors are joined into the returned error, each naming the record's position.
func ImportAll[T any](r *Registry, recs []Record) ([]T, error) {
	out := make([]T, 0, len(recs))
	var errs []error
	for i, rec := range recs {
		v, err := ImportAs[T](r, rec)
		if err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		out = append(out, v)
	}
	return out, errors.Join(errs...)
}

// ExportAll exports every behaviour, stopping at the first failure. Items that
// do not implement Exporter cannot be persisted and fail the export.
func ExportAll[T any](r *Registry, items []T) ([]Record, error) {
	recs := make([]Record, 0, len(items))
	for i, item := range items {
		e, ok := any(item).(Exporter)
		if !ok {
			return nil, fmt.Errorf("behaviour %d: %T is not exportable", i, item)
		}
		rec, err := r.Export(e)
		if err != nil {
			return nil, fmt.Errorf("behaviour %d: %w", i, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
