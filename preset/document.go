// Package preset saves and restores whole scenes: every emitter with its
// configuration and the tagged records of its behaviours.
package preset

import (
	"errors"
	"fmt"

	"github.com/plus3/ember/animation"
	"github.com/plus3/ember/emitter"
	"github.com/plus3/ember/force"
	"github.com/plus3/ember/persist"
)

// Version is the document format written by this package.
const Version = 1

// ErrVersion is returned when a document has an unsupported version.
var ErrVersion = errors.New("preset: unsupported document version")

// Document is the durable form of a scene.
type Document struct {
	Version  int            `yaml:"version" json:"version" jsonschema:"enum=1"`
	Emitters []EmitterEntry `yaml:"emitters" json:"emitters"`
}

// EmitterEntry describes one emitter and its behaviours. Behaviour lists keep
// their application order.
type EmitterEntry struct {
	Config            emitter.Config        `yaml:"config" json:"config"`
	Data              emitter.AnimationData `yaml:"data" json:"data"`
	ForceDurationMs   uint64                `yaml:"force_duration_ms" json:"force_duration_ms" jsonschema:"minimum=1"`
	Animations        []persist.Record      `yaml:"animations,omitempty" json:"animations,omitempty"`
	Forces            []persist.Record      `yaml:"forces,omitempty" json:"forces,omitempty"`
	EmitterAnimations []persist.Record      `yaml:"emitter_animations,omitempty" json:"emitter_animations,omitempty"`
}

// NewRegistry returns a registry holding every built-in behaviour.
func NewRegistry() *persist.Registry {
	r := persist.NewRegistry()
	for _, register := range []func(*persist.Registry) error{
		animation.Register,
		force.Register,
		emitter.Register,
	} {
		if err := register(r); err != nil {
			// built-in tags are distinct, a collision here is a programming error
			panic(err)
		}
	}
	return r
}

// Capture exports the emitters into a document. Every behaviour must have a
// registered tag.
func Capture(r *persist.Registry, emitters ...*emitter.Emitter) (Document, error) {
	doc := Document{Version: Version, Emitters: make([]EmitterEntry, 0, len(emitters))}
	for _, e := range emitters {
		entry := EmitterEntry{
			Config:          e.Config(),
			Data:            e.Data(),
			ForceDurationMs: e.Forces().DurationMs(),
		}

		var err error
		if entry.Animations, err = persist.ExportAll(r, e.Animations().Snapshot()); err != nil {
			return Document{}, fmt.Errorf("emitter %q animations: %w", e.Name(), err)
		}
		if entry.Forces, err = persist.ExportAll(r, e.Forces().Snapshot()); err != nil {
			return Document{}, fmt.Errorf("emitter %q forces: %w", e.Name(), err)
		}
		if entry.EmitterAnimations, err = persist.ExportAll(r, e.EmitterAnimations().Snapshot()); err != nil {
			return Document{}, fmt.Errorf("emitter %q emitter animations: %w", e.Name(), err)
		}
		doc.Emitters = append(doc.Emitters, entry)
	}
	return doc, nil
}

// Build creates the emitters described by doc.
//
// Loading never stops at the first problem: an emitter whose configuration is
// invalid is skipped, and a behaviour whose record cannot be imported is
// dropped from its emitter. Every skip is reported in the returned error,
// which joins one error per problem.
func Build(r *persist.Registry, doc Document) ([]*emitter.Emitter, error) {
	if doc.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, doc.Version)
	}

	emitters := make([]*emitter.Emitter, 0, len(doc.Emitters))
	var errs []error
	for i, entry := range doc.Emitters {
		e, err := emitter.New(entry.Config, entry.Data, entry.ForceDurationMs)
		if err != nil {
			errs = append(errs, fmt.Errorf("emitter %d: %w", i, err))
			continue
		}

		animations, err := persist.ImportAll[animation.Animate](r, entry.Animations)
		for _, a := range animations {
			e.Animations().Add(a)
		}
		errs = appendScoped(errs, e.Name(), "animations", err)

		forces, err := persist.ImportAll[force.Force](r, entry.Forces)
		for _, f := range forces {
			e.Forces().Add(f)
		}
		errs = appendScoped(errs, e.Name(), "forces", err)

		emitterAnimations, err := persist.ImportAll[emitter.Animate](r, entry.EmitterAnimations)
		for _, a := range emitterAnimations {
			e.EmitterAnimations().Add(a)
		}
		errs = appendScoped(errs, e.Name(), "emitter animations", err)

		emitters = append(emitters, e)
	}
	return emitters, errors.Join(errs...)
}

// appendScoped flattens a joined import error so each skipped record is its
// own entry.
func appendScoped(errs []error, name, list string, err error) []error {
	if err == nil {
		return errs
	}
	for _, e := range Unjoin(err) {
		errs = append(errs, fmt.Errorf("emitter %q %s: %w", name, list, e))
	}
	return errs
}

// Unjoin splits an error produced by errors.Join into its parts. Any other
// error is returned as a single element.
func Unjoin(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
