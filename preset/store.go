package preset

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/quasilyte/gdata/v2"

	"github.com/plus3/ember/emitter"
	"github.com/plus3/ember/persist"
)

// ErrNotFound is returned by Store.Load for a preset that was never saved.
var ErrNotFound = errors.New("preset: not found")

// Backend is a durable key/value store addressed by object and property.
// *gdata.Manager satisfies it.
type Backend interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

var _ Backend = (*gdata.Manager)(nil)

// DefaultObject is the backend object presets are stored under.
const DefaultObject = "presets"

// Store saves named presets into a Backend as YAML.
type Store struct {
	backend Backend
	object  string
	logger  *log.Logger
}

// NewStore creates a store writing under object. A nil logger uses
// log.Default().
func NewStore(backend Backend, object string, logger *log.Logger) *Store {
	if object == "" {
		object = DefaultObject
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Store{backend: backend, object: object, logger: logger}
}

// OpenStore opens the per-user data directory of appName through gdata.
func OpenStore(appName, object string, logger *log.Logger) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("preset: open store %q: %w", appName, err)
	}
	return NewStore(m, object, logger), nil
}

// Exists reports whether a preset called name was saved.
func (s *Store) Exists(name string) bool {
	return s.backend.ObjectPropExists(s.object, name)
}

// Save writes doc under name, replacing any previous preset of that name.
func (s *Store) Save(name string, doc Document) error {
	if name == "" {
		return errors.New("preset: empty name")
	}
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if err := s.backend.SaveObjectProp(s.object, name, data); err != nil {
		return fmt.Errorf("preset: save %q: %w", name, err)
	}
	s.logger.Printf("[Store] Saved preset %q (%d emitters)", name, len(doc.Emitters))
	return nil
}

// Load reads the preset called name.
func (s *Store) Load(name string) (Document, error) {
	if !s.Exists(name) {
		return Document{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	data, err := s.backend.LoadObjectProp(s.object, name)
	if err != nil {
		return Document{}, fmt.Errorf("preset: load %q: %w", name, err)
	}
	doc, err := Unmarshal(data)
	if err != nil {
		return Document{}, fmt.Errorf("preset: load %q: %w", name, err)
	}
	s.logger.Printf("[Store] Loaded preset %q (%d emitters)", name, len(doc.Emitters))
	return doc, nil
}

// Restore loads the preset called name and builds its emitters. Skipped
// emitters and behaviours are logged one per line and also returned.
func (s *Store) Restore(r *persist.Registry, name string) ([]*emitter.Emitter, error) {
	doc, err := s.Load(name)
	if err != nil {
		return nil, err
	}
	emitters, err := Build(r, doc)
	for _, e := range Unjoin(err) {
		s.logger.Printf("[Preset] Warning: skipped while restoring %q: %v", name, e)
	}
	return emitters, err
}

// MemoryBackend is an in-process Backend.
type MemoryBackend struct {
	mu      sync.RWMutex
	objects map[string]map[string][]byte
}

// NewMemoryBackend creates an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{objects: make(map[string]map[string][]byte)}
}

func (m *MemoryBackend) ObjectPropExists(objectKey, propKey string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[objectKey][propKey]
	return ok
}

func (m *MemoryBackend) LoadObjectProp(objectKey, propKey string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[objectKey][propKey]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", objectKey, propKey, ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryBackend) SaveObjectProp(objectKey, propKey string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	props, ok := m.objects[objectKey]
	if !ok {
		props = make(map[string][]byte)
		m.objects[objectKey] = props
	}
	props[propKey] = append([]byte(nil), data...)
	return nil
}
