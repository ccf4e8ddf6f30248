package resource

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/forgecs/ecs/introspect"
)

// Descriptor is the settings object consumed by LoadResourceSettings. Loaders
// read loader-specific fields out of Extra by re-marshaling it, since the
// core has no static knowledge of any given loader's schema.
//
// ID distinguishes a descriptor from every other descriptor ever loaded, even
// across two resources that happen to share a Name (loaded from different
// directories, or reloaded after a rename). It is generated on parse when the
// document doesn't already carry one, so hand-authored descriptor files never
// need to mint their own.
type Descriptor struct {
	ID    uuid.UUID      `yaml:"id"`
	Name  string         `yaml:"name"`
	Path  string         `yaml:"path"`
	Extra map[string]any `yaml:",inline"`
}

// ParseDescriptor decodes a YAML resource descriptor document, assigning a
// fresh ID when the document doesn't specify one.
func ParseDescriptor(data []byte) (*Descriptor, error) {
	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("resource: parse descriptor: %w", err)
	}
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return &d, nil
}

// Loader reads a resource's byte stream plus its descriptor and produces the
// constructed resource object. A loader is registered once per type tag
// (conventionally a file extension, e.g. ".png", ".level") by whichever
// plugin owns that resource kind; the core dispatches to it by name only.
type Loader func(name string, r io.Reader, settings *Descriptor) (introspect.Introspectable, error)

// RegisterLoader associates a type tag with a loader function.
func (c *Container) RegisterLoader(typeTag string, loader Loader) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.loaders[typeTag] = loader
}

// LoadResource dispatches to the loader registered under typeTag, then adds
// the resulting resource under name.
func (c *Container) LoadResource(name, typeTag string, r io.Reader, settings *Descriptor) error {
	c.lock.RLock()
	loader, ok := c.loaders[typeTag]
	c.lock.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLoader, typeTag)
	}
	obj, err := loader(name, r, settings)
	if err != nil {
		return fmt.Errorf("resource: load %q as %q: %w", name, typeTag, err)
	}
	c.Add(name, obj)
	return nil
}

// LoadResourceSettings loads a resource whose loader is selected by the file
// extension of settings.Path, per §6's "extension of path selects the
// loader" rule.
func (c *Container) LoadResourceSettings(r io.Reader, settings *Descriptor) error {
	ext := filepath.Ext(settings.Path)
	name := settings.Name
	if name == "" {
		name = settings.Path
	}
	return c.LoadResource(name, ext, r, settings)
}
