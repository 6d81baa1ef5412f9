// Package level holds the entities that own movement paths and the YAML
// level files the editor reads and writes.
package level

import (
	"fmt"
	"os"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"

	"github.com/milkweed-games/waypath/geom"
	"github.com/milkweed-games/waypath/path"
)

// Entity is a level object. Center is its position on the map, Size its
// extents. Path, when set, describes how the entity moves; node positions
// are relative to Center.
type Entity struct {
	ID     string
	Center cp.Vector
	Size   cp.Vector
	Path   *path.Path
}

// mustOwn panics when an edit record tagged with another entity id is
// applied to this entity.
func (e *Entity) mustOwn(id string) {
	if e.ID != id {
		panic(fmt.Sprintf("edit for entity %q applied to entity %q", id, e.ID))
	}
}

// PathBBOutOfBounds reports whether the bounding box of the entity path,
// placed on the map, exceeds the map area.
func (e *Entity) PathBBOutOfBounds() bool {
	if e.Path == nil {
		return false
	}
	return geom.BBOutOfBounds(geom.OffsetBB(e.Path.BB(), e.Center))
}

// Level is an ordered list of entities.
type Level struct {
	Entities []*Entity
}

// Entity returns the entity with the given id.
func (l *Level) Entity(id string) (*Entity, bool) {
	for _, e := range l.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// EntityRecord is the serialized form of an entity.
type EntityRecord struct {
	ID     string            `yaml:"id"`
	X      float64           `yaml:"x"`
	Y      float64           `yaml:"y"`
	Width  float64           `yaml:"width,omitempty"`
	Height float64           `yaml:"height,omitempty"`
	Path   []path.NodeRecord `yaml:"path,omitempty"`
}

// LevelRecord is the serialized form of a level file.
type LevelRecord struct {
	Entities []EntityRecord `yaml:"entities"`
}

// FromRecord builds a level from its serialized form, rebuilding the paths.
func FromRecord(record LevelRecord) (*Level, error) {
	lvl := &Level{Entities: make([]*Entity, 0, len(record.Entities))}
	seen := make(map[string]struct{}, len(record.Entities))

	for i, r := range record.Entities {
		if r.ID == "" {
			return nil, fmt.Errorf("entity %d has no id", i)
		}
		if _, ok := seen[r.ID]; ok {
			return nil, fmt.Errorf("duplicate entity id %q", r.ID)
		}
		seen[r.ID] = struct{}{}

		e := &Entity{
			ID:     r.ID,
			Center: cp.Vector{X: r.X, Y: r.Y},
			Size:   cp.Vector{X: r.Width, Y: r.Height},
		}

		if len(r.Path) != 0 {
			p, err := path.FromRecords(r.Path)
			if err != nil {
				return nil, fmt.Errorf("entity %q path: %w", r.ID, err)
			}
			e.Path = p
		}

		lvl.Entities = append(lvl.Entities, e)
	}

	return lvl, nil
}

// Record returns the level in serializable form.
func (l *Level) Record() LevelRecord {
	record := LevelRecord{Entities: make([]EntityRecord, len(l.Entities))}
	for i, e := range l.Entities {
		r := EntityRecord{
			ID:     e.ID,
			X:      e.Center.X,
			Y:      e.Center.Y,
			Width:  e.Size.X,
			Height: e.Size.Y,
		}
		if e.Path != nil {
			r.Path = e.Path.Records()
		}
		record.Entities[i] = r
	}
	return record
}

// Load reads a level from a YAML file.
func Load(filename string) (*Level, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("level: load %s: %w", filename, err)
	}

	var record LevelRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("level: unmarshal %s: %w", filename, err)
	}

	lvl, err := FromRecord(record)
	if err != nil {
		return nil, fmt.Errorf("level: %s: %w", filename, err)
	}
	return lvl, nil
}

// Save writes the level to a YAML file.
func (l *Level) Save(filename string) error {
	data, err := yaml.Marshal(l.Record())
	if err != nil {
		return fmt.Errorf("level: marshal %s: %w", filename, err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("level: save %s: %w", filename, err)
	}
	return nil
}
