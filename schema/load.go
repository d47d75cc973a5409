package schema

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/syssam/veloxdb/cascade"
)

// document is the YAML form of a schema:
//
//	entities:
//	  - name: User
//	    soft_delete: deleted_at
//	    fields: [name]
//	    inverses:
//	      - {name: projects, target: Project, field: owner_id, policy: same}
//	  - name: Project
//	    table: projects
//	    id: {field: id, type: int}
//	    references:
//	      - {field: owner_id, target: User, policy: none}
type document struct {
	Entities []entityDoc `yaml:"entities"`
}

type entityDoc struct {
	Name       string         `yaml:"name"`
	Table      string         `yaml:"table"`
	ID         idDoc          `yaml:"id"`
	SoftDelete *string        `yaml:"soft_delete"`
	Fields     []string       `yaml:"fields"`
	References []referenceDoc `yaml:"references"`
	Inverses   []inverseDoc   `yaml:"inverses"`
}

type idDoc struct {
	Field string `yaml:"field"`
	Type  IDType `yaml:"type"`
}

type referenceDoc struct {
	Field  string         `yaml:"field"`
	Target string         `yaml:"target"`
	Policy cascade.Policy `yaml:"policy"`
}

type inverseDoc struct {
	Name   string         `yaml:"name"`
	Target string         `yaml:"target"`
	Field  string         `yaml:"field"`
	Policy cascade.Policy `yaml:"policy"`
}

// Load reads a YAML schema document into a validated Registry.
func Load(r io.Reader) (*Registry, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("schema: decode: %w", err)
	}
	reg := NewRegistry()
	for i, e := range doc.Entities {
		if e.Name == "" {
			return nil, fmt.Errorf("schema: entity #%d has no name", i)
		}
		switch e.ID.Type {
		case "", IDInt, IDString, IDUUID:
		default:
			return nil, fmt.Errorf("schema: entity %q: unknown id type %q", e.Name, e.ID.Type)
		}
		opts := []Option{
			Table(e.Table),
			ID(e.ID.Field, e.ID.Type),
			Fields(e.Fields...),
		}
		if e.SoftDelete != nil {
			opts = append(opts, SoftDelete(*e.SoftDelete))
		}
		for _, ref := range e.References {
			opts = append(opts, Reference(ref.Field, ref.Target, ref.Policy))
		}
		for _, inv := range e.Inverses {
			name := inv.Name
			if name == "" {
				name = inv.Target
			}
			opts = append(opts, Inverse(name, inv.Target, inv.Field, inv.Policy))
		}
		if err := reg.Register(Entity(e.Name, opts...)); err != nil {
			return nil, err
		}
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

// LoadFile reads a YAML schema document from path.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	defer f.Close()
	return Load(f)
}
