package ontology

import (
	"os"

	"github.com/dhruvd-1/semtok/pkg/errors"
	jsonx "github.com/dhruvd-1/semtok/pkg/json"
)

// snapshotWire mirrors the JSON layout of an ontology file: classes and
// properties keyed by name, relationships as a list.
type snapshotWire struct {
	Metadata map[string]string `json:"metadata"`
	Classes  map[string]struct {
		Description string                `json:"description"`
		Parent      string                `json:"parent"`
		Properties  []string              `json:"properties"`
		Constraints map[string]Constraint `json:"constraints"`
	} `json:"classes"`
	Relationships []Relationship `json:"relationships"`
	Properties    map[string]struct {
		Datatype    string `json:"datatype"`
		Description string `json:"description"`
	} `json:"properties"`
}

// LoadBytes builds an ontology snapshot from JSON.
func LoadBytes(data []byte) (*Ontology, error) {
	var wire snapshotWire
	if err := jsonx.Unmarshal(data, &wire); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "cannot parse ontology JSON")
	}

	o := &Ontology{
		Metadata:      wire.Metadata,
		Classes:       make(map[string]*Class, len(wire.Classes)),
		Relationships: wire.Relationships,
		Properties:    make(map[string]*Property, len(wire.Properties)),
	}
	if o.Metadata == nil {
		o.Metadata = make(map[string]string)
	}

	for name, c := range wire.Classes {
		o.Classes[name] = &Class{
			Name:        name,
			Description: c.Description,
			Parent:      c.Parent,
			Properties:  c.Properties,
			Constraints: c.Constraints,
		}
	}
	for name, p := range wire.Properties {
		o.Properties[name] = &Property{
			Name:        name,
			Datatype:    p.Datatype,
			Description: p.Description,
		}
	}

	if err := o.checkParents(); err != nil {
		return nil, err
	}
	return o, nil
}

// LoadFile builds an ontology snapshot from a JSON file on disk.
func LoadFile(path string) (*Ontology, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is operator-controlled
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "cannot read ontology file")
	}
	return LoadBytes(data)
}

// checkParents rejects snapshots referencing undefined parent classes and
// snapshots whose parent chains form a cycle. A dangling parent would
// silently truncate inherited property lists; a cycle would make property
// and hierarchy resolution loop forever.
func (o *Ontology) checkParents() error {
	for name, cls := range o.Classes {
		if cls.Parent == "" {
			continue
		}
		if _, ok := o.Classes[cls.Parent]; !ok {
			return errors.New(errors.ErrorTypeData, "unknown parent class").
				WithDetail("class", name).
				WithDetail("parent", cls.Parent)
		}

		seen := map[string]struct{}{name: {}}
		for cur := cls; cur.Parent != ""; {
			if _, dup := seen[cur.Parent]; dup {
				return errors.New(errors.ErrorTypeValidation, "inheritance cycle").
					WithDetail("class", name).
					WithDetail("parent", cur.Parent)
			}
			seen[cur.Parent] = struct{}{}
			next, ok := o.Classes[cur.Parent]
			if !ok {
				break
			}
			cur = next
		}
	}
	return nil
}
