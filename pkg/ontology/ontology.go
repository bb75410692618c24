// Package ontology provides the ontology snapshot consumed by the semtok
// codec: classes with single-parent inheritance, typed properties, class
// relationships, and constraint validation. A snapshot is built once (from
// JSON or the bundled default) and is read-only afterward, so it is safe to
// share across concurrent compress and decompress calls.
package ontology

import (
	"sort"
	"strings"
)

// Property represents a named, typed attribute defined independently of any
// raw schema.
type Property struct {
	Name        string `json:"name"`
	Datatype    string `json:"datatype"`
	Description string `json:"description,omitempty"`
}

// Class represents a named grouping of properties with optional inheritance
// from a parent class.
type Class struct {
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Parent      string                `json:"parent,omitempty"`
	Properties  []string              `json:"properties"`
	Constraints map[string]Constraint `json:"constraints,omitempty"`
}

// Constraint restricts the values a class property may take.
type Constraint struct {
	Type     string   `json:"type,omitempty"`
	Values   []string `json:"values,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Pattern  string   `json:"pattern,omitempty"`
	Required bool     `json:"required,omitempty"`
}

// Relationship represents a directed, named association between two classes.
type Relationship struct {
	Name        string `json:"name"`
	Source      string `json:"source"`
	Target      string `json:"target"`
	Cardinality string `json:"cardinality"`
	Description string `json:"description,omitempty"`
	Through     string `json:"through,omitempty"`
}

// Ontology is the immutable snapshot container.
type Ontology struct {
	Metadata      map[string]string
	Classes       map[string]*Class
	Relationships []Relationship
	Properties    map[string]*Property
}

// Class returns the class with the given name, or false if absent.
func (o *Ontology) Class(name string) (*Class, bool) {
	c, ok := o.Classes[name]
	return c, ok
}

// Property returns the property with the given name, or false if absent.
func (o *Ontology) Property(name string) (*Property, bool) {
	p, ok := o.Properties[name]
	return p, ok
}

// PropertyNames returns all property names in sorted order.
func (o *Ontology) PropertyNames() []string {
	names := make([]string, 0, len(o.Properties))
	for name := range o.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ClassNames returns all class names in sorted order.
func (o *Ontology) ClassNames() []string {
	names := make([]string, 0, len(o.Classes))
	for name := range o.Classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PropertiesForClass returns the property names of a class. With
// includeInherited set, parent properties are appended after the class's own,
// deduplicated keeping the first occurrence. The order is deterministic:
// declaration order per class, child before parent. An unknown class yields
// an empty list.
func (o *Ontology) PropertiesForClass(className string, includeInherited bool) []string {
	cls, ok := o.Classes[className]
	if !ok {
		return nil
	}

	if !includeInherited {
		out := make([]string, len(cls.Properties))
		copy(out, cls.Properties)
		return out
	}

	seen := make(map[string]struct{})
	var out []string
	for cur := cls; cur != nil; {
		for _, p := range cur.Properties {
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
		if cur.Parent == "" {
			break
		}
		parent, ok := o.Classes[cur.Parent]
		if !ok {
			break
		}
		cur = parent
	}
	return out
}

// Hierarchy returns the inheritance chain for a class, root first.
func (o *Ontology) Hierarchy(className string) []string {
	chain := []string{className}
	cur, ok := o.Classes[className]
	for ok && cur.Parent != "" {
		chain = append([]string{cur.Parent}, chain...)
		cur, ok = o.Classes[cur.Parent]
	}
	return chain
}

// Subclasses returns the direct subclasses of a class, sorted by name.
func (o *Ontology) Subclasses(className string) []string {
	var subs []string
	for name, cls := range o.Classes {
		if cls.Parent == className {
			subs = append(subs, name)
		}
	}
	sort.Strings(subs)
	return subs
}

// Descendants returns all transitive subclasses of a class, sorted by name.
func (o *Ontology) Descendants(className string) []string {
	var all []string
	for _, child := range o.Subclasses(className) {
		all = append(all, child)
		all = append(all, o.Descendants(child)...)
	}
	sort.Strings(all)
	return all
}

// IsSubclassOf reports whether child inherits from parent (or is parent).
func (o *Ontology) IsSubclassOf(child, parent string) bool {
	for _, name := range o.Hierarchy(child) {
		if name == parent {
			return true
		}
	}
	return false
}

// RelationshipsFor returns all relationships where the class appears as
// source or target.
func (o *Ontology) RelationshipsFor(className string) []Relationship {
	var rels []Relationship
	for _, rel := range o.Relationships {
		if rel.Source == className || rel.Target == className {
			rels = append(rels, rel)
		}
	}
	return rels
}

// FindClassByName performs a case-insensitive class lookup. Raw schema
// sources frequently carry table names like "customer" or "CUSTOMER".
func (o *Ontology) FindClassByName(name string) (*Class, bool) {
	if c, ok := o.Classes[name]; ok {
		return c, true
	}
	for className, c := range o.Classes {
		if strings.EqualFold(className, name) {
			return c, true
		}
	}
	return nil, false
}
