package schema

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Entity is the descriptor of an entity type.
// Flattened attributes are computed once, when the entity is defined.
type Entity struct {
	// name of the entity, as in the schema (IfcWall)
	name string
	// abstract entities have no instance
	abstract bool
	// supertype is nil for root entities
	supertype *Entity
	// declared are the attributes this entity declares, in declaration order
	declared []Attribute
	// attributes are the written positions, from the root ancestor to this entity.
	// Redeclared derived attributes keep their inherited position.
	attributes []Attribute
	// derived are the derived attributes with no written position
	derived []Attribute
	// inverses are all inverse attributes, inherited ones first
	inverses []Attribute
}

// Name returns the schema name of the entity
func (e *Entity) Name() string {
	if e == nil {
		return ""
	}

	return e.name
}

// Keyword returns the upper case name used in instance lines
func (e *Entity) Keyword() string {
	if e == nil {
		return ""
	}

	return strings.ToUpper(e.name)
}

// IsAbstract returns true for entities that may not be instantiated
func (e *Entity) IsAbstract() bool {
	return e != nil && e.abstract
}

// Supertype returns the direct supertype, nil for a root entity
func (e *Entity) Supertype() *Entity {
	if e == nil {
		return nil
	}

	return e.supertype
}

// Declared returns a copy of the attributes this entity declares
func (e *Entity) Declared() []Attribute {
	if e == nil {
		return nil
	}

	return slices.Clone(e.declared)
}

// Attributes returns a copy of the written attributes, inherited ones first
func (e *Entity) Attributes() []Attribute {
	if e == nil {
		return nil
	}

	return slices.Clone(e.attributes)
}

// AttributesCount returns the number of written positions
func (e *Entity) AttributesCount() int {
	if e == nil {
		return 0
	}

	return len(e.attributes)
}

// Derived returns the derived attributes with no written position
func (e *Entity) Derived() []Attribute {
	if e == nil {
		return nil
	}

	return slices.Clone(e.derived)
}

// Inverses returns the inverse attributes, inherited ones first
func (e *Entity) Inverses() []Attribute {
	if e == nil {
		return nil
	}

	return slices.Clone(e.inverses)
}

// Chain returns the entities from the root ancestor down to e
func (e *Entity) Chain() []*Entity {
	var result []*Entity
	for current := e; current != nil; current = current.supertype {
		result = append(result, current)
	}

	slices.Reverse(result)
	return result
}

// IsSubtypeOf returns true if e is name or inherits from name (case insensitive)
func (e *Entity) IsSubtypeOf(name string) bool {
	for current := e; current != nil; current = current.supertype {
		if strings.EqualFold(current.name, name) {
			return true
		}
	}

	return false
}

// Dictionary contains all the entity descriptors of a schema
type Dictionary struct {
	// name of the schema, as written in FILE_SCHEMA
	name string
	// entities links a lower case name to its descriptor
	entities map[string]*Entity
	// subtypes links a lower case name to the names of its direct subtypes
	subtypes map[string][]string
}

// NewDictionary returns an empty dictionary for a schema
func NewDictionary(name string) Dictionary {
	return Dictionary{
		name:     name,
		entities: make(map[string]*Entity),
		subtypes: make(map[string][]string),
	}
}

// Name returns the schema name
func (d *Dictionary) Name() string {
	if d == nil {
		return ""
	}

	return d.name
}

// Define adds an entity with its supertype (empty for none) and declared attributes.
// Supertype must be defined first.
func (d *Dictionary) Define(name string, supertype string, abstract bool, attributes ...Attribute) (*Entity, error) {
	if d == nil {
		return nil, errors.New("nil dictionary")
	} else if len(name) == 0 {
		return nil, errors.New("empty entity name")
	}

	if d.entities == nil {
		d.entities = make(map[string]*Entity)
		d.subtypes = make(map[string][]string)
	}

	key := strings.ToLower(name)
	if _, found := d.entities[key]; found {
		return nil, fmt.Errorf("entity %s already defined", name)
	}

	result := &Entity{
		name:     name,
		abstract: abstract,
		declared: slices.Clone(attributes),
	}

	if len(supertype) != 0 {
		if parent, found := d.entities[strings.ToLower(supertype)]; !found {
			return nil, fmt.Errorf("entity %s: unknown supertype %s", name, supertype)
		} else {
			result.supertype = parent
			result.attributes = slices.Clone(parent.attributes)
			result.derived = slices.Clone(parent.derived)
			result.inverses = slices.Clone(parent.inverses)
		}
	}

	if err := result.flatten(); err != nil {
		return nil, err
	}

	d.entities[key] = result
	if result.supertype != nil {
		parentKey := strings.ToLower(result.supertype.name)
		d.subtypes[parentKey] = append(d.subtypes[parentKey], name)
	}

	return result, nil
}

// MustDefine is Define, panicking on error.
// Descriptors are static, a misconfiguration is a programming defect.
func (d *Dictionary) MustDefine(name string, supertype string, abstract bool, attributes ...Attribute) *Entity {
	result, err := d.Define(name, supertype, abstract, attributes...)
	if err != nil {
		panic(err)
	}

	return result
}

// flatten appends declared attributes to the inherited ones
func (e *Entity) flatten() error {
	var globalErr error
	seen := make(map[string]bool)
	for _, attribute := range e.declared {
		key := strings.ToLower(attribute.Name)
		if len(key) == 0 {
			globalErr = errors.Join(globalErr, fmt.Errorf("entity %s: empty attribute name", e.name))
			continue
		} else if seen[key] {
			globalErr = errors.Join(globalErr, fmt.Errorf("entity %s: attribute %s declared twice", e.name, attribute.Name))
			continue
		}

		seen[key] = true
		position := slices.IndexFunc(e.attributes, func(a Attribute) bool { return strings.EqualFold(a.Name, attribute.Name) })

		switch attribute.Kind {
		case EXPLICIT:
			if position >= 0 {
				globalErr = errors.Join(globalErr, fmt.Errorf("entity %s: attribute %s already inherited", e.name, attribute.Name))
			} else {
				e.attributes = append(e.attributes, attribute)
			}
		case DERIVED:
			if position >= 0 {
				e.attributes[position] = attribute
			} else {
				e.derived = append(e.derived, attribute)
			}
		case INVERSE:
			e.inverses = append(e.inverses, attribute)
		default:
			globalErr = errors.Join(globalErr, fmt.Errorf("entity %s: attribute %s has unknown kind", e.name, attribute.Name))
		}
	}

	return globalErr
}

// Entity returns the descriptor for name (case insensitive), nil if not defined
func (d *Dictionary) Entity(name string) *Entity {
	if d == nil || d.entities == nil {
		return nil
	}

	return d.entities[strings.ToLower(name)]
}

// MustEntity returns the descriptor for name, panicking if not defined
func (d *Dictionary) MustEntity(name string) *Entity {
	result := d.Entity(name)
	if result == nil {
		panic(fmt.Sprintf("entity %s not defined in %s", name, d.Name()))
	}

	return result
}

// Names returns the sorted names of all entities
func (d *Dictionary) Names() []string {
	if d == nil {
		return nil
	}

	result := make([]string, 0, len(d.entities))
	for _, entity := range d.entities {
		result = append(result, entity.name)
	}

	slices.Sort(result)
	return result
}

// DirectSubtypes returns the sorted slice of the direct subtypes of name.
// If d is nil, or has no value for that name, it returns nil.
// If entity exists with no subtype, it returns empty.
func (d *Dictionary) DirectSubtypes(name string) []string {
	if d == nil || d.entities == nil {
		return nil
	}

	key := strings.ToLower(name)
	if _, found := d.entities[key]; !found {
		return nil
	}

	values := d.subtypes[key]
	if len(values) == 0 {
		return []string{}
	}

	result := slices.Clone(values)
	slices.Sort(result)
	return result
}

// DirectSupertype returns the name of the direct supertype, empty for root or unknown entities
func (d *Dictionary) DirectSupertype(name string) string {
	return d.Entity(name).Supertype().Name()
}
