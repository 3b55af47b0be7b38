package ifc

import (
	"slices"

	"github.com/zefrenchwan/ifc.git/model"
	"github.com/zefrenchwan/ifc.git/schema"
	"github.com/zefrenchwan/ifc.git/step"
)

// AnyPropertySetDefinition is a property set definition or any of its subtypes
type AnyPropertySetDefinition interface {
	AnyRoot
	// AsPropertySetDefinition returns the definition part of the entity
	AsPropertySetDefinition() *PropertySetDefinition
}

// PropertyDefinition is the common part of property definitions
type PropertyDefinition struct {
	Root
}

// PropertySetDefinition is a property definition that applies to objects
type PropertySetDefinition struct {
	PropertyDefinition
	propertyDefinitionOf []*RelDefinesByProperties
}

// AsPropertySetDefinition returns p
func (p *PropertySetDefinition) AsPropertySetDefinition() *PropertySetDefinition {
	return p
}

// PropertyDefinitionOf returns the relations linking p to objects
func (p *PropertySetDefinition) PropertyDefinitionOf() []*RelDefinesByProperties {
	return slices.Clone(p.propertyDefinitionOf)
}

// DefinedObjects returns the objects p applies to
func (p *PropertySetDefinition) DefinedObjects() []AnyObject {
	var result []AnyObject
	for _, relation := range p.propertyDefinitionOf {
		result = append(result, relation.relatedObjects...)
	}

	return result
}

// PropertySet is a named set of properties.
// Property names are unique in a set.
type PropertySet struct {
	PropertySetDefinition
	properties []AnyProperty
}

// NewPropertySet builds a set of at least one property
func NewPropertySet(m *model.Model, history *OwnerHistory, options RootOptions, properties []AnyProperty) (*PropertySet, error) {
	const entity = "IfcPropertySet"
	if len(properties) == 0 {
		return nil, invalid(entity, "at least one property is expected")
	}

	names := make(map[string]bool, len(properties))
	for index, property := range properties {
		if step.IsNil(property) {
			return nil, invalid(entity, "nil property at %d", index)
		}

		name := property.AsProperty().name
		if names[name] {
			return nil, model.NewArgumentValueError(entity, "property names should be unique", name)
		}

		names[name] = true
	}

	root, err := newRoot(m, entity, history, options)
	if err != nil {
		return nil, err
	}

	result := &PropertySet{
		PropertySetDefinition: PropertySetDefinition{PropertyDefinition: PropertyDefinition{root}},
		properties:            slices.Clone(properties),
	}

	return attach(m, result)
}

// EntityType returns the descriptor of IfcPropertySet
func (p *PropertySet) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcPropertySet")
}

// AttributeValues returns the values in file order
func (p *PropertySet) AttributeValues() []step.Value {
	return append(p.rootValues(), step.RefList(p.properties))
}

// Properties returns the properties of the set
func (p *PropertySet) Properties() []AnyProperty {
	return slices.Clone(p.properties)
}

// Property returns the property with that name, nil for none
func (p *PropertySet) Property(name string) AnyProperty {
	for _, property := range p.properties {
		if property.AsProperty().name == name {
			return property
		}
	}

	return nil
}

// AnyProperty is a property or any of its subtypes
type AnyProperty interface {
	step.Entity
	// AsProperty returns the property part of the entity
	AsProperty() *Property
}

// Property is a named value description
type Property struct {
	name        string
	description string
}

// AsProperty returns p
func (p *Property) AsProperty() *Property {
	return p
}

// Name returns the property name
func (p *Property) Name() string {
	return p.name
}

// Description returns the property description
func (p *Property) Description() string {
	return p.description
}

// SimpleProperty is a property with a value, not a complex one
type SimpleProperty struct {
	Property
}

// PropertySingleValue is a property with a single optional value and unit
type PropertySingleValue struct {
	SimpleProperty
	value step.Value
	unit  AnyUnit
}

// NewPropertySingleValue builds a property.
// Value should be a measure, for instance Label("x") or LengthMeasure(2.5), or nil for no value.
func NewPropertySingleValue(name, description string, value step.Value, unit AnyUnit) (*PropertySingleValue, error) {
	const entity = "IfcPropertySingleValue"
	if len(name) == 0 {
		return nil, invalid(entity, "name is mandatory")
	} else if err := checkLabel(entity, "name", name); err != nil {
		return nil, err
	}

	if value != nil {
		if measure, ok := value.(step.Typed); !ok {
			return nil, invalid(entity, "value should be a typed measure")
		} else if err := checkMeasure(entity, measure); err != nil {
			return nil, err
		}
	}

	result := &PropertySingleValue{value: value}
	result.name = name
	result.description = description
	if !step.IsNil(unit) {
		result.unit = unit
	}

	return result, nil
}

// EntityType returns the descriptor of IfcPropertySingleValue
func (p *PropertySingleValue) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcPropertySingleValue")
}

// AttributeValues returns the values in file order
func (p *PropertySingleValue) AttributeValues() []step.Value {
	value := p.value
	if value == nil {
		value = step.Omitted
	}

	return []step.Value{
		step.String(p.name),
		step.OptionalString(p.description),
		value,
		step.Ref(p.unit),
	}
}

// NominalValue returns the value, nil for none
func (p *PropertySingleValue) NominalValue() step.Value {
	return p.value
}

// Unit returns the unit, nil for none
func (p *PropertySingleValue) Unit() AnyUnit {
	return p.unit
}
