package ifc

import (
	"slices"

	"github.com/zefrenchwan/ifc.git/model"
	"github.com/zefrenchwan/ifc.git/schema"
	"github.com/zefrenchwan/ifc.git/step"
)

// Relationship is the common part of objectified relationships.
// Building a relationship updates the inverse links of its members, so members should exist first.
type Relationship struct {
	Root
}

// checkMembers validates the relating and related members of a relationship.
// Members are compared by identity: same pointer, same member.
func checkMembers[T AnyRoot](m *model.Model, entity string, relating AnyRoot, related []T) error {
	if step.IsNil(relating) {
		return invalid(entity, "relating member is mandatory")
	} else if relating.AsRoot().Model() != m {
		return invalid(entity, "relating member belongs to another model")
	} else if len(related) == 0 {
		return invalid(entity, "at least one related member is expected")
	}

	var relatingEntity step.Entity = relating
	seen := make(map[step.Entity]bool, len(related))
	for index, member := range related {
		var current step.Entity = member
		if step.IsNil(current) {
			return invalid(entity, "nil related member at %d", index)
		} else if current == relatingEntity {
			return invalid(entity, "relating member may not be related")
		} else if seen[current] {
			return invalid(entity, "related member at %d appears twice", index)
		} else if member.AsRoot().Model() != m {
			return invalid(entity, "related member at %d belongs to another model", index)
		}

		seen[current] = true
	}

	return nil
}

// RelDecomposes links a whole to its parts
type RelDecomposes struct {
	Relationship
	relatingObject AnyObjectDefinition
	relatedObjects []AnyObjectDefinition
}

// RelatingObject returns the whole
func (r *RelDecomposes) RelatingObject() AnyObjectDefinition {
	return r.relatingObject
}

// RelatedObjects returns the parts
func (r *RelDecomposes) RelatedObjects() []AnyObjectDefinition {
	return slices.Clone(r.relatedObjects)
}

// RelAggregates is a decomposition where parts are independent objects.
// An object is part of at most one aggregation, and a project is never a part.
type RelAggregates struct {
	RelDecomposes
}

// NewRelAggregates links relating to related objects.
// Nothing changes if any member is invalid.
func NewRelAggregates(m *model.Model, history *OwnerHistory, options RootOptions, relating AnyObjectDefinition, related []AnyObjectDefinition) (*RelAggregates, error) {
	const entity = "IfcRelAggregates"
	if err := checkMembers(m, entity, relating, related); err != nil {
		return nil, err
	}

	for index, member := range related {
		if _, project := member.(*Project); project {
			return nil, invalid(entity, "a project may not be decomposed, related member at %d", index)
		} else if member.AsObjectDefinition().decomposes != nil {
			return nil, invalid(entity, "related member at %d is already part of an aggregation", index)
		}
	}

	// a part may not contain its whole
	for ancestor := relating.AsObjectDefinition().Whole(); ancestor != nil; ancestor = ancestor.AsObjectDefinition().Whole() {
		if slices.Contains(related, ancestor) {
			return nil, invalid(entity, "aggregation would create a cycle")
		}
	}

	root, err := newRoot(m, entity, history, options)
	if err != nil {
		return nil, err
	}

	result := &RelAggregates{RelDecomposes{
		Relationship:   Relationship{root},
		relatingObject: relating,
		relatedObjects: slices.Clone(related),
	}}

	if _, err := attach(m, result); err != nil {
		return nil, err
	}

	whole := relating.AsObjectDefinition()
	whole.isDecomposedBy = append(whole.isDecomposedBy, result)
	for _, member := range related {
		member.AsObjectDefinition().decomposes = result
	}

	return result, nil
}

// unlink removes r from the inverse links of its members
func (r *RelAggregates) unlink() {
	whole := r.relatingObject.AsObjectDefinition()
	whole.isDecomposedBy = slices.DeleteFunc(whole.isDecomposedBy, func(current *RelAggregates) bool { return current == r })
	for _, member := range r.relatedObjects {
		if part := member.AsObjectDefinition(); part.decomposes == r {
			part.decomposes = nil
		}
	}
}

// EntityType returns the descriptor of IfcRelAggregates
func (r *RelAggregates) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcRelAggregates")
}

// AttributeValues returns the values in file order
func (r *RelAggregates) AttributeValues() []step.Value {
	return append(r.rootValues(), step.Ref(r.relatingObject), step.RefList(r.relatedObjects))
}

// RelContainedInSpatialStructure places products in a level of the spatial structure.
// An element is contained in at most one structure.
type RelContainedInSpatialStructure struct {
	Relationship
	relatedElements   []AnyProduct
	relatingStructure AnySpatialStructureElement
}

// NewRelContainedInSpatialStructure links products to the structure containing them.
// Spatial structure elements may not be contained, they are aggregated.
func NewRelContainedInSpatialStructure(m *model.Model, history *OwnerHistory, options RootOptions, related []AnyProduct, structure AnySpatialStructureElement) (*RelContainedInSpatialStructure, error) {
	const entity = "IfcRelContainedInSpatialStructure"
	if err := checkMembers(m, entity, structure, related); err != nil {
		return nil, err
	}

	for index, member := range related {
		if _, spatial := member.(AnySpatialStructureElement); spatial {
			return nil, invalid(entity, "related member at %d is a spatial structure element", index)
		} else if element, ok := member.(AnyElement); ok && element.AsElement().containedInStructure != nil {
			return nil, invalid(entity, "related member at %d is already contained in a structure", index)
		}
	}

	root, err := newRoot(m, entity, history, options)
	if err != nil {
		return nil, err
	}

	result := &RelContainedInSpatialStructure{
		Relationship:      Relationship{root},
		relatedElements:   slices.Clone(related),
		relatingStructure: structure,
	}

	if _, err := attach(m, result); err != nil {
		return nil, err
	}

	container := structure.AsSpatialStructureElement()
	container.containsElements = append(container.containsElements, result)
	for _, member := range related {
		if element, ok := member.(AnyElement); ok {
			element.AsElement().containedInStructure = result
		}
	}

	return result, nil
}

// unlink removes r from the inverse links of its members
func (r *RelContainedInSpatialStructure) unlink() {
	container := r.relatingStructure.AsSpatialStructureElement()
	container.containsElements = slices.DeleteFunc(container.containsElements, func(current *RelContainedInSpatialStructure) bool { return current == r })
	for _, member := range r.relatedElements {
		if element, ok := member.(AnyElement); ok && element.AsElement().containedInStructure == r {
			element.AsElement().containedInStructure = nil
		}
	}
}

// EntityType returns the descriptor of IfcRelContainedInSpatialStructure
func (r *RelContainedInSpatialStructure) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcRelContainedInSpatialStructure")
}

// AttributeValues returns the values in file order
func (r *RelContainedInSpatialStructure) AttributeValues() []step.Value {
	return append(r.rootValues(), step.RefList(r.relatedElements), step.Ref(r.relatingStructure))
}

// RelatedElements returns the contained products
func (r *RelContainedInSpatialStructure) RelatedElements() []AnyProduct {
	return slices.Clone(r.relatedElements)
}

// RelatingStructure returns the container
func (r *RelContainedInSpatialStructure) RelatingStructure() AnySpatialStructureElement {
	return r.relatingStructure
}

// RelDefinesByProperties links objects to a property set definition
type RelDefinesByProperties struct {
	Relationship
	relatedObjects []AnyObject
	definition     AnyPropertySetDefinition
}

// NewRelDefinesByProperties links objects to a property set definition
func NewRelDefinesByProperties(m *model.Model, history *OwnerHistory, options RootOptions, related []AnyObject, definition AnyPropertySetDefinition) (*RelDefinesByProperties, error) {
	const entity = "IfcRelDefinesByProperties"
	if err := checkMembers(m, entity, definition, related); err != nil {
		return nil, err
	}

	root, err := newRoot(m, entity, history, options)
	if err != nil {
		return nil, err
	}

	result := &RelDefinesByProperties{
		Relationship:   Relationship{root},
		relatedObjects: slices.Clone(related),
		definition:     definition,
	}

	if _, err := attach(m, result); err != nil {
		return nil, err
	}

	set := definition.AsPropertySetDefinition()
	set.propertyDefinitionOf = append(set.propertyDefinitionOf, result)
	for _, member := range related {
		object := member.AsObject()
		object.isDefinedBy = append(object.isDefinedBy, result)
	}

	return result, nil
}

// unlink removes r from the inverse links of its members
func (r *RelDefinesByProperties) unlink() {
	matches := func(current *RelDefinesByProperties) bool { return current == r }
	set := r.definition.AsPropertySetDefinition()
	set.propertyDefinitionOf = slices.DeleteFunc(set.propertyDefinitionOf, matches)
	for _, member := range r.relatedObjects {
		object := member.AsObject()
		object.isDefinedBy = slices.DeleteFunc(object.isDefinedBy, matches)
	}
}

// EntityType returns the descriptor of IfcRelDefinesByProperties
func (r *RelDefinesByProperties) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcRelDefinesByProperties")
}

// AttributeValues returns the values in file order
func (r *RelDefinesByProperties) AttributeValues() []step.Value {
	return append(r.rootValues(), step.RefList(r.relatedObjects), step.Ref(r.definition))
}

// RelatedObjects returns the objects the definition applies to
func (r *RelDefinesByProperties) RelatedObjects() []AnyObject {
	return slices.Clone(r.relatedObjects)
}

// RelatingPropertyDefinition returns the property set definition
func (r *RelDefinesByProperties) RelatingPropertyDefinition() AnyPropertySetDefinition {
	return r.definition
}
