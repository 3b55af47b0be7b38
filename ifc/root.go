package ifc

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/zefrenchwan/ifc.git/model"
	"github.com/zefrenchwan/ifc.git/step"
)

// MAX_LABEL_LENGTH is the maximum number of characters of a label
const MAX_LABEL_LENGTH = 255

// RootOptions are the values shared by every rooted entity
type RootOptions struct {
	// GlobalId is the compressed global id, generated if empty
	GlobalId string
	// Name is the optional label of the entity
	Name string
	// Description is the optional text of the entity
	Description string
}

// AnyRoot is a rooted entity: it has a global id, an owner history and belongs to a model
type AnyRoot interface {
	step.Entity
	model.Element
	// AsRoot returns the root part of the entity
	AsRoot() *Root
}

// AnyObjectDefinition is an object definition or any of its subtypes
type AnyObjectDefinition interface {
	AnyRoot
	// AsObjectDefinition returns the object definition part of the entity
	AsObjectDefinition() *ObjectDefinition
}

// AnyObject is an object or any of its subtypes
type AnyObject interface {
	AnyObjectDefinition
	// AsObject returns the object part of the entity
	AsObject() *Object
}

// Root is the common part of all rooted entities
type Root struct {
	// owner is the model the global id is registered in
	owner *model.Model
	// globalId is the compressed global id
	globalId string
	// ownerHistory is mandatory
	ownerHistory *OwnerHistory
	// name of the entity, may be empty
	name string
	// description of the entity, may be empty
	description string
}

// AsRoot returns r
func (r *Root) AsRoot() *Root {
	return r
}

// GlobalId returns the global id of the entity
func (r *Root) GlobalId() string {
	var result string
	if r != nil {
		result = r.globalId
	}

	return result
}

// Model returns the model the entity belongs to
func (r *Root) Model() *model.Model {
	if r == nil {
		return nil
	}

	return r.owner
}

// OwnerHistory returns the owner history of the entity
func (r *Root) OwnerHistory() *OwnerHistory {
	if r == nil {
		return nil
	}

	return r.ownerHistory
}

// Name returns the name, empty if not set
func (r *Root) Name() string {
	var result string
	if r != nil {
		result = r.name
	}

	return result
}

// Description returns the description, empty if not set
func (r *Root) Description() string {
	var result string
	if r != nil {
		result = r.description
	}

	return result
}

func (r *Root) rootValues() []step.Value {
	return []step.Value{
		step.String(r.globalId),
		step.Ref(r.ownerHistory),
		step.OptionalString(r.name),
		step.OptionalString(r.description),
	}
}

// invalid returns an argument error for an entity
func invalid(entity string, format string, args ...any) error {
	return model.NewArgumentError(entity, fmt.Sprintf(format, args...))
}

// checkLabel returns an error if value is too long for a label
func checkLabel(entity, attribute, value string) error {
	if utf8.RuneCountInString(value) > MAX_LABEL_LENGTH {
		return model.NewArgumentValueError(entity, fmt.Sprintf("%s exceeds %d characters", attribute, MAX_LABEL_LENGTH), value)
	}

	return nil
}

// checkRoot validates the root values of a new entity, without claiming anything
func checkRoot(m *model.Model, entity string, history *OwnerHistory, options RootOptions) error {
	if m == nil {
		return invalid(entity, "nil model")
	} else if history == nil {
		return invalid(entity, "owner history is mandatory")
	} else if err := checkLabel(entity, "name", options.Name); err != nil {
		return err
	}

	return m.CheckGlobalId(options.GlobalId)
}

// newRoot validates then claims the global id.
// Callers should validate everything else before, so that a failure claims nothing.
func newRoot(m *model.Model, entity string, history *OwnerHistory, options RootOptions) (Root, error) {
	if err := checkRoot(m, entity, history, options); err != nil {
		return Root{}, err
	}

	globalId, err := m.ClaimGlobalId(options.GlobalId)
	if err != nil {
		return Root{}, err
	}

	return Root{
		owner:        m,
		globalId:     globalId,
		ownerHistory: history,
		name:         options.Name,
		description:  options.Description,
	}, nil
}

// attach registers a built entity in its model, releasing its global id on failure
func attach[T AnyRoot](m *model.Model, entity T) (T, error) {
	if err := m.Register(entity); err != nil {
		var empty T
		m.Release(model.GLOBAL_ID, entity.GlobalId())
		return empty, err
	}

	m.Logger().Debugw("entity created", "type", entity.EntityType().Name(), "globalId", entity.GlobalId())
	return entity, nil
}

// isLinked returns true if a relationship still refers to root
func isLinked(root AnyRoot) bool {
	if definition, ok := root.(AnyObjectDefinition); ok {
		if part := definition.AsObjectDefinition(); len(part.isDecomposedBy) != 0 || part.decomposes != nil {
			return true
		}
	}

	if object, ok := root.(AnyObject); ok && len(object.AsObject().isDefinedBy) != 0 {
		return true
	} else if structure, ok := root.(AnySpatialStructureElement); ok && len(structure.AsSpatialStructureElement().containsElements) != 0 {
		return true
	} else if element, ok := root.(AnyElement); ok && element.AsElement().containedInStructure != nil {
		return true
	} else if set, ok := root.(AnyPropertySetDefinition); ok && len(set.AsPropertySetDefinition().propertyDefinitionOf) != 0 {
		return true
	}

	return false
}

// referencedBy returns the global id of a registered element referencing root, empty for none
func referencedBy(m *model.Model, root AnyRoot) string {
	var target step.Entity = root
	for _, current := range m.Elements() {
		entity, ok := current.(step.Entity)
		if !ok || entity == target {
			continue
		}

		if slices.Contains(step.Children(entity), target) {
			return current.GlobalId()
		}
	}

	return ""
}

// Remove unregisters root from its model and releases its global id.
// Removing a relationship unlinks its members.
// Other entities are removed only when no relationship and no registered element refers to them.
func Remove(root AnyRoot) error {
	const entity = "IfcRoot"
	if step.IsNil(root) {
		return invalid(entity, "nil entity")
	}

	m := root.AsRoot().Model()
	globalId := root.GlobalId()
	if registered, found := m.Element(globalId); !found || registered != model.Element(root) {
		return model.NewArgumentValueError(entity, "entity is not registered in its model", globalId)
	} else if source := referencedBy(m, root); len(source) != 0 {
		return model.NewArgumentValueError(entity, "entity is referenced by "+source, globalId)
	}

	switch relationship := root.(type) {
	case *RelAggregates:
		relationship.unlink()
	case *RelContainedInSpatialStructure:
		relationship.unlink()
	case *RelDefinesByProperties:
		relationship.unlink()
	default:
		if isLinked(root) {
			return model.NewArgumentValueError(entity, "entity is still linked by a relationship", globalId)
		}
	}

	m.Unregister(globalId)
	m.Release(model.GLOBAL_ID, globalId)
	if _, project := root.(*Project); project {
		m.Release(PROJECT)
	}

	m.Logger().Debugw("entity removed", "type", root.EntityType().Name(), "globalId", globalId)
	return nil
}

// ObjectDefinition is the common part of objects, with decomposition links
type ObjectDefinition struct {
	Root
	// isDecomposedBy are the aggregations this object is the whole of
	isDecomposedBy []*RelAggregates
	// decomposes is the aggregation this object is a part of, if any
	decomposes *RelAggregates
}

// AsObjectDefinition returns o
func (o *ObjectDefinition) AsObjectDefinition() *ObjectDefinition {
	return o
}

// IsDecomposedBy returns the aggregations with o as relating object
func (o *ObjectDefinition) IsDecomposedBy() []*RelAggregates {
	if o == nil {
		return nil
	}

	return slices.Clone(o.isDecomposedBy)
}

// Decomposes returns the aggregation o is a part of, nil for none
func (o *ObjectDefinition) Decomposes() *RelAggregates {
	if o == nil {
		return nil
	}

	return o.decomposes
}

// Parts returns the related objects of all aggregations of o
func (o *ObjectDefinition) Parts() []AnyObjectDefinition {
	if o == nil {
		return nil
	}

	var result []AnyObjectDefinition
	for _, relation := range o.isDecomposedBy {
		result = append(result, relation.relatedObjects...)
	}

	return result
}

// Whole returns the relating object of the aggregation o is part of, nil for none
func (o *ObjectDefinition) Whole() AnyObjectDefinition {
	if o == nil || o.decomposes == nil {
		return nil
	}

	return o.decomposes.relatingObject
}

// Object is an object definition with a type and property definitions
type Object struct {
	ObjectDefinition
	// objectType is the optional type name
	objectType string
	// isDefinedBy are the property relations of the object
	isDefinedBy []*RelDefinesByProperties
}

// AsObject returns o
func (o *Object) AsObject() *Object {
	return o
}

// ObjectType returns the object type, empty for none
func (o *Object) ObjectType() string {
	var result string
	if o != nil {
		result = o.objectType
	}

	return result
}

// IsDefinedBy returns the property relations of the object
func (o *Object) IsDefinedBy() []*RelDefinesByProperties {
	if o == nil {
		return nil
	}

	return slices.Clone(o.isDefinedBy)
}

// PropertySets returns the property set definitions linked to the object
func (o *Object) PropertySets() []AnyPropertySetDefinition {
	if o == nil {
		return nil
	}

	result := make([]AnyPropertySetDefinition, 0, len(o.isDefinedBy))
	for _, relation := range o.isDefinedBy {
		result = append(result, relation.definition)
	}

	return result
}

func (o *Object) objectValues() []step.Value {
	return append(o.rootValues(), step.OptionalString(o.objectType))
}

// newObject validates then claims an object
func newObject(m *model.Model, entity string, history *OwnerHistory, options RootOptions, objectType string) (Object, error) {
	if err := checkLabel(entity, "object type", objectType); err != nil {
		return Object{}, err
	}

	root, err := newRoot(m, entity, history, options)
	if err != nil {
		return Object{}, err
	}

	var result Object
	result.Root = root
	result.objectType = objectType
	return result, nil
}
