package ifc

import (
	"slices"

	"github.com/zefrenchwan/ifc.git/model"
	"github.com/zefrenchwan/ifc.git/schema"
	"github.com/zefrenchwan/ifc.git/step"
)

// AnyRepresentationContext is a representation context or any of its subtypes
type AnyRepresentationContext interface {
	step.Entity
	// AsRepresentationContext returns the context part of the entity
	AsRepresentationContext() *RepresentationContext
}

// RepresentationContext is the context representations are defined in
type RepresentationContext struct {
	identifier      string
	contextType     string
	representations []AnyRepresentation
}

// AsRepresentationContext returns r
func (r *RepresentationContext) AsRepresentationContext() *RepresentationContext {
	return r
}

// EntityType returns the descriptor of IfcRepresentationContext
func (r *RepresentationContext) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcRepresentationContext")
}

// AttributeValues returns the values in file order
func (r *RepresentationContext) AttributeValues() []step.Value {
	return r.contextValues()
}

func (r *RepresentationContext) contextValues() []step.Value {
	return []step.Value{step.OptionalString(r.identifier), step.OptionalString(r.contextType)}
}

// ContextIdentifier returns the identifier, for instance Body or Axis
func (r *RepresentationContext) ContextIdentifier() string {
	return r.identifier
}

// ContextType returns the type, for instance Model or Plan
func (r *RepresentationContext) ContextType() string {
	return r.contextType
}

// RepresentationsInContext returns the representations defined in r
func (r *RepresentationContext) RepresentationsInContext() []AnyRepresentation {
	return slices.Clone(r.representations)
}

// GeometricRepresentationContext is a context with a coordinate system
type GeometricRepresentationContext struct {
	RepresentationContext
	dimension      int
	precision      *float64
	world          AnyAxis2Placement
	trueNorth      *Direction
	hasSubContexts []*GeometricRepresentationSubContext
}

// GeometricContextOptions are the values of a geometric representation context
type GeometricContextOptions struct {
	// Identifier is optional, for instance Model
	Identifier string
	// ContextType is optional, for instance Model
	ContextType string
	// Dimension is the coordinate space dimension, 2 or 3
	Dimension int
	// Precision is optional
	Precision *float64
	// WorldCoordinateSystem is mandatory, with the same dimension
	WorldCoordinateSystem AnyAxis2Placement
	// TrueNorth is optional
	TrueNorth *Direction
}

// NewGeometricRepresentationContext builds a context
func NewGeometricRepresentationContext(options GeometricContextOptions) (*GeometricRepresentationContext, error) {
	const entity = "IfcGeometricRepresentationContext"
	if options.Dimension < 2 || options.Dimension > 3 {
		return nil, invalid(entity, "dimension should be 2 or 3, got %d", options.Dimension)
	} else if step.IsNil(options.WorldCoordinateSystem) {
		return nil, invalid(entity, "world coordinate system is mandatory")
	} else if options.WorldCoordinateSystem.Dim() != options.Dimension {
		return nil, invalid(entity, "world coordinate system dimension differs from context dimension")
	} else if options.Precision != nil && (!isFinite(*options.Precision) || *options.Precision <= 0) {
		return nil, invalid(entity, "precision should be strictly positive")
	}

	result := &GeometricRepresentationContext{
		dimension: options.Dimension,
		precision: copyReal(options.Precision),
		world:     options.WorldCoordinateSystem,
		trueNorth: options.TrueNorth,
	}

	result.identifier = options.Identifier
	result.contextType = options.ContextType
	return result, nil
}

// AsGeometricRepresentationContext returns g
func (g *GeometricRepresentationContext) AsGeometricRepresentationContext() *GeometricRepresentationContext {
	return g
}

// EntityType returns the descriptor of IfcGeometricRepresentationContext
func (g *GeometricRepresentationContext) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcGeometricRepresentationContext")
}

// AttributeValues returns the values in file order
func (g *GeometricRepresentationContext) AttributeValues() []step.Value {
	return append(g.contextValues(),
		step.Integer(g.dimension),
		step.OptionalReal(g.precision),
		step.Ref(g.world),
		step.Ref(g.trueNorth),
	)
}

// CoordinateSpaceDimension returns the dimension of the context
func (g *GeometricRepresentationContext) CoordinateSpaceDimension() int {
	return g.dimension
}

// WorldCoordinateSystem returns the placement of the context
func (g *GeometricRepresentationContext) WorldCoordinateSystem() AnyAxis2Placement {
	return g.world
}

// HasSubContexts returns the sub contexts of g
func (g *GeometricRepresentationContext) HasSubContexts() []*GeometricRepresentationSubContext {
	return slices.Clone(g.hasSubContexts)
}

// GeometricRepresentationSubContext is a view of a parent context.
// Dimension, precision, coordinate system and true north are derived from its parent.
type GeometricRepresentationSubContext struct {
	GeometricRepresentationContext
	parent                *GeometricRepresentationContext
	targetScale           *float64
	targetView            GeometricProjectionEnum
	userDefinedTargetView string
}

// SubContextOptions are the values of a sub context
type SubContextOptions struct {
	// Identifier is optional, for instance Body
	Identifier string
	// ContextType is optional, for instance Model
	ContextType string
	// TargetScale is optional, strictly positive
	TargetScale *float64
	// TargetView is mandatory
	TargetView GeometricProjectionEnum
	// UserDefinedTargetView is mandatory for a user defined view
	UserDefinedTargetView string
}

// NewGeometricRepresentationSubContext builds a sub context of parent
func NewGeometricRepresentationSubContext(parent *GeometricRepresentationContext, options SubContextOptions) (*GeometricRepresentationSubContext, error) {
	const entity = "IfcGeometricRepresentationSubContext"
	if parent == nil {
		return nil, invalid(entity, "parent context is mandatory")
	} else if !options.TargetView.IsValid() {
		return nil, model.NewArgumentValueError(entity, "invalid target view", string(options.TargetView))
	} else if options.TargetView == VIEW_USERDEFINED && len(options.UserDefinedTargetView) == 0 {
		return nil, invalid(entity, "user defined target view is mandatory for a user defined view")
	} else if options.TargetScale != nil && (!isFinite(*options.TargetScale) || *options.TargetScale <= 0) {
		return nil, invalid(entity, "target scale should be strictly positive")
	}

	result := &GeometricRepresentationSubContext{
		parent:                parent,
		targetScale:           copyReal(options.TargetScale),
		targetView:            options.TargetView,
		userDefinedTargetView: options.UserDefinedTargetView,
	}

	result.identifier = options.Identifier
	result.contextType = options.ContextType
	result.dimension = parent.dimension
	result.precision = parent.precision
	result.world = parent.world
	result.trueNorth = parent.trueNorth
	parent.hasSubContexts = append(parent.hasSubContexts, result)
	return result, nil
}

// EntityType returns the descriptor of IfcGeometricRepresentationSubContext
func (g *GeometricRepresentationSubContext) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcGeometricRepresentationSubContext")
}

// AttributeValues returns the values in file order, derived values as *
func (g *GeometricRepresentationSubContext) AttributeValues() []step.Value {
	return append(g.contextValues(),
		step.Derived,
		step.Derived,
		step.Derived,
		step.Derived,
		step.Ref(g.parent),
		step.OptionalReal(g.targetScale),
		step.Enum(g.targetView),
		step.OptionalString(g.userDefinedTargetView),
	)
}

// ParentContext returns the parent context
func (g *GeometricRepresentationSubContext) ParentContext() *GeometricRepresentationContext {
	return g.parent
}

// TargetView returns the view of the sub context
func (g *GeometricRepresentationSubContext) TargetView() GeometricProjectionEnum {
	return g.targetView
}

// AnyRepresentation is a representation or any of its subtypes
type AnyRepresentation interface {
	step.Entity
	// AsRepresentation returns the representation part of the entity
	AsRepresentation() *Representation
}

// Representation is a set of items in a context
type Representation struct {
	context                 AnyRepresentationContext
	identifier              string
	representationType      string
	items                   []AnyRepresentationItem
	ofProductRepresentation []AnyProductRepresentation
}

// AsRepresentation returns r
func (r *Representation) AsRepresentation() *Representation {
	return r
}

// EntityType returns the descriptor of IfcRepresentation
func (r *Representation) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcRepresentation")
}

// AttributeValues returns the values in file order
func (r *Representation) AttributeValues() []step.Value {
	return []step.Value{
		step.Ref(r.context),
		step.OptionalString(r.identifier),
		step.OptionalString(r.representationType),
		step.RefList(r.items),
	}
}

// ContextOfItems returns the context of the representation
func (r *Representation) ContextOfItems() AnyRepresentationContext {
	return r.context
}

// RepresentationIdentifier returns the identifier, for instance Body
func (r *Representation) RepresentationIdentifier() string {
	return r.identifier
}

// RepresentationType returns the type, for instance Curve2D
func (r *Representation) RepresentationType() string {
	return r.representationType
}

// Items returns the items of the representation
func (r *Representation) Items() []AnyRepresentationItem {
	return slices.Clone(r.items)
}

// OfProductRepresentation returns the product representations using r
func (r *Representation) OfProductRepresentation() []AnyProductRepresentation {
	return slices.Clone(r.ofProductRepresentation)
}

// ShapeModel is a representation of a shape
type ShapeModel struct {
	Representation
}

// AsShapeModel returns s
func (s *ShapeModel) AsShapeModel() *ShapeModel {
	return s
}

// ShapeRepresentation is a geometric representation of a product shape
type ShapeRepresentation struct {
	ShapeModel
}

// NewShapeRepresentation builds a shape of at least one item, in a geometric context.
// Representation type is mandatory.
func NewShapeRepresentation(context AnyRepresentationContext, identifier, representationType string, items ...AnyRepresentationItem) (*ShapeRepresentation, error) {
	const entity = "IfcShapeRepresentation"
	if step.IsNil(context) {
		return nil, invalid(entity, "context is mandatory")
	} else if _, geometric := context.(interface {
		AsGeometricRepresentationContext() *GeometricRepresentationContext
	}); !geometric {
		return nil, invalid(entity, "context should be a geometric representation context")
	} else if len(representationType) == 0 {
		return nil, invalid(entity, "representation type is mandatory")
	} else if len(items) == 0 {
		return nil, invalid(entity, "at least one item is expected")
	}

	for index, item := range items {
		if step.IsNil(item) {
			return nil, invalid(entity, "nil item at %d", index)
		}
	}

	result := &ShapeRepresentation{}
	result.context = context
	result.identifier = identifier
	result.representationType = representationType
	result.items = slices.Clone(items)

	base := context.AsRepresentationContext()
	base.representations = append(base.representations, result)
	return result, nil
}

// EntityType returns the descriptor of IfcShapeRepresentation
func (s *ShapeRepresentation) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcShapeRepresentation")
}

// AnyProductRepresentation is a product representation or any of its subtypes
type AnyProductRepresentation interface {
	step.Entity
	// AsProductRepresentation returns the representation part of the entity
	AsProductRepresentation() *ProductRepresentation
}

// ProductRepresentation groups the representations of a product
type ProductRepresentation struct {
	name            string
	description     string
	representations []AnyRepresentation
}

// checkRepresentations validates a non empty list of representations
func checkRepresentations(entity string, representations []AnyRepresentation) error {
	if len(representations) == 0 {
		return invalid(entity, "at least one representation is expected")
	}

	for index, representation := range representations {
		if step.IsNil(representation) {
			return invalid(entity, "nil representation at %d", index)
		}
	}

	return nil
}

// linkRepresentations sets the inverse link of representations to product
func linkRepresentations(product AnyProductRepresentation, representations []AnyRepresentation) {
	for _, representation := range representations {
		base := representation.AsRepresentation()
		base.ofProductRepresentation = append(base.ofProductRepresentation, product)
	}
}

// NewProductRepresentation builds a product representation of at least one representation
func NewProductRepresentation(name, description string, representations ...AnyRepresentation) (*ProductRepresentation, error) {
	if err := checkRepresentations("IfcProductRepresentation", representations); err != nil {
		return nil, err
	}

	result := &ProductRepresentation{name: name, description: description, representations: slices.Clone(representations)}
	linkRepresentations(result, representations)
	return result, nil
}

// AsProductRepresentation returns p
func (p *ProductRepresentation) AsProductRepresentation() *ProductRepresentation {
	return p
}

// EntityType returns the descriptor of IfcProductRepresentation
func (p *ProductRepresentation) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcProductRepresentation")
}

// AttributeValues returns the values in file order
func (p *ProductRepresentation) AttributeValues() []step.Value {
	return []step.Value{
		step.OptionalString(p.name),
		step.OptionalString(p.description),
		step.RefList(p.representations),
	}
}

// Representations returns the representations
func (p *ProductRepresentation) Representations() []AnyRepresentation {
	return slices.Clone(p.representations)
}

// ProductDefinitionShape is a product representation made of shape models only
type ProductDefinitionShape struct {
	ProductRepresentation
	shapeOfProduct []AnyProduct
}

// NewProductDefinitionShape builds a shape definition, representations should be shape models
func NewProductDefinitionShape(name, description string, representations ...AnyRepresentation) (*ProductDefinitionShape, error) {
	const entity = "IfcProductDefinitionShape"
	if err := checkRepresentations(entity, representations); err != nil {
		return nil, err
	}

	for index, representation := range representations {
		if _, shape := representation.(interface{ AsShapeModel() *ShapeModel }); !shape {
			return nil, invalid(entity, "representation at %d is not a shape model", index)
		}
	}

	result := &ProductDefinitionShape{}
	result.name = name
	result.description = description
	result.representations = slices.Clone(representations)
	linkRepresentations(result, representations)
	return result, nil
}

// EntityType returns the descriptor of IfcProductDefinitionShape
func (p *ProductDefinitionShape) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcProductDefinitionShape")
}

// ShapeOfProduct returns the products using this shape
func (p *ProductDefinitionShape) ShapeOfProduct() []AnyProduct {
	return slices.Clone(p.shapeOfProduct)
}
