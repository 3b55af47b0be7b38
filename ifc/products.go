package ifc

import (
	"slices"

	"github.com/zefrenchwan/ifc.git/model"
	"github.com/zefrenchwan/ifc.git/schema"
	"github.com/zefrenchwan/ifc.git/step"
)

// PROJECT is the constraint of a single project per model
const PROJECT model.Constraint = "IfcProject"

// ProjectOptions are the values of a project
type ProjectOptions struct {
	RootOptions
	// ObjectType is the optional type name
	ObjectType string
	// LongName is the optional full name of the project
	LongName string
	// Phase is the optional project phase
	Phase string
}

// Project is the context of a model: its units and representation contexts.
// A model contains at most one project.
type Project struct {
	Object
	longName string
	phase    string
	contexts []AnyRepresentationContext
	units    *UnitAssignment
}

// NewProject builds the project of a model
func NewProject(m *model.Model, history *OwnerHistory, options ProjectOptions, contexts []AnyRepresentationContext, units *UnitAssignment) (*Project, error) {
	const entity = "IfcProject"
	if len(contexts) == 0 {
		return nil, invalid(entity, "at least one representation context is expected")
	} else if units == nil {
		return nil, invalid(entity, "units in context are mandatory")
	} else if err := checkLabel(entity, "long name", options.LongName); err != nil {
		return nil, err
	} else if err := checkLabel(entity, "phase", options.Phase); err != nil {
		return nil, err
	}

	for index, context := range contexts {
		if step.IsNil(context) {
			return nil, invalid(entity, "nil representation context at %d", index)
		} else if _, sub := context.(*GeometricRepresentationSubContext); sub {
			return nil, invalid(entity, "sub contexts may not be project contexts")
		}
	}

	if m != nil {
		if err := m.CanClaim(PROJECT); err != nil {
			return nil, err
		}
	}

	object, err := newObject(m, entity, history, options.RootOptions, options.ObjectType)
	if err != nil {
		return nil, err
	} else if err := m.Claim(PROJECT); err != nil {
		m.Release(model.GLOBAL_ID, object.globalId)
		return nil, err
	}

	result := &Project{
		Object:   object,
		longName: options.LongName,
		phase:    options.Phase,
		contexts: slices.Clone(contexts),
		units:    units,
	}

	project, err := attach(m, result)
	if err != nil {
		m.Release(PROJECT)
	}

	return project, err
}

// EntityType returns the descriptor of IfcProject
func (p *Project) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcProject")
}

// AttributeValues returns the values in file order
func (p *Project) AttributeValues() []step.Value {
	return append(p.objectValues(),
		step.OptionalString(p.longName),
		step.OptionalString(p.phase),
		step.RefList(p.contexts),
		step.Ref(p.units),
	)
}

// LongName returns the full name of the project
func (p *Project) LongName() string {
	return p.longName
}

// Phase returns the project phase
func (p *Project) Phase() string {
	return p.phase
}

// RepresentationContexts returns the contexts of the project
func (p *Project) RepresentationContexts() []AnyRepresentationContext {
	return slices.Clone(p.contexts)
}

// UnitsInContext returns the units of the project
func (p *Project) UnitsInContext() *UnitAssignment {
	return p.units
}

// ProductOptions are the values of a product
type ProductOptions struct {
	RootOptions
	// ObjectType is the optional type name
	ObjectType string
	// Placement is the optional object placement
	Placement AnyObjectPlacement
	// Representation is the optional product representation
	Representation AnyProductRepresentation
}

// AnyProduct is a product or any of its subtypes
type AnyProduct interface {
	AnyObject
	// AsProduct returns the product part of the entity
	AsProduct() *Product
}

// Product is an object with a placement and a representation
type Product struct {
	Object
	placement      AnyObjectPlacement
	representation AnyProductRepresentation
}

// AsProduct returns p
func (p *Product) AsProduct() *Product {
	return p
}

// ObjectPlacement returns the placement, nil for none
func (p *Product) ObjectPlacement() AnyObjectPlacement {
	if p == nil {
		return nil
	}

	return p.placement
}

// Representation returns the representation, nil for none
func (p *Product) Representation() AnyProductRepresentation {
	if p == nil {
		return nil
	}

	return p.representation
}

func (p *Product) productValues() []step.Value {
	return append(p.objectValues(), step.Ref(p.placement), step.Ref(p.representation))
}

// checkProduct validates product values: a shape needs a placement
func checkProduct(entity string, options ProductOptions) error {
	if step.IsNil(options.Representation) {
		return nil
	} else if _, shape := options.Representation.(*ProductDefinitionShape); shape && step.IsNil(options.Placement) {
		return invalid(entity, "a product definition shape needs an object placement")
	}

	return nil
}

// newProduct validates then claims a product
func newProduct(m *model.Model, entity string, history *OwnerHistory, options ProductOptions) (Product, error) {
	if err := checkProduct(entity, options); err != nil {
		return Product{}, err
	}

	object, err := newObject(m, entity, history, options.RootOptions, options.ObjectType)
	if err != nil {
		return Product{}, err
	}

	result := Product{Object: object}
	if !step.IsNil(options.Placement) {
		result.placement = options.Placement
	}

	if !step.IsNil(options.Representation) {
		result.representation = options.Representation
	}

	return result, nil
}

// attachProduct registers a product and links its placement and shape back to it
func attachProduct[T AnyProduct](m *model.Model, product T) (T, error) {
	result, err := attach(m, product)
	if err != nil {
		return result, err
	}

	base := result.AsProduct()
	if base.placement != nil {
		placement := base.placement.AsObjectPlacement()
		placement.placesObject = append(placement.placesObject, result)
	}

	if shape, ok := base.representation.(*ProductDefinitionShape); ok {
		shape.shapeOfProduct = append(shape.shapeOfProduct, result)
	}

	return result, nil
}

// SpatialOptions are the values of a spatial structure element
type SpatialOptions struct {
	ProductOptions
	// LongName is the optional full name
	LongName string
	// CompositionType defaults to COMPOSITION_ELEMENT
	CompositionType ElementCompositionEnum
}

// AnySpatialStructureElement is a site, a building or a storey
type AnySpatialStructureElement interface {
	AnyProduct
	// AsSpatialStructureElement returns the spatial part of the entity
	AsSpatialStructureElement() *SpatialStructureElement
}

// SpatialStructureElement is the common part of sites, buildings and storeys
type SpatialStructureElement struct {
	Product
	longName         string
	compositionType  ElementCompositionEnum
	containsElements []*RelContainedInSpatialStructure
}

// AsSpatialStructureElement returns s
func (s *SpatialStructureElement) AsSpatialStructureElement() *SpatialStructureElement {
	return s
}

// LongName returns the full name
func (s *SpatialStructureElement) LongName() string {
	return s.longName
}

// CompositionType returns the composition type
func (s *SpatialStructureElement) CompositionType() ElementCompositionEnum {
	return s.compositionType
}

// ContainsElements returns the containment relations with s as structure
func (s *SpatialStructureElement) ContainsElements() []*RelContainedInSpatialStructure {
	return slices.Clone(s.containsElements)
}

// ContainedProducts returns the products contained in s, by all relations
func (s *SpatialStructureElement) ContainedProducts() []AnyProduct {
	var result []AnyProduct
	for _, relation := range s.containsElements {
		result = append(result, relation.relatedElements...)
	}

	return result
}

func (s *SpatialStructureElement) spatialValues() []step.Value {
	return append(s.productValues(), step.OptionalString(s.longName), step.Enum(s.compositionType))
}

// newSpatial validates then claims a spatial structure element
func newSpatial(m *model.Model, entity string, history *OwnerHistory, options SpatialOptions) (SpatialStructureElement, error) {
	composition := options.CompositionType
	if len(composition) == 0 {
		composition = COMPOSITION_ELEMENT
	}

	if !composition.IsValid() {
		return SpatialStructureElement{}, model.NewArgumentValueError(entity, "invalid composition type", string(composition))
	} else if err := checkLabel(entity, "long name", options.LongName); err != nil {
		return SpatialStructureElement{}, err
	}

	product, err := newProduct(m, entity, history, options.ProductOptions)
	if err != nil {
		return SpatialStructureElement{}, err
	}

	return SpatialStructureElement{
		Product:         product,
		longName:        options.LongName,
		compositionType: composition,
	}, nil
}

// SiteOptions are the values specific to a site
type SiteOptions struct {
	// RefLatitude is the compound angle degrees, minutes, seconds and optional millionth of seconds
	RefLatitude []int
	// RefLongitude is a compound angle, as latitude
	RefLongitude []int
	// RefElevation is the optional elevation above sea level
	RefElevation *float64
	// LandTitleNumber is the optional registration number
	LandTitleNumber string
}

// checkCompoundAngle validates an optional compound plane angle
func checkCompoundAngle(entity, attribute string, angle []int) error {
	if len(angle) == 0 {
		return nil
	} else if len(angle) < 3 || len(angle) > 4 {
		return invalid(entity, "%s expects 3 or 4 components", attribute)
	}

	limits := []int{360, 60, 60, 1000000}
	positive, negative := false, false
	for index, value := range angle {
		if value < -limits[index] || value >= limits[index] {
			return invalid(entity, "%s component %d out of range", attribute, index)
		} else if value > 0 {
			positive = true
		} else if value < 0 {
			negative = true
		}
	}

	if positive && negative {
		return invalid(entity, "%s components should have the same sign", attribute)
	}

	return nil
}

// Site is a spatial structure element for the ground a project is built on
type Site struct {
	SpatialStructureElement
	refLatitude     []int
	refLongitude    []int
	refElevation    *float64
	landTitleNumber string
}

// NewSite builds a site
func NewSite(m *model.Model, history *OwnerHistory, options SpatialOptions, site SiteOptions) (*Site, error) {
	const entity = "IfcSite"
	if err := checkCompoundAngle(entity, "latitude", site.RefLatitude); err != nil {
		return nil, err
	} else if err := checkCompoundAngle(entity, "longitude", site.RefLongitude); err != nil {
		return nil, err
	} else if err := checkLabel(entity, "land title number", site.LandTitleNumber); err != nil {
		return nil, err
	}

	spatial, err := newSpatial(m, entity, history, options)
	if err != nil {
		return nil, err
	}

	result := &Site{
		SpatialStructureElement: spatial,
		refLatitude:             slices.Clone(site.RefLatitude),
		refLongitude:            slices.Clone(site.RefLongitude),
		refElevation:            copyReal(site.RefElevation),
		landTitleNumber:         site.LandTitleNumber,
	}

	return attachProduct(m, result)
}

// EntityType returns the descriptor of IfcSite
func (s *Site) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcSite")
}

// AttributeValues returns the values in file order
func (s *Site) AttributeValues() []step.Value {
	return append(s.spatialValues(),
		optionalIntegers(s.refLatitude),
		optionalIntegers(s.refLongitude),
		step.OptionalReal(s.refElevation),
		step.OptionalString(s.landTitleNumber),
		step.Omitted,
	)
}

// Building is a spatial structure element for a building
type Building struct {
	SpatialStructureElement
	elevationOfRefHeight *float64
	elevationOfTerrain   *float64
}

// NewBuilding builds a building, elevations are optional
func NewBuilding(m *model.Model, history *OwnerHistory, options SpatialOptions, elevationOfRefHeight, elevationOfTerrain *float64) (*Building, error) {
	spatial, err := newSpatial(m, "IfcBuilding", history, options)
	if err != nil {
		return nil, err
	}

	result := &Building{
		SpatialStructureElement: spatial,
		elevationOfRefHeight:    copyReal(elevationOfRefHeight),
		elevationOfTerrain:      copyReal(elevationOfTerrain),
	}

	return attachProduct(m, result)
}

// EntityType returns the descriptor of IfcBuilding
func (b *Building) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcBuilding")
}

// AttributeValues returns the values in file order
func (b *Building) AttributeValues() []step.Value {
	return append(b.spatialValues(),
		step.OptionalReal(b.elevationOfRefHeight),
		step.OptionalReal(b.elevationOfTerrain),
		step.Omitted,
	)
}

// BuildingStorey is a level of a building
type BuildingStorey struct {
	SpatialStructureElement
	elevation *float64
}

// NewBuildingStorey builds a storey, elevation is optional
func NewBuildingStorey(m *model.Model, history *OwnerHistory, options SpatialOptions, elevation *float64) (*BuildingStorey, error) {
	spatial, err := newSpatial(m, "IfcBuildingStorey", history, options)
	if err != nil {
		return nil, err
	}

	result := &BuildingStorey{SpatialStructureElement: spatial, elevation: copyReal(elevation)}
	return attachProduct(m, result)
}

// EntityType returns the descriptor of IfcBuildingStorey
func (b *BuildingStorey) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcBuildingStorey")
}

// AttributeValues returns the values in file order
func (b *BuildingStorey) AttributeValues() []step.Value {
	return append(b.spatialValues(), step.OptionalReal(b.elevation))
}

// Elevation returns the storey elevation, nil for none
func (b *BuildingStorey) Elevation() *float64 {
	return copyReal(b.elevation)
}

// ElementOptions are the values of an element
type ElementOptions struct {
	ProductOptions
	// Tag is the optional instance identifier, for instance a serial number
	Tag string
}

// AnyElement is an element or any of its subtypes
type AnyElement interface {
	AnyProduct
	// AsElement returns the element part of the entity
	AsElement() *Element
}

// Element is a product that is a component of a building
type Element struct {
	Product
	tag                  string
	containedInStructure *RelContainedInSpatialStructure
}

// AsElement returns e
func (e *Element) AsElement() *Element {
	return e
}

// Tag returns the element tag
func (e *Element) Tag() string {
	return e.tag
}

// ContainedInStructure returns the containment relation of e, nil for none
func (e *Element) ContainedInStructure() *RelContainedInSpatialStructure {
	return e.containedInStructure
}

// Structure returns the spatial element containing e, nil for none
func (e *Element) Structure() AnySpatialStructureElement {
	if e.containedInStructure == nil {
		return nil
	}

	return e.containedInStructure.relatingStructure
}

func (e *Element) elementValues() []step.Value {
	return append(e.productValues(), step.OptionalString(e.tag))
}

// newElement validates then claims an element
func newElement(m *model.Model, entity string, history *OwnerHistory, options ElementOptions) (Element, error) {
	if err := checkLabel(entity, "tag", options.Tag); err != nil {
		return Element{}, err
	}

	product, err := newProduct(m, entity, history, options.ProductOptions)
	if err != nil {
		return Element{}, err
	}

	return Element{Product: product, tag: options.Tag}, nil
}

// BuildingElement is an element that is part of the building construction
type BuildingElement struct {
	Element
}

// Wall is a vertical construction bounding or subdividing spaces
type Wall struct {
	BuildingElement
}

// NewWall builds a wall
func NewWall(m *model.Model, history *OwnerHistory, options ElementOptions) (*Wall, error) {
	element, err := newElement(m, "IfcWall", history, options)
	if err != nil {
		return nil, err
	}

	return attachProduct(m, &Wall{BuildingElement{element}})
}

// EntityType returns the descriptor of IfcWall
func (w *Wall) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcWall")
}

// AttributeValues returns the values in file order
func (w *Wall) AttributeValues() []step.Value {
	return w.elementValues()
}

// WallStandardCase is a wall with a constant thickness along its path
type WallStandardCase struct {
	Wall
}

// NewWallStandardCase builds a standard case wall
func NewWallStandardCase(m *model.Model, history *OwnerHistory, options ElementOptions) (*WallStandardCase, error) {
	element, err := newElement(m, "IfcWallStandardCase", history, options)
	if err != nil {
		return nil, err
	}

	return attachProduct(m, &WallStandardCase{Wall{BuildingElement{element}}})
}

// EntityType returns the descriptor of IfcWallStandardCase
func (w *WallStandardCase) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcWallStandardCase")
}

// copyReal returns a copy of an optional real
func copyReal(value *float64) *float64 {
	if value == nil {
		return nil
	}

	result := *value
	return &result
}

// optionalIntegers returns Omitted for no value, the list of integers otherwise
func optionalIntegers(values []int) step.Value {
	if len(values) == 0 {
		return step.Omitted
	}

	return step.IntegerList(values)
}
