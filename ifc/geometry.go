package ifc

import (
	"errors"
	"math"
	"slices"

	"github.com/zefrenchwan/ifc.git/model"
	"github.com/zefrenchwan/ifc.git/schema"
	"github.com/zefrenchwan/ifc.git/step"
)

// ErrZeroVector is raised when a direction has no magnitude
var ErrZeroVector = errors.New("zero vector")

// AnyRepresentationItem is a geometric item of a representation
type AnyRepresentationItem interface {
	step.Entity
	// AsRepresentationItem returns the item part of the entity
	AsRepresentationItem() *RepresentationItem
}

// RepresentationItem is the common part of representation items
type RepresentationItem struct{}

// AsRepresentationItem returns r
func (r *RepresentationItem) AsRepresentationItem() *RepresentationItem {
	return r
}

// GeometricRepresentationItem is a representation item with geometric meaning
type GeometricRepresentationItem struct {
	RepresentationItem
}

// Point is the common part of points
type Point struct {
	GeometricRepresentationItem
}

// CartesianPoint is a point defined by its 2 or 3 coordinates
type CartesianPoint struct {
	Point
	coordinates []float64
}

// checkVector validates the size and values of coordinates
func checkVector(entity string, values []float64) error {
	if len(values) < 2 || len(values) > 3 {
		return invalid(entity, "expecting 2 or 3 values, got %d", len(values))
	}

	for index, value := range values {
		if !isFinite(value) {
			return invalid(entity, "value at %d is not finite", index)
		}
	}

	return nil
}

// NewCartesianPoint builds a point from its coordinates
func NewCartesianPoint(coordinates ...float64) (*CartesianPoint, error) {
	if err := checkVector("IfcCartesianPoint", coordinates); err != nil {
		return nil, err
	}

	return &CartesianPoint{coordinates: slices.Clone(coordinates)}, nil
}

// EntityType returns the descriptor of IfcCartesianPoint
func (c *CartesianPoint) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcCartesianPoint")
}

// AttributeValues returns the values in file order
func (c *CartesianPoint) AttributeValues() []step.Value {
	return []step.Value{step.RealList(c.coordinates)}
}

// Coordinates returns a copy of the coordinates
func (c *CartesianPoint) Coordinates() []float64 {
	return slices.Clone(c.coordinates)
}

// Dim returns the space dimension of the point
func (c *CartesianPoint) Dim() int {
	return len(c.coordinates)
}

// Direction is a vector defined by 2 or 3 ratios, not all zero
type Direction struct {
	GeometricRepresentationItem
	ratios []float64
}

// NewDirection builds a direction
func NewDirection(ratios ...float64) (*Direction, error) {
	const entity = "IfcDirection"
	if err := checkVector(entity, ratios); err != nil {
		return nil, err
	} else if Magnitude(ratios) == 0 {
		return nil, invalid(entity, "direction should not be a zero vector")
	}

	return &Direction{ratios: slices.Clone(ratios)}, nil
}

// EntityType returns the descriptor of IfcDirection
func (d *Direction) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcDirection")
}

// AttributeValues returns the values in file order
func (d *Direction) AttributeValues() []step.Value {
	return []step.Value{step.RealList(d.ratios)}
}

// DirectionRatios returns a copy of the ratios
func (d *Direction) DirectionRatios() []float64 {
	return slices.Clone(d.ratios)
}

// Dim returns the space dimension of the direction
func (d *Direction) Dim() int {
	return len(d.ratios)
}

// Magnitude returns the euclidean norm of a vector
func Magnitude(vector []float64) float64 {
	var sum float64
	for _, value := range vector {
		sum += value * value
	}

	return math.Sqrt(sum)
}

// Normalize returns the unit vector of a vector
func Normalize(vector []float64) ([]float64, error) {
	magnitude := Magnitude(vector)
	if magnitude == 0 || !isFinite(magnitude) {
		return nil, ErrZeroVector
	}

	result := make([]float64, len(vector))
	for index, value := range vector {
		result[index] = value / magnitude
	}

	return result, nil
}

// CrossProduct returns the cross product of two 3D vectors
func CrossProduct(a, b []float64) ([]float64, error) {
	if len(a) != 3 || len(b) != 3 {
		return nil, errors.New("cross product expects 3D vectors")
	}

	return []float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}, nil
}

// Curve is the common part of curves
type Curve struct {
	GeometricRepresentationItem
}

// BoundedCurve is a curve with finite length
type BoundedCurve struct {
	Curve
}

// Polyline is a bounded curve of straight segments
type Polyline struct {
	BoundedCurve
	points []*CartesianPoint
}

// NewPolyline builds a polyline of at least two points, all with the same dimension
func NewPolyline(points ...*CartesianPoint) (*Polyline, error) {
	const entity = "IfcPolyline"
	if len(points) < 2 {
		return nil, invalid(entity, "at least two points are expected")
	}

	for index, point := range points {
		if point == nil {
			return nil, invalid(entity, "nil point at %d", index)
		} else if point.Dim() != points[0].Dim() {
			return nil, invalid(entity, "point at %d has dimension %d, expecting %d", index, point.Dim(), points[0].Dim())
		}
	}

	return &Polyline{points: slices.Clone(points)}, nil
}

// EntityType returns the descriptor of IfcPolyline
func (p *Polyline) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcPolyline")
}

// AttributeValues returns the values in file order
func (p *Polyline) AttributeValues() []step.Value {
	return []step.Value{step.RefList(p.points)}
}

// Points returns the points of the polyline
func (p *Polyline) Points() []*CartesianPoint {
	return slices.Clone(p.points)
}

// AnyAxis2Placement is a 2D or 3D axis placement
type AnyAxis2Placement interface {
	AnyRepresentationItem
	// AsPlacement returns the placement part of the entity
	AsPlacement() *Placement
	// Dim returns the space dimension
	Dim() int
}

// Placement is the common part of placements: a location
type Placement struct {
	GeometricRepresentationItem
	location *CartesianPoint
}

// AsPlacement returns p
func (p *Placement) AsPlacement() *Placement {
	return p
}

// Location returns the origin of the placement
func (p *Placement) Location() *CartesianPoint {
	return p.location
}

// Dim returns the dimension of the location
func (p *Placement) Dim() int {
	return p.location.Dim()
}

// Axis2Placement2D is a location with an optional x axis direction
type Axis2Placement2D struct {
	Placement
	refDirection *Direction
}

// NewAxis2Placement2D builds a 2D placement, reference direction is optional
func NewAxis2Placement2D(location *CartesianPoint, refDirection *Direction) (*Axis2Placement2D, error) {
	const entity = "IfcAxis2Placement2D"
	if location == nil {
		return nil, invalid(entity, "location is mandatory")
	} else if location.Dim() != 2 {
		return nil, invalid(entity, "location should be 2D")
	} else if refDirection != nil && refDirection.Dim() != 2 {
		return nil, invalid(entity, "reference direction should be 2D")
	}

	return &Axis2Placement2D{Placement: Placement{location: location}, refDirection: refDirection}, nil
}

// EntityType returns the descriptor of IfcAxis2Placement2D
func (a *Axis2Placement2D) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcAxis2Placement2D")
}

// AttributeValues returns the values in file order
func (a *Axis2Placement2D) AttributeValues() []step.Value {
	return []step.Value{step.Ref(a.location), step.Ref(a.refDirection)}
}

// Axis2Placement3D is a location with optional z and x axis directions.
// Axis and reference direction are both set or both omitted, and not parallel.
type Axis2Placement3D struct {
	Placement
	axis         *Direction
	refDirection *Direction
}

// NewAxis2Placement3D builds a 3D placement
func NewAxis2Placement3D(location *CartesianPoint, axis, refDirection *Direction) (*Axis2Placement3D, error) {
	const entity = "IfcAxis2Placement3D"
	if location == nil {
		return nil, invalid(entity, "location is mandatory")
	} else if location.Dim() != 3 {
		return nil, invalid(entity, "location should be 3D")
	} else if (axis == nil) != (refDirection == nil) {
		return nil, invalid(entity, "axis and reference direction are both set or both omitted")
	}

	if axis != nil {
		if axis.Dim() != 3 || refDirection.Dim() != 3 {
			return nil, invalid(entity, "axis and reference direction should be 3D")
		} else if cross, err := CrossProduct(axis.ratios, refDirection.ratios); err != nil {
			return nil, model.NewArgumentError(entity, err.Error())
		} else if Magnitude(cross) == 0 {
			return nil, invalid(entity, "axis and reference direction should not be parallel")
		}
	}

	return &Axis2Placement3D{Placement: Placement{location: location}, axis: axis, refDirection: refDirection}, nil
}

// NewAxis2Placement3DAt builds a 3D placement at a location with default axes
func NewAxis2Placement3DAt(x, y, z float64) (*Axis2Placement3D, error) {
	location, err := NewCartesianPoint(x, y, z)
	if err != nil {
		return nil, err
	}

	return NewAxis2Placement3D(location, nil, nil)
}

// NewAxis2Placement3DFromVectors builds a 3D placement from raw vectors, axes are normalized.
// Nil axis and reference direction mean default axes.
func NewAxis2Placement3DFromVectors(location, axis, refDirection []float64) (*Axis2Placement3D, error) {
	point, err := NewCartesianPoint(location...)
	if err != nil {
		return nil, err
	} else if axis == nil && refDirection == nil {
		return NewAxis2Placement3D(point, nil, nil)
	}

	directions := make([]*Direction, 0, 2)
	for _, vector := range [][]float64{axis, refDirection} {
		normalized, err := Normalize(vector)
		if err != nil {
			return nil, model.NewArgumentError("IfcAxis2Placement3D", err.Error())
		}

		direction, err := NewDirection(normalized...)
		if err != nil {
			return nil, err
		}

		directions = append(directions, direction)
	}

	return NewAxis2Placement3D(point, directions[0], directions[1])
}

// EntityType returns the descriptor of IfcAxis2Placement3D
func (a *Axis2Placement3D) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcAxis2Placement3D")
}

// AttributeValues returns the values in file order
func (a *Axis2Placement3D) AttributeValues() []step.Value {
	return []step.Value{step.Ref(a.location), step.Ref(a.axis), step.Ref(a.refDirection)}
}

// Axis returns the z axis, nil for default
func (a *Axis2Placement3D) Axis() *Direction {
	return a.axis
}

// RefDirection returns the x axis, nil for default
func (a *Axis2Placement3D) RefDirection() *Direction {
	return a.refDirection
}

// AnyObjectPlacement is the placement of a product
type AnyObjectPlacement interface {
	step.Entity
	// AsObjectPlacement returns the placement part of the entity
	AsObjectPlacement() *ObjectPlacement
}

// ObjectPlacement is the common part of object placements
type ObjectPlacement struct {
	placesObject           []AnyProduct
	referencedByPlacements []*LocalPlacement
}

// AsObjectPlacement returns o
func (o *ObjectPlacement) AsObjectPlacement() *ObjectPlacement {
	return o
}

// PlacesObject returns the products using this placement
func (o *ObjectPlacement) PlacesObject() []AnyProduct {
	return slices.Clone(o.placesObject)
}

// ReferencedByPlacements returns the placements relative to this one
func (o *ObjectPlacement) ReferencedByPlacements() []*LocalPlacement {
	return slices.Clone(o.referencedByPlacements)
}

// LocalPlacement is a placement relative to another one, or to the world coordinate system
type LocalPlacement struct {
	ObjectPlacement
	relativeTo *LocalPlacement
	relative   AnyAxis2Placement
}

// NewLocalPlacement builds a placement, relativeTo is optional.
// When set, both placements have the same dimension.
func NewLocalPlacement(relativeTo *LocalPlacement, relative AnyAxis2Placement) (*LocalPlacement, error) {
	const entity = "IfcLocalPlacement"
	if step.IsNil(relative) {
		return nil, invalid(entity, "relative placement is mandatory")
	} else if relativeTo != nil && relativeTo.relative.Dim() != relative.Dim() {
		return nil, invalid(entity, "relative placement dimension differs from the placement it is relative to")
	}

	result := &LocalPlacement{relativeTo: relativeTo, relative: relative}
	if relativeTo != nil {
		relativeTo.referencedByPlacements = append(relativeTo.referencedByPlacements, result)
	}

	return result, nil
}

// EntityType returns the descriptor of IfcLocalPlacement
func (l *LocalPlacement) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcLocalPlacement")
}

// AttributeValues returns the values in file order
func (l *LocalPlacement) AttributeValues() []step.Value {
	return []step.Value{step.Ref(l.relativeTo), step.Ref(l.relative)}
}

// PlacementRelTo returns the placement l is relative to, nil for the world
func (l *LocalPlacement) PlacementRelTo() *LocalPlacement {
	return l.relativeTo
}

// RelativePlacement returns the axis placement
func (l *LocalPlacement) RelativePlacement() AnyAxis2Placement {
	return l.relative
}
