package sample

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/zefrenchwan/ifc.git/ifc"
	"github.com/zefrenchwan/ifc.git/model"
)

// Options describe the building to generate.
// Zero values are replaced by the values of DefaultOptions.
type Options struct {
	ProjectName  string
	SiteName     string
	BuildingName string
	// FamilyName and GivenName define the owning user
	FamilyName   string
	GivenName    string
	Organization string
	// Application is the owning application
	ApplicationName       string
	ApplicationVersion    string
	ApplicationIdentifier string
	// CreationDate of every owner history, now if zero
	CreationDate time.Time
	// Storeys is the number of storeys
	Storeys int
	// StoreyHeight in millimetres
	StoreyHeight float64
	// Width and Depth of the footprint, in millimetres
	Width float64
	Depth float64
	// Thickness of walls, in millimetres
	Thickness float64
}

// DefaultOptions returns a two storeys building of 10m by 6m
func DefaultOptions() Options {
	return Options{
		ProjectName:           "Sample project",
		SiteName:              "Default site",
		BuildingName:          "Default building",
		FamilyName:            "Doe",
		GivenName:             "Jane",
		Organization:          "Acme",
		ApplicationName:       "ifc sample generator",
		ApplicationVersion:    "1.0",
		ApplicationIdentifier: "ifc-sample",
		Storeys:               2,
		StoreyHeight:          3000,
		Width:                 10000,
		Depth:                 6000,
		Thickness:             200,
	}
}

// withDefaults completes options with default values
func (o Options) withDefaults() Options {
	defaults := DefaultOptions()
	fill := func(value *string, fallback string) {
		if len(*value) == 0 {
			*value = fallback
		}
	}

	fill(&o.ProjectName, defaults.ProjectName)
	fill(&o.SiteName, defaults.SiteName)
	fill(&o.BuildingName, defaults.BuildingName)
	fill(&o.Organization, defaults.Organization)
	fill(&o.ApplicationName, defaults.ApplicationName)
	fill(&o.ApplicationVersion, defaults.ApplicationVersion)
	fill(&o.ApplicationIdentifier, defaults.ApplicationIdentifier)
	if len(o.FamilyName) == 0 && len(o.GivenName) == 0 {
		o.FamilyName = defaults.FamilyName
		o.GivenName = defaults.GivenName
	}

	if o.CreationDate.IsZero() {
		o.CreationDate = time.Now().UTC().Truncate(time.Second)
	}

	if o.Storeys == 0 {
		o.Storeys = defaults.Storeys
	}

	if o.StoreyHeight == 0 {
		o.StoreyHeight = defaults.StoreyHeight
	}

	if o.Width == 0 {
		o.Width = defaults.Width
	}

	if o.Depth == 0 {
		o.Depth = defaults.Depth
	}

	if o.Thickness == 0 {
		o.Thickness = defaults.Thickness
	}

	return o
}

// Validate returns an error if a dimension is not usable
func (o Options) Validate() error {
	var errs []error
	if o.Storeys < 0 {
		errs = append(errs, fmt.Errorf("negative storeys count %d", o.Storeys))
	}

	dimensions := []struct {
		name  string
		value float64
	}{
		{"storey height", o.StoreyHeight},
		{"width", o.Width},
		{"depth", o.Depth},
		{"thickness", o.Thickness},
	}

	for _, dimension := range dimensions {
		if value := dimension.value; math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
			errs = append(errs, fmt.Errorf("invalid %s %v", dimension.name, value))
		}
	}

	if o.Thickness >= o.Width || o.Thickness >= o.Depth {
		errs = append(errs, errors.New("walls are thicker than the building"))
	}

	return errors.Join(errs...)
}

// Building is the result of Build
type Building struct {
	Project  *ifc.Project
	Site     *ifc.Site
	Building *ifc.Building
	Storeys  []*ifc.BuildingStorey
	// Walls per storey
	Walls [][]*ifc.WallStandardCase
	// Roots are all the created rooted entities, in creation order
	Roots []ifc.AnyRoot
}

// builder keeps the shared entities during a build
type builder struct {
	m        *model.Model
	options  Options
	history  *ifc.OwnerHistory
	axis     *ifc.GeometricRepresentationSubContext
	body     *ifc.GeometricRepresentationSubContext
	result   *Building
	sequence int
}

// keep appends a root to the result
func (b *builder) keep(root ifc.AnyRoot) {
	b.result.Roots = append(b.result.Roots, root)
}

// Build fills m with a project, its site, one building, its storeys, four walls per storey and their properties.
// On error, m may contain the part of the building created before the failure.
func Build(m *model.Model, options Options) (*Building, error) {
	if m == nil {
		return nil, errors.New("nil model")
	}

	options = options.withDefaults()
	if err := options.Validate(); err != nil {
		return nil, err
	}

	b := &builder{m: m, options: options, result: new(Building)}
	if err := b.build(); err != nil {
		m.Logger().Errorw("sample build failed", "model", m.Id, "error", err)
		return nil, err
	}

	m.Logger().Infow("sample built", "model", m.Id, "storeys", len(b.result.Storeys), "roots", len(b.result.Roots))
	return b.result, nil
}

// build creates every entity, top down
func (b *builder) build() error {
	if err := b.buildHistory(); err != nil {
		return err
	}

	contexts, units, err := b.buildContexts()
	if err != nil {
		return err
	}

	var project ifc.ProjectOptions
	project.Name = b.options.ProjectName
	project.Phase = "Design"
	if b.result.Project, err = ifc.NewProject(b.m, b.history, project, contexts, units); err != nil {
		return err
	}

	b.keep(b.result.Project)

	sitePlacement, err := b.placement(nil, 0, 0, 0, nil)
	if err != nil {
		return err
	}

	var site ifc.SpatialOptions
	site.Name = b.options.SiteName
	site.Placement = sitePlacement
	if b.result.Site, err = ifc.NewSite(b.m, b.history, site, ifc.SiteOptions{}); err != nil {
		return err
	}

	b.keep(b.result.Site)

	buildingPlacement, err := b.placement(sitePlacement, 0, 0, 0, nil)
	if err != nil {
		return err
	}

	var building ifc.SpatialOptions
	building.Name = b.options.BuildingName
	building.Placement = buildingPlacement
	if b.result.Building, err = ifc.NewBuilding(b.m, b.history, building, nil, nil); err != nil {
		return err
	}

	b.keep(b.result.Building)
	if err = b.aggregate("ProjectContainer", b.result.Project, b.result.Site); err != nil {
		return err
	} else if err = b.aggregate("SiteContainer", b.result.Site, b.result.Building); err != nil {
		return err
	}

	storeys := make([]ifc.AnyObjectDefinition, 0, b.options.Storeys)
	for level := range b.options.Storeys {
		storey, err := b.buildStorey(buildingPlacement, level)
		if err != nil {
			return err
		}

		storeys = append(storeys, storey)
	}

	return b.aggregate("BuildingContainer", b.result.Building, storeys...)
}

// aggregate links parts to their whole
func (b *builder) aggregate(name string, whole ifc.AnyObjectDefinition, parts ...ifc.AnyObjectDefinition) error {
	relation, err := ifc.NewRelAggregates(b.m, b.history, ifc.RootOptions{Name: name}, whole, parts)
	if err != nil {
		return err
	}

	b.keep(relation)
	return nil
}

// buildHistory creates the owner history shared by every root
func (b *builder) buildHistory() error {
	organization, err := ifc.NewOrganization("", b.options.Organization, "")
	if err != nil {
		return err
	}

	person, err := ifc.NewPerson(ifc.PersonOptions{FamilyName: b.options.FamilyName, GivenName: b.options.GivenName})
	if err != nil {
		return err
	}

	user, err := ifc.NewPersonAndOrganization(person, organization)
	if err != nil {
		return err
	}

	application, err := ifc.NewApplication(b.m, organization, b.options.ApplicationVersion,
		b.options.ApplicationName, b.options.ApplicationIdentifier)
	if err != nil {
		return err
	}

	b.history, err = ifc.NewOwnerHistory(user, application, ifc.OwnerHistoryOptions{
		ChangeAction: ifc.CHANGE_ADDED,
		CreationDate: b.options.CreationDate,
	})

	return err
}

// buildContexts creates the model context, its axis and body sub contexts, and the units
func (b *builder) buildContexts() ([]ifc.AnyRepresentationContext, *ifc.UnitAssignment, error) {
	world, err := ifc.NewAxis2Placement3DAt(0, 0, 0)
	if err != nil {
		return nil, nil, err
	}

	precision := 1e-05
	context, err := ifc.NewGeometricRepresentationContext(ifc.GeometricContextOptions{
		ContextType:           "Model",
		Dimension:             3,
		Precision:             &precision,
		WorldCoordinateSystem: world,
	})

	if err != nil {
		return nil, nil, err
	}

	b.axis, err = ifc.NewGeometricRepresentationSubContext(context, ifc.SubContextOptions{
		Identifier:  "Axis",
		ContextType: "Model",
		TargetView:  ifc.VIEW_GRAPH,
	})

	if err != nil {
		return nil, nil, err
	}

	b.body, err = ifc.NewGeometricRepresentationSubContext(context, ifc.SubContextOptions{
		Identifier:  "Body",
		ContextType: "Model",
		TargetView:  ifc.VIEW_MODEL,
	})

	if err != nil {
		return nil, nil, err
	}

	var units []ifc.AnyUnit
	for _, definition := range []struct {
		unitType ifc.UnitEnum
		prefix   ifc.SIPrefix
		name     ifc.SIUnitName
	}{
		{ifc.UNIT_LENGTH, ifc.PREFIX_MILLI, ifc.SI_METRE},
		{ifc.UNIT_AREA, ifc.PREFIX_NONE, ifc.SI_SQUARE_METRE},
		{ifc.UNIT_VOLUME, ifc.PREFIX_NONE, ifc.SI_CUBIC_METRE},
	} {
		unit, err := ifc.NewSIUnit(definition.unitType, definition.prefix, definition.name)
		if err != nil {
			return nil, nil, err
		}

		units = append(units, unit)
	}

	assignment, err := ifc.NewUnitAssignment(units...)
	if err != nil {
		return nil, nil, err
	}

	return []ifc.AnyRepresentationContext{context}, assignment, nil
}

// placement returns a local placement at (x,y,z) relative to parent.
// Direction is the local x axis, nil for the parent one.
func (b *builder) placement(parent *ifc.LocalPlacement, x, y, z float64, direction []float64) (*ifc.LocalPlacement, error) {
	var axis []float64
	if direction != nil {
		axis = []float64{0, 0, 1}
	}

	relative, err := ifc.NewAxis2Placement3DFromVectors([]float64{x, y, z}, axis, direction)
	if err != nil {
		return nil, err
	}

	return ifc.NewLocalPlacement(parent, relative)
}

// buildStorey creates a storey at level, its walls and their containment
func (b *builder) buildStorey(parent *ifc.LocalPlacement, level int) (*ifc.BuildingStorey, error) {
	elevation := float64(level) * b.options.StoreyHeight
	placement, err := b.placement(parent, 0, 0, elevation, nil)
	if err != nil {
		return nil, err
	}

	var options ifc.SpatialOptions
	options.Name = fmt.Sprintf("Level %d", level)
	options.Placement = placement
	storey, err := ifc.NewBuildingStorey(b.m, b.history, options, &elevation)
	if err != nil {
		return nil, err
	}

	b.keep(storey)
	b.result.Storeys = append(b.result.Storeys, storey)

	width, depth := b.options.Width, b.options.Depth
	sides := []struct {
		name   string
		x, y   float64
		dx, dy float64
		length float64
	}{
		{"South", 0, 0, 1, 0, width},
		{"East", width, 0, 0, 1, depth},
		{"North", width, depth, -1, 0, width},
		{"West", 0, depth, 0, -1, depth},
	}

	walls := make([]*ifc.WallStandardCase, 0, len(sides))
	products := make([]ifc.AnyProduct, 0, len(sides))
	for _, side := range sides {
		direction := []float64{side.dx, side.dy, 0}
		wall, err := b.buildWall(placement, fmt.Sprintf("%s %s", options.Name, side.name), side.x, side.y, direction, side.length)
		if err != nil {
			return nil, err
		}

		walls = append(walls, wall)
		products = append(products, wall)
	}

	b.result.Walls = append(b.result.Walls, walls)
	containment, err := ifc.NewRelContainedInSpatialStructure(b.m, b.history, ifc.RootOptions{Name: "StoreyContainer"}, products, storey)
	if err != nil {
		return nil, err
	}

	b.keep(containment)
	return storey, nil
}

// buildWall creates a wall along direction, its shape and its common property set
func (b *builder) buildWall(parent *ifc.LocalPlacement, name string, x, y float64, direction []float64, length float64) (*ifc.WallStandardCase, error) {
	placement, err := b.placement(parent, x, y, 0, direction)
	if err != nil {
		return nil, err
	}

	shape, err := b.wallShape(length)
	if err != nil {
		return nil, err
	}

	b.sequence++
	tag := fmt.Sprintf("W-%03d", b.sequence)

	var options ifc.ElementOptions
	options.Name = name
	options.ObjectType = "Standard"
	options.Placement = placement
	options.Representation = shape
	options.Tag = tag
	wall, err := ifc.NewWallStandardCase(b.m, b.history, options)
	if err != nil {
		return nil, err
	}

	b.keep(wall)

	reference, err := ifc.NewPropertySingleValue("Reference", "", ifc.Identifier(tag), nil)
	if err != nil {
		return nil, err
	}

	external, err := ifc.NewPropertySingleValue("IsExternal", "", ifc.Boolean(true), nil)
	if err != nil {
		return nil, err
	}

	loadBearing, err := ifc.NewPropertySingleValue("LoadBearing", "", ifc.Boolean(true), nil)
	if err != nil {
		return nil, err
	}

	properties := []ifc.AnyProperty{reference, external, loadBearing}
	set, err := ifc.NewPropertySet(b.m, b.history, ifc.RootOptions{Name: "Pset_WallCommon"}, properties)
	if err != nil {
		return nil, err
	}

	b.keep(set)
	definition, err := ifc.NewRelDefinesByProperties(b.m, b.history, ifc.RootOptions{}, []ifc.AnyObject{wall}, set)
	if err != nil {
		return nil, err
	}

	b.keep(definition)
	return wall, nil
}

// wallShape returns the axis and footprint of a wall of length, in its local coordinates
func (b *builder) wallShape(length float64) (*ifc.ProductDefinitionShape, error) {
	start, err := ifc.NewCartesianPoint(0, 0)
	if err != nil {
		return nil, err
	}

	end, err := ifc.NewCartesianPoint(length, 0)
	if err != nil {
		return nil, err
	}

	line, err := ifc.NewPolyline(start, end)
	if err != nil {
		return nil, err
	}

	axis, err := ifc.NewShapeRepresentation(b.axis, "Axis", "Curve2D", line)
	if err != nil {
		return nil, err
	}

	half := b.options.Thickness / 2
	var corners []*ifc.CartesianPoint
	for _, corner := range [][]float64{{0, -half, 0}, {length, -half, 0}, {length, half, 0}, {0, half, 0}} {
		point, err := ifc.NewCartesianPoint(corner...)
		if err != nil {
			return nil, err
		}

		corners = append(corners, point)
	}

	footprint, err := ifc.NewPolyline(append(corners, corners[0])...)
	if err != nil {
		return nil, err
	}

	body, err := ifc.NewShapeRepresentation(b.body, "Body", "Curve3D", footprint)
	if err != nil {
		return nil, err
	}

	return ifc.NewProductDefinitionShape("", "", axis, body)
}
