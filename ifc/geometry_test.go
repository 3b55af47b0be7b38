package ifc_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zefrenchwan/ifc.git/ifc"
	"github.com/zefrenchwan/ifc.git/model"
	"github.com/zefrenchwan/ifc.git/step"
)

func TestVectors(t *testing.T) {
	t.Parallel()

	cross, err := ifc.CrossProduct([]float64{1, 0, 0}, []float64{0, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1}, cross)

	_, err = ifc.CrossProduct([]float64{1, 0}, []float64{0, 1})
	assert.Error(t, err)

	normalized, err := ifc.Normalize([]float64{3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 0.6, normalized[0], 1e-12)
	assert.InDelta(t, 0.8, normalized[1], 1e-12)

	_, err = ifc.Normalize([]float64{0, 0, 0})
	assert.ErrorIs(t, err, ifc.ErrZeroVector)
	assert.Equal(t, 5.0, ifc.Magnitude([]float64{3, 4}))
}

func TestPointsAndDirections(t *testing.T) {
	t.Parallel()

	_, err := ifc.NewCartesianPoint(1)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	_, err = ifc.NewCartesianPoint(1, 2, 3, 4)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	_, err = ifc.NewCartesianPoint(1, math.NaN())
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	_, err = ifc.NewDirection(0, 0, 0)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	point, err := ifc.NewCartesianPoint(0, 1.5, -3000)
	require.NoError(t, err)
	instances, err := step.Serialize(nil, point)
	require.NoError(t, err)
	assert.Equal(t, "#1=IFCCARTESIANPOINT((0.,1.5,-3000.));", instances[0].String())
}

func TestAxisPlacements(t *testing.T) {
	t.Parallel()

	origin, err := ifc.NewCartesianPoint(0, 0, 0)
	require.NoError(t, err)
	flat, err := ifc.NewCartesianPoint(0, 0)
	require.NoError(t, err)
	z, err := ifc.NewDirection(0, 0, 1)
	require.NoError(t, err)
	x, err := ifc.NewDirection(1, 0, 0)
	require.NoError(t, err)
	down, err := ifc.NewDirection(0, 0, -2)
	require.NoError(t, err)

	_, err = ifc.NewAxis2Placement3D(origin, z, nil)
	assert.ErrorIs(t, err, model.ErrInvalidArgument, "axis and reference direction go together")
	_, err = ifc.NewAxis2Placement3D(origin, z, down)
	assert.ErrorIs(t, err, model.ErrInvalidArgument, "parallel axes")
	_, err = ifc.NewAxis2Placement3D(flat, nil, nil)
	assert.ErrorIs(t, err, model.ErrInvalidArgument, "2D location")
	_, err = ifc.NewAxis2Placement2D(origin, nil)
	assert.ErrorIs(t, err, model.ErrInvalidArgument, "3D location")

	placement, err := ifc.NewAxis2Placement3D(origin, z, x)
	require.NoError(t, err)
	instances, err := step.Serialize(nil, placement)
	require.NoError(t, err)
	require.Len(t, instances, 4)
	assert.Equal(t, "#1=IFCAXIS2PLACEMENT3D(#2,#3,#4);", instances[0].String())
	assert.Equal(t, "#3=IFCDIRECTION((0.,0.,1.));", instances[2].String())

	local, err := ifc.NewLocalPlacement(nil, placement)
	require.NoError(t, err)
	relative, err := ifc.NewLocalPlacement(local, placement)
	require.NoError(t, err)
	assert.Equal(t, []*ifc.LocalPlacement{relative}, local.ReferencedByPlacements())

	planar, err := ifc.NewAxis2Placement2D(flat, nil)
	require.NoError(t, err)
	_, err = ifc.NewLocalPlacement(local, planar)
	assert.ErrorIs(t, err, model.ErrInvalidArgument, "dimensions differ")
	_, err = ifc.NewLocalPlacement(nil, nil)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestPolyline(t *testing.T) {
	t.Parallel()

	start, err := ifc.NewCartesianPoint(0, 0)
	require.NoError(t, err)
	end, err := ifc.NewCartesianPoint(0, 0, 0)
	require.NoError(t, err)

	_, err = ifc.NewPolyline(start)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	_, err = ifc.NewPolyline(start, end)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	// the same point object is written once
	line, err := ifc.NewPolyline(start, start)
	require.NoError(t, err)
	instances, err := step.Serialize(nil, line)
	require.NoError(t, err)
	assert.Equal(t, "#1=IFCPOLYLINE((#2,#2));", instances[0].String())
	assert.Len(t, instances, 2)
}

func TestSubContextDerivedPositions(t *testing.T) {
	t.Parallel()

	parent := newContext(t)
	sub, err := ifc.NewGeometricRepresentationSubContext(parent, ifc.SubContextOptions{
		Identifier:  "Body",
		ContextType: "Model",
		TargetView:  ifc.VIEW_MODEL,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, sub.CoordinateSpaceDimension())
	assert.Equal(t, []*ifc.GeometricRepresentationSubContext{sub}, parent.HasSubContexts())

	instances, err := step.Serialize(nil, sub)
	require.NoError(t, err)
	require.Len(t, instances, 4)
	assert.Equal(t, "#1=IFCGEOMETRICREPRESENTATIONSUBCONTEXT('Body','Model',*,*,*,*,#2,$,.MODEL_VIEW.,$);", instances[0].String())
	assert.Equal(t, "#2=IFCGEOMETRICREPRESENTATIONCONTEXT($,'Model',3,1.E-05,#3,$);", instances[1].String())
	assert.Equal(t, "#3=IFCAXIS2PLACEMENT3D(#4,$,$);", instances[2].String())
	assert.Equal(t, "#4=IFCCARTESIANPOINT((0.,0.,0.));", instances[3].String())

	_, err = ifc.NewGeometricRepresentationSubContext(parent, ifc.SubContextOptions{TargetView: ifc.VIEW_USERDEFINED})
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	_, err = ifc.NewGeometricRepresentationSubContext(nil, ifc.SubContextOptions{TargetView: ifc.VIEW_PLAN})
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestShapeRepresentationContext(t *testing.T) {
	t.Parallel()

	start, err := ifc.NewCartesianPoint(0, 0)
	require.NoError(t, err)
	end, err := ifc.NewCartesianPoint(1, 0)
	require.NoError(t, err)
	line, err := ifc.NewPolyline(start, end)
	require.NoError(t, err)

	plain := &ifc.RepresentationContext{}
	_, err = ifc.NewShapeRepresentation(plain, "Axis", "Curve2D", line)
	assert.ErrorIs(t, err, model.ErrInvalidArgument, "shapes need a geometric context")
	_, err = ifc.NewShapeRepresentation(newContext(t), "Axis", "", line)
	assert.ErrorIs(t, err, model.ErrInvalidArgument, "representation type is mandatory")
	_, err = ifc.NewShapeRepresentation(newContext(t), "Axis", "Curve2D")
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	sub, err := ifc.NewGeometricRepresentationSubContext(newContext(t), ifc.SubContextOptions{TargetView: ifc.VIEW_GRAPH})
	require.NoError(t, err)
	shape, err := ifc.NewShapeRepresentation(sub, "Axis", "Curve2D", line)
	require.NoError(t, err)
	assert.Equal(t, ifc.AnyRepresentationContext(sub), shape.ContextOfItems())
}

func TestUnits(t *testing.T) {
	t.Parallel()

	_, err := ifc.NewSIUnit(ifc.UNIT_AREA, ifc.PREFIX_NONE, ifc.SI_METRE)
	assert.ErrorIs(t, err, model.ErrInvalidArgument, "metre does not measure areas")
	_, err = ifc.NewSIUnit(ifc.UNIT_LENGTH, "GIGA", ifc.SI_METRE)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	millimetre, err := ifc.NewSIUnit(ifc.UNIT_LENGTH, ifc.PREFIX_MILLI, ifc.SI_METRE)
	require.NoError(t, err)
	metre, err := ifc.NewSIUnit(ifc.UNIT_LENGTH, ifc.PREFIX_NONE, ifc.SI_METRE)
	require.NoError(t, err)

	_, err = ifc.NewUnitAssignment(millimetre, metre)
	assert.ErrorIs(t, err, model.ErrInvalidArgument, "one unit per type")
	_, err = ifc.NewUnitAssignment()
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	units, err := ifc.NewUnitAssignment(millimetre)
	require.NoError(t, err)
	assert.Equal(t, ifc.AnyUnit(millimetre), units.Unit(ifc.UNIT_LENGTH))
	assert.Nil(t, units.Unit(ifc.UNIT_TIME))

	instances, err := step.Serialize(nil, units)
	require.NoError(t, err)
	assert.Equal(t, "#1=IFCUNITASSIGNMENT((#2));", instances[0].String())
	assert.Equal(t, "#2=IFCSIUNIT(*,.LENGTHUNIT.,.MILLI.,.METRE.);", instances[1].String())
}

func TestAxisPlacementFromVectors(t *testing.T) {
	t.Parallel()

	placement, err := ifc.NewAxis2Placement3DFromVectors([]float64{1, 2, 3}, []float64{0, 0, 5}, []float64{0, -2, 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1}, placement.Axis().DirectionRatios())
	assert.Equal(t, []float64{0, -1, 0}, placement.RefDirection().DirectionRatios())
	assert.Equal(t, []float64{1, 2, 3}, placement.Location().Coordinates())

	standard, err := ifc.NewAxis2Placement3DFromVectors([]float64{0, 0, 0}, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, standard.Axis())

	_, err = ifc.NewAxis2Placement3DFromVectors([]float64{0, 0, 0}, []float64{0, 0, 1}, nil)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	_, err = ifc.NewAxis2Placement3DFromVectors([]float64{0, 0, 0}, []float64{0, 0, 1}, []float64{0, 0, 3})
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}
