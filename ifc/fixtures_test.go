package ifc_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zefrenchwan/ifc.git/ifc"
	"github.com/zefrenchwan/ifc.git/model"
)

// CREATION is the creation date of test owner histories
var CREATION = time.Unix(1700000000, 0)

// newHistory returns an owner history registered in m
func newHistory(t *testing.T, m *model.Model) *ifc.OwnerHistory {
	t.Helper()

	organization, err := ifc.NewOrganization("", "Acme", "")
	require.NoError(t, err)
	person, err := ifc.NewPerson(ifc.PersonOptions{FamilyName: "Doe", GivenName: "Jane"})
	require.NoError(t, err)
	user, err := ifc.NewPersonAndOrganization(person, organization)
	require.NoError(t, err)
	application, err := ifc.NewApplication(m, organization, "1.0", "Editor", "editor")
	require.NoError(t, err)
	history, err := ifc.NewOwnerHistory(user, application, ifc.OwnerHistoryOptions{
		ChangeAction: ifc.CHANGE_ADDED,
		CreationDate: CREATION,
	})

	require.NoError(t, err)
	return history
}

// newStorey returns a storey with no placement
func newStorey(t *testing.T, m *model.Model, history *ifc.OwnerHistory, name string) *ifc.BuildingStorey {
	t.Helper()

	var options ifc.SpatialOptions
	options.Name = name
	storey, err := ifc.NewBuildingStorey(m, history, options, nil)
	require.NoError(t, err)
	return storey
}

// newWall returns a wall with no placement
func newWall(t *testing.T, m *model.Model, history *ifc.OwnerHistory, name string) *ifc.WallStandardCase {
	t.Helper()

	var options ifc.ElementOptions
	options.Name = name
	wall, err := ifc.NewWallStandardCase(m, history, options)
	require.NoError(t, err)
	return wall
}

// newContext returns a 3D model context at the origin
func newContext(t *testing.T) *ifc.GeometricRepresentationContext {
	t.Helper()

	world, err := ifc.NewAxis2Placement3DAt(0, 0, 0)
	require.NoError(t, err)
	precision := 1e-05
	context, err := ifc.NewGeometricRepresentationContext(ifc.GeometricContextOptions{
		ContextType:           "Model",
		Dimension:             3,
		Precision:             &precision,
		WorldCoordinateSystem: world,
	})

	require.NoError(t, err)
	return context
}

// newUnits returns metric units
func newUnits(t *testing.T) *ifc.UnitAssignment {
	t.Helper()

	length, err := ifc.NewSIUnit(ifc.UNIT_LENGTH, ifc.PREFIX_MILLI, ifc.SI_METRE)
	require.NoError(t, err)
	area, err := ifc.NewSIUnit(ifc.UNIT_AREA, ifc.PREFIX_NONE, ifc.SI_SQUARE_METRE)
	require.NoError(t, err)
	units, err := ifc.NewUnitAssignment(length, area)
	require.NoError(t, err)
	return units
}
