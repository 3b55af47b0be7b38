package ifc_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zefrenchwan/ifc.git/ifc"
	"github.com/zefrenchwan/ifc.git/model"
)

// countGlobalId returns the number of serialized instances carrying globalId
func countGlobalId(t *testing.T, m *model.Model, globalId string) int {
	t.Helper()

	instances, err := ifc.Serialize(m, nil)
	require.NoError(t, err)

	count := 0
	for _, instance := range instances {
		if strings.Contains(instance.Attributes, "'"+globalId+"'") {
			count++
		}
	}

	return count
}

func TestUnregisteredContainedWallKeepsItsId(t *testing.T) {
	t.Parallel()

	m := model.NewModel("test")
	history := newHistory(t, m)
	storey := newStorey(t, m, history, "storey")
	wall := newWall(t, m, history, "wall")
	_, err := ifc.NewRelContainedInSpatialStructure(m, history, ifc.RootOptions{}, []ifc.AnyProduct{wall}, storey)
	require.NoError(t, err)

	require.True(t, m.Unregister(wall.GlobalId()))

	var options ifc.ElementOptions
	options.GlobalId = wall.GlobalId()
	options.Name = "clone"
	_, err = ifc.NewWallStandardCase(m, history, options)
	assert.ErrorIs(t, err, model.ErrUniqueness)
	assert.Equal(t, 1, countGlobalId(t, m, wall.GlobalId()))
}

func TestRemoveLinkedEntities(t *testing.T) {
	t.Parallel()

	m := model.NewModel("test")
	history := newHistory(t, m)
	storey := newStorey(t, m, history, "storey")
	wall := newWall(t, m, history, "wall")
	relation, err := ifc.NewRelContainedInSpatialStructure(m, history, ifc.RootOptions{}, []ifc.AnyProduct{wall}, storey)
	require.NoError(t, err)

	// relationship refers to both
	assert.ErrorIs(t, ifc.Remove(wall), model.ErrInvalidArgument)
	assert.ErrorIs(t, ifc.Remove(storey), model.ErrInvalidArgument)
	assert.True(t, m.Contains(model.GLOBAL_ID, wall.GlobalId()))
	assert.Equal(t, 3, m.Len())

	require.NoError(t, ifc.Remove(relation))
	assert.Nil(t, wall.ContainedInStructure())
	assert.Empty(t, storey.ContainsElements())
	assert.False(t, m.Contains(model.GLOBAL_ID, relation.GlobalId()))
	assert.ErrorIs(t, ifc.Remove(relation), model.ErrInvalidArgument, "removed twice")

	require.NoError(t, ifc.Remove(wall))
	assert.Equal(t, 1, m.Len())

	var options ifc.ElementOptions
	options.GlobalId = wall.GlobalId()
	options.Name = "clone"
	clone, err := ifc.NewWallStandardCase(m, history, options)
	require.NoError(t, err)
	assert.Equal(t, 1, countGlobalId(t, m, clone.GlobalId()))
}

func TestRemovePropertySet(t *testing.T) {
	t.Parallel()

	m := model.NewModel("test")
	history := newHistory(t, m)
	wall := newWall(t, m, history, "wall")
	external, err := ifc.NewPropertySingleValue("IsExternal", "", ifc.Boolean(true), nil)
	require.NoError(t, err)
	set, err := ifc.NewPropertySet(m, history, ifc.RootOptions{Name: "Pset_WallCommon"}, []ifc.AnyProperty{external})
	require.NoError(t, err)
	relation, err := ifc.NewRelDefinesByProperties(m, history, ifc.RootOptions{}, []ifc.AnyObject{wall}, set)
	require.NoError(t, err)

	assert.ErrorIs(t, ifc.Remove(set), model.ErrInvalidArgument)
	require.NoError(t, ifc.Remove(relation))
	assert.Empty(t, wall.IsDefinedBy())
	assert.Empty(t, set.PropertyDefinitionOf())
	require.NoError(t, ifc.Remove(set))
	require.NoError(t, ifc.Remove(wall))
	assert.Equal(t, 0, m.Len())
}

func TestRemoveProject(t *testing.T) {
	t.Parallel()

	m := model.NewModel("test")
	history := newHistory(t, m)
	contexts := []ifc.AnyRepresentationContext{newContext(t)}

	var options ifc.ProjectOptions
	options.Name = "Project"
	project, err := ifc.NewProject(m, history, options, contexts, newUnits(t))
	require.NoError(t, err)

	var siteOptions ifc.SpatialOptions
	site, err := ifc.NewSite(m, history, siteOptions, ifc.SiteOptions{})
	require.NoError(t, err)
	relation, err := ifc.NewRelAggregates(m, history, ifc.RootOptions{}, project, []ifc.AnyObjectDefinition{site})
	require.NoError(t, err)

	assert.ErrorIs(t, ifc.Remove(project), model.ErrInvalidArgument)
	require.NoError(t, ifc.Remove(relation))
	assert.Empty(t, project.IsDecomposedBy())
	assert.Nil(t, site.Decomposes())

	require.NoError(t, ifc.Remove(project))
	replacement, err := ifc.NewProject(m, history, options, contexts, newUnits(t))
	require.NoError(t, err)
	assert.NotEqual(t, project.GlobalId(), replacement.GlobalId())
}

func TestRemoveUnregistered(t *testing.T) {
	t.Parallel()

	m := model.NewModel("test")
	history := newHistory(t, m)
	wall := newWall(t, m, history, "wall")
	require.True(t, m.Unregister(wall.GlobalId()))

	assert.ErrorIs(t, ifc.Remove(wall), model.ErrInvalidArgument)
	assert.True(t, m.Contains(model.GLOBAL_ID, wall.GlobalId()))
	assert.ErrorIs(t, ifc.Remove(nil), model.ErrInvalidArgument)
}
