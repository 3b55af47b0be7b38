package sample_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zefrenchwan/ifc.git/ifc"
	"github.com/zefrenchwan/ifc.git/model"
	"github.com/zefrenchwan/ifc.git/sample"
	"github.com/zefrenchwan/ifc.git/step"
)

func TestBuildDefault(t *testing.T) {
	t.Parallel()

	m := model.NewModel("sample")
	building, err := sample.Build(m, sample.Options{CreationDate: time.Unix(1700000000, 0)})
	require.NoError(t, err)

	require.Len(t, building.Storeys, 2)
	require.Len(t, building.Walls, 2)
	assert.Len(t, building.Walls[1], 4)
	assert.Len(t, building.Roots, 34)
	assert.Equal(t, len(building.Roots), m.Len())

	assert.Equal(t, []ifc.AnyObjectDefinition{building.Site}, building.Project.Parts())
	assert.Equal(t, ifc.AnyObjectDefinition(building.Building), building.Storeys[1].Whole())
	wall := building.Walls[1][2]
	assert.Equal(t, "Level 1 North", wall.Name())
	assert.Equal(t, "W-007", wall.Tag())
	assert.Equal(t, ifc.AnySpatialStructureElement(building.Storeys[1]), wall.Structure())
	assert.Len(t, wall.PropertySets(), 1)

	elevation := building.Storeys[1].Elevation()
	require.NotNil(t, elevation)
	assert.Equal(t, 3000.0, *elevation)
}

func TestBuildOnce(t *testing.T) {
	t.Parallel()

	m := model.NewModel("sample")
	_, err := sample.Build(m, sample.DefaultOptions())
	require.NoError(t, err)

	// the application and the project are unique in a model
	_, err = sample.Build(m, sample.DefaultOptions())
	assert.ErrorIs(t, err, model.ErrUniqueness)

	_, err = sample.Build(nil, sample.DefaultOptions())
	assert.Error(t, err)
}

func TestInvalidOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		options sample.Options
	}{
		{name: "negative storeys", options: sample.Options{Storeys: -1}},
		{name: "negative width", options: sample.Options{Width: -10}},
		{name: "thick walls", options: sample.Options{Thickness: 7000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := model.NewModel(tt.name)
			_, err := sample.Build(m, tt.options)
			assert.Error(t, err)
			assert.Equal(t, 0, m.Len())
		})
	}
}

func TestValidateErrorsOrder(t *testing.T) {
	t.Parallel()

	options := sample.Options{StoreyHeight: -1, Width: -2, Depth: -3, Thickness: -4}
	expected := "invalid storey height -1\ninvalid width -2\ninvalid depth -3\ninvalid thickness -4"
	for range 10 {
		assert.EqualError(t, options.Validate(), expected)
	}
}

func TestExportReadBack(t *testing.T) {
	t.Parallel()

	m := model.NewModel("house")
	_, err := sample.Build(m, sample.Options{Storeys: 1, CreationDate: time.Unix(1700000000, 0)})
	require.NoError(t, err)

	var buffer bytes.Buffer
	require.NoError(t, ifc.WriteFile(&buffer, m, ifc.NewHeader(m, ""), nil))
	content := buffer.String()
	assert.True(t, strings.HasPrefix(content, "ISO-10303-21;"))
	assert.Contains(t, content, "FILE_SCHEMA(('IFC2X3'));")
	assert.Contains(t, content, "'house.ifc'")

	instances, err := step.ReadInstances(strings.NewReader(content))
	require.NoError(t, err)
	require.NotEmpty(t, instances)
	assert.Equal(t, "IFCPROJECT", instances[0].Keyword)

	keywords := make(map[string]int)
	for index, instance := range instances {
		assert.Equal(t, index+1, instance.Id, "ids are contiguous")
		for _, reference := range instance.References() {
			assert.True(t, reference >= 1 && reference <= len(instances), "#%d refers to missing #%d", instance.Id, reference)
		}

		descriptor := ifc.Schema.Entity(instance.Keyword)
		if assert.NotNil(t, descriptor, instance.Keyword) {
			fields, err := instance.Fields()
			require.NoError(t, err)
			assert.Len(t, fields, descriptor.AttributesCount(), instance.Keyword)
		}

		keywords[instance.Keyword]++
	}

	assert.Equal(t, 4, keywords["IFCWALLSTANDARDCASE"])
	assert.Equal(t, 4, keywords["IFCPROPERTYSET"])
	assert.Equal(t, 3, keywords["IFCRELAGGREGATES"])
	assert.Equal(t, 1, keywords["IFCRELCONTAINEDINSPATIALSTRUCTURE"])
	assert.Equal(t, 1, keywords["IFCOWNERHISTORY"])
	assert.Equal(t, 2, keywords["IFCGEOMETRICREPRESENTATIONSUBCONTEXT"])
	assert.Equal(t, 1, keywords["IFCGEOMETRICREPRESENTATIONCONTEXT"])
}
