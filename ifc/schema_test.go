package ifc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zefrenchwan/ifc.git/ifc"
)

func TestSchemaPositions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		entity   string
		count    int
		abstract bool
	}{
		{entity: "IfcRoot", count: 4, abstract: true},
		{entity: "IfcProject", count: 9},
		{entity: "IfcSite", count: 14},
		{entity: "IfcBuilding", count: 12},
		{entity: "IfcBuildingStorey", count: 10},
		{entity: "IfcWall", count: 8},
		{entity: "IfcWallStandardCase", count: 8},
		{entity: "IfcBuildingElement", count: 8, abstract: true},
		{entity: "IfcRelAggregates", count: 6},
		{entity: "IfcRelContainedInSpatialStructure", count: 6},
		{entity: "IfcRelDefinesByProperties", count: 6},
		{entity: "IfcPropertySet", count: 5},
		{entity: "IfcPropertySingleValue", count: 4},
		{entity: "IfcOwnerHistory", count: 8},
		{entity: "IfcSIUnit", count: 4},
		{entity: "IfcGeometricRepresentationContext", count: 6},
		{entity: "IfcGeometricRepresentationSubContext", count: 10},
		{entity: "IfcAxis2Placement3D", count: 3},
		{entity: "IfcShapeRepresentation", count: 4},
		{entity: "IfcProductDefinitionShape", count: 3},
	}

	for _, tt := range tests {
		t.Run(tt.entity, func(t *testing.T) {
			descriptor := ifc.Schema.Entity(tt.entity)
			if assert.NotNil(t, descriptor) {
				assert.Equal(t, tt.count, descriptor.AttributesCount())
				assert.Equal(t, tt.abstract, descriptor.IsAbstract())
			}
		})
	}
}

func TestSchemaHierarchy(t *testing.T) {
	t.Parallel()

	wall := ifc.Schema.MustEntity("IfcWallStandardCase")
	assert.True(t, wall.IsSubtypeOf("IfcProduct"))
	assert.True(t, wall.IsSubtypeOf("ifcroot"))
	assert.False(t, wall.IsSubtypeOf("IfcSpatialStructureElement"))
	assert.Equal(t, "IFCWALLSTANDARDCASE", wall.Keyword())

	assert.Equal(t, []string{"IfcBuilding", "IfcBuildingStorey", "IfcSite"}, ifc.Schema.DirectSubtypes("IfcSpatialStructureElement"))

	sub := ifc.Schema.MustEntity("IfcGeometricRepresentationSubContext")
	attributes := sub.Attributes()
	assert.Equal(t, "CoordinateSpaceDimension", attributes[2].Name)
	assert.False(t, attributes[2].IsWritten())
	assert.Equal(t, "ParentContext", attributes[6].Name)

	var inverses []string
	for _, attribute := range ifc.Schema.MustEntity("IfcWall").Inverses() {
		inverses = append(inverses, attribute.Name)
	}

	assert.Contains(t, inverses, "ContainedInStructure")
	assert.Contains(t, inverses, "IsDecomposedBy")
}
