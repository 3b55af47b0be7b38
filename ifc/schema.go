package ifc

import (
	"github.com/zefrenchwan/ifc.git/schema"
)

// SCHEMA_NAME is the schema written in FILE_SCHEMA
const SCHEMA_NAME = "IFC2X3"

// Schema describes the supported IFC2X3 entities, with their attributes in file order
var Schema = buildSchema()

func buildSchema() schema.Dictionary {
	e, o, d, i := schema.Explicit, schema.Optional, schema.Derive, schema.Inverse
	result := schema.NewDictionary(SCHEMA_NAME)

	// kernel
	result.MustDefine("IfcRoot", "", true, e("GlobalId"), e("OwnerHistory"), o("Name"), o("Description"))
	result.MustDefine("IfcObjectDefinition", "IfcRoot", true,
		i("HasAssignments"), i("IsDecomposedBy"), i("Decomposes"), i("HasAssociations"))
	result.MustDefine("IfcObject", "IfcObjectDefinition", true, o("ObjectType"), i("IsDefinedBy"))
	result.MustDefine("IfcProject", "IfcObject", false,
		o("LongName"), o("Phase"), e("RepresentationContexts"), e("UnitsInContext"))
	result.MustDefine("IfcProduct", "IfcObject", true,
		o("ObjectPlacement"), o("Representation"), i("ReferencedBy"))

	// spatial structure
	result.MustDefine("IfcSpatialStructureElement", "IfcProduct", true,
		o("LongName"), e("CompositionType"),
		i("ReferencesElements"), i("ServicedBySystems"), i("ContainsElements"))
	result.MustDefine("IfcSite", "IfcSpatialStructureElement", false,
		o("RefLatitude"), o("RefLongitude"), o("RefElevation"), o("LandTitleNumber"), o("SiteAddress"))
	result.MustDefine("IfcBuilding", "IfcSpatialStructureElement", false,
		o("ElevationOfRefHeight"), o("ElevationOfTerrain"), o("BuildingAddress"))
	result.MustDefine("IfcBuildingStorey", "IfcSpatialStructureElement", false, o("Elevation"))

	// elements
	result.MustDefine("IfcElement", "IfcProduct", true,
		o("Tag"),
		i("FillsVoids"), i("ConnectedTo"), i("HasCoverings"), i("HasProjections"),
		i("HasStructuralMember"), i("ReferencedInStructures"), i("HasPorts"), i("HasOpenings"),
		i("IsConnectionRealization"), i("ProvidesBoundaries"), i("ConnectedFrom"), i("ContainedInStructure"))
	result.MustDefine("IfcBuildingElement", "IfcElement", true)
	result.MustDefine("IfcWall", "IfcBuildingElement", false)
	result.MustDefine("IfcWallStandardCase", "IfcWall", false)

	// relationships
	result.MustDefine("IfcRelationship", "IfcRoot", true)
	result.MustDefine("IfcRelDecomposes", "IfcRelationship", true, e("RelatingObject"), e("RelatedObjects"))
	result.MustDefine("IfcRelAggregates", "IfcRelDecomposes", false)
	result.MustDefine("IfcRelConnects", "IfcRelationship", true)
	result.MustDefine("IfcRelContainedInSpatialStructure", "IfcRelConnects", false,
		e("RelatedElements"), e("RelatingStructure"))
	result.MustDefine("IfcRelDefines", "IfcRelationship", true, e("RelatedObjects"))
	result.MustDefine("IfcRelDefinesByProperties", "IfcRelDefines", false, e("RelatingPropertyDefinition"))

	// properties
	result.MustDefine("IfcPropertyDefinition", "IfcRoot", true, i("HasAssociations"))
	result.MustDefine("IfcPropertySetDefinition", "IfcPropertyDefinition", true,
		i("PropertyDefinitionOf"), i("DefinesType"))
	result.MustDefine("IfcPropertySet", "IfcPropertySetDefinition", false, e("HasProperties"))
	result.MustDefine("IfcProperty", "", true,
		e("Name"), o("Description"), i("PropertyForDependance"), i("PropertyDependsOn"), i("PartOfComplex"))
	result.MustDefine("IfcSimpleProperty", "IfcProperty", true)
	result.MustDefine("IfcPropertySingleValue", "IfcSimpleProperty", false, o("NominalValue"), o("Unit"))

	// actors and ownership
	result.MustDefine("IfcOrganization", "", false,
		o("Id"), e("Name"), o("Description"), o("Roles"), o("Addresses"),
		i("IsRelatedBy"), i("Relates"), i("Engages"))
	result.MustDefine("IfcPerson", "", false,
		o("Id"), o("FamilyName"), o("GivenName"), o("MiddleNames"), o("PrefixTitles"), o("SuffixTitles"),
		o("Roles"), o("Addresses"), i("EngagedIn"))
	result.MustDefine("IfcPersonAndOrganization", "", false, e("ThePerson"), e("TheOrganization"), o("Roles"))
	result.MustDefine("IfcApplication", "", false,
		e("ApplicationDeveloper"), e("Version"), e("ApplicationFullName"), e("ApplicationIdentifier"))
	result.MustDefine("IfcOwnerHistory", "", false,
		e("OwningUser"), e("OwningApplication"), o("State"), e("ChangeAction"), o("LastModifiedDate"),
		o("LastModifyingUser"), o("LastModifyingApplication"), e("CreationDate"))

	// units
	result.MustDefine("IfcNamedUnit", "", true, e("Dimensions"), e("UnitType"))
	result.MustDefine("IfcSIUnit", "IfcNamedUnit", false, o("Prefix"), e("Name"), d("Dimensions"))
	result.MustDefine("IfcUnitAssignment", "", false, e("Units"))

	// representation contexts
	result.MustDefine("IfcRepresentationContext", "", false,
		o("ContextIdentifier"), o("ContextType"), i("RepresentationsInContext"))
	result.MustDefine("IfcGeometricRepresentationContext", "IfcRepresentationContext", false,
		e("CoordinateSpaceDimension"), o("Precision"), e("WorldCoordinateSystem"), o("TrueNorth"),
		i("HasSubContexts"))
	result.MustDefine("IfcGeometricRepresentationSubContext", "IfcGeometricRepresentationContext", false,
		e("ParentContext"), o("TargetScale"), e("TargetView"), o("UserDefinedTargetView"),
		d("WorldCoordinateSystem"), d("CoordinateSpaceDimension"), d("TrueNorth"), d("Precision"))

	// geometry
	result.MustDefine("IfcRepresentationItem", "", true, i("LayerAssignments"), i("StyledByItem"))
	result.MustDefine("IfcGeometricRepresentationItem", "IfcRepresentationItem", true)
	result.MustDefine("IfcPoint", "IfcGeometricRepresentationItem", true)
	result.MustDefine("IfcCartesianPoint", "IfcPoint", false, e("Coordinates"))
	result.MustDefine("IfcDirection", "IfcGeometricRepresentationItem", false, e("DirectionRatios"))
	result.MustDefine("IfcCurve", "IfcGeometricRepresentationItem", true)
	result.MustDefine("IfcBoundedCurve", "IfcCurve", true)
	result.MustDefine("IfcPolyline", "IfcBoundedCurve", false, e("Points"))
	result.MustDefine("IfcPlacement", "IfcGeometricRepresentationItem", true, e("Location"))
	result.MustDefine("IfcAxis2Placement2D", "IfcPlacement", false, o("RefDirection"))
	result.MustDefine("IfcAxis2Placement3D", "IfcPlacement", false, o("Axis"), o("RefDirection"))
	result.MustDefine("IfcObjectPlacement", "", true, i("PlacesObject"), i("ReferencedByPlacements"))
	result.MustDefine("IfcLocalPlacement", "IfcObjectPlacement", false, o("PlacementRelTo"), e("RelativePlacement"))

	// representations
	result.MustDefine("IfcProductRepresentation", "", false, o("Name"), o("Description"), e("Representations"))
	result.MustDefine("IfcProductDefinitionShape", "IfcProductRepresentation", false,
		i("ShapeOfProduct"), i("HasShapeAspects"))
	result.MustDefine("IfcRepresentation", "", false,
		e("ContextOfItems"), o("RepresentationIdentifier"), o("RepresentationType"), e("Items"),
		i("RepresentationMap"), i("LayerAssignments"), i("OfProductRepresentation"))
	result.MustDefine("IfcShapeModel", "IfcRepresentation", true, i("OfShapeAspect"))
	result.MustDefine("IfcShapeRepresentation", "IfcShapeModel", false)

	return result
}
