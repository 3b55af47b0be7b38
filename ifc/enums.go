package ifc

import "slices"

// ChangeActionEnum is the change of an owner history
type ChangeActionEnum string

const (
	CHANGE_NOCHANGE      ChangeActionEnum = "NOCHANGE"
	CHANGE_MODIFIED      ChangeActionEnum = "MODIFIED"
	CHANGE_ADDED         ChangeActionEnum = "ADDED"
	CHANGE_DELETED       ChangeActionEnum = "DELETED"
	CHANGE_MODIFIEDADDED ChangeActionEnum = "MODIFIEDADDED"
	CHANGE_NOTDEFINED    ChangeActionEnum = "NOTDEFINED"
)

// IsValid returns true for a known value
func (c ChangeActionEnum) IsValid() bool {
	return slices.Contains([]ChangeActionEnum{
		CHANGE_NOCHANGE, CHANGE_MODIFIED, CHANGE_ADDED, CHANGE_DELETED, CHANGE_MODIFIEDADDED, CHANGE_NOTDEFINED,
	}, c)
}

// StateEnum is the access state of an owner history
type StateEnum string

const (
	STATE_READWRITE       StateEnum = "READWRITE"
	STATE_READONLY        StateEnum = "READONLY"
	STATE_LOCKED          StateEnum = "LOCKED"
	STATE_READWRITELOCKED StateEnum = "READWRITELOCKED"
	STATE_READONLYLOCKED  StateEnum = "READONLYLOCKED"
)

// IsValid returns true for a known value
func (s StateEnum) IsValid() bool {
	return slices.Contains([]StateEnum{
		STATE_READWRITE, STATE_READONLY, STATE_LOCKED, STATE_READWRITELOCKED, STATE_READONLYLOCKED,
	}, s)
}

// ElementCompositionEnum tells if a spatial element is a complex, an element or a part
type ElementCompositionEnum string

const (
	COMPOSITION_COMPLEX ElementCompositionEnum = "COMPLEX"
	COMPOSITION_ELEMENT ElementCompositionEnum = "ELEMENT"
	COMPOSITION_PARTIAL ElementCompositionEnum = "PARTIAL"
)

// IsValid returns true for a known value
func (c ElementCompositionEnum) IsValid() bool {
	return c == COMPOSITION_COMPLEX || c == COMPOSITION_ELEMENT || c == COMPOSITION_PARTIAL
}

// UnitEnum is the quantity a unit measures
type UnitEnum string

const (
	UNIT_LENGTH                   UnitEnum = "LENGTHUNIT"
	UNIT_AREA                     UnitEnum = "AREAUNIT"
	UNIT_VOLUME                   UnitEnum = "VOLUMEUNIT"
	UNIT_PLANEANGLE               UnitEnum = "PLANEANGLEUNIT"
	UNIT_SOLIDANGLE               UnitEnum = "SOLIDANGLEUNIT"
	UNIT_MASS                     UnitEnum = "MASSUNIT"
	UNIT_TIME                     UnitEnum = "TIMEUNIT"
	UNIT_THERMODYNAMICTEMPERATURE UnitEnum = "THERMODYNAMICTEMPERATUREUNIT"
	UNIT_LUMINOUSINTENSITY        UnitEnum = "LUMINOUSINTENSITYUNIT"
	UNIT_ELECTRICCURRENT          UnitEnum = "ELECTRICCURRENTUNIT"
	UNIT_AMOUNTOFSUBSTANCE        UnitEnum = "AMOUNTOFSUBSTANCEUNIT"
	UNIT_FORCE                    UnitEnum = "FORCEUNIT"
	UNIT_PRESSURE                 UnitEnum = "PRESSUREUNIT"
	UNIT_ENERGY                   UnitEnum = "ENERGYUNIT"
	UNIT_POWER                    UnitEnum = "POWERUNIT"
	UNIT_FREQUENCY                UnitEnum = "FREQUENCYUNIT"
	UNIT_USERDEFINED              UnitEnum = "USERDEFINED"
)

// IsValid returns true for a known value
func (u UnitEnum) IsValid() bool {
	return slices.Contains([]UnitEnum{
		UNIT_LENGTH, UNIT_AREA, UNIT_VOLUME, UNIT_PLANEANGLE, UNIT_SOLIDANGLE, UNIT_MASS, UNIT_TIME,
		UNIT_THERMODYNAMICTEMPERATURE, UNIT_LUMINOUSINTENSITY, UNIT_ELECTRICCURRENT, UNIT_AMOUNTOFSUBSTANCE,
		UNIT_FORCE, UNIT_PRESSURE, UNIT_ENERGY, UNIT_POWER, UNIT_FREQUENCY, UNIT_USERDEFINED,
	}, u)
}

// SIPrefix is the optional prefix of a SI unit
type SIPrefix string

const (
	PREFIX_NONE  SIPrefix = ""
	PREFIX_KILO  SIPrefix = "KILO"
	PREFIX_HECTO SIPrefix = "HECTO"
	PREFIX_DECA  SIPrefix = "DECA"
	PREFIX_DECI  SIPrefix = "DECI"
	PREFIX_CENTI SIPrefix = "CENTI"
	PREFIX_MILLI SIPrefix = "MILLI"
	PREFIX_MICRO SIPrefix = "MICRO"
)

// IsValid returns true for no prefix or a known one
func (p SIPrefix) IsValid() bool {
	return slices.Contains([]SIPrefix{
		PREFIX_NONE, PREFIX_KILO, PREFIX_HECTO, PREFIX_DECA, PREFIX_DECI, PREFIX_CENTI, PREFIX_MILLI, PREFIX_MICRO,
	}, p)
}

// SIUnitName is the name of a SI unit
type SIUnitName string

const (
	SI_METRE          SIUnitName = "METRE"
	SI_SQUARE_METRE   SIUnitName = "SQUARE_METRE"
	SI_CUBIC_METRE    SIUnitName = "CUBIC_METRE"
	SI_RADIAN         SIUnitName = "RADIAN"
	SI_STERADIAN      SIUnitName = "STERADIAN"
	SI_GRAM           SIUnitName = "GRAM"
	SI_SECOND         SIUnitName = "SECOND"
	SI_KELVIN         SIUnitName = "KELVIN"
	SI_DEGREE_CELSIUS SIUnitName = "DEGREE_CELSIUS"
	SI_CANDELA        SIUnitName = "CANDELA"
	SI_AMPERE         SIUnitName = "AMPERE"
	SI_MOLE           SIUnitName = "MOLE"
	SI_NEWTON         SIUnitName = "NEWTON"
	SI_PASCAL         SIUnitName = "PASCAL"
	SI_JOULE          SIUnitName = "JOULE"
	SI_WATT           SIUnitName = "WATT"
	SI_HERTZ          SIUnitName = "HERTZ"
)

// siUnitTypes links a SI unit name to the unit types it may measure
var siUnitTypes = map[SIUnitName][]UnitEnum{
	SI_METRE:          {UNIT_LENGTH},
	SI_SQUARE_METRE:   {UNIT_AREA},
	SI_CUBIC_METRE:    {UNIT_VOLUME},
	SI_RADIAN:         {UNIT_PLANEANGLE},
	SI_STERADIAN:      {UNIT_SOLIDANGLE},
	SI_GRAM:           {UNIT_MASS},
	SI_SECOND:         {UNIT_TIME},
	SI_KELVIN:         {UNIT_THERMODYNAMICTEMPERATURE},
	SI_DEGREE_CELSIUS: {UNIT_THERMODYNAMICTEMPERATURE},
	SI_CANDELA:        {UNIT_LUMINOUSINTENSITY},
	SI_AMPERE:         {UNIT_ELECTRICCURRENT},
	SI_MOLE:           {UNIT_AMOUNTOFSUBSTANCE},
	SI_NEWTON:         {UNIT_FORCE},
	SI_PASCAL:         {UNIT_PRESSURE},
	SI_JOULE:          {UNIT_ENERGY},
	SI_WATT:           {UNIT_POWER},
	SI_HERTZ:          {UNIT_FREQUENCY},
}

// Measures returns true if unit name is valid for that unit type
func (n SIUnitName) Measures(unitType UnitEnum) bool {
	return slices.Contains(siUnitTypes[n], unitType)
}

// GeometricProjectionEnum is the view of a representation sub context
type GeometricProjectionEnum string

const (
	VIEW_GRAPH          GeometricProjectionEnum = "GRAPH_VIEW"
	VIEW_SKETCH         GeometricProjectionEnum = "SKETCH_VIEW"
	VIEW_MODEL          GeometricProjectionEnum = "MODEL_VIEW"
	VIEW_PLAN           GeometricProjectionEnum = "PLAN_VIEW"
	VIEW_REFLECTED_PLAN GeometricProjectionEnum = "REFLECTED_PLAN_VIEW"
	VIEW_SECTION        GeometricProjectionEnum = "SECTION_VIEW"
	VIEW_ELEVATION      GeometricProjectionEnum = "ELEVATION_VIEW"
	VIEW_USERDEFINED    GeometricProjectionEnum = "USERDEFINED"
	VIEW_NOTDEFINED     GeometricProjectionEnum = "NOTDEFINED"
)

// IsValid returns true for a known value
func (g GeometricProjectionEnum) IsValid() bool {
	return slices.Contains([]GeometricProjectionEnum{
		VIEW_GRAPH, VIEW_SKETCH, VIEW_MODEL, VIEW_PLAN, VIEW_REFLECTED_PLAN,
		VIEW_SECTION, VIEW_ELEVATION, VIEW_USERDEFINED, VIEW_NOTDEFINED,
	}, g)
}
