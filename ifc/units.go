package ifc

import (
	"slices"

	"github.com/zefrenchwan/ifc.git/model"
	"github.com/zefrenchwan/ifc.git/schema"
	"github.com/zefrenchwan/ifc.git/step"
)

// AnyUnit is a unit of a unit assignment
type AnyUnit interface {
	step.Entity
	// UnitType returns the measured quantity
	UnitType() UnitEnum
}

// NamedUnit is the common part of named units
type NamedUnit struct {
	unitType UnitEnum
}

// UnitType returns the measured quantity
func (n *NamedUnit) UnitType() UnitEnum {
	return n.unitType
}

// SIUnit is a unit of the international system, with an optional prefix.
// Its dimensions are derived from its name.
type SIUnit struct {
	NamedUnit
	prefix SIPrefix
	name   SIUnitName
}

// NewSIUnit builds a SI unit, name should measure unit type
func NewSIUnit(unitType UnitEnum, prefix SIPrefix, name SIUnitName) (*SIUnit, error) {
	const entity = "IfcSIUnit"
	if !unitType.IsValid() {
		return nil, model.NewArgumentValueError(entity, "invalid unit type", string(unitType))
	} else if !prefix.IsValid() {
		return nil, model.NewArgumentValueError(entity, "invalid prefix", string(prefix))
	} else if !name.Measures(unitType) {
		return nil, model.NewArgumentValueError(entity, "unit name does not measure "+string(unitType), string(name))
	}

	return &SIUnit{NamedUnit: NamedUnit{unitType: unitType}, prefix: prefix, name: name}, nil
}

// EntityType returns the descriptor of IfcSIUnit
func (s *SIUnit) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcSIUnit")
}

// AttributeValues returns the values in file order, with derived dimensions
func (s *SIUnit) AttributeValues() []step.Value {
	return []step.Value{
		step.Derived,
		step.Enum(s.unitType),
		step.OptionalEnum(string(s.prefix)),
		step.Enum(s.name),
	}
}

// Prefix returns the prefix, empty for none
func (s *SIUnit) Prefix() SIPrefix {
	return s.prefix
}

// Name returns the unit name
func (s *SIUnit) Name() SIUnitName {
	return s.name
}

// UnitAssignment is the set of units of a project, at most one per unit type
type UnitAssignment struct {
	units []AnyUnit
}

// NewUnitAssignment builds an assignment of at least one unit.
// User defined units excepted, two units may not measure the same quantity.
func NewUnitAssignment(units ...AnyUnit) (*UnitAssignment, error) {
	const entity = "IfcUnitAssignment"
	if len(units) == 0 {
		return nil, invalid(entity, "at least one unit is expected")
	}

	seen := make(map[UnitEnum]bool)
	for index, unit := range units {
		if step.IsNil(unit) {
			return nil, invalid(entity, "nil unit at %d", index)
		}

		unitType := unit.UnitType()
		if unitType != UNIT_USERDEFINED && seen[unitType] {
			return nil, model.NewArgumentValueError(entity, "unit type assigned twice", string(unitType))
		}

		seen[unitType] = true
	}

	return &UnitAssignment{units: slices.Clone(units)}, nil
}

// EntityType returns the descriptor of IfcUnitAssignment
func (u *UnitAssignment) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcUnitAssignment")
}

// AttributeValues returns the values in file order
func (u *UnitAssignment) AttributeValues() []step.Value {
	return []step.Value{step.RefList(u.units)}
}

// Units returns the assigned units
func (u *UnitAssignment) Units() []AnyUnit {
	return slices.Clone(u.units)
}

// Unit returns the unit for a unit type, nil for none
func (u *UnitAssignment) Unit(unitType UnitEnum) AnyUnit {
	for _, unit := range u.units {
		if unit.UnitType() == unitType {
			return unit
		}
	}

	return nil
}
