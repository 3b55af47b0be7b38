package ifc

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/zefrenchwan/ifc.git/model"
	"github.com/zefrenchwan/ifc.git/step"
)

// Defined types of the measures used as property values
const (
	TYPE_LABEL                   = "IFCLABEL"
	TYPE_TEXT                    = "IFCTEXT"
	TYPE_IDENTIFIER              = "IFCIDENTIFIER"
	TYPE_BOOLEAN                 = "IFCBOOLEAN"
	TYPE_LOGICAL                 = "IFCLOGICAL"
	TYPE_INTEGER                 = "IFCINTEGER"
	TYPE_REAL                    = "IFCREAL"
	TYPE_LENGTH_MEASURE          = "IFCLENGTHMEASURE"
	TYPE_POSITIVE_LENGTH_MEASURE = "IFCPOSITIVELENGTHMEASURE"
	TYPE_AREA_MEASURE            = "IFCAREAMEASURE"
	TYPE_VOLUME_MEASURE          = "IFCVOLUMEMEASURE"
	TYPE_THERMAL_TRANSMITTANCE   = "IFCTHERMALTRANSMITTANCEMEASURE"
	TYPE_POSITIVE_RATIO_MEASURE  = "IFCPOSITIVERATIOMEASURE"
)

// Label returns a label value
func Label(value string) step.Value {
	return step.Typed{Type: TYPE_LABEL, Value: step.String(value)}
}

// Text returns a text value
func Text(value string) step.Value {
	return step.Typed{Type: TYPE_TEXT, Value: step.String(value)}
}

// Identifier returns an identifier value
func Identifier(value string) step.Value {
	return step.Typed{Type: TYPE_IDENTIFIER, Value: step.String(value)}
}

// Boolean returns a boolean value
func Boolean(value bool) step.Value {
	return step.Typed{Type: TYPE_BOOLEAN, Value: step.Boolean(value)}
}

// Logical returns a logical value
func Logical(value step.Logical) step.Value {
	return step.Typed{Type: TYPE_LOGICAL, Value: value}
}

// Integer returns an integer value
func Integer(value int) step.Value {
	return step.Typed{Type: TYPE_INTEGER, Value: step.Integer(value)}
}

// Real returns a real value
func Real(value float64) step.Value {
	return step.Typed{Type: TYPE_REAL, Value: step.Real(value)}
}

// LengthMeasure returns a length
func LengthMeasure(value float64) step.Value {
	return step.Typed{Type: TYPE_LENGTH_MEASURE, Value: step.Real(value)}
}

// PositiveLengthMeasure returns a strictly positive length
func PositiveLengthMeasure(value float64) step.Value {
	return step.Typed{Type: TYPE_POSITIVE_LENGTH_MEASURE, Value: step.Real(value)}
}

// AreaMeasure returns an area
func AreaMeasure(value float64) step.Value {
	return step.Typed{Type: TYPE_AREA_MEASURE, Value: step.Real(value)}
}

// VolumeMeasure returns a volume
func VolumeMeasure(value float64) step.Value {
	return step.Typed{Type: TYPE_VOLUME_MEASURE, Value: step.Real(value)}
}

// ThermalTransmittanceMeasure returns a U value
func ThermalTransmittanceMeasure(value float64) step.Value {
	return step.Typed{Type: TYPE_THERMAL_TRANSMITTANCE, Value: step.Real(value)}
}

// checkMeasure validates the range of a measure
func checkMeasure(entity string, measure step.Typed) error {
	if len(measure.Type) == 0 || measure.Value == nil {
		return invalid(entity, "incomplete measure")
	}

	switch strings.ToUpper(measure.Type) {
	case TYPE_LABEL, TYPE_IDENTIFIER:
		if text, ok := measure.Value.(step.String); !ok {
			return invalid(entity, "%s expects a string", measure.Type)
		} else if utf8.RuneCountInString(string(text)) > MAX_LABEL_LENGTH {
			return model.NewArgumentValueError(entity, "label exceeds maximum length", string(text))
		}
	case TYPE_POSITIVE_LENGTH_MEASURE, TYPE_POSITIVE_RATIO_MEASURE:
		if value, ok := measure.Value.(step.Real); !ok {
			return invalid(entity, "%s expects a real", measure.Type)
		} else if !(value > 0) || math.IsInf(float64(value), 0) {
			return invalid(entity, "%s should be strictly positive", measure.Type)
		}
	default:
		if value, ok := measure.Value.(step.Real); ok && !isFinite(float64(value)) {
			return invalid(entity, "%s should be finite", measure.Type)
		}
	}

	return nil
}

// isFinite returns true for a real that is neither NaN nor infinite
func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
