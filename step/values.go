package step

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrValue is raised when a value has no STEP representation
var ErrValue = errors.New("invalid step value")

// resolver gives the instance id of an entity
type resolver interface {
	Id(Entity) (int, bool)
}

// Value is anything that may appear in an attribute position
type Value interface {
	// encode appends the STEP form of the value
	encode(builder *strings.Builder, ids resolver) error
	// collect calls visit for each entity the value references, in order
	collect(visit func(Entity))
}

// special is a token written as is: omitted or derived
type special string

const (
	// Omitted is written $, for optional attributes with no value
	Omitted special = "$"
	// Derived is written *, for attributes a subtype redeclares as derived
	Derived special = "*"
)

func (s special) encode(builder *strings.Builder, _ resolver) error {
	builder.WriteString(string(s))
	return nil
}

func (s special) collect(func(Entity)) {}

// String is a quoted STEP string
type String string

func (s String) encode(builder *strings.Builder, _ resolver) error {
	builder.WriteByte('\'')
	builder.WriteString(EscapeString(string(s)))
	builder.WriteByte('\'')
	return nil
}

func (s String) collect(func(Entity)) {}

// EscapeString applies STEP string escaping, without the surrounding quotes.
// Quotes and backslashes are doubled, non printable or non ASCII characters use \X\, \X2\ and \X4\ directives.
func EscapeString(value string) string {
	var builder strings.Builder
	var wide []rune
	flush := func() {
		if len(wide) == 0 {
			return
		}

		large := false
		for _, r := range wide {
			if r > 0xFFFF {
				large = true
				break
			}
		}

		if large {
			builder.WriteString(`\X4\`)
			for _, r := range wide {
				fmt.Fprintf(&builder, "%08X", r)
			}
		} else {
			builder.WriteString(`\X2\`)
			for _, r := range wide {
				fmt.Fprintf(&builder, "%04X", r)
			}
		}

		builder.WriteString(`\X0\`)
		wide = wide[:0]
	}

	for _, r := range value {
		switch {
		case r == utf8.RuneError:
			flush()
			builder.WriteString(`\X2\FFFD\X0\`)
		case r == '\'':
			flush()
			builder.WriteString("''")
		case r == '\\':
			flush()
			builder.WriteString(`\\`)
		case r >= 0x20 && r <= 0x7E:
			flush()
			builder.WriteRune(r)
		case r < 0x20:
			flush()
			fmt.Fprintf(&builder, `\X\%02X`, r)
		default:
			wide = append(wide, r)
		}
	}

	flush()
	return builder.String()
}

// Integer is a STEP integer
type Integer int64

func (i Integer) encode(builder *strings.Builder, _ resolver) error {
	builder.WriteString(strconv.FormatInt(int64(i), 10))
	return nil
}

func (i Integer) collect(func(Entity)) {}

// Real is a STEP real, always written with a decimal point
type Real float64

func (r Real) encode(builder *strings.Builder, _ resolver) error {
	if value, err := FormatReal(float64(r)); err != nil {
		return err
	} else {
		builder.WriteString(value)
	}

	return nil
}

func (r Real) collect(func(Entity)) {}

// FormatReal returns the STEP form of a real: 1. , 0.5 , 1.E-05
func FormatReal(value float64) (string, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "", fmt.Errorf("%w: real %v", ErrValue, value)
	}

	result := strconv.FormatFloat(value, 'G', -1, 64)
	mantissa, exponent := result, ""
	if index := strings.IndexByte(result, 'E'); index >= 0 {
		mantissa, exponent = result[:index], result[index:]
	}

	if !strings.ContainsRune(mantissa, '.') {
		mantissa = mantissa + "."
	}

	return mantissa + exponent, nil
}

// Enum is an enumeration token, written .TOKEN.
type Enum string

func (e Enum) encode(builder *strings.Builder, _ resolver) error {
	if len(e) == 0 {
		return fmt.Errorf("%w: empty enumeration", ErrValue)
	}

	builder.WriteByte('.')
	builder.WriteString(strings.ToUpper(string(e)))
	builder.WriteByte('.')
	return nil
}

func (e Enum) collect(func(Entity)) {}

// Boolean is written .T. or .F.
type Boolean bool

func (b Boolean) encode(builder *strings.Builder, _ resolver) error {
	if b {
		builder.WriteString(".T.")
	} else {
		builder.WriteString(".F.")
	}

	return nil
}

func (b Boolean) collect(func(Entity)) {}

// Logical is a three state boolean
type Logical int

const (
	// LOGICAL_FALSE is written .F.
	LOGICAL_FALSE Logical = iota
	// LOGICAL_TRUE is written .T.
	LOGICAL_TRUE
	// LOGICAL_UNKNOWN is written .U.
	LOGICAL_UNKNOWN
)

func (l Logical) encode(builder *strings.Builder, _ resolver) error {
	switch l {
	case LOGICAL_FALSE:
		builder.WriteString(".F.")
	case LOGICAL_TRUE:
		builder.WriteString(".T.")
	case LOGICAL_UNKNOWN:
		builder.WriteString(".U.")
	default:
		return fmt.Errorf("%w: logical %d", ErrValue, int(l))
	}

	return nil
}

func (l Logical) collect(func(Entity)) {}

// List is an aggregate, written (a,b,c). It is used for lists and sets.
type List []Value

func (l List) encode(builder *strings.Builder, ids resolver) error {
	builder.WriteByte('(')
	for index, value := range l {
		if index != 0 {
			builder.WriteByte(',')
		}

		if value == nil {
			return fmt.Errorf("%w: nil aggregate member at %d", ErrValue, index)
		} else if err := value.encode(builder, ids); err != nil {
			return err
		}
	}

	builder.WriteByte(')')
	return nil
}

func (l List) collect(visit func(Entity)) {
	for _, value := range l {
		if value != nil {
			value.collect(visit)
		}
	}
}

// Typed is a value written with its defined type, for select attributes: IFCLABEL('x')
type Typed struct {
	// Type is the defined type name
	Type string
	// Value is the wrapped value
	Value Value
}

func (t Typed) encode(builder *strings.Builder, ids resolver) error {
	if len(t.Type) == 0 || t.Value == nil {
		return fmt.Errorf("%w: incomplete typed value", ErrValue)
	}

	builder.WriteString(strings.ToUpper(t.Type))
	builder.WriteByte('(')
	if err := t.Value.encode(builder, ids); err != nil {
		return err
	}

	builder.WriteByte(')')
	return nil
}

func (t Typed) collect(visit func(Entity)) {
	if t.Value != nil {
		t.Value.collect(visit)
	}
}

// Reference is a link to another entity, written #id
type Reference struct {
	entity Entity
}

// Target returns the referenced entity
func (r Reference) Target() Entity {
	return r.entity
}

func (r Reference) encode(builder *strings.Builder, ids resolver) error {
	if ids == nil {
		return fmt.Errorf("%w: reference outside of an encoder", ErrValue)
	}

	id, found := ids.Id(r.entity)
	if !found {
		return fmt.Errorf("%w: reference to an entity with no id", ErrValue)
	}

	builder.WriteByte('#')
	builder.WriteString(strconv.Itoa(id))
	return nil
}

func (r Reference) collect(visit func(Entity)) {
	visit(r.entity)
}

// IsNil returns true for nil or for a nil pointer in an interface
func IsNil(entity Entity) bool {
	if entity == nil {
		return true
	}

	value := reflect.ValueOf(entity)
	return value.Kind() == reflect.Pointer && value.IsNil()
}

// Children returns the entities referenced by the forward attributes of entity, in attribute order
func Children(entity Entity) []Entity {
	if IsNil(entity) {
		return nil
	}

	var result []Entity
	for _, value := range entity.AttributeValues() {
		if value == nil {
			continue
		}

		value.collect(func(child Entity) {
			if !IsNil(child) {
				result = append(result, child)
			}
		})
	}

	return result
}

// Ref returns a reference to entity, or Omitted if entity is nil
func Ref(entity Entity) Value {
	if IsNil(entity) {
		return Omitted
	}

	return Reference{entity: entity}
}

// RefList returns the list of references to entities
func RefList[T Entity](entities []T) Value {
	result := make(List, 0, len(entities))
	for _, entity := range entities {
		result = append(result, Ref(entity))
	}

	return result
}

// OptionalRefList returns Omitted for no entity, the list of references otherwise
func OptionalRefList[T Entity](entities []T) Value {
	if len(entities) == 0 {
		return Omitted
	}

	return RefList(entities)
}

// OptionalString returns Omitted for an empty string
func OptionalString(value string) Value {
	if len(value) == 0 {
		return Omitted
	}

	return String(value)
}

// OptionalEnum returns Omitted for an empty token
func OptionalEnum(value string) Value {
	if len(value) == 0 {
		return Omitted
	}

	return Enum(value)
}

// OptionalReal returns Omitted for nil
func OptionalReal(value *float64) Value {
	if value == nil {
		return Omitted
	}

	return Real(*value)
}

// StringList returns the list of strings
func StringList(values []string) Value {
	result := make(List, len(values))
	for index, value := range values {
		result[index] = String(value)
	}

	return result
}

// OptionalStringList returns Omitted for no value
func OptionalStringList(values []string) Value {
	if len(values) == 0 {
		return Omitted
	}

	return StringList(values)
}

// RealList returns the list of reals
func RealList(values []float64) Value {
	result := make(List, len(values))
	for index, value := range values {
		result[index] = Real(value)
	}

	return result
}

// IntegerList returns the list of integers
func IntegerList(values []int) Value {
	result := make(List, len(values))
	for index, value := range values {
		result[index] = Integer(value)
	}

	return result
}

// EncodeValue returns the STEP form of a value with no reference
func EncodeValue(value Value) (string, error) {
	if value == nil {
		return "", fmt.Errorf("%w: nil value", ErrValue)
	}

	var builder strings.Builder
	if err := value.encode(&builder, nil); err != nil {
		return "", err
	}

	return builder.String(), nil
}
