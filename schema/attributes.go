package schema

// AttributeKind tells how an attribute takes part in an entity instance
type AttributeKind int

const (
	// EXPLICIT attributes are the ones written in the instance line
	EXPLICIT AttributeKind = iota
	// DERIVED attributes are computed. When they redeclare an inherited explicit attribute,
	// the inherited position is kept and written as *
	DERIVED
	// INVERSE attributes are back references for navigation only, never written
	INVERSE
)

// String returns the kind name
func (k AttributeKind) String() string {
	switch k {
	case EXPLICIT:
		return "explicit"
	case DERIVED:
		return "derived"
	case INVERSE:
		return "inverse"
	default:
		return "unknown"
	}
}

// Attribute describes a single attribute of an entity
type Attribute struct {
	// Name of the attribute, as in the schema
	Name string
	// Kind of attribute
	Kind AttributeKind
	// Optional is true if the attribute may be omitted
	Optional bool
}

// Explicit returns a mandatory explicit attribute
func Explicit(name string) Attribute {
	return Attribute{Name: name, Kind: EXPLICIT}
}

// Optional returns an optional explicit attribute
func Optional(name string) Attribute {
	return Attribute{Name: name, Kind: EXPLICIT, Optional: true}
}

// Derive returns a derived attribute
func Derive(name string) Attribute {
	return Attribute{Name: name, Kind: DERIVED}
}

// Inverse returns an inverse attribute
func Inverse(name string) Attribute {
	return Attribute{Name: name, Kind: INVERSE, Optional: true}
}

// IsWritten returns true if the attribute value is written, false for a derived position written *
func (a Attribute) IsWritten() bool {
	return a.Kind == EXPLICIT
}
