package model

import (
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/zefrenchwan/ifc.git/guid"
)

// Constraint names a uniqueness rule, for instance "IfcRoot.GlobalId"
type Constraint string

const (
	// GLOBAL_ID is the uniqueness of global ids of rooted entities
	GLOBAL_ID Constraint = "IfcRoot.GlobalId"
)

// keySeparator joins tuple values, it may not appear in a STEP string
const keySeparator = "\x00"

// maxGenerationAttempts bounds global id regeneration on collision
const maxGenerationAttempts = 16

// Model is the document every entity belongs to.
// It owns the uniqueness registries, so that two models never share constraints.
// A Model is not safe for concurrent use.
type Model struct {
	// Id of the model
	Id string
	// Name of the model
	Name string
	// Description of the model
	Description string
	// registries links a constraint to the set of used keys
	registries map[Constraint]map[string]bool
	// elements are the registered rooted entities, key is the global id
	elements map[string]Element
	// order keeps the registration order of elements
	order []string
	// logger for registration events
	logger *zap.SugaredLogger
}

// Option configures a model
type Option func(*Model)

// WithLogger sets the model logger
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithId forces the model id
func WithId(id string) Option {
	return func(m *Model) {
		m.Id = id
	}
}

// NewModel returns an empty model with a generated id
func NewModel(name string, options ...Option) *Model {
	result := &Model{
		Id:         guid.New(),
		Name:       name,
		registries: make(map[Constraint]map[string]bool),
		elements:   make(map[string]Element),
		logger:     zap.NewNop().Sugar(),
	}

	for _, option := range options {
		option(result)
	}

	return result
}

// Logger returns the model logger, never nil
func (m *Model) Logger() *zap.SugaredLogger {
	if m == nil || m.logger == nil {
		return zap.NewNop().Sugar()
	}

	return m.logger
}

// key builds the registry key of a tuple of values
func key(values []string) string {
	return strings.Join(values, keySeparator)
}

// display returns a readable form of a tuple
func display(values []string) string {
	return strings.Join(values, ", ")
}

// Contains returns true if tuple is already registered for that constraint
func (m *Model) Contains(constraint Constraint, values ...string) bool {
	if m == nil || m.registries == nil {
		return false
	}

	return m.registries[constraint][key(values)]
}

// Claim registers a tuple for a constraint.
// It returns a uniqueness error, and changes nothing, if tuple was already registered.
func (m *Model) Claim(constraint Constraint, values ...string) error {
	if m == nil {
		return NewArgumentError(string(constraint), "nil model")
	}

	if m.registries == nil {
		m.registries = make(map[Constraint]map[string]bool)
	}

	registry := m.registries[constraint]
	if registry == nil {
		registry = make(map[string]bool)
		m.registries[constraint] = registry
	}

	currentKey := key(values)
	if registry[currentKey] {
		m.Logger().Debugw("uniqueness violation", "constraint", constraint, "value", display(values))
		return NewUniquenessError(constraint, display(values))
	}

	registry[currentKey] = true
	return nil
}

// CanClaim returns nil if Claim would succeed, the uniqueness error otherwise
func (m *Model) CanClaim(constraint Constraint, values ...string) error {
	if m.Contains(constraint, values...) {
		return NewUniquenessError(constraint, display(values))
	}

	return nil
}

// Release removes a tuple from a constraint, if any
func (m *Model) Release(constraint Constraint, values ...string) {
	if m == nil || m.registries == nil {
		return
	}

	if registry := m.registries[constraint]; registry != nil {
		delete(registry, key(values))
	}
}

// ClearConstraint forgets every value of a constraint.
// This is an administrative operation that breaks uniqueness guarantees, meant for tests.
func (m *Model) ClearConstraint(constraint Constraint) {
	if m == nil || m.registries == nil {
		return
	}

	delete(m.registries, constraint)
	m.Logger().Debugw("constraint cleared", "constraint", constraint)
}

// Reset forgets every registered value of every constraint.
// Same warning as ClearConstraint: entities built before a reset may be duplicated after.
// Registered elements are kept.
func (m *Model) Reset() {
	if m == nil {
		return
	}

	m.registries = make(map[Constraint]map[string]bool)
	m.Logger().Debug("all constraints cleared")
}

// Constraints returns the sorted names of constraints with at least a value
func (m *Model) Constraints() []string {
	if m == nil {
		return nil
	}

	var result []string
	for constraint, values := range m.registries {
		if len(values) != 0 {
			result = append(result, string(constraint))
		}
	}

	slices.Sort(result)
	return result
}

// Count returns the number of registered values for a constraint
func (m *Model) Count(constraint Constraint) int {
	if m == nil || m.registries == nil {
		return 0
	}

	return len(m.registries[constraint])
}

// NewGlobalId returns a generated global id not yet used in the model.
// It does not claim it.
func (m *Model) NewGlobalId() (string, error) {
	for attempt := 0; attempt < maxGenerationAttempts; attempt++ {
		candidate := guid.New()
		if !m.Contains(GLOBAL_ID, candidate) {
			return candidate, nil
		}
	}

	return "", NewArgumentError(string(GLOBAL_ID), "failed to generate an unused global id")
}

// ClaimGlobalId validates and registers a global id, generating one if value is empty.
// It returns the registered value.
func (m *Model) ClaimGlobalId(value string) (string, error) {
	if len(value) == 0 {
		if generated, err := m.NewGlobalId(); err != nil {
			return "", err
		} else {
			value = generated
		}
	} else if err := guid.Validate(value); err != nil {
		return "", NewArgumentValueError(string(GLOBAL_ID), err.Error(), value)
	}

	if err := m.Claim(GLOBAL_ID, value); err != nil {
		return "", err
	}

	return value, nil
}

// CheckGlobalId returns nil if ClaimGlobalId(value) would succeed.
// Empty value is valid, a new id will be generated.
func (m *Model) CheckGlobalId(value string) error {
	if len(value) == 0 {
		return nil
	} else if err := guid.Validate(value); err != nil {
		return NewArgumentValueError(string(GLOBAL_ID), err.Error(), value)
	}

	return m.CanClaim(GLOBAL_ID, value)
}
