package ifc

import (
	"slices"
	"time"

	"github.com/zefrenchwan/ifc.git/model"
	"github.com/zefrenchwan/ifc.git/schema"
	"github.com/zefrenchwan/ifc.git/step"
)

const (
	// APPLICATION_IDENTIFIER is the uniqueness of application identifiers in a model
	APPLICATION_IDENTIFIER model.Constraint = "IfcApplication.ApplicationIdentifier"
	// APPLICATION_NAME_VERSION is the uniqueness of full name and version of applications in a model
	APPLICATION_NAME_VERSION model.Constraint = "IfcApplication.FullNameVersion"
)

// Organization is a named company or institution
type Organization struct {
	id          string
	name        string
	description string
}

// NewOrganization builds an organization, only name is mandatory
func NewOrganization(id, name, description string) (*Organization, error) {
	const entity = "IfcOrganization"
	if len(name) == 0 {
		return nil, invalid(entity, "name is mandatory")
	} else if err := checkLabel(entity, "name", name); err != nil {
		return nil, err
	} else if err := checkLabel(entity, "id", id); err != nil {
		return nil, err
	}

	return &Organization{id: id, name: name, description: description}, nil
}

// EntityType returns the descriptor of IfcOrganization
func (o *Organization) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcOrganization")
}

// AttributeValues returns the values in file order. Roles and addresses are not supported.
func (o *Organization) AttributeValues() []step.Value {
	return []step.Value{
		step.OptionalString(o.id),
		step.String(o.name),
		step.OptionalString(o.description),
		step.Omitted,
		step.Omitted,
	}
}

// Name returns the organization name
func (o *Organization) Name() string {
	return o.name
}

// Person is an individual
type Person struct {
	id           string
	familyName   string
	givenName    string
	middleNames  []string
	prefixTitles []string
	suffixTitles []string
}

// PersonOptions are the values of a person
type PersonOptions struct {
	Id           string
	FamilyName   string
	GivenName    string
	MiddleNames  []string
	PrefixTitles []string
	SuffixTitles []string
}

// NewPerson builds a person, with at least a family name or a given name
func NewPerson(options PersonOptions) (*Person, error) {
	const entity = "IfcPerson"
	if len(options.FamilyName) == 0 && len(options.GivenName) == 0 {
		return nil, invalid(entity, "family name or given name is mandatory")
	}

	for _, label := range append([]string{options.Id, options.FamilyName, options.GivenName}, options.MiddleNames...) {
		if err := checkLabel(entity, "name", label); err != nil {
			return nil, err
		}
	}

	return &Person{
		id:           options.Id,
		familyName:   options.FamilyName,
		givenName:    options.GivenName,
		middleNames:  slices.Clone(options.MiddleNames),
		prefixTitles: slices.Clone(options.PrefixTitles),
		suffixTitles: slices.Clone(options.SuffixTitles),
	}, nil
}

// EntityType returns the descriptor of IfcPerson
func (p *Person) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcPerson")
}

// AttributeValues returns the values in file order. Roles and addresses are not supported.
func (p *Person) AttributeValues() []step.Value {
	return []step.Value{
		step.OptionalString(p.id),
		step.OptionalString(p.familyName),
		step.OptionalString(p.givenName),
		step.OptionalStringList(p.middleNames),
		step.OptionalStringList(p.prefixTitles),
		step.OptionalStringList(p.suffixTitles),
		step.Omitted,
		step.Omitted,
	}
}

// FamilyName returns the family name
func (p *Person) FamilyName() string {
	return p.familyName
}

// GivenName returns the given name
func (p *Person) GivenName() string {
	return p.givenName
}

// PersonAndOrganization is a person acting for an organization
type PersonAndOrganization struct {
	person       *Person
	organization *Organization
}

// NewPersonAndOrganization links a person to an organization, both mandatory
func NewPersonAndOrganization(person *Person, organization *Organization) (*PersonAndOrganization, error) {
	const entity = "IfcPersonAndOrganization"
	if person == nil {
		return nil, invalid(entity, "person is mandatory")
	} else if organization == nil {
		return nil, invalid(entity, "organization is mandatory")
	}

	return &PersonAndOrganization{person: person, organization: organization}, nil
}

// EntityType returns the descriptor of IfcPersonAndOrganization
func (p *PersonAndOrganization) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcPersonAndOrganization")
}

// AttributeValues returns the values in file order
func (p *PersonAndOrganization) AttributeValues() []step.Value {
	return []step.Value{step.Ref(p.person), step.Ref(p.organization), step.Omitted}
}

// Person returns the person
func (p *PersonAndOrganization) Person() *Person {
	return p.person
}

// Organization returns the organization
func (p *PersonAndOrganization) Organization() *Organization {
	return p.organization
}

// Application is the software that created or changed data.
// In a model, identifiers are unique, and so are full name and version pairs.
type Application struct {
	developer  *Organization
	version    string
	fullName   string
	identifier string
}

// NewApplication registers an application in a model.
// If any uniqueness rule fails, nothing is registered.
func NewApplication(m *model.Model, developer *Organization, version, fullName, identifier string) (*Application, error) {
	const entity = "IfcApplication"
	if m == nil {
		return nil, invalid(entity, "nil model")
	} else if developer == nil {
		return nil, invalid(entity, "application developer is mandatory")
	}

	for _, value := range []struct{ attribute, value string }{
		{"version", version}, {"full name", fullName}, {"identifier", identifier},
	} {
		if len(value.value) == 0 {
			return nil, invalid(entity, "%s is mandatory", value.attribute)
		} else if err := checkLabel(entity, value.attribute, value.value); err != nil {
			return nil, err
		}
	}

	if err := m.CanClaim(APPLICATION_IDENTIFIER, identifier); err != nil {
		return nil, err
	} else if err := m.CanClaim(APPLICATION_NAME_VERSION, fullName, version); err != nil {
		return nil, err
	} else if err := m.Claim(APPLICATION_IDENTIFIER, identifier); err != nil {
		return nil, err
	} else if err := m.Claim(APPLICATION_NAME_VERSION, fullName, version); err != nil {
		m.Release(APPLICATION_IDENTIFIER, identifier)
		return nil, err
	}

	m.Logger().Debugw("application registered", "identifier", identifier, "version", version)
	return &Application{developer: developer, version: version, fullName: fullName, identifier: identifier}, nil
}

// EntityType returns the descriptor of IfcApplication
func (a *Application) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcApplication")
}

// AttributeValues returns the values in file order
func (a *Application) AttributeValues() []step.Value {
	return []step.Value{
		step.Ref(a.developer),
		step.String(a.version),
		step.String(a.fullName),
		step.String(a.identifier),
	}
}

// Identifier returns the application identifier
func (a *Application) Identifier() string {
	return a.identifier
}

// FullName returns the application full name
func (a *Application) FullName() string {
	return a.fullName
}

// Version returns the application version
func (a *Application) Version() string {
	return a.version
}

// OwnerHistoryOptions are the values of an owner history
type OwnerHistoryOptions struct {
	// State is optional
	State StateEnum
	// ChangeAction is mandatory
	ChangeAction ChangeActionEnum
	// LastModifiedDate is optional, zero for none
	LastModifiedDate time.Time
	// LastModifyingUser is optional
	LastModifyingUser *PersonAndOrganization
	// LastModifyingApplication is optional
	LastModifyingApplication *Application
	// CreationDate is mandatory
	CreationDate time.Time
}

// OwnerHistory tells who created and changed a rooted entity, and when
type OwnerHistory struct {
	user              *PersonAndOrganization
	application       *Application
	state             StateEnum
	changeAction      ChangeActionEnum
	lastModifiedDate  time.Time
	lastModifyingUser *PersonAndOrganization
	lastModifyingApp  *Application
	creationDate      time.Time
}

// NewOwnerHistory builds an owner history
func NewOwnerHistory(user *PersonAndOrganization, application *Application, options OwnerHistoryOptions) (*OwnerHistory, error) {
	const entity = "IfcOwnerHistory"
	if user == nil {
		return nil, invalid(entity, "owning user is mandatory")
	} else if application == nil {
		return nil, invalid(entity, "owning application is mandatory")
	} else if len(options.State) != 0 && !options.State.IsValid() {
		return nil, model.NewArgumentValueError(entity, "invalid state", string(options.State))
	} else if !options.ChangeAction.IsValid() {
		return nil, model.NewArgumentValueError(entity, "invalid change action", string(options.ChangeAction))
	} else if options.CreationDate.IsZero() {
		return nil, invalid(entity, "creation date is mandatory")
	}

	return &OwnerHistory{
		user:              user,
		application:       application,
		state:             options.State,
		changeAction:      options.ChangeAction,
		lastModifiedDate:  options.LastModifiedDate,
		lastModifyingUser: options.LastModifyingUser,
		lastModifyingApp:  options.LastModifyingApplication,
		creationDate:      options.CreationDate,
	}, nil
}

// EntityType returns the descriptor of IfcOwnerHistory
func (o *OwnerHistory) EntityType() *schema.Entity {
	return Schema.MustEntity("IfcOwnerHistory")
}

// AttributeValues returns the values in file order, dates are seconds since epoch
func (o *OwnerHistory) AttributeValues() []step.Value {
	var lastModified step.Value = step.Omitted
	if !o.lastModifiedDate.IsZero() {
		lastModified = step.Integer(o.lastModifiedDate.Unix())
	}

	return []step.Value{
		step.Ref(o.user),
		step.Ref(o.application),
		step.OptionalEnum(string(o.state)),
		step.Enum(o.changeAction),
		lastModified,
		step.Ref(o.lastModifyingUser),
		step.Ref(o.lastModifyingApp),
		step.Integer(o.creationDate.Unix()),
	}
}

// OwningUser returns the owning user
func (o *OwnerHistory) OwningUser() *PersonAndOrganization {
	return o.user
}

// OwningApplication returns the owning application
func (o *OwnerHistory) OwningApplication() *Application {
	return o.application
}

// CreationDate returns the creation date
func (o *OwnerHistory) CreationDate() time.Time {
	return o.creationDate
}
