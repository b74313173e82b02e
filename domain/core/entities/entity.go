package entities

import "strings"

// EntityType is the graph label of an entity
type EntityType string

const (
	EntityTypeAccount EntityType = "Account"
	EntityTypeCompany EntityType = "Company"
	EntityTypePerson  EntityType = "Person"
)

// ViewType returns the lower-cased tag used by the visualization layer
func (t EntityType) ViewType() string {
	return strings.ToLower(string(t))
}

// Entity is a read-only account, company or person as stored in the graph
type Entity struct {
	ID   string
	Name string
	Type EntityType
}

// NewAccount creates an account entity; accounts carry no display name
func NewAccount(id string) Entity {
	return Entity{ID: id, Type: EntityTypeAccount}
}

// NewCompany creates a company entity
func NewCompany(id, name string) Entity {
	return Entity{ID: id, Name: name, Type: EntityTypeCompany}
}

// NewPerson creates a person entity
func NewPerson(id, name string) Entity {
	return Entity{ID: id, Name: name, Type: EntityTypePerson}
}

// DisplayName returns the name, falling back to the identifier
func (e Entity) DisplayName() string {
	if e.Name == "" {
		return e.ID
	}
	return e.Name
}

// IsZero reports whether the entity has no identifier, as produced by an unmatched optional pattern
func (e Entity) IsZero() bool {
	return e.ID == ""
}
