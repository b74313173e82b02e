package entities

import "fmt"

// RelationKind names a directed relationship type in the graph
type RelationKind string

const (
	RelationSentTo RelationKind = "SENT_TO"
	RelationOwns   RelationKind = "OWNS"
	RelationRole   RelationKind = "ROLE"
)

// Attribute keys carried by relationships
const (
	AttrTxID    = "tx_id"
	AttrAmount  = "amount"
	AttrPercent = "percent"
	AttrType    = "type"
	AttrSince   = "since"
)

// Relationship is one (source, kind, target, attributes) tuple returned by the store.
// It lives only for the duration of a single query response.
type Relationship struct {
	// ID is the store identity of the relationship instance, empty when the store has none
	ID         string
	Source     Entity
	Kind       RelationKind
	Target     Entity
	Attributes map[string]any
}

// NewRelationship creates a relationship tuple
func NewRelationship(source Entity, kind RelationKind, target Entity, attrs map[string]any) Relationship {
	if attrs == nil {
		attrs = map[string]any{}
	}
	return Relationship{Source: source, Kind: kind, Target: target, Attributes: attrs}
}

// String returns a string attribute; non-string scalars are formatted
func (r Relationship) String(key string) (string, bool) {
	v, ok := r.Attributes[key]
	if !ok || v == nil {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case fmt.Stringer:
		return s.String(), true
	default:
		return fmt.Sprint(v), true
	}
}

// Float returns a numeric attribute as float64
func (r Relationship) Float(key string) (float64, bool) {
	switch n := r.Attributes[key].(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}

// OwnershipRecord is the one-hop ownership neighbourhood of a company
type OwnershipRecord struct {
	Company Entity
	// Owners are OWNS relationships into Company
	Owners []Relationship
	// Subsidiaries are OWNS relationships out of Company into other companies
	Subsidiaries []Relationship
}

// RoleRecord holds the ROLE relationships pointing at a company
type RoleRecord struct {
	Company Entity
	Roles   []Relationship
}
