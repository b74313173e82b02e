package services

import (
	"graphlens/domain/core/aggregates"
	"graphlens/domain/core/entities"
	"graphlens/domain/core/valueobjects"
)

// DefaultRoleLabel labels a ROLE relationship that carries no explicit type
const DefaultRoleLabel = "ROLE"

// GovernanceViewBuilder accumulates the two-stage governance view of one company.
// A builder serves a single request and is not safe for concurrent use.
type GovernanceViewBuilder struct {
	company     entities.Entity
	maxMandates int
	nodes       *aggregates.NodeRegistry
	edges       *aggregates.EdgeList

	personIDs []string
	persons   map[string]struct{}
	mandates  int
}

// NewGovernanceViewBuilder starts a view rooted at company with the seed node registered first
func NewGovernanceViewBuilder(company entities.Entity, maxMandates valueobjects.MandateCap) *GovernanceViewBuilder {
	b := &GovernanceViewBuilder{
		company:     company,
		maxMandates: maxMandates.Int(),
		nodes:       aggregates.NewNodeRegistry(),
		edges:       aggregates.NewEdgeList(),
		persons:     make(map[string]struct{}),
	}
	b.putEntity(company)
	return b
}

// AddDirectRoles is Stage A: every role held on the seed company
func (b *GovernanceViewBuilder) AddDirectRoles(roles []entities.Relationship) {
	for _, rel := range roles {
		person := rel.Source
		if person.IsZero() || rel.Target.ID != b.company.ID {
			continue
		}
		b.putEntity(person)
		b.addRoleEdge(person.ID, b.company.ID, rel)

		if _, seen := b.persons[person.ID]; !seen {
			b.persons[person.ID] = struct{}{}
			b.personIDs = append(b.personIDs, person.ID)
		}
	}
}

// PersonIDs returns the Stage A role holders in first-seen order
func (b *GovernanceViewBuilder) PersonIDs() []string {
	out := make([]string, len(b.personIDs))
	copy(out, b.personIDs)
	return out
}

// AddOtherMandates is Stage B: roles the Stage A people hold on other companies.
//
// Rows pointing back at the seed company are skipped and do not count toward the cap.
// Stage B stops as soon as maxMandates edges have been added.
func (b *GovernanceViewBuilder) AddOtherMandates(roles []entities.Relationship) {
	for _, rel := range roles {
		if b.mandates >= b.maxMandates {
			return
		}
		person, other := rel.Source, rel.Target
		if person.IsZero() || other.IsZero() {
			continue
		}
		if _, ok := b.persons[person.ID]; !ok {
			continue
		}
		if other.ID == b.company.ID {
			continue
		}

		b.putEntity(person)
		b.putEntity(other)
		if b.addRoleEdge(person.ID, other.ID, rel) {
			b.mandates++
		}
	}
}

// Mandates returns how many Stage B edges were added
func (b *GovernanceViewBuilder) Mandates() int {
	return b.mandates
}

// View snapshots the accumulated nodes and edges
func (b *GovernanceViewBuilder) View() aggregates.GraphView {
	return aggregates.NewGraphView(b.nodes, b.edges)
}

func (b *GovernanceViewBuilder) putEntity(e entities.Entity) {
	b.nodes.Put(e.ID, aggregates.NodeLabel(e.DisplayName(), e.ID), e.Type.ViewType())
}

func (b *GovernanceViewBuilder) addRoleEdge(personID, companyID string, rel entities.Relationship) bool {
	role, ok := rel.String(entities.AttrType)
	if !ok || role == "" {
		role = DefaultRoleLabel
	}
	return b.edges.Add(aggregates.ViewEdge{
		ID:     aggregates.EdgeID(personID, companyID, role),
		Source: personID,
		Target: companyID,
		Label:  role,
	})
}
