package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphlens/domain/core/aggregates"
	"graphlens/domain/core/entities"
	"graphlens/domain/core/valueobjects"
)

func role(person, company entities.Entity, roleType string) entities.Relationship {
	attrs := map[string]any{}
	if roleType != "" {
		attrs[entities.AttrType] = roleType
	}
	return entities.NewRelationship(person, entities.RelationRole, company, attrs)
}

var (
	seedC = entities.NewCompany("C", "Seed Co")
	compX = entities.NewCompany("X", "X Corp")
	compY = entities.NewCompany("Y", "Y Corp")
	compZ = entities.NewCompany("Z", "Z Corp")
	p1    = entities.NewPerson("P1", "Pat One")
	p2    = entities.NewPerson("P2", "Pat Two")
)

func edgeIDs(view aggregates.GraphView) []string {
	ids := make([]string, 0, len(view.Edges))
	for _, e := range view.Edges {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestGovernanceViewBuilder_CapSkipsSeedWithoutBudget(t *testing.T) {
	builder := NewGovernanceViewBuilder(seedC, valueobjects.NewMandateCap(2))
	builder.AddDirectRoles([]entities.Relationship{
		role(p1, seedC, "DIRECTOR"),
		role(p2, seedC, "CEO"),
	})
	require.Equal(t, []string{"P1", "P2"}, builder.PersonIDs())

	builder.AddOtherMandates([]entities.Relationship{
		role(p1, compX, "DIRECTOR"),
		role(p1, compY, "CFO"),
		role(p2, seedC, "CEO"),
		role(p2, compZ, "DIRECTOR"),
	})

	view := builder.View()
	assert.Equal(t, 2, builder.Mandates())
	assert.Equal(t, []string{
		"P1->C#DIRECTOR",
		"P2->C#CEO",
		"P1->X#DIRECTOR",
		"P1->Y#CFO",
	}, edgeIDs(view))
}

func TestGovernanceViewBuilder_SkippedSeedRowsDoNotConsumeBudget(t *testing.T) {
	builder := NewGovernanceViewBuilder(seedC, valueobjects.NewMandateCap(2))
	builder.AddDirectRoles([]entities.Relationship{role(p1, seedC, "DIRECTOR"), role(p2, seedC, "CEO")})

	builder.AddOtherMandates([]entities.Relationship{
		role(p1, seedC, "DIRECTOR"),
		role(p2, seedC, "CEO"),
		role(p1, compX, "DIRECTOR"),
		role(p2, compZ, "DIRECTOR"),
		role(p2, compY, "CFO"),
	})

	assert.Equal(t, 2, builder.Mandates())
	assert.Equal(t, []string{
		"P1->C#DIRECTOR",
		"P2->C#CEO",
		"P1->X#DIRECTOR",
		"P2->Z#DIRECTOR",
	}, edgeIDs(builder.View()))
}

func TestGovernanceViewBuilder_NeverReintroducesSeedEdge(t *testing.T) {
	builder := NewGovernanceViewBuilder(seedC, valueobjects.NewMandateCap(50))
	builder.AddDirectRoles([]entities.Relationship{role(p1, seedC, "DIRECTOR")})
	builder.AddOtherMandates([]entities.Relationship{
		role(p1, seedC, "CHAIR"),
		role(p1, compX, ""),
	})

	view := builder.View()
	seedEdges := 0
	for _, e := range view.Edges {
		if e.Target == "C" {
			seedEdges++
			assert.Equal(t, "DIRECTOR", e.Label)
		}
	}
	assert.Equal(t, 1, seedEdges)
	assert.Contains(t, edgeIDs(view), "P1->X#ROLE")
}

func TestGovernanceViewBuilder_TwoRolesOnSeed(t *testing.T) {
	builder := NewGovernanceViewBuilder(seedC, valueobjects.NewMandateCap(50))
	builder.AddDirectRoles([]entities.Relationship{
		role(p1, seedC, "CEO"),
		role(p1, seedC, "DIRECTOR"),
	})

	view := builder.View()
	assert.Equal(t, []string{"P1->C#CEO", "P1->C#DIRECTOR"}, edgeIDs(view))
	assert.Len(t, view.Nodes, 2)
	assert.Equal(t, []string{"P1"}, builder.PersonIDs())
}

func TestGovernanceViewBuilder_NodesAreUnique(t *testing.T) {
	builder := NewGovernanceViewBuilder(seedC, valueobjects.NewMandateCap(50))
	builder.AddDirectRoles([]entities.Relationship{role(p1, seedC, "CEO"), role(p2, seedC, "CFO")})
	builder.AddOtherMandates([]entities.Relationship{
		role(p1, compX, "DIRECTOR"),
		role(p2, compX, "DIRECTOR"),
		role(p2, compY, "DIRECTOR"),
	})

	view := builder.View()
	seen := map[string]bool{}
	for _, n := range view.Nodes {
		assert.False(t, seen[n.ID], "duplicate node %s", n.ID)
		seen[n.ID] = true
	}
	assert.Equal(t, aggregates.ViewNode{ID: "C", Label: "Seed Co\n(C)", Type: "company"}, view.Nodes[0])
	assert.Len(t, view.Nodes, 5)
}

func TestGovernanceViewBuilder_EmptyRolesIsValid(t *testing.T) {
	builder := NewGovernanceViewBuilder(seedC, valueobjects.NewMandateCap(50))
	builder.AddDirectRoles(nil)

	view := builder.View()
	assert.Empty(t, builder.PersonIDs())
	assert.Len(t, view.Nodes, 1)
	assert.Empty(t, view.Edges)
}

func TestGovernanceViewBuilder_ZeroCap(t *testing.T) {
	builder := NewGovernanceViewBuilder(seedC, valueobjects.NewMandateCap(0))
	builder.AddDirectRoles([]entities.Relationship{role(p1, seedC, "CEO")})
	builder.AddOtherMandates([]entities.Relationship{role(p1, compX, "DIRECTOR")})

	assert.Equal(t, 0, builder.Mandates())
	assert.Len(t, builder.View().Edges, 1)
}

func TestGovernanceViewBuilder_IgnoresUnknownPersons(t *testing.T) {
	builder := NewGovernanceViewBuilder(seedC, valueobjects.NewMandateCap(50))
	builder.AddDirectRoles([]entities.Relationship{role(p1, seedC, "CEO")})
	builder.AddOtherMandates([]entities.Relationship{role(p2, compX, "DIRECTOR")})

	assert.Equal(t, 0, builder.Mandates())
	assert.Len(t, builder.View().Nodes, 2)
}
