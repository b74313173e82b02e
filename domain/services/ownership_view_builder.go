package services

import (
	"strconv"

	"graphlens/domain/core/aggregates"
	"graphlens/domain/core/entities"
)

// percentPlaceholder stands in for an ownership share the store does not carry
const percentPlaceholder = "?"

// OwnershipOptions selects which directions of the ownership neighbourhood are rendered
type OwnershipOptions struct {
	IncludeHolders      bool
	IncludeSubsidiaries bool
}

// OwnershipViewBuilder renders one hop of ownership around a company
type OwnershipViewBuilder struct{}

// NewOwnershipViewBuilder creates a new builder
func NewOwnershipViewBuilder() *OwnershipViewBuilder {
	return &OwnershipViewBuilder{}
}

// Build renders the ownership view for a company record. The seed company is always the
// first node, even when it has no owners and no subsidiaries.
// Ownership edges are keyed by (source, target); a repeated OWNS between the same pair
// keeps the first relationship's label.
func (b *OwnershipViewBuilder) Build(rec entities.OwnershipRecord, opts OwnershipOptions) aggregates.GraphView {
	nodes := aggregates.NewNodeRegistry()
	edges := aggregates.NewEdgeList()

	company := rec.Company
	nodes.Put(company.ID, aggregates.NodeLabel(company.DisplayName(), company.ID), entities.EntityTypeCompany.ViewType())

	if opts.IncludeHolders {
		for _, rel := range rec.Owners {
			owner := rel.Source
			if owner.IsZero() || owner.ID == company.ID {
				continue
			}
			nodes.Put(owner.ID, aggregates.NodeLabel(owner.DisplayName(), owner.ID), owner.Type.ViewType())
			edges.Add(aggregates.ViewEdge{
				ID:     aggregates.EdgeID(owner.ID, company.ID, ""),
				Source: owner.ID,
				Target: company.ID,
				Label:  PercentLabel(rel),
			})
		}
	}

	if opts.IncludeSubsidiaries {
		for _, rel := range rec.Subsidiaries {
			sub := rel.Target
			if sub.IsZero() || sub.ID == company.ID {
				continue
			}
			nodes.Put(sub.ID, aggregates.NodeLabel(sub.DisplayName(), sub.ID), entities.EntityTypeCompany.ViewType())
			edges.Add(aggregates.ViewEdge{
				ID:     aggregates.EdgeID(company.ID, sub.ID, ""),
				Source: company.ID,
				Target: sub.ID,
				Label:  PercentLabel(rel),
			})
		}
	}

	return aggregates.NewGraphView(nodes, edges)
}

// PercentLabel renders the ownership share of an OWNS relationship as "<percent>%"
func PercentLabel(rel entities.Relationship) string {
	if p, ok := rel.Float(entities.AttrPercent); ok {
		return strconv.FormatFloat(p, 'f', -1, 64) + "%"
	}
	if s, ok := rel.String(entities.AttrPercent); ok && s != "" {
		return s + "%"
	}
	return percentPlaceholder + "%"
}
