package neo4j

import (
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"graphlens/domain/core/entities"
)

// stringValue reads a string column; null and missing columns read as ""
func stringValue(record *neo4j.Record, key string) string {
	v, ok := record.Get(key)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// int64Value reads an integer column; the driver returns every Cypher integer as int64
func int64Value(record *neo4j.Record, key string) int64 {
	v, _ := record.Get(key)
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	default:
		return 0
	}
}

// stringsValue reads a list of strings, skipping nulls
func stringsValue(record *neo4j.Record, key string) []string {
	v, _ := record.Get(key)
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// setAttr copies a non-null column into a relationship attribute map
func setAttr(attrs map[string]any, record *neo4j.Record, column, attr string) {
	if v, ok := record.Get(column); ok && v != nil {
		attrs[attr] = v
	}
}

func entityType(label string) entities.EntityType {
	switch label {
	case string(entities.EntityTypeAccount), string(entities.EntityTypeCompany), string(entities.EntityTypePerson):
		return entities.EntityType(label)
	case "":
		return entities.EntityTypeCompany
	default:
		return entities.EntityType(label)
	}
}

func transferFromRecord(record *neo4j.Record) entities.Relationship {
	attrs := map[string]any{}
	setAttr(attrs, record, "tx_id", entities.AttrTxID)
	setAttr(attrs, record, "amount", entities.AttrAmount)

	rel := entities.NewRelationship(
		entities.NewAccount(stringValue(record, "src")),
		entities.RelationSentTo,
		entities.NewAccount(stringValue(record, "dst")),
		attrs,
	)
	rel.ID = stringValue(record, "rid")
	return rel
}

func ownerFromRecord(record *neo4j.Record, company entities.Entity) entities.Relationship {
	attrs := map[string]any{}
	setAttr(attrs, record, "percent", entities.AttrPercent)

	owner := entities.Entity{
		ID:   stringValue(record, "id"),
		Name: stringValue(record, "name"),
		Type: entityType(stringValue(record, "label")),
	}
	rel := entities.NewRelationship(owner, entities.RelationOwns, company, attrs)
	rel.ID = stringValue(record, "rid")
	return rel
}

func subsidiaryFromRecord(record *neo4j.Record, company entities.Entity) entities.Relationship {
	attrs := map[string]any{}
	setAttr(attrs, record, "percent", entities.AttrPercent)

	sub := entities.NewCompany(stringValue(record, "id"), stringValue(record, "name"))
	rel := entities.NewRelationship(company, entities.RelationOwns, sub, attrs)
	rel.ID = stringValue(record, "rid")
	return rel
}

func roleFromRecord(record *neo4j.Record, company entities.Entity) entities.Relationship {
	attrs := map[string]any{}
	setAttr(attrs, record, "type", entities.AttrType)
	setAttr(attrs, record, "since", entities.AttrSince)

	person := entities.NewPerson(stringValue(record, "pid"), stringValue(record, "pname"))
	if company.IsZero() {
		company = entities.NewCompany(stringValue(record, "oid"), stringValue(record, "oname"))
	}
	rel := entities.NewRelationship(person, entities.RelationRole, company, attrs)
	rel.ID = stringValue(record, "rid")
	return rel
}
