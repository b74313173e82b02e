package fixtures

import (
	"fmt"

	"graphlens/domain/core/entities"
)

// Transfer is one SENT_TO between two accounts
type Transfer struct {
	From   string
	To     string
	TxID   string
	Amount int64
}

// Ownership is one OWNS from a person or company into a company
type Ownership struct {
	Owner   string
	Company string
	Percent int64
}

// Role is one ROLE a person holds on a company; Since is an ISO date
type Role struct {
	Person  string
	Company string
	Type    string
	Since   string
}

// Dataset is a self-contained graph to load into a store
type Dataset struct {
	Accounts   []entities.Entity
	Companies  []entities.Entity
	Persons    []entities.Entity
	Transfers  []Transfer
	Ownerships []Ownership
	Roles      []Role
}

// Entities returns every entity of the dataset keyed by id
func (d Dataset) Entities() map[string]entities.Entity {
	out := make(map[string]entities.Entity, len(d.Accounts)+len(d.Companies)+len(d.Persons))
	for _, group := range [][]entities.Entity{d.Accounts, d.Companies, d.Persons} {
		for _, e := range group {
			out[e.ID] = e
		}
	}
	return out
}

// Relationships resolves the dataset's relations against its entities
func (d Dataset) Relationships() ([]entities.Relationship, error) {
	byID := d.Entities()
	resolve := func(id string) (entities.Entity, error) {
		e, ok := byID[id]
		if !ok {
			return entities.Entity{}, fmt.Errorf("dataset references unknown entity %q", id)
		}
		return e, nil
	}

	rels := make([]entities.Relationship, 0, len(d.Transfers)+len(d.Ownerships)+len(d.Roles))
	for _, t := range d.Transfers {
		from, err := resolve(t.From)
		if err != nil {
			return nil, err
		}
		to, err := resolve(t.To)
		if err != nil {
			return nil, err
		}
		rels = append(rels, entities.NewRelationship(from, entities.RelationSentTo, to, map[string]any{
			entities.AttrTxID:   t.TxID,
			entities.AttrAmount: t.Amount,
		}))
	}
	for _, o := range d.Ownerships {
		owner, err := resolve(o.Owner)
		if err != nil {
			return nil, err
		}
		company, err := resolve(o.Company)
		if err != nil {
			return nil, err
		}
		rels = append(rels, entities.NewRelationship(owner, entities.RelationOwns, company, map[string]any{
			entities.AttrPercent: o.Percent,
		}))
	}
	for _, r := range d.Roles {
		person, err := resolve(r.Person)
		if err != nil {
			return nil, err
		}
		company, err := resolve(r.Company)
		if err != nil {
			return nil, err
		}
		rels = append(rels, entities.NewRelationship(person, entities.RelationRole, company, map[string]any{
			entities.AttrType:  r.Type,
			entities.AttrSince: r.Since,
		}))
	}
	return rels, nil
}

// Demo returns the demo dataset: a small fund-flow cycle and a Nordic corporate group
func Demo() Dataset {
	return Dataset{
		Accounts: []entities.Entity{
			entities.NewAccount("acct_A"),
			entities.NewAccount("acct_B"),
			entities.NewAccount("acct_C"),
		},
		Transfers: []Transfer{
			{From: "acct_A", To: "acct_B", TxID: "tx_1", Amount: 2500},
			{From: "acct_B", To: "acct_C", TxID: "tx_2", Amount: 3000},
			{From: "acct_A", To: "acct_C", TxID: "tx_3", Amount: 1200},
			{From: "acct_C", To: "acct_A", TxID: "tx_4", Amount: 500},
		},
		Companies: []entities.Entity{
			entities.NewCompany("556000-1111", "Nordic Widgets AB"),
			entities.NewCompany("559000-7777", "Boreal Holding AB"),
			entities.NewCompany("556990-2222", "Nordic Widgets Logistics AB"),
			entities.NewCompany("FI-2999999-9", "NW Research Oy"),
			entities.NewCompany("556222-3333", "Skandi Foods AB"),
			entities.NewCompany("559123-8888", "Taste Group AB"),
			entities.NewCompany("NO-812345678", "Skandi Foods Norge AS"),
			entities.NewCompany("969700-4444", "Aurora Consulting KB"),
			entities.NewCompany("556300-2222", "Delta Marine AB"),
			entities.NewCompany("559500-9090", "Haparanda Plast AB"),
		},
		Persons: []entities.Entity{
			entities.NewPerson("P-ANNA", "Anna Berg"),
			entities.NewPerson("P-ERIK", "Erik Lind"),
			entities.NewPerson("P-LARS", "Lars Nyström"),
			entities.NewPerson("P-KARIN", "Karin Persson"),
			entities.NewPerson("P-SOFIA", "Sofia Karlsson"),
			entities.NewPerson("P-OMAR", "Omar Ali"),
			entities.NewPerson("P-PETER", "Peter Holm"),
			entities.NewPerson("P-NINA", "Nina Aalto"),
			entities.NewPerson("P-MATS", "Mats Grön"),
			entities.NewPerson("P-EVA", "Eva Lund"),
		},
		Ownerships: []Ownership{
			{Owner: "P-ANNA", Company: "556000-1111", Percent: 60},
			{Owner: "P-ERIK", Company: "556000-1111", Percent: 25},
			{Owner: "559000-7777", Company: "556000-1111", Percent: 15},
			{Owner: "P-LARS", Company: "559000-7777", Percent: 100},
			{Owner: "556000-1111", Company: "556990-2222", Percent: 100},
			{Owner: "556000-1111", Company: "FI-2999999-9", Percent: 70},
			{Owner: "559123-8888", Company: "556222-3333", Percent: 80},
			{Owner: "P-KARIN", Company: "556222-3333", Percent: 20},
			{Owner: "556222-3333", Company: "NO-812345678", Percent: 100},
			{Owner: "P-SOFIA", Company: "559123-8888", Percent: 55},
			{Owner: "P-OMAR", Company: "559123-8888", Percent: 45},
			{Owner: "P-PETER", Company: "969700-4444", Percent: 50},
			{Owner: "P-NINA", Company: "969700-4444", Percent: 50},
		},
		Roles: []Role{
			{Person: "P-ANNA", Company: "556000-1111", Type: "Chair", Since: "2023-03-01"},
			{Person: "P-ERIK", Company: "556000-1111", Type: "BoardMember", Since: "2022-05-15"},
			{Person: "P-MATS", Company: "556000-1111", Type: "BoardMember", Since: "2024-02-01"},
			{Person: "P-EVA", Company: "556000-1111", Type: "CEO", Since: "2024-09-01"},
			{Person: "P-PETER", Company: "556000-1111", Type: "Auditor", Since: "2023-01-01"},
			{Person: "P-ANNA", Company: "559123-8888", Type: "BoardMember", Since: "2021-06-01"},
			{Person: "P-ANNA", Company: "556300-2222", Type: "BoardMember", Since: "2022-10-01"},
			{Person: "P-ERIK", Company: "556222-3333", Type: "BoardMember", Since: "2020-01-01"},
			{Person: "P-MATS", Company: "559500-9090", Type: "BoardMember", Since: "2023-11-01"},
			{Person: "P-EVA", Company: "FI-2999999-9", Type: "BoardMember", Since: "2021-04-01"},
			{Person: "P-PETER", Company: "556222-3333", Type: "Auditor", Since: "2022-01-01"},
			{Person: "P-PETER", Company: "559123-8888", Type: "Auditor", Since: "2022-01-01"},
		},
	}
}
