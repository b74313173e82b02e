package neo4j

import "graphlens/domain/core/valueobjects"

// The hop bound cannot be a query parameter inside a variable-length pattern, so each
// allowed bound has its own query text.
const (
	reachableAccounts1 = `
MATCH (s:Account {id: $seed})
OPTIONAL MATCH (s)-[:SENT_TO*1..1]->(m:Account)
WITH s, collect(DISTINCT m.id) AS reached
RETURN [s.id] + [id IN reached WHERE id <> s.id] AS ids`

	reachableAccounts2 = `
MATCH (s:Account {id: $seed})
OPTIONAL MATCH (s)-[:SENT_TO*1..2]->(m:Account)
WITH s, collect(DISTINCT m.id) AS reached
RETURN [s.id] + [id IN reached WHERE id <> s.id] AS ids`

	reachableAccounts3 = `
MATCH (s:Account {id: $seed})
OPTIONAL MATCH (s)-[:SENT_TO*1..3]->(m:Account)
WITH s, collect(DISTINCT m.id) AS reached
RETURN [s.id] + [id IN reached WHERE id <> s.id] AS ids`
)

var reachableAccountsQueries = map[valueobjects.HopBound]string{
	1: reachableAccounts1,
	2: reachableAccounts2,
	3: reachableAccounts3,
}

// reachableAccountsQuery selects the query for an already clamped hop bound
func reachableAccountsQuery(hops valueobjects.HopBound) string {
	return reachableAccountsQueries[valueobjects.NewHopBound(hops.Int())]
}

const transfersTouchingQuery = `
MATCH (a:Account)-[r:SENT_TO]->(b:Account)
WHERE a.id IN $ids OR b.id IN $ids
RETURN elementId(r) AS rid, a.id AS src, b.id AS dst, r.tx_id AS tx_id, r.amount AS amount
ORDER BY src, dst, tx_id
LIMIT $limit`

const accountDegreeQuery = `
MATCH (a:Account {id: $id})
RETURN size([(a)<-[:SENT_TO]-() | 1]) AS in_deg, size([(a)-[:SENT_TO]->() | 1]) AS out_deg`

const companyQuery = `
MATCH (c:Company {id: $id})
RETURN c.id AS id, c.name AS name`

const companyOwnersQuery = `
MATCH (o)-[r:OWNS]->(c:Company {id: $id})
RETURN elementId(r) AS rid, o.id AS id, o.name AS name, labels(o)[0] AS label, r.percent AS percent
ORDER BY o.id`

const companySubsidiariesQuery = `
MATCH (c:Company {id: $id})-[r:OWNS]->(s:Company)
RETURN elementId(r) AS rid, s.id AS id, s.name AS name, r.percent AS percent
ORDER BY s.id`

const listCompaniesQuery = `
MATCH (c:Company)
RETURN c.id AS id, c.name AS name
ORDER BY coalesce(c.name, c.id), c.id`

const companyRolesQuery = `
MATCH (p:Person)-[r:ROLE]->(c:Company {id: $id})
RETURN elementId(r) AS rid, p.id AS pid, p.name AS pname, r.type AS type, toString(r.since) AS since
ORDER BY p.id, r.type`

const outgoingRolesQuery = `
UNWIND range(0, size($pids) - 1) AS pos
MATCH (p:Person {id: $pids[pos]})-[r:ROLE]->(o:Company)
RETURN elementId(r) AS rid, p.id AS pid, p.name AS pname, o.id AS oid, o.name AS oname,
       r.type AS type, toString(r.since) AS since
ORDER BY pos, oid, type`
