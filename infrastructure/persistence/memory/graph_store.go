// Package memory holds the graph in process, indexed for the same reads the Neo4j store serves.
// It backs STORE_BACKEND=memory and the handler tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"graphlens/application/ports"
	"graphlens/domain/core/aggregates"
	"graphlens/domain/core/entities"
	"graphlens/domain/core/valueobjects"
	"graphlens/infrastructure/persistence/fixtures"
)

// GraphStore is an in-memory implementation of ports.GraphStore
type GraphStore struct {
	mu       sync.RWMutex
	entities map[string]entities.Entity
	rels     []entities.Relationship
	out      map[string][]int
	in       map[string][]int
}

var _ ports.GraphStore = (*GraphStore)(nil)

// NewGraphStore creates an empty store
func NewGraphStore() *GraphStore {
	return &GraphStore{
		entities: make(map[string]entities.Entity),
		out:      make(map[string][]int),
		in:       make(map[string][]int),
	}
}

// NewGraphStoreFromDataset creates a store preloaded with a dataset
func NewGraphStoreFromDataset(d fixtures.Dataset) (*GraphStore, error) {
	s := NewGraphStore()
	if err := s.Load(d); err != nil {
		return nil, err
	}
	return s, nil
}

// Load merges a dataset into the store
func (s *GraphStore) Load(d fixtures.Dataset) error {
	rels, err := d.Relationships()
	if err != nil {
		return err
	}
	for _, e := range d.Entities() {
		s.PutEntity(e)
	}
	for _, rel := range rels {
		if err := s.PutRelationship(rel); err != nil {
			return err
		}
	}
	return nil
}

// PutEntity inserts or replaces an entity
func (s *GraphStore) PutEntity(e entities.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entities[e.ID] = e
}

// PutRelationship appends a relationship; both endpoints must already exist
func (s *GraphStore) PutRelationship(rel entities.Relationship) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entities[rel.Source.ID]; !ok {
		return fmt.Errorf("unknown source entity %q", rel.Source.ID)
	}
	if _, ok := s.entities[rel.Target.ID]; !ok {
		return fmt.Errorf("unknown target entity %q", rel.Target.ID)
	}

	idx := len(s.rels)
	if rel.ID == "" {
		rel.ID = "rel:" + strconv.Itoa(idx)
	}
	s.rels = append(s.rels, rel)
	s.out[rel.Source.ID] = append(s.out[rel.Source.ID], idx)
	s.in[rel.Target.ID] = append(s.in[rel.Target.ID], idx)
	return nil
}

// WithinSession holds a read lock for the duration of fn
func (s *GraphStore) WithinSession(ctx context.Context, fn func(ctx context.Context, reader ports.GraphReader) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(ctx, &reader{store: s})
}

// VerifyConnectivity succeeds unless ctx has ended
func (s *GraphStore) VerifyConnectivity(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op
func (s *GraphStore) Close(ctx context.Context) error {
	return nil
}

// reader serves ports.GraphReader; callers hold the store's read lock
type reader struct {
	store *GraphStore
}

func (r *reader) entity(id string, t entities.EntityType) (entities.Entity, bool) {
	e, ok := r.store.entities[id]
	if !ok || e.Type != t {
		return entities.Entity{}, false
	}
	return e, true
}

// resolve refreshes relationship endpoints from the entity table so later renames are visible
func (r *reader) resolve(rel entities.Relationship) entities.Relationship {
	rel.Source = r.store.entities[rel.Source.ID]
	rel.Target = r.store.entities[rel.Target.ID]
	return rel
}

// ReachableAccounts runs a breadth-first walk over outgoing SENT_TO edges
func (r *reader) ReachableAccounts(ctx context.Context, seed string, hops valueobjects.HopBound) ([]string, error) {
	if _, ok := r.entity(seed, entities.EntityTypeAccount); !ok {
		return []string{}, nil
	}

	type visit struct {
		id    string
		depth int
	}
	queue := []visit{{id: seed}}
	visited := map[string]bool{seed: true}
	result := []string{seed}
	maxDepth := hops.Int()

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		current := queue[0]
		queue = queue[1:]

		if current.depth >= maxDepth {
			continue
		}
		for _, idx := range r.store.out[current.id] {
			rel := r.store.rels[idx]
			if rel.Kind != entities.RelationSentTo || visited[rel.Target.ID] {
				continue
			}
			if _, ok := r.entity(rel.Target.ID, entities.EntityTypeAccount); !ok {
				continue
			}
			visited[rel.Target.ID] = true
			result = append(result, rel.Target.ID)
			queue = append(queue, visit{id: rel.Target.ID, depth: current.depth + 1})
		}
	}
	return result, nil
}

// TransfersTouching returns SENT_TO relationships ordered by source, target and tx_id before the limit applies
func (r *reader) TransfersTouching(ctx context.Context, ids []string, limit valueobjects.ResultLimit) ([]entities.Relationship, error) {
	members := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		members[id] = struct{}{}
	}

	out := []entities.Relationship{}
	for _, rel := range r.store.rels {
		if rel.Kind != entities.RelationSentTo {
			continue
		}
		_, srcIn := members[rel.Source.ID]
		_, dstIn := members[rel.Target.ID]
		if srcIn || dstIn {
			out = append(out, r.resolve(rel))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return transferLess(out[i], out[j])
	})
	if len(out) > limit.Int() {
		out = out[:limit.Int()]
	}
	return out, nil
}

// transferLess orders like ORDER BY src, dst, tx_id with a missing tx_id last
func transferLess(a, b entities.Relationship) bool {
	if a.Source.ID != b.Source.ID {
		return a.Source.ID < b.Source.ID
	}
	if a.Target.ID != b.Target.ID {
		return a.Target.ID < b.Target.ID
	}
	ta, okA := a.String(entities.AttrTxID)
	tb, okB := b.String(entities.AttrTxID)
	if okA != okB {
		return okA
	}
	return ta < tb
}

// AccountDegree counts incoming and outgoing SENT_TO relationships
func (r *reader) AccountDegree(ctx context.Context, id string) (*aggregates.AccountDegree, error) {
	if _, ok := r.entity(id, entities.EntityTypeAccount); !ok {
		return nil, nil
	}
	count := func(idxs []int) int {
		n := 0
		for _, idx := range idxs {
			if r.store.rels[idx].Kind == entities.RelationSentTo {
				n++
			}
		}
		return n
	}
	degree := aggregates.NewAccountDegree(count(r.store.in[id]), count(r.store.out[id]))
	return &degree, nil
}

// CompanyOwnership collects OWNS relationships on both sides of a company
func (r *reader) CompanyOwnership(ctx context.Context, id string) (*entities.OwnershipRecord, error) {
	company, ok := r.entity(id, entities.EntityTypeCompany)
	if !ok {
		return nil, nil
	}

	rec := &entities.OwnershipRecord{Company: company}
	for _, idx := range r.store.in[id] {
		if rel := r.store.rels[idx]; rel.Kind == entities.RelationOwns {
			rec.Owners = append(rec.Owners, r.resolve(rel))
		}
	}
	for _, idx := range r.store.out[id] {
		rel := r.store.rels[idx]
		if rel.Kind != entities.RelationOwns {
			continue
		}
		if _, ok := r.entity(rel.Target.ID, entities.EntityTypeCompany); ok {
			rec.Subsidiaries = append(rec.Subsidiaries, r.resolve(rel))
		}
	}
	return rec, nil
}

// ListCompanies returns companies ordered by id
func (r *reader) ListCompanies(ctx context.Context) ([]entities.Entity, error) {
	out := []entities.Entity{}
	for _, e := range r.store.entities {
		if e.Type == entities.EntityTypeCompany {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CompanyRoles collects ROLE relationships into a company
func (r *reader) CompanyRoles(ctx context.Context, id string) (*entities.RoleRecord, error) {
	company, ok := r.entity(id, entities.EntityTypeCompany)
	if !ok {
		return nil, nil
	}

	rec := &entities.RoleRecord{Company: company}
	for _, idx := range r.store.in[id] {
		rel := r.store.rels[idx]
		if rel.Kind != entities.RelationRole {
			continue
		}
		if _, ok := r.entity(rel.Source.ID, entities.EntityTypePerson); ok {
			rec.Roles = append(rec.Roles, r.resolve(rel))
		}
	}
	sort.SliceStable(rec.Roles, func(i, j int) bool {
		a, b := rec.Roles[i], rec.Roles[j]
		if a.Source.ID != b.Source.ID {
			return a.Source.ID < b.Source.ID
		}
		return roleType(a) < roleType(b)
	})
	return rec, nil
}

// OutgoingRoles collects ROLE relationships of the given persons
func (r *reader) OutgoingRoles(ctx context.Context, personIDs []string) ([]entities.Relationship, error) {
	out := []entities.Relationship{}
	for _, pid := range personIDs {
		if _, ok := r.entity(pid, entities.EntityTypePerson); !ok {
			continue
		}
		var roles []entities.Relationship
		for _, idx := range r.store.out[pid] {
			rel := r.store.rels[idx]
			if rel.Kind != entities.RelationRole {
				continue
			}
			if _, ok := r.entity(rel.Target.ID, entities.EntityTypeCompany); ok {
				roles = append(roles, r.resolve(rel))
			}
		}
		sort.SliceStable(roles, func(i, j int) bool {
			if roles[i].Target.ID != roles[j].Target.ID {
				return roles[i].Target.ID < roles[j].Target.ID
			}
			return roleType(roles[i]) < roleType(roles[j])
		})
		out = append(out, roles...)
	}
	return out, nil
}

func roleType(rel entities.Relationship) string {
	s, _ := rel.String(entities.AttrType)
	return s
}
