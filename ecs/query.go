package ecs

import (
	"iter"
	"runtime"
	"sync"
	"unsafe"
)

// Query caches the matching archetypes and a per-frame snapshot of entity ids
// and view structs. The scheduler executes every query a system declares
// immediately before that system runs, so iteration inside Execute is
// allocation-free and stable for the rest of the frame.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int

	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init wires the query to a storage. Called by the scheduler when the owning
// system is registered.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
	q.cacheValid = false
}

// Execute rebuilds the entity and component snapshot. The archetype match
// list is only recomputed when new archetypes have appeared.
func (q *Query[T]) Execute() {
	if count := len(q.storage.archetypes); count != q.lastArchetypeCount {
		q.cachedArchetypes = nil
		q.lastArchetypeCount = count
	}

	if q.cachedArchetypes == nil {
		q.cachedArchetypes = make([]*Archetype, 0)
		for _, archetype := range q.storage.archetypes {
			if q.view.matchesArchetype(archetype) {
				q.cachedArchetypes = append(q.cachedArchetypes, archetype)
			}
		}
	}

	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]

	for _, archetype := range q.cachedArchetypes {
		if len(archetype.columns) == 0 {
			continue
		}

		indices := q.view.columnIndices(archetype)

		var result T
		resultPtr := unsafe.Pointer(&result)

		for entityIndex := range archetype.columns[0].Iter() {
			id := NewEntityId(archetype.id, uint32(entityIndex))
			if !q.view.populate(resultPtr, id, archetype, entityIndex, indices) {
				continue
			}
			q.cachedEntities = append(q.cachedEntities, id)
			q.cachedComponents = append(q.cachedComponents, result)
		}
	}

	q.cacheValid = true
}

// Iter yields the frame's snapshot in a stable order.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Values yields just the view structs.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.cacheValid {
		panic("Query.Values() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}

// First returns the first match in snapshot order, or nil when the query
// matched nothing.
func (q *Query[T]) First() *T {
	if !q.cacheValid {
		panic("Query.First() called before Query.Execute()")
	}
	if len(q.cachedComponents) == 0 {
		return nil
	}
	return &q.cachedComponents[0]
}

// FirstEntity returns the first match's id, or false when there is none.
func (q *Query[T]) FirstEntity() (EntityId, bool) {
	if !q.cacheValid {
		panic("Query.FirstEntity() called before Query.Execute()")
	}
	if len(q.cachedEntities) == 0 {
		return 0, false
	}
	return q.cachedEntities[0], true
}

// Count returns the number of entities in the snapshot.
func (q *Query[T]) Count() int {
	if !q.cacheValid {
		panic("Query.Count() called before Query.Execute()")
	}
	return len(q.cachedEntities)
}

// Par invokes fn for every snapshot entry, fanned out across one worker per
// CPU. fn runs concurrently for disjoint entities with no ordering guarantee;
// shared state it touches must be atomic or go through Commands.
func (q *Query[T]) Par(fn func(id EntityId, item T)) {
	if !q.cacheValid {
		panic("Query.Par() called before Query.Execute()")
	}

	n := len(q.cachedEntities)
	if n == 0 {
		return
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers == 1 {
		for i := 0; i < n; i++ {
			fn(q.cachedEntities[i], q.cachedComponents[i])
		}
		return
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(q.cachedEntities[i], q.cachedComponents[i])
			}
		}(start, end)
	}
	wg.Wait()
}
