package ecs

import "iter"

// Query is a View whose matching archetypes and results are cached. A
// Query field on a registered System is bound by the Scheduler and executed
// right before the system runs, so Iter always reflects the current frame.
type Query[T any] struct {
	view       *View[T]
	storage    *Storage
	archetypes []*Archetype
	seen       int

	entities   []EntityId
	components []T
	valid      bool
}

// NewQuery creates a query over storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage and drops all cached state.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.archetypes = nil
	q.seen = 0
	q.valid = false
}

// Execute rebuilds the cached results.
func (q *Query[T]) Execute() {
	if n := len(q.storage.order); n != q.seen {
		for _, archetype := range q.storage.order[q.seen:] {
			if q.view.matches(archetype) {
				q.archetypes = append(q.archetypes, archetype)
			}
		}
		q.seen = n
	}

	q.entities = q.entities[:0]
	q.components = q.components[:0]
	for _, archetype := range q.archetypes {
		q.view.iterArchetype(archetype, func(id EntityId, item T) bool {
			q.entities = append(q.entities, id)
			q.components = append(q.components, item)
			return true
		})
	}

	q.valid = true
}

// Len returns the number of cached results.
func (q *Query[T]) Len() int {
	return len(q.entities)
}

// Iter yields the cached results. It panics if Execute has never run.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.valid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(EntityId, T) bool) {
		for i := range q.entities {
			if !yield(q.entities[i], q.components[i]) {
				return
			}
		}
	}
}

// Values yields the cached component structs.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.valid {
		panic("Query.Values() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for i := range q.components {
			if !yield(q.components[i]) {
				return
			}
		}
	}
}
