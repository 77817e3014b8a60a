// Package store is the generic persistence layer. Both entity kinds (users
// and audit entries) share one contract so identity assignment and
// commit-per-call semantics live in exactly one place. Implementations are
// interface-driven to allow swapping the in-memory map for PostgreSQL
// without rewiring business code.
package store

import "context"

// Entity is anything the store can persist: it exposes its identity and can
// produce a deep copy so callers never alias store-owned state. The type
// parameter ties Clone to the concrete entity type.
type Entity[T any] interface {
	GetID() int64
	SetID(int64)
	Clone() T
}

// Store is the capability surface per entity kind. Every mutation commits
// synchronously: the call does not return until the effect is visible to
// subsequent reads.
type Store[T Entity[T]] interface {
	// GetAll returns the current committed state of every entity.
	GetAll(ctx context.Context) ([]T, error)

	// GetByID returns the entity or sentinel.ErrNotFound.
	GetByID(ctx context.Context, id int64) (T, error)

	// GetWithRelations returns the entity with its declared related
	// collection eagerly loaded. Absent entity yields sentinel.ErrNotFound;
	// a present entity with no related rows yields an empty, non-nil
	// collection.
	GetWithRelations(ctx context.Context, id int64) (T, error)

	// Create persists the entity, assigning a fresh identity when the
	// entity carries none. Seeded entities keep their explicit IDs and
	// advance the identity sequence past them.
	Create(ctx context.Context, entity T) error

	// Update replaces the persisted fields of an existing entity, or
	// returns sentinel.ErrNotFound when no row matches its ID.
	Update(ctx context.Context, entity T) error

	// Delete removes the entity by ID. Related audit rows are never
	// cascaded; they keep their stored foreign ID.
	Delete(ctx context.Context, entity T) error
}

// RelationLoader populates an entity's declared related collection. The
// in-memory store takes one at construction; the postgres store joins
// instead.
type RelationLoader[T any] func(ctx context.Context, entity T) error
