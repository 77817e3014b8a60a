package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"userdir/pkg/platform/sentinel"
)

// Memory is the in-memory Store implementation: a map guarded by an RWMutex
// with a per-kind identity counter. It favors clarity over performance and
// hands out clones on every read so callers can mutate freely.
type Memory[T Entity[T]] struct {
	mu        sync.RWMutex
	items     map[int64]T
	seq       int64
	relations RelationLoader[T]
}

// NewMemory builds an empty in-memory store. The optional relation loader is
// invoked by GetWithRelations; passing nil makes GetWithRelations behave
// like GetByID.
func NewMemory[T Entity[T]](relations RelationLoader[T]) *Memory[T] {
	return &Memory[T]{
		items:     make(map[int64]T),
		relations: relations,
	}
}

func (s *Memory[T]) GetAll(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item.Clone())
	}
	// Stable order keeps listings deterministic across calls.
	sort.Slice(out, func(i, j int) bool { return out[i].GetID() < out[j].GetID() })
	return out, nil
}

func (s *Memory[T]) GetByID(_ context.Context, id int64) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if item, ok := s.items[id]; ok {
		return item.Clone(), nil
	}
	var zero T
	return zero, sentinel.ErrNotFound
}

func (s *Memory[T]) GetWithRelations(ctx context.Context, id int64) (T, error) {
	item, err := s.GetByID(ctx, id)
	if err != nil {
		return item, err
	}
	if s.relations != nil {
		if err := s.relations(ctx, item); err != nil {
			var zero T
			return zero, err
		}
	}
	return item, nil
}

func (s *Memory[T]) Create(_ context.Context, entity T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := entity.GetID()
	switch {
	case id == 0:
		s.seq++
		id = s.seq
		entity.SetID(id)
	case id > s.seq:
		// Seeded rows carry explicit IDs; keep the counter ahead of them.
		s.seq = id
	}

	if _, exists := s.items[id]; exists {
		return fmt.Errorf("create id %d: %w", id, sentinel.ErrConflict)
	}
	s.items[id] = entity.Clone()
	return nil
}

func (s *Memory[T]) Update(_ context.Context, entity T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := entity.GetID()
	if _, exists := s.items[id]; !exists {
		return fmt.Errorf("update id %d: %w", id, sentinel.ErrNotFound)
	}
	s.items[id] = entity.Clone()
	return nil
}

func (s *Memory[T]) Delete(_ context.Context, entity T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := entity.GetID()
	if _, exists := s.items[id]; !exists {
		return fmt.Errorf("delete id %d: %w", id, sentinel.ErrNotFound)
	}
	delete(s.items, id)
	return nil
}
