package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/iamasit07/connect4/internal/repository"
	"github.com/iamasit07/connect4/internal/service/game"
)

// Store keeps game records in process memory. Records are copied on the way
// in and out so callers never share state with the map.
type Store struct {
	mu      sync.RWMutex
	records map[string]*game.Record
}

func NewStore() *Store {
	return &Store{records: make(map[string]*game.Record)}
}

func (s *Store) Save(_ context.Context, rec *game.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = clone(rec)
	return nil
}

func (s *Store) Load(_ context.Context, id string) (*game.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(rec), nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.records, id)
	return nil
}

// List returns every record ordered by creation time.
func (s *Store) List(_ context.Context) ([]*game.Record, error) {
	s.mu.RLock()
	out := make([]*game.Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, clone(rec))
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func clone(rec *game.Record) *game.Record {
	c := *rec
	if rec.FinishedAt != nil {
		t := *rec.FinishedAt
		c.FinishedAt = &t
	}
	return &c
}
