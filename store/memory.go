// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps the last saved snapshot in memory. Loads and saves copy,
// so callers never share maps with the store. Failures can be injected for
// tests.
type MemoryStore struct {
	mu      sync.Mutex
	snap    Snapshot
	loadErr error
	saveErr error
	saves   int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snap: NewSnapshot()}
}

func (s *MemoryStore) Load(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadErr != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrReadFailure, s.loadErr)
	}
	return s.snap.Clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveErr != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, s.saveErr)
	}
	s.snap = snap.Clone()
	s.saves++
	return nil
}

// FailSaves makes every following Save return err. Pass nil to recover.
func (s *MemoryStore) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// FailLoads makes every following Load return err. Pass nil to recover.
func (s *MemoryStore) FailLoads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

// Saves returns the number of successful saves.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
