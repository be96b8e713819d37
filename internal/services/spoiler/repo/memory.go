// Package repo provides the durable key value tiers for spoiler results
package repo

import (
	"context"
	"strings"
	"sync"
)

// Memory is an in process KVStore, used by tests and throwaway deployments
type Memory struct {
	mu sync.RWMutex
	m  map[string][]byte
}

// NewMemory returns an empty in process store
func NewMemory() *Memory { return &Memory{m: map[string][]byte{}} }

// All implements domain.KVStore
func (s *Memory) All(_ context.Context, prefix string) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]byte)
	for k, v := range s.m {
		if strings.HasPrefix(k, prefix) {
			out[k] = append([]byte(nil), v...)
		}
	}
	return out, nil
}

// Set implements domain.KVStore
func (s *Memory) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.m[key] = append([]byte(nil), value...)
	s.mu.Unlock()
	return nil
}

// Remove implements domain.KVStore, missing keys are not an error
func (s *Memory) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.m, key)
	s.mu.Unlock()
	return nil
}
