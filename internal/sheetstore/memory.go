package sheetstore

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore is an in-process Store used by tests and as the fallback when
// no spreadsheet credentials are configured. It mirrors the remote store's
// swallow-on-failure semantics through the Fail switch.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string][]Row
	fail   bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string][]Row)}
}

// SetFail simulates an unreachable backing service: reads come back empty
// and writes report false.
func (s *MemoryStore) SetFail(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = fail
}

// GetTable implements Store.
func (s *MemoryStore) GetTable(ctx context.Context, table string) []Row {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fail {
		return nil
	}
	rows := s.tables[table]
	out := make([]Row, len(rows))
	for i, row := range rows {
		out[i] = row.Clone()
	}
	return out
}

// Upsert implements Store.
func (s *MemoryStore) Upsert(ctx context.Context, table, keyColumn string, row Row) bool {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return false
	}

	key := strings.ToLower(strings.TrimSpace(row[keyColumn]))
	for i, existing := range s.tables[table] {
		if strings.ToLower(strings.TrimSpace(existing[keyColumn])) == key {
			s.tables[table][i] = row.Clone()
			return true
		}
	}
	s.tables[table] = append(s.tables[table], row.Clone())
	return true
}
