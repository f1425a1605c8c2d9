// Package sheetstore provides tabular persistence backed by a remote
// spreadsheet. It is the only storage mechanism in the application.
package sheetstore

import "context"

// Row is a single spreadsheet row keyed by header name.
type Row map[string]string

// Store is the persistence collaborator. Failures are swallowed at this
// boundary: GetTable returns an empty result and Upsert returns false when
// the backing service is unreachable, never an error. Callers must treat an
// empty table as ambiguous between truly empty and unreachable.
type Store interface {
	// GetTable fetches every row of the named table. The first sheet row is
	// the header and supplies the keys of each returned Row.
	GetTable(ctx context.Context, table string) []Row

	// Upsert inserts or updates a single row keyed by keyColumn. Key
	// comparison is case-insensitive. Reports whether the write was durably
	// recorded.
	Upsert(ctx context.Context, table, keyColumn string, row Row) bool
}

// Clone returns a copy of the row so stored state cannot be mutated through
// a returned reference.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
