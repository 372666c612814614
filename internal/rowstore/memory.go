package rowstore

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory Store used by tests in place of the sheet.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int
	tables map[string][]*memRecord
}

type memRecord struct {
	id     int
	fields map[string]string
}

// NewMemoryStore creates a store with the given tables, all empty.
func NewMemoryStore(tables ...string) *MemoryStore {
	m := &MemoryStore{tables: make(map[string][]*memRecord)}
	for _, t := range tables {
		m.tables[t] = nil
	}
	return m
}

func (m *MemoryStore) Tables(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.tables))
	for t := range m.tables {
		names = append(names, t)
	}
	return names, nil
}

func (m *MemoryStore) Scan(ctx context.Context, table string) ([]Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	records, ok := m.tables[table]
	if !ok {
		return nil, fmt.Errorf("unknown table %s", table)
	}
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, &memRow{store: m, table: table, id: rec.id, fields: copyFields(rec.fields)})
	}
	return rows, nil
}

func (m *MemoryStore) Append(ctx context.Context, table string, fields map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tables[table]; !ok {
		return fmt.Errorf("unknown table %s", table)
	}
	m.nextID++
	m.tables[table] = append(m.tables[table], &memRecord{id: m.nextID, fields: copyFields(fields)})
	return nil
}

type memRow struct {
	store  *MemoryStore
	table  string
	id     int
	fields map[string]string
}

func (r *memRow) Get(column string) string { return r.fields[column] }

func (r *memRow) Set(column, value string) { r.fields[column] = value }

func (r *memRow) Fields() map[string]string { return copyFields(r.fields) }

func (r *memRow) Save(ctx context.Context) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, rec := range r.store.tables[r.table] {
		if rec.id == r.id {
			rec.fields = copyFields(r.fields)
			return nil
		}
	}
	return ErrRowNotFound
}

func (r *memRow) Delete(ctx context.Context) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	records := r.store.tables[r.table]
	for i, rec := range records {
		if rec.id == r.id {
			r.store.tables[r.table] = append(records[:i], records[i+1:]...)
			return nil
		}
	}
	return ErrRowNotFound
}

func copyFields(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
