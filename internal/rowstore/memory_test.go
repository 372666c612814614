package rowstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreAppendScan(t *testing.T) {
	ctx := context.Background()
	db := NewMemoryStore("users")

	require.NoError(t, db.Append(ctx, "users", map[string]string{"userId": "u1", "username": "A"}))
	require.NoError(t, db.Append(ctx, "users", map[string]string{"userId": "u2", "username": "B"}))

	rows, err := db.Scan(ctx, "users")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "u1", rows[0].Get("userId"))
	assert.Equal(t, "B", rows[1].Get("username"))
}

func TestMemoryStoreSave(t *testing.T) {
	ctx := context.Background()
	db := NewMemoryStore("users")
	require.NoError(t, db.Append(ctx, "users", map[string]string{"userId": "u1", "username": "A", "clanId": ""}))

	rows, err := db.Scan(ctx, "users")
	require.NoError(t, err)
	rows[0].Set("clanId", "c1")
	require.NoError(t, rows[0].Save(ctx))

	rows, err = db.Scan(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, "c1", rows[0].Get("clanId"))
	// untouched columns survive the save
	assert.Equal(t, "A", rows[0].Get("username"))
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	db := NewMemoryStore("partners")
	require.NoError(t, db.Append(ctx, "partners", map[string]string{"partnerId": "p1"}))
	require.NoError(t, db.Append(ctx, "partners", map[string]string{"partnerId": "p2"}))

	rows, err := db.Scan(ctx, "partners")
	require.NoError(t, err)
	require.NoError(t, rows[0].Delete(ctx))

	rows, err = db.Scan(ctx, "partners")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "p2", rows[0].Get("partnerId"))
}

func TestMemoryStoreUnknownTable(t *testing.T) {
	ctx := context.Background()
	db := NewMemoryStore("users")

	_, err := db.Scan(ctx, "missing")
	assert.Error(t, err)
	assert.Error(t, db.Append(ctx, "missing", map[string]string{}))
}

func TestMemoryStoreScanIsolation(t *testing.T) {
	ctx := context.Background()
	db := NewMemoryStore("users")
	require.NoError(t, db.Append(ctx, "users", map[string]string{"userId": "u1", "username": "A"}))

	rows, err := db.Scan(ctx, "users")
	require.NoError(t, err)
	rows[0].Set("username", "changed")
	// without Save the table is untouched

	rows, err = db.Scan(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, "A", rows[0].Get("username"))
}
