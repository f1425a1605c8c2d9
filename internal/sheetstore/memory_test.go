package sheetstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertInsertsAndUpdates(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.True(t, store.Upsert(ctx, "Inventory", "ID", Row{"ID": "1", "Make": "Toyota"}))
	require.True(t, store.Upsert(ctx, "Inventory", "ID", Row{"ID": "2", "Make": "Honda"}))
	require.True(t, store.Upsert(ctx, "Inventory", "ID", Row{"ID": "1", "Make": "Ford"}))

	rows := store.GetTable(ctx, "Inventory")
	require.Len(t, rows, 2)
	assert.Equal(t, "Ford", rows[0]["Make"])
	assert.Equal(t, "Honda", rows[1]["Make"])
}

func TestUpsertKeyMatchIsCaseInsensitive(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.True(t, store.Upsert(ctx, "Dealership_Profile", "Email", Row{"Email": "Dealer@Example.com", "Name": "A"}))
	require.True(t, store.Upsert(ctx, "Dealership_Profile", "Email", Row{"Email": "dealer@example.com ", "Name": "B"}))

	rows := store.GetTable(ctx, "Dealership_Profile")
	require.Len(t, rows, 1)
	assert.Equal(t, "B", rows[0]["Name"])
}

func TestGetTableReturnsClones(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.True(t, store.Upsert(ctx, "Inventory", "ID", Row{"ID": "1", "Make": "Toyota"}))

	rows := store.GetTable(ctx, "Inventory")
	rows[0]["Make"] = "mutated"

	again := store.GetTable(ctx, "Inventory")
	assert.Equal(t, "Toyota", again[0]["Make"])
}

func TestFailSwitch(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.True(t, store.Upsert(ctx, "Inventory", "ID", Row{"ID": "1"}))

	store.SetFail(true)
	assert.False(t, store.Upsert(ctx, "Inventory", "ID", Row{"ID": "2"}))
	assert.Nil(t, store.GetTable(ctx, "Inventory"))

	store.SetFail(false)
	assert.Len(t, store.GetTable(ctx, "Inventory"), 1)
}
