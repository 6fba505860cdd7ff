package sheet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	ctx := context.Background()

	t.Run("should look up columns by header name", func(t *testing.T) {
		table := NewTable("S", [][]string{
			{"B", "A"},
			{"b1", "a1"},
			{"b2"},
		})

		assert.Equal(t, 2, table.Len())
		assert.Equal(t, "a1", table.Get(0, "A"))
		assert.Equal(t, "b2", table.Get(1, "B"))
		assert.Equal(t, "", table.Get(1, "A"))
		assert.Equal(t, "", table.Get(0, "Missing"))
		assert.Equal(t, "", table.Get(9, "A"))
	})

	t.Run("should build rows in header order", func(t *testing.T) {
		table := NewTable("S", [][]string{{"B", "A", "C"}})

		row := table.Build(map[string]string{"A": "1", "B": "2", "Z": "ignored"})
		assert.Equal(t, []string{"2", "1", ""}, row)
	})

	t.Run("should write cells by header name", func(t *testing.T) {
		store := NewMemoryStore()
		_, err := store.EnsureSheet(ctx, "S", []string{"A", "B"})
		require.NoError(t, err)
		require.NoError(t, store.AppendRow(ctx, "S", []string{"1", "2"}))

		table, err := Load(ctx, store, "S")
		require.NoError(t, err)
		require.NoError(t, table.Write(ctx, store, 0, Cell{Column: "B", Value: "x"}))

		err = table.Write(ctx, store, 0, Cell{Column: "Nope", Value: "x"})
		assert.ErrorIs(t, err, ErrColumnNotFound)

		table, err = Load(ctx, store, "S")
		require.NoError(t, err)
		assert.Equal(t, "x", table.Get(0, "B"))
	})

	t.Run("should leave the row untouched when a later column is missing", func(t *testing.T) {
		store := NewMemoryStore()
		_, err := store.EnsureSheet(ctx, "S", []string{"Status", "Notes"})
		require.NoError(t, err)
		require.NoError(t, store.AppendRow(ctx, "S", []string{"pending", ""}))

		table, err := Load(ctx, store, "S")
		require.NoError(t, err)
		err = table.Write(ctx, store, 0,
			Cell{Column: "Status", Value: "paid"},
			Cell{Column: "ReceiptNumber", Value: "OR-1"},
		)
		assert.ErrorIs(t, err, ErrColumnNotFound)

		rows, err := store.Rows(ctx, "S")
		require.NoError(t, err)
		assert.Equal(t, []string{"pending", ""}, rows[1])
	})
}
