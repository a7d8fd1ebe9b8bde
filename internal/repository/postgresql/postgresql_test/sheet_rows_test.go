package postgresql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/medicshift/shift-report-backend/internal/pkg/database"
	"github.com/medicshift/shift-report-backend/internal/pkg/sheets"
	"github.com/medicshift/shift-report-backend/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSheetRowStore(t *testing.T) (*postgresql.SheetRowStore, *database.DB) {
	t.Helper()
	ctx := context.Background()

	setup, ok, err := NewTestDatabase(ctx)
	if !ok {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, err)
	t.Cleanup(setup.Close)

	store := postgresql.NewSheetRowStore(setup.DB)
	require.NoError(t, store.EnsureSchema(ctx))
	require.NoError(t, setup.TruncateSheetRows(ctx))
	return store, setup.DB
}

func TestSheetRowStore_AppendAndRead(t *testing.T) {
	store, _ := setupSheetRowStore(t)
	ctx := context.Background()

	_, err := store.ReadRows(ctx, "Shift_card")
	assert.ErrorIs(t, err, sheets.ErrSheetNotFound)

	require.NoError(t, store.AppendRow(ctx, "Shift_card", []string{"timestamp", "medic"}))
	require.NoError(t, store.AppendRow(ctx, "Shift_card", []string{"01/01/2024 10:00:00", "דנה", "", "08:00"}))
	require.NoError(t, store.AppendRow(ctx, "Medic_card", []string{"x", "דנה"}))

	rows, err := store.ReadRows(ctx, "Shift_card")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"timestamp", "medic"},
		{"01/01/2024 10:00:00", "דנה", "", "08:00"},
	}, rows)
}

func TestSheetRowStore_ReplaceSheetIsAtomic(t *testing.T) {
	store, db := setupSheetRowStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendRow(ctx, "Doctor_card", []string{"name", "type"}))
	require.NoError(t, store.ReplaceSheet(ctx, "Doctor_card", [][]string{{"name", "type"}, {"ד\"ר כהן", "דמו"}}))

	rows, err := store.ReadRows(ctx, "Doctor_card")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	// A failure inside the transaction leaves the previous content in place.
	boom := errors.New("boom")
	err = postgresql.WithTransaction(ctx, db, func(ctx context.Context) error {
		require.NoError(t, store.AppendRow(ctx, "Doctor_card", []string{"ghost", ""}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	rows, err = store.ReadRows(ctx, "Doctor_card")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
