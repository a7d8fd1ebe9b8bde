package postgresql

import (
	"context"
	"fmt"

	"github.com/medicshift/shift-report-backend/internal/pkg/database"
	"github.com/medicshift/shift-report-backend/internal/pkg/sheets"
)

const sheetRowsSchema = `
CREATE TABLE IF NOT EXISTS sheet_rows (
	id         BIGSERIAL PRIMARY KEY,
	sheet      TEXT NOT NULL,
	cells      TEXT[] NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS sheet_rows_sheet_id_idx ON sheet_rows (sheet, id);
`

// SheetRowStore keeps spreadsheet rows in PostgreSQL, one row per record in
// insertion order. It implements sheets.Store.
type SheetRowStore struct {
	db *database.DB
}

var _ sheets.Store = (*SheetRowStore)(nil)

func NewSheetRowStore(db *database.DB) *SheetRowStore {
	return &SheetRowStore{db: db}
}

// EnsureSchema creates the table when it does not exist yet.
func (s *SheetRowStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, sheetRowsSchema); err != nil {
		return fmt.Errorf("ensure sheet_rows schema: %w", err)
	}
	return nil
}

// ReadRows returns the rows of sheet. A sheet without rows is reported as
// ErrSheetNotFound so every backend behaves the same for a fresh datastore.
func (s *SheetRowStore) ReadRows(ctx context.Context, sheet string) ([][]string, error) {
	q := GetQuerier(ctx, s.db)
	rows, err := q.Query(ctx, `SELECT cells FROM sheet_rows WHERE sheet = $1 ORDER BY id`, sheet)
	if err != nil {
		return nil, fmt.Errorf("query sheet %s: %w", sheet, err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var cells []string
		if err := rows.Scan(&cells); err != nil {
			return nil, fmt.Errorf("scan sheet row: %w", err)
		}
		out = append(out, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sheet %s: %w", sheet, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", sheets.ErrSheetNotFound, sheet)
	}
	return out, nil
}

func (s *SheetRowStore) AppendRow(ctx context.Context, sheet string, row []string) error {
	q := GetQuerier(ctx, s.db)
	if row == nil {
		row = []string{}
	}
	if _, err := q.Exec(ctx, `INSERT INTO sheet_rows (sheet, cells) VALUES ($1, $2)`, sheet, row); err != nil {
		return fmt.Errorf("append to sheet %s: %w", sheet, err)
	}
	return nil
}

// ReplaceSheet swaps the full content of sheet in one transaction.
func (s *SheetRowStore) ReplaceSheet(ctx context.Context, sheet string, rows [][]string) error {
	return WithTransaction(ctx, s.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, s.db)
		if _, err := q.Exec(ctx, `DELETE FROM sheet_rows WHERE sheet = $1`, sheet); err != nil {
			return fmt.Errorf("clear sheet %s: %w", sheet, err)
		}
		for _, row := range rows {
			if err := s.AppendRow(ctx, sheet, row); err != nil {
				return err
			}
		}
		return nil
	})
}
