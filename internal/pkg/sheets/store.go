package sheets

import (
	"context"
	"errors"
	"strings"
)

var ErrSheetNotFound = errors.New("sheet not found")

// Store reads and appends rows of a named sheet. Rows are returned as text,
// header row included, in sheet order.
type Store interface {
	ReadRows(ctx context.Context, sheet string) ([][]string, error)
	AppendRow(ctx context.Context, sheet string, row []string) error
}

// Row is a data row together with its 1-based position in the sheet.
type Row struct {
	Number int
	Cells  []string
}

// DataRows drops the header row and rows whose cells are all blank.
func DataRows(rows [][]string) []Row {
	if len(rows) <= 1 {
		return nil
	}
	out := make([]Row, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		if isBlank(cells) {
			continue
		}
		out = append(out, Row{Number: i + 2, Cells: cells})
	}
	return out
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
