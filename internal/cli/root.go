package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

// SheetImporter replaces a sheet's rows in a datastore.
type SheetImporter interface {
	ReplaceSheet(ctx context.Context, sheet string, rows [][]string) error
}

// App holds what the commands need from the outside world.
type App struct {
	Location *time.Location
	// OpenImporter connects to the row store named by dsn. The returned
	// func releases the connection.
	OpenImporter func(ctx context.Context, dsn string) (SheetImporter, func(), error)
}

// NewRootCmd creates the top-level "shiftreport" command.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "shiftreport",
		Short:         "Offline shift hour reports over an exported workbook",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMonthlyCmd(app),
		newMonthsCmd(app),
		newImportCmd(app),
	)
	return root
}
