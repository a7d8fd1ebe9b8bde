package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/medicshift/shift-report-backend/internal/pkg/sheets"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var (
		file      string
		dsn       string
		sheetList []string
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy workbook sheets into the postgres row store",
		Long: "Copy workbook sheets into the postgres row store. Each imported sheet\n" +
			"replaces the rows already stored under the same name.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				return errors.New("--dsn or DATABASE_URL is required")
			}
			if app.OpenImporter == nil {
				return errors.New("import is not available in this build")
			}

			names := sheetList
			if len(names) == 0 {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("open workbook: %w", err)
				}
				names, err = sheets.SheetNames(f)
				_ = f.Close()
				if err != nil {
					return err
				}
			}

			importer, closeFn, err := app.OpenImporter(cmd.Context(), dsn)
			if err != nil {
				return err
			}
			defer closeFn()

			source := sheets.NewXLSXStore(file)
			for _, name := range names {
				rows, err := source.ReadRows(cmd.Context(), name)
				if err != nil {
					return fmt.Errorf("read %s: %w", name, err)
				}
				if err := importer.ReplaceSheet(cmd.Context(), name, rows); err != nil {
					return fmt.Errorf("import %s: %w", name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows\n", name, len(rows))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the exported .xlsx workbook")
	cmd.Flags().StringVar(&dsn, "dsn", os.Getenv("DATABASE_URL"), "postgres connection string")
	cmd.Flags().StringSliceVar(&sheetList, "sheet", nil, "sheets to import (default: every sheet)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
