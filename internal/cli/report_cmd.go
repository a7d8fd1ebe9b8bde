package cli

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/medicshift/shift-report-backend/internal/domain/report"
	"github.com/medicshift/shift-report-backend/internal/pkg/sheets"
	"github.com/medicshift/shift-report-backend/internal/pkg/shifttime"
	"github.com/medicshift/shift-report-backend/internal/pkg/sse"
	"github.com/medicshift/shift-report-backend/internal/repository/sheet"
	reportService "github.com/medicshift/shift-report-backend/internal/service/report"
	"github.com/spf13/cobra"
)

const defaultShiftSheet = "Shift_card"

type workbookFlags struct {
	file  string
	sheet string
}

func (f *workbookFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "path to the exported .xlsx workbook")
	cmd.Flags().StringVar(&f.sheet, "sheet", defaultShiftSheet, "sheet holding shift rows")
	_ = cmd.MarkFlagRequired("file")
}

func (f *workbookFlags) reportService(app *App) (report.ReportService, error) {
	if _, err := os.Stat(f.file); err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	repo := sheet.NewShiftRepository(sheets.NewXLSXStore(f.file), f.sheet)
	return reportService.NewReportService(repo, shifttime.NewAggregator(app.Location, nil), sse.NewHub()), nil
}

func newMonthlyCmd(app *App) *cobra.Command {
	var (
		wb     workbookFlags
		month  string
		search string
	)
	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Print hours per medic for one month",
		Long: "Print hours per medic for one month. Without --month the newest month\n" +
			"in the workbook is used; --month all sums every row.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := wb.reportService(app)
			if err != nil {
				return err
			}
			result, err := svc.MonthlyReport(cmd.Context(), report.MonthlyReportRequest{Month: month, Search: search})
			if err != nil {
				return err
			}
			return printMonthly(cmd, result)
		},
	}
	wb.register(cmd)
	cmd.Flags().StringVarP(&month, "month", "m", "", `month label ("ינואר 2024"), YYYY-MM or "all"`)
	cmd.Flags().StringVarP(&search, "search", "s", "", "only medics whose name contains this text")
	return cmd
}

func printMonthly(cmd *cobra.Command, result report.MonthlyReport) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n\n", result.SelectedMonth.Label)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, t := range result.Totals {
		fmt.Fprintf(tw, "%s\t%s\n", t.MedicName, t.Hours)
	}
	fmt.Fprintf(tw, "סה\"כ\t%s\n", result.TotalHours)
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, kind := range slices.Sorted(maps.Keys(result.Diagnostics)) {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %d row(s): %s\n", result.Diagnostics[kind], kind)
	}
	return nil
}

func newMonthsCmd(app *App) *cobra.Command {
	var wb workbookFlags
	cmd := &cobra.Command{
		Use:   "months",
		Short: "List the months present in the workbook, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := wb.reportService(app)
			if err != nil {
				return err
			}
			result, err := svc.Months(cmd.Context())
			if err != nil {
				return err
			}
			for _, m := range result.Months {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", m.Key, m.Label)
			}
			return nil
		},
	}
	wb.register(cmd)
	return cmd
}
