package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dshills/scorecard/internal/config"
	"github.com/dshills/scorecard/internal/output"
	"github.com/dshills/scorecard/internal/review"
	"github.com/dshills/scorecard/internal/sheets"
)

var (
	flagExportFormat  string
	flagSpreadsheetID string
	flagCredentials   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export records to a file or Google Sheets",
	Long: "Export the (optionally filtered) records. Without a subcommand the " +
		"records are written in --format (default csv) to --out or stdout.",
	Example: "  scorecard export --out reviews.csv\n" +
		"  scorecard export --format html --out scorecard.html --range quality=8:10\n" +
		"  scorecard export sheets --credentials key.json",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ranges, err := review.ParseRanges(flagRanges)
		if err != nil {
			return err
		}
		writer, err := output.GetWriter(flagExportFormat, false)
		if err != nil {
			return err
		}
		e, err := setup(nil)
		if err != nil {
			return err
		}

		report, err := loadReport(e, ranges)
		if err != nil {
			fail(err)
			return nil
		}
		if err := emit(writer, report, flagOut); err != nil {
			fail(err)
			return nil
		}
		if flagOut != "" {
			fmt.Fprintf(stderr, "Exported %d products to %s\n", len(report.Rows), flagOut)
		}
		return nil
	},
}

var exportSheetsCmd = &cobra.Command{
	Use:   "sheets",
	Short: "Export records to a Google Sheets spreadsheet",
	Long: "Replace the first sheet of a spreadsheet with the records, using a " +
		"service-account key. Without a spreadsheet ID a new spreadsheet is created " +
		"and its ID saved to the config file.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ranges, err := review.ParseRanges(flagRanges)
		if err != nil {
			return err
		}
		e, err := setup(map[string]string{
			"sheets.spreadsheetId":   flagSpreadsheetID,
			"sheets.credentialsFile": flagCredentials,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		exporter, err := sheets.NewExporter(ctx, e.cfg.Sheets.CredentialsFile, e.logger)
		if err != nil {
			fail(err)
			return nil
		}
		records, err := e.store.Load()
		if err != nil {
			fail(err)
			return nil
		}
		res, err := exporter.Export(ctx, e.cfg.Sheets.SpreadsheetID, review.Filter(records, ranges))
		if err != nil {
			fail(err)
			return nil
		}

		fmt.Fprintf(stdout, "Exported %d products to %s\n", res.Rows, res.URL)
		if res.Created {
			if err := rememberSpreadsheet(res.SpreadsheetID); err != nil {
				fmt.Fprintf(stderr, "Warning: could not save spreadsheet ID: %v\n", err)
			} else {
				fmt.Fprintf(stdout, "Saved spreadsheet ID %s to config\n", res.SpreadsheetID)
			}
		}
		return nil
	},
}

func rememberSpreadsheet(id string) error {
	cfg, err := config.LoadStored()
	if err != nil {
		return err
	}
	if err := config.SetField(&cfg, "sheets.spreadsheetId", id); err != nil {
		return err
	}
	return config.Save(cfg)
}

func init() {
	addViewFlags(exportCmd)
	exportCmd.Flags().StringVar(&flagExportFormat, "format", "csv", "Export format (csv, json, markdown, html, text)")

	exportSheetsCmd.Flags().StringArrayVar(&flagRanges, "range", nil, "Keep records with field in [min,max], as field=min:max (repeatable)")
	exportSheetsCmd.Flags().StringVar(&flagSpreadsheetID, "spreadsheet-id", "", "Target spreadsheet ID (default from config; empty creates one)")
	exportSheetsCmd.Flags().StringVar(&flagCredentials, "credentials", "", "Service-account key JSON file (default from config)")
	exportCmd.AddCommand(exportSheetsCmd)
}
