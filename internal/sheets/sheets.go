package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/dshills/scorecard/internal/review"
)

// ErrNoCredentials is returned when no service-account key is configured.
var ErrNoCredentials = errors.New("no Google service-account credentials configured")

// Result describes a completed export.
type Result struct {
	SpreadsheetID string `json:"spreadsheetId"`
	URL           string `json:"url"`
	Rows          int    `json:"rows"`
	Created       bool   `json:"created"`
}

// Sheets allows 60 requests per minute per user. An export makes at most
// four calls, so the burst covers a single export.
const (
	requestsPerSecond = 1.0
	requestBurst      = 4
)

// Exporter writes records to Google Sheets.
type Exporter struct {
	svc     *sheetsapi.Service
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewExporter builds an exporter authenticated with the service-account key
// in credentialsFile.
func NewExporter(ctx context.Context, credentialsFile string, logger *slog.Logger) (*Exporter, error) {
	if credentialsFile == "" {
		return nil, ErrNoCredentials
	}
	credentials, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}
	jwt, err := google.JWTConfigFromJSON(credentials, sheetsapi.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}
	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(jwt.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("creating sheets client: %w", err)
	}
	return NewExporterWithService(svc, logger), nil
}

// NewExporterWithService wraps an existing Sheets service.
func NewExporterWithService(svc *sheetsapi.Service, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		svc:     svc,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
		logger:  logger.With("component", "sheets"),
	}
}

func (e *Exporter) wait(ctx context.Context) error {
	if err := e.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	return nil
}

// Export replaces the contents of the first sheet of spreadsheetID with
// records. An empty spreadsheetID creates a new spreadsheet.
func (e *Exporter) Export(ctx context.Context, spreadsheetID string, records []review.Record) (Result, error) {
	var (
		sheet   *sheetsapi.SheetProperties
		created bool
		err     error
	)
	if spreadsheetID == "" {
		spreadsheetID, sheet, err = e.create(ctx)
		created = true
	} else {
		sheet, err = e.firstSheet(ctx, spreadsheetID)
	}
	if err != nil {
		return Result{}, err
	}

	target := quoteSheet(sheet.Title)
	if err := e.wait(ctx); err != nil {
		return Result{}, err
	}
	if _, err := e.svc.Spreadsheets.Values.Clear(spreadsheetID, target, &sheetsapi.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return Result{}, fmt.Errorf("clearing sheet: %w", err)
	}

	values := Values(records)
	if err := e.wait(ctx); err != nil {
		return Result{}, err
	}
	_, err = e.svc.Spreadsheets.Values.Update(spreadsheetID, target+"!A1", &sheetsapi.ValueRange{Values: values}).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return Result{}, fmt.Errorf("updating spreadsheet: %w", err)
	}

	freeze := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			UpdateSheetProperties: &sheetsapi.UpdateSheetPropertiesRequest{
				Properties: &sheetsapi.SheetProperties{
					SheetId:        sheet.SheetId,
					GridProperties: &sheetsapi.GridProperties{FrozenRowCount: 1},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		}},
	}
	if err := e.wait(ctx); err != nil {
		return Result{}, err
	}
	if _, err := e.svc.Spreadsheets.BatchUpdate(spreadsheetID, freeze).Context(ctx).Do(); err != nil {
		return Result{}, fmt.Errorf("freezing header row: %w", err)
	}

	e.logger.Info("exported records", "spreadsheet", spreadsheetID, "rows", len(records), "created", created)
	return Result{
		SpreadsheetID: spreadsheetID,
		URL:           URL(spreadsheetID),
		Rows:          len(records),
		Created:       created,
	}, nil
}

func (e *Exporter) create(ctx context.Context) (string, *sheetsapi.SheetProperties, error) {
	spreadsheet := &sheetsapi.Spreadsheet{
		Properties: &sheetsapi.SpreadsheetProperties{
			Title: "Product Scorecard " + time.Now().Format("2006-01-02 15:04"),
		},
		Sheets: []*sheetsapi.Sheet{
			{Properties: &sheetsapi.SheetProperties{Title: "Scorecard"}},
		},
	}
	if err := e.wait(ctx); err != nil {
		return "", nil, err
	}
	spreadsheet, err := e.svc.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", nil, fmt.Errorf("creating spreadsheet: %w", err)
	}
	sheet, err := first(spreadsheet)
	if err != nil {
		return "", nil, err
	}
	e.logger.Debug("created spreadsheet", "spreadsheet", spreadsheet.SpreadsheetId)
	return spreadsheet.SpreadsheetId, sheet, nil
}

func (e *Exporter) firstSheet(ctx context.Context, spreadsheetID string) (*sheetsapi.SheetProperties, error) {
	if err := e.wait(ctx); err != nil {
		return nil, err
	}
	spreadsheet, err := e.svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("getting spreadsheet: %w", err)
	}
	return first(spreadsheet)
}

func first(spreadsheet *sheetsapi.Spreadsheet) (*sheetsapi.SheetProperties, error) {
	if len(spreadsheet.Sheets) == 0 || spreadsheet.Sheets[0].Properties == nil {
		return nil, fmt.Errorf("spreadsheet %s has no sheets", spreadsheet.SpreadsheetId)
	}
	return spreadsheet.Sheets[0].Properties, nil
}

// Values lays out records as sheet rows: the data file header followed by
// one row per record with numeric cells as numbers.
func Values(records []review.Record) [][]any {
	cols := review.Columns()
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}

	values := make([][]any, 0, len(records)+1)
	values = append(values, header)
	for _, rec := range records {
		row := make([]any, 0, len(cols))
		row = append(row, rec.Link, rec.Name, rec.DateFound.String())
		for _, v := range rec.Scores.Values() {
			row = append(row, v)
		}
		row = append(row, rec.TotalPoints)
		values = append(values, row)
	}
	return values
}

// URL returns the browser URL of a spreadsheet.
func URL(spreadsheetID string) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/edit", spreadsheetID)
}

// quoteSheet returns title in A1 notation quoting.
func quoteSheet(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
