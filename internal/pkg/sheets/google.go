package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const (
	readRange   = "A:Z"
	appendRange = "A:T"
)

// GoogleStore reads and appends rows through the Sheets v4 API.
type GoogleStore struct {
	values        *sheetsapi.SpreadsheetsValuesService
	spreadsheetID string
}

// NewGoogleStore authenticates with a service account key (the JSON file
// downloaded from the cloud console).
func NewGoogleStore(ctx context.Context, credentialsJSON []byte, spreadsheetID string) (*GoogleStore, error) {
	cfg, err := google.JWTConfigFromJSON(credentialsJSON, sheetsapi.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account credentials: %w", err)
	}
	return NewGoogleStoreWithOptions(ctx, spreadsheetID, option.WithHTTPClient(cfg.Client(ctx)))
}

// NewGoogleStoreWithOptions builds the API client from opts, e.g. an
// already authorized HTTP client or a different endpoint.
func NewGoogleStoreWithOptions(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*GoogleStore, error) {
	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &GoogleStore{values: svc.Spreadsheets.Values, spreadsheetID: spreadsheetID}, nil
}

func (s *GoogleStore) ReadRows(ctx context.Context, sheet string) ([][]string, error) {
	vr, err := s.values.Get(s.spreadsheetID, a1(sheet, readRange)).
		MajorDimension("ROWS").
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, apiError(sheet, err)
	}

	rows := make([][]string, len(vr.Values))
	for i, values := range vr.Values {
		cells := make([]string, len(values))
		for j, v := range values {
			cells[j] = cellText(v)
		}
		rows[i] = cells
	}
	return rows, nil
}

func (s *GoogleStore) AppendRow(ctx context.Context, sheet string, row []string) error {
	values := make([]any, len(row))
	for i, v := range row {
		values[i] = v
	}

	_, err := s.values.Append(s.spreadsheetID, a1(sheet, appendRange), &sheetsapi.ValueRange{
		MajorDimension: "ROWS",
		Values:         [][]any{values},
	}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return apiError(sheet, err)
	}
	return nil
}

// a1 quotes the sheet name so names with spaces or punctuation stay valid.
func a1(sheet, cells string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'!" + cells
}

// apiError maps a missing sheet to ErrSheetNotFound. The API answers
// 400 "Unable to parse range" when the tab does not exist.
func apiError(sheet string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Code == http.StatusNotFound ||
			(gerr.Code == http.StatusBadRequest && strings.Contains(gerr.Message, "Unable to parse range")) {
			return fmt.Errorf("%w: %s", ErrSheetNotFound, sheet)
		}
	}
	return fmt.Errorf("sheets api: %w", err)
}

func cellText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
