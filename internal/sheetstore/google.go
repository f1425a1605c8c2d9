package sheetstore

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fizzbo19/dealercommand/internal/observability/metrics"
	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// GoogleStore persists tables as tabs of a single Google spreadsheet.
type GoogleStore struct {
	svc           *sheets.Service
	spreadsheetID string
	log           *zap.Logger
	metrics       *metrics.Metrics
}

// NewGoogleStore builds a Store over the Sheets API using service-account
// credentials.
func NewGoogleStore(ctx context.Context, credentialsFile, spreadsheetID string, log *zap.Logger, m *metrics.Metrics) (*GoogleStore, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read google credentials: %w", err)
	}

	jwtCfg, err := google.JWTConfigFromJSON(data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse google credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(jwtCfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("build sheets service: %w", err)
	}

	return &GoogleStore{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		log:           log.Named("sheetstore"),
		metrics:       m,
	}, nil
}

// GetTable implements Store. Connection and missing-tab failures come back as
// an empty table.
func (s *GoogleStore) GetTable(ctx context.Context, table string) []Row {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, table).Context(ctx).Do()
	if err != nil {
		s.log.Warn("get table failed", zap.String("table", table), zap.Error(err))
		s.metrics.RecordSheetOp(ctx, table, "get", false)
		return nil
	}
	s.metrics.RecordSheetOp(ctx, table, "get", true)

	if len(resp.Values) < 2 {
		return nil
	}

	header := stringCells(resp.Values[0])
	rows := make([]Row, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		cells := stringCells(raw)
		row := make(Row, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(cells) {
				row[col] = cells[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Upsert implements Store. A missing tab is created with a header derived
// from the record before the first write.
func (s *GoogleStore) Upsert(ctx context.Context, table, keyColumn string, row Row) bool {
	header, values, err := s.fetchRaw(ctx, table)
	if err != nil {
		if err = s.createTab(ctx, table, row); err != nil {
			s.log.Warn("create tab failed", zap.String("table", table), zap.Error(err))
			s.metrics.RecordSheetOp(ctx, table, "upsert", false)
			return false
		}
		header, values, err = s.fetchRaw(ctx, table)
		if err != nil {
			s.metrics.RecordSheetOp(ctx, table, "upsert", false)
			return false
		}
	}

	keyIdx := indexOf(header, keyColumn)
	if keyIdx < 0 {
		s.log.Warn("key column missing", zap.String("table", table), zap.String("key", keyColumn))
		s.metrics.RecordSheetOp(ctx, table, "upsert", false)
		return false
	}

	record := make([]interface{}, len(header))
	for i, col := range header {
		record[i] = row[col]
	}

	key := strings.ToLower(strings.TrimSpace(row[keyColumn]))
	for i, raw := range values {
		cells := stringCells(raw)
		if keyIdx < len(cells) && strings.ToLower(strings.TrimSpace(cells[keyIdx])) == key {
			// Sheet rows are 1-based and row 1 is the header.
			target := fmt.Sprintf("%s!A%d", table, i+2)
			return s.write(ctx, table, target, record, "update")
		}
	}

	target := fmt.Sprintf("%s!A1", table)
	_, err = s.svc.Spreadsheets.Values.Append(s.spreadsheetID, target, &sheets.ValueRange{
		Values: [][]interface{}{record},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		s.log.Warn("append failed", zap.String("table", table), zap.Error(err))
		s.metrics.RecordSheetOp(ctx, table, "upsert", false)
		return false
	}
	s.metrics.RecordSheetOp(ctx, table, "upsert", true)
	return true
}

func (s *GoogleStore) write(ctx context.Context, table, target string, record []interface{}, op string) bool {
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, target, &sheets.ValueRange{
		Values: [][]interface{}{record},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		s.log.Warn("update failed", zap.String("table", table), zap.Error(err))
		s.metrics.RecordSheetOp(ctx, table, op, false)
		return false
	}
	s.metrics.RecordSheetOp(ctx, table, op, true)
	return true
}

func (s *GoogleStore) fetchRaw(ctx context.Context, table string) ([]string, [][]interface{}, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, table).Context(ctx).Do()
	if err != nil {
		return nil, nil, err
	}
	if len(resp.Values) == 0 {
		return nil, nil, fmt.Errorf("table %s has no header", table)
	}
	return stringCells(resp.Values[0]), resp.Values[1:], nil
}

func (s *GoogleStore) createTab(ctx context.Context, table string, row Row) error {
	_, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: table},
			},
		}},
	}).Context(ctx).Do()
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		return err
	}

	columns := make([]string, 0, len(row))
	for col := range row {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col
	}

	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, fmt.Sprintf("%s!A1", table), &sheets.ValueRange{
		Values: [][]interface{}{header},
	}).ValueInputOption("RAW").Context(ctx).Do()
	return err
}

func stringCells(raw []interface{}) []string {
	out := make([]string, len(raw))
	for i, v := range raw {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func indexOf(header []string, column string) int {
	for i, col := range header {
		if strings.EqualFold(col, column) {
			return i
		}
	}
	return -1
}
