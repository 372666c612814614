package rowstore

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsStore implements Store on top of a single Google spreadsheet.
type SheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string

	// sheet title -> numeric sheet id, needed for row deletion.
	sheetIDs map[string]int64
}

func NewSheetsStore(ctx context.Context, spreadsheetID string, credentialsJSON []byte) (*SheetsStore, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	return &SheetsStore{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (s *SheetsStore) Tables(ctx context.Context) ([]string, error) {
	if err := s.loadSchema(ctx); err != nil {
		return nil, err
	}
	tables := make([]string, 0, len(s.sheetIDs))
	for title := range s.sheetIDs {
		tables = append(tables, title)
	}
	return tables, nil
}

func (s *SheetsStore) loadSchema(ctx context.Context) error {
	if s.sheetIDs != nil {
		return nil
	}
	resp, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to load spreadsheet schema: %w", err)
	}
	ids := make(map[string]int64, len(resp.Sheets))
	for _, sh := range resp.Sheets {
		if sh.Properties != nil {
			ids[sh.Properties.Title] = sh.Properties.SheetId
		}
	}
	s.sheetIDs = ids
	return nil
}

func (s *SheetsStore) Scan(ctx context.Context, table string) ([]Row, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, table).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to scan table %s: %w", table, err)
	}
	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("table %s has no header row", table)
	}

	headers := toStrings(resp.Values[0])
	rows := make([]Row, 0, len(resp.Values)-1)
	for i, raw := range resp.Values[1:] {
		values := toStrings(raw)
		fields := make(map[string]string, len(headers))
		for j, h := range headers {
			if j < len(values) {
				fields[h] = values[j]
			} else {
				fields[h] = ""
			}
		}
		rows = append(rows, &sheetRow{
			store:   s,
			table:   table,
			headers: headers,
			fields:  fields,
			// sheet rows are 1-based and the header occupies row 1
			rowNum: i + 2,
		})
	}
	return rows, nil
}

func (s *SheetsStore) Append(ctx context.Context, table string, fields map[string]string) error {
	header, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, table+"!1:1").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read header of table %s: %w", table, err)
	}
	if len(header.Values) == 0 {
		return fmt.Errorf("table %s has no header row", table)
	}

	headers := toStrings(header.Values[0])
	values := make([]interface{}, len(headers))
	for i, h := range headers {
		values[i] = fields[h]
	}

	_, err = s.svc.Spreadsheets.Values.Append(s.spreadsheetID, table, &sheets.ValueRange{
		Values: [][]interface{}{values},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append to table %s: %w", table, err)
	}
	return nil
}

type sheetRow struct {
	store   *SheetsStore
	table   string
	headers []string
	fields  map[string]string
	rowNum  int
}

func (r *sheetRow) Get(column string) string { return r.fields[column] }

func (r *sheetRow) Set(column, value string) { r.fields[column] = value }

func (r *sheetRow) Fields() map[string]string {
	out := make(map[string]string, len(r.fields))
	for k, v := range r.fields {
		out[k] = v
	}
	return out
}

func (r *sheetRow) Save(ctx context.Context) error {
	values := make([]interface{}, len(r.headers))
	for i, h := range r.headers {
		values[i] = r.fields[h]
	}
	rangeRef := fmt.Sprintf("%s!A%d", r.table, r.rowNum)
	_, err := r.store.svc.Spreadsheets.Values.Update(r.store.spreadsheetID, rangeRef, &sheets.ValueRange{
		Values: [][]interface{}{values},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to save row %d of table %s: %w", r.rowNum, r.table, err)
	}
	return nil
}

// Delete removes the row's dimension from the sheet. Handles scanned before
// the delete point at stale row numbers afterwards; callers rescan instead
// of reusing them.
func (r *sheetRow) Delete(ctx context.Context) error {
	if err := r.store.loadSchema(ctx); err != nil {
		return err
	}
	sheetID, ok := r.store.sheetIDs[r.table]
	if !ok {
		return fmt.Errorf("unknown table %s", r.table)
	}

	_, err := r.store.svc.Spreadsheets.BatchUpdate(r.store.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(r.rowNum - 1),
					EndIndex:   int64(r.rowNum),
				},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to delete row %d of table %s: %w", r.rowNum, r.table, err)
	}
	return nil
}

func toStrings(raw []interface{}) []string {
	out := make([]string, len(raw))
	for i, v := range raw {
		out[i] = fmt.Sprint(v)
	}
	return out
}
