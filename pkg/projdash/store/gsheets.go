package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/ukaji3/projdash-go/pkg/projdash/cellref"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GSheets is a Store backed by a Google Sheets spreadsheet.
type GSheets struct {
	srv           *sheets.Service
	spreadsheetID string
	sheetIDs      map[string]int64
}

// NewGSheets authenticates with a service-account key file and opens the
// spreadsheet.
func NewGSheets(ctx context.Context, credentialsPath, spreadsheetID string) (*GSheets, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	config, err := google.JWTConfigFromJSON(data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return NewGSheetsWithService(srv, spreadsheetID), nil
}

// NewGSheetsWithService uses an already configured Sheets service.
func NewGSheetsWithService(srv *sheets.Service, spreadsheetID string) *GSheets {
	return &GSheets{
		srv:           srv,
		spreadsheetID: spreadsheetID,
	}
}

// ListSheets returns the sheet titles in tab order.
func (g *GSheets) ListSheets() ([]string, error) {
	ss, err := g.srv.Spreadsheets.Get(g.spreadsheetID).
		Fields("sheets/properties(sheetId,title,index)").
		Context(context.Background()).
		Do()
	if err != nil {
		return nil, fmt.Errorf("get spreadsheet %s: %w", g.spreadsheetID, err)
	}

	g.sheetIDs = make(map[string]int64, len(ss.Sheets))
	names := make([]string, 0, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh.Properties == nil {
			continue
		}
		g.sheetIDs[sh.Properties.Title] = sh.Properties.SheetId
		names = append(names, sh.Properties.Title)
	}
	return names, nil
}

// Sheet returns the named sheet. The sheet list is fetched again on every
// call, so a tab deleted since the last listing is reported as
// ErrSheetNotFound.
func (g *GSheets) Sheet(name string) (Sheet, error) {
	if _, err := g.ListSheets(); err != nil {
		return nil, err
	}
	id, ok := g.sheetIDs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return &gsheet{g: g, name: name, id: id}, nil
}

// notFound maps the API's answer for a range on a deleted tab to
// ErrSheetNotFound.
func notFound(name string, err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}
	if gerr.Code == http.StatusNotFound ||
		(gerr.Code == http.StatusBadRequest && strings.Contains(gerr.Message, "Unable to parse range")) {
		return fmt.Errorf("%w: %q: %v", ErrSheetNotFound, name, err)
	}
	return err
}

type gsheet struct {
	g    *GSheets
	name string
	id   int64
}

func (s *gsheet) Name() string {
	return s.name
}

// a1 quotes the sheet title the way the Sheets API expects.
func (s *gsheet) a1(r *cellref.Range) string {
	quoted := "'" + strings.ReplaceAll(s.name, "'", "''") + "'"
	if r == nil {
		return quoted
	}
	return quoted + "!" + r.String()
}

func (s *gsheet) gridRange(r cellref.Range) *sheets.GridRange {
	c1, r1, c2, r2 := r.Bounds()
	return &sheets.GridRange{
		SheetId:          s.id,
		StartRowIndex:    int64(r1 - 1),
		EndRowIndex:      int64(r2),
		StartColumnIndex: int64(c1 - 1),
		EndColumnIndex:   int64(c2),
	}
}

func (s *gsheet) batch(requests ...*sheets.Request) error {
	_, err := s.g.srv.Spreadsheets.BatchUpdate(s.g.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(context.Background()).Do()
	if err != nil {
		return fmt.Errorf("batch update %q: %w", s.name, err)
	}
	return nil
}

func (s *gsheet) ReadRange(r cellref.Range) ([][]interface{}, error) {
	resp, err := s.g.srv.Spreadsheets.Values.Get(s.g.spreadsheetID, s.a1(&r)).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(context.Background()).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.a1(&r), notFound(s.name, err))
	}
	return resp.Values, nil
}

func (s *gsheet) WriteRange(r cellref.Range, grid [][]interface{}) error {
	values := make([][]interface{}, len(grid))
	for i, row := range grid {
		values[i] = make([]interface{}, len(row))
		for j, v := range row {
			// null leaves a cell untouched in the Sheets API
			if v == nil {
				v = ""
			}
			values[i][j] = v
		}
	}

	_, err := s.g.srv.Spreadsheets.Values.Update(s.g.spreadsheetID, s.a1(&r), &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").Context(context.Background()).Do()
	if err != nil {
		return fmt.Errorf("write %s: %w", s.a1(&r), notFound(s.name, err))
	}
	return nil
}

func (s *gsheet) ClearRange(r cellref.Range) error {
	_, err := s.g.srv.Spreadsheets.Values.Clear(s.g.spreadsheetID, s.a1(&r), &sheets.ClearValuesRequest{}).
		Context(context.Background()).
		Do()
	if err != nil {
		return fmt.Errorf("clear %s: %w", s.a1(&r), notFound(s.name, err))
	}
	return nil
}

func (s *gsheet) ClearFormat(r cellref.Range) error {
	return s.batch(&sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range:  s.gridRange(r),
			Cell:   &sheets.CellData{},
			Fields: "userEnteredFormat",
		},
	})
}

func (s *gsheet) SetNumberFormat(r cellref.Range, format string) error {
	return s.batch(&sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range: s.gridRange(r),
			Cell: &sheets.CellData{
				UserEnteredFormat: &sheets.CellFormat{
					NumberFormat: &sheets.NumberFormat{Type: "NUMBER", Pattern: format},
				},
			},
			Fields: "userEnteredFormat.numberFormat",
		},
	})
}

func (s *gsheet) SetFontFamily(r cellref.Range, family string) error {
	return s.batch(&sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range: s.gridRange(r),
			Cell: &sheets.CellData{
				UserEnteredFormat: &sheets.CellFormat{
					TextFormat: &sheets.TextFormat{FontFamily: family},
				},
			},
			Fields: "userEnteredFormat.textFormat.fontFamily",
		},
	})
}

func (s *gsheet) SetFontWeight(r cellref.Range, bold bool) error {
	return s.batch(&sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range: s.gridRange(r),
			Cell: &sheets.CellData{
				UserEnteredFormat: &sheets.CellFormat{
					TextFormat: &sheets.TextFormat{Bold: bold, ForceSendFields: []string{"Bold"}},
				},
			},
			Fields: "userEnteredFormat.textFormat.bold",
		},
	})
}

func (s *gsheet) SetAlignment(r cellref.Range, horizontal, vertical string) error {
	return s.batch(&sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range: s.gridRange(r),
			Cell: &sheets.CellData{
				UserEnteredFormat: &sheets.CellFormat{
					HorizontalAlignment: strings.ToUpper(horizontal),
					VerticalAlignment:   strings.ToUpper(vertical),
				},
			},
			Fields: "userEnteredFormat(horizontalAlignment,verticalAlignment)",
		},
	})
}

func (s *gsheet) SetFrozenColumns(n int) error {
	return s.batch(&sheets.Request{
		UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
			Properties: &sheets.SheetProperties{
				SheetId: s.id,
				GridProperties: &sheets.GridProperties{
					FrozenColumnCount: int64(n),
					ForceSendFields:   []string{"FrozenColumnCount"},
				},
			},
			Fields: "gridProperties.frozenColumnCount",
		},
	})
}

func (s *gsheet) SetRowHeight(row int, height float64) error {
	return s.batch(&sheets.Request{
		UpdateDimensionProperties: &sheets.UpdateDimensionPropertiesRequest{
			Range: &sheets.DimensionRange{
				SheetId:    s.id,
				Dimension:  "ROWS",
				StartIndex: int64(row - 1),
				EndIndex:   int64(row),
			},
			Properties: &sheets.DimensionProperties{PixelSize: int64(height)},
			Fields:     "pixelSize",
		},
	})
}

func (s *gsheet) AutoResizeColumns(first, last int) error {
	return s.batch(&sheets.Request{
		AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
			Dimensions: &sheets.DimensionRange{
				SheetId:    s.id,
				Dimension:  "COLUMNS",
				StartIndex: int64(first - 1),
				EndIndex:   int64(last),
			},
		},
	})
}

func (s *gsheet) LastRow() (int, error) {
	maxRow, _, err := s.bounds()
	return maxRow + 1, err
}

func (s *gsheet) LastColumn() (int, error) {
	_, maxCol, err := s.bounds()
	return maxCol + 1, err
}

func (s *gsheet) bounds() (int, int, error) {
	resp, err := s.g.srv.Spreadsheets.Values.Get(s.g.spreadsheetID, s.a1(nil)).
		Context(context.Background()).
		Do()
	if err != nil {
		return -1, -1, fmt.Errorf("read %s: %w", s.a1(nil), notFound(s.name, err))
	}
	maxRow, maxCol := interfaceBounds(resp.Values)
	return maxRow, maxCol, nil
}
