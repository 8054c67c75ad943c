// Package gsheets implements the grade sheet gateway over the Google Sheets v4 API.
package gsheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"

	"github.com/gradebook/gradebook-sheets/grades"
)

// Gateway reads and writes a single worksheet of a Google Sheets spreadsheet. Ranges without
// an explicit sheet name are qualified with the worksheet title.
type Gateway struct {
	google      *sheets.Service
	spreadsheet string
	sheet       string
}

func NewGateway(google *sheets.Service, spreadsheet string, sheet string) *Gateway {
	return &Gateway{
		google:      google,
		spreadsheet: spreadsheet,
		sheet:       sheet,
	}
}

func (g *Gateway) ReadRange(ctx context.Context, area string) (grades.Table, error) {
	response, err := g.google.Spreadsheets.Values.Get(g.spreadsheet, g.qualify(area)).Context(ctx).Do()
	if err != nil {
		return nil, failed(fmt.Sprintf("unable to retrieve data from %v", g.qualify(area)), err)
	}

	return makeTable(response.Values), nil
}

// WriteCell writes a single value with USER_ENTERED semantics, growing the worksheet grid first
// if the cell lies outside it.
func (g *Gateway) WriteCell(ctx context.Context, row, col int, value any) error {
	return g.write(ctx, row, col, value, "USER_ENTERED")
}

// WriteText writes a single value as is (RAW), growing the worksheet grid first if the cell lies
// outside it.
func (g *Gateway) WriteText(ctx context.Context, row, col int, text string) error {
	return g.write(ctx, row, col, text, "RAW")
}

func (g *Gateway) write(ctx context.Context, row, col int, value any, option string) error {
	rows, cols, err := g.Dimensions(ctx)
	if err != nil {
		return err
	}

	if col+1 > cols {
		if err := g.ExpandColumns(ctx, col+1); err != nil {
			return err
		}
	}

	if row+1 > rows {
		if err := g.ExpandRows(ctx, row+1); err != nil {
			return err
		}
	}

	area := g.qualify(grades.ToCellAddress(row, col))
	rq := sheets.ValueRange{
		Range:          area,
		MajorDimension: "ROWS",
		Values:         [][]interface{}{{value}},
	}

	if _, err := g.google.Spreadsheets.Values.Update(g.spreadsheet, area, &rq).
		ValueInputOption(option).
		Context(ctx).
		Do(); err != nil {
		return failed(fmt.Sprintf("error writing %v", area), err)
	}

	return nil
}

// WriteRange writes a block of values as is (RAW).
func (g *Gateway) WriteRange(ctx context.Context, area string, values [][]interface{}) error {
	rq := sheets.ValueRange{
		Range:          g.qualify(area),
		MajorDimension: "ROWS",
		Values:         values,
	}

	if _, err := g.google.Spreadsheets.Values.Update(g.spreadsheet, rq.Range, &rq).
		ValueInputOption("RAW").
		Context(ctx).
		Do(); err != nil {
		return failed(fmt.Sprintf("error writing %v", rq.Range), err)
	}

	return nil
}

// Clear erases the values (but not the formatting) in the ranges.
func (g *Gateway) Clear(ctx context.Context, ranges ...string) error {
	rq := sheets.BatchClearValuesRequest{}
	for _, r := range ranges {
		rq.Ranges = append(rq.Ranges, g.qualify(r))
	}

	if _, err := g.google.Spreadsheets.Values.BatchClear(g.spreadsheet, &rq).Context(ctx).Do(); err != nil {
		return failed("error clearing worksheet", err)
	}

	return nil
}

// Dimensions returns the row and column count of the worksheet grid.
func (g *Gateway) Dimensions(ctx context.Context) (int, int, error) {
	properties, err := g.properties(ctx)
	if err != nil {
		return 0, 0, err
	}

	if properties.GridProperties == nil {
		return 0, 0, nil
	}

	return int(properties.GridProperties.RowCount), int(properties.GridProperties.ColumnCount), nil
}

// ExpandRows grows the worksheet grid to the number of rows. A grid that is already at least
// that large is left unchanged.
func (g *Gateway) ExpandRows(ctx context.Context, rows int) error {
	properties, err := g.properties(ctx)
	if err != nil {
		return err
	}

	if properties.GridProperties != nil && int64(rows) <= properties.GridProperties.RowCount {
		return nil
	}

	return g.resize(ctx, properties.SheetId, &sheets.GridProperties{RowCount: int64(rows)}, "gridProperties.rowCount")
}

// ExpandColumns grows the worksheet grid to the number of columns. A grid that is already at
// least that wide is left unchanged.
func (g *Gateway) ExpandColumns(ctx context.Context, columns int) error {
	properties, err := g.properties(ctx)
	if err != nil {
		return err
	}

	if properties.GridProperties != nil && int64(columns) <= properties.GridProperties.ColumnCount {
		return nil
	}

	return g.resize(ctx, properties.SheetId, &sheets.GridProperties{ColumnCount: int64(columns)}, "gridProperties.columnCount")
}

func (g *Gateway) resize(ctx context.Context, sheetId int64, grid *sheets.GridProperties, fields string) error {
	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			&sheets.Request{
				UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
					Properties: &sheets.SheetProperties{
						SheetId:         sheetId,
						GridProperties:  grid,
						ForceSendFields: []string{"SheetId"},
					},
					Fields: fields,
				},
			},
		},
	}

	if _, err := g.google.Spreadsheets.BatchUpdate(g.spreadsheet, &rq).Context(ctx).Do(); err != nil {
		return failed(fmt.Sprintf("error resizing worksheet '%v'", g.sheet), err)
	}

	return nil
}

func (g *Gateway) properties(ctx context.Context) (*sheets.SheetProperties, error) {
	spreadsheet, err := g.google.Spreadsheets.Get(g.spreadsheet).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, failed("unable to retrieve spreadsheet properties", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && strings.ToLower(strings.TrimSpace(sheet.Properties.Title)) == strings.ToLower(strings.TrimSpace(g.sheet)) {
			return sheet.Properties, nil
		}
	}

	return nil, &grades.Error{
		Kind:    grades.SchemaPrecondition,
		Message: fmt.Sprintf("unable to identify worksheet '%v'", g.sheet),
	}
}

func (g *Gateway) qualify(area string) string {
	if strings.Contains(area, "!") || g.sheet == "" {
		return area
	}

	return fmt.Sprintf("'%v'!%v", strings.ReplaceAll(g.sheet, "'", "''"), area)
}

func failed(msg string, err error) error {
	e := grades.Error{
		Kind:    grades.GatewayFailure,
		Message: msg,
		Err:     err,
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		e.Status = gerr.Code
		e.Body = gerr.Body
	}

	return &e
}
