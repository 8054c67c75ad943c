package gsheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type request struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

// fakeGoogle is just enough of the Sheets and Drive APIs for the gateway.
type fakeGoogle struct {
	sync.Mutex
	title     string
	sheetId   int64
	rows      int64
	columns   int64
	values    [][]interface{}
	revisions []*drive.Revision
	status    int
	requests  []request
}

func (f *fakeGoogle) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.Lock()
	defer f.Unlock()

	body, _ := io.ReadAll(r.Body)
	f.requests = append(f.requests, request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Body:   body,
	})

	if f.status != 0 {
		w.WriteHeader(f.status)
		fmt.Fprintf(w, `{"error":{"code":%v,"message":"denied","status":"PERMISSION_DENIED"}}`, f.status)
		return
	}

	path := r.URL.Path
	reply := func(v any) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v)
	}

	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/revisions"):
		reply(drive.RevisionList{Revisions: f.revisions})

	case r.Method == http.MethodGet && strings.Contains(path, "/values/"):
		reply(sheets.ValueRange{Values: f.values})

	case r.Method == http.MethodPut && strings.Contains(path, "/values/"):
		reply(sheets.UpdateValuesResponse{UpdatedCells: 1})

	case r.Method == http.MethodPost && strings.HasSuffix(path, "/values:batchClear"):
		reply(sheets.BatchClearValuesResponse{})

	case r.Method == http.MethodPost && strings.HasSuffix(path, ":batchUpdate"):
		rq := sheets.BatchUpdateSpreadsheetRequest{}
		json.Unmarshal(body, &rq)
		for _, v := range rq.Requests {
			if p := v.UpdateSheetProperties; p != nil && p.Properties.SheetId == f.sheetId {
				if p.Fields == "gridProperties.rowCount" {
					f.rows = p.Properties.GridProperties.RowCount
				}
				if p.Fields == "gridProperties.columnCount" {
					f.columns = p.Properties.GridProperties.ColumnCount
				}
			}
		}
		reply(sheets.BatchUpdateSpreadsheetResponse{})

	case r.Method == http.MethodGet && strings.HasPrefix(path, "/v4/spreadsheets/"):
		reply(sheets.Spreadsheet{
			Sheets: []*sheets.Sheet{
				&sheets.Sheet{Properties: &sheets.SheetProperties{SheetId: 99, Title: "Other"}},
				&sheets.Sheet{
					Properties: &sheets.SheetProperties{
						SheetId: f.sheetId,
						Title:   f.title,
						GridProperties: &sheets.GridProperties{
							RowCount:    f.rows,
							ColumnCount: f.columns,
						},
					},
				},
			},
		})

	default:
		http.NotFound(w, r)
	}
}

func (f *fakeGoogle) calls() []request {
	f.Lock()
	defer f.Unlock()

	return append([]request{}, f.requests...)
}

func (f *fakeGoogle) grid() (int64, int64) {
	f.Lock()
	defer f.Unlock()

	return f.rows, f.columns
}

func (f *fakeGoogle) start(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	return srv
}

func newGateway(t *testing.T, f *fakeGoogle, sheet string) *Gateway {
	srv := f.start(t)

	google, err := sheets.NewService(context.Background(), option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	return NewGateway(google, "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms", sheet)
}
