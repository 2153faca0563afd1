// Package storetest provides an in-memory Google Sheets v4 server for tests
// of the Sheets store and of builds running on top of it.
package storetest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/ukaji3/projdash-go/pkg/projdash/cellref"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SpreadsheetID is the only spreadsheet the server knows.
const SpreadsheetID = "book"

type tab struct {
	title string
	id    int64
	cells map[cellref.Cell]interface{}
}

// Sheets answers the Spreadsheets.Get, Values.Get/Update/Clear and
// BatchUpdate calls the store makes. Values live per tab; batch updates are
// only recorded.
type Sheets struct {
	mu     sync.Mutex
	srv    *httptest.Server
	tabs   []*tab
	nextID int64
	lists  int
	vanish map[int]string

	// Batches holds the raw body of every batchUpdate, in order.
	Batches []string
	// Updates holds the raw body of every values update, in order.
	Updates []string
	// Clears lists the ranges passed to values clear.
	Clears []string
}

// NewSheets starts a server. Call Close when done.
func NewSheets() *Sheets {
	s := &Sheets{vanish: make(map[int]string)}
	s.srv = httptest.NewServer(s)
	return s
}

// Close shuts the server down.
func (s *Sheets) Close() {
	s.srv.Close()
}

// Service returns a Sheets client talking to the server without credentials.
func (s *Sheets) Service(ctx context.Context) (*sheets.Service, error) {
	return sheets.NewService(ctx,
		option.WithEndpoint(s.srv.URL+"/"),
		option.WithoutAuthentication(),
	)
}

// AddTab appends a tab holding cells keyed by A1 reference.
func (s *Sheets) AddTab(title string, cells map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &tab{title: title, id: s.nextID, cells: make(map[cellref.Cell]interface{})}
	s.nextID++
	for ref, v := range cells {
		c, err := cellref.ParseCellRef(ref)
		if err != nil {
			return err
		}
		t.cells[c] = v
	}
	s.tabs = append(s.tabs, t)
	return nil
}

// RemoveTab deletes a tab, as another editor of the spreadsheet would.
func (s *Sheets) RemoveTab(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeTab(title)
}

// RemoveTabAfterList deletes a tab right after the n-th sheet listing has
// been answered.
func (s *Sheets) RemoveTabAfterList(n int, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vanish[n] = title
}

// Cell returns the value of ref on a tab, or nil when blank.
func (s *Sheets) Cell(title, ref string) interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.tab(title)
	c, err := cellref.ParseCellRef(ref)
	if t == nil || err != nil {
		return nil
	}
	return t.cells[c]
}

func (s *Sheets) removeTab(title string) {
	for i, t := range s.tabs {
		if t.title == title {
			s.tabs = append(s.tabs[:i], s.tabs[i+1:]...)
			return
		}
	}
}

func (s *Sheets) tab(title string) *tab {
	for _, t := range s.tabs {
		if t.title == title {
			return t
		}
	}
	return nil
}

func (s *Sheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	path := strings.TrimPrefix(r.URL.Path, "/v4/spreadsheets/"+SpreadsheetID)
	body, _ := io.ReadAll(r.Body)

	switch {
	case path == ":batchUpdate":
		s.Batches = append(s.Batches, string(body))
		writeJSON(w, map[string]interface{}{"spreadsheetId": SpreadsheetID})
	case strings.HasPrefix(path, "/values/"):
		s.serveValues(w, r.Method, strings.TrimPrefix(path, "/values/"), body)
	case path == "":
		s.serveList(w)
	default:
		writeError(w, http.StatusNotFound, "Requested entity was not found.")
	}
}

func (s *Sheets) serveList(w http.ResponseWriter) {
	s.lists++
	list := make([]map[string]interface{}, len(s.tabs))
	for i, t := range s.tabs {
		list[i] = map[string]interface{}{
			"properties": map[string]interface{}{"sheetId": t.id, "title": t.title, "index": i},
		}
	}
	writeJSON(w, map[string]interface{}{"spreadsheetId": SpreadsheetID, "sheets": list})

	if title, ok := s.vanish[s.lists]; ok {
		s.removeTab(title)
	}
}

func (s *Sheets) serveValues(w http.ResponseWriter, method, a1 string, body []byte) {
	clearing := strings.HasSuffix(a1, ":clear")
	a1 = strings.TrimSuffix(a1, ":clear")

	t, rg, ok := s.resolve(a1)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unable to parse range: "+a1)
		return
	}

	switch {
	case clearing:
		s.Clears = append(s.Clears, a1)
		for c := range t.cells {
			if rg == nil || cellref.IsCellInRange(c, *rg) {
				delete(t.cells, c)
			}
		}
		writeJSON(w, map[string]interface{}{"clearedRange": a1})
	case method == http.MethodPut:
		s.Updates = append(s.Updates, string(body))
		var vr sheets.ValueRange
		if err := json.Unmarshal(body, &vr); err != nil || rg == nil {
			writeError(w, http.StatusBadRequest, "Invalid value range")
			return
		}
		c1, r1, _, _ := rg.Bounds()
		for i, row := range vr.Values {
			for j, v := range row {
				col, _ := cellref.NumberToColumn(c1 + j - 1)
				c := cellref.Cell{Col: col, Row: r1 + i}
				if v == nil || v == "" {
					delete(t.cells, c)
				} else {
					t.cells[c] = v
				}
			}
		}
		writeJSON(w, map[string]interface{}{"updatedRange": a1})
	default:
		writeJSON(w, map[string]interface{}{
			"range":          a1,
			"majorDimension": "ROWS",
			"values":         t.grid(rg),
		})
	}
}

// resolve splits "'Title'!G3:I3" into its tab and range; a bare title means
// the whole tab.
func (s *Sheets) resolve(a1 string) (*tab, *cellref.Range, bool) {
	title, ref := a1, ""
	if i := strings.LastIndex(a1, "!"); i >= 0 {
		title, ref = a1[:i], a1[i+1:]
	}
	if strings.HasPrefix(title, "'") && strings.HasSuffix(title, "'") && len(title) >= 2 {
		title = strings.ReplaceAll(title[1:len(title)-1], "''", "'")
	}

	t := s.tab(title)
	if t == nil {
		return nil, nil, false
	}
	if ref == "" {
		return t, nil, true
	}
	rg, err := cellref.ParseRange(ref)
	if err != nil {
		return nil, nil, false
	}
	return t, &rg, true
}

// grid renders rg (or the used area) the way the API does: blanks inside a
// row are "", trailing blanks and trailing empty rows are dropped.
func (t *tab) grid(rg *cellref.Range) [][]interface{} {
	c1, r1, c2, r2 := 1, 1, 0, 0
	if rg != nil {
		c1, r1, c2, r2 = rg.Bounds()
	} else {
		for c := range t.cells {
			if c.Row > r2 {
				r2 = c.Row
			}
			if c.ColNum() > c2 {
				c2 = c.ColNum()
			}
		}
	}

	var rows [][]interface{}
	for row := r1; row <= r2; row++ {
		var values []interface{}
		last := -1
		for col := c1; col <= c2; col++ {
			name, _ := cellref.NumberToColumn(col - 1)
			v, ok := t.cells[cellref.Cell{Col: name, Row: row}]
			if !ok {
				v = ""
			} else {
				last = len(values)
			}
			values = append(values, v)
		}
		rows = append(rows, values[:last+1])
	}
	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}
	return rows
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.WriteHeader(code)
	writeJSON(w, map[string]interface{}{
		"error": map[string]interface{}{
			"code":    code,
			"message": msg,
			"status":  fmt.Sprintf("HTTP_%d", code),
		},
	})
}
