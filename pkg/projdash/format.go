package projdash

import (
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/ukaji3/projdash-go/pkg/projdash/cellref"
	"github.com/ukaji3/projdash-go/pkg/projdash/models"
)

// formatOrder fixes the order format classes are applied in.
var formatOrder = []models.FormatClass{models.FormatCurrency, models.FormatPercentage}

// Format applies the presentation and the per-column number formats. Column
// widths are fitted last since they depend on the rendered numbers.
func (b *Builder) Format() error {
	used, ok, err := b.usedRegion(1)
	if err != nil || !ok {
		return err
	}
	_, _, lastCol, _ := used.Bounds()
	p := b.opts.Presentation
	name := b.dash.Name()

	if p.FontFamily != "" {
		if err := b.dash.SetFontFamily(used, p.FontFamily); err != nil {
			return NewBuildError(name, "format", err)
		}
	}
	if err := b.dash.SetFrozenColumns(p.FrozenColumns); err != nil {
		return NewBuildError(name, "format", err)
	}
	if p.HeaderRowHeight > 0 {
		if err := b.dash.SetRowHeight(b.opts.HeaderRow, p.HeaderRowHeight); err != nil {
			return NewBuildError(name, "format", err)
		}
	}

	header, err := cellref.NewRange(1, b.opts.HeaderRow, lastCol, b.opts.HeaderRow)
	if err != nil {
		return NewBuildError(name, "format", err)
	}
	if err := b.dash.SetFontWeight(header, p.HeaderBold); err != nil {
		return NewBuildError(name, "format", err)
	}
	if p.HorizontalAlign != "" || p.VerticalAlign != "" {
		if err := b.dash.SetAlignment(header, p.HorizontalAlign, p.VerticalAlign); err != nil {
			return NewBuildError(name, "format", err)
		}
	}

	if _, err := b.ApplyColumnFormats(); err != nil {
		return err
	}

	if err := b.dash.AutoResizeColumns(1, lastCol); err != nil {
		return NewBuildError(name, "format", err)
	}
	return nil
}

// ApplyColumnFormats matches the dashboard's header text to schema fields,
// merges the matching columns of each format class into ranges running from
// the header to the last populated row, and applies the class's number
// format. The assignment depends only on the header text, so it can be
// re-run after the data changes.
func (b *Builder) ApplyColumnFormats() (models.FormatAssignment, error) {
	name := b.dash.Name()
	assignment := models.FormatAssignment{}

	lastRow, err := b.dash.LastRow()
	if err != nil {
		return nil, NewBuildError(name, "format", err)
	}
	lastCol, err := b.dash.LastColumn()
	if err != nil {
		return nil, NewBuildError(name, "format", err)
	}
	if lastRow < b.opts.HeaderRow || lastCol < 1 {
		return assignment, nil
	}

	headerRange, err := cellref.NewRange(1, b.opts.HeaderRow, lastCol, b.opts.HeaderRow)
	if err != nil {
		return nil, NewBuildError(name, "format", err)
	}
	grid, err := b.dash.ReadRange(headerRange)
	if err != nil {
		return nil, NewBuildError(name, "format", err)
	}
	if len(grid) == 0 {
		return assignment, nil
	}

	lookup, err := b.formatLookup()
	if err != nil {
		return nil, err
	}

	columns := make(map[models.FormatClass][]cellref.Cell)
	for i, v := range grid[0] {
		class, ok := lookup[strings.TrimSpace(ToTextOrEmpty(v))]
		if !ok {
			continue
		}
		col, err := cellref.NumberToColumn(i)
		if err != nil {
			return nil, NewBuildError(name, "format", err)
		}
		columns[class] = append(columns[class], cellref.Cell{Col: col, Row: b.opts.HeaderRow})
	}

	for _, class := range formatOrder {
		cells := columns[class]
		if len(cells) == 0 {
			continue
		}
		numFmt := models.NumberFormats[class]
		for _, r := range cellref.CompressCells(cells) {
			expanded := r.ExpandToRow(lastRow)
			if err := b.dash.SetNumberFormat(expanded, numFmt); err != nil {
				return nil, NewBuildError(name, "format", err)
			}
			assignment[class] = append(assignment[class], expanded)
			log.Debugf("Applied %s format to %s", class, expanded)
		}
	}
	return assignment, nil
}

// formatLookup maps header text to the format class of its field. Labels
// read from the project sheets take precedence over the literal labels.
func (b *Builder) formatLookup() (map[string]models.FormatClass, error) {
	if b.sheetHeaders == nil {
		if err := b.loadSheetHeaders(); err != nil {
			return nil, err
		}
	}

	lookup := make(map[string]models.FormatClass)
	add := func(text string, class models.FormatClass) {
		if class == models.FormatNone || text == "" {
			return
		}
		if _, ok := lookup[text]; !ok {
			lookup[text] = class
		}
	}
	for i, f := range b.opts.Schema {
		if i < len(b.sheetHeaders) {
			add(b.sheetHeaders[i], f.Format)
		}
	}
	for _, f := range b.opts.Schema {
		add(f.Header, f.Format)
	}
	return lookup, nil
}

// loadSheetHeaders reads the labels from the first project sheet when a
// format runs without a preceding build.
func (b *Builder) loadSheetHeaders() error {
	candidates, err := b.candidates()
	if err != nil {
		return err
	}
	for _, c := range candidates {
		sheet, err := b.store.Sheet(c.sheetName)
		if err != nil {
			continue
		}
		headers, err := b.reader.ReadHeaders(sheet)
		if err != nil {
			return NewBuildError(c.sheetName, "headers", err)
		}
		b.sheetHeaders = headers
		return nil
	}
	b.sheetHeaders = []string{}
	return nil
}
