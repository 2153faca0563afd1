package projdash

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/ukaji3/projdash-go/pkg/projdash/cellref"
	"github.com/ukaji3/projdash-go/pkg/projdash/models"
	"github.com/ukaji3/projdash-go/pkg/projdash/store"
)

// Builder writes the dashboard of one workbook.
type Builder struct {
	store  store.Store
	opts   Options
	reader *Reader
	dash   store.Sheet

	// sheetHeaders are the labels read from the first project sheet, kept so
	// column formats can match them.
	sheetHeaders []string
}

type candidate struct {
	sheetName string
	projectID string
}

// NewBuilder validates opts and requires the dashboard sheet to exist.
func NewBuilder(s store.Store, opts Options) (*Builder, error) {
	if opts.HeaderRow < 1 {
		return nil, fmt.Errorf("%w: header row %d", ErrInvalidOptions, opts.HeaderRow)
	}
	if opts.Classifier == nil {
		opts.Classifier = DefaultClassifier()
	}
	switch opts.MissingSheet {
	case "":
		opts.MissingSheet = MissingSheetNull
	case MissingSheetNull, MissingSheetAbort:
	default:
		return nil, fmt.Errorf("%w: missing sheet policy %q", ErrInvalidOptions, opts.MissingSheet)
	}

	reader, err := NewReader(opts.Schema)
	if err != nil {
		return nil, err
	}

	dash, err := s.Sheet(opts.DashboardName)
	if err != nil {
		if errors.Is(err, store.ErrSheetNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrDashboardSheetMissing, opts.DashboardName)
		}
		return nil, err
	}

	return &Builder{
		store:  s,
		opts:   opts,
		reader: reader,
		dash:   dash,
	}, nil
}

// Build reads every project sheet, rewrites the dashboard table and formats it.
func (b *Builder) Build() (*models.DashboardTable, error) {
	candidates, err := b.candidates()
	if err != nil {
		return nil, err
	}
	log.Infof("Building %q from %d project sheets", b.opts.DashboardName, len(candidates))

	table := &models.DashboardTable{}
	b.sheetHeaders = nil
	for _, c := range candidates {
		rec, err := b.readCandidate(c)
		if err != nil {
			if errors.Is(err, store.ErrSheetNotFound) && b.opts.MissingSheet == MissingSheetNull {
				log.WithField("sheet", c.sheetName).Warn("Project sheet vanished before it could be read, writing an empty row")
				table.Records = append(table.Records, models.NullRecord(b.opts.Schema, c.sheetName, c.projectID))
				continue
			}
			return nil, err
		}
		log.WithField("sheet", c.sheetName).Debugf("Read project %s", c.projectID)
		table.Records = append(table.Records, rec)
	}

	table.Headers = b.sheetHeaders
	if table.Headers == nil {
		table.Headers = b.opts.Schema.Headers()
	}

	if err := b.Clear(); err != nil {
		return nil, err
	}
	if err := b.writeTable(table); err != nil {
		return nil, err
	}
	if err := b.Format(); err != nil {
		return nil, err
	}
	return table, nil
}

// readCandidate opens one project sheet and reads its record, taking the
// dashboard headers from it if none were read yet.
func (b *Builder) readCandidate(c candidate) (*models.ProjectRecord, error) {
	sheet, err := b.store.Sheet(c.sheetName)
	if err != nil {
		return nil, NewBuildError(c.sheetName, "read", err)
	}

	if b.sheetHeaders == nil {
		headers, err := b.reader.ReadHeaders(sheet)
		if err != nil {
			return nil, NewBuildError(c.sheetName, "headers", err)
		}
		b.sheetHeaders = headers
	}

	rec, err := b.reader.ReadProject(sheet, c.projectID)
	if err != nil {
		return nil, NewBuildError(c.sheetName, "read", err)
	}
	return rec, nil
}

// candidates lists project sheets in workbook order.
func (b *Builder) candidates() ([]candidate, error) {
	names, err := b.store.ListSheets()
	if err != nil {
		return nil, NewBuildError("", "list", err)
	}

	var out []candidate
	for _, name := range names {
		if name == b.opts.DashboardName || !b.opts.Classifier.IsProjectSheet(name) {
			continue
		}
		id, err := b.opts.Classifier.ExtractProjectID(name)
		if err != nil {
			return nil, NewBuildError(name, "list", err)
		}
		out = append(out, candidate{sheetName: name, projectID: id})
	}
	return out, nil
}

// Clear removes values and formats from the header row down. Rows above the
// header are kept.
func (b *Builder) Clear() error {
	region, ok, err := b.usedRegion(b.opts.HeaderRow)
	if err != nil || !ok {
		return err
	}
	if err := b.dash.ClearRange(region); err != nil {
		return NewBuildError(b.dash.Name(), "write", err)
	}
	if err := b.dash.ClearFormat(region); err != nil {
		return NewBuildError(b.dash.Name(), "write", err)
	}
	return nil
}

// ClearFormat removes formats from the whole populated area of the dashboard.
func (b *Builder) ClearFormat() error {
	region, ok, err := b.usedRegion(1)
	if err != nil || !ok {
		return err
	}
	if err := b.dash.ClearFormat(region); err != nil {
		return NewBuildError(b.dash.Name(), "format", err)
	}
	return nil
}

func (b *Builder) writeTable(table *models.DashboardTable) error {
	grid := table.Grid(b.opts.Schema)
	target, err := cellref.NewRange(1, b.opts.HeaderRow, len(b.opts.Schema), b.opts.HeaderRow+len(grid)-1)
	if err != nil {
		return NewBuildError(b.dash.Name(), "write", err)
	}
	if err := b.dash.WriteRange(target, grid); err != nil {
		return NewBuildError(b.dash.Name(), "write", err)
	}
	log.Debugf("Wrote %d rows to %s", len(grid), target)
	return nil
}

// usedRegion returns the populated rectangle of the dashboard from fromRow
// down, or ok=false when there is nothing there.
func (b *Builder) usedRegion(fromRow int) (cellref.Range, bool, error) {
	lastRow, err := b.dash.LastRow()
	if err != nil {
		return cellref.Range{}, false, NewBuildError(b.dash.Name(), "read", err)
	}
	lastCol, err := b.dash.LastColumn()
	if err != nil {
		return cellref.Range{}, false, NewBuildError(b.dash.Name(), "read", err)
	}
	if lastRow < fromRow || lastCol < 1 {
		return cellref.Range{}, false, nil
	}
	region, err := cellref.NewRange(1, fromRow, lastCol, lastRow)
	if err != nil {
		return cellref.Range{}, false, err
	}
	return region, true, nil
}
