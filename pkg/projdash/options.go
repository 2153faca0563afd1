// Package projdash builds the project dashboard: it reads every project sheet
// of a workbook through a batched schema of cells and writes one summary row
// per project, then formats the result.
package projdash

import "github.com/ukaji3/projdash-go/pkg/projdash/models"

// MissingSheetPolicy decides what happens when a listed project sheet cannot
// be opened by the time it is read.
type MissingSheetPolicy string

const (
	// MissingSheetNull writes an all-null row for the sheet and logs a warning.
	MissingSheetNull MissingSheetPolicy = "null"
	// MissingSheetAbort stops the build.
	MissingSheetAbort MissingSheetPolicy = "abort"
)

// Presentation holds the generic dashboard styling.
type Presentation struct {
	FontFamily      string
	FrozenColumns   int
	HeaderRowHeight float64
	HeaderBold      bool
	HorizontalAlign string
	VerticalAlign   string
}

// Options configures a dashboard build.
type Options struct {
	// DashboardName is the sheet the table is written to.
	DashboardName string
	// HeaderRow is the 1-based row of the dashboard header. Rows above it are
	// never touched.
	HeaderRow int
	// Schema lists the dashboard columns in order.
	Schema models.Schema
	// Classifier selects project sheets and extracts their ids.
	Classifier *Classifier
	// MissingSheet is the policy for sheets that vanish mid-build.
	MissingSheet MissingSheetPolicy
	// Presentation is applied after every build and format.
	Presentation Presentation
}

// DefaultOptions returns the options for the firm's workbook.
func DefaultOptions() Options {
	return Options{
		DashboardName: "Dashboard",
		HeaderRow:     1,
		Schema:        models.DefaultSchema(),
		Classifier:    DefaultClassifier(),
		MissingSheet:  MissingSheetNull,
		Presentation: Presentation{
			FontFamily:      "Roboto Mono",
			FrozenColumns:   2,
			HeaderRowHeight: 60,
			HeaderBold:      true,
			HorizontalAlign: "center",
			VerticalAlign:   "middle",
		},
	}
}
