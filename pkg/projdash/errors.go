package projdash

import (
	"errors"
	"fmt"
)

// ErrDashboardSheetMissing indicates the configured dashboard sheet does not exist.
var ErrDashboardSheetMissing = errors.New("dashboard sheet missing")

// ErrIDNotFound indicates a sheet name without a project id. Callers are
// expected to have filtered names with IsProjectSheet first.
var ErrIDNotFound = errors.New("project id not found in sheet name")

// ErrInvalidOptions indicates options that cannot drive a build.
var ErrInvalidOptions = errors.New("invalid options")

// BuildError represents an error while building or formatting the dashboard.
type BuildError struct {
	SheetName string
	Stage     string // "list", "read", "headers", "write", "format"
	Err       error
}

func (e *BuildError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("dashboard %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("dashboard %s of sheet %q: %v", e.Stage, e.SheetName, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// NewBuildError creates a new BuildError.
func NewBuildError(sheetName, stage string, err error) *BuildError {
	return &BuildError{
		SheetName: sheetName,
		Stage:     stage,
		Err:       err,
	}
}
