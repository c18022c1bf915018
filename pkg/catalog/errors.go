package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound reports a missing input workbook.
	ErrFileNotFound = errors.New("file not found")
	// ErrInvalidFormat reports a file excelize cannot open as a workbook.
	ErrInvalidFormat = errors.New("invalid workbook format")
	// ErrInvalidOptions reports an inconsistent row layout.
	ErrInvalidOptions = errors.New("invalid options")
)

// ExtractionError is a failure to read one sheet. Extract logs it and
// records the sheet with no records.
type ExtractionError struct {
	SheetName string
	Component string // "rows"
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("sheet %q: reading %s: %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError wraps err for sheetName.
func NewExtractionError(sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{SheetName: sheetName, Component: component, Err: err}
}
