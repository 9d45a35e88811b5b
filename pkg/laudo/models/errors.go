package models

import (
	"errors"
	"fmt"
)

// ErrMissingColumn indicates a sheet lacks a column the report depends on.
var ErrMissingColumn = errors.New("missing required column")

// ErrMissingSheet indicates the workbook lacks one of the report sheets.
var ErrMissingSheet = errors.New("missing required sheet")

// ColumnError names the table and column that are missing.
type ColumnError struct {
	Table  string
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("column %q not found in %s", e.Column, e.Table)
}

func (e *ColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}
