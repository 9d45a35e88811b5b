package laudo

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates a missing workbook or template.
var ErrFileNotFound = errors.New("file not found")

// ErrInspectionNotFound indicates no Vistoria row carries the requested id.
var ErrInspectionNotFound = errors.New("inspection not found")

// ErrDevelopmentNotFound indicates the inspection points to an unknown development.
var ErrDevelopmentNotFound = errors.New("development not found")

// ErrReportNotGenerated is matched by every fatal generation error.
var ErrReportNotGenerated = errors.New("report not generated")

// Generation stages.
const (
	StageLoad        = "load"
	StageNumbering   = "numbering"
	StageContext     = "context"
	StageTemplate    = "template"
	StageRender      = "render"
	StagePostprocess = "postprocess"
	StageSave        = "save"
)

// StageError represents a fatal error during report generation.
type StageError struct {
	Stage string // "load", "numbering", "context", "template", "render", "postprocess", "save"
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("report generation failed at %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Is makes every StageError match ErrReportNotGenerated.
func (e *StageError) Is(target error) bool {
	return target == ErrReportNotGenerated
}

// NewStageError creates a new StageError. An error that already is a
// StageError is returned unchanged.
func NewStageError(stage string, err error) error {
	var se *StageError
	if errors.As(err, &se) {
		return err
	}
	return &StageError{Stage: stage, Err: err}
}
