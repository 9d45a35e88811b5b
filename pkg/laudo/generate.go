package laudo

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/LuanaSouza24/laudo-service/pkg/laudo/docx"
	"github.com/LuanaSouza24/laudo-service/pkg/laudo/models"
	"github.com/LuanaSouza24/laudo-service/pkg/laudo/parser"
)

// Generate writes the report of one inspection into the output directory
// and returns its path. Nothing is written when generation fails.
func Generate(workbookPath, inspectionID string, opts Options) (string, error) {
	if _, err := os.Stat(workbookPath); errors.Is(err, fs.ErrNotExist) {
		return "", NewStageError(StageLoad, &fs.PathError{Op: "open", Path: workbookPath, Err: ErrFileNotFound})
	}
	templatePath := opts.Template()
	if _, err := os.Stat(templatePath); errors.Is(err, fs.ErrNotExist) {
		return "", NewStageError(StageTemplate, &fs.PathError{Op: "open", Path: templatePath, Err: ErrFileNotFound})
	}

	wb, err := parser.OpenWorkbook(workbookPath)
	if err != nil {
		return "", NewStageError(StageLoad, err)
	}
	opts.Logger.Info("Loader", "Loaded %s", wb.BookName)

	tmpl, err := docx.Open(templatePath)
	if err != nil {
		return "", NewStageError(StageTemplate, err)
	}

	report, doc, err := generate(wb, tmpl, inspectionID, opts)
	if err != nil {
		return "", err
	}

	out := opts.Output()
	if err := os.MkdirAll(out, 0755); err != nil {
		return "", NewStageError(StageSave, err)
	}
	outPath := filepath.Join(out, report.FileName)
	if err := doc.Save(outPath); err != nil {
		return "", NewStageError(StageSave, err)
	}
	if _, err := os.Stat(outPath); err != nil {
		return "", NewStageError(StageSave, err)
	}

	opts.Logger.Info("Generator", "Report written to %s", outPath)
	return outPath, nil
}

// GenerateBytes builds the report from an in-memory workbook and template.
// Photos are still read through opts.
func GenerateBytes(workbook, template []byte, inspectionID string, opts Options) (string, []byte, error) {
	wb, err := parser.ReadWorkbook(bytes.NewReader(workbook), "")
	if err != nil {
		return "", nil, NewStageError(StageLoad, err)
	}
	tmpl, err := docx.OpenBytes(template)
	if err != nil {
		return "", nil, NewStageError(StageTemplate, err)
	}

	report, doc, err := generate(wb, tmpl, inspectionID, opts)
	if err != nil {
		return "", nil, err
	}

	out, err := doc.Bytes()
	if err != nil {
		return "", nil, NewStageError(StageSave, err)
	}
	return report.FileName, out, nil
}

func generate(wb *models.Workbook, doc *docx.Document, inspectionID string, opts Options) (*Report, *docx.Document, error) {
	report, err := BuildContext(wb, inspectionID, opts)
	if err != nil {
		return nil, nil, err
	}

	if err := docx.Render(doc, report.Context, opts.PhotoFS()); err != nil {
		return nil, nil, NewStageError(StageRender, err)
	}
	opts.Logger.Debug("Renderer", "Rendered %s from %d context values", report.FileName, len(report.Context))

	stats, err := docx.Postprocess(doc)
	if err != nil {
		return nil, nil, NewStageError(StagePostprocess, err)
	}
	opts.Logger.Debug("Postprocess", "Removed %d empty rows and %d spacing paragraphs", stats.Rows, stats.Paragraphs)

	return report, doc, nil
}
