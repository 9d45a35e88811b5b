package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/LuanaSouza24/laudo-service/pkg/laudo"
	"github.com/LuanaSouza24/laudo-service/pkg/laudo/models"
)

// Staged file names inside a request directory.
const (
	stagedWorkbook = "Cautelar.xlsx"
	stagedTemplate = "template.docx"
)

type generateRequest struct {
	InspectionID   string `json:"id_vistoria"`
	ExcelBase64    string `json:"excel_base64"`
	TemplateBase64 string `json:"template_base64,omitempty"`
}

type generateResponse struct {
	Filename   string `json:"filename"`
	DocxBase64 string `json:"docx_base64"`
}

func (app *application) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := readJSON(w, r, app.config.maxBodyBytes, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.InspectionID == "" || req.ExcelBase64 == "" {
		writeJSONError(w, http.StatusBadRequest, "id_vistoria and excel_base64 are required")
		return
	}

	workbook, err := base64.StdEncoding.DecodeString(req.ExcelBase64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "excel_base64 is not valid base64")
		return
	}
	var template []byte
	if req.TemplateBase64 != "" {
		if template, err = base64.StdEncoding.DecodeString(req.TemplateBase64); err != nil {
			writeJSONError(w, http.StatusBadRequest, "template_base64 is not valid base64")
			return
		}
	}

	work, err := os.MkdirTemp("", "laudo_")
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to create work directory")
		return
	}
	defer os.RemoveAll(work)

	filename, out, err := app.generate(work, req.InspectionID, workbook, template)
	if err != nil {
		app.log.Error("API", "Report for %s not generated: %v", req.InspectionID, err)
		writeJSONError(w, statusFor(err), err.Error())
		return
	}

	response := &generateResponse{
		Filename:   filename,
		DocxBase64: base64.StdEncoding.EncodeToString(out),
	}
	if err := writeJSON(w, http.StatusOK, response); err != nil {
		app.log.Error("API", "failed to write response: %v", err)
	}
}

// generate stages the request files into work and runs one generation
// there. Photos keep coming from the configured base directory.
func (app *application) generate(work, inspectionID string, workbook, template []byte) (string, []byte, error) {
	opts := app.opts
	opts.Photos = opts.PhotoFS()
	opts.OutputDir = filepath.Join(work, laudo.DefaultOutputDir)

	workbookPath := filepath.Join(work, stagedWorkbook)
	if err := os.WriteFile(workbookPath, workbook, 0644); err != nil {
		return "", nil, err
	}
	if template != nil {
		opts.TemplatePath = filepath.Join(work, stagedTemplate)
		if err := os.WriteFile(opts.TemplatePath, template, 0644); err != nil {
			return "", nil, err
		}
	}

	outPath, err := laudo.Generate(workbookPath, inspectionID, opts)
	if err != nil {
		return "", nil, err
	}
	out, err := os.ReadFile(outPath)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", laudo.ErrReportNotGenerated, err)
	}
	return filepath.Base(outPath), out, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, laudo.ErrInspectionNotFound), errors.Is(err, laudo.ErrDevelopmentNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrMissingSheet), errors.Is(err, models.ErrMissingColumn):
		return http.StatusUnprocessableEntity
	case errors.Is(err, laudo.ErrFileNotFound):
		return http.StatusInternalServerError
	}

	var se *laudo.StageError
	if errors.As(err, &se) && (se.Stage == laudo.StageLoad || se.Stage == laudo.StageTemplate) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
