package laudo

import (
	"fmt"
	"strings"

	"github.com/LuanaSouza24/laudo-service/pkg/laudo/figures"
	"github.com/LuanaSouza24/laudo-service/pkg/laudo/models"
	"github.com/LuanaSouza24/laudo-service/pkg/laudo/parser"
)

// Fields present on both the inspection and the development. The inspection
// value wins when it is not blank.
var sharedFields = []string{
	"Contratante",
	"Representante",
	"Setor",
	"Empreendimento",
	"Endereço",
	"ART",
}

// Inspection fields copied to the context under their own name.
var inspectionFields = []string{
	"Endereco_imovel", "Rua", "Num", "Bairro", "Cidade", "Estado", "Referencia",
	"Acompanhante", "Proprietario", "Ocupacao", "Ocupante",
	"Uso", "F_ter", "Fd_ter", "D_ter", "E_ter", "Forma", "Area", "Fracao", "Cota",
	"Superficie", "Inclinacao", "Quadra", "Tipo", "Classe", "Pav", "Situ", "Cons",
	"Idade", "Aparente", "Padrao", "Estrutura", "Fechamento", "Cobertura",
}

// Report is the render context of one inspection report.
type Report struct {
	InspectionID  string
	DevelopmentID string
	// FileName is "Laudo_<Referencia or inspection id>.docx".
	FileName string
	// Index is the augmented photo index.
	Index *figures.Index
	// NextFigure is the first number left unused by the report.
	NextFigure int
	// Context holds the template values.
	Context map[string]any
}

// BuildContext finds the inspection and its development, numbers the
// photographs and assembles every template value.
func BuildContext(wb *models.Workbook, inspectionID string, opts Options) (*Report, error) {
	log := opts.Logger

	if err := wb.Inspections.Require(figures.ColInspection, figures.ColDevelopment); err != nil {
		return nil, NewStageError(StageContext, err)
	}
	if err := wb.Developments.Require(figures.ColDevelopment); err != nil {
		return nil, NewStageError(StageContext, err)
	}

	inspection, ok := findRow(wb.Inspections, figures.ColInspection, inspectionID)
	if !ok {
		return nil, NewStageError(StageContext, fmt.Errorf("%w: %s", ErrInspectionNotFound, inspectionID))
	}
	developmentID := inspection.Get(figures.ColDevelopment)
	development, ok := findRow(wb.Developments, figures.ColDevelopment, developmentID)
	if !ok {
		return nil, NewStageError(StageContext, fmt.Errorf("%w: %q (inspection %s)", ErrDevelopmentNotFound, developmentID, inspectionID))
	}

	idx, next, err := figures.AssignFigures(figures.Input{
		Photos:        wb.Photos,
		Items:         wb.Items,
		Systems:       wb.Systems,
		Occurrences:   wb.Occurrences,
		InspectionID:  inspectionID,
		DevelopmentID: developmentID,
		Start:         opts.Start(),
		Log:           log,
	})
	if err != nil {
		return nil, NewStageError(StageNumbering, err)
	}
	log.Info("Numbering", "Inspection %s numbered from %d, next free figure %d", inspectionID, opts.Start(), next)

	captions := opts.CaptionSet()
	resolver := parser.NewImageResolver(opts.PhotoFS(), log)

	ambients, err := figures.BuildAmbients(idx, wb.Items, wb.Systems, wb.Occurrences, inspectionID, captions)
	if err != nil {
		return nil, NewStageError(StageContext, err)
	}

	ctx := make(map[string]any)
	for _, field := range sharedFields {
		ctx[field] = firstNonBlank(inspection.Get(field), development.Get(field))
	}
	for _, field := range inspectionFields {
		ctx[field] = inspection.Get(field)
	}
	ctx["Infra_formatado"] = inspection.Get("Infra")
	ctx["Servicos_formatado"] = strings.ReplaceAll(inspection.Get("Servicos"), ",", ", ")
	ctx["Fundacao_formatado"] = inspection.Get("Fundacao")

	addCoordinates(ctx, inspection.Get("Coordenada"), opts)

	siteDate := formatDate(development.Get("Canteiro"), "Canteiro", opts)
	ctx["Data"] = formatDate(inspection.Get("Data"), "Data", opts)
	ctx["Canteiro"] = siteDate
	ctx["data_canteiro"] = siteDate
	ctx["Ref_Figuras_Canteiro"] = figures.SiteCaption(idx, developmentID, captions)

	ctx["localizacao_rows"] = figures.BuildLocationRows(idx, inspectionID, resolver, captions)
	ctx["ambientes"] = ambients
	ctx["vistoria_rows"] = figures.BuildInspectionRows(idx, inspectionID, resolver)
	ctx["canteiro_rows"] = figures.BuildSiteRows(idx, developmentID, resolver)

	reference := firstNonBlank(inspection.Get("Referencia"), inspectionID)
	return &Report{
		InspectionID:  inspectionID,
		DevelopmentID: developmentID,
		FileName:      OutputName(reference),
		Index:         idx,
		NextFigure:    next,
		Context:       ctx,
	}, nil
}

// OutputName returns the report file name for a reference. Path separators
// are replaced so the name stays inside the output directory.
func OutputName(reference string) string {
	safe := strings.NewReplacer("/", "-", "\\", "-").Replace(strings.TrimSpace(reference))
	return "Laudo_" + safe + ".docx"
}

func addCoordinates(ctx map[string]any, raw string, opts Options) {
	ctx["Coordenada"] = raw
	ctx["Coordenada_DMS"] = ""
	ctx["Lat_DMS"] = ""
	ctx["Lon_DMS"] = ""
	if raw == "" {
		return
	}

	c, err := parser.ParseCoordinate(raw)
	if err != nil {
		opts.Logger.Warn("Context", "Could not convert coordinate %q: %v", raw, err)
		ctx["Coordenada_DMS"] = raw
		return
	}
	ctx["Coordenada_DMS"] = c.DMS()
	ctx["Lat_DMS"] = c.Lat
	ctx["Lon_DMS"] = c.Lon
}

func formatDate(raw, field string, opts Options) string {
	s, err := parser.FormatDate(raw)
	if err != nil {
		opts.Logger.Warn("Context", "Could not read %s date %q: %v", field, raw, err)
		return raw
	}
	return s
}

func findRow(t *models.Table, column, id string) (models.Row, bool) {
	for _, row := range t.All() {
		if models.SameKey(row.Raw(column), id) {
			return row, true
		}
	}
	return models.Row{}, false
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
