package laudo

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/LuanaSouza24/laudo-service/pkg/laudo/models"
	"github.com/xuri/excelize/v2"
)

var reportSheets = map[string][][]any{
	models.SheetInspection: {
		{"ID_Vistoria", "ID_Empreendimento", "Referencia", "Setor", "Coordenada", "Data", "Servicos", "Cidade"},
		{"V1", "E1", "REF-01", "Sul", "-10.924851,-37.080269", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), "Água,Luz", "Aracaju"},
		{"V2", "E9", "", "", "", "", "", ""},
	},
	models.SheetDevelopment: {
		{"ID_Empreendimento", "Contratante", "Setor", "Canteiro"},
		{"E1", "Construtora X", "Norte", "2023-11-02"},
	},
	models.SheetPhotoIndex: {
		{"ID_Foto_Indice", "Tipo", "Incluir_no_Laudo", "Ordem", "ID_Vistoria", "ID_Empreendimento", "ID_Item", "ID_Sistema", "ID_Ocorrencia", "Foto", "Legenda"},
		{1, "Localização", true, 1, "V1", "E1", "", "", "", "loc1.png", "Fachada"},
		{2, "Ambiente", true, 1, "V1", "E1", "I1", "", "", "sala.png", ""},
		{3, "Ocorrência", true, 1, "V1", "E1", "I1", "S1", "O1", "fissura.png", ""},
		{4, "Canteiro", true, 1, "", "E1", "", "", "", "Fotos_canteiro_Images/c1.png", ""},
		{5, "Canteiro", true, 2, "", "E1", "", "", "", "c2.png", ""},
		{6, "Ambiente", false, 1, "V1", "E1", "I1", "", "", "fora.png", ""},
	},
	models.SheetItems: {
		{"ID_Vistoria", "ID_Item", "Ambiente"},
		{"V1", "I1", "Sala"},
	},
	models.SheetSystems: {
		{"ID_Sistema", "ID_Item", "Elemento", "Acabamento", "Conservacao"},
		{"S1", "I1", "Parede", "Pintura", "Regular"},
	},
	models.SheetOccurrences: {
		{"ID_Ocorrencia", "ID_Sistema", "Ocorrencia", "Local"},
		{"O1", "S1", "Fissura", "Canto"},
	},
}

var photoFiles = []string{
	"Fotos_imovel_Images/loc1.png",
	"Foto_ambiente_Images/sala.png",
	"RFoto_Images/fissura.png",
	"Fotos_canteiro_Images/c1.png",
	"Fotos_canteiro_Images/c2.png",
}

func newReportWorkbook(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })

	for _, name := range models.ReportSheets {
		if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("Failed to create sheet %s: %v", name, err)
		}
		for i, values := range reportSheets[name] {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetSheetRow(name, cell, &values); err != nil {
				t.Fatalf("Failed to write %s row %d: %v", name, i+1, err)
			}
		}
	}
	f.DeleteSheet("Sheet1")
	return f
}

func writePhotos(t *testing.T, dir string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	img.Set(1, 1, color.RGBA{G: 200, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}

	for _, name := range photoFiles {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("MkdirAll() error = %v", err)
		}
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}
}

func para(text string) string {
	if text == "" {
		return `<w:p/>`
	}
	return `<w:p><w:r><w:t xml:space="preserve">` + text + `</w:t></w:r></w:p>`
}

func row(cells ...string) string {
	var sb strings.Builder
	sb.WriteString(`<w:tr>`)
	for _, c := range cells {
		sb.WriteString(`<w:tc>` + para(c) + `</w:tc>`)
	}
	sb.WriteString(`</w:tr>`)
	return sb.String()
}

func table(rows ...string) string {
	return `<w:tbl>` + strings.Join(rows, "") + `</w:tbl>`
}

// reportTemplate is a reduced report with every block the generator fills.
func reportTemplate(t *testing.T) []byte {
	t.Helper()
	body := strings.Join([]string{
		para("Contratante: {{.Contratante}} / {{.Setor}}"),
		para("Coordenadas: {{.Coordenada_DMS}} em {{.Data}}"),
		table(
			row("{{tr range .localizacao_rows}}"),
			row("{{.Col1Img}}", "{{.Col2Img}}"),
			row("{{.Col1Caption}}", "{{.Col2Caption}}"),
			row("{{tr end}}"),
		),
		para(""),
		para("{{p range .ambientes}}"),
		para("{{.Name}} {{.Figures}}"),
		table(
			row("Elemento", "Acabamento", "Ocorrência", "Figuras"),
			row("{{tr range .Rows}}"),
			row("{{.Element}}", "{{.Finish}}", "{{.Occurrence}}", "{{.Figures}}"),
			row("{{tr end}}"),
			row("", "", "", ""),
		),
		para("{{p end}}"),
		table(
			row("{{tr range .vistoria_rows}}"),
			row("{{.Col1Img}}", "{{.Col2Img}}"),
			row("{{.Col1Fig}}", "{{.Col2Fig}}"),
			row("{{tr end}}"),
		),
		para(""),
		table(
			row("{{tr range .canteiro_rows}}"),
			row("{{.Col1Img}}", "{{.Col2Img}}"),
			row("{{.Col1Fig}}", "{{.Col2Fig}}"),
			row("{{tr end}}"),
		),
		para("Canteiro em {{.data_canteiro}}: {{.Ref_Figuras_Canteiro}}"),
	}, "")

	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body + `<w:sectPr/></w:body></w:document>`
	rels := `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`
	types := `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="xml" ContentType="application/xml"/></Types>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range []struct{ name, data string }{
		{"[Content_Types].xml", types},
		{"word/document.xml", document},
		{"word/_rels/document.xml.rels", rels},
	} {
		w, err := zw.Create(p.name)
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		if _, err := w.Write([]byte(p.data)); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

// workspace lays out a working directory with photos, template and workbook.
func workspace(t *testing.T) (dir, workbookPath string) {
	t.Helper()
	dir = t.TempDir()
	writePhotos(t, dir)

	if err := os.WriteFile(filepath.Join(dir, DefaultTemplateName), reportTemplate(t), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	workbookPath = filepath.Join(dir, "Cautelar.xlsx")
	if err := newReportWorkbook(t).SaveAs(workbookPath); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return dir, workbookPath
}
