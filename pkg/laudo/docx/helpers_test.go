package docx

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

const (
	testDocHead = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
		`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>`
	testDocTail  = `<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr></w:body></w:document>`
	testRels     = `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/></Relationships>`
	testTypes    = `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`
	testDrawing  = `<w:r><w:drawing><wp:inline xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"><wp:extent cx="1" cy="1"/></wp:inline></w:drawing></w:r>`
)

func para(text string) string {
	if text == "" {
		return `<w:p><w:pPr><w:pStyle w:val="Normal"/></w:pPr></w:p>`
	}
	return `<w:p><w:r><w:t xml:space="preserve">` + text + `</w:t></w:r></w:p>`
}

func imagePara() string {
	return `<w:p>` + testDrawing + `</w:p>`
}

func row(cells ...string) string {
	var sb strings.Builder
	sb.WriteString(`<w:tr>`)
	for _, c := range cells {
		sb.WriteString(`<w:tc><w:tcPr><w:tcW w:w="2000" w:type="dxa"/></w:tcPr>` + para(c) + `</w:tc>`)
	}
	sb.WriteString(`</w:tr>`)
	return sb.String()
}

// mergedRow builds a row whose first cell takes part in a vertical merge.
// An empty val marks a continuation cell.
func mergedRow(val, first string, rest ...string) string {
	merge := `<w:vMerge/>`
	if val != "" {
		merge = `<w:vMerge w:val="` + val + `"/>`
	}
	cell := `<w:tc><w:tcPr><w:tcW w:w="2000" w:type="dxa"/>` + merge + `</w:tcPr>` + para(first) + `</w:tc>`
	return strings.Replace(row(rest...), `<w:tr>`, `<w:tr>`+cell, 1)
}

func imageRow() string {
	return `<w:tr><w:tc>` + imagePara() + `</w:tc><w:tc>` + para("5") + `</w:tc></w:tr>`
}

func table(rows ...string) string {
	return "<w:tbl><w:tblPr><w:tblW w:w=\"0\" w:type=\"auto\"/></w:tblPr>\n" + strings.Join(rows, "\n") + "</w:tbl>"
}

func documentXML(nodes ...string) string {
	return testDocHead + "\n" + strings.Join(nodes, "\n") + "\n" + testDocTail
}

func buildPackage(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{ContentTypesPart, DocumentPart, DocumentRelsPart} {
		content, ok := parts[name]
		if !ok {
			continue
		}
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func newTestDocument(t *testing.T, document string) *Document {
	t.Helper()
	data := buildPackage(t, map[string]string{
		ContentTypesPart: testTypes,
		DocumentPart:     document,
		DocumentRelsPart: testRels,
	})
	doc, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes() error = %v", err)
	}
	return doc
}

func documentPart(t *testing.T, doc *Document) string {
	t.Helper()
	data, ok := doc.Part(DocumentPart)
	if !ok {
		t.Fatal("document part missing")
	}
	return string(data)
}
