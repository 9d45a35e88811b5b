// Package docx reads and writes WordprocessingML packages: it renders the
// report template, models the document body as typed nodes and runs the
// structural cleanups on the rendered result.
package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"os"
)

// Part names inside a .docx package.
const (
	DocumentPart      = "word/document.xml"
	DocumentRelsPart  = "word/_rels/document.xml.rels"
	ContentTypesPart  = "[Content_Types].xml"
	relsNamespace     = "http://schemas.openxmlformats.org/package/2006/relationships"
	contentTypesSpace = "http://schemas.openxmlformats.org/package/2006/content-types"
)

// ErrNotDocument indicates a zip package without a main document part.
var ErrNotDocument = errors.New("not a docx document")

type part struct {
	name string
	data []byte
}

// Document is a .docx package held in memory. Parts keep their package order.
type Document struct {
	parts []part
}

// Open reads a .docx file.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return OpenBytes(data)
}

// OpenBytes reads a .docx package from memory.
func OpenBytes(data []byte) (*Document, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	doc := &Document{}
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		content, err := readZipFile(f)
		if err != nil {
			return nil, err
		}
		doc.parts = append(doc.parts, part{name: f.Name, data: content})
	}

	if _, ok := doc.Part(DocumentPart); !ok {
		return nil, ErrNotDocument
	}
	return doc, nil
}

// Part returns the content of a package part.
func (d *Document) Part(name string) ([]byte, bool) {
	for _, p := range d.parts {
		if p.name == name {
			return p.data, true
		}
	}
	return nil, false
}

// SetPart replaces a part, or appends it when new.
func (d *Document) SetPart(name string, data []byte) {
	for i := range d.parts {
		if d.parts[i].name == name {
			d.parts[i].data = data
			return
		}
	}
	d.parts = append(d.parts, part{name: name, data: data})
}

// PartNames lists the package parts in order.
func (d *Document) PartNames() []string {
	names := make([]string, len(d.parts))
	for i, p := range d.parts {
		names[i] = p.name
	}
	return names
}

// Write serializes the package as a zip stream.
func (d *Document) Write(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, p := range d.parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate})
		if err != nil {
			return err
		}
		if _, err := fw.Write(p.data); err != nil {
			return err
		}
	}
	return zw.Close()
}

// Bytes serializes the package.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the package to path.
func (d *Document) Save(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
