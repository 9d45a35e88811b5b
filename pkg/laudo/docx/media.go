package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"maps"
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/LuanaSouza24/laudo-service/pkg/laudo/models"
)

const (
	imageRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	mediaPrefix  = "word/media/laudo_image"
	relPrefix    = "rIdLaudo"
)

var docPrID = regexp.MustCompile(`<wp:docPr[^>]*\sid="(\d+)"`)

const drawingXML = `<w:drawing><wp:inline distT="0" distB="0" distL="0" distR="0" xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing">` +
	`<wp:extent cx="%[1]d" cy="%[2]d"/><wp:docPr id="%[3]d" name="Picture %[3]d"/>` +
	`<wp:cNvGraphicFramePr><a:graphicFrameLocks xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" noChangeAspect="1"/></wp:cNvGraphicFramePr>` +
	`<a:graphic xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">` +
	`<pic:pic xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">` +
	`<pic:nvPicPr><pic:cNvPr id="%[3]d" name="%[4]s"/><pic:cNvPicPr/></pic:nvPicPr>` +
	`<pic:blipFill><a:blip r:embed="%[5]s" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>` +
	`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%[1]d" cy="%[2]d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>` +
	`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing>`

type embedded struct {
	relID  string
	width  int
	height int
}

// media collects the images placed while rendering and registers them in
// the package afterwards.
type media struct {
	doc    *Document
	fsys   fs.FS
	byPath map[string]embedded
	rels   []string
	types  map[string]string
	nextID int
}

func newMedia(doc *Document, fsys fs.FS, part []byte) *media {
	m := &media{
		doc:    doc,
		fsys:   fsys,
		byPath: make(map[string]embedded),
		types:  make(map[string]string),
		nextID: 1,
	}
	for _, match := range docPrID.FindAllSubmatch(part, -1) {
		if id, err := strconv.Atoi(string(match[1])); err == nil && id >= m.nextID {
			m.nextID = id + 1
		}
	}
	return m
}

// escape renders a template value as WordprocessingML run content.
func (m *media) escape(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case models.Image:
		return m.drawing(val)
	case *models.Image:
		if val == nil {
			return "", nil
		}
		return m.drawing(*val)
	case *int:
		if val == nil {
			return "", nil
		}
		return strconv.Itoa(*val), nil
	case string:
		return escapeText(val), nil
	default:
		return escapeText(fmt.Sprint(val)), nil
	}
}

// escapeText escapes s for a w:t element, turning newlines into breaks.
func escapeText(s string) string {
	lines := strings.Split(s, "\n")
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteString(`</w:t><w:br/><w:t xml:space="preserve">`)
		}
		var buf bytes.Buffer
		_ = xml.EscapeText(&buf, []byte(strings.TrimSuffix(line, "\r")))
		sb.Write(buf.Bytes())
	}
	return sb.String()
}

func (m *media) drawing(img models.Image) (string, error) {
	if img.Empty() {
		return "", nil
	}
	e, err := m.embed(img.Path)
	if err != nil {
		return "", err
	}

	cx := CentimetresToEMU(img.Width)
	cy := ScaledHeight(cx, e.width, e.height)
	id := m.nextID
	m.nextID++

	var name bytes.Buffer
	_ = xml.EscapeText(&name, []byte(path.Base(img.Path)))

	return `</w:t></w:r><w:r>` +
		fmt.Sprintf(drawingXML, cx, cy, id, name.String(), e.relID) +
		`</w:r><w:r><w:t xml:space="preserve">`, nil
}

func (m *media) embed(name string) (embedded, error) {
	if e, ok := m.byPath[name]; ok {
		return e, nil
	}

	if m.fsys == nil {
		return embedded{}, fmt.Errorf("no image source for %s", name)
	}
	data, err := fs.ReadFile(m.fsys, name)
	if err != nil {
		return embedded{}, fmt.Errorf("failed to read image %s: %w", name, err)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return embedded{}, fmt.Errorf("failed to decode image %s: %w", name, err)
	}

	n := len(m.byPath) + 1
	e := embedded{relID: fmt.Sprintf("%s%d", relPrefix, n), width: cfg.Width, height: cfg.Height}
	target := fmt.Sprintf("media/laudo_image%d.%s", n, format)
	m.doc.SetPart(fmt.Sprintf("%s%d.%s", mediaPrefix, n, format), data)
	m.rels = append(m.rels, fmt.Sprintf(`<Relationship Id="%s" Type="%s" Target="%s"/>`, e.relID, imageRelType, target))
	m.types[format] = "image/" + format
	m.byPath[name] = e
	return e, nil
}

// flush registers the embedded images in the relationships and content types
// parts.
func (m *media) flush() error {
	if len(m.rels) == 0 {
		return nil
	}

	rels, ok := m.doc.Part(DocumentRelsPart)
	if !ok {
		rels = []byte(xml.Header + `<Relationships xmlns="` + relsNamespace + `"></Relationships>`)
	}
	rels, err := insertBefore(rels, "</Relationships>", strings.Join(m.rels, ""))
	if err != nil {
		return fmt.Errorf("%s: %w", DocumentRelsPart, err)
	}
	m.doc.SetPart(DocumentRelsPart, rels)

	types, ok := m.doc.Part(ContentTypesPart)
	if !ok {
		types = []byte(xml.Header + `<Types xmlns="` + contentTypesSpace + `"></Types>`)
	}
	var defaults strings.Builder
	lower := strings.ToLower(string(types))
	for _, ext := range slices.Sorted(maps.Keys(m.types)) {
		contentType := m.types[ext]
		if strings.Contains(lower, `extension="`+ext+`"`) {
			continue
		}
		fmt.Fprintf(&defaults, `<Default Extension="%s" ContentType="%s"/>`, ext, contentType)
	}
	types, err = insertBefore(types, "</Types>", defaults.String())
	if err != nil {
		return fmt.Errorf("%s: %w", ContentTypesPart, err)
	}
	m.doc.SetPart(ContentTypesPart, types)
	return nil
}

func insertBefore(data []byte, closing, content string) ([]byte, error) {
	i := bytes.LastIndex(data, []byte(closing))
	if i < 0 {
		return nil, fmt.Errorf("closing tag %s not found", closing)
	}
	out := make([]byte, 0, len(data)+len(content))
	out = append(out, data[:i]...)
	out = append(out, content...)
	return append(out, data[i:]...), nil
}
