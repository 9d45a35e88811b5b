package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// NodeKind tells paragraphs and tables apart from every other body element.
type NodeKind int

const (
	NodeOther NodeKind = iota
	NodeParagraph
	NodeTable
)

// Node is one top-level element of the document body.
type Node struct {
	Kind NodeKind
	// Raw is the element markup, including trailing whitespace.
	Raw []byte
	// Text is the concatenated run text of a paragraph.
	Text string
	// HasImage is set when the element contains a drawing or picture.
	HasImage bool
	// Table is set for NodeTable.
	Table *Table
}

// Empty reports whether a paragraph has neither text nor an image.
func (n *Node) Empty() bool {
	return n.Kind == NodeParagraph && strings.TrimSpace(n.Text) == "" && !n.HasImage
}

// Bytes returns the current markup of the node.
func (n *Node) Bytes() []byte {
	if n.Table != nil {
		return n.Table.Bytes()
	}
	return n.Raw
}

// Table is a w:tbl split into its direct children.
type Table struct {
	open  []byte
	lead  []byte
	Items []*TableItem
	close []byte
}

// TableItem is a direct child of a table: a row or table properties.
type TableItem struct {
	Raw []byte
	// Row is set for w:tr children.
	Row bool
	// Cells holds the text of each w:tc of a row. A cell continuing a
	// vertical merge takes the text of the cell above it.
	Cells []string
}

// FirstCell returns the text of the first cell of a row.
func (it *TableItem) FirstCell() string {
	if len(it.Cells) == 0 {
		return ""
	}
	return it.Cells[0]
}

// Rows returns the row items in order.
func (t *Table) Rows() []*TableItem {
	var rows []*TableItem
	for _, it := range t.Items {
		if it.Row {
			rows = append(rows, it)
		}
	}
	return rows
}

// Bytes reassembles the table markup.
func (t *Table) Bytes() []byte {
	var buf bytes.Buffer
	buf.Write(t.open)
	buf.Write(t.lead)
	for _, it := range t.Items {
		buf.Write(it.Raw)
	}
	buf.Write(t.close)
	return buf.Bytes()
}

// Body is the document part split around w:body.
type Body struct {
	head  []byte
	lead  []byte
	Nodes []*Node
	tail  []byte
}

// ParseBody splits a document part into body nodes.
func ParseBody(data []byte) (*Body, error) {
	innerStart, innerEnd, err := elementSpan(data, "body")
	if err != nil {
		return nil, err
	}

	lead, segs, err := splitChildren(data[innerStart:innerEnd])
	if err != nil {
		return nil, err
	}

	b := &Body{head: data[:innerStart], lead: lead, tail: data[innerEnd:]}
	for _, seg := range segs {
		node, err := newNode(seg)
		if err != nil {
			return nil, err
		}
		b.Nodes = append(b.Nodes, node)
	}
	return b, nil
}

// Bytes reassembles the document part.
func (b *Body) Bytes() []byte {
	var buf bytes.Buffer
	buf.Write(b.head)
	buf.Write(b.lead)
	for _, n := range b.Nodes {
		buf.Write(n.Bytes())
	}
	buf.Write(b.tail)
	return buf.Bytes()
}

// Tables returns the top-level tables in body order.
func (b *Body) Tables() []*Table {
	var tables []*Table
	for _, n := range b.Nodes {
		if n.Kind == NodeTable {
			tables = append(tables, n.Table)
		}
	}
	return tables
}

func newNode(seg segment) (*Node, error) {
	n := &Node{Raw: seg.raw}
	switch seg.name {
	case "p":
		n.Kind = NodeParagraph
		n.Text = textOf(seg.raw)
		n.HasImage = containsElement(seg.raw, "drawing", "pict")
	case "tbl":
		n.Kind = NodeTable
		n.HasImage = containsElement(seg.raw, tableImageElements...)
		table, err := parseTable(seg.raw)
		if err != nil {
			return nil, err
		}
		n.Table = table
	}
	return n, nil
}

func parseTable(raw []byte) (*Table, error) {
	innerStart, innerEnd, err := elementSpan(raw, "tbl")
	if err != nil {
		return nil, err
	}
	lead, segs, err := splitChildren(raw[innerStart:innerEnd])
	if err != nil {
		return nil, err
	}

	t := &Table{open: raw[:innerStart], lead: lead, close: raw[innerEnd:]}
	var above []string
	for _, seg := range segs {
		it := &TableItem{Raw: seg.raw}
		if seg.name == "tr" {
			it.Row = true
			cells, merged, err := rowCells(seg.raw)
			if err != nil {
				return nil, err
			}
			for i := range cells {
				if merged[i] && i < len(above) {
					cells[i] = above[i]
				}
			}
			it.Cells = cells
			above = cells
		}
		t.Items = append(t.Items, it)
	}
	return t, nil
}

// rowCells returns the text of each cell of a row and whether the cell
// continues a vertical merge started in the row above.
func rowCells(raw []byte) ([]string, []bool, error) {
	innerStart, innerEnd, err := elementSpan(raw, "tr")
	if err != nil {
		return nil, nil, err
	}
	_, segs, err := splitChildren(raw[innerStart:innerEnd])
	if err != nil {
		return nil, nil, err
	}

	var cells []string
	var merged []bool
	for _, seg := range segs {
		if seg.name != "tc" {
			continue
		}
		cont, err := continuesMerge(seg.raw)
		if err != nil {
			return nil, nil, err
		}
		cells = append(cells, textOf(seg.raw))
		merged = append(merged, cont)
	}
	return cells, merged, nil
}

// continuesMerge reports whether a w:tc carries w:tcPr/w:vMerge without
// w:val="restart". Such a cell has no text of its own.
func continuesMerge(tc []byte) (bool, error) {
	decoder := xml.NewDecoder(bytes.NewReader(tc))
	depth := 0
	inProps := false

	for {
		token, err := decoder.RawToken()
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch {
			case depth == 2 && t.Name.Local == "tcPr":
				inProps = true
			case depth == 3 && inProps && t.Name.Local == "vMerge":
				for _, attr := range t.Attr {
					if attr.Name.Local == "val" {
						return attr.Value != "restart", nil
					}
				}
				return true, nil
			}
		case xml.EndElement:
			if depth == 2 && inProps {
				return false, nil
			}
			depth--
		}
	}
}

var tableImageElements = []string{"drawing", "pict", "pic", "graphicData"}

// segment is a direct child element, or a non-whitespace gap when name is "".
type segment struct {
	name string
	raw  []byte
}

// elementSpan returns the offsets of the content of the first element named
// local: just after its start tag and just before its end tag.
func elementSpan(data []byte, local string) (int, int, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	depth := 0
	target := -1
	innerStart := 0

	for {
		before := int(decoder.InputOffset())
		token, err := decoder.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, 0, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if target < 0 && t.Name.Local == local {
				target = depth
				innerStart = int(decoder.InputOffset())
			}
		case xml.EndElement:
			if depth == target {
				return innerStart, before, nil
			}
			depth--
		}
	}

	return 0, 0, fmt.Errorf("element %q not found", local)
}

// splitChildren splits element content into its direct children. Whitespace
// between children is kept with the preceding child; whitespace before the
// first child is returned as lead.
func splitChildren(inner []byte) ([]byte, []segment, error) {
	type span struct {
		name       string
		start, end int
	}

	decoder := xml.NewDecoder(bytes.NewReader(inner))
	var spans []span
	leadEnd := 0
	depth := 0
	start := 0
	var name string

	for {
		before := int(decoder.InputOffset())
		token, err := decoder.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		after := int(decoder.InputOffset())

		switch t := token.(type) {
		case xml.StartElement:
			if depth == 0 {
				start = before
				name = t.Name.Local
			}
			depth++
		case xml.EndElement:
			depth--
			if depth == 0 {
				spans = append(spans, span{name: name, start: start, end: after})
			}
		default:
			if depth != 0 {
				continue
			}
			if cd, ok := t.(xml.CharData); ok && len(bytes.TrimSpace(cd)) == 0 {
				if len(spans) == 0 {
					leadEnd = after
				} else {
					spans[len(spans)-1].end = after
				}
				continue
			}
			spans = append(spans, span{start: before, end: after})
		}
	}

	segs := make([]segment, len(spans))
	for i, s := range spans {
		segs[i] = segment{name: s.name, raw: inner[s.start:s.end]}
	}
	return inner[:leadEnd], segs, nil
}

// textOf concatenates the character data of every w:t element.
func textOf(raw []byte) string {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	var sb strings.Builder
	inText := 0

	for {
		token, err := decoder.RawToken()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText++
			}
		case xml.EndElement:
			if t.Name.Local == "t" && inText > 0 {
				inText--
			}
		case xml.CharData:
			if inText > 0 {
				sb.Write(t)
			}
		}
	}
	return sb.String()
}

func containsElement(raw []byte, locals ...string) bool {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	for {
		token, err := decoder.RawToken()
		if err != nil {
			return false
		}
		if se, ok := token.(xml.StartElement); ok {
			for _, l := range locals {
				if se.Name.Local == l {
					return true
				}
			}
		}
	}
}
