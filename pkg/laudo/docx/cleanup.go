package docx

import (
	"fmt"
	"strings"
)

// Header labels that identify an inspection (element) table. Matching is
// case-insensitive over the joined header cell text.
var (
	ElementLabels = []string{"elemento", "element"}
	FinishLabels  = []string{"acabamento", "finish"}
)

// CleanupStats counts what the post-processor removed.
type CleanupStats struct {
	Rows       int `json:"rows"`
	Paragraphs int `json:"paragraphs"`
}

// IsInspectionTable reports whether the header row names both an element and
// a finish column.
func (t *Table) IsInspectionTable() bool {
	rows := t.Rows()
	if len(rows) == 0 {
		return false
	}
	header := make([]string, len(rows[0].Cells))
	for i, c := range rows[0].Cells {
		header[i] = strings.ToLower(strings.TrimSpace(c))
	}
	joined := strings.Join(header, " ")
	return containsAny(joined, ElementLabels) && containsAny(joined, FinishLabels)
}

// RemoveEmptyRows deletes, bottom-up, every row of an inspection table whose
// first cell is blank after trimming. The header row is never removed.
func RemoveEmptyRows(b *Body) int {
	removed := 0
	for _, t := range b.Tables() {
		if !t.IsInspectionTable() {
			continue
		}
		header := -1
		for i, it := range t.Items {
			if it.Row {
				header = i
				break
			}
		}
		for i := len(t.Items) - 1; i > header; i-- {
			it := t.Items[i]
			if !it.Row || strings.TrimSpace(it.FirstCell()) != "" {
				continue
			}
			t.Items = append(t.Items[:i], t.Items[i+1:]...)
			removed++
		}
	}
	return removed
}

// RemovePhotoTableSpacing deletes every empty paragraph that sits directly
// between two top-level tables which both hold an image.
func RemovePhotoTableSpacing(b *Body) int {
	nodes := b.Nodes
	kept := make([]*Node, 0, len(nodes))
	removed := 0
	for i, n := range nodes {
		if i > 0 && i < len(nodes)-1 && n.Empty() &&
			isPhotoTable(nodes[i-1]) && isPhotoTable(nodes[i+1]) {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	b.Nodes = kept
	return removed
}

// Postprocess runs both cleanup passes on the main document part in place.
// Running it again on its own output removes nothing.
func Postprocess(doc *Document) (CleanupStats, error) {
	data, ok := doc.Part(DocumentPart)
	if !ok {
		return CleanupStats{}, ErrNotDocument
	}
	body, err := ParseBody(data)
	if err != nil {
		return CleanupStats{}, fmt.Errorf("failed to parse document body: %w", err)
	}

	stats := CleanupStats{
		Rows:       RemoveEmptyRows(body),
		Paragraphs: RemovePhotoTableSpacing(body),
	}
	if stats.Rows > 0 || stats.Paragraphs > 0 {
		doc.SetPart(DocumentPart, body.Bytes())
	}
	return stats, nil
}

// isPhotoTable looks at the current table markup, so rows dropped by
// RemoveEmptyRows no longer count.
func isPhotoTable(n *Node) bool {
	return n.Kind == NodeTable && containsElement(n.Bytes(), tableImageElements...)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
