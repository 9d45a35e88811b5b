package figures

import (
	"fmt"
	"slices"
	"strconv"
)

// Captions is the fixed vocabulary used in figure captions.
type Captions struct {
	// Figure prefixes a single location caption: "Figura 4 - Fachada".
	Figure string
	// Figures prefixes a caption range: "Figura(s) 5 a 9".
	Figures string
	// To joins the ends of a range.
	To string
}

// Portuguese is the report vocabulary.
var Portuguese = Captions{Figure: "Figura", Figures: "Figura(s)", To: "a"}

// English renders "Figure(s) 5 to 9".
var English = Captions{Figure: "Figure", Figures: "Figure(s)", To: "to"}

// Range renders figure numbers as "", "5" or "5 a 9" using the smallest and
// largest number; the set need not be contiguous.
func (c Captions) Range(figs []int) string {
	switch len(figs) {
	case 0:
		return ""
	case 1:
		return strconv.Itoa(figs[0])
	}
	return fmt.Sprintf("%d %s %d", slices.Min(figs), c.To, slices.Max(figs))
}

// Caption prefixes a non-empty Range with the plural figure label.
func (c Captions) Caption(figs []int) string {
	r := c.Range(figs)
	if r == "" {
		return ""
	}
	return c.Figures + " " + r
}

// Single renders "Figura 4 - text", or text alone without a number.
func (c Captions) Single(fig *int, text string) string {
	if fig == nil {
		return text
	}
	return fmt.Sprintf("%s %d - %s", c.Figure, *fig, text)
}
