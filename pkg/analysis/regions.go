package analysis

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// classMarkers are the glyphs assigned to classes by index; the set
// size caps how many classes a grid can render.
var classMarkers = []rune{'o', 's', '^', 'v', '<'}

// DecisionGrid is a sampled 2-D decision surface: Cells[row][col]
// holds the index into Classes of the class predicted at that point.
// Row zero is the top of the plot.
type DecisionGrid struct {
	Classes []string `json:"classes" yaml:"classes"`
	Cells   [][]int  `json:"cells" yaml:"cells"`
}

// Validate checks class count, rectangular shape, and cell indices.
func (g *DecisionGrid) Validate() error {
	if len(g.Classes) == 0 {
		return errors.New("decision grid has no classes")
	}
	if len(g.Classes) > len(classMarkers) {
		return errors.Errorf("at most %d classes supported, got %d", len(classMarkers), len(g.Classes))
	}
	if len(g.Cells) == 0 {
		return errors.New("decision grid has no cells")
	}
	width := len(g.Cells[0])
	for i, row := range g.Cells {
		if len(row) != width {
			return errors.Errorf("row %d: expected %d cells, got %d", i, width, len(row))
		}
		for j, c := range row {
			if c < 0 || c >= len(g.Classes) {
				return errors.Errorf("cell [%d][%d]: class index %d out of range", i, j, c)
			}
		}
	}
	return nil
}

// RenderDecisionGrid renders the surface as a character raster with a
// per-class marker legend.
func RenderDecisionGrid(g *DecisionGrid) (string, error) {
	if g == nil {
		return "", errors.New("decision grid required")
	}
	if err := g.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Decision Regions\n\n")
	for _, row := range g.Cells {
		b.WriteString("  ")
		for _, c := range row {
			b.WriteRune(classMarkers[c])
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	for i, class := range g.Classes {
		fmt.Fprintf(&b, "  %c = %s\n", classMarkers[i], class)
	}
	return b.String(), nil
}
