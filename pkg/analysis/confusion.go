package analysis

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ConfusionMatrix is a precomputed classification result grid:
// Counts[i][j] is the number of samples with actual class Labels[i]
// predicted as Labels[j].
type ConfusionMatrix struct {
	Labels []string `json:"labels" yaml:"labels"`
	Counts [][]int  `json:"counts" yaml:"counts"`
}

// Validate checks the matrix is square and matches its labels.
func (m *ConfusionMatrix) Validate() error {
	if len(m.Labels) == 0 {
		return errors.New("confusion matrix has no labels")
	}
	if len(m.Counts) != len(m.Labels) {
		return errors.Errorf("expected %d rows, got %d", len(m.Labels), len(m.Counts))
	}
	for i, row := range m.Counts {
		if len(row) != len(m.Labels) {
			return errors.Errorf("row %d: expected %d columns, got %d", i, len(m.Labels), len(row))
		}
	}
	return nil
}

// RenderConfusionMatrix renders the matrix as an aligned table with
// per-row totals. Pure over its input.
func RenderConfusionMatrix(m *ConfusionMatrix) (string, error) {
	if m == nil {
		return "", errors.New("confusion matrix required")
	}
	if err := m.Validate(); err != nil {
		return "", err
	}

	width := len("total")
	for _, l := range m.Labels {
		if len(l) > width {
			width = len(l)
		}
	}
	for _, row := range m.Counts {
		for _, c := range row {
			if n := len(fmt.Sprint(c)); n > width {
				width = n
			}
		}
	}

	var b strings.Builder
	b.WriteString("Confusion Matrix (rows: actual, columns: predicted)\n\n")

	fmt.Fprintf(&b, "%*s", width+2, "")
	for _, l := range m.Labels {
		fmt.Fprintf(&b, "  %*s", width, l)
	}
	fmt.Fprintf(&b, "  %*s\n", width, "total")

	for i, l := range m.Labels {
		fmt.Fprintf(&b, "%*s", width+2, l)
		total := 0
		for _, c := range m.Counts[i] {
			fmt.Fprintf(&b, "  %*d", width, c)
			total += c
		}
		fmt.Fprintf(&b, "  %*d\n", width, total)
	}

	return b.String(), nil
}
