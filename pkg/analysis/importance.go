package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const defaultBarWidth = 40

// FeatureImportance is one feature's contribution score from a fitted model.
type FeatureImportance struct {
	Name  string  `json:"name" yaml:"name"`
	Score float64 `json:"score" yaml:"score"`
}

// RenderFeatureImportances renders the scores as a horizontal bar
// chart, highest first, each bar annotated with its value. The input
// slice is not modified.
func RenderFeatureImportances(items []FeatureImportance, barWidth int) (string, error) {
	if len(items) == 0 {
		return "", errors.New("no feature importances to render")
	}
	if barWidth <= 0 {
		barWidth = defaultBarWidth
	}

	sorted := make([]FeatureImportance, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })

	nameWidth := 0
	maxScore := 0.0
	for _, it := range sorted {
		if len(it.Name) > nameWidth {
			nameWidth = len(it.Name)
		}
		if it.Score > maxScore {
			maxScore = it.Score
		}
	}

	var b strings.Builder
	b.WriteString("Feature Importance\n\n")
	for _, it := range sorted {
		bar := 0
		if maxScore > 0 && it.Score > 0 {
			bar = int(it.Score / maxScore * float64(barWidth))
		}
		fmt.Fprintf(&b, "  %-*s  %s %.3f\n", nameWidth, it.Name, strings.Repeat("#", bar), it.Score)
	}
	return b.String(), nil
}
