package cli

import (
	"fmt"
	"os"

	"github.com/probelab/ospect/pkg/analysis"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

var (
	artifactFileFlag = &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "Path to the artifact file (YAML or JSON)",
		Required: true,
	}

	barWidthFlag = &cli.IntFlag{
		Name:  "width",
		Usage: "Bar chart width in characters",
		Value: 40,
	}

	analyzeCmd = &cli.Command{
		Name:    "analyze",
		Aliases: []string{"a"},
		Usage:   "List model-evaluation rendering operations",
		Subcommands: []*cli.Command{
			{
				Name:    "confusion",
				Usage:   "Render a confusion matrix artifact",
				Aliases: []string{"c"},
				Action:  cmdAnalyzeConfusion,
				Flags:   []cli.Flag{artifactFileFlag},
			},
			{
				Name:    "importance",
				Usage:   "Render a feature importance artifact",
				Aliases: []string{"i"},
				Action:  cmdAnalyzeImportance,
				Flags: []cli.Flag{
					artifactFileFlag,
					barWidthFlag,
				},
			},
			{
				Name:    "regions",
				Usage:   "Render a 2-D decision region artifact",
				Aliases: []string{"r"},
				Action:  cmdAnalyzeRegions,
				Flags:   []cli.Flag{artifactFileFlag},
			},
		},
	}
)

// readArtifact decodes a YAML or JSON artifact file.
func readArtifact[T any](path string) (*T, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading artifact: %w", err)
	}
	var v T
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("parsing artifact: %w", err)
	}
	return &v, nil
}

func cmdAnalyzeConfusion(c *cli.Context) error {
	m, err := readArtifact[analysis.ConfusionMatrix](c.String(artifactFileFlag.Name))
	if err != nil {
		return err
	}

	out, err := analysis.RenderConfusionMatrix(m)
	if err != nil {
		return fmt.Errorf("rendering confusion matrix: %w", err)
	}
	fmt.Print(out)
	return nil
}

func cmdAnalyzeImportance(c *cli.Context) error {
	items, err := readArtifact[[]analysis.FeatureImportance](c.String(artifactFileFlag.Name))
	if err != nil {
		return err
	}

	out, err := analysis.RenderFeatureImportances(*items, c.Int(barWidthFlag.Name))
	if err != nil {
		return fmt.Errorf("rendering feature importances: %w", err)
	}
	fmt.Print(out)
	return nil
}

func cmdAnalyzeRegions(c *cli.Context) error {
	g, err := readArtifact[analysis.DecisionGrid](c.String(artifactFileFlag.Name))
	if err != nil {
		return err
	}

	out, err := analysis.RenderDecisionGrid(g)
	if err != nil {
		return fmt.Errorf("rendering decision regions: %w", err)
	}
	fmt.Print(out)
	return nil
}
