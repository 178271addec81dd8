package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/probelab/ospect/pkg/introspect"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

var (
	objectFileFlag = &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "Path to a YAML or JSON document (defaults to stdin)",
	}

	objectNameFlag = &cli.StringFlag{
		Name:  "name",
		Usage: "Subject name used in the report header",
		Value: "document",
	}

	objectCmd = &cli.Command{
		Name:            "object",
		Aliases:         []string{"o"},
		HideHelpCommand: true,
		Usage:           "Classify the members of a YAML or JSON document",
		UsageText: `ospect object --file subject.yaml
   cat subject.json | ospect object --name Person
   ospect object --file subject.yaml --format yaml   # structured report instead of text`,
		Action: cmdObject,
		Flags: []cli.Flag{
			objectFileFlag,
			objectNameFlag,
		},
	}
)

func cmdObject(c *cli.Context) error {
	in, err := readDocument(c.String(objectFileFlag.Name))
	if err != nil {
		return err
	}

	var doc map[string]any
	if err := yaml.Unmarshal(in, &doc); err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}

	report, err := introspect.ClassifyValue(doc)
	if err != nil {
		return fmt.Errorf("classifying document: %w", err)
	}

	if c.IsSet(formatFlag.Name) {
		return encode(report)
	}

	fmt.Print(introspect.Format(report, c.String(objectNameFlag.Name)))
	return nil
}

func readDocument(path string) ([]byte, error) {
	if path == "" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return b, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return b, nil
}
