package cli

import (
	"fmt"

	"github.com/probelab/ospect/pkg/auth"
	"github.com/urfave/cli/v2"
)

var (
	tokenFlag = &cli.StringFlag{
		Name:  "token",
		Usage: "Proxy access token (prompted for when not provided)",
	}

	clearFlag = &cli.BoolFlag{
		Name:  "clear",
		Usage: "Remove the stored token",
	}

	authCmd = &cli.Command{
		Name:            "auth",
		HideHelpCommand: true,
		Usage:           "Store a module proxy access token in the OS keychain",
		Action:          cmdAuth,
		Flags: []cli.Flag{
			tokenFlag,
			clearFlag,
		},
	}
)

func cmdAuth(c *cli.Context) error {
	cfg := getConfig(c)

	if c.Bool(clearFlag.Name) {
		if err := auth.DeleteToken(cfg.HomeDir); err != nil {
			return fmt.Errorf("deleting token: %w", err)
		}
		fmt.Println("Token removed")
		return nil
	}

	token := c.String(tokenFlag.Name)
	if token == "" {
		fmt.Print("Paste the proxy access token and hit enter:\n>")
		if _, err := fmt.Scanln(&token); err != nil {
			return fmt.Errorf("reading user input: %w", err)
		}
	}

	if err := auth.SaveToken(cfg.HomeDir, token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}

	fmt.Println("Token saved to OS keychain")
	return nil
}
