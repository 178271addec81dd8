package cli

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/probelab/ospect/pkg/auth"
	"github.com/probelab/ospect/pkg/net"
	"github.com/probelab/ospect/pkg/repos"
	"github.com/urfave/cli/v2"
)

var repoCmd = &cli.Command{
	Name:            "repo",
	Aliases:         []string{"r"},
	HideHelpCommand: true,
	Usage:           "Get source repository details for a GitHub-hosted module",
	ArgsUsage:       "MODULE",
	Action:          cmdRepo,
}

func cmdRepo(c *cli.Context) error {
	modPath, err := requireModuleArg(c)
	if err != nil {
		return err
	}
	cfg := getConfig(c)

	var client *http.Client
	token, err := auth.GetToken(cfg.HomeDir)
	switch {
	case err == nil:
		client = net.GetOAuthClient(c.Context, token)
	case errors.Is(err, auth.ErrNoToken):
		if client, err = net.GetHTTPClient(); err != nil {
			return fmt.Errorf("creating HTTP client: %w", err)
		}
	default:
		return fmt.Errorf("reading token: %w", err)
	}

	details, err := repos.GetDetails(c.Context, client, modPath)
	if err != nil {
		return fmt.Errorf("getting repository details: %w", err)
	}
	return encode(details)
}
