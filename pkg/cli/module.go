package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/probelab/ospect/pkg/auth"
	"github.com/probelab/ospect/pkg/data"
	"github.com/probelab/ospect/pkg/installer"
	"github.com/probelab/ospect/pkg/modmeta"
	"github.com/urfave/cli/v2"
)

var (
	moduleVersionFlag = &cli.StringFlag{
		Name:  "version",
		Usage: "Module version (defaults to latest)",
	}

	resolveFlag = &cli.BoolFlag{
		Name:  "resolve",
		Usage: "Resolve the latest available version of each direct requirement",
	}

	upgradeFlag = &cli.BoolFlag{
		Name:  "upgrade",
		Usage: "Reinstall at the requested version even when already installed",
	}

	refreshFlag = &cli.BoolFlag{
		Name:  "refresh",
		Usage: "Bypass the cache and query the proxy",
	}

	moduleCmd = &cli.Command{
		Name:    "module",
		Aliases: []string{"m"},
		Usage:   "List module metadata operations",
		Subcommands: []*cli.Command{
			{
				Name:      "info",
				Usage:     "Get module version, release time, and origin",
				Aliases:   []string{"i"},
				ArgsUsage: "MODULE",
				Action:    cmdModuleInfo,
				Flags:     []cli.Flag{refreshFlag},
			},
			{
				Name:      "versions",
				Usage:     "List all known versions of a module",
				Aliases:   []string{"v"},
				ArgsUsage: "MODULE",
				Action:    cmdModuleVersions,
			},
			{
				Name:      "deps",
				Usage:     "List a module's declared requirements",
				Aliases:   []string{"d"},
				ArgsUsage: "MODULE",
				Action:    cmdModuleDeps,
				Flags: []cli.Flag{
					moduleVersionFlag,
					resolveFlag,
				},
			},
			{
				Name:      "install",
				Usage:     "Install a module's main package with the go tool",
				ArgsUsage: "MODULE",
				Action:    cmdModuleInstall,
				Flags: []cli.Flag{
					moduleVersionFlag,
					upgradeFlag,
				},
			},
			{
				Name:    "list",
				Usage:   "List previously looked-up modules",
				Aliases: []string{"l"},
				Action:  cmdModuleList,
			},
		},
	}
)

type moduleInfo struct {
	Path       string          `json:"path" yaml:"path"`
	Version    string          `json:"version" yaml:"version"`
	Released   time.Time       `json:"released,omitempty" yaml:"released,omitempty"`
	Origin     *modmeta.Origin `json:"origin,omitempty" yaml:"origin,omitempty"`
	DirectDeps int             `json:"direct_deps" yaml:"direct_deps"`
	Cached     bool            `json:"cached,omitempty" yaml:"cached,omitempty"`
}

type moduleDeps struct {
	Path     string                `json:"path" yaml:"path"`
	Version  string                `json:"version" yaml:"version"`
	Requires []modmeta.Requirement `json:"requires" yaml:"requires"`
	Excludes []modmeta.Requirement `json:"excludes,omitempty" yaml:"excludes,omitempty"`
	Retracts []string              `json:"retracts,omitempty" yaml:"retracts,omitempty"`
	Latest   map[string]string     `json:"latest,omitempty" yaml:"latest,omitempty"`
}

func getMetaClient(c *cli.Context) (*modmeta.Client, error) {
	cfg := getConfig(c)

	token, err := auth.GetToken(cfg.HomeDir)
	if err != nil && !errors.Is(err, auth.ErrNoToken) {
		return nil, fmt.Errorf("reading token: %w", err)
	}

	client, err := modmeta.New(cfg.Conf.ProxyURL, token)
	if err != nil {
		return nil, fmt.Errorf("creating proxy client: %w", err)
	}
	return client, nil
}

func requireModuleArg(c *cli.Context) (string, error) {
	modPath := c.Args().First()
	if modPath == "" {
		return "", fmt.Errorf("module path argument required")
	}
	return modPath, nil
}

func cmdModuleInfo(c *cli.Context) error {
	modPath, err := requireModuleArg(c)
	if err != nil {
		return err
	}
	cfg := getConfig(c)

	if !c.Bool(refreshFlag.Name) {
		rec, err := data.GetModule(cfg.DB, modPath)
		if err != nil {
			return fmt.Errorf("reading cache: %w", err)
		}
		if rec != nil && !rec.IsStale(cfg.Conf.CacheTTL()) {
			slog.Debug("cache hit", "module", modPath, "fetched", rec.Fetched)
			return encode(&moduleInfo{
				Path:       rec.Path,
				Version:    rec.Version,
				Released:   rec.Released,
				Origin:     originFromURL(rec.OriginURL),
				DirectDeps: rec.DirectDeps,
				Cached:     true,
			})
		}
	}

	client, err := getMetaClient(c)
	if err != nil {
		return err
	}

	latest, err := client.Latest(c.Context, modPath)
	if err != nil {
		return fmt.Errorf("querying proxy: %w", err)
	}

	info, err := client.Info(c.Context, modPath, latest.Version)
	if err != nil {
		return fmt.Errorf("querying proxy: %w", err)
	}

	mf, err := client.Requirements(c.Context, modPath, latest.Version)
	if err != nil {
		return fmt.Errorf("fetching requirements: %w", err)
	}

	rec := &data.ModuleRecord{
		Path:       modPath,
		Version:    info.Version,
		Released:   info.Time,
		Fetched:    time.Now().UTC(),
		DirectDeps: len(mf.Direct()),
	}
	if info.Origin != nil {
		rec.OriginURL = info.Origin.URL
	}
	if err := data.SaveModule(cfg.DB, rec); err != nil {
		// caching is best effort
		slog.Debug("failed to cache module", "module", modPath, "error", err)
	}

	return encode(&moduleInfo{
		Path:       modPath,
		Version:    info.Version,
		Released:   info.Time,
		Origin:     info.Origin,
		DirectDeps: len(mf.Direct()),
	})
}

func originFromURL(url string) *modmeta.Origin {
	if url == "" {
		return nil
	}
	return &modmeta.Origin{URL: url}
}

func cmdModuleVersions(c *cli.Context) error {
	modPath, err := requireModuleArg(c)
	if err != nil {
		return err
	}

	client, err := getMetaClient(c)
	if err != nil {
		return err
	}

	versions, err := client.Versions(c.Context, modPath)
	if err != nil {
		return fmt.Errorf("listing versions: %w", err)
	}

	return encode(map[string]any{
		"path":     modPath,
		"versions": versions,
	})
}

func cmdModuleDeps(c *cli.Context) error {
	modPath, err := requireModuleArg(c)
	if err != nil {
		return err
	}

	client, err := getMetaClient(c)
	if err != nil {
		return err
	}

	ver := c.String(moduleVersionFlag.Name)
	if ver == "" {
		latest, err := client.Latest(c.Context, modPath)
		if err != nil {
			return fmt.Errorf("resolving latest version: %w", err)
		}
		ver = latest.Version
	}

	mf, err := client.Requirements(c.Context, modPath, ver)
	if err != nil {
		return fmt.Errorf("fetching requirements: %w", err)
	}

	out := &moduleDeps{
		Path:     modPath,
		Version:  ver,
		Requires: mf.Requires,
		Excludes: mf.Excludes,
		Retracts: mf.Retracts,
	}

	if c.Bool(resolveFlag.Name) {
		latest, err := client.ResolveLatest(c.Context, mf.Direct())
		if err != nil {
			return fmt.Errorf("resolving requirements: %w", err)
		}
		out.Latest = latest
	}

	return encode(out)
}

func cmdModuleInstall(c *cli.Context) error {
	modPath, err := requireModuleArg(c)
	if err != nil {
		return err
	}

	i := installer.New()
	ver, err := i.EnsureInstalled(c.Context, modPath, c.String(moduleVersionFlag.Name), c.Bool(upgradeFlag.Name))
	if err != nil {
		return fmt.Errorf("installing %s: %w", modPath, err)
	}

	fmt.Printf("%s installed (version %s)\n", installer.BinName(modPath), ver)
	return nil
}

func cmdModuleList(c *cli.Context) error {
	cfg := getConfig(c)

	list, err := data.ListModules(cfg.DB, cfg.Conf.ListLimit)
	if err != nil {
		return fmt.Errorf("listing cached modules: %w", err)
	}
	return encode(list)
}
