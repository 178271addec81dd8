package installer

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotInstalled indicates no binary for the module was found.
var ErrNotInstalled = errors.New("binary not installed")

// module major-version path suffixes start at /v2
var majorSuffixRegEx = regexp.MustCompile(`^v[0-9]+$`)

// Installer installs module main packages with the go tool.
type Installer struct {
	// GoTool is the go binary to invoke, "go" by default.
	GoTool string
	// BinDir is where installed binaries land, defaults to GOBIN
	// falling back to $HOME/go/bin.
	BinDir string
}

// New returns an Installer with defaults resolved from the environment.
func New() *Installer {
	return &Installer{
		GoTool: "go",
		BinDir: defaultBinDir(),
	}
}

func defaultBinDir() string {
	if bin := os.Getenv("GOBIN"); bin != "" {
		return bin
	}
	if gopath := os.Getenv("GOPATH"); gopath != "" {
		return filepath.Join(gopath, "bin")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "go", "bin")
}

// BinName derives the installed binary name from a module path,
// dropping any /vN major-version suffix.
func BinName(modulePath string) string {
	base := path.Base(modulePath)
	if majorSuffixRegEx.MatchString(base) && base != "v0" && base != "v1" {
		base = path.Base(path.Dir(modulePath))
	}
	return base
}

// Install runs `go install module@version`. An empty version installs latest.
func (i *Installer) Install(ctx context.Context, modulePath, version string) error {
	if modulePath == "" {
		return errors.New("module path required")
	}
	if version == "" {
		version = "latest"
	}

	cmd := exec.CommandContext(ctx, i.GoTool, "install", modulePath+"@"+version)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "go install %s@%s failed: %s",
			modulePath, version, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// InstalledVersion returns the module version a previously installed
// binary was built from, or ErrNotInstalled.
func (i *Installer) InstalledVersion(ctx context.Context, modulePath string) (string, error) {
	if modulePath == "" {
		return "", errors.New("module path required")
	}

	binPath := filepath.Join(i.BinDir, BinName(modulePath))
	if _, err := os.Stat(binPath); err != nil {
		return "", errors.Wrapf(ErrNotInstalled, "%s", binPath)
	}

	cmd := exec.CommandContext(ctx, i.GoTool, "version", "-m", binPath)
	out, err := cmd.Output()
	if err != nil {
		return "", errors.Wrapf(err, "failed to read build info: %s", binPath)
	}

	v, ok := parseModVersion(string(out), modulePath)
	if !ok {
		return "", errors.Wrapf(ErrNotInstalled, "no module line for %s in %s", modulePath, binPath)
	}
	return v, nil
}

// parseModVersion extracts the version from `go version -m` output:
// the tab-separated "mod" line carrying the module path.
func parseModVersion(out, modulePath string) (string, bool) {
	s := bufio.NewScanner(strings.NewReader(out))
	for s.Scan() {
		fields := strings.Fields(s.Text())
		if len(fields) >= 3 && fields[0] == "mod" && fields[1] == modulePath {
			return fields[2], true
		}
	}
	return "", false
}

// EnsureInstalled installs the module when missing and reinstalls at
// the requested version when upgrade is set. Returns the version now
// installed.
func (i *Installer) EnsureInstalled(ctx context.Context, modulePath, version string, upgrade bool) (string, error) {
	current, err := i.InstalledVersion(ctx, modulePath)
	switch {
	case err == nil && !upgrade:
		return current, nil
	case err != nil && !errors.Is(err, ErrNotInstalled):
		return "", err
	}

	if err := i.Install(ctx, modulePath, version); err != nil {
		return "", err
	}
	return i.InstalledVersion(ctx, modulePath)
}
