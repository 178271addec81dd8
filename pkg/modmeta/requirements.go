package modmeta

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/mod/modfile"
	"golang.org/x/sync/errgroup"
)

// resolveConcurrency bounds the number of simultaneous proxy lookups.
const resolveConcurrency = 5

// Requirement is a single declared dependency of a module.
type Requirement struct {
	Path     string `json:"path" yaml:"path"`
	Version  string `json:"version" yaml:"version"`
	Indirect bool   `json:"indirect,omitempty" yaml:"indirect,omitempty"`
}

// ModuleFile is the parsed dependency surface of one go.mod:
// requirements plus the exclusion and retraction directives that
// qualify them.
type ModuleFile struct {
	Module    string        `json:"module" yaml:"module"`
	GoVersion string        `json:"go,omitempty" yaml:"go,omitempty"`
	Requires  []Requirement `json:"requires" yaml:"requires"`
	Excludes  []Requirement `json:"excludes,omitempty" yaml:"excludes,omitempty"`
	Retracts  []string      `json:"retracts,omitempty" yaml:"retracts,omitempty"`
}

// Direct returns only the directly declared requirements.
func (m *ModuleFile) Direct() []Requirement {
	direct := make([]Requirement, 0, len(m.Requires))
	for _, r := range m.Requires {
		if !r.Indirect {
			direct = append(direct, r)
		}
	}
	return direct
}

// ParseModFile parses raw go.mod content into a ModuleFile.
func ParseModFile(data []byte) (*ModuleFile, error) {
	f, err := modfile.Parse("go.mod", data, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse go.mod")
	}

	mf := &ModuleFile{Requires: []Requirement{}}
	if f.Module != nil {
		mf.Module = f.Module.Mod.Path
	}
	if f.Go != nil {
		mf.GoVersion = f.Go.Version
	}

	for _, r := range f.Require {
		mf.Requires = append(mf.Requires, Requirement{
			Path:     r.Mod.Path,
			Version:  r.Mod.Version,
			Indirect: r.Indirect,
		})
	}
	for _, e := range f.Exclude {
		mf.Excludes = append(mf.Excludes, Requirement{Path: e.Mod.Path, Version: e.Mod.Version})
	}
	for _, r := range f.Retract {
		if r.Low == r.High {
			mf.Retracts = append(mf.Retracts, r.Low)
		} else {
			mf.Retracts = append(mf.Retracts, r.Low+" - "+r.High)
		}
	}

	sort.Slice(mf.Requires, func(i, j int) bool { return mf.Requires[i].Path < mf.Requires[j].Path })
	return mf, nil
}

// Requirements fetches and parses the go.mod of one module version.
func (c *Client) Requirements(ctx context.Context, modPath, version string) (*ModuleFile, error) {
	data, err := c.GoMod(ctx, modPath, version)
	if err != nil {
		return nil, err
	}
	mf, err := ParseModFile(data)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid go.mod for %s@%s", modPath, version)
	}
	return mf, nil
}

// ResolveLatest looks up the latest available version for each
// requirement, a bounded number at a time. Modules the proxy does not
// know resolve to an empty string rather than failing the batch.
func (c *Client) ResolveLatest(ctx context.Context, reqs []Requirement) (map[string]string, error) {
	latest := make(map[string]string, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)

	results := make([]string, len(reqs))
	for i, r := range reqs {
		g.Go(func() error {
			info, err := c.Latest(ctx, r.Path)
			if errors.Is(err, ErrModuleNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			results[i] = info.Version
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, r := range reqs {
		latest[r.Path] = results[i]
	}
	return latest, nil
}
