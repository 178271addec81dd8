package modmeta

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/probelab/ospect/pkg/net"
	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
)

// DefaultProxyURL is the public Go module mirror.
const DefaultProxyURL = "https://proxy.golang.org"

// ErrModuleNotFound indicates the proxy has no record of the module
// (or the requested version).
var ErrModuleNotFound = errors.New("module not found")

// VersionInfo is the proxy's record of one module version.
type VersionInfo struct {
	Version string    `json:"Version" yaml:"version"`
	Time    time.Time `json:"Time" yaml:"time"`
	Origin  *Origin   `json:"Origin,omitempty" yaml:"origin,omitempty"`
}

// Origin describes the VCS coordinates a version was derived from.
type Origin struct {
	VCS  string `json:"VCS,omitempty" yaml:"vcs,omitempty"`
	URL  string `json:"URL,omitempty" yaml:"url,omitempty"`
	Ref  string `json:"Ref,omitempty" yaml:"ref,omitempty"`
	Hash string `json:"Hash,omitempty" yaml:"hash,omitempty"`
}

// Client talks the GOPROXY protocol to a module proxy.
type Client struct {
	baseURL string
	client  *http.Client
}

// New returns a Client for the given proxy base URL. An empty URL
// selects the public mirror; a non-empty token authenticates requests
// to private proxies.
func New(baseURL, token string) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultProxyURL
	}

	var hc *http.Client
	var err error
	if token != "" {
		hc = net.GetOAuthClient(context.Background(), token)
	} else if hc, err = net.GetHTTPClient(); err != nil {
		return nil, errors.Wrap(err, "failed to create HTTP client")
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  hc,
	}, nil
}

// Latest returns the proxy's notion of the latest version of the module.
func (c *Client) Latest(ctx context.Context, modPath string) (*VersionInfo, error) {
	body, err := c.get(ctx, modPath, "@latest")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var info VersionInfo
	if err := json.NewDecoder(body).Decode(&info); err != nil {
		return nil, errors.Wrapf(err, "failed to decode @latest for %s", modPath)
	}
	return &info, nil
}

// Info returns the record for one specific version of the module.
func (c *Client) Info(ctx context.Context, modPath, version string) (*VersionInfo, error) {
	body, err := c.get(ctx, modPath, "@v/"+version+".info")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var info VersionInfo
	if err := json.NewDecoder(body).Decode(&info); err != nil {
		return nil, errors.Wrapf(err, "failed to decode info for %s@%s", modPath, version)
	}
	return &info, nil
}

// Versions lists all known versions of the module in semver order.
func (c *Client) Versions(ctx context.Context, modPath string) ([]string, error) {
	body, err := c.get(ctx, modPath, "@v/list")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	versions := []string{}
	s := bufio.NewScanner(body)
	for s.Scan() {
		if v := strings.TrimSpace(s.Text()); v != "" {
			versions = append(versions, v)
		}
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read version list for %s", modPath)
	}

	semver.Sort(versions)
	return versions, nil
}

// GoMod returns the raw go.mod content for one version of the module.
func (c *Client) GoMod(ctx context.Context, modPath, version string) ([]byte, error) {
	body, err := c.get(ctx, modPath, "@v/"+version+".mod")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	b, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read go.mod for %s@%s", modPath, version)
	}
	return b, nil
}

func (c *Client) get(ctx context.Context, modPath, suffix string) (io.ReadCloser, error) {
	esc, err := module.EscapePath(modPath)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid module path: %s", modPath)
	}

	url := fmt.Sprintf("%s/%s/%s", c.baseURL, esc, suffix)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create request: %s", url)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query proxy: %s", url)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, nil
	case http.StatusNotFound, http.StatusGone:
		resp.Body.Close()
		return nil, errors.Wrapf(ErrModuleNotFound, "%s %s", modPath, suffix)
	default:
		net.PrintHTTPResponse(resp)
		resp.Body.Close()
		return nil, errors.Errorf("proxy returned %s for %s", resp.Status, url)
	}
}
