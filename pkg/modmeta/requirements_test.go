package modmeta

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModFile(t *testing.T) {
	mf, err := ParseModFile([]byte(testGoMod))
	require.NoError(t, err)

	assert.Equal(t, "github.com/probe/widget", mf.Module)
	assert.Equal(t, "1.22", mf.GoVersion)

	want := []Requirement{
		{Path: "github.com/pkg/errors", Version: "v0.9.1"},
		{Path: "golang.org/x/sys", Version: "v0.1.0", Indirect: true},
		{Path: "gopkg.in/yaml.v3", Version: "v3.0.1"},
	}
	assert.Equal(t, want, mf.Requires)

	assert.Equal(t, []Requirement{{Path: "github.com/pkg/errors", Version: "v0.8.0"}}, mf.Excludes)
	assert.Equal(t, []string{"v0.1.0"}, mf.Retracts)
}

func TestParseModFileInvalid(t *testing.T) {
	_, err := ParseModFile([]byte("not a go.mod {"))
	assert.Error(t, err)
}

func TestDirect(t *testing.T) {
	mf, err := ParseModFile([]byte(testGoMod))
	require.NoError(t, err)

	direct := mf.Direct()
	require.Len(t, direct, 2)
	for _, r := range direct {
		assert.False(t, r.Indirect)
	}
}

func TestRequirements(t *testing.T) {
	c := newTestClient(t)

	mf, err := c.Requirements(context.Background(), "github.com/probe/widget", "v1.2.3")
	require.NoError(t, err)
	assert.Equal(t, "github.com/probe/widget", mf.Module)
	assert.Len(t, mf.Requires, 3)
}

func TestResolveLatest(t *testing.T) {
	c := newTestClient(t)

	reqs := []Requirement{
		{Path: "github.com/probe/widget", Version: "v1.0.0"},
		{Path: "github.com/probe/missing", Version: "v0.0.1"},
	}

	latest, err := c.ResolveLatest(context.Background(), reqs)
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", latest["github.com/probe/widget"])
	assert.Empty(t, latest["github.com/probe/missing"])
}
