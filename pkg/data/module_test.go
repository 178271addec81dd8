package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(path string) *ModuleRecord {
	return &ModuleRecord{
		Path:       path,
		Version:    "v1.2.3",
		Released:   time.Now().UTC().Add(-24 * time.Hour),
		Fetched:    time.Now().UTC(),
		OriginURL:  "https://github.com/probe/widget",
		DirectDeps: 2,
	}
}

func TestSaveAndGetModule(t *testing.T) {
	db := setupTestDB(t)

	r := testRecord("github.com/probe/widget")
	require.NoError(t, SaveModule(db, r))

	got, err := GetModule(db, r.Path)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, r.Path, got.Path)
	assert.Equal(t, r.Version, got.Version)
	assert.Equal(t, r.OriginURL, got.OriginURL)
	assert.Equal(t, r.DirectDeps, got.DirectDeps)
}

func TestSaveModule_Upsert(t *testing.T) {
	db := setupTestDB(t)

	r := testRecord("github.com/probe/widget")
	require.NoError(t, SaveModule(db, r))

	r.Version = "v1.3.0"
	require.NoError(t, SaveModule(db, r))

	got, err := GetModule(db, r.Path)
	require.NoError(t, err)
	assert.Equal(t, "v1.3.0", got.Version)

	list, err := ListModules(db, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestGetModule_Missing(t *testing.T) {
	db := setupTestDB(t)

	got, err := GetModule(db, "github.com/probe/unknown")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveModule_Invalid(t *testing.T) {
	db := setupTestDB(t)

	assert.Error(t, SaveModule(nil, testRecord("x")))
	assert.Error(t, SaveModule(db, nil))
	assert.Error(t, SaveModule(db, &ModuleRecord{}))
}

func TestListModules_Ordered(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, SaveModule(db, testRecord("github.com/b/two")))
	require.NoError(t, SaveModule(db, testRecord("github.com/a/one")))

	list, err := ListModules(db, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "github.com/a/one", list[0].Path)
}

func TestModuleRecord_IsStale(t *testing.T) {
	r := testRecord("github.com/probe/widget")
	assert.False(t, r.IsStale(time.Hour))

	r.Fetched = time.Now().UTC().Add(-2 * time.Hour)
	assert.True(t, r.IsStale(time.Hour))
}
