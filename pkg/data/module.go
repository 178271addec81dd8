package data

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"
)

const (
	upsertModuleSQL = `INSERT INTO module (path, version, released_at, fetched_at, origin_url, direct_deps)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (path) DO UPDATE SET
			version = excluded.version,
			released_at = excluded.released_at,
			fetched_at = excluded.fetched_at,
			origin_url = excluded.origin_url,
			direct_deps = excluded.direct_deps
	`

	selectModuleSQL = `SELECT path, version, released_at, fetched_at, origin_url, direct_deps
		FROM module
		WHERE path = ?
	`

	selectModulesSQL = `SELECT path, version, released_at, fetched_at, origin_url, direct_deps
		FROM module
		ORDER BY path
		LIMIT ?
	`
)

// ModuleRecord is one cached module lookup.
type ModuleRecord struct {
	Path       string    `json:"path" yaml:"path"`
	Version    string    `json:"version" yaml:"version"`
	Released   time.Time `json:"released" yaml:"released"`
	Fetched    time.Time `json:"fetched" yaml:"fetched"`
	OriginURL  string    `json:"origin_url,omitempty" yaml:"origin_url,omitempty"`
	DirectDeps int       `json:"direct_deps" yaml:"direct_deps"`
}

// IsStale reports whether the record is older than the given TTL.
func (r *ModuleRecord) IsStale(ttl time.Duration) bool {
	return time.Since(r.Fetched) > ttl
}

// SaveModule inserts or refreshes one cached module lookup.
func SaveModule(db *sql.DB, r *ModuleRecord) error {
	if db == nil {
		return errors.New("database required")
	}
	if r == nil || r.Path == "" {
		return errors.New("module record with path required")
	}

	if _, err := db.Exec(upsertModuleSQL, r.Path, r.Version, r.Released.UTC(), r.Fetched.UTC(), r.OriginURL, r.DirectDeps); err != nil {
		return errors.Wrapf(err, "failed to save module: %s", r.Path)
	}
	return nil
}

// GetModule returns the cached record for the module path, or nil when
// the module has not been cached.
func GetModule(db *sql.DB, path string) (*ModuleRecord, error) {
	if db == nil {
		return nil, errors.New("database required")
	}
	if path == "" {
		return nil, errors.New("module path required")
	}

	var r ModuleRecord
	row := db.QueryRow(selectModuleSQL, path)
	if err := row.Scan(&r.Path, &r.Version, &r.Released, &r.Fetched, &r.OriginURL, &r.DirectDeps); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to query module: %s", path)
	}
	return &r, nil
}

// ListModules returns cached records ordered by path.
func ListModules(db *sql.DB, limit int) ([]*ModuleRecord, error) {
	if db == nil {
		return nil, errors.New("database required")
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := db.Query(selectModulesSQL, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list modules")
	}
	defer rows.Close()

	list := []*ModuleRecord{}
	for rows.Next() {
		var r ModuleRecord
		if err := rows.Scan(&r.Path, &r.Version, &r.Released, &r.Fetched, &r.OriginURL, &r.DirectDeps); err != nil {
			return nil, errors.Wrap(err, "failed to scan module row")
		}
		list = append(list, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed reading module rows")
	}
	return list, nil
}
