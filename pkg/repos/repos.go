package repos

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v83/github"
	"github.com/mchmarny/reputer/pkg/score"
	"github.com/pkg/errors"
)

const gitHubHost = "github.com"

// ErrNotGitHub indicates the module is not hosted on github.com, so no
// repository enrichment is available for it.
var ErrNotGitHub = errors.New("module is not hosted on github.com")

// Details is the repository-level enrichment for a GitHub-hosted module.
type Details struct {
	Owner       string  `json:"owner" yaml:"owner"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Language    string  `json:"language,omitempty" yaml:"language,omitempty"`
	License     string  `json:"license,omitempty" yaml:"license,omitempty"`
	Stars       int     `json:"stars" yaml:"stars"`
	Forks       int     `json:"forks" yaml:"forks"`
	OpenIssues  int     `json:"open_issues" yaml:"open_issues"`
	Archived    bool    `json:"archived" yaml:"archived"`
	UpdatedDate string  `json:"updated_date,omitempty" yaml:"updated_date,omitempty"`
	OwnerScore  float64 `json:"owner_score" yaml:"owner_score"`
}

// Parse extracts the owner and repository name from a GitHub-hosted
// module path. Returns ErrNotGitHub for modules on other hosts.
func Parse(modulePath string) (owner, name string, err error) {
	parts := strings.Split(strings.TrimSuffix(modulePath, "/"), "/")
	if len(parts) < 3 || parts[0] != gitHubHost {
		return "", "", errors.Wrapf(ErrNotGitHub, "%s", modulePath)
	}
	return parts[1], parts[2], nil
}

// GetDetails fetches repository and owner data for a GitHub-hosted
// module and derives an owner reputation score from the fetched
// account signals.
func GetDetails(ctx context.Context, client *http.Client, modulePath string) (*Details, error) {
	owner, name, err := Parse(modulePath)
	if err != nil {
		return nil, err
	}

	gh := github.NewClient(client)

	repo, resp, err := gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get repository: %s/%s", owner, name)
	}
	slog.Debug("got repository", "repo", repo.GetFullName(), "rate", resp.Rate.Remaining)

	d := &Details{
		Owner:       owner,
		Name:        name,
		Description: repo.GetDescription(),
		Language:    repo.GetLanguage(),
		License:     repo.GetLicense().GetSPDXID(),
		Stars:       repo.GetStargazersCount(),
		Forks:       repo.GetForksCount(),
		OpenIssues:  repo.GetOpenIssuesCount(),
		Archived:    repo.GetArchived(),
		UpdatedDate: repo.GetUpdatedAt().Format("2006-01-02"),
	}

	usr, resp, err := gh.Users.Get(ctx, owner)
	if err != nil {
		// enrichment degrades, it does not fail the lookup
		slog.Debug("failed to get owner, skipping reputation", "owner", owner, "error", err)
		return d, nil
	}
	slog.Debug("got owner", "owner", usr.GetLogin(), "rate", resp.Rate.Remaining)

	d.OwnerScore = score.Compute(ownerSignals(usr))
	return d, nil
}

// ownerSignals maps account facts onto the reputation model inputs.
// Commit-level signals need repository history the lookup does not
// pull, so those stay zero and the model scores identity and community
// categories only.
func ownerSignals(u *github.User) score.Signals {
	ageDays := int64(0)
	if created := u.GetCreatedAt(); !created.IsZero() {
		ageDays = int64(time.Since(created.Time).Hours() / 24)
	}
	return score.Signals{
		Suspended:    u.SuspendedAt != nil,
		AgeDays:      ageDays,
		Followers:    int64(u.GetFollowers()),
		Following:    int64(u.GetFollowing()),
		PublicRepos:  int64(u.GetPublicRepos()),
		PrivateRepos: int64(u.GetTotalPrivateRepos()),
	}
}
