package analyze

import (
	"context"
	"fmt"

	"github.com/paritytech-secops/sbom-analyzer/pkg/integrations"
	"github.com/paritytech-secops/sbom-analyzer/pkg/integrations/crates"
	"github.com/paritytech-secops/sbom-analyzer/pkg/sbom"
)

// DownloadsWindowDays is how many recent days of download counts are summed.
const DownloadsWindowDays = 7

// crateSource is the slice of the crates.io client the enricher needs.
type crateSource interface {
	FetchCrate(ctx context.Context, crate string, refresh bool) (*crates.CrateInfo, error)
	FetchOwners(ctx context.Context, crate string, refresh bool) ([]crates.Owner, error)
	FetchRecentDownloads(ctx context.Context, crate string, days int, refresh bool) (int, error)
}

// CargoEnricher fills cargo records with crates.io metadata: repository URL
// split into owner and name, the maintainer list, recent downloads, and the
// publish time and author of the matched release.
type CargoEnricher struct {
	client crateSource
	logger func(string, ...any)
}

// NewCargoEnricher creates an enricher backed by the given crates.io client.
func NewCargoEnricher(client *crates.Client, logger func(string, ...any)) *CargoEnricher {
	if logger == nil {
		logger = func(string, ...any) {}
	}
	return &CargoEnricher{client: client, logger: logger}
}

func (e *CargoEnricher) Supports(pkgType string) bool { return pkgType == sbom.TypeCargo }

// Enrich looks up the crate and fills the record. The crate lookup itself
// failing is an error; owner and download lookups degrade to warnings so a
// partial record still comes back.
func (e *CargoEnricher) Enrich(ctx context.Context, rec *Record, refresh bool) error {
	info, err := e.client.FetchCrate(ctx, rec.Name, refresh)
	if err != nil {
		return fmt.Errorf("fetch crate %s: %w", rec.Name, err)
	}

	repoURL := info.Repository
	if repoURL == "" {
		repoURL = info.HomePage
	}
	if repoURL == "" {
		e.logger("no repository URL for crate %s", rec.Name)
	} else {
		rec.RepoURL = repoURL
		if owner, name, ok := integrations.SplitRepoURL(repoURL); ok {
			rec.RepoOwner = owner
			rec.RepoName = name
		}
	}

	if v, ok := matchVersion(info.Versions, rec.Version); ok {
		rec.LastPush = v.CreatedAt
		rec.LastPushAuthor = v.PublishedBy
	}

	owners, err := e.client.FetchOwners(ctx, rec.Name, refresh)
	if err != nil {
		e.logger("fetch owners for %s: %v", rec.Name, err)
	} else {
		for _, o := range owners {
			rec.Owners = append(rec.Owners, formatOwner(o))
		}
	}

	downloads, err := e.client.FetchRecentDownloads(ctx, rec.Name, DownloadsWindowDays, refresh)
	if err != nil {
		e.logger("fetch downloads for %s: %v", rec.Name, err)
	} else {
		rec.RecentDownloads = downloads
	}

	return nil
}

// matchVersion picks the release matching the declared version, falling back
// to the newest release (the registry lists versions newest first).
func matchVersion(versions []crates.Version, declared string) (crates.Version, bool) {
	if len(versions) == 0 {
		return crates.Version{}, false
	}
	if declared != "" {
		for _, v := range versions {
			if v.Num == declared {
				return v, true
			}
		}
	}
	return versions[0], true
}

func formatOwner(o crates.Owner) string {
	if o.Name == "" {
		return o.Login
	}
	return fmt.Sprintf("%s (%s)", o.Login, o.Name)
}
