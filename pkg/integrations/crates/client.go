package crates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/paritytech-secops/sbom-analyzer/pkg/cache"
	"github.com/paritytech-secops/sbom-analyzer/pkg/integrations"
)

// CrateInfo holds metadata for a Rust crate from crates.io.
//
// Versions are in the order returned by the API (most recent first).
// Zero values: all string fields are empty, Versions is nil.
// This struct is safe for concurrent reads after construction.
type CrateInfo struct {
	Name        string    // Crate name (e.g., "serde", never empty in valid info)
	MaxVersion  string    // Highest published version (e.g., "1.0.193")
	Description string    // Crate description (may be empty)
	License     string    // License identifier(s) (may be empty or "MIT OR Apache-2.0")
	Repository  string    // Repository URL (may be empty)
	HomePage    string    // Homepage URL (may be empty)
	Versions    []Version // Published versions, most recent first
}

// Version describes one published version of a crate.
type Version struct {
	Num         string    // Version string (e.g., "1.0.193")
	CreatedAt   time.Time // When the version was published
	PublishedBy string    // Login of the publishing user (empty when unknown)
}

// Owner is a crates.io user or team that owns a crate.
type Owner struct {
	Login string // crates.io login (e.g., "dtolnay" or "github:serde-rs:publish")
	Name  string // Display name (may be empty)
}

// Client provides access to the crates.io package registry API.
// It handles HTTP requests with caching and automatic retries.
//
// All methods are safe for concurrent use by multiple goroutines, but note
// that crates.io rate-limits aggressively: callers should issue lookups
// sequentially, not concurrently.
//
// Note: crates.io requires a User-Agent header; this client sets one automatically.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a crates.io client with the given cache backend.
//
// Parameters:
//   - backend: Cache backend for HTTP response caching (use cache.NewNullCache() for no caching)
//   - cacheTTL: How long responses are cached (typical: 1-24 hours)
//
// The client includes a User-Agent header as required by crates.io API policy.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	headers := map[string]string{
		"User-Agent": "sbom-analyzer/1.0 (https://github.com/paritytech-secops/sbom-analyzer)",
	}
	return &Client{
		Client:  integrations.NewClient(backend, "crates:", cacheTTL, headers),
		baseURL: "https://crates.io/api/v1",
	}
}

// FetchCrate retrieves metadata for a Rust crate from crates.io.
//
// The crate parameter is case-sensitive and must match the published crate
// name exactly. If refresh is true, the cache is bypassed and a fresh API
// call is made.
//
// Returns:
//   - CrateInfo populated with metadata on success
//   - [integrations.ErrNotFound] if the crate doesn't exist
//   - [integrations.ErrNetwork] for HTTP failures (timeout, 5xx, etc.)
//   - Other errors for JSON decoding failures
//
// The returned CrateInfo pointer is never nil if err is nil.
func (c *Client) FetchCrate(ctx context.Context, crate string, refresh bool) (*CrateInfo, error) {
	var info CrateInfo
	err := c.Cached(ctx, crate, refresh, &info, func() error {
		return c.fetch(ctx, crate, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// FetchOwners retrieves the owners (users and teams) of a crate.
func (c *Client) FetchOwners(ctx context.Context, crate string, refresh bool) ([]Owner, error) {
	var owners []Owner
	err := c.Cached(ctx, crate+":owners", refresh, &owners, func() error {
		var data ownersResponse
		if err := c.Get(ctx, fmt.Sprintf("%s/crates/%s/owners", c.baseURL, crate), &data); err != nil {
			return err
		}
		owners = owners[:0]
		for _, u := range data.Users {
			owners = append(owners, Owner{Login: u.Login, Name: u.Name})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return owners, nil
}

// FetchRecentDownloads sums the crate's download counts over the most recent
// days reported by the per-day downloads endpoint. The endpoint returns
// roughly 90 days of data, newest entries in meta.extra_downloads; only the
// first days entries are summed.
func (c *Client) FetchRecentDownloads(ctx context.Context, crate string, days int, refresh bool) (int, error) {
	var total int
	err := c.Cached(ctx, fmt.Sprintf("%s:downloads:%d", crate, days), refresh, &total, func() error {
		var data downloadsResponse
		if err := c.Get(ctx, fmt.Sprintf("%s/crates/%s/downloads", c.baseURL, crate), &data); err != nil {
			return err
		}
		total = 0
		for i, d := range data.Meta.ExtraDownloads {
			if i == days {
				break
			}
			total += d.Downloads
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (c *Client) fetch(ctx context.Context, crate string, info *CrateInfo) error {
	var data crateResponse
	if err := c.Get(ctx, fmt.Sprintf("%s/crates/%s", c.baseURL, crate), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: crate %s", err, crate)
		}
		return err
	}

	versions := make([]Version, 0, len(data.Versions))
	for _, v := range data.Versions {
		ver := Version{Num: v.Num}
		if t, err := time.Parse(time.RFC3339, v.CreatedAt); err == nil {
			ver.CreatedAt = t
		}
		if v.PublishedBy != nil {
			ver.PublishedBy = v.PublishedBy.Login
		}
		versions = append(versions, ver)
	}

	*info = CrateInfo{
		Name:        data.Crate.Name,
		MaxVersion:  data.Crate.MaxVersion,
		Description: data.Crate.Description,
		License:     data.Crate.License,
		Repository:  data.Crate.Repository,
		HomePage:    data.Crate.HomePage,
		Versions:    versions,
	}
	return nil
}

type crateResponse struct {
	Crate struct {
		Name        string `json:"name"`
		MaxVersion  string `json:"max_version"`
		Description string `json:"description"`
		License     string `json:"license"`
		Repository  string `json:"repository"`
		HomePage    string `json:"homepage"`
	} `json:"crate"`
	Versions []struct {
		Num         string `json:"num"`
		CreatedAt   string `json:"created_at"`
		PublishedBy *struct {
			Login string `json:"login"`
			Name  string `json:"name"`
		} `json:"published_by"`
	} `json:"versions"`
}

type ownersResponse struct {
	Users []struct {
		Login string `json:"login"`
		Name  string `json:"name"`
	} `json:"users"`
}

type downloadsResponse struct {
	Meta struct {
		ExtraDownloads []struct {
			Date      string `json:"date"`
			Downloads int    `json:"downloads"`
		} `json:"extra_downloads"`
	} `json:"meta"`
}
