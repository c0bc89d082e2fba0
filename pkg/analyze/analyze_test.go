package analyze

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/paritytech-secops/sbom-analyzer/pkg/integrations"
	"github.com/paritytech-secops/sbom-analyzer/pkg/integrations/crates"
	"github.com/paritytech-secops/sbom-analyzer/pkg/sbom"
)

type fakeCrates struct {
	crate        *crates.CrateInfo
	crateErr     error
	owners       []crates.Owner
	ownersErr    error
	downloads    int
	downloadsErr error

	fetched []string
}

func (f *fakeCrates) FetchCrate(_ context.Context, crate string, _ bool) (*crates.CrateInfo, error) {
	f.fetched = append(f.fetched, crate)
	return f.crate, f.crateErr
}

func (f *fakeCrates) FetchOwners(_ context.Context, _ string, _ bool) ([]crates.Owner, error) {
	return f.owners, f.ownersErr
}

func (f *fakeCrates) FetchRecentDownloads(_ context.Context, _ string, _ int, _ bool) (int, error) {
	return f.downloads, f.downloadsErr
}

var serdeRelease = time.Date(2023, 11, 25, 20, 22, 41, 0, time.UTC)

func serdeInfo() *crates.CrateInfo {
	return &crates.CrateInfo{
		Name:       "serde",
		MaxVersion: "1.0.193",
		Repository: "https://github.com/serde-rs/serde",
		Versions: []crates.Version{
			{Num: "1.0.193", CreatedAt: serdeRelease, PublishedBy: "dtolnay"},
			{Num: "1.0.192", CreatedAt: serdeRelease.Add(-15 * 24 * time.Hour), PublishedBy: "dtolnay"},
		},
	}
}

func TestCargoEnricher_Enrich(t *testing.T) {
	fake := &fakeCrates{
		crate: serdeInfo(),
		owners: []crates.Owner{
			{Login: "dtolnay", Name: "David Tolnay"},
			{Login: "github:serde-rs:publish"},
		},
		downloads: 123456,
	}
	e := &CargoEnricher{client: fake, logger: func(string, ...any) {}}

	rec := Record{Type: "cargo", Name: "serde", Version: "1.0.193"}
	if err := e.Enrich(context.Background(), &rec, false); err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}

	want := Record{
		Type:            "cargo",
		Name:            "serde",
		Version:         "1.0.193",
		RepoURL:         "https://github.com/serde-rs/serde",
		RepoOwner:       "serde-rs",
		RepoName:        "serde",
		Owners:          []string{"dtolnay (David Tolnay)", "github:serde-rs:publish"},
		RecentDownloads: 123456,
		LastPush:        serdeRelease,
		LastPushAuthor:  "dtolnay",
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestCargoEnricher_VersionFallback(t *testing.T) {
	fake := &fakeCrates{crate: serdeInfo()}
	e := &CargoEnricher{client: fake, logger: func(string, ...any) {}}

	// No release matches the declared version, so the newest one is used
	rec := Record{Type: "cargo", Name: "serde", Version: "0.9.0"}
	if err := e.Enrich(context.Background(), &rec, false); err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}
	if !rec.LastPush.Equal(serdeRelease) {
		t.Errorf("expected newest release date, got %v", rec.LastPush)
	}

	// An exact match on an older release wins over the newest
	rec = Record{Type: "cargo", Name: "serde", Version: "1.0.192"}
	if err := e.Enrich(context.Background(), &rec, false); err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}
	if !rec.LastPush.Equal(serdeRelease.Add(-15 * 24 * time.Hour)) {
		t.Errorf("expected matched release date, got %v", rec.LastPush)
	}
}

func TestCargoEnricher_HomepageFallback(t *testing.T) {
	fake := &fakeCrates{
		crate: &crates.CrateInfo{Name: "quiet", HomePage: "https://github.com/someone/quiet"},
	}
	e := &CargoEnricher{client: fake, logger: func(string, ...any) {}}

	rec := Record{Type: "cargo", Name: "quiet"}
	if err := e.Enrich(context.Background(), &rec, false); err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}
	if rec.RepoURL != "https://github.com/someone/quiet" {
		t.Errorf("expected homepage fallback, got %q", rec.RepoURL)
	}
	if rec.RepoOwner != "someone" || rec.RepoName != "quiet" {
		t.Errorf("unexpected repo split: %q/%q", rec.RepoOwner, rec.RepoName)
	}
}

func TestCargoEnricher_PartialFailures(t *testing.T) {
	fake := &fakeCrates{
		crate:        serdeInfo(),
		ownersErr:    integrations.ErrNetwork,
		downloadsErr: integrations.ErrNetwork,
	}
	var warnings int
	e := &CargoEnricher{client: fake, logger: func(string, ...any) { warnings++ }}

	rec := Record{Type: "cargo", Name: "serde", Version: "1.0.193"}
	if err := e.Enrich(context.Background(), &rec, false); err != nil {
		t.Fatalf("owner/download failures must not fail enrichment: %v", err)
	}
	if rec.RepoOwner != "serde-rs" {
		t.Errorf("crate metadata should still be filled: %+v", rec)
	}
	if warnings != 2 {
		t.Errorf("expected 2 warnings, got %d", warnings)
	}
}

func TestCargoEnricher_CrateNotFound(t *testing.T) {
	fake := &fakeCrates{crateErr: integrations.ErrNotFound}
	e := &CargoEnricher{client: fake, logger: func(string, ...any) {}}

	rec := Record{Type: "cargo", Name: "no-such-crate"}
	err := e.Enrich(context.Background(), &rec, false)
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAnalyzer_Run(t *testing.T) {
	fake := &fakeCrates{crate: serdeInfo(), downloads: 42}
	enricher := &CargoEnricher{client: fake, logger: func(string, ...any) {}}
	analyzer := New(enricher)

	doc := &sbom.Document{
		Packages: []sbom.Package{
			{Type: "cargo", Name: "serde", Version: "1.0.193"},
			{Type: "npm", Name: "left-pad", Version: "1.3.0"},
			{Name: "mystery-lib", Version: "0.1.0"},
		},
	}

	records, err := analyzer.Run(context.Background(), doc, Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	if records[0].RepoOwner != "serde-rs" {
		t.Errorf("cargo package not enriched: %+v", records[0])
	}
	// Non-cargo packages pass through untouched
	want := Record{Type: "npm", Name: "left-pad", Version: "1.3.0"}
	if diff := cmp.Diff(want, records[1]); diff != "" {
		t.Errorf("npm record mismatch (-want +got):\n%s", diff)
	}
	if len(fake.fetched) != 1 {
		t.Errorf("expected 1 registry lookup, got %d", len(fake.fetched))
	}
}

func TestAnalyzer_RunContinuesOnFailure(t *testing.T) {
	fake := &fakeCrates{crateErr: integrations.ErrNetwork}
	enricher := &CargoEnricher{client: fake, logger: func(string, ...any) {}}
	analyzer := New(enricher)

	doc := &sbom.Document{
		Packages: []sbom.Package{
			{Type: "cargo", Name: "broken"},
			{Type: "cargo", Name: "also-broken"},
		},
	}

	var warnings int
	records, err := analyzer.Run(context.Background(), doc, Options{
		Logger: func(string, ...any) { warnings++ },
	})
	if err != nil {
		t.Fatalf("Run must not abort on lookup failures: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if warnings != 2 {
		t.Errorf("expected 2 warnings, got %d", warnings)
	}
}

func TestAnalyzer_RunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	analyzer := New()
	doc := &sbom.Document{Packages: []sbom.Package{{Type: "cargo", Name: "serde"}}}

	_, err := analyzer.Run(ctx, doc, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
