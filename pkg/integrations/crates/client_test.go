package crates

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/paritytech-secops/sbom-analyzer/pkg/cache"
	"github.com/paritytech-secops/sbom-analyzer/pkg/integrations"
)

const crateJSON = `{
	"crate": {
		"name": "serde",
		"max_version": "1.0.193",
		"description": "A serialization framework",
		"license": "MIT OR Apache-2.0",
		"repository": "https://github.com/serde-rs/serde",
		"homepage": "https://serde.rs"
	},
	"versions": [
		{
			"num": "1.0.193",
			"created_at": "2023-11-25T20:22:41.862712+00:00",
			"published_by": {"login": "dtolnay", "name": "David Tolnay"}
		},
		{
			"num": "1.0.192",
			"created_at": "2023-11-10T01:25:55.751695+00:00",
			"published_by": null
		}
	]
}`

const ownersJSON = `{
	"users": [
		{"login": "dtolnay", "name": "David Tolnay"},
		{"login": "github:serde-rs:publish", "name": null}
	]
}`

const downloadsJSON = `{
	"version_downloads": [],
	"meta": {
		"extra_downloads": [
			{"date": "2023-11-25", "downloads": 100},
			{"date": "2023-11-24", "downloads": 200},
			{"date": "2023-11-23", "downloads": 300},
			{"date": "2023-11-22", "downloads": 400}
		]
	}
}`

func TestNewClient(t *testing.T) {
	c := NewClient(cache.NewNullCache(), time.Hour)
	if c.Client == nil {
		t.Error("expected client to be initialized")
	}
}

func TestClient_FetchCrate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/crates/serde":
			w.Write([]byte(crateJSON))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	info, err := c.FetchCrate(context.Background(), "serde", true)
	if err != nil {
		t.Fatalf("FetchCrate failed: %v", err)
	}

	if info.Name != "serde" {
		t.Errorf("expected name serde, got %s", info.Name)
	}
	if info.MaxVersion != "1.0.193" {
		t.Errorf("expected max version 1.0.193, got %s", info.MaxVersion)
	}
	if info.Repository != "https://github.com/serde-rs/serde" {
		t.Errorf("unexpected repository: %s", info.Repository)
	}
	if info.HomePage != "https://serde.rs" {
		t.Errorf("unexpected homepage: %s", info.HomePage)
	}
	if len(info.Versions) != 2 {
		t.Fatalf("expected 2 versions, got %d", len(info.Versions))
	}
	if info.Versions[0].PublishedBy != "dtolnay" {
		t.Errorf("expected publisher dtolnay, got %s", info.Versions[0].PublishedBy)
	}
	if info.Versions[1].PublishedBy != "" {
		t.Errorf("null published_by should map to empty login, got %s", info.Versions[1].PublishedBy)
	}
	want := time.Date(2023, 11, 25, 20, 22, 41, 862712000, time.UTC)
	if !info.Versions[0].CreatedAt.Equal(want) {
		t.Errorf("created_at = %v, want %v", info.Versions[0].CreatedAt, want)
	}
}

func TestClient_FetchCrate_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	_, err := c.FetchCrate(context.Background(), "nonexistent", true)
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_FetchOwners(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/crates/serde/owners":
			w.Write([]byte(ownersJSON))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	owners, err := c.FetchOwners(context.Background(), "serde", true)
	if err != nil {
		t.Fatalf("FetchOwners failed: %v", err)
	}
	if len(owners) != 2 {
		t.Fatalf("expected 2 owners, got %d", len(owners))
	}
	if owners[0].Login != "dtolnay" || owners[0].Name != "David Tolnay" {
		t.Errorf("unexpected owner: %+v", owners[0])
	}
	if owners[1].Login != "github:serde-rs:publish" || owners[1].Name != "" {
		t.Errorf("null owner name should map to empty string: %+v", owners[1])
	}
}

func TestClient_FetchRecentDownloads(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/crates/serde/downloads":
			w.Write([]byte(downloadsJSON))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	// Only the first 3 of 4 daily entries are summed
	total, err := c.FetchRecentDownloads(context.Background(), "serde", 3, true)
	if err != nil {
		t.Fatalf("FetchRecentDownloads failed: %v", err)
	}
	if total != 600 {
		t.Errorf("expected 600 downloads, got %d", total)
	}

	// A window larger than the data sums everything
	total, err = c.FetchRecentDownloads(context.Background(), "serde", 30, true)
	if err != nil {
		t.Fatalf("FetchRecentDownloads failed: %v", err)
	}
	if total != 1000 {
		t.Errorf("expected 1000 downloads, got %d", total)
	}
}

func TestClient_FetchCrate_Cached(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(crateJSON))
	}))
	defer server.Close()

	backend, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := &Client{
		Client:  integrations.NewClient(backend, "crates:", time.Hour, nil),
		baseURL: server.URL,
	}

	for i := 0; i < 2; i++ {
		if _, err := c.FetchCrate(context.Background(), "serde", false); err != nil {
			t.Fatalf("FetchCrate failed: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("expected 1 upstream call, got %d", calls)
	}
}

func testClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	headers := map[string]string{
		"User-Agent": "sbom-analyzer/1.0 (https://github.com/paritytech-secops/sbom-analyzer)",
	}
	return &Client{
		Client:  integrations.NewClient(cache.NewNullCache(), "crates:", time.Hour, headers),
		baseURL: serverURL,
	}
}
