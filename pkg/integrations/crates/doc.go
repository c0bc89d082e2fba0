// Package crates provides an HTTP client for the crates.io API.
//
// # Overview
//
// This package fetches crate metadata from crates.io (https://crates.io),
// the Rust community's package registry. Three endpoints are used:
//
//   - /crates/{name}: crate identity, repository/homepage URLs, versions
//   - /crates/{name}/owners: owning users and teams
//   - /crates/{name}/downloads: per-day download counts
//
// # Usage
//
//	client := crates.NewClient(backend, 24*time.Hour)
//
//	crate, err := client.FetchCrate(ctx, "serde", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(crate.Name, crate.MaxVersion)
//	fmt.Println("Repository:", crate.Repository)
//
// # Caching
//
// Responses are cached to reduce load on crates.io. The cache TTL is set
// when creating the client. Pass refresh=true to bypass the cache.
//
// # Rate Limiting
//
// crates.io rate-limits and bans clients that hammer the API. Callers must
// keep lookups sequential; the analyzer deliberately does not fetch crates
// concurrently.
//
// # User-Agent
//
// The client includes a User-Agent header as requested by crates.io policy.
package crates
