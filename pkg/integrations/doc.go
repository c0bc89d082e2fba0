// Package integrations provides HTTP clients for package registry APIs.
//
// # Overview
//
// This package contains low-level API clients for fetching package metadata
// from upstream registries. Each registry has its own subpackage:
//
//   - [crates]: Rust crates.io
//
// npm and PyPI clients are planned but not implemented yet; SBOM entries for
// those ecosystems pass through the analyzer unenriched.
//
// # Client Pattern
//
// Registry clients follow a consistent pattern:
//
//	client := crates.NewClient(backend, 24*time.Hour)
//	crate, err := client.FetchCrate(ctx, "serde", false)  // false = use cache
//
// Clients handle:
//   - HTTP requests with retry and backoff
//   - Response caching (pluggable backend, configurable TTL)
//   - API-specific parsing and normalization
//
// # Shared Infrastructure
//
// The [Client] type provides shared HTTP functionality used by all registry
// clients, including HTTP response caching via [cache.Cache].
//
// # Adding a New Registry
//
// To add support for a new package registry:
//
//  1. Create a subpackage: pkg/integrations/<registry>/
//  2. Define response structs matching the API schema
//  3. Implement a Client wrapping [NewClient] for HTTP with caching
//  4. Wire an enricher for the registry's package type into [analyze]
//
// [crates]: github.com/paritytech-secops/sbom-analyzer/pkg/integrations/crates
// [cache.Cache]: github.com/paritytech-secops/sbom-analyzer/pkg/cache.Cache
// [analyze]: github.com/paritytech-secops/sbom-analyzer/pkg/analyze
package integrations
