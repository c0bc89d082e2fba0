// Package pkg provides the core libraries of the SBOM analyzer.
//
// # Overview
//
// The analyzer reads a Software Bill of Materials, extracts the declared
// packages, and enriches each entry with metadata from its package registry.
// The pkg directory is organized by concern:
//
//   - [sbom] - Input parsing (CycloneDX, SPDX, Cargo.toml)
//   - [analyze] - Registry enrichment of extracted packages
//   - [report] - Output documents (CSV, JSON, MongoDB)
//   - [integrations] - HTTP clients for package registries (crates.io)
//   - [cache] - Response cache backends (file, Redis, null)
//   - [observability] - Lifecycle hooks for metrics and tracing
//   - [buildinfo] - Build-time version information
//
// # Data Flow
//
//	SBOM / Cargo.toml
//	       ↓
//	  [sbom] package (extract declared packages)
//	       ↓
//	  [analyze] package (enrich from registry, one package at a time)
//	       ↓
//	  [report] package (CSV, JSON, MongoDB)
//
// # Quick Start
//
// Parse an SBOM and enrich its cargo packages:
//
//	doc, _ := sbom.ParseFile(ctx, "bom.json", sbom.Options{})
//
//	backend, _ := cache.NewFileCache("")
//	client := crates.NewClient(backend, 24*time.Hour)
//	analyzer := analyze.New(analyze.NewCargoEnricher(client, nil))
//
//	records, _ := analyzer.Run(ctx, doc, analyze.Options{})
//	rep := report.New("bom.json", records)
//	_ = report.WriteCSV(rep, os.Stdout)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...        # All tests
//	go test ./pkg/sbom/...   # Specific package
//
// [sbom]: https://pkg.go.dev/github.com/paritytech-secops/sbom-analyzer/pkg/sbom
// [analyze]: https://pkg.go.dev/github.com/paritytech-secops/sbom-analyzer/pkg/analyze
// [report]: https://pkg.go.dev/github.com/paritytech-secops/sbom-analyzer/pkg/report
// [integrations]: https://pkg.go.dev/github.com/paritytech-secops/sbom-analyzer/pkg/integrations
// [cache]: https://pkg.go.dev/github.com/paritytech-secops/sbom-analyzer/pkg/cache
// [observability]: https://pkg.go.dev/github.com/paritytech-secops/sbom-analyzer/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/paritytech-secops/sbom-analyzer/pkg/buildinfo
package pkg
