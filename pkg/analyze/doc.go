// Package analyze enriches SBOM package inventories with registry metadata.
//
// The [Analyzer] walks the packages of a parsed document and hands each one
// to the first [Enricher] that supports its type. Currently only cargo
// packages are enriched, via [CargoEnricher] and the crates.io API; other
// package types pass through with their declared fields only.
//
// Lookups run one package at a time. crates.io rate-limits clients that
// hammer it, so nothing here is concurrent.
package analyze
