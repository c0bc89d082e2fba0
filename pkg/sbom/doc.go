// Package sbom extracts package inventories from software bills of materials
// and manifest files.
//
// # Supported Inputs
//
//   - CycloneDX JSON and XML ([CycloneDX]): *.cdx.json, *.cdx.xml, bom.json, bom.xml
//   - SPDX JSON ([SPDX]): *.spdx.json
//   - Cargo manifests ([CargoManifest]): Cargo.toml
//
// Generic *.json files are sniffed for CycloneDX or SPDX markers.
//
// # Parsing
//
// Use [ParseFile] to detect the format and extract packages in one step:
//
//	doc, err := sbom.ParseFile(ctx, "bom.json", sbom.Options{})
//	for _, pkg := range doc.Packages {
//	    fmt.Println(pkg.Type, pkg.Name, pkg.Version)
//	}
//
// Each extracted [Package] carries the purl type, name (with namespace folded
// in), declared version, and the original purl string. Components without a
// purl keep their declared name and version with an empty type.
package sbom
