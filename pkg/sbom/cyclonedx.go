package sbom

import (
	"os"
	"strings"

	"github.com/CycloneDX/cyclonedx-go"
)

// CycloneDX parses CycloneDX SBOMs in JSON or XML form.
type CycloneDX struct{}

func (CycloneDX) Type() string { return "cyclonedx" }

// Supports recognizes the file patterns from
// https://cyclonedx.org/specification/overview/#recognized-file-patterns
func (CycloneDX) Supports(name string) bool {
	lower := strings.ToLower(name)
	switch lower {
	case "bom.json", "bom.xml":
		return true
	}
	return strings.HasSuffix(lower, ".cdx.json") || strings.HasSuffix(lower, ".cdx.xml")
}

func (c CycloneDX) Parse(path string, opts Options) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	format := cyclonedx.BOMFileFormatJSON
	if strings.HasSuffix(strings.ToLower(path), ".xml") {
		format = cyclonedx.BOMFileFormatXML
	}

	var bom cyclonedx.BOM
	if err := cyclonedx.NewBOMDecoder(f, format).Decode(&bom); err != nil {
		return nil, err
	}

	doc := &Document{Format: c.Type()}
	if bom.Components != nil {
		collectComponents(*bom.Components, doc, opts)
	}
	return doc, nil
}

// collectComponents walks the component tree, including nested assemblies.
func collectComponents(components []cyclonedx.Component, doc *Document, opts Options) {
	for _, comp := range components {
		if pkg, ok := convertComponent(comp, opts); ok {
			doc.Packages = append(doc.Packages, pkg)
		}
		if comp.Components != nil {
			collectComponents(*comp.Components, doc, opts)
		}
	}
}

func convertComponent(comp cyclonedx.Component, opts Options) (Package, bool) {
	if comp.PackageURL != "" {
		pkg, err := FromPURL(comp.PackageURL)
		if err != nil {
			opts.Logger("invalid purl %q for component %q", comp.PackageURL, comp.BOMRef)
		} else {
			if pkg.Name == "" {
				pkg.Name = comp.Name
			}
			if pkg.Version == "" {
				pkg.Version = comp.Version
			}
			return pkg, true
		}
	}
	if comp.Name == "" {
		return Package{}, false
	}
	return Package{Name: comp.Name, Version: comp.Version}, true
}
