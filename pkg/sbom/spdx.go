package sbom

import (
	"os"
	"strings"

	spdxjson "github.com/spdx/tools-golang/json"
)

const purlRefType = "purl"

// SPDX parses SPDX SBOMs in JSON form.
type SPDX struct{}

func (SPDX) Type() string { return "spdx" }

func (SPDX) Supports(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".spdx.json")
}

func (s SPDX) Parse(path string, opts Options) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	spdxDoc, err := spdxjson.Read(f)
	if err != nil {
		return nil, err
	}

	doc := &Document{Format: s.Type()}
	for _, spdxPkg := range spdxDoc.Packages {
		found := false
		for _, ref := range spdxPkg.PackageExternalReferences {
			if ref.RefType != purlRefType && ref.RefType != "http://spdx.org/rdf/references/purl" {
				continue
			}
			pkg, err := FromPURL(ref.Locator)
			if err != nil {
				opts.Logger("invalid purl %q for package %q", ref.Locator, spdxPkg.PackageName)
				continue
			}
			if pkg.Name == "" {
				pkg.Name = spdxPkg.PackageName
			}
			if pkg.Version == "" {
				pkg.Version = spdxPkg.PackageVersion
			}
			doc.Packages = append(doc.Packages, pkg)
			found = true
			break
		}
		if !found && spdxPkg.PackageName != "" {
			doc.Packages = append(doc.Packages, Package{
				Name:    spdxPkg.PackageName,
				Version: spdxPkg.PackageVersion,
			})
		}
	}
	return doc, nil
}
