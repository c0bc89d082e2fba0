package sbom

import (
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// CargoManifest parses Cargo.toml files, treating every declared dependency
// as a cargo package. Only direct dependencies appear; Cargo.toml carries no
// transitive closure.
type CargoManifest struct{}

func (CargoManifest) Type() string { return "cargo.toml" }

func (CargoManifest) Supports(name string) bool {
	return strings.EqualFold(name, "cargo.toml")
}

func (c CargoManifest) Parse(path string, opts Options) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cargo cargoFile
	if err := toml.Unmarshal(data, &cargo); err != nil {
		return nil, err
	}

	seen := make(map[string]string)
	for _, section := range []map[string]any{cargo.Dependencies, cargo.DevDependencies, cargo.BuildDependencies} {
		for name, spec := range section {
			if _, ok := seen[name]; !ok {
				seen[name] = cargoDepVersion(spec)
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	doc := &Document{Format: c.Type()}
	for _, name := range names {
		doc.Packages = append(doc.Packages, Package{
			Type:    TypeCargo,
			Name:    name,
			Version: seen[name],
		})
	}
	return doc, nil
}

// cargoDepVersion extracts the version requirement from a dependency spec,
// which is either a bare string or a table with a "version" key. Requirement
// operators are stripped so the value lines up with registry version numbers.
func cargoDepVersion(spec any) string {
	var req string
	switch t := spec.(type) {
	case string:
		req = t
	case map[string]any:
		if s, ok := t["version"].(string); ok {
			req = s
		}
	}
	return strings.TrimSpace(strings.TrimLeft(req, "^~=<> "))
}

type cargoFile struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
	Dependencies      map[string]any `toml:"dependencies"`
	DevDependencies   map[string]any `toml:"dev-dependencies"`
	BuildDependencies map[string]any `toml:"build-dependencies"`
}
