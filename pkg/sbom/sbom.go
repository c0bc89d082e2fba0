package sbom

import (
	"github.com/package-url/packageurl-go"
)

// Package types as they appear in purl type fields.
const (
	TypeCargo         = "cargo"
	TypeNPM           = "npm"
	TypeGitHubActions = "githubactions"
	TypePyPI          = "pypi"
	TypeGitHub        = "github"
)

// Package is a single software component declared in an SBOM or manifest.
type Package struct {
	Type    string // purl type (cargo, npm, pypi, ...), empty if unknown
	Name    string // Package name, including namespace when present
	Version string // Declared version, empty if not pinned
	PURL    string // Original package URL, if the source had one
}

// Document holds the packages extracted from a single input file.
type Document struct {
	Format   string // Parser type that produced this document
	Packages []Package
}

// Options configures SBOM parsing behavior.
type Options struct {
	Logger func(string, ...any) // Warning callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// FromPURL parses a package URL into a Package. The namespace, when present,
// is folded into the name (e.g. "actions/checkout" for GitHub Actions purls).
func FromPURL(raw string) (Package, error) {
	p, err := packageurl.FromString(raw)
	if err != nil {
		return Package{}, err
	}
	name := p.Name
	if p.Namespace != "" {
		name = p.Namespace + "/" + p.Name
	}
	return Package{
		Type:    p.Type,
		Name:    name,
		Version: p.Version,
		PURL:    raw,
	}, nil
}
