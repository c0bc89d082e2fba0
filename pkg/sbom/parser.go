package sbom

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/paritytech-secops/sbom-analyzer/pkg/observability"
)

// Parser reads package inventories from local SBOM or manifest files.
type Parser interface {
	// Parse reads the file at path and returns the extracted packages.
	Parse(path string, opts Options) (*Document, error)
	// Supports reports whether this parser handles the given filename.
	Supports(filename string) bool
	// Type returns the parser type identifier (e.g., "cyclonedx", "spdx").
	Type() string
}

// DefaultParsers returns the built-in parsers in detection order.
func DefaultParsers() []Parser {
	return []Parser{CycloneDX{}, SPDX{}, CargoManifest{}}
}

// Detect finds a parser that supports the given file path.
// Returns an error if no parser matches.
func Detect(path string, parsers ...Parser) (Parser, error) {
	name := filepath.Base(path)
	for _, p := range parsers {
		if p.Supports(name) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("unsupported input: %s", name)
}

// ParseFile detects the input format and extracts its packages. Files with a
// bare .json extension are sniffed for CycloneDX or SPDX content.
func ParseFile(ctx context.Context, path string, opts Options) (*Document, error) {
	opts = opts.WithDefaults()
	hooks := observability.Analyze()
	hooks.OnParseStart(ctx, path)

	doc, err := parseFile(path, opts)
	count := 0
	if doc != nil {
		count = len(doc.Packages)
	}
	hooks.OnParseComplete(ctx, path, count, err)
	return doc, err
}

func parseFile(path string, opts Options) (*Document, error) {
	p, err := Detect(path, DefaultParsers()...)
	if err != nil {
		if strings.HasSuffix(strings.ToLower(path), ".json") {
			return sniffJSON(path, opts)
		}
		return nil, err
	}
	return p.Parse(path, opts)
}

// sniffJSON inspects a generic .json file for SBOM format markers.
func sniffJSON(path string, opts Options) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var probe struct {
		BOMFormat   string `json:"bomFormat"`
		SPDXVersion string `json:"spdxVersion"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("unsupported input: %s: %w", filepath.Base(path), err)
	}
	switch {
	case probe.BOMFormat == "CycloneDX":
		return CycloneDX{}.Parse(path, opts)
	case probe.SPDXVersion != "":
		return SPDX{}.Parse(path, opts)
	}
	return nil, fmt.Errorf("unrecognized SBOM format: %s", filepath.Base(path))
}
