package analyze

import (
	"context"
	"time"

	"github.com/paritytech-secops/sbom-analyzer/pkg/observability"
	"github.com/paritytech-secops/sbom-analyzer/pkg/sbom"
)

// Record is a package row enriched with registry metadata. Fields the
// registry could not provide stay at their zero values.
type Record struct {
	Type            string    // Package type (cargo, npm, ...)
	Name            string    // Package name
	Version         string    // Declared version from the input
	RepoURL         string    // Source repository URL
	RepoOwner       string    // Owner segment of the repository URL
	RepoName        string    // Name segment of the repository URL
	Owners          []string  // Registry maintainers, "login (name)" form
	RecentDownloads int       // Downloads over the recent window
	LastPush        time.Time // Publish time of the matched release
	LastPushAuthor  string    // Login of the publisher
}

// Enricher fills registry metadata into records of a package type it handles.
type Enricher interface {
	// Supports reports whether the enricher handles the given package type.
	Supports(pkgType string) bool
	// Enrich fills registry metadata into the record.
	Enrich(ctx context.Context, rec *Record, refresh bool) error
}

// Options configures an analysis run.
type Options struct {
	Refresh bool                 // Bypass cache for fresh registry data
	Logger  func(string, ...any) // Warning callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Analyzer runs enrichers over the packages of a parsed document.
type Analyzer struct {
	enrichers []Enricher
}

// New creates an Analyzer with the given enrichers. The first enricher that
// supports a package's type handles it; unmatched packages pass through with
// only their declared fields.
func New(enrichers ...Enricher) *Analyzer {
	return &Analyzer{enrichers: enrichers}
}

// Run enriches every package in the document and returns one record per
// package, in input order. Registry lookups are deliberately sequential:
// crates.io rate-limits aggressive clients. A failed lookup logs a warning
// and leaves the record unenriched; it never aborts the run.
func (a *Analyzer) Run(ctx context.Context, doc *sbom.Document, opts Options) ([]Record, error) {
	opts = opts.WithDefaults()
	hooks := observability.Analyze()

	records := make([]Record, 0, len(doc.Packages))
	for _, pkg := range doc.Packages {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		rec := Record{
			Type:    pkg.Type,
			Name:    pkg.Name,
			Version: pkg.Version,
		}

		hooks.OnPackageStart(ctx, pkg.Type, pkg.Name)
		start := time.Now()

		var err error
		for _, e := range a.enrichers {
			if e.Supports(pkg.Type) {
				err = e.Enrich(ctx, &rec, opts.Refresh)
				break
			}
		}
		if err != nil {
			opts.Logger("enrich failed: %s %s: %v", pkg.Type, pkg.Name, err)
		}

		hooks.OnPackageComplete(ctx, pkg.Type, pkg.Name, time.Since(start), err)
		records = append(records, rec)
	}
	return records, nil
}
