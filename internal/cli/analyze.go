package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/paritytech-secops/sbom-analyzer/pkg/analyze"
	"github.com/paritytech-secops/sbom-analyzer/pkg/integrations/crates"
	"github.com/paritytech-secops/sbom-analyzer/pkg/report"
	"github.com/paritytech-secops/sbom-analyzer/pkg/sbom"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	output   string // output file path (stdout if empty)
	format   string // output format: csv or json
	refresh  bool   // bypass cache for fresh registry data
	mongoURI string // optionally store the report in MongoDB
	cache    cacheSettings
}

// analyzeCommand creates the analyze command, the main entry point of the
// tool: parse an SBOM, enrich its packages from the registry, write a report.
func (c *CLI) analyzeCommand() *cobra.Command {
	opts := analyzeOpts{format: "csv", cache: cacheSettings{ttl: defaultCacheTTL}}

	cmd := &cobra.Command{
		Use:   "analyze <sbom-file>",
		Short: "Enrich SBOM packages with registry metadata",
		Long: `Analyze reads an SBOM or manifest file, extracts the declared packages,
and enriches each cargo package with crates.io metadata: repository URL
split into owner and name, the maintainer list, downloads over the last
seven days, and the date and author of the latest release.

Supported inputs: CycloneDX JSON/XML (*.cdx.json, *.cdx.xml, bom.json,
bom.xml), SPDX JSON (*.spdx.json), Cargo.toml, and generic *.json files
containing either SBOM format.

Examples:
  sbom-analyzer analyze bom.json                      # CSV to stdout
  sbom-analyzer analyze bom.json -o report.csv        # CSV to file
  sbom-analyzer analyze bom.json --format json        # JSON report
  sbom-analyzer analyze Cargo.toml --refresh          # skip the cache`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: csv or json")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache for fresh registry data")
	cmd.Flags().BoolVar(&opts.cache.noCache, "no-cache", false, "disable response caching")
	cmd.Flags().StringVar(&opts.cache.dir, "cache-dir", "", "cache directory (default ~/.cache/sbom-analyzer)")
	cmd.Flags().DurationVar(&opts.cache.ttl, "cache-ttl", opts.cache.ttl, "how long registry responses stay cached")
	cmd.Flags().StringVar(&opts.cache.redisURL, "redis", "", "Redis URL for a shared cache (e.g. redis://localhost:6379/0)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "also store the report in MongoDB at this URI")

	return cmd
}

func (c *CLI) runAnalyze(ctx context.Context, input string, opts analyzeOpts) error {
	c.Logger.Infof("Parsing %s", input)

	doc, err := sbom.ParseFile(ctx, input, sbom.Options{
		Logger: func(msg string, args ...any) { c.Logger.Warnf(msg, args...) },
	})
	if err != nil {
		return fmt.Errorf("parse %s: %w", input, err)
	}
	c.Logger.Debugf("Extracted %d packages (%s)", len(doc.Packages), doc.Format)

	backend := c.newCacheBackend(opts.cache)
	defer backend.Close()

	client := crates.NewClient(backend, opts.cache.ttl)
	analyzer := analyze.New(analyze.NewCargoEnricher(client, func(msg string, args ...any) {
		c.Logger.Warnf(msg, args...)
	}))

	prog := newProgress(c.Logger)
	records, err := analyzer.Run(ctx, doc, analyze.Options{
		Refresh: opts.refresh,
		Logger:  func(msg string, args ...any) { c.Logger.Warnf(msg, args...) },
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Enriched %d packages", len(records)))

	rep := report.New(input, records)
	if err := writeReport(rep, opts.output, opts.format); err != nil {
		return err
	}
	if opts.output != "" {
		printSuccess("Report written")
		printFile(opts.output)
	}

	if opts.mongoURI != "" {
		if err := storeReport(ctx, opts.mongoURI, rep); err != nil {
			return fmt.Errorf("store report: %w", err)
		}
		printDetail("Stored report %s in MongoDB", rep.ID)
	}
	return nil
}

// storeReport saves the report through a Mongo sink, closing it afterwards.
func storeReport(ctx context.Context, uri string, rep *report.Report) error {
	sink, err := report.NewMongoSink(ctx, uri)
	if err != nil {
		return err
	}
	defer sink.Close(ctx)
	return sink.Store(ctx, rep)
}

// writeReport serializes the report to the specified path (or stdout if empty).
func writeReport(rep *report.Report, path, format string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return report.Write(rep, out, format)
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
