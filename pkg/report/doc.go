// Package report turns enrichment records into output documents.
//
// A [Report] collects the rows of one analysis run under a unique ID and
// timestamp. [WriteCSV] produces the flat spreadsheet form, [WriteJSON] the
// structured form, and [MongoSink] stores whole runs in MongoDB for teams
// that track SBOM reports over time.
package report
