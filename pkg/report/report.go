package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/paritytech-secops/sbom-analyzer/pkg/analyze"
)

// Report is the result of one analysis run.
type Report struct {
	ID          string    `json:"id" bson:"id"`
	GeneratedAt time.Time `json:"generated_at" bson:"generated_at"`
	Source      string    `json:"source" bson:"source"`
	Rows        []Row     `json:"rows" bson:"rows"`
}

// Row is one package with its enrichment results.
type Row struct {
	PackageType     string    `json:"package_type" bson:"package_type"`
	PackageName     string    `json:"package_name" bson:"package_name"`
	Version         string    `json:"version,omitempty" bson:"version,omitempty"`
	RepoURL         string    `json:"repo_url,omitempty" bson:"repo_url,omitempty"`
	RepoOwner       string    `json:"repo_owner,omitempty" bson:"repo_owner,omitempty"`
	RepoName        string    `json:"repo_name,omitempty" bson:"repo_name,omitempty"`
	PackageOwners   []string  `json:"package_owners,omitempty" bson:"package_owners,omitempty"`
	RecentDownloads int       `json:"recent_downloads,omitempty" bson:"recent_downloads,omitempty"`
	LastPush        time.Time `json:"last_push,omitzero" bson:"last_push,omitempty"`
	LastPushAuthor  string    `json:"last_push_author,omitempty" bson:"last_push_author,omitempty"`
}

// New builds a report from enrichment records. Each report gets a fresh
// unique ID so runs stored side by side stay distinguishable.
func New(source string, records []analyze.Record) *Report {
	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = Row{
			PackageType:     rec.Type,
			PackageName:     rec.Name,
			Version:         rec.Version,
			RepoURL:         rec.RepoURL,
			RepoOwner:       rec.RepoOwner,
			RepoName:        rec.RepoName,
			PackageOwners:   rec.Owners,
			RecentDownloads: rec.RecentDownloads,
			LastPush:        rec.LastPush,
			LastPushAuthor:  rec.LastPushAuthor,
		}
	}
	return &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Source:      source,
		Rows:        rows,
	}
}
