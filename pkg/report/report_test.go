package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/paritytech-secops/sbom-analyzer/pkg/analyze"
)

func sampleReport() *Report {
	push := time.Date(2023, 11, 25, 20, 22, 41, 0, time.UTC)
	return &Report{
		ID:          "test-run",
		GeneratedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Source:      "bom.json",
		Rows: []Row{
			{
				PackageType:     "cargo",
				PackageName:     "serde",
				Version:         "1.0.193",
				RepoURL:         "https://github.com/serde-rs/serde",
				RepoOwner:       "serde-rs",
				RepoName:        "serde",
				PackageOwners:   []string{"dtolnay (David Tolnay)", "github:serde-rs:publish"},
				RecentDownloads: 123456,
				LastPush:        push,
				LastPushAuthor:  "dtolnay",
			},
			{
				PackageType: "npm",
				PackageName: "left-pad",
				Version:     "1.3.0",
			},
		},
	}
}

func TestNew(t *testing.T) {
	records := []analyze.Record{
		{Type: "cargo", Name: "serde", Version: "1.0.193", RepoOwner: "serde-rs"},
	}

	rep := New("bom.json", records)
	if rep.ID == "" {
		t.Error("expected a generated report ID")
	}
	if rep.Source != "bom.json" {
		t.Errorf("unexpected source: %s", rep.Source)
	}
	if len(rep.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rep.Rows))
	}
	if rep.Rows[0].RepoOwner != "serde-rs" {
		t.Errorf("record fields not carried over: %+v", rep.Rows[0])
	}

	other := New("bom.json", records)
	if other.ID == rep.ID {
		t.Error("expected distinct IDs per run")
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(sampleReport(), &buf); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	want := strings.Join([]string{
		"PackageType,PackageName,Version,RepoURL,RepoOwner,RepoName,PackageOwners,7DaysDownloads,LastPackagePushDate,LastPackagePushAuthor",
		`cargo,serde,1.0.193,https://github.com/serde-rs/serde,serde-rs,serde,"dtolnay (David Tolnay), github:serde-rs:publish",123456,2023-11-25,dtolnay`,
		"npm,left-pad,1.3.0,,,,,0,,",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(sampleReport(), &buf); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.ID != "test-run" || len(decoded.Rows) != 2 {
		t.Errorf("unexpected decoded report: %+v", decoded)
	}
	// Zero push dates are omitted entirely
	if strings.Contains(buf.String(), "0001-01-01") {
		t.Error("zero time leaked into JSON output")
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(sampleReport(), &buf, "yaml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestWrite_Formats(t *testing.T) {
	for _, format := range []string{"csv", "json"} {
		var buf bytes.Buffer
		if err := Write(sampleReport(), &buf, format); err != nil {
			t.Errorf("Write(%s) failed: %v", format, err)
		}
		if buf.Len() == 0 {
			t.Errorf("Write(%s) produced no output", format)
		}
	}
}
