package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const dateFormat = "2006-01-02"

var csvHeader = []string{
	"PackageType",
	"PackageName",
	"Version",
	"RepoURL",
	"RepoOwner",
	"RepoName",
	"PackageOwners",
	"7DaysDownloads",
	"LastPackagePushDate",
	"LastPackagePushAuthor",
}

// WriteCSV writes the report rows as CSV, one line per package. Owner lists
// are joined with ", " inside a single column and zero push dates stay empty.
func WriteCSV(rep *Report, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rep.Rows {
		date := ""
		if !row.LastPush.IsZero() {
			date = row.LastPush.Format(dateFormat)
		}
		record := []string{
			row.PackageType,
			row.PackageName,
			row.Version,
			row.RepoURL,
			row.RepoOwner,
			row.RepoName,
			strings.Join(row.PackageOwners, ", "),
			strconv.Itoa(row.RecentDownloads),
			date,
			row.LastPushAuthor,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
