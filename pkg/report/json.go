package report

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON encodes the full report as indented JSON.
func WriteJSON(rep *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Write serializes the report in the given format ("csv" or "json").
func Write(rep *Report, w io.Writer, format string) error {
	switch format {
	case "csv":
		return WriteCSV(rep, w)
	case "json":
		return WriteJSON(rep, w)
	}
	return fmt.Errorf("unknown output format: %s", format)
}
