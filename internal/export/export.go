// Package export serializes an AnalysisResult into downloadable artifacts:
// the raw formatted JSON the original offers, plus CSV and XLSX projections
// of the clause table.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"clausegenie/internal/domain"
)

// Format selects the artifact type.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a query value to an artifact Format; empty defaults to JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", domain.ErrUnsupportedFormat
}

// ContentType returns the MIME type for the artifact format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}

// Filename builds the timestamp-derived artifact name, e.g.
// ClauseGenie_Analysis_1735689600000.json.
func Filename(f Format, now time.Time) string {
	return fmt.Sprintf("ClauseGenie_Analysis_%d.%s", now.UnixMilli(), f)
}

// Write serializes result in the requested format.
func Write(w io.Writer, result *domain.AnalysisResult, f Format) error {
	if result == nil {
		return domain.ErrNotAnalyzed
	}
	switch f {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatCSV:
		return writeCSV(w, result)
	case FormatXLSX:
		return writeXLSX(w, result)
	}
	return domain.ErrUnsupportedFormat
}

func writeJSON(w io.Writer, result *domain.AnalysisResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling analysis result: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing json artifact: %w", err)
	}
	return nil
}
