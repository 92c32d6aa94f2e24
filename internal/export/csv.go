package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"clausegenie/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var bom = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Clause Title",
	"Simplified Content",
	"Risk",
	"Entities",
}

func writeCSV(w io.Writer, result *domain.AnalysisResult) error {
	if _, err := w.Write(bom); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for i := range result.Clauses {
		if err := cw.Write(clauseToRow(&result.Clauses[i])); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func clauseToRow(c *domain.Clause) []string {
	return []string{
		c.Title,
		c.SimplifiedContent,
		string(c.RiskLevel),
		flattenEntities(c.Entities),
	}
}

// flattenEntities joins entities as "Name (TYPE); ..." for a single cell.
func flattenEntities(entities []domain.Entity) string {
	if len(entities) == 0 {
		return ""
	}
	parts := make([]string, 0, len(entities))
	for _, e := range entities {
		parts = append(parts, fmt.Sprintf("%s (%s)", e.Name, e.Type))
	}
	return strings.Join(parts, "; ")
}
