package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"clausegenie/internal/domain"
)

const sheetName = "Analysis"

func writeXLSX(w io.Writer, result *domain.AnalysisResult) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	// Summary header block, then the clause table.
	rows := [][]interface{}{
		{"Summary", result.Summary},
		{"Simplification Level", result.SimplificationLevel},
		{},
		{"Clause Title", "Simplified Content", "Risk", "Entities"},
	}
	for i := range result.Clauses {
		c := &result.Clauses[i]
		rows = append(rows, []interface{}{
			c.Title,
			c.SimplifiedContent,
			string(c.RiskLevel),
			flattenEntities(c.Entities),
		})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("computing cell name: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing sheet row: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing xlsx artifact: %w", err)
	}
	return nil
}
