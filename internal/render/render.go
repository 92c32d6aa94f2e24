// Package render projects a validated AnalysisResult into display models.
// Projection is pure: it never re-queries the model, and switching format
// only re-reads the already-held result.
package render

import (
	"clausegenie/internal/domain"
)

// Format selects the display shape of an analysis result.
type Format string

const (
	FormatNarrative Format = "narrative"
	FormatEntities  Format = "entities"
	FormatTable     Format = "table"
)

// ParseFormat maps a query value to a Format. The empty string defaults to
// the narrative view, matching the original default selection.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatNarrative, "":
		return FormatNarrative, nil
	case FormatEntities:
		return FormatEntities, nil
	case FormatTable:
		return FormatTable, nil
	}
	return "", domain.ErrUnsupportedFormat
}

// EntityPlaceholder is rendered for clauses with zero extracted entities,
// instead of an empty region.
const EntityPlaceholder = "No specific entities found."

// DisplayModel is the toolkit-independent projection of one analysis
// result in one format. The summary header is present in every format.
type DisplayModel struct {
	Format              Format          `json:"format"`
	Summary             string          `json:"summary"`
	SimplificationLevel string          `json:"simplification_level"`
	Narrative           []NarrativeItem `json:"narrative,omitempty"`
	Entities            []EntitySection `json:"entities,omitempty"`
	Table               *Table          `json:"table,omitempty"`
}

// NarrativeItem is one ordered entry of the detailed simplification list.
type NarrativeItem struct {
	Position int              `json:"position"`
	Title    string           `json:"title"`
	Content  string           `json:"content"`
	Risk     domain.RiskLevel `json:"risk"`
	Severity int              `json:"severity"`
}

// EntitySection is one clause card of the entity-tagged view.
type EntitySection struct {
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	Badges      []Badge `json:"badges"`
	Placeholder string  `json:"placeholder,omitempty"`
}

// Badge is one flattened entity chip.
type Badge struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// Table is the tabular projection, one row per clause.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    []TableRow `json:"rows"`
}

// TableRow is one clause row with its severity-coded risk label.
type TableRow struct {
	Title    string           `json:"title"`
	Content  string           `json:"content"`
	Risk     domain.RiskLevel `json:"risk"`
	Severity int              `json:"severity"`
}

// Render projects result into the requested format. All formats iterate
// the same ordered clause sequence and share the risk-to-severity mapping
// (High > Medium > Low).
func Render(result *domain.AnalysisResult, format Format) (*DisplayModel, error) {
	if result == nil {
		return nil, domain.ErrNotAnalyzed
	}

	model := &DisplayModel{
		Format:              format,
		Summary:             result.Summary,
		SimplificationLevel: result.SimplificationLevel,
	}

	switch format {
	case FormatNarrative:
		model.Narrative = renderNarrative(result.Clauses)
	case FormatEntities:
		model.Entities = renderEntities(result.Clauses)
	case FormatTable:
		model.Table = renderTable(result.Clauses)
	default:
		return nil, domain.ErrUnsupportedFormat
	}
	return model, nil
}

func renderNarrative(clauses []domain.Clause) []NarrativeItem {
	items := make([]NarrativeItem, 0, len(clauses))
	for i, c := range clauses {
		items = append(items, NarrativeItem{
			Position: i + 1,
			Title:    c.Title,
			Content:  c.SimplifiedContent,
			Risk:     c.RiskLevel,
			Severity: c.RiskLevel.Severity(),
		})
	}
	return items
}

func renderEntities(clauses []domain.Clause) []EntitySection {
	sections := make([]EntitySection, 0, len(clauses))
	for _, c := range clauses {
		section := EntitySection{
			Title:   c.Title,
			Content: c.SimplifiedContent,
			Badges:  make([]Badge, 0, len(c.Entities)),
		}
		for _, e := range c.Entities {
			section.Badges = append(section.Badges, Badge{Type: e.Type, Name: e.Name})
		}
		if len(section.Badges) == 0 {
			section.Placeholder = EntityPlaceholder
		}
		sections = append(sections, section)
	}
	return sections
}

func renderTable(clauses []domain.Clause) *Table {
	t := &Table{
		Headers: []string{"Clause Title", "Simplified Content", "Risk"},
		Rows:    make([]TableRow, 0, len(clauses)),
	}
	for _, c := range clauses {
		t.Rows = append(t.Rows, TableRow{
			Title:    c.Title,
			Content:  c.SimplifiedContent,
			Risk:     c.RiskLevel,
			Severity: c.RiskLevel.Severity(),
		})
	}
	return t
}
