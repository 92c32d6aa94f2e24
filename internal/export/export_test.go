package export_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"clausegenie/internal/domain"
	"clausegenie/internal/export"
)

func sampleResult() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Summary:             "A loan agreement.",
		SimplificationLevel: "Moderate",
		Clauses: []domain.Clause{
			{
				Title:             "Collateral",
				SimplifiedContent: "Keep 110% collateral at all times.",
				RiskLevel:         domain.RiskMedium,
				Entities: []domain.Entity{
					{Type: "ORGANIZATION", Name: "Church Loans & Investments Trust"},
					{Type: "TERM", Name: "Pledge Value"},
				},
			},
			{
				Title:             "Interest",
				SimplifiedContent: "Rate floats 1% under prime.",
				RiskLevel:         domain.RiskLow,
				Entities:          []domain.Entity{},
			},
		},
	}
}

func TestParseFormat_DefaultsToJSON(t *testing.T) {
	f, err := export.ParseFormat("")

	require.NoError(t, err)
	assert.Equal(t, export.FormatJSON, f)
}

func TestParseFormat_Unsupported(t *testing.T) {
	_, err := export.ParseFormat("pdf")

	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestFilename(t *testing.T) {
	now := time.UnixMilli(1735689600000)

	assert.Equal(t, "ClauseGenie_Analysis_1735689600000.json", export.Filename(export.FormatJSON, now))
	assert.Equal(t, "ClauseGenie_Analysis_1735689600000.csv", export.Filename(export.FormatCSV, now))
	assert.Equal(t, "ClauseGenie_Analysis_1735689600000.xlsx", export.Filename(export.FormatXLSX, now))
}

func TestWrite_JSON_RoundTripsWireShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, sampleResult(), export.FormatJSON))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "A loan agreement.", decoded["summary"])
	assert.Len(t, decoded["analysis_results"], 2)
}

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, sampleResult(), export.FormatCSV))

	raw := buf.Bytes()
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, raw[:3])

	records, err := csv.NewReader(bytes.NewReader(raw[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Clause Title", "Simplified Content", "Risk", "Entities"}, records[0])
	assert.Equal(t, "Medium", records[1][2])
	assert.Equal(t, "Church Loans & Investments Trust (ORGANIZATION); Pledge Value (TERM)", records[1][3])
	assert.Equal(t, "", records[2][3])
}

func TestWrite_XLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, sampleResult(), export.FormatXLSX))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Analysis")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 6)
	assert.Equal(t, []string{"Summary", "A loan agreement."}, rows[0])
	assert.Equal(t, "Clause Title", rows[3][0])
	assert.Equal(t, "Collateral", rows[4][0])
	assert.Equal(t, "Low", rows[5][2])
}

func TestWrite_NilResult(t *testing.T) {
	var buf bytes.Buffer

	err := export.Write(&buf, nil, export.FormatJSON)

	assert.ErrorIs(t, err, domain.ErrNotAnalyzed)
}
