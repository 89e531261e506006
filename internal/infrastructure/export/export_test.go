package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/mtb-io/mercury-ci/internal/core/domain"
)

func sampleResult() *domain.AnalysisResult {
	entities := domain.NewEntityMap()
	entities.Add(domain.KindEmail, "jane@example.com")
	entities.Add(domain.KindCurrency, "£1,200.00")
	return &domain.AnalysisResult{
		DocType:         "Invoice",
		Summary:         "Classified as Invoice",
		KeyFindings:     []string{"Document classified as Invoice"},
		Recommendations: []string{"Cross-check invoice details against purchase records"},
		Entities:        entities,
		Confidence:      0.8,
		DataQuality:     domain.QualityMedium,
		ProcessedRows:   42,
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := Render(sampleResult(), FormatJSON)
	if err != nil {
		t.Fatalf("render json: %v", err)
	}

	var decoded domain.AnalysisResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("round-trip: %v", err)
	}
	if decoded.DocType != "Invoice" || decoded.ProcessedRows != 42 {
		t.Fatalf("unexpected payload %+v", decoded)
	}
}

func TestRenderCSV(t *testing.T) {
	data, err := Render(sampleResult(), FormatCSV)
	if err != nil {
		t.Fatalf("render csv: %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse rendered csv: %v", err)
	}
	if len(rows) == 0 || rows[0][0] != "section" {
		t.Fatalf("expected header row, got %v", rows)
	}

	var foundEmail, foundFinding bool
	for _, row := range rows {
		if row[0] == "entities" && row[1] == "email" && row[2] == "jane@example.com" {
			foundEmail = true
		}
		if row[0] == "keyFindings" && row[2] == "Document classified as Invoice" {
			foundFinding = true
		}
	}
	if !foundEmail || !foundFinding {
		t.Fatalf("missing expected rows: email=%v finding=%v", foundEmail, foundFinding)
	}
}

func TestRenderXLSX(t *testing.T) {
	data, err := Render(sampleResult(), FormatXLSX)
	if err != nil {
		t.Fatalf("render xlsx: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open rendered workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Sheet1", "A1")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if got != "section" {
		t.Fatalf("A1 = %q, want header", got)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render(sampleResult(), "pptx")
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid-input error, got %v", err)
	}
	if MimeType("pptx") != "application/octet-stream" {
		t.Fatalf("unknown formats fall back to octet-stream")
	}
}
