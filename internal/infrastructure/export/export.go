// Package export renders analysis results into downloadable artefacts.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/mtb-io/mercury-ci/internal/core/domain"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

func MimeType(format string) string {
	switch format {
	case FormatCSV:
		return "text/csv"
	case FormatJSON:
		return "application/json"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// Render serializes an analysis result into the requested format.
func Render(result *domain.AnalysisResult, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return renderJSON(result)
	case FormatCSV:
		return renderCSV(result)
	case FormatXLSX:
		return renderXLSX(result)
	default:
		return nil, domain.WrapError(domain.ErrInvalidInput, "render export", fmt.Errorf("unknown format %q", format))
	}
}

func renderJSON(result *domain.AnalysisResult) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal analysis result: %w", err)
	}
	return data, nil
}

func renderCSV(result *domain.AnalysisResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	for _, row := range resultRows(result) {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func renderXLSX(result *domain.AnalysisResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	for i, row := range resultRows(result) {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, fmt.Errorf("cell coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// resultRows flattens the result into section/field/value rows shared by the
// CSV and XLSX renderers.
func resultRows(result *domain.AnalysisResult) [][]string {
	rows := [][]string{
		{"section", "field", "value"},
		{"overview", "docType", result.DocType},
		{"overview", "summary", result.Summary},
		{"overview", "confidence", strconv.FormatFloat(result.Confidence, 'f', 2, 64)},
		{"overview", "dataQuality", string(result.DataQuality)},
		{"overview", "processedRows", strconv.Itoa(result.ProcessedRows)},
	}
	for _, finding := range result.KeyFindings {
		rows = append(rows, []string{"keyFindings", "finding", finding})
	}
	for _, rec := range result.Recommendations {
		rows = append(rows, []string{"recommendations", "recommendation", rec})
	}
	for _, kind := range domain.AllEntityKinds() {
		for _, value := range result.Entities[kind] {
			rows = append(rows, []string{"entities", string(kind), value})
		}
	}
	return rows
}
