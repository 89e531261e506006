// Package tabular profiles raw CSV text: per-column type inference, numeric
// statistics and business-domain detection from header keywords.
package tabular

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mtb-io/mercury-ci/internal/core/domain"
)

// typeThreshold is the fixed share of parseable samples required to call a
// column numeric or date. Policy constant, not tunable at runtime.
const typeThreshold = 0.8

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2 January 2006",
	time.RFC3339,
}

var domainKeywords = []struct {
	name     string
	keywords []string
}{
	{"financial", []string{"price", "cost", "revenue", "profit", "amount", "budget", "expense", "income", "vat", "invoice"}},
	{"sales", []string{"sales", "order", "customer", "deal", "pipeline", "quota", "conversion"}},
	{"marketing", []string{"campaign", "click", "impression", "ctr", "lead", "engagement", "reach"}},
	{"hr", []string{"employee", "salary", "headcount", "attendance", "leave", "department", "hire"}},
	{"operations", []string{"inventory", "stock", "shipment", "delivery", "supplier", "production", "logistics"}},
}

type Profiler struct{}

func NewProfiler() *Profiler {
	return &Profiler{}
}

// Profile treats the first non-blank line as headers and infers column types
// over all non-empty samples. Values that fail to parse are excluded from
// numeric statistics rather than failing the column.
func (p *Profiler) Profile(csvText string) (domain.TableProfile, error) {
	reader := csv.NewReader(strings.NewReader(csvText))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return domain.TableProfile{}, domain.WrapError(domain.ErrInvalidInput, "parse csv", err)
	}
	records = dropBlank(records)
	if len(records) == 0 {
		return domain.TableProfile{}, domain.WrapError(domain.ErrInvalidInput, "parse csv", fmt.Errorf("no header row"))
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}
	rows := records[1:]

	profile := domain.TableProfile{
		Headers:      headers,
		RowCount:     len(rows),
		ColumnTypes:  make([]domain.ColumnType, len(headers)),
		NumericStats: make(map[string]domain.NumericStats),
		Domain:       detectDomain(headers),
	}

	for col, header := range headers {
		samples := columnSamples(rows, col)
		profile.ColumnTypes[col] = classifyColumn(samples)
		if profile.ColumnTypes[col] == domain.ColumnNumeric {
			profile.NumericStats[header] = numericStats(samples)
		}
	}
	return profile, nil
}

func dropBlank(records [][]string) [][]string {
	kept := records[:0]
	for _, rec := range records {
		blank := true
		for _, field := range rec {
			if strings.TrimSpace(field) != "" {
				blank = false
				break
			}
		}
		if !blank {
			kept = append(kept, rec)
		}
	}
	return kept
}

func columnSamples(rows [][]string, col int) []string {
	samples := make([]string, 0, len(rows))
	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[col])
		if v != "" {
			samples = append(samples, v)
		}
	}
	return samples
}

func classifyColumn(samples []string) domain.ColumnType {
	if len(samples) == 0 {
		return domain.ColumnText
	}
	numeric, dates := 0, 0
	for _, v := range samples {
		if _, err := parseNumber(v); err == nil {
			numeric++
		}
		if parsesAsDate(v) {
			dates++
		}
	}
	total := float64(len(samples))
	if float64(numeric)/total >= typeThreshold {
		return domain.ColumnNumeric
	}
	if float64(dates)/total >= typeThreshold {
		return domain.ColumnDate
	}
	return domain.ColumnText
}

func numericStats(samples []string) domain.NumericStats {
	stats := domain.NumericStats{}
	sum := 0.0
	for _, v := range samples {
		n, err := parseNumber(v)
		if err != nil {
			continue
		}
		if stats.Count == 0 || n < stats.Min {
			stats.Min = n
		}
		if stats.Count == 0 || n > stats.Max {
			stats.Max = n
		}
		sum += n
		stats.Count++
	}
	if stats.Count > 0 {
		stats.Mean = sum / float64(stats.Count)
	}
	return stats
}

func parseNumber(v string) (float64, error) {
	cleaned := strings.ReplaceAll(v, ",", "")
	return strconv.ParseFloat(cleaned, 64)
}

func parsesAsDate(v string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

// detectDomain matches header names against the fixed keyword groups in
// order; the first group with any match wins.
func detectDomain(headers []string) string {
	for _, group := range domainKeywords {
		for _, header := range headers {
			lower := strings.ToLower(header)
			for _, kw := range group.keywords {
				if strings.Contains(lower, kw) {
					return group.name
				}
			}
		}
	}
	return "general"
}
