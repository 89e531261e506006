// Package entities implements regex-based entity extraction over free text.
// Each entity kind keeps its own pattern and scan function so the contracts
// stay independently verifiable.
package entities

import (
	"regexp"
	"strings"

	"github.com/mtb-io/mercury-ci/internal/core/domain"
)

var (
	emailPattern    = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern    = regexp.MustCompile(`(?:\+44|0)[\s-]?\d(?:[\s-]?\d){9,}`)
	datePattern     = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b|\b\d{1,2}(?:st|nd|rd|th)?\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4}\b`)
	currencyPattern = regexp.MustCompile(`(?:£|\$|USD\s?)\d{1,3}(?:,\d{3})*(?:\.\d+)?`)
	postcodePattern = regexp.MustCompile(`\b[A-Z]{1,2}\d[A-Z\d]?\s\d[A-Z]{2}\b`)
	niPattern       = regexp.MustCompile(`\b[A-Z]{2}\d{6}[A-Z]\b`)
	vatPattern      = regexp.MustCompile(`\bGB\d{9}\b`)
	urlPattern      = regexp.MustCompile(`https?://[^\s<>"')]+`)

	companyNoPattern = regexp.MustCompile(`(?i)company\s+(?:no|number)\.?\s*:?\s*(\d{8})`)
	invoiceNoPattern = regexp.MustCompile(`(?i)invoice\s+(?:no|number|ref)\.?\s*:?\s*#?\s*([A-Za-z0-9][A-Za-z0-9-]{2,})`)
	accountNoPattern = regexp.MustCompile(`(?i)account\s+(?:no|number)\.?\s*:?\s*(\d{6,10})`)
)

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract runs every pattern independently and returns a map where every
// entity kind is present. Unmatched kinds map to an empty slice; values are
// deduplicated case-sensitively in first-occurrence order. Extraction never
// fails.
func (e *Extractor) Extract(text string) domain.EntityMap {
	m := domain.NewEntityMap()
	addMatches(m, domain.KindEmail, scanEmails(text))
	addMatches(m, domain.KindPhone, scanPhones(text))
	addMatches(m, domain.KindDate, scanDates(text))
	addMatches(m, domain.KindCurrency, scanCurrency(text))
	addMatches(m, domain.KindPostcode, scanPostcodes(text))
	addMatches(m, domain.KindNINumber, scanNINumbers(text))
	addMatches(m, domain.KindVATNumber, scanVATNumbers(text))
	addMatches(m, domain.KindCompanyNumber, scanCompanyNumbers(text))
	addMatches(m, domain.KindInvoiceNumber, scanInvoiceNumbers(text))
	addMatches(m, domain.KindAccountNumber, scanAccountNumbers(text))
	addMatches(m, domain.KindURL, scanURLs(text))
	return m
}

func addMatches(m domain.EntityMap, kind domain.EntityKind, values []string) {
	for _, v := range values {
		m.Add(kind, v)
	}
}

func scanEmails(text string) []string {
	return emailPattern.FindAllString(text, -1)
}

func scanPhones(text string) []string {
	matches := phonePattern.FindAllString(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.TrimSpace(m))
	}
	return out
}

func scanDates(text string) []string {
	return datePattern.FindAllString(text, -1)
}

func scanCurrency(text string) []string {
	return currencyPattern.FindAllString(text, -1)
}

func scanPostcodes(text string) []string {
	return postcodePattern.FindAllString(text, -1)
}

func scanNINumbers(text string) []string {
	return niPattern.FindAllString(text, -1)
}

func scanVATNumbers(text string) []string {
	return vatPattern.FindAllString(text, -1)
}

func scanURLs(text string) []string {
	return urlPattern.FindAllString(text, -1)
}

func scanCompanyNumbers(text string) []string {
	return submatches(companyNoPattern, text)
}

func scanInvoiceNumbers(text string) []string {
	return submatches(invoiceNoPattern, text)
}

func scanAccountNumbers(text string) []string {
	return submatches(accountNoPattern, text)
}

func submatches(pattern *regexp.Regexp, text string) []string {
	groups := pattern.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		if len(g) > 1 && g[1] != "" {
			out = append(out, g[1])
		}
	}
	return out
}
