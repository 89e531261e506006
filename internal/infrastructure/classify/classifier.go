// Package classify infers a document type from filename and content keywords
// and pulls issuer/recipient out of simple "label: value" lines.
package classify

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mtb-io/mercury-ci/internal/core/domain"
)

//go:embed rules.yaml
var rulesYAML []byte

type rule struct {
	DocType  string   `yaml:"doc_type"`
	Keywords []string `yaml:"keywords"`
}

type ruleSet struct {
	Rules   []rule `yaml:"rules"`
	Default string `yaml:"default"`
}

type Classifier struct {
	rules       []rule
	defaultType string
}

// New loads the embedded keyword rules. Rule order in the file is the
// deterministic tie-break: first match wins, never score-based.
func New() (*Classifier, error) {
	var rs ruleSet
	if err := yaml.Unmarshal(rulesYAML, &rs); err != nil {
		return nil, fmt.Errorf("parse classification rules: %w", err)
	}
	if len(rs.Rules) == 0 {
		return nil, fmt.Errorf("classification rules are empty")
	}
	if rs.Default == "" {
		rs.Default = "Document"
	}
	return &Classifier{rules: rs.Rules, defaultType: rs.Default}, nil
}

// Classify is pure: identical inputs always yield identical output.
func (c *Classifier) Classify(fileName, content string) domain.DocInfo {
	info := domain.DocInfo{DocType: c.docType(fileName, content)}
	info.Issuer, info.Recipient = scanLabels(content)
	return info
}

func (c *Classifier) docType(fileName, content string) string {
	name := strings.ToLower(fileName)
	body := strings.ToLower(content)
	for _, r := range c.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(name, kw) || strings.Contains(body, kw) {
				return r.DocType
			}
		}
	}
	return c.defaultType
}

var (
	issuerLabels    = []string{"from:", "sent by:", "issued by:"}
	recipientLabels = []string{"to:", "addressed to:"}
)

// scanLabels takes the first matching label line for each role, or leaves the
// role empty.
func scanLabels(content string) (issuer, recipient string) {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)

		if issuer == "" {
			if v, ok := labelValue(trimmed, lower, issuerLabels); ok {
				issuer = v
			}
		}
		if recipient == "" {
			if v, ok := labelValue(trimmed, lower, recipientLabels); ok {
				recipient = v
			} else if strings.HasPrefix(lower, "dear ") {
				recipient = strings.Trim(strings.TrimSpace(trimmed[len("dear "):]), ",.:;")
			}
		}
		if issuer != "" && recipient != "" {
			break
		}
	}
	return issuer, recipient
}

func labelValue(line, lower string, labels []string) (string, bool) {
	for _, label := range labels {
		if strings.HasPrefix(lower, label) {
			value := strings.TrimSpace(line[len(label):])
			if value != "" {
				return value, true
			}
		}
	}
	return "", false
}
