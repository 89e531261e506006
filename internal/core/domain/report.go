package domain

import "time"

type ReportSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type ReportMetadata struct {
	GeneratedAt time.Time `json:"generatedAt"`
	ReportType  string    `json:"reportType"`
	DataSources []string  `json:"dataSources"`
	Confidence  float64   `json:"confidence"`
}

type Report struct {
	ID               string          `json:"id"`
	ReportType       string          `json:"reportType"`
	Title            string          `json:"title"`
	ExecutiveSummary string          `json:"executiveSummary"`
	Sections         []ReportSection `json:"sections"`
	Recommendations  []string        `json:"recommendations"`
	Metadata         ReportMetadata  `json:"metadata"`
	GeneratedAt      time.Time       `json:"generatedAt"`
}
