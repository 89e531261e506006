package domain

import "time"

type KPI struct {
	Metric string `json:"metric"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Trend  string `json:"trend"`
}

type BriefingRequest struct {
	Date    string   `json:"date"`
	Company string   `json:"company,omitempty"`
	Sources []string `json:"sources,omitempty"`
}

type Briefing struct {
	ID          string     `json:"id"`
	Date        string     `json:"date"`
	Company     string     `json:"company,omitempty"`
	Sources     []string   `json:"sources"`
	Body        string     `json:"briefing"`
	KPIs        []KPI      `json:"kpis"`
	Insights    []string   `json:"insights"`
	GeneratedAt time.Time  `json:"generatedAt"`
	Title       string     `json:"title"`
	ArchivedAt  *time.Time `json:"archivedAt,omitempty"`
}
