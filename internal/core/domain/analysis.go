package domain

type DataQuality string

const (
	QualityLow    DataQuality = "Low"
	QualityMedium DataQuality = "Medium"
	QualityHigh   DataQuality = "High"
)

type TextStats struct {
	WordCount      int `json:"wordCount"`
	LineCount      int `json:"lineCount"`
	ParagraphCount int `json:"paragraphCount"`
	PagesHint      int `json:"pagesHint"`
}

type Visualisation struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
	Data        any    `json:"data,omitempty"`
}

// AnalysisResult is the uniform output of every analysis path.
type AnalysisResult struct {
	DocType         string          `json:"docType"`
	Issuer          string          `json:"issuer,omitempty"`
	Recipient       string          `json:"recipient,omitempty"`
	Title           string          `json:"title,omitempty"`
	Stats           TextStats       `json:"stats"`
	Entities        EntityMap       `json:"entities"`
	Summary         string          `json:"summary"`
	KeyFindings     []string        `json:"keyFindings"`
	Recommendations []string        `json:"recommendations"`
	Visualisations  []Visualisation `json:"visualisations"`
	Confidence      float64         `json:"confidence"`
	DataQuality     DataQuality     `json:"dataQuality"`
	ProcessedRows   int             `json:"processedRows"`
}

type ColumnType string

const (
	ColumnNumeric ColumnType = "numeric"
	ColumnDate    ColumnType = "date"
	ColumnText    ColumnType = "text"
)

type NumericStats struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// TableProfile is the CSV profiler output.
type TableProfile struct {
	Headers      []string                `json:"headers"`
	RowCount     int                     `json:"rowCount"`
	ColumnTypes  []ColumnType            `json:"columnTypes"`
	NumericStats map[string]NumericStats `json:"numericStats"`
	Domain       string                  `json:"domain"`
}

// DocInfo is the document classifier output.
type DocInfo struct {
	DocType   string `json:"docType"`
	Issuer    string `json:"issuer,omitempty"`
	Recipient string `json:"recipient,omitempty"`
}
