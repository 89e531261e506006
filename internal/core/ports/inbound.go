package ports

import (
	"context"
	"io"

	"github.com/mtb-io/mercury-ci/internal/core/domain"
)

// FileIngestor is the inbound contract for file upload orchestration and
// the lifecycle of the stored payload.
type FileIngestor interface {
	Upload(ctx context.Context, filename string, body io.Reader) (*domain.UploadedFile, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *domain.UploadedFile, error)
	Delete(ctx context.Context, id string) error
}

// FileAnalyzer is the inbound contract for running the analysis pipeline on
// an uploaded file.
type FileAnalyzer interface {
	AnalyzeByID(ctx context.Context, fileID string) (*domain.UploadedFile, error)
	AnalyzeCSVData(csvText string) (*domain.AnalysisResult, error)
}

// BriefingGenerator produces and persists intelligence briefings.
type BriefingGenerator interface {
	Generate(ctx context.Context, req domain.BriefingRequest) (*domain.Briefing, error)
}

// ReportGenerator produces and persists business-intelligence reports.
type ReportGenerator interface {
	Generate(ctx context.Context, reportType string, sections []string) (*domain.Report, error)
}

// ResultExporter renders a file's analysis result into a downloadable format.
type ResultExporter interface {
	Export(ctx context.Context, fileID, format string) (data []byte, mimeType, filename string, err error)
}
