package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mtb-io/mercury-ci/internal/core/collection"
	"github.com/mtb-io/mercury-ci/internal/core/domain"
)

var defaultReportSections = []string{
	"Executive Summary",
	"Market Analysis",
	"Competitive Landscape",
	"Strategic Recommendations",
	"Risk Assessment",
	"Implementation Roadmap",
}

var reportRecommendations = []string{
	"Implement data-driven decision making processes across all departments",
	"Invest in technology infrastructure to support advanced analytics",
	"Develop strategic partnerships to enhance market position",
	"Establish regular intelligence briefings for senior leadership",
	"Create automated reporting systems for continuous monitoring",
}

var reportDataSources = []string{"Market Data", "Internal Analytics", "Industry Reports", "Public Information"}

// reportConfidence is a fixed policy value, not a measured fit.
const reportConfidence = 0.87

type GenerateReportUseCase struct {
	reports *collection.Reports
}

func NewGenerateReportUseCase(reports *collection.Reports) *GenerateReportUseCase {
	return &GenerateReportUseCase{reports: reports}
}

func (uc *GenerateReportUseCase) Generate(ctx context.Context, reportType string, sections []string) (*domain.Report, error) {
	reportType = strings.TrimSpace(reportType)
	if reportType == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "generate report", fmt.Errorf("report type is required"))
	}

	titles := sections
	if len(titles) == 0 {
		titles = defaultReportSections
	}
	built := make([]domain.ReportSection, 0, len(titles))
	for _, title := range titles {
		built = append(built, domain.ReportSection{
			Title:   title,
			Content: fmt.Sprintf("This section provides detailed analysis of %s including key findings, trends, and strategic implications for business decision-making.", strings.ToLower(title)),
		})
	}

	now := time.Now().UTC()
	report := domain.Report{
		ID:               uuid.NewString(),
		ReportType:       reportType,
		Title:            fmt.Sprintf("%s Intelligence Report", titleCase(reportType)),
		ExecutiveSummary: fmt.Sprintf("This comprehensive %s intelligence report provides strategic insights and actionable recommendations based on current market conditions and data analysis. The report covers key market trends, competitive landscape, and strategic opportunities for business growth and optimisation.", reportType),
		Sections:         built,
		Recommendations:  reportRecommendations,
		Metadata: domain.ReportMetadata{
			GeneratedAt: now,
			ReportType:  reportType,
			DataSources: reportDataSources,
			Confidence:  reportConfidence,
		},
		GeneratedAt: now,
	}

	if err := uc.reports.Save(ctx, report); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	return &report, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
