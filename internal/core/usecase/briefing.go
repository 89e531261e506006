package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mtb-io/mercury-ci/internal/core/collection"
	"github.com/mtb-io/mercury-ci/internal/core/domain"
	"github.com/mtb-io/mercury-ci/internal/core/ports"
)

var defaultSources = []string{"news", "market", "social", "economic"}

type GenerateBriefingUseCase struct {
	briefings *collection.Briefings
	content   ports.ContentSource
}

func NewGenerateBriefingUseCase(briefings *collection.Briefings, content ports.ContentSource) *GenerateBriefingUseCase {
	return &GenerateBriefingUseCase{briefings: briefings, content: content}
}

func (uc *GenerateBriefingUseCase) Generate(ctx context.Context, req domain.BriefingRequest) (*domain.Briefing, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "parse briefing date", err)
	}

	// Source-specific focus areas, developments and insights come from the
	// raw request; an absent source list falls back to the generic texts.
	// Only the stored source list and the Data Sources line are defaulted.
	incorporated := req.Sources
	if len(incorporated) == 0 {
		incorporated = defaultSources
	}
	company := req.Company
	if company == "" {
		company = "your organisation"
	}

	formattedDate := date.Format("2 January 2006")
	briefing := domain.Briefing{
		ID:          uuid.NewString(),
		Date:        req.Date,
		Company:     req.Company,
		Sources:     incorporated,
		KPIs:        uc.content.KPIs(),
		Insights:    briefingInsights(req.Sources),
		GeneratedAt: time.Now().UTC(),
		Title:       fmt.Sprintf("Daily Intelligence Briefing - %s", formattedDate),
	}
	briefing.Body = uc.briefingBody(date, formattedDate, company, req.Sources, incorporated)

	if err := uc.briefings.Save(ctx, briefing); err != nil {
		return nil, fmt.Errorf("save briefing: %w", err)
	}
	return &briefing, nil
}

func (uc *GenerateBriefingUseCase) briefingBody(date time.Time, formattedDate, company string, requested, incorporated []string) string {
	return fmt.Sprintf(`# Daily Intelligence Briefing - %s

## Executive Summary
Good %s! Here's your comprehensive intelligence briefing for %s covering the latest market developments, key metrics, and strategic insights for %s.

## Market Overview
Today's market conditions show %s with key economic indicators suggesting %s. The focus areas include %s.

## Key Developments
%s

## Risk Assessment
%s

## Strategic Recommendations
%s

## Data Sources
This briefing incorporates data from: %s`,
		formattedDate,
		date.Weekday(),
		company,
		formattedDate,
		uc.content.MarketCondition(),
		uc.content.EconomicOutlook(),
		focusAreas(requested),
		keyDevelopments(requested),
		riskAssessment(),
		strategicRecommendations(),
		strings.Join(incorporated, ", "),
	)
}

func focusAreas(sources []string) string {
	var areas []string
	if hasSource(sources, "news") {
		areas = append(areas, "regulatory updates")
	}
	if hasSource(sources, "market") {
		areas = append(areas, "market performance")
	}
	if hasSource(sources, "social") {
		areas = append(areas, "sentiment analysis")
	}
	if hasSource(sources, "economic") {
		areas = append(areas, "economic indicators")
	}
	if len(areas) == 0 {
		return "market performance and economic indicators"
	}
	return strings.Join(areas, ", ")
}

func keyDevelopments(sources []string) string {
	var developments []string
	if hasSource(sources, "news") {
		developments = append(developments, "- **Regulatory Updates**: New compliance requirements affecting digital businesses")
	}
	if hasSource(sources, "market") {
		developments = append(developments, "- **Market Performance**: Technology sector showing strong momentum with AI investments")
	}
	if hasSource(sources, "social") {
		developments = append(developments, "- **Social Sentiment**: Positive sentiment trends in key customer segments")
	}
	if hasSource(sources, "economic") {
		developments = append(developments, "- **Economic Indicators**: Employment figures stable with inflation within target ranges")
	}
	if len(developments) == 0 {
		developments = []string{
			"- **Technology Sector**: AI and cloud computing stocks showing significant gains",
			"- **Energy Markets**: Renewable energy investments continuing to grow",
			"- **Global Trade**: Supply chain improvements across major manufacturing sectors",
		}
	}
	return strings.Join(developments, "\n")
}

func riskAssessment() string {
	return strings.Join([]string{
		"- **Medium Risk**: Potential interest rate adjustments in the coming quarter",
		"- **Low Risk**: Stable employment figures across key markets",
		"- **High Risk**: Geopolitical tensions affecting certain trade routes",
	}, "\n")
}

func strategicRecommendations() string {
	return strings.Join([]string{
		"1. Consider increasing exposure to technology and renewable energy sectors",
		"2. Review data compliance procedures in light of new regulations",
		"3. Monitor supply chain resilience for critical business operations",
		"4. Evaluate hedging strategies for currency fluctuations",
		"5. Assess opportunities in emerging market segments",
	}, "\n")
}

func briefingInsights(sources []string) []string {
	insights := []string{
		"Technology sector showing strong momentum with AI investments driving growth",
		"Renewable energy sector continues to attract significant capital inflows",
		"Supply chain resilience improving across major manufacturing sectors",
		"Data protection regulations creating new compliance requirements for digital businesses",
	}
	if hasSource(sources, "news") {
		insights = append(insights, "News sentiment analysis indicates positive market outlook")
	}
	if hasSource(sources, "social") {
		insights = append(insights, "Social media sentiment trending positive for key industry sectors")
	}
	if hasSource(sources, "economic") {
		insights = append(insights, "Economic indicators suggest continued growth momentum")
	}
	if len(insights) > 4 {
		insights = insights[:4]
	}
	return insights
}

func hasSource(sources []string, name string) bool {
	for _, s := range sources {
		if s == name {
			return true
		}
	}
	return false
}
