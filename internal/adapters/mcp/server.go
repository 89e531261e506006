// Package mcp exposes the briefing, analysis and report operations as tools
// over the Model Context Protocol so external agent runtimes can drive them.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mtb-io/mercury-ci/internal/core/domain"
	"github.com/mtb-io/mercury-ci/internal/core/ports"
)

type Server struct {
	inner *server.MCPServer

	briefingUC ports.BriefingGenerator
	analyzeUC  ports.FileAnalyzer
	reportUC   ports.ReportGenerator
}

func NewServer(
	briefingUC ports.BriefingGenerator,
	analyzeUC ports.FileAnalyzer,
	reportUC ports.ReportGenerator,
) *Server {
	s := &Server{
		inner: server.NewMCPServer(
			"Mercury CI Server",
			"1.0.0",
			server.WithToolCapabilities(false),
		),
		briefingUC: briefingUC,
		analyzeUC:  analyzeUC,
		reportUC:   reportUC,
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.inner.AddTool(
		mcp.NewTool("generate-briefing",
			mcp.WithDescription("Generate a daily business intelligence briefing for a given date."),
			mcp.WithString("date", mcp.Required(), mcp.Description("Briefing date in YYYY-MM-DD format")),
			mcp.WithString("company", mcp.Description("Company name to tailor the briefing to")),
			mcp.WithArray("sources",
				mcp.Description("Data sources to include: news, market, social, economic"),
				mcp.Items(map[string]any{"type": "string"}),
			),
		),
		s.generateBriefing,
	)

	s.inner.AddTool(
		mcp.NewTool("analyse-data",
			mcp.WithDescription("Profile raw CSV data: column types, numeric statistics, business domain and data quality."),
			mcp.WithString("csv", mcp.Required(), mcp.Description("Raw CSV text including a header row")),
		),
		s.analyseData,
	)

	s.inner.AddTool(
		mcp.NewTool("generate-report",
			mcp.WithDescription("Generate a structured business intelligence report."),
			mcp.WithString("reportType", mcp.Required(), mcp.Description("Report type, e.g. market, competitor, quarterly")),
			mcp.WithArray("sections",
				mcp.Description("Section titles to include; a default set is used when omitted"),
				mcp.Items(map[string]any{"type": "string"}),
			),
		),
		s.generateReport,
	)
}

func (s *Server) generateBriefing(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	date, _ := args["date"].(string)
	if date == "" {
		return mcp.NewToolResultError("date is required"), nil
	}
	company, _ := args["company"].(string)

	briefing, err := s.briefingUC.Generate(ctx, domain.BriefingRequest{
		Date:    date,
		Company: company,
		Sources: stringSlice(args["sources"]),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("generate briefing: %v", err)), nil
	}
	return mcp.NewToolResultText(briefing.Body), nil
}

func (s *Server) analyseData(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	csvText, _ := req.GetArguments()["csv"].(string)
	if csvText == "" {
		return mcp.NewToolResultError("csv is required"), nil
	}

	result, err := s.analyzeUC.AnalyzeCSVData(csvText)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analyse data: %v", err)), nil
	}
	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode analysis result: %w", err)
	}
	return mcp.NewToolResultText(string(payload)), nil
}

func (s *Server) generateReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	reportType, _ := args["reportType"].(string)
	if reportType == "" {
		return mcp.NewToolResultError("reportType is required"), nil
	}

	report, err := s.reportUC.Generate(ctx, reportType, stringSlice(args["sections"]))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("generate report: %v", err)), nil
	}
	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return mcp.NewToolResultText(string(payload)), nil
}

// ServeStdio blocks serving the protocol on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.inner)
}

func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if str, ok := item.(string); ok {
			out = append(out, str)
		}
	}
	return out
}
