package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/mtb-io/mercury-ci/internal/core/collection"
	"github.com/mtb-io/mercury-ci/internal/core/domain"
)

func seedFile(t *testing.T, files *collection.Files, file domain.UploadedFile) {
	t.Helper()
	if _, err := files.Save(context.Background(), file); err != nil {
		t.Fatalf("seed file: %v", err)
	}
}

func TestAnalyzeCSVConfidenceBoundaries(t *testing.T) {
	cases := []struct {
		rows           int
		wantConfidence float64
	}{
		{10, 0.6},
		{11, 0.8},
		{50, 0.8},
		{51, 0.9},
	}

	for _, tc := range cases {
		files := collection.NewFiles(newMemStore())
		profiler := &profilerFake{profile: domain.TableProfile{
			Headers:  []string{"price", "qty"},
			RowCount: tc.rows,
			Domain:   "financial",
		}}
		uc := NewAnalyzeFileUseCase(files, &scannerFake{}, &classifierFake{}, profiler)
		seedFile(t, files, domain.UploadedFile{ID: "f1", Name: "sales.csv", Status: domain.FileUploaded, Data: "price,qty\n1,2"})

		file, err := uc.AnalyzeByID(context.Background(), "f1")
		if err != nil {
			t.Fatalf("rows=%d: analyze: %v", tc.rows, err)
		}
		if file.AnalysisResult == nil {
			t.Fatalf("rows=%d: expected a result", tc.rows)
		}
		if got := file.AnalysisResult.Confidence; got != tc.wantConfidence {
			t.Fatalf("rows=%d: confidence = %v, want %v", tc.rows, got, tc.wantConfidence)
		}
	}
}

func TestAnalyzeCSVQualityBoundaries(t *testing.T) {
	cases := []struct {
		rows int
		want domain.DataQuality
	}{
		{100, domain.QualityLow},
		{101, domain.QualityMedium},
		{1000, domain.QualityMedium},
		{1001, domain.QualityHigh},
	}

	for _, tc := range cases {
		if got := qualityForRows(tc.rows); got != tc.want {
			t.Fatalf("rows=%d: quality = %s, want %s", tc.rows, got, tc.want)
		}
	}
}

func TestAnalyzeByIDPersistsLifecycle(t *testing.T) {
	files := collection.NewFiles(newMemStore())
	profiler := &profilerFake{profile: domain.TableProfile{
		Headers:  []string{"price"},
		RowCount: 200,
		Domain:   "financial",
	}}
	uc := NewAnalyzeFileUseCase(files, &scannerFake{}, &classifierFake{}, profiler)
	seedFile(t, files, domain.UploadedFile{ID: "f1", Name: "data.csv", Status: domain.FileUploaded, Data: "price\n1"})

	file, err := uc.AnalyzeByID(context.Background(), "f1")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if file.Status != domain.FileProcessed {
		t.Fatalf("expected processed, got %s", file.Status)
	}
	if file.Insights != len(file.AnalysisResult.KeyFindings) {
		t.Fatalf("insights %d must equal findings %d", file.Insights, len(file.AnalysisResult.KeyFindings))
	}

	stored, err := files.Get(context.Background(), "f1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Status != domain.FileProcessed || stored.AnalysisResult == nil {
		t.Fatalf("terminal state not persisted: %+v", stored)
	}
}

func TestAnalyzeByIDRejectsTerminalStates(t *testing.T) {
	for _, status := range []domain.FileStatus{domain.FileProcessed, domain.FileError, domain.FileAnalysing} {
		files := collection.NewFiles(newMemStore())
		uc := NewAnalyzeFileUseCase(files, &scannerFake{}, &classifierFake{}, &profilerFake{})
		seedFile(t, files, domain.UploadedFile{ID: "f1", Name: "a.csv", Status: status})

		_, err := uc.AnalyzeByID(context.Background(), "f1")
		if !domain.IsKind(err, domain.ErrInvalidInput) {
			t.Fatalf("status=%s: expected invalid-input error, got %v", status, err)
		}
	}
}

func TestAnalyzeByIDUnknownFile(t *testing.T) {
	files := collection.NewFiles(newMemStore())
	uc := NewAnalyzeFileUseCase(files, &scannerFake{}, &classifierFake{}, &profilerFake{})

	_, err := uc.AnalyzeByID(context.Background(), "missing")
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestAnalyzeFailureIsTerminalNotError(t *testing.T) {
	files := collection.NewFiles(newMemStore())
	profiler := &profilerFake{err: fmt.Errorf("ragged rows")}
	uc := NewAnalyzeFileUseCase(files, &scannerFake{}, &classifierFake{}, profiler)
	seedFile(t, files, domain.UploadedFile{ID: "f1", Name: "bad.csv", Status: domain.FileUploaded, Data: "broken"})

	file, err := uc.AnalyzeByID(context.Background(), "f1")
	if err != nil {
		t.Fatalf("analysis failure must not surface as an error: %v", err)
	}
	if file.Status != domain.FileError {
		t.Fatalf("expected error status, got %s", file.Status)
	}
	if file.AnalysisResult != nil || file.Insights != 0 {
		t.Fatalf("error state must carry no result, got %+v", file)
	}

	// terminal: a second attempt is rejected
	if _, err := uc.AnalyzeByID(context.Background(), "f1"); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected terminal error state to block re-analysis, got %v", err)
	}
}

func TestErrorMarkerDegradesToFilenameInference(t *testing.T) {
	markers := []string{
		"[PDF file: scan.pdf] Error extracting content: encrypted",
		"something went wrong: Error extracting content: bad zip",
	}
	for _, marker := range markers {
		files := collection.NewFiles(newMemStore())
		uc := NewAnalyzeFileUseCase(files, &scannerFake{}, &classifierFake{info: domain.DocInfo{DocType: "Invoice"}}, &profilerFake{})
		seedFile(t, files, domain.UploadedFile{ID: "f1", Name: "invoice_scan.pdf", Status: domain.FileUploaded, Data: marker})

		file, err := uc.AnalyzeByID(context.Background(), "f1")
		if err != nil {
			t.Fatalf("analyze: %v", err)
		}
		if file.Status != domain.FileProcessed {
			t.Fatalf("degraded inference still counts as processed, got %s", file.Status)
		}
		result := file.AnalysisResult
		if result.Confidence != 0.3 {
			t.Fatalf("expected confidence 0.3, got %v", result.Confidence)
		}
		if result.DataQuality != domain.QualityLow {
			t.Fatalf("expected low quality, got %s", result.DataQuality)
		}
		if result.ProcessedRows != 0 {
			t.Fatalf("expected 0 processed rows, got %d", result.ProcessedRows)
		}
		if result.Entities.Total() != 0 {
			t.Fatalf("expected no entities on the degraded path")
		}
		if len(result.KeyFindings) == 0 || len(result.Recommendations) == 0 {
			t.Fatalf("findings and recommendations must never be empty")
		}
	}
}

func TestAnalyzeTextWordThresholds(t *testing.T) {
	cases := []struct {
		words          int
		wantConfidence float64
		wantQuality    domain.DataQuality
	}{
		{50, 0.6, domain.QualityLow},
		{101, 0.8, domain.QualityMedium},
		{1001, 0.9, domain.QualityHigh},
	}

	for _, tc := range cases {
		files := collection.NewFiles(newMemStore())
		uc := NewAnalyzeFileUseCase(files, &scannerFake{}, &classifierFake{}, &profilerFake{})
		content := strings.TrimSpace(strings.Repeat("word ", tc.words))
		seedFile(t, files, domain.UploadedFile{ID: "f1", Name: "notes.txt", Status: domain.FileUploaded, Data: content})

		file, err := uc.AnalyzeByID(context.Background(), "f1")
		if err != nil {
			t.Fatalf("words=%d: analyze: %v", tc.words, err)
		}
		result := file.AnalysisResult
		if result.Confidence != tc.wantConfidence || result.DataQuality != tc.wantQuality {
			t.Fatalf("words=%d: got %v/%s, want %v/%s",
				tc.words, result.Confidence, result.DataQuality, tc.wantConfidence, tc.wantQuality)
		}
		if result.Stats.WordCount != tc.words {
			t.Fatalf("words=%d: counted %d", tc.words, result.Stats.WordCount)
		}
	}
}

func TestAnalyzeDocumentEntityRichness(t *testing.T) {
	rich := domain.NewEntityMap()
	for i := 0; i < 11; i++ {
		rich.Add(domain.KindEmail, fmt.Sprintf("user%d@example.com", i))
	}

	files := collection.NewFiles(newMemStore())
	uc := NewAnalyzeFileUseCase(files, &scannerFake{entities: rich}, &classifierFake{info: domain.DocInfo{DocType: "Contract"}}, &profilerFake{})
	seedFile(t, files, domain.UploadedFile{ID: "f1", Name: "deal.docx", Status: domain.FileUploaded, Data: "contract body text"})

	file, err := uc.AnalyzeByID(context.Background(), "f1")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	result := file.AnalysisResult
	if result.Confidence != 0.9 || result.DataQuality != domain.QualityHigh {
		t.Fatalf("11 entities should give 0.9/High, got %v/%s", result.Confidence, result.DataQuality)
	}
	var hasLegalReview bool
	for _, rec := range result.Recommendations {
		if strings.Contains(rec, "legal review") {
			hasLegalReview = true
		}
	}
	if !hasLegalReview {
		t.Fatalf("contract should recommend legal review, got %v", result.Recommendations)
	}
}

func TestAnalyzeCSVDataTool(t *testing.T) {
	profiler := &profilerFake{profile: domain.TableProfile{
		Headers:      []string{"revenue"},
		RowCount:     500,
		Domain:       "financial",
		NumericStats: map[string]domain.NumericStats{"revenue": {Min: 1, Max: 9, Mean: 5, Count: 500}},
	}}
	uc := NewAnalyzeFileUseCase(collection.NewFiles(newMemStore()), &scannerFake{}, &classifierFake{}, profiler)

	result, err := uc.AnalyzeCSVData("revenue\n1\n9")
	if err != nil {
		t.Fatalf("analyze csv data: %v", err)
	}
	if result.DocType != "Dataset" {
		t.Fatalf("expected Dataset, got %s", result.DocType)
	}
	if result.ProcessedRows != 500 {
		t.Fatalf("expected 500 processed rows, got %d", result.ProcessedRows)
	}
	if !strings.Contains(result.Summary, "financial domain") {
		t.Fatalf("summary should mention the domain, got %q", result.Summary)
	}
}
