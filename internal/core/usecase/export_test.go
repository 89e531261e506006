package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mtb-io/mercury-ci/internal/core/collection"
	"github.com/mtb-io/mercury-ci/internal/core/domain"
)

func TestExportRequiresAnalysisResult(t *testing.T) {
	files := collection.NewFiles(newMemStore())
	seedFile(t, files, domain.UploadedFile{ID: "f1", Name: "raw.txt", Status: domain.FileUploaded})
	uc := NewExportResultUseCase(files)

	_, _, _, err := uc.Export(context.Background(), "f1", "json")
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid-input error for unanalysed file, got %v", err)
	}

	_, _, _, err = uc.Export(context.Background(), "missing", "json")
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestExportRendersJSONAttachment(t *testing.T) {
	files := collection.NewFiles(newMemStore())
	seedFile(t, files, domain.UploadedFile{
		ID:     "f1",
		Name:   "q1 figures.csv",
		Status: domain.FileProcessed,
		AnalysisResult: &domain.AnalysisResult{
			DocType:     "Dataset",
			Summary:     "Analysed 120 records",
			Entities:    domain.NewEntityMap(),
			Confidence:  0.8,
			DataQuality: domain.QualityMedium,
		},
	})
	uc := NewExportResultUseCase(files)

	data, mimeType, filename, err := uc.Export(context.Background(), "f1", "json")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if mimeType != "application/json" {
		t.Fatalf("unexpected mime type %q", mimeType)
	}
	if filename != "q1_figures_analysis.json" {
		t.Fatalf("unexpected filename %q", filename)
	}

	var decoded domain.AnalysisResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("exported json must round-trip: %v", err)
	}
	if decoded.DocType != "Dataset" {
		t.Fatalf("unexpected payload: %+v", decoded)
	}

	_, _, _, err = uc.Export(context.Background(), "f1", "pptx")
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid-input error for unknown format, got %v", err)
	}
}
