package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mtb-io/mercury-ci/internal/core/collection"
	"github.com/mtb-io/mercury-ci/internal/core/domain"
	"github.com/mtb-io/mercury-ci/internal/infrastructure/export"
)

type ExportResultUseCase struct {
	files *collection.Files
}

func NewExportResultUseCase(files *collection.Files) *ExportResultUseCase {
	return &ExportResultUseCase{files: files}
}

// Export renders a processed file's analysis result into a downloadable
// artefact. Files without a result cannot be exported.
func (uc *ExportResultUseCase) Export(ctx context.Context, fileID, format string) ([]byte, string, string, error) {
	file, err := uc.files.Get(ctx, fileID)
	if err != nil {
		return nil, "", "", err
	}
	if file.AnalysisResult == nil {
		return nil, "", "", domain.WrapError(
			domain.ErrInvalidInput,
			"export analysis",
			fmt.Errorf("file %s has no analysis result", fileID),
		)
	}

	data, err := export.Render(file.AnalysisResult, format)
	if err != nil {
		return nil, "", "", err
	}

	base := strings.TrimSuffix(file.Name, filepath.Ext(file.Name))
	filename := fmt.Sprintf("%s_analysis.%s", strings.ReplaceAll(base, " ", "_"), format)
	return data, export.MimeType(format), filename, nil
}
