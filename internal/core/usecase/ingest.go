package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mtb-io/mercury-ci/internal/core/collection"
	"github.com/mtb-io/mercury-ci/internal/core/domain"
	"github.com/mtb-io/mercury-ci/internal/core/ports"
)

// supportedExtensions is the upload allow-list. Anything else is rejected
// with a typed validation error instead of the silent drop the product
// originally shipped with.
var supportedExtensions = map[string]bool{
	".csv":  true,
	".txt":  true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

type IngestFileUseCase struct {
	files     *collection.Files
	storage   ports.ObjectStorage
	extractor ports.ContentExtractor
	queue     ports.MessageQueue
}

func NewIngestFileUseCase(
	files *collection.Files,
	storage ports.ObjectStorage,
	extractor ports.ContentExtractor,
	queue ports.MessageQueue,
) *IngestFileUseCase {
	return &IngestFileUseCase{
		files:     files,
		storage:   storage,
		extractor: extractor,
		queue:     queue,
	}
}

func (uc *IngestFileUseCase) Upload(
	ctx context.Context,
	filename string,
	body io.Reader,
) (*domain.UploadedFile, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !supportedExtensions[ext] {
		return nil, domain.WrapError(domain.ErrUnsupported, "validate upload", fmt.Errorf("extension %q", ext))
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read upload body: %w", err)
	}

	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(filename))

	if err := uc.storage.Save(ctx, storageKey, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}

	file := domain.UploadedFile{
		ID:         id,
		Name:       filename,
		Size:       domain.FormatFileSize(int64(len(raw))),
		Status:     domain.FileUploaded,
		Data:       uc.extractor.Extract(ctx, filename, raw),
		StorageKey: storageKey,
		UploadedAt: time.Now().UTC(),
	}

	dropped, err := uc.files.Save(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("save file record: %w", err)
	}
	uc.releasePayloads(ctx, dropped)

	if err := uc.queue.PublishFileAnalysis(ctx, file.ID); err != nil {
		return nil, fmt.Errorf("publish analysis event: %w", err)
	}

	return &file, nil
}

// Delete removes the file record and its stored payload.
func (uc *IngestFileUseCase) Delete(ctx context.Context, id string) error {
	removed, err := uc.files.Delete(ctx, id)
	if err != nil {
		return err
	}
	uc.releasePayloads(ctx, []domain.UploadedFile{*removed})
	return nil
}

// Download streams the originally uploaded payload.
func (uc *IngestFileUseCase) Download(ctx context.Context, id string) (io.ReadCloser, *domain.UploadedFile, error) {
	file, err := uc.files.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if file.StorageKey == "" {
		return nil, nil, domain.WrapError(domain.ErrNotFound, "download file", fmt.Errorf("no stored payload for %s", id))
	}
	rc, err := uc.storage.Open(ctx, file.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("open stored payload: %w", err)
	}
	return rc, file, nil
}

// releasePayloads removes stored payloads for records that left the
// collection. Removal failures are logged, not surfaced: the records are
// already gone.
func (uc *IngestFileUseCase) releasePayloads(ctx context.Context, files []domain.UploadedFile) {
	for _, f := range files {
		if f.StorageKey == "" {
			continue
		}
		if err := uc.storage.Delete(ctx, f.StorageKey); err != nil {
			slog.Warn("storage_payload_delete_failed", "file_id", f.ID, "key", f.StorageKey, "error", err)
		}
	}
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "upload.bin"
	}
	return base
}
