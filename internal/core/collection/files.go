package collection

import (
	"context"
	"fmt"

	"github.com/mtb-io/mercury-ci/internal/core/domain"
	"github.com/mtb-io/mercury-ci/internal/core/ports"
)

const (
	filesKey = "data-files"

	maxFiles = 10
)

// Files is the capped uploaded-file collection. Overflow is dropped
// oldest-first, not archived.
type Files struct {
	store ports.BlobStore
}

func NewFiles(store ports.BlobStore) *Files {
	return &Files{store: store}
}

func (c *Files) Load(ctx context.Context) ([]domain.UploadedFile, error) {
	raw, err := c.store.Load(ctx, filesKey)
	if err != nil {
		return nil, fmt.Errorf("load files: %w", err)
	}
	return decodeList[domain.UploadedFile](raw), nil
}

func (c *Files) Get(ctx context.Context, id string) (*domain.UploadedFile, error) {
	items, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, domain.WrapError(domain.ErrNotFound, "get file", fmt.Errorf("file %s", id))
}

// Save prepends item and returns the records dropped by the cap so callers
// can release their stored payloads.
func (c *Files) Save(ctx context.Context, item domain.UploadedFile) ([]domain.UploadedFile, error) {
	items, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	items = append([]domain.UploadedFile{item}, items...)
	var dropped []domain.UploadedFile
	if len(items) > maxFiles {
		dropped = items[maxFiles:]
		items = items[:maxFiles]
	}
	if err := c.save(ctx, items); err != nil {
		return nil, err
	}
	return dropped, nil
}

// Update replaces the stored record with the same ID in place, preserving
// collection order.
func (c *Files) Update(ctx context.Context, item domain.UploadedFile) error {
	items, err := c.Load(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
			return c.save(ctx, items)
		}
	}
	return domain.WrapError(domain.ErrNotFound, "update file", fmt.Errorf("file %s", item.ID))
}

// Delete removes the record with the given ID and returns it so callers can
// release its stored payload.
func (c *Files) Delete(ctx context.Context, id string) (*domain.UploadedFile, error) {
	items, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	kept := items[:0]
	var removed *domain.UploadedFile
	for _, item := range items {
		if item.ID == id {
			found := item
			removed = &found
			continue
		}
		kept = append(kept, item)
	}
	if removed == nil {
		return nil, domain.WrapError(domain.ErrNotFound, "delete file", fmt.Errorf("file %s", id))
	}
	if err := c.save(ctx, kept); err != nil {
		return nil, err
	}
	return removed, nil
}

func (c *Files) save(ctx context.Context, items []domain.UploadedFile) error {
	payload, err := encodeList(items)
	if err != nil {
		return fmt.Errorf("encode files: %w", err)
	}
	if err := c.store.Save(ctx, filesKey, payload); err != nil {
		return fmt.Errorf("save files: %w", err)
	}
	return nil
}
