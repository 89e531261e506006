package collection

import (
	"context"
	"fmt"

	"github.com/mtb-io/mercury-ci/internal/core/domain"
	"github.com/mtb-io/mercury-ci/internal/core/ports"
)

const (
	reportsKey = "reports"

	maxReports = 10
)

// Reports is the capped report collection. Overflow is dropped, not archived.
type Reports struct {
	store ports.BlobStore
}

func NewReports(store ports.BlobStore) *Reports {
	return &Reports{store: store}
}

func (c *Reports) Load(ctx context.Context) ([]domain.Report, error) {
	raw, err := c.store.Load(ctx, reportsKey)
	if err != nil {
		return nil, fmt.Errorf("load reports: %w", err)
	}
	return decodeList[domain.Report](raw), nil
}

func (c *Reports) Save(ctx context.Context, item domain.Report) error {
	items, err := c.Load(ctx)
	if err != nil {
		return err
	}
	items = append([]domain.Report{item}, items...)
	if len(items) > maxReports {
		items = items[:maxReports]
	}
	return c.save(ctx, items)
}

func (c *Reports) Delete(ctx context.Context, id string) error {
	items, err := c.Load(ctx)
	if err != nil {
		return err
	}
	kept := items[:0]
	found := false
	for _, item := range items {
		if item.ID == id {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return domain.WrapError(domain.ErrNotFound, "delete report", fmt.Errorf("report %s", id))
	}
	return c.save(ctx, kept)
}

func (c *Reports) save(ctx context.Context, items []domain.Report) error {
	payload, err := encodeList(items)
	if err != nil {
		return fmt.Errorf("encode reports: %w", err)
	}
	if err := c.store.Save(ctx, reportsKey, payload); err != nil {
		return fmt.Errorf("save reports: %w", err)
	}
	return nil
}
