package collection

import (
	"context"
	"fmt"
	"time"

	"github.com/mtb-io/mercury-ci/internal/core/domain"
	"github.com/mtb-io/mercury-ci/internal/core/ports"
)

const (
	briefingsKey        = "briefings"
	briefingsArchiveKey = "briefings-archive"

	maxActiveBriefings = 20
	archiveRetention   = 30 * 24 * time.Hour
)

// Briefings is the capped briefing collection with an archival overflow
// policy: items evicted from the active window move to the archive, and the
// archive is pruned to 30 days on every load.
type Briefings struct {
	store ports.BlobStore
	now   func() time.Time
}

func NewBriefings(store ports.BlobStore) *Briefings {
	return &Briefings{store: store, now: time.Now}
}

func (c *Briefings) Load(ctx context.Context) ([]domain.Briefing, error) {
	raw, err := c.store.Load(ctx, briefingsKey)
	if err != nil {
		return nil, fmt.Errorf("load briefings: %w", err)
	}
	return decodeList[domain.Briefing](raw), nil
}

// Save prepends item and moves any overflow beyond the most-recent 20 into
// the archive with ArchivedAt set.
func (c *Briefings) Save(ctx context.Context, item domain.Briefing) error {
	active, err := c.Load(ctx)
	if err != nil {
		return err
	}

	active = append([]domain.Briefing{item}, active...)

	var evicted []domain.Briefing
	if len(active) > maxActiveBriefings {
		evicted = active[maxActiveBriefings:]
		active = active[:maxActiveBriefings]
	}

	if len(evicted) > 0 {
		if err := c.archive(ctx, evicted); err != nil {
			return err
		}
	}

	return c.save(ctx, briefingsKey, active)
}

func (c *Briefings) Delete(ctx context.Context, id string) error {
	active, err := c.Load(ctx)
	if err != nil {
		return err
	}
	kept := active[:0]
	found := false
	for _, item := range active {
		if item.ID == id {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return domain.WrapError(domain.ErrNotFound, "delete briefing", fmt.Errorf("briefing %s", id))
	}
	return c.save(ctx, briefingsKey, kept)
}

// LoadArchive returns archived briefings, dropping and resaving past the
// 30-day retention window as a side effect of the load path.
func (c *Briefings) LoadArchive(ctx context.Context) ([]domain.Briefing, error) {
	raw, err := c.store.Load(ctx, briefingsArchiveKey)
	if err != nil {
		return nil, fmt.Errorf("load briefing archive: %w", err)
	}
	archived := decodeList[domain.Briefing](raw)

	cutoff := c.now().Add(-archiveRetention)
	kept := archived[:0]
	for _, item := range archived {
		ref := item.GeneratedAt
		if item.ArchivedAt != nil {
			ref = *item.ArchivedAt
		}
		if ref.Before(cutoff) {
			continue
		}
		kept = append(kept, item)
	}

	if len(kept) != len(archived) {
		if err := c.save(ctx, briefingsArchiveKey, kept); err != nil {
			return nil, err
		}
	}
	return kept, nil
}

func (c *Briefings) archive(ctx context.Context, evicted []domain.Briefing) error {
	archived, err := c.LoadArchive(ctx)
	if err != nil {
		return err
	}
	archivedAt := c.now().UTC()
	stamped := make([]domain.Briefing, 0, len(evicted))
	for _, item := range evicted {
		ts := archivedAt
		item.ArchivedAt = &ts
		stamped = append(stamped, item)
	}
	return c.save(ctx, briefingsArchiveKey, append(stamped, archived...))
}

func (c *Briefings) save(ctx context.Context, key string, items []domain.Briefing) error {
	payload, err := encodeList(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.store.Save(ctx, key, payload); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
