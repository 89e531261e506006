package ports

import (
	"context"
	"io"

	"github.com/mtb-io/mercury-ci/internal/core/domain"
)

// BlobStore persists one serialized collection per fixed key. Load returns
// (nil, nil) for a key that has never been written.
type BlobStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
}

// ObjectStorage stores raw uploaded files.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// MessageQueue publishes/consumes file-analysis events.
type MessageQueue interface {
	PublishFileAnalysis(ctx context.Context, fileID string) error
	SubscribeFileAnalysis(ctx context.Context, handler func(context.Context, string) error) error
}

// ContentExtractor turns raw file bytes into plain text. Extraction failure
// is encoded in the returned text as an error-marker string (never an error),
// so downstream analysis can degrade instead of failing.
type ContentExtractor interface {
	Extract(ctx context.Context, filename string, data []byte) string
}

// EntityScanner extracts typed entities from free text.
type EntityScanner interface {
	Extract(text string) domain.EntityMap
}

// DocClassifier infers document type and issuer/recipient labels.
type DocClassifier interface {
	Classify(fileName, content string) domain.DocInfo
}

// TableProfiler profiles raw CSV text.
type TableProfiler interface {
	Profile(csvText string) (domain.TableProfile, error)
}

// ContentSource supplies the randomised briefing fragments. Implementations
// are seeded so tests can pin the selection.
type ContentSource interface {
	MarketCondition() string
	EconomicOutlook() string
	KPIs() []domain.KPI
}
