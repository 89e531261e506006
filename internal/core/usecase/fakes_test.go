package usecase

import (
	"bytes"
	"context"
	"io"

	"github.com/mtb-io/mercury-ci/internal/core/domain"
)

type memStore struct {
	blobs   map[string][]byte
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{blobs: map[string][]byte{}}
}

func (s *memStore) Load(_ context.Context, key string) ([]byte, error) {
	return s.blobs[key], nil
}

func (s *memStore) Save(_ context.Context, key string, payload []byte) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.blobs[key] = payload
	return nil
}

type storageFake struct {
	saved map[string][]byte
	err   error
}

func newStorageFake() *storageFake {
	return &storageFake{saved: map[string][]byte{}}
}

func (f *storageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.err != nil {
		return f.err
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.saved[key] = raw
	return nil
}

func (f *storageFake) Open(_ context.Context, key string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.saved[key])), nil
}

func (f *storageFake) Delete(_ context.Context, key string) error {
	delete(f.saved, key)
	return nil
}

type extractorFake struct {
	text string
}

func (f *extractorFake) Extract(_ context.Context, _ string, _ []byte) string {
	return f.text
}

type queueFake struct {
	published []string
	err       error
}

func (f *queueFake) PublishFileAnalysis(_ context.Context, fileID string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, fileID)
	return nil
}

func (f *queueFake) SubscribeFileAnalysis(context.Context, func(context.Context, string) error) error {
	return nil
}

type scannerFake struct {
	entities domain.EntityMap
}

func (f *scannerFake) Extract(string) domain.EntityMap {
	if f.entities == nil {
		return domain.NewEntityMap()
	}
	return f.entities
}

type classifierFake struct {
	info domain.DocInfo
}

func (f *classifierFake) Classify(string, string) domain.DocInfo {
	if f.info.DocType == "" {
		return domain.DocInfo{DocType: "Document"}
	}
	return f.info
}

type profilerFake struct {
	profile domain.TableProfile
	err     error
}

func (f *profilerFake) Profile(string) (domain.TableProfile, error) {
	if f.err != nil {
		return domain.TableProfile{}, f.err
	}
	return f.profile, nil
}

type contentFake struct{}

func (contentFake) MarketCondition() string { return "steady conditions" }
func (contentFake) EconomicOutlook() string { return "a stable outlook" }
func (contentFake) KPIs() []domain.KPI {
	return []domain.KPI{
		{Metric: "Market Sentiment", Value: "72/100", Change: "+3%", Trend: "up"},
	}
}
