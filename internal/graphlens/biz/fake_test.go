package biz

import (
	"context"
	"sync"

	"github.com/kart-io/graphlens/pkg/knowledge"
)

// fakeKnowledge is an in-memory knowledge.Store for tests.
type fakeKnowledge struct {
	mu sync.Mutex

	indexFn        func(tenantID, docID, text string) (int, error)
	vectorSearchFn func(tenantID, query string, topK int) (*knowledge.VectorResult, error)
	graphSearchFn  func(tenantID, query string) (*knowledge.GraphResult, error)
	resetFn        func(tenantID string) error

	indexCalls []string
	resetCalls []string
}

var _ knowledge.Store = (*fakeKnowledge)(nil)

func (f *fakeKnowledge) Index(_ context.Context, tenantID, docID, text string) (int, error) {
	f.mu.Lock()
	f.indexCalls = append(f.indexCalls, tenantID)
	f.mu.Unlock()
	if f.indexFn != nil {
		return f.indexFn(tenantID, docID, text)
	}
	return 1, nil
}

func (f *fakeKnowledge) VectorSearch(_ context.Context, tenantID, query string, topK int) (*knowledge.VectorResult, error) {
	if f.vectorSearchFn != nil {
		return f.vectorSearchFn(tenantID, query, topK)
	}
	return &knowledge.VectorResult{}, nil
}

func (f *fakeKnowledge) GraphSearch(_ context.Context, tenantID, query string) (*knowledge.GraphResult, error) {
	if f.graphSearchFn != nil {
		return f.graphSearchFn(tenantID, query)
	}
	return &knowledge.GraphResult{}, nil
}

func (f *fakeKnowledge) ResetTenant(_ context.Context, tenantID string) error {
	f.mu.Lock()
	f.resetCalls = append(f.resetCalls, tenantID)
	f.mu.Unlock()
	if f.resetFn != nil {
		return f.resetFn(tenantID)
	}
	return nil
}

func (f *fakeKnowledge) Ping(_ context.Context) error { return nil }

func (f *fakeKnowledge) indexed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.indexCalls...)
}
