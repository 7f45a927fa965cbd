package biz

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/graphlens/internal/model"
	"github.com/kart-io/graphlens/pkg/errors"
	"github.com/kart-io/graphlens/pkg/knowledge"
)

func TestQueryBothBranches(t *testing.T) {
	ks := &fakeKnowledge{
		vectorSearchFn: func(_, _ string, topK int) (*knowledge.VectorResult, error) {
			assert.Equal(t, 5, topK)
			return &knowledge.VectorResult{
				Answer: "vector answer",
				Chunks: []knowledge.Chunk{{Text: "chunk", Source: "a.txt", Score: 0.9}},
			}, nil
		},
		graphSearchFn: func(_, _ string) (*knowledge.GraphResult, error) {
			return &knowledge.GraphResult{
				Answer:     "graph answer",
				Nodes:      []knowledge.Node{{ID: "n1", Name: "Topic", Type: model.NodeTypeTopic}},
				Links:      []knowledge.Link{{Source: "n1", Target: "n2", Type: "HAS_STATEMENT"}},
				Statements: []string{"s1"},
			}, nil
		},
	}
	svc := NewQueryService(ks, 5)

	res, err := svc.Query(context.Background(), "tenant-a", "what happened")
	require.NoError(t, err)

	assert.Equal(t, "vector answer", res.VectorResponse)
	assert.Equal(t, "graph answer", res.GraphResponse)
	assert.False(t, res.VectorDegraded)
	assert.False(t, res.GraphDegraded)
	require.Len(t, res.VectorChunks, 1)
	require.Len(t, res.GraphNodes, 1)
	require.Len(t, res.GraphLinks, 1)
	assert.Equal(t, []string{"s1"}, res.GraphStatements)
}

func TestQueryRunsBranchesInParallel(t *testing.T) {
	const branchDelay = 150 * time.Millisecond
	ks := &fakeKnowledge{
		vectorSearchFn: func(_, _ string, _ int) (*knowledge.VectorResult, error) {
			time.Sleep(branchDelay)
			return &knowledge.VectorResult{}, nil
		},
		graphSearchFn: func(_, _ string) (*knowledge.GraphResult, error) {
			time.Sleep(branchDelay)
			return &knowledge.GraphResult{}, nil
		},
	}
	svc := NewQueryService(ks, 5)

	start := time.Now()
	_, err := svc.Query(context.Background(), "tenant-a", "q")
	require.NoError(t, err)

	// Sequential execution would take at least twice the branch delay.
	assert.Less(t, time.Since(start), 2*branchDelay)
}

func TestQueryVectorDegraded(t *testing.T) {
	ks := &fakeKnowledge{
		vectorSearchFn: func(_, _ string, _ int) (*knowledge.VectorResult, error) {
			return nil, fmt.Errorf("vector store down")
		},
		graphSearchFn: func(_, _ string) (*knowledge.GraphResult, error) {
			return &knowledge.GraphResult{Answer: "still here"}, nil
		},
	}
	svc := NewQueryService(ks, 5)

	res, err := svc.Query(context.Background(), "tenant-a", "q")
	require.NoError(t, err)

	assert.True(t, res.VectorDegraded)
	assert.Equal(t, vectorDegradedAnswer, res.VectorResponse)
	assert.NotNil(t, res.VectorChunks)
	assert.False(t, res.GraphDegraded)
	assert.Equal(t, "still here", res.GraphResponse)
}

func TestQueryGraphDegraded(t *testing.T) {
	ks := &fakeKnowledge{
		graphSearchFn: func(_, _ string) (*knowledge.GraphResult, error) {
			return nil, fmt.Errorf("graph store down")
		},
	}
	svc := NewQueryService(ks, 5)

	res, err := svc.Query(context.Background(), "tenant-a", "q")
	require.NoError(t, err)

	assert.True(t, res.GraphDegraded)
	assert.Equal(t, graphDegradedAnswer, res.GraphResponse)
	assert.NotNil(t, res.GraphNodes)
	assert.NotNil(t, res.GraphLinks)
	assert.NotNil(t, res.GraphStatements)
}

func TestQueryBothBranchesFailed(t *testing.T) {
	ks := &fakeKnowledge{
		vectorSearchFn: func(_, _ string, _ int) (*knowledge.VectorResult, error) {
			return nil, fmt.Errorf("vector down")
		},
		graphSearchFn: func(_, _ string) (*knowledge.GraphResult, error) {
			return nil, fmt.Errorf("graph down")
		},
	}
	svc := NewQueryService(ks, 5)

	_, err := svc.Query(context.Background(), "tenant-a", "q")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrRetrievalFailed.Code))
}

func TestQueryValidation(t *testing.T) {
	svc := NewQueryService(&fakeKnowledge{}, 5)
	ctx := context.Background()

	_, err := svc.Query(ctx, "", "q")
	assert.True(t, errors.IsCode(err, errors.ErrEmptyTenant.Code))

	_, err = svc.Query(ctx, "tenant-a", "  ")
	assert.True(t, errors.IsCode(err, errors.ErrInvalidParam.Code))
}

func TestQueryTruncation(t *testing.T) {
	longText := strings.Repeat("字", 600)
	longName := strings.Repeat("n", 200)
	ks := &fakeKnowledge{
		vectorSearchFn: func(_, _ string, _ int) (*knowledge.VectorResult, error) {
			return &knowledge.VectorResult{
				Chunks: []knowledge.Chunk{{Text: longText, Source: "a.txt", Score: 1}},
			}, nil
		},
		graphSearchFn: func(_, _ string) (*knowledge.GraphResult, error) {
			return &knowledge.GraphResult{
				Nodes: []knowledge.Node{{ID: "n1", Name: longName, Type: model.NodeTypeEntity}},
			}, nil
		},
	}
	svc := NewQueryService(ks, 5)

	res, err := svc.Query(context.Background(), "tenant-a", "q")
	require.NoError(t, err)

	require.Len(t, res.VectorChunks, 1)
	assert.Len(t, []rune(res.VectorChunks[0].Text), maxChunkRunes)
	// CharCount reports the untruncated length.
	assert.Equal(t, 600, res.VectorChunks[0].CharCount)

	require.Len(t, res.GraphNodes, 1)
	assert.Len(t, []rune(res.GraphNodes[0].Name), maxNodeNameRunes)
}

func TestQueryTimings(t *testing.T) {
	ks := &fakeKnowledge{
		vectorSearchFn: func(_, _ string, _ int) (*knowledge.VectorResult, error) {
			time.Sleep(30 * time.Millisecond)
			return &knowledge.VectorResult{}, nil
		},
	}
	svc := NewQueryService(ks, 5)

	res, err := svc.Query(context.Background(), "tenant-a", "q")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.VectorTimeMs, float64(30))
	assert.GreaterOrEqual(t, res.GraphTimeMs, float64(0))
}
