package biz

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/kart-io/logger"

	"github.com/kart-io/graphlens/internal/graphlens/metrics"
	"github.com/kart-io/graphlens/internal/model"
	"github.com/kart-io/graphlens/pkg/errors"
	"github.com/kart-io/graphlens/pkg/knowledge"
)

const (
	// maxChunkRunes caps chunk text returned to clients; CharCount keeps
	// the original length.
	maxChunkRunes = 500

	// maxNodeNameRunes caps graph node display names.
	maxNodeNameRunes = 80

	// Sentinel answers surfaced when one branch degrades.
	vectorDegradedAnswer = "Vector retrieval is temporarily unavailable."
	graphDegradedAnswer  = "Graph retrieval is temporarily unavailable."
)

// QueryService orchestrates the dual retrieval comparison.
type QueryService struct {
	knowledge knowledge.Store
	metrics   *metrics.Metrics
	topK      int
}

// NewQueryService creates a new QueryService. topK bounds vector retrieval.
func NewQueryService(ks knowledge.Store, topK int) *QueryService {
	return &QueryService{
		knowledge: ks,
		metrics:   metrics.Get(),
		topK:      topK,
	}
}

// Query runs the vector and graph branches in parallel and assembles the
// side-by-side result. Branches are independent: neither cancels the other,
// and a single failure degrades its half instead of failing the query.
func (s *QueryService) Query(ctx context.Context, tenantID, query string) (*model.QueryResult, error) {
	if strings.TrimSpace(tenantID) == "" {
		return nil, errors.ErrEmptyTenant
	}
	if strings.TrimSpace(query) == "" {
		return nil, errors.ErrInvalidParam.WithMessage("query is required")
	}

	start := time.Now()

	var (
		wg sync.WaitGroup

		vectorRes  *knowledge.VectorResult
		vectorErr  error
		vectorTime time.Duration

		graphRes  *knowledge.GraphResult
		graphErr  error
		graphTime time.Duration
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		t := time.Now()
		vectorRes, vectorErr = s.knowledge.VectorSearch(ctx, tenantID, query, s.topK)
		vectorTime = time.Since(t)
	}()
	go func() {
		defer wg.Done()
		t := time.Now()
		graphRes, graphErr = s.knowledge.GraphSearch(ctx, tenantID, query)
		graphTime = time.Since(t)
	}()
	wg.Wait()

	if vectorErr != nil && graphErr != nil {
		logger.Errorw("both retrieval branches failed",
			"tenant", tenantID,
			"vector_error", vectorErr.Error(),
			"graph_error", graphErr.Error(),
		)
		return nil, errors.ErrRetrievalFailed.WithCause(graphErr)
	}

	result := &model.QueryResult{
		VectorTimeMs: float64(vectorTime.Microseconds()) / 1000.0,
		GraphTimeMs:  float64(graphTime.Microseconds()) / 1000.0,
	}

	if vectorErr != nil {
		logger.Warnw("vector branch degraded",
			"tenant", tenantID,
			"error", vectorErr.Error(),
		)
		result.VectorDegraded = true
		result.VectorResponse = vectorDegradedAnswer
		result.VectorChunks = []model.Chunk{}
	} else {
		result.VectorResponse = vectorRes.Answer
		result.VectorChunks = convertChunks(vectorRes.Chunks)
	}

	if graphErr != nil {
		logger.Warnw("graph branch degraded",
			"tenant", tenantID,
			"error", graphErr.Error(),
		)
		result.GraphDegraded = true
		result.GraphResponse = graphDegradedAnswer
		result.GraphNodes = []model.GraphNode{}
		result.GraphLinks = []model.GraphEdge{}
		result.GraphStatements = []string{}
	} else {
		result.GraphResponse = graphRes.Answer
		result.GraphNodes = convertNodes(graphRes.Nodes)
		result.GraphLinks = convertLinks(graphRes.Links)
		result.GraphStatements = graphRes.Statements
		if result.GraphStatements == nil {
			result.GraphStatements = []string{}
		}
	}

	s.metrics.RecordQuery(time.Since(start), vectorTime, graphTime, vectorErr != nil, graphErr != nil)

	return result, nil
}

func convertChunks(chunks []knowledge.Chunk) []model.Chunk {
	out := make([]model.Chunk, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, model.Chunk{
			Text:      truncateRunes(c.Text, maxChunkRunes),
			Source:    c.Source,
			Score:     float32(c.Score),
			CharCount: len([]rune(c.Text)),
		})
	}
	return out
}

func convertNodes(nodes []knowledge.Node) []model.GraphNode {
	out := make([]model.GraphNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, model.GraphNode{
			ID:   n.ID,
			Name: truncateRunes(n.Name, maxNodeNameRunes),
			Type: n.Type,
		})
	}
	return out
}

func convertLinks(links []knowledge.Link) []model.GraphEdge {
	out := make([]model.GraphEdge, 0, len(links))
	for _, l := range links {
		out = append(out, model.GraphEdge{
			Source: l.Source,
			Target: l.Target,
			Type:   l.Type,
		})
	}
	return out
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
