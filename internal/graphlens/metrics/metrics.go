// Package metrics 提供 graphlens 服务的业务指标收集。
package metrics

import (
	"sync"
	"time"

	obs "github.com/kart-io/graphlens/pkg/observability/metrics"
)

// Metrics holds the service business metrics.
type Metrics struct {
	// 摄取指标
	ingestsIndexed obs.Counter // 新索引的文档数
	ingestsDedup   obs.Counter // 指纹命中、未重新索引的文档数
	ingestsFailed  obs.Counter // 索引失败的文档数
	chunksCreated  obs.Counter // 累计创建的分块数

	// 查询指标
	queriesTotal    obs.Counter
	vectorFailures  obs.Counter // 向量分支失败（降级）次数
	graphFailures   obs.Counter // 图谱分支失败（降级）次数
	queryDuration   obs.Histogram
	vectorDuration  obs.Histogram
	graphDuration   obs.Histogram

	// 重置指标
	resetsTotal   obs.Counter
	resetsPartial obs.Counter // 登记表清理延迟完成的次数

	startTime time.Time
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Get returns the process-wide metrics instance.
func Get() *Metrics {
	once.Do(func() {
		defaultMetrics = newMetrics()
	})
	return defaultMetrics
}

func newMetrics() *Metrics {
	m := &Metrics{
		ingestsIndexed: obs.NewCounter("graphlens_ingests_indexed_total", "Documents indexed for the first time."),
		ingestsDedup:   obs.NewCounter("graphlens_ingests_dedup_total", "Uploads satisfied by an existing fingerprint."),
		ingestsFailed:  obs.NewCounter("graphlens_ingests_failed_total", "Uploads whose indexing failed."),
		chunksCreated:  obs.NewCounter("graphlens_chunks_created_total", "Chunks created by indexing."),

		queriesTotal:   obs.NewCounter("graphlens_queries_total", "Comparison queries served."),
		vectorFailures: obs.NewCounter("graphlens_query_vector_failures_total", "Vector branch failures."),
		graphFailures:  obs.NewCounter("graphlens_query_graph_failures_total", "Graph branch failures."),
		queryDuration:  obs.NewHistogram("graphlens_query_duration_seconds", "End-to-end comparison query latency.", nil),
		vectorDuration: obs.NewHistogram("graphlens_query_vector_duration_seconds", "Vector branch latency.", nil),
		graphDuration:  obs.NewHistogram("graphlens_query_graph_duration_seconds", "Graph branch latency.", nil),

		resetsTotal:   obs.NewCounter("graphlens_resets_total", "Tenant resets performed."),
		resetsPartial: obs.NewCounter("graphlens_resets_partial_total", "Resets that finished registry cleanup in the background."),

		startTime: time.Now(),
	}

	obs.Register(m.ingestsIndexed)
	obs.Register(m.ingestsDedup)
	obs.Register(m.ingestsFailed)
	obs.Register(m.chunksCreated)
	obs.Register(m.queriesTotal)
	obs.Register(m.vectorFailures)
	obs.Register(m.graphFailures)
	obs.Register(m.queryDuration)
	obs.Register(m.vectorDuration)
	obs.Register(m.graphDuration)
	obs.Register(m.resetsTotal)
	obs.Register(m.resetsPartial)

	return m
}

// RecordIngestIndexed records a first-time indexing with its chunk count.
func (m *Metrics) RecordIngestIndexed(chunks int) {
	m.ingestsIndexed.Inc()
	if chunks > 0 {
		m.chunksCreated.Add(uint64(chunks))
	}
}

// RecordIngestDedup records a fingerprint hit.
func (m *Metrics) RecordIngestDedup() {
	m.ingestsDedup.Inc()
}

// RecordIngestFailed records a failed indexing.
func (m *Metrics) RecordIngestFailed() {
	m.ingestsFailed.Inc()
}

// RecordQuery records a served comparison query and its branch outcomes.
func (m *Metrics) RecordQuery(total, vector, graph time.Duration, vectorFailed, graphFailed bool) {
	m.queriesTotal.Inc()
	m.queryDuration.Observe(total.Seconds())
	m.vectorDuration.Observe(vector.Seconds())
	m.graphDuration.Observe(graph.Seconds())
	if vectorFailed {
		m.vectorFailures.Inc()
	}
	if graphFailed {
		m.graphFailures.Inc()
	}
}

// RecordReset records a tenant reset; partial marks deferred registry cleanup.
func (m *Metrics) RecordReset(partial bool) {
	m.resetsTotal.Inc()
	if partial {
		m.resetsPartial.Inc()
	}
}

// Stats returns a snapshot for the stats endpoint.
func (m *Metrics) Stats() map[string]any {
	return map[string]any{
		"uptime_seconds": int64(time.Since(m.startTime).Seconds()),
		"ingests": map[string]any{
			"indexed": m.ingestsIndexed.Get(),
			"dedup":   m.ingestsDedup.Get(),
			"failed":  m.ingestsFailed.Get(),
			"chunks":  m.chunksCreated.Get(),
		},
		"queries": map[string]any{
			"total":           m.queriesTotal.Get(),
			"vector_failures": m.vectorFailures.Get(),
			"graph_failures":  m.graphFailures.Get(),
		},
		"resets": map[string]any{
			"total":   m.resetsTotal.Get(),
			"partial": m.resetsPartial.Get(),
		},
	}
}
