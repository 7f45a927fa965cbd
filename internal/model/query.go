package model

// Graph node types produced by the knowledge store. The orchestrator passes
// them through without interpreting their internal structure.
const (
	NodeTypeSource    = "source"
	NodeTypeTopic     = "topic"
	NodeTypeStatement = "statement"
	NodeTypeFact      = "fact"
	NodeTypeEntity    = "entity"
)

// Chunk is a unit of vector-retrieved evidence.
type Chunk struct {
	Text      string  `json:"text"`
	Source    string  `json:"source"`
	Score     float32 `json:"score"`
	CharCount int     `json:"charCount"`
}

// GraphNode is a node of the retrieved knowledge subgraph, shaped for
// client-side rendering.
type GraphNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// GraphEdge links two graph nodes.
type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// QueryResult is the combined outcome of one dual-retrieval query.
// It is request-scoped: built per call, never cached.
//
// A degraded flag means that branch failed and its fields hold the
// empty-result sentinel rather than a retrieval outcome.
type QueryResult struct {
	VectorResponse string  `json:"vector_response"`
	VectorChunks   []Chunk `json:"vector_chunks"`
	VectorTimeMs   float64 `json:"vector_time_ms"`
	VectorDegraded bool    `json:"vector_degraded"`

	GraphResponse   string      `json:"graphrag_response"`
	GraphNodes      []GraphNode `json:"graphrag_graph_nodes"`
	GraphLinks      []GraphEdge `json:"graphrag_graph_links"`
	GraphStatements []string    `json:"graphrag_statements"`
	GraphTimeMs     float64     `json:"graphrag_time_ms"`
	GraphDegraded   bool        `json:"graphrag_degraded"`
}
