// Package knowledge provides the client for the knowledge toolkit sidecar,
// which owns vector and graph indexes per tenant.
package knowledge

import "context"

// Chunk is a retrieved text fragment with its provenance and score.
type Chunk struct {
	Text   string  `json:"text"`
	Source string  `json:"source"`
	Score  float64 `json:"score"`
}

// Node is a node of the per-tenant knowledge graph.
type Node struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Link is a typed edge between two graph nodes.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// VectorResult is the outcome of a vector retrieval pass.
type VectorResult struct {
	Answer string  `json:"answer"`
	Chunks []Chunk `json:"chunks"`
}

// GraphResult is the outcome of a graph retrieval pass.
type GraphResult struct {
	Answer     string   `json:"answer"`
	Nodes      []Node   `json:"nodes"`
	Links      []Link   `json:"links"`
	Statements []string `json:"statements"`
}

// Store is the knowledge toolkit contract. Tenant identifiers passed in are
// raw; implementations normalize them with TenantHash.
type Store interface {
	// Index chunks and indexes the document text under the tenant's
	// vector and graph indexes, returning the number of chunks created.
	Index(ctx context.Context, tenantID, docID, text string) (int, error)

	// VectorSearch runs similarity retrieval and answer synthesis.
	VectorSearch(ctx context.Context, tenantID, query string, topK int) (*VectorResult, error)

	// GraphSearch runs graph traversal retrieval and answer synthesis.
	GraphSearch(ctx context.Context, tenantID, query string) (*GraphResult, error)

	// ResetTenant drops all indexed knowledge for the tenant.
	ResetTenant(ctx context.Context, tenantID string) error

	// Ping checks if the toolkit is reachable.
	Ping(ctx context.Context) error
}
