// Package id provides ULID-based identifier generation.
//
// ULID 特性:
//   - 时间可排序 (毫秒精度)
//   - 词典序友好 (适合数据库索引)
//   - 26 字符长度
package id

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator produces lexicographically sortable unique IDs.
type Generator struct {
	entropy io.Reader
	mu      sync.Mutex
}

// NewGenerator creates a ULID generator backed by a monotonic crypto/rand
// entropy source, so IDs created within the same millisecond stay ordered.
func NewGenerator() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Generate returns a new ULID string.
func (g *Generator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}

var defaultGenerator = NewGenerator()

// New returns a new ULID string from the package-level generator.
func New() string {
	return defaultGenerator.Generate()
}
