// Package pool 提供基于 ants 的 goroutine 池封装。
package pool

import (
	"fmt"
	"sync"
	"time"

	"github.com/kart-io/logger"
	"github.com/panjf2000/ants/v2"
)

// Config defines the worker pool configuration.
type Config struct {
	// Capacity 池容量（最大并发 goroutine 数）
	Capacity int
	// ExpiryDuration goroutine 空闲过期时间
	ExpiryDuration time.Duration
	// Nonblocking 提交任务是否非阻塞（若池满则返回错误）
	Nonblocking bool
}

// BackgroundConfig returns the configuration for background tasks such as
// deferred registry cleanup.
func BackgroundConfig() *Config {
	return &Config{
		Capacity:       50,
		ExpiryDuration: 60 * time.Second,
		Nonblocking:    true,
	}
}

// Pool wraps an ants pool with panic logging.
type Pool struct {
	inner *ants.Pool
}

// New creates a worker pool from the config.
func New(cfg *Config) (*Pool, error) {
	if cfg == nil {
		cfg = BackgroundConfig()
	}

	inner, err := ants.NewPool(cfg.Capacity,
		ants.WithExpiryDuration(cfg.ExpiryDuration),
		ants.WithNonblocking(cfg.Nonblocking),
		ants.WithPanicHandler(func(r interface{}) {
			logger.Errorw("worker pool task panic", "panic", r)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	return &Pool{inner: inner}, nil
}

// Submit schedules a task. When the pool is saturated the task falls back to
// a plain goroutine so background work is never dropped.
func (p *Pool) Submit(task func()) {
	if err := p.inner.Submit(task); err != nil {
		logger.Warnw("worker pool saturated, running task in goroutine", "error", err.Error())
		go task()
	}
}

// Running returns the number of running workers.
func (p *Pool) Running() int {
	return p.inner.Running()
}

// Release stops the pool.
func (p *Pool) Release() {
	p.inner.Release()
}

var (
	background     *Pool
	backgroundOnce sync.Once
)

// Background returns the shared background pool.
func Background() *Pool {
	backgroundOnce.Do(func() {
		var err error
		background, err = New(BackgroundConfig())
		if err != nil {
			// ants only errors on invalid capacity; the defaults are valid.
			panic(err)
		}
	})
	return background
}
