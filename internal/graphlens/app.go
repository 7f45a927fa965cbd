package app

import (
	"context"
	"fmt"

	"github.com/kart-io/logger"

	"github.com/kart-io/graphlens/internal/graphlens/biz"
	"github.com/kart-io/graphlens/internal/graphlens/handler"
	"github.com/kart-io/graphlens/internal/graphlens/router"
	"github.com/kart-io/graphlens/internal/graphlens/store"
	"github.com/kart-io/graphlens/pkg/app"
	"github.com/kart-io/graphlens/pkg/archive"
	"github.com/kart-io/graphlens/pkg/knowledge"
	"github.com/kart-io/graphlens/pkg/server"
)

const (
	appName        = "graphlens"
	appDescription = `GraphLens - GraphRAG comparison service

A multi-tenant service that ingests plain-text documents and answers the
same question through two independent retrieval strategies side by side:
  - Vector similarity retrieval
  - Knowledge graph traversal retrieval

This server provides:
  - Content-addressed idempotent document ingestion
  - Dual-retrieval comparison queries
  - Cascading tenant reset`
)

// NewApp creates a new application instance.
func NewApp() *app.App {
	opts := NewOptions()

	return app.NewApp(
		app.WithName(appName),
		app.WithShortDescription("GraphRAG comparison service"),
		app.WithDescription(appDescription),
		app.WithOptions(opts),
		app.WithRunFunc(func() error {
			return Run(opts)
		}),
	)
}

// Run runs the graphlens service with the given options.
func Run(opts *Options) error {
	// 1. 初始化日志
	if err := opts.Log.Init(appName); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Infow("Starting graphlens service...", "version", app.GetVersion())

	// 2. 初始化内容登记表
	registry, err := store.New(context.Background(), opts.Registry)
	if err != nil {
		return fmt.Errorf("failed to initialize registry: %w", err)
	}
	defer func() { _ = registry.Close(context.Background()) }()
	logger.Infow("Content registry initialized", "driver", opts.Registry.Driver)

	// 3. 初始化归档存储
	arch := archive.New(opts.Archive)
	logger.Infow("Archive store initialized", "root", opts.Archive.Root)

	// 4. 初始化知识工具包客户端
	ks := knowledge.New(opts.Knowledge)
	logger.Infow("Knowledge toolkit client initialized", "endpoint", opts.Knowledge.Endpoint)

	// 5. 初始化 Biz 层
	docService := biz.NewDocumentService(registry, arch, ks)
	queryService := biz.NewQueryService(ks, opts.Knowledge.TopK)
	resetService := biz.NewResetService(ks, registry)
	logger.Info("Business layer initialized")

	// 6. 初始化 Handler 层
	docHandler := handler.NewDocumentHandler(docService)
	queryHandler := handler.NewQueryHandler(queryService, resetService)
	sysHandler := handler.NewSystemHandler(registry, ks, app.GetVersion())

	// 7. 初始化服务器并注册路由
	srv := server.New(opts.HTTP)
	router.Register(srv.Engine(), opts.HTTP.MaxUploadBytes, docHandler, queryHandler, sysHandler)

	// 8. 启动服务器
	logger.Info("graphlens service is ready")
	return srv.Run()
}
