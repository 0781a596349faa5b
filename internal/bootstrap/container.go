package bootstrap

import (
	"legis-catalog-client/internal/config"
	"legis-catalog-client/internal/controller"
	"legis-catalog-client/internal/pkg/logger"
	"legis-catalog-client/internal/repository/file"
	"legis-catalog-client/internal/repository/memory"
	"legis-catalog-client/internal/service"
	"legis-catalog-client/pkg/legiscan"
	"legis-catalog-client/pkg/requestcache"
)

type Container struct {
	// Controllers
	CatalogController controller.ICatalogController
	SyncController    controller.ISyncController
	BillController    controller.IBillController

	// Exposed for shutdown flushing in main.go
	Logger logger.ILogger
}

// NewContainer wires the whole object graph. Every shared mutable piece
// (request cache, collection, mark sets) is constructed here and passed by
// reference; there are no ambient singletons.
func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	requestCache := requestcache.New(cfg.Cache.RequestTTL)
	client := legiscan.NewClient(legiscan.Config{
		BaseURL:            cfg.Upstream.BaseURL,
		InteractiveTimeout: cfg.Upstream.InteractiveTimeout,
		BulkTimeout:        cfg.Upstream.BulkTimeout,
		ReconcileTimeout:   cfg.Upstream.ReconcileTimeout,
	}, requestCache)

	// 2. Repositories
	billRepo := memory.NewBillCollectionRepository()
	sessionRepo := memory.NewSessionCatalogRepository()
	highlightRepo := memory.NewMarkSetRepository()
	reviewedRepo := memory.NewMarkSetRepository()
	prefRepo := file.NewPreferenceRepository(cfg.Prefs.FilePath)

	// 3. Services
	syncService := service.NewSyncService(
		client, billRepo, sessionRepo, reviewedRepo, sysLogger, cfg.Upstream.PerPage)
	catalogService := service.NewCatalogService(
		billRepo, sessionRepo, highlightRepo, prefRepo, sysLogger, cfg.Upstream.PerPage)
	mutationService := service.NewMutationService(
		client, billRepo, highlightRepo, reviewedRepo, sysLogger, cfg.Upstream.UserId)
	sessionService := service.NewSessionService(client, sessionRepo, sysLogger)

	// 4. Controllers
	return &Container{
		CatalogController: controller.NewCatalogController(catalogService),
		SyncController:    controller.NewSyncController(syncService, sessionService),
		BillController:    controller.NewBillController(mutationService),
		Logger:            sysLogger,
	}
}
