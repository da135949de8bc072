package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"crm-sync/core/config"
	"crm-sync/core/crm"
	"crm-sync/core/database"
	"crm-sync/core/logger"
	"crm-sync/core/metrics"
	"crm-sync/core/reconcile"
	"crm-sync/core/resolver"
	"crm-sync/core/storage"
	"crm-sync/feature/history"
	syncrun "crm-sync/feature/sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// runtime is what every command needs after configuration is loaded.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
}

func loadRuntime() (*runtime, error) {
	cfg, err := config.Load(configDir, configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return &runtime{cfg: cfg, logger: l}, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// openLedger connects to the ledger database and migrates or verifies it.
func (r *runtime) openLedger(ctx context.Context) (*history.Repository, error) {
	db, err := database.Connect(r.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	repo := history.NewRepository(db)
	if err := repo.Migrate(ctx, r.cfg.Database.AutoMigrate); err != nil {
		return nil, fmt.Errorf("failed to prepare ledger: %w", err)
	}
	return repo, nil
}

// openArchiver returns nil when archiving is disabled.
func (r *runtime) openArchiver(ctx context.Context) (*storage.Archiver, error) {
	if !r.cfg.Storage.Enabled {
		return nil, nil
	}
	client, err := storage.NewClient(r.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}
	a := storage.NewArchiver(client, r.cfg.Storage)
	if err := a.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// wiring is the sync service with the optional collaborators it was given.
type wiring struct {
	service  *syncrun.Service
	ledger   *history.Repository
	archiver *storage.Archiver
}

// newService wires the CRM client, resolver, engine and optional collaborators.
// A ledger or archive that cannot be opened is logged and skipped.
func (r *runtime) newService(ctx context.Context, reg prometheus.Registerer) (*wiring, error) {
	m := metrics.NewCollector(reg)

	client, err := crm.NewClient(r.cfg.CRM, crm.WithMetrics(m), crm.WithLogger(r.logger))
	if err != nil {
		return nil, err
	}
	engine := reconcile.NewEngine(client, resolver.New(client, r.cfg.CRM, r.logger), r.cfg.Sync, r.logger, m)

	w := &wiring{}
	opts := []syncrun.Option{syncrun.WithMetrics(m)}

	if repo, err := r.openLedger(ctx); err != nil {
		r.logger.Warn("Run ledger unavailable, runs will not be recorded", zap.Error(err))
	} else {
		w.ledger = repo
		opts = append(opts, syncrun.WithLedger(repo))
	}

	if archiver, err := r.openArchiver(ctx); err != nil {
		r.logger.Warn("Run archive unavailable, inputs will not be archived", zap.Error(err))
	} else if archiver != nil {
		w.archiver = archiver
		opts = append(opts, syncrun.WithArchiver(archiver))
	}

	w.service = syncrun.NewService(engine, r.cfg.Sync, r.logger, opts...)
	return w, nil
}
