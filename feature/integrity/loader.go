package integrity

import (
	"crm-sync/core/crm"
	"crm-sync/core/storage"
	"crm-sync/feature/history"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates the integrity feature.
func NewFeature(ledger *history.Repository, archiver *storage.Archiver, crmCfg crm.Config, logger *zap.Logger) *Feature {
	return &Feature{handler: NewHandler(NewService(ledger, archiver, crmCfg, logger))}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "integrity"
}

// IsEnabled returns true if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
