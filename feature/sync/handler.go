package sync

import (
	"errors"

	"crm-sync/core/logger"
	"crm-sync/core/reconcile"
	"crm-sync/feature/ingest"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Handler triggers runs over HTTP.
type Handler struct {
	service *Service
	running *semaphore.Weighted
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler. At most one run executes at a time.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, running: semaphore.NewWeighted(1), logger: logger}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/sync/:kind", h.HandleSync)
}

// HandleSync runs the uploaded export through the pass named by :kind.
// The multipart field "file" carries the CSV; ?dry_run=true only plans.
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	kind := c.Params("kind")
	if _, err := reconcile.ParseKind(kind); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "multipart field 'file' is required"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	defer f.Close()

	src, err := ingest.Read(f, fh.Filename)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	if !h.running.TryAcquire(1) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "a run is already in progress"})
	}
	defer h.running.Release(1)

	res, err := h.service.Run(c.UserContext(), Request{
		Kind:      kind,
		Source:    src,
		DryRun:    c.QueryBool("dry_run"),
		Confirmed: true,
	})
	switch {
	case errors.Is(err, reconcile.ErrConfiguration):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error(), "run_id": res.RunID})
	case err != nil:
		l.Error("Sync run failed", zap.String("run_id", res.RunID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error(), "run_id": res.RunID})
	}
	return c.JSON(res)
}
