package handler

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"grantdocs/internal/service"
)

// Services bundles the use cases the HTTP layer exposes.
type Services struct {
	Files    service.FileService
	Lookups  service.LookupService
	Reports  service.ReportService
	SyncLogs service.SyncLogService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers only translate HTTP to service calls.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")

	api.Post("/upload", UploadFiles(svc.Files))

	api.Get("/fiscal-years", FiscalYears(svc.Lookups))
	api.Get("/sources", Sources(svc.Lookups))
	api.Get("/grant-types", GrantTypes(svc.Lookups))

	api.Get("/files", ListFiles(svc.Files))
	api.Get("/files/:id", GetFile(svc.Files))
	api.Delete("/files/:id", DeleteFile(svc.Files))
	api.Get("/files/:id/documents/:docId/url", DocumentURL(svc.Files))
	api.Get("/files/:id/documents/:docId/download", DownloadDocument(svc.Files))

	api.Get("/reports", ListReports(svc.Reports))
	api.Post("/reports", GenerateReport(svc.Reports))

	api.Get("/sync-logs", ListSyncLogs(svc.SyncLogs))
}

// HealthCheck godoc
// @Summary Readiness probe
// @Description Pings the database.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe answers 200 while the process is up.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

type paramError struct {
	code, message string
}

// pageParams reads limit/offset query parameters.
func pageParams(c *fiber.Ctx) (limit, offset int, perr *paramError) {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		return 0, 0, &paramError{"INVALID_LIMIT", "invalid limit"}
	}
	offset, err = strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		return 0, 0, &paramError{"INVALID_OFFSET", "invalid offset"}
	}
	return limit, offset, nil
}
