package handler

import (
	"github.com/gofiber/fiber/v2"

	"grantdocs/internal/service"
)

type generateReportRequest struct {
	FiscalYear string `json:"fiscalYear"`
}

// GenerateReport godoc
// @Summary Generate a fiscal year report
// @Tags reports
// @Accept json
// @Produce json
// @Param body body generateReportRequest true "Fiscal year to summarize"
// @Success 201 {object} model.Report
// @Failure 400 {object} errorPayload
// @Router /api/reports [post]
func GenerateReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body generateReportRequest
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		rep, err := svc.Generate(c.UserContext(), body.FiscalYear)
		if err != nil {
			return writeServiceError(c, err, "report not found")
		}
		return c.Status(fiber.StatusCreated).JSON(rep)
	}
}

// ListReports godoc
// @Summary List generated reports
// @Tags reports
// @Produce json
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} service.ReportListResult
// @Router /api/reports [get]
func ListReports(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, perr := pageParams(c)
		if perr != nil {
			return writeError(c, fiber.StatusBadRequest, perr.code, perr.message)
		}
		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// ListSyncLogs godoc
// @Summary List storage sync attempts, newest first
// @Tags sync-logs
// @Produce json
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} service.SyncLogListResult
// @Router /api/sync-logs [get]
func ListSyncLogs(svc service.SyncLogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, perr := pageParams(c)
		if perr != nil {
			return writeError(c, fiber.StatusBadRequest, perr.code, perr.message)
		}
		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}
