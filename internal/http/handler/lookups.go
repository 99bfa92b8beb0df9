package handler

import (
	"github.com/gofiber/fiber/v2"

	"grantdocs/internal/service"
)

// FiscalYears godoc
// @Summary List fiscal years
// @Tags lookups
// @Produce json
// @Success 200 {array} model.FiscalYear
// @Router /api/fiscal-years [get]
func FiscalYears(svc service.LookupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.FiscalYears(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(items)
	}
}

// Sources godoc
// @Summary List funding sources
// @Tags lookups
// @Produce json
// @Success 200 {array} model.Source
// @Router /api/sources [get]
func Sources(svc service.LookupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.Sources(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(items)
	}
}

// GrantTypes godoc
// @Summary List grant types
// @Tags lookups
// @Produce json
// @Success 200 {array} model.GrantType
// @Router /api/grant-types [get]
func GrantTypes(svc service.LookupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.GrantTypes(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(items)
	}
}
