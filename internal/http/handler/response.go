package handler

import (
	"github.com/gofiber/fiber/v2"

	"pressroom/internal/service"
)

type envelope struct {
	Success bool  `json:"success"`
	Data    any   `json:"data"`
	Meta    *meta `json:"meta,omitempty"`
}

type meta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

func ok(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(envelope{Success: true, Data: data})
}

// okList renders one page with its totals in meta.
func okList[T any](c *fiber.Ctx, res *service.ListResult[T]) error {
	return c.Status(fiber.StatusOK).JSON(envelope{
		Success: true,
		Data:    res.Items,
		Meta:    &meta{Total: res.Total, Page: res.Page, Limit: res.Limit, Pages: res.Pages},
	})
}

func deleted(c *fiber.Ctx, id string) error {
	return ok(c, fiber.Map{"id": id, "deleted": true})
}
