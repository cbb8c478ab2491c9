package handler

import (
	"github.com/gofiber/fiber/v2"

	"berbagi/internal/domain"
	"berbagi/internal/middleware"
	"berbagi/internal/service/trust"
)

type TrustHandler struct {
	trustService trust.Service
}

func NewTrustHandler(trustService trust.Service) *TrustHandler {
	return &TrustHandler{trustService: trustService}
}

// Recompute accepts a score from the external scorer.
func (h *TrustHandler) Recompute(c *fiber.Ctx) error {
	var input domain.RecomputeTrustInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	change, err := h.trustService.Recompute(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(change)
}
