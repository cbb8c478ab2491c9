package handler

import (
	"github.com/gofiber/fiber/v2"

	"berbagi/internal/domain"
	"berbagi/internal/middleware"
	"berbagi/internal/service/claim"
)

type ClaimHandler struct {
	claimService claim.Service
}

func NewClaimHandler(claimService claim.Service) *ClaimHandler {
	return &ClaimHandler{claimService: claimService}
}

func (h *ClaimHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	resourceID, err := parseIDParam(c, "resourceId", "resource")
	if err != nil {
		return err
	}

	var input domain.CreateClaimInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return middleware.BadRequest("Invalid request body")
		}
	}

	created, err := h.claimService.Create(c.Context(), userID, resourceID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *ClaimHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	filter := domain.ClaimFilter{Role: domain.ClaimRole(c.Query("role"))}
	if status := c.Query("status"); status != "" {
		s := domain.ClaimStatus(status)
		filter.Status = &s
	}

	result, err := h.claimService.List(c.Context(), userID, filter, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ClaimHandler) UpdateStatus(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	claimID, err := parseIDParam(c, "claimId", "claim")
	if err != nil {
		return err
	}

	var input domain.UpdateClaimStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.claimService.UpdateStatus(c.Context(), userID, claimID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *ClaimHandler) History(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	claimID, err := parseIDParam(c, "claimId", "claim")
	if err != nil {
		return err
	}

	events, err := h.claimService.History(c.Context(), userID, claimID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": events})
}
