package handler

import (
	"github.com/gofiber/fiber/v2"

	"berbagi/internal/middleware"
	"berbagi/internal/service/membership"
)

type MembershipHandler struct {
	membershipService membership.Service
}

func NewMembershipHandler(membershipService membership.Service) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService}
}

func (h *MembershipHandler) Join(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	communityID, err := parseIDParam(c, "communityId", "community")
	if err != nil {
		return err
	}

	changed, err := h.membershipService.Join(c.Context(), userID, communityID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"member": true, "changed": changed})
}

func (h *MembershipHandler) Leave(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	communityID, err := parseIDParam(c, "communityId", "community")
	if err != nil {
		return err
	}

	changed, err := h.membershipService.Leave(c.Context(), userID, communityID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"member": false, "changed": changed})
}
