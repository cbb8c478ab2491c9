package handler

import (
	"github.com/gofiber/fiber/v2"

	"berbagi/internal/domain"
	"berbagi/internal/middleware"
	"berbagi/internal/service/preference"
)

type PreferenceHandler struct {
	prefService preference.Service
}

func NewPreferenceHandler(prefService preference.Service) *PreferenceHandler {
	return &PreferenceHandler{prefService: prefService}
}

func (h *PreferenceHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	pref, err := h.prefService.Get(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(pref)
}

func (h *PreferenceHandler) UpdateType(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	notifType := domain.NotificationType(c.Params("type"))
	if !notifType.IsValid() {
		return middleware.BadRequest("Unknown notification type")
	}

	var vector domain.ChannelVector
	if err := c.BodyParser(&vector); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	pref, err := h.prefService.UpdateType(c.Context(), userID, notifType, vector)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(pref)
}

func (h *PreferenceHandler) UpdateGlobal(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.UpdateGlobalPreferenceInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	pref, err := h.prefService.UpdateGlobal(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(pref)
}
