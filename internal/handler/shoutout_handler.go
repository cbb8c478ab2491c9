package handler

import (
	"github.com/gofiber/fiber/v2"

	"berbagi/internal/domain"
	"berbagi/internal/middleware"
	"berbagi/internal/service/shoutout"
)

type ShoutoutHandler struct {
	shoutoutService shoutout.Service
}

func NewShoutoutHandler(shoutoutService shoutout.Service) *ShoutoutHandler {
	return &ShoutoutHandler{shoutoutService: shoutoutService}
}

func (h *ShoutoutHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.CreateShoutoutInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.shoutoutService.Give(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}
