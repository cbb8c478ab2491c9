package handler

import (
	"github.com/gofiber/fiber/v2"

	"berbagi/internal/domain"
	"berbagi/internal/middleware"
	"berbagi/internal/service/resource"
)

type ResourceHandler struct {
	resourceService resource.Service
}

func NewResourceHandler(resourceService resource.Service) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

func (h *ResourceHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.CreateResourceInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.resourceService.Create(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *ResourceHandler) Get(c *fiber.Ctx) error {
	resourceID, err := parseIDParam(c, "resourceId", "resource")
	if err != nil {
		return err
	}

	found, err := h.resourceService.GetByID(c.Context(), resourceID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *ResourceHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	resourceID, err := parseIDParam(c, "resourceId", "resource")
	if err != nil {
		return err
	}

	var input domain.UpdateResourceInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.resourceService.Update(c.Context(), userID, resourceID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *ResourceHandler) Cancel(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	resourceID, err := parseIDParam(c, "resourceId", "resource")
	if err != nil {
		return err
	}

	cancelled, err := h.resourceService.Cancel(c.Context(), userID, resourceID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(cancelled)
}
