package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/scriptgo/backend/internal/dto"
	"github.com/scriptgo/backend/internal/llm"
	"github.com/scriptgo/backend/internal/owner"
	"github.com/scriptgo/backend/internal/services"
)

type GenerateHandler struct {
	generateService *services.GenerateService
	calendarService *services.CalendarService
}

func NewGenerateHandler(generateService *services.GenerateService, calendarService *services.CalendarService) *GenerateHandler {
	return &GenerateHandler{
		generateService: generateService,
		calendarService: calendarService,
	}
}

func (h *GenerateHandler) GenerateScript(c *fiber.Ctx) error {
	userID, err := owner.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.GenerateScriptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	resp, err := h.generateService.GenerateScript(c.Context(), userID, owner.Email(c), &req)
	if err != nil {
		return generationError(c, err)
	}

	return c.JSON(resp)
}

func (h *GenerateHandler) GenerateCalendar(c *fiber.Ctx) error {
	userID, err := owner.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.GenerateCalendarRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	resp, err := h.calendarService.GenerateCalendar(c.Context(), userID, &req)
	if err != nil {
		return generationError(c, err)
	}

	return c.JSON(resp)
}

func generationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, llm.ErrMissingAPIKey):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: "AI provider is not configured",
		})
	case errors.Is(err, services.ErrUsageLimit):
		return c.Status(fiber.StatusPaymentRequired).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
}
