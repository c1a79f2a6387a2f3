package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/kafune/rede-guti/internal/dto"
	"github.com/kafune/rede-guti/internal/models"
	"github.com/kafune/rede-guti/internal/services"
)

type ChurchService interface {
	List() ([]models.Church, error)
	Create(name string) (*models.Church, error)
}

type ChurchHandler struct {
	churches ChurchService
}

func NewChurchHandler(churches ChurchService) *ChurchHandler {
	return &ChurchHandler{churches: churches}
}

func (h *ChurchHandler) List(c *fiber.Ctx) error {
	churches, err := h.churches.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(fiber.Map{"churches": churches})
}

func (h *ChurchHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateChurchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	church, err := h.churches.Create(req.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateName):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: "Church already exists",
			})
		case errors.Is(err, services.ErrInvalidPayload):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid payload",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"church": church})
}
