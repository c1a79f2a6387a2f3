package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/kafune/rede-guti/internal/dto"
	"github.com/kafune/rede-guti/internal/models"
	"github.com/kafune/rede-guti/internal/services"
)

type MunicipalityService interface {
	List() ([]models.Municipality, error)
	Create(name, stateCode string) (*models.Municipality, error)
}

type MunicipalityHandler struct {
	municipalities MunicipalityService
}

func NewMunicipalityHandler(municipalities MunicipalityService) *MunicipalityHandler {
	return &MunicipalityHandler{municipalities: municipalities}
}

func (h *MunicipalityHandler) List(c *fiber.Ctx) error {
	municipalities, err := h.municipalities.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(fiber.Map{"municipalities": municipalities})
}

func (h *MunicipalityHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateMunicipalityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	municipality, err := h.municipalities.Create(req.Name, req.StateCode)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateName):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: "Municipality already exists",
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

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"municipality": municipality})
}
