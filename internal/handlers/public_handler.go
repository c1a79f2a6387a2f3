package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/kafune/rede-guti/internal/dto"
	"github.com/kafune/rede-guti/internal/models"
	"github.com/kafune/rede-guti/internal/services"
)

type PublicService interface {
	Options() (*dto.PublicOptionsResponse, error)
	SignUp(req *dto.PublicSignupRequest) (*models.Indication, error)
}

type PublicHandler struct {
	public PublicService
}

func NewPublicHandler(public PublicService) *PublicHandler {
	return &PublicHandler{public: public}
}

func (h *PublicHandler) Options(c *fiber.Ctx) error {
	options, err := h.public.Options()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(options)
}

func (h *PublicHandler) SignUp(c *fiber.Ctx) error {
	var req dto.PublicSignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	indication, err := h.public.SignUp(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPayload):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid payload",
			})
		case errors.Is(err, services.ErrNoAdmin):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: "Nenhum administrador disponivel.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"indication": indication})
}
