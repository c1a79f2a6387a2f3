package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kafune/rede-guti/internal/claims"
	"github.com/kafune/rede-guti/internal/dto"
	"github.com/kafune/rede-guti/internal/models"
	"github.com/kafune/rede-guti/internal/services"
)

type IndicationService interface {
	List(filter *dto.IndicationFilter) ([]models.Indication, error)
	Create(createdByID uuid.UUID, req *dto.CreateIndicationRequest) (*models.Indication, error)
	Delete(id uuid.UUID) error
}

type IndicationHandler struct {
	indications IndicationService
}

func NewIndicationHandler(indications IndicationService) *IndicationHandler {
	return &IndicationHandler{indications: indications}
}

func (h *IndicationHandler) List(c *fiber.Ctx) error {
	filter := dto.IndicationFilter{
		ChurchID:       c.Query("churchId"),
		MunicipalityID: c.Query("municipalityId"),
		IndicatedBy:    c.Query("indicatedBy"),
		Query:          c.Query("q"),
		DateFrom:       c.Query("dateFrom"),
		DateTo:         c.Query("dateTo"),
	}

	indications, err := h.indications.List(&filter)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDate) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid date range",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(fiber.Map{"indications": indications})
}

func (h *IndicationHandler) Create(c *fiber.Ctx) error {
	userID, err := claims.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateIndicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	indication, err := h.indications.Create(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPayload) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid payload",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"indication": indication})
}

func (h *IndicationHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid id",
		})
	}

	if err := h.indications.Delete(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Record not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
