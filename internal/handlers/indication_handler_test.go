package handlers

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kafune/rede-guti/internal/dto"
	"github.com/kafune/rede-guti/internal/models"
	"github.com/kafune/rede-guti/internal/services"
)

type stubIndicationService struct {
	listFilter *dto.IndicationFilter
	list       []models.Indication
	listErr    error
	created    *models.Indication
	createErr  error
	creatorID  uuid.UUID
	deleteErr  error
}

func (s *stubIndicationService) List(filter *dto.IndicationFilter) ([]models.Indication, error) {
	s.listFilter = filter
	return s.list, s.listErr
}

func (s *stubIndicationService) Create(createdByID uuid.UUID, req *dto.CreateIndicationRequest) (*models.Indication, error) {
	s.creatorID = createdByID
	return s.created, s.createErr
}

func (s *stubIndicationService) Delete(id uuid.UUID) error { return s.deleteErr }

func newIndicationApp(svc IndicationService, userID string) *fiber.App {
	app := fiber.New()
	h := NewIndicationHandler(svc)
	auth := withClaims(userID, "ADMIN")
	app.Get("/indications", auth, h.List)
	app.Post("/indications", auth, h.Create)
	app.Delete("/indications/:id", auth, h.Delete)
	return app
}

func TestIndicationListPassesFilters(t *testing.T) {
	svc := &stubIndicationService{list: []models.Indication{{Name: "Ana"}}}
	app := newIndicationApp(svc, uuid.New().String())

	resp, err := app.Test(jsonRequest(t, http.MethodGet,
		"/indications?churchId=c1&indicatedBy=maria&q=ana&dateFrom=2026-01-01", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, svc.listFilter)
	assert.Equal(t, "c1", svc.listFilter.ChurchID)
	assert.Equal(t, "maria", svc.listFilter.IndicatedBy)
	assert.Equal(t, "ana", svc.listFilter.Query)
	assert.Equal(t, "2026-01-01", svc.listFilter.DateFrom)
}

func TestIndicationListInvalidDate(t *testing.T) {
	app := newIndicationApp(&stubIndicationService{listErr: services.ErrInvalidDate}, uuid.New().String())

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/indications?dateFrom=banana", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestIndicationCreateAttributesCreator(t *testing.T) {
	creator := uuid.New()
	svc := &stubIndicationService{created: &models.Indication{Name: "Ana"}}
	app := newIndicationApp(svc, creator.String())

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/indications", dto.CreateIndicationRequest{
		Name:           "Ana",
		Phone:          "5511988887777",
		IndicatedBy:    "Maria",
		ChurchID:       uuid.NewString(),
		MunicipalityID: uuid.NewString(),
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, creator, svc.creatorID)
}

func TestIndicationDeleteNotFound(t *testing.T) {
	app := newIndicationApp(&stubIndicationService{deleteErr: services.ErrNotFound}, uuid.New().String())

	resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/indications/"+uuid.NewString(), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIndicationDeleteInvalidID(t *testing.T) {
	app := newIndicationApp(&stubIndicationService{}, uuid.New().String())

	resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/indications/not-a-uuid", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
