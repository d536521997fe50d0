package handler

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tour-microservice/internal/delivery/http/middleware"
	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/pkg/errors"
	"github.com/tour-microservice/internal/usecase/dto"
)

func newLeadApp(uc *MockLeadService) *fiber.App {
	h := NewLeadHandler(uc, zap.NewNop())

	app := fiber.New()
	app.Use(middleware.Locale())
	app.Post("/contact", h.Contact)
	app.Get("/admin/leads", h.ListLeads)
	return app
}

func TestLeadHandler_Contact(t *testing.T) {
	uc := new(MockLeadService)
	app := newLeadApp(uc)

	tourID := int64(12)
	expected := dto.ContactRequest{Name: "Ana Lopez", Email: "ana@example.com", Message: "Info sobre Cancún", TourID: &tourID}
	uc.On("Submit", mock.Anything, expected, domain.LocaleEN).
		Return(&domain.Lead{ID: 31, Name: "Ana Lopez", Email: "ana@example.com", TourID: &tourID, Locale: domain.LocaleEN}, nil)

	req := httptest.NewRequest("POST", "/contact",
		strings.NewReader(`{"nombre":"Ana Lopez","email":"ana@example.com","mensaje":"Info sobre Cancún","tour_id":12}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "en-GB,en;q=0.8")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	data := string(decode(t, resp).Data)
	assert.Contains(t, data, `"id":31`)
	assert.Contains(t, data, `"idioma":"en"`)
	uc.AssertExpectations(t)
}

func TestLeadHandler_Contact_Errors(t *testing.T) {
	uc := new(MockLeadService)
	app := newLeadApp(uc)

	t.Run("missing fields", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/contact", strings.NewReader(`{"nombre":"Ana"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)

		fields := decode(t, resp).Error.Details["fields"].(map[string]interface{})
		assert.Contains(t, fields, "ContactRequest.email")
		assert.Contains(t, fields, "ContactRequest.mensaje")
	})

	t.Run("unknown tour", func(t *testing.T) {
		uc.On("Submit", mock.Anything, mock.Anything, domain.LocaleES).Return(nil, errors.ErrValidation.WithDetails(map[string]interface{}{
			"fields": map[string]string{"tour_id": "exists"},
		})).Once()

		req := httptest.NewRequest("POST", "/contact?lang=es",
			strings.NewReader(`{"nombre":"Ana","email":"ana@example.com","mensaje":"Hola","tour_id":404}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", decode(t, resp).Error.Code)
	})
}

func TestLeadHandler_ListLeads(t *testing.T) {
	uc := new(MockLeadService)
	app := newLeadApp(uc)

	result := dto.NewListResponse([]domain.Lead{{ID: 31}, {ID: 30}}, 42, 2, 0)
	uc.On("List", mock.Anything, dto.PageRequest{Limit: 2}).Return(&result, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/leads?limit=2", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	env := decode(t, resp)
	assert.Equal(t, 42, env.Meta["total"])
	assert.Equal(t, 2, env.Meta["limit"])
}
