package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"market-research-be/internal/dto"
	"market-research-be/internal/pkg/serverutils"
	"market-research-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// fakeResearchService scripts the pipeline outcome per test.
type fakeResearchService struct {
	generateRes *dto.GenerateReportResponse
	generateErr error
	sessionRes  *dto.GetSessionResponse
	sessionErr  error
}

func (f *fakeResearchService) CreateSession(ctx context.Context) (*dto.CreateResearchSessionResponse, error) {
	return &dto.CreateResearchSessionResponse{Id: "s-1"}, nil
}

func (f *fakeResearchService) GetSession(ctx context.Context, sessionId string) (*dto.GetSessionResponse, error) {
	return f.sessionRes, f.sessionErr
}

func (f *fakeResearchService) Generate(ctx context.Context, request *dto.GenerateReportRequest) (*dto.GenerateReportResponse, error) {
	return f.generateRes, f.generateErr
}

func (f *fakeResearchService) ListModels(ctx context.Context) []*dto.ModelOptionResponse {
	return []*dto.ModelOptionResponse{{Id: "gpt-5"}}
}

func newTestApp(svc service.IResearchService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewResearchController(svc).RegisterRoutes(api)
	return app
}

func postGenerate(t *testing.T, app *fiber.App, body map[string]string) (int, map[string]interface{}) {
	t.Helper()
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", "/api/research/v1/generate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var decoded map[string]interface{}
	json.Unmarshal(raw, &decoded)
	return resp.StatusCode, decoded
}

func TestGenerateEndpointSuccess(t *testing.T) {
	svc := &fakeResearchService{
		generateRes: &dto.GenerateReportResponse{
			SessionId: "s-1",
			Step:      "report",
			Industry:  "Electric Vehicles",
			Report:    "report text",
			Sources: []dto.SourceDTO{
				{Title: "Electric vehicle", SourceUrl: "https://en.wikipedia.org/wiki/Electric_vehicle"},
			},
		},
	}
	app := newTestApp(svc)

	status, body := postGenerate(t, app, map[string]string{
		"session_id": "s-1",
		"industry":   "Electric Vehicles",
		"api_key":    "sk-xxx",
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "report text", data["report"])
}

func TestGenerateEndpointMissingSessionId(t *testing.T) {
	app := newTestApp(&fakeResearchService{})

	status, body := postGenerate(t, app, map[string]string{
		"industry": "Electric Vehicles",
		"api_key":  "sk-xxx",
	})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
}

func TestGenerateEndpointMissingCredential(t *testing.T) {
	app := newTestApp(&fakeResearchService{generateErr: service.ErrMissingCredential})

	status, body := postGenerate(t, app, map[string]string{
		"session_id": "s-1",
		"industry":   "Quantum Computing",
	})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "API key")
	assert.Nil(t, body["severity"])
}

func TestGenerateEndpointMissingIndustryIsWarning(t *testing.T) {
	app := newTestApp(&fakeResearchService{generateErr: service.ErrMissingIndustry})

	status, body := postGenerate(t, app, map[string]string{
		"session_id": "s-1",
		"api_key":    "sk-xxx",
	})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "warning", body["severity"])
}

func TestGenerateEndpointNoResults(t *testing.T) {
	app := newTestApp(&fakeResearchService{generateErr: &service.NoResultsError{Query: "zxqjv"}})

	status, body := postGenerate(t, app, map[string]string{
		"session_id": "s-1",
		"industry":   "zxqjv",
		"api_key":    "sk-xxx",
	})

	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, body["message"], "no relevant Wikipedia pages")
}

func TestGenerateEndpointUpstreamFailure(t *testing.T) {
	app := newTestApp(&fakeResearchService{generateErr: &service.GenerationError{Err: errors.New("rate limited")}})

	status, _ := postGenerate(t, app, map[string]string{
		"session_id": "s-1",
		"industry":   "Electric Vehicles",
		"api_key":    "sk-xxx",
	})

	assert.Equal(t, fiber.StatusBadGateway, status)
}

func TestGetSessionEndpointNotFound(t *testing.T) {
	app := newTestApp(&fakeResearchService{sessionErr: service.ErrSessionNotFound})

	req := httptest.NewRequest("GET", "/api/research/v1/sessions/missing", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListModelsEndpoint(t *testing.T) {
	app := newTestApp(&fakeResearchService{})

	req := httptest.NewRequest("GET", "/api/research/v1/models", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var body map[string]interface{}
	json.Unmarshal(raw, &body)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	models := body["data"].([]interface{})
	assert.Len(t, models, 1)
}
