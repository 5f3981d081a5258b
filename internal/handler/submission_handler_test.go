package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/submission-gateway/internal/config"
	"github.com/noah-isme/submission-gateway/internal/dto"
	"github.com/noah-isme/submission-gateway/internal/handler"
	"github.com/noah-isme/submission-gateway/internal/middleware"
	"github.com/noah-isme/submission-gateway/internal/models"
	"github.com/noah-isme/submission-gateway/internal/repository"
	"github.com/noah-isme/submission-gateway/internal/router"
	"github.com/noah-isme/submission-gateway/internal/service"
)

const submissionsPath = "/api/submissions"

const sampleBody = `{"id":"s1","fullName":"Jane Doe","className":"5A","school":"X","province":"Y","score":10,"riskLevel":0,"riskLevelName":"NONE","timestamp":1700000000}`

func setupSubmissionDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.StudentSubmission{}))

	return db
}

func newGatewayApp(t *testing.T, svc service.SubmissionService) *fiber.App {
	t.Helper()

	logger := zerolog.New(io.Discard)
	cfg := config.Config{AppName: "Test", SubmissionsPath: submissionsPath}
	app := fiber.New(router.AppConfig(cfg))
	middleware.Register(app, middleware.Config{Logger: &logger, MetricsPath: router.MetricsPath})
	router.Register(app, cfg, router.Dependencies{
		SubmissionHandler: handler.NewSubmissionHandler(svc, logger),
	})

	return app
}

func setupSubmissionApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := setupSubmissionDB(t)
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := service.NewSubmissionService(repository.NewSubmissionRepository(db), validate, nil, zerolog.Nop())

	return newGatewayApp(t, svc), db
}

func doRequest(t *testing.T, app *fiber.App, method, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, submissionsPath, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, payload
}

func requireCORS(t *testing.T, resp *http.Response) {
	t.Helper()
	require.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	require.Equal(t, "GET, POST, OPTIONS", resp.Header.Get(fiber.HeaderAccessControlAllowMethods))
	require.Equal(t, "Content-Type", resp.Header.Get(fiber.HeaderAccessControlAllowHeaders))
}

func decodeMessage(t *testing.T, body []byte) dto.MessageResponse {
	t.Helper()
	var message dto.MessageResponse
	require.NoError(t, json.Unmarshal(body, &message))
	return message
}

func TestSubmissionHandlerOptionsIsEmpty200(t *testing.T) {
	app, _ := setupSubmissionApp(t)

	for _, body := range []string{"", sampleBody, "not json"} {
		resp, payload := doRequest(t, app, fiber.MethodOptions, body)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.Empty(t, payload)
		requireCORS(t, resp)
	}
}

func TestSubmissionHandlerRejectsOtherMethods(t *testing.T) {
	app, _ := setupSubmissionApp(t)

	methods := []string{fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete, fiber.MethodTrace, fiber.MethodConnect}
	methods = append(methods, router.ExtensionMethods...)

	for _, method := range methods {
		resp, payload := doRequest(t, app, method, "")
		require.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode, method)
		require.Equal(t, "GET, POST, OPTIONS", resp.Header.Get(fiber.HeaderAllow), method)
		require.Contains(t, string(payload), method)
		require.True(t, strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMETextPlain))
		requireCORS(t, resp)
	}
}

func TestSubmissionHandlerRejectsHead(t *testing.T) {
	app, _ := setupSubmissionApp(t)

	resp, payload := doRequest(t, app, fiber.MethodHead, "")
	require.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode)
	require.Equal(t, "GET, POST, OPTIONS", resp.Header.Get(fiber.HeaderAllow))
	require.Empty(t, payload)
	requireCORS(t, resp)
}

func TestAppConfigRoutesExtensionMethods(t *testing.T) {
	methods := router.RequestMethods()
	for _, method := range fiber.DefaultMethods {
		require.Contains(t, methods, method)
	}
	require.Contains(t, methods, "PURGE")
	require.Contains(t, methods, "PROPFIND")
	require.Len(t, methods, len(fiber.DefaultMethods)+len(router.ExtensionMethods))
}

func TestSubmissionHandlerListEmptyStore(t *testing.T) {
	app, _ := setupSubmissionApp(t)

	resp, payload := doRequest(t, app, fiber.MethodGet, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.JSONEq(t, `[]`, string(payload))
	requireCORS(t, resp)
}

func TestSubmissionHandlerPostInvalid(t *testing.T) {
	app, db := setupSubmissionApp(t)

	bodies := map[string]string{
		"empty object":   `{}`,
		"missing name":   `{"id":"s1"}`,
		"missing id":     `{"fullName":"Jane Doe"}`,
		"blank id":       `{"id":"","fullName":"Jane Doe"}`,
		"null body":      `null`,
		"no body":        ``,
		"malformed json": `{"id":`,
		"array":          `[]`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			resp, payload := doRequest(t, app, fiber.MethodPost, body)
			require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			require.Equal(t, dto.MessageResponse{Message: "Invalid submission data."}, decodeMessage(t, payload))
			requireCORS(t, resp)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.StudentSubmission{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestSubmissionHandlerPostThenList(t *testing.T) {
	app, _ := setupSubmissionApp(t)

	resp, payload := doRequest(t, app, fiber.MethodPost, sampleBody)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, dto.MessageResponse{Message: "Data saved successfully."}, decodeMessage(t, payload))
	requireCORS(t, resp)

	resp, payload = doRequest(t, app, fiber.MethodGet, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var items []dto.SubmissionResponse
	require.NoError(t, json.Unmarshal(payload, &items))
	require.Len(t, items, 1)

	var expected dto.SubmissionResponse
	require.NoError(t, json.Unmarshal([]byte(sampleBody), &expected))
	require.Equal(t, expected, items[0])
	require.Equal(t, "s1", items[0].ID)
}

func TestSubmissionHandlerRoundTrip(t *testing.T) {
	app, _ := setupSubmissionApp(t)

	inputs := []dto.SubmissionRequest{
		{ID: "a", FullName: "Ani", ClassName: "4C", School: "SD 2", Province: "Bali", Score: 99.5, RiskLevel: models.RiskLevelSafe, RiskLevelName: "SAFE", Timestamp: 1700000000001},
		{ID: "b", FullName: "Budi", Score: -3, RiskLevel: models.RiskLevelMediumRisk, RiskLevelName: "MEDIUM_RISK"},
		{ID: "c", FullName: "Cici", RiskLevel: models.RiskLevelHighRisk, RiskLevelName: "HIGH_RISK", Timestamp: 1},
	}

	for _, input := range inputs {
		body, err := json.Marshal(input)
		require.NoError(t, err)
		resp, _ := doRequest(t, app, fiber.MethodPost, string(body))
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	_, payload := doRequest(t, app, fiber.MethodGet, "")
	var items []dto.SubmissionRequest
	require.NoError(t, json.Unmarshal(payload, &items))
	require.ElementsMatch(t, inputs, items)
}

func TestSubmissionHandlerDuplicateIDIsSaveFailure(t *testing.T) {
	app, _ := setupSubmissionApp(t)

	resp, _ := doRequest(t, app, fiber.MethodPost, sampleBody)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, payload := doRequest(t, app, fiber.MethodPost, sampleBody)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	require.True(t, strings.HasPrefix(decodeMessage(t, payload).Message, "Failed to save data:"))
}

func TestSubmissionHandlerStoreUnreachable(t *testing.T) {
	app, db := setupSubmissionApp(t)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	resp, payload := doRequest(t, app, fiber.MethodGet, "")
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	message := decodeMessage(t, payload)
	require.True(t, strings.HasPrefix(message.Message, "Failed to retrieve data:"), message.Message)
	require.Empty(t, message.Error)
	requireCORS(t, resp)

	resp, payload = doRequest(t, app, fiber.MethodPost, sampleBody)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	message = decodeMessage(t, payload)
	require.True(t, strings.HasPrefix(message.Message, "Failed to save data:"), message.Message)
	requireCORS(t, resp)
}

type faultyService struct {
	err      error
	panicMsg string
}

func (s faultyService) List(context.Context) ([]dto.SubmissionResponse, error) {
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	return nil, s.err
}

func (s faultyService) Create(context.Context, *dto.SubmissionRequest) error {
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	return s.err
}

func TestSubmissionHandlerUnexpectedErrors(t *testing.T) {
	app := newGatewayApp(t, faultyService{err: errors.New("context deadline exceeded")})

	resp, payload := doRequest(t, app, fiber.MethodGet, "")
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, dto.MessageResponse{
		Message: "An unexpected error occurred while fetching data.",
		Error:   "context deadline exceeded",
	}, decodeMessage(t, payload))

	resp, payload = doRequest(t, app, fiber.MethodPost, sampleBody)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, dto.MessageResponse{
		Message: "An unexpected error occurred while saving data.",
		Error:   "context deadline exceeded",
	}, decodeMessage(t, payload))
	requireCORS(t, resp)
}

func TestSubmissionHandlerRecoversPanics(t *testing.T) {
	app := newGatewayApp(t, faultyService{panicMsg: "nil map write"})

	resp, payload := doRequest(t, app, fiber.MethodGet, "")
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, dto.MessageResponse{
		Message: "An unexpected error occurred while fetching data.",
		Error:   "nil map write",
	}, decodeMessage(t, payload))
	requireCORS(t, resp)

	resp, payload = doRequest(t, app, fiber.MethodPost, sampleBody)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, "An unexpected error occurred while saving data.", decodeMessage(t, payload).Message)
}

func TestSubmissionListContract(t *testing.T) {
	schemaPath, err := filepath.Abs(filepath.Join("testdata", "submissions.schema.json"))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + filepath.ToSlash(schemaPath))
	require.NoError(t, err)

	app, _ := setupSubmissionApp(t)
	for _, body := range []string{sampleBody, `{"id":"s2","fullName":"John Roe","riskLevel":3}`} {
		resp, _ := doRequest(t, app, fiber.MethodPost, body)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	_, payload := doRequest(t, app, fiber.MethodGet, "")

	var document interface{}
	require.NoError(t, json.NewDecoder(bytes.NewReader(payload)).Decode(&document))
	require.NoError(t, schema.Validate(document))
}
