package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"truecraft/internal/delivery/http/validator"
	"truecraft/internal/infra/content"
	"truecraft/internal/infra/persistence/demo"
	"truecraft/internal/infra/persistence/record"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()

	return e
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestProductHandler_Create_ReturnsCreated(t *testing.T) {
	e := newTestEcho()
	h := NewProductHandler(demo.New(testLogger()), testLogger())

	c, rec := newJSONContext(e, http.MethodPost, "/products",
		`{"name":"Ceramic Mug","category":"Pottery","price":25.5}`)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestProductHandler_Create_RejectsMissingName(t *testing.T) {
	e := newTestEcho()
	h := NewProductHandler(demo.New(testLogger()), testLogger())

	c, _ := newJSONContext(e, http.MethodPost, "/products", `{"category":"Pottery"}`)

	err := h.Create(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestProductHandler_Update_StoreUnavailable(t *testing.T) {
	e := newTestEcho()
	h := NewProductHandler(record.New(nil, testLogger()), testLogger())

	c, rec := newJSONContext(e, http.MethodPatch, "/products/1", `{"price":30}`)
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "STORE_UNAVAILABLE")
}

func TestReviewHandler_Create_RejectsBadRating(t *testing.T) {
	e := newTestEcho()
	h := NewReviewHandler(demo.New(testLogger()), testLogger())

	c, rec := newJSONContext(e, http.MethodPost, "/products/1/reviews",
		`{"customerName":"Ana","customerEmail":"ana@example.com","rating":9}`)
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_RATING")
}

func TestMessageHandler_Thread_RequiresParticipants(t *testing.T) {
	e := newTestEcho()
	h := NewMessageHandler(demo.New(testLogger()), testLogger())

	c, rec := newJSONContext(e, http.MethodGet, "/messages/thread?productId=1", "")

	require.NoError(t, h.Thread(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_PARTICIPANTS")
}

func TestStudioHandler_Generate_ReturnsContent(t *testing.T) {
	e := newTestEcho()
	h := NewStudioHandler(content.NewTemplateGenerator(), nil, testLogger())

	c, rec := newJSONContext(e, http.MethodPost, "/studio/generate",
		`{"prompt":"hand-thrown ceramic mug","tone":"warm"}`)

	require.NoError(t, h.Generate(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hand-thrown ceramic mug")
}

func TestAuthHandler_Login_Unconfigured(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(nil, nil, demo.New(testLogger()), testLogger())

	c, rec := newJSONContext(e, http.MethodGet, "/auth/google/login", "")

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH_UNCONFIGURED")
}

func TestHealthCheck_OK(t *testing.T) {
	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodGet, "/health", "")

	require.NoError(t, HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
