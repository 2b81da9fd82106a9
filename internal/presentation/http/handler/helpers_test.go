package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yatrasutra/invoice-backend/internal/presentation/http/dto/request"
	"github.com/yatrasutra/invoice-backend/internal/presentation/http/dto/response"
)

func newBindTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/login", func(c *gin.Context) {
		var req request.LoginRequest
		if !bindJSON(c, &req) {
			return
		}
		response.OK(c, "Bound successfully", nil)
	})
	return router
}

func TestBindJSONValidationFailureListsFields(t *testing.T) {
	router := newBindTestRouter()

	body := strings.NewReader(`{"email":"not-an-email","password":"short"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"email"`)
	assert.Contains(t, w.Body.String(), `"field":"password"`)
}

func TestBindJSONMalformedBody(t *testing.T) {
	router := newBindTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBindJSONValidBody(t *testing.T) {
	router := newBindTestRouter()

	body := strings.NewReader(`{"email":"agent@yatrasutra.com","password":"secret123"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
