package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/anish9011/plant/internal/platform/apierr"
	"github.com/anish9011/plant/internal/platform/logger"
)

func serve(t *testing.T, h gin.HandlerFunc) (*httptest.ResponseRecorder, ErrorEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", h)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	var env ErrorEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestRespondServiceErrorKeepsAPIError(t *testing.T) {
	rec, env := serve(t, func(c *gin.Context) {
		RespondServiceError(c, logger.NewNop(), "fallback", apierr.NotFound("user_not_found", "User not found"))
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d", rec.Code)
	}
	if env.Error.Code != "user_not_found" || env.Error.Message != "User not found" {
		t.Fatalf("unexpected body: %+v", env)
	}
}

func TestRespondServiceErrorHidesInternalDetail(t *testing.T) {
	rec, env := serve(t, func(c *gin.Context) {
		RespondServiceError(c, logger.NewNop(), "list_failed", errors.New("pq: connection refused"))
	})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d", rec.Code)
	}
	if env.Error.Code != "list_failed" || env.Error.Message != "internal server error" {
		t.Fatalf("unexpected body: %+v", env)
	}
}
