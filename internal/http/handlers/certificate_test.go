package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/surakshalabs/suraksha-backend/internal/pkg/ctxutil"
)

func TestGetImageWithoutRendererReturnsUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewCertificateHandler(nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodGet, "/api/certificates/"+uuid.New().String()+"/image", nil)
	c.Request = req.WithContext(ctxutil.WithRequestData(req.Context(), &ctxutil.RequestData{UserID: uuid.New()}))
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

	h.GetImage(c)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}
