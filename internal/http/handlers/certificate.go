package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/surakshalabs/suraksha-backend/internal/http/response"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/ctxutil"
	"github.com/surakshalabs/suraksha-backend/internal/services"
)

type CertificateHandler struct {
	progressService services.ProgressService
	imageService    services.CertificateImageService
}

func NewCertificateHandler(progressService services.ProgressService, imageService services.CertificateImageService) *CertificateHandler {
	return &CertificateHandler{progressService: progressService, imageService: imageService}
}

func (ch *CertificateHandler) ListMine(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	certs, err := ch.progressService.ListCertificates(c.Request.Context(), rd.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"certificates": certs})
}

// GetImage renders the certificate as a downloadable PNG. Rendering needs a
// configured font; listing does not, so only this route degrades without one.
func (ch *CertificateHandler) GetImage(c *gin.Context) {
	if ch.imageService == nil {
		response.RespondError(c, http.StatusServiceUnavailable, "rendering_unavailable",
			errors.New("certificate rendering is not configured"))
		return
	}
	rd := ctxutil.GetRequestData(c.Request.Context())
	certID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_certificate_id", err)
		return
	}
	buf, err := ch.imageService.Render(c.Request.Context(), rd.UserID, certID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="certificate.png"`)
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
