package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/surakshalabs/suraksha-backend/internal/catalog"
	"github.com/surakshalabs/suraksha-backend/internal/http/response"
)

type CatalogHandler struct {
	cat *catalog.Catalog
}

func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{cat: cat}
}

func (ch *CatalogHandler) GetCatalog(c *gin.Context) {
	response.RespondOK(c, gin.H{
		"categories": ch.cat.Categories,
		"quiz_tiers": ch.cat.QuizTiers,
	})
}
