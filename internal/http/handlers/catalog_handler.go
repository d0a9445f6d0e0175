package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/gig-marketplace/internal/dto"
	"github.com/ignatzorin/gig-marketplace/internal/http/handlers/common"
	"github.com/ignatzorin/gig-marketplace/internal/service"
)

// CatalogHandler предоставляет HTTP слой каталога категорий.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler создаёт новый хэндлер.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListCategories обрабатывает GET /catalog/categories.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCatalog(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// Seed обрабатывает POST /catalog/seed. Повторный вызов безопасен:
// уже существующие категории не дублируются, в ответе — число вставок.
func (h *CatalogHandler) Seed(c *gin.Context) {
	ident := common.CurrentIdentity(c)

	inserted, err := h.catalog.SeedCatalog(c.Request.Context(), ident)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "каталог уже заполнен"
	if inserted > 0 {
		message = "каталог заполнен"
	}

	c.JSON(http.StatusOK, dto.SeedResponse{Message: message, Inserted: inserted})
}
