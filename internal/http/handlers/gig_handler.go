package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/h2non/filetype"

	"github.com/ignatzorin/gig-marketplace/internal/dto"
	"github.com/ignatzorin/gig-marketplace/internal/http/handlers/common"
	"github.com/ignatzorin/gig-marketplace/internal/models"
	"github.com/ignatzorin/gig-marketplace/internal/repository"
	"github.com/ignatzorin/gig-marketplace/internal/service"
	"github.com/ignatzorin/gig-marketplace/internal/storage"
)

// Разрешённые типы файлов обложки
var allowedCoverMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// Разрешённые расширения обложки
var allowedCoverExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// GigHandler предоставляет HTTP слой для объявлений.
type GigHandler struct {
	gigs    *service.GigService
	media   *repository.MediaRepository
	storage *storage.PhotoStorage
}

// NewGigHandler создаёт новый хэндлер.
func NewGigHandler(gigs *service.GigService, media *repository.MediaRepository, storage *storage.PhotoStorage) *GigHandler {
	return &GigHandler{gigs: gigs, media: media, storage: storage}
}

// CreateGig обрабатывает POST /gigs.
func (h *GigHandler) CreateGig(c *gin.Context) {
	var req dto.CreateGigRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subcategoryID, err := uuid.Parse(req.SubcategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный идентификатор подкатегории"})
		return
	}

	ident := common.CurrentIdentity(c)

	gig, err := h.gigs.CreateGig(c.Request.Context(), ident, service.CreateGigInput{
		Title:         req.Title,
		Description:   req.Description,
		SubcategoryID: subcategoryID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateGigResponse{GigID: gig.ID})
}

// GetGig обрабатывает GET /gigs/:id.
func (h *GigHandler) GetGig(c *gin.Context) {
	gigID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gig, err := h.gigs.GetGig(c.Request.Context(), gigID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gig)
}

// ListMyGigs обрабатывает GET /gigs/my.
func (h *GigHandler) ListMyGigs(c *gin.Context) {
	ident := common.CurrentIdentity(c)

	gigs, err := h.gigs.ListMyGigs(c.Request.Context(), ident)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if gigs == nil {
		gigs = []models.Gig{}
	}

	c.JSON(http.StatusOK, gin.H{"gigs": gigs})
}

// UploadCover обрабатывает POST /gigs/:id/cover.
func (h *GigHandler) UploadCover(c *gin.Context) {
	ownerID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	gigID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "поле file обязательно"})
		return
	}

	if file.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "файл не может быть пустым"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedCoverExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("неподдерживаемый формат файла. Разрешены: %s", strings.Join(coverExtensions(), ", ")),
		})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	// Читаем первые 512 байт для проверки магических байтов
	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, gin.H{"error": "не удалось прочитать файл"})
		return
	}

	kind, err := filetype.Match(buffer[:n])
	if err != nil || kind == filetype.Unknown {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "не удалось определить тип файла. Разрешены только изображения",
		})
		return
	}

	contentType := kind.MIME.Value
	if !allowedCoverMimeTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("неподдерживаемый тип файла (%s)", contentType),
		})
		return
	}

	// Расширение должно соответствовать реальному типу файла
	expectedExt := "." + kind.Extension
	if ext != expectedExt && !(ext == ".jpg" && expectedExt == ".jpeg") && !(ext == ".jpeg" && expectedExt == ".jpg") {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("расширение файла (%s) не соответствует реальному типу (%s)", ext, expectedExt),
		})
		return
	}

	// Сбрасываем позицию файла для сохранения
	if seeker, ok := src.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось сбросить позицию файла"})
			return
		}
	}

	relativePath, size, err := h.storage.Save(c.Request.Context(), ownerID, file.Filename, src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	media := &models.MediaFile{
		OwnerID:   ownerID,
		FilePath:  filepath.ToSlash(relativePath),
		MimeType:  contentType,
		SizeBytes: size,
	}

	if err := h.media.Create(c.Request.Context(), media); err != nil {
		_ = h.storage.Delete(c.Request.Context(), relativePath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ident := common.CurrentIdentity(c)
	if err := h.gigs.AttachCover(c.Request.Context(), ident, gigID, media.ID); err != nil {
		// Осиротевший файл убираем сразу, не дожидаясь фоновой чистки.
		if delErr := h.media.Delete(c.Request.Context(), media.ID, ownerID); delErr != nil && !errors.Is(delErr, repository.ErrMediaNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": delErr.Error()})
			return
		}
		_ = h.storage.Delete(c.Request.Context(), relativePath)
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, media)
}

// coverExtensions возвращает список разрешённых расширений.
func coverExtensions() []string {
	exts := make([]string, 0, len(allowedCoverExtensions))
	for ext := range allowedCoverExtensions {
		exts = append(exts, ext)
	}
	return exts
}
