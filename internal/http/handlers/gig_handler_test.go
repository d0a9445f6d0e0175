package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/gig-marketplace/internal/auth"
	"github.com/ignatzorin/gig-marketplace/internal/http/middleware"
	"github.com/ignatzorin/gig-marketplace/internal/models"
	"github.com/ignatzorin/gig-marketplace/internal/service"
)

type stubSellerResolver struct {
	user *models.User
	err  error
}

func (s *stubSellerResolver) GetByTokenIdentifier(ctx context.Context, tokenIdentifier string) (*models.User, error) {
	return s.user, s.err
}

type stubGigStore struct {
	created *models.Gig
	gig     *models.Gig
	err     error
}

func (s *stubGigStore) Create(ctx context.Context, gig *models.Gig) error {
	if s.err != nil {
		return s.err
	}
	gig.ID = uuid.New()
	s.created = gig
	return nil
}

func (s *stubGigStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Gig, error) {
	if s.gig != nil {
		return s.gig, nil
	}
	return nil, s.err
}

func (s *stubGigStore) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Gig, error) {
	return nil, s.err
}

func (s *stubGigStore) SetCover(ctx context.Context, gigID, mediaID uuid.UUID) error {
	return s.err
}

type stubSubcategoryReader struct {
	subcategory *models.Subcategory
	err         error
}

func (s *stubSubcategoryReader) GetSubcategoryByID(ctx context.Context, id uuid.UUID) (*models.Subcategory, error) {
	return s.subcategory, s.err
}

func newTestGigHandler(store *stubGigStore, resolver *stubSellerResolver, reader *stubSubcategoryReader) *GigHandler {
	gigService := service.NewGigService(store, resolver, reader)
	return NewGigHandler(gigService, nil, nil)
}

func createGigBody(t *testing.T, title string, subcategoryID string) *bytes.Buffer {
	t.Helper()
	raw, err := json.Marshal(map[string]string{
		"title":          title,
		"subcategory_id": subcategoryID,
	})
	if err != nil {
		t.Fatalf("не удалось сериализовать тело запроса: %v", err)
	}
	return bytes.NewBuffer(raw)
}

func TestGigHandler_CreateGig_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := newTestGigHandler(&stubGigStore{}, &stubSellerResolver{}, &stubSubcategoryReader{})
	r.POST("/gigs", handler.CreateGig)

	body := createGigBody(t, "Разработаю backend сервис на Go", uuid.NewString())
	req, _ := http.NewRequest("POST", "/gigs", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGigHandler_CreateGig_InvalidSubcategoryID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := newTestGigHandler(&stubGigStore{}, &stubSellerResolver{}, &stubSubcategoryReader{})
	r.POST("/gigs", handler.CreateGig)

	body := createGigBody(t, "Разработаю backend сервис на Go", "not-a-uuid")
	req, _ := http.NewRequest("POST", "/gigs", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGigHandler_CreateGig_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	seller := &models.User{ID: uuid.New(), TokenIdentifier: "user|abc"}
	subcategoryID := uuid.New()
	store := &stubGigStore{}

	handler := newTestGigHandler(
		store,
		&stubSellerResolver{user: seller},
		&stubSubcategoryReader{subcategory: &models.Subcategory{ID: subcategoryID}},
	)

	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextIdentityKey, auth.Verified(seller.TokenIdentifier))
		c.Next()
	})
	r.POST("/gigs", handler.CreateGig)

	body := createGigBody(t, "Разработаю backend сервис на Go", subcategoryID.String())
	req, _ := http.NewRequest("POST", "/gigs", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		GigID uuid.UUID `json:"gig_id"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEqual(t, uuid.Nil, resp.GigID)

	// Объявление создано от имени продавца и не опубликовано
	assert.NotNil(t, store.created)
	assert.Equal(t, seller.ID, store.created.SellerID)
	assert.False(t, store.created.Published)
}

func TestGigHandler_GetGig_InvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := newTestGigHandler(&stubGigStore{}, &stubSellerResolver{}, &stubSubcategoryReader{})
	r.GET("/gigs/:id", handler.GetGig)

	req, _ := http.NewRequest("GET", "/gigs/invalid-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
