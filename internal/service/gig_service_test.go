package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/gig-marketplace/internal/auth"
	"github.com/ignatzorin/gig-marketplace/internal/models"
	"github.com/ignatzorin/gig-marketplace/internal/pkg/apperror"
	"github.com/ignatzorin/gig-marketplace/internal/repository"
)

type mockGigStore struct {
	mock.Mock
}

func (m *mockGigStore) Create(ctx context.Context, gig *models.Gig) error {
	args := m.Called(ctx, gig)
	if args.Error(0) == nil {
		gig.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockGigStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Gig, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Gig), args.Error(1)
}

func (m *mockGigStore) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Gig, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Gig), args.Error(1)
}

func (m *mockGigStore) SetCover(ctx context.Context, gigID, mediaID uuid.UUID) error {
	args := m.Called(ctx, gigID, mediaID)
	return args.Error(0)
}

type mockSellerResolver struct {
	mock.Mock
}

func (m *mockSellerResolver) GetByTokenIdentifier(ctx context.Context, tokenIdentifier string) (*models.User, error) {
	args := m.Called(ctx, tokenIdentifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type mockSubcategoryReader struct {
	mock.Mock
}

func (m *mockSubcategoryReader) GetSubcategoryByID(ctx context.Context, id uuid.UUID) (*models.Subcategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subcategory), args.Error(1)
}

func TestGigService_CreateGig_Unauthorized(t *testing.T) {
	gigs := new(mockGigStore)
	sellers := new(mockSellerResolver)
	catalog := new(mockSubcategoryReader)
	service := NewGigService(gigs, sellers, catalog)

	_, err := service.CreateGig(context.Background(), auth.Anonymous(), CreateGigInput{
		Title:         "Разработаю backend сервис на Go",
		SubcategoryID: uuid.New(),
	})

	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	// Вставки быть не должно
	gigs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGigService_CreateGig_SellerNotFound(t *testing.T) {
	gigs := new(mockGigStore)
	sellers := new(mockSellerResolver)
	catalog := new(mockSubcategoryReader)
	service := NewGigService(gigs, sellers, catalog)

	ident := auth.Verified("user|ghost")
	sellers.On("GetByTokenIdentifier", mock.Anything, "user|ghost").Return(nil, repository.ErrUserNotFound)

	_, err := service.CreateGig(context.Background(), ident, CreateGigInput{
		Title:         "Разработаю backend сервис на Go",
		SubcategoryID: uuid.New(),
	})

	assert.ErrorIs(t, err, apperror.ErrSellerNotFound)
	gigs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGigService_CreateGig_SubcategoryNotFound(t *testing.T) {
	gigs := new(mockGigStore)
	sellers := new(mockSellerResolver)
	catalog := new(mockSubcategoryReader)
	service := NewGigService(gigs, sellers, catalog)

	seller := &models.User{ID: uuid.New(), TokenIdentifier: "user|abc"}
	subcategoryID := uuid.New()

	sellers.On("GetByTokenIdentifier", mock.Anything, "user|abc").Return(seller, nil)
	catalog.On("GetSubcategoryByID", mock.Anything, subcategoryID).Return(nil, repository.ErrCategoryNotFound)

	_, err := service.CreateGig(context.Background(), auth.Verified("user|abc"), CreateGigInput{
		Title:         "Сделаю дизайн логотипа для вашего бренда",
		SubcategoryID: subcategoryID,
	})

	assert.ErrorIs(t, err, apperror.ErrSubcategoryNotFound)
	gigs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGigService_CreateGig_Defaults(t *testing.T) {
	gigs := new(mockGigStore)
	sellers := new(mockSellerResolver)
	catalog := new(mockSubcategoryReader)
	service := NewGigService(gigs, sellers, catalog)

	seller := &models.User{ID: uuid.New(), TokenIdentifier: "user|abc"}
	subcategoryID := uuid.New()

	sellers.On("GetByTokenIdentifier", mock.Anything, "user|abc").Return(seller, nil)
	catalog.On("GetSubcategoryByID", mock.Anything, subcategoryID).Return(&models.Subcategory{ID: subcategoryID}, nil)
	gigs.On("Create", mock.Anything, mock.Anything).Return(nil)

	gig, err := service.CreateGig(context.Background(), auth.Verified("user|abc"), CreateGigInput{
		Title:         "Напишу продающий текст для вашего сайта",
		SubcategoryID: subcategoryID,
	})

	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, gig.ID)
	assert.Equal(t, seller.ID, gig.SellerID)
	assert.False(t, gig.Published, "новое объявление не должно быть опубликовано")
	assert.Equal(t, 0, gig.Clicks)
	assert.Equal(t, "", gig.Description)
}

func TestGigService_AttachCover_Forbidden(t *testing.T) {
	gigs := new(mockGigStore)
	sellers := new(mockSellerResolver)
	catalog := new(mockSubcategoryReader)
	service := NewGigService(gigs, sellers, catalog)

	seller := &models.User{ID: uuid.New(), TokenIdentifier: "user|abc"}
	gigID := uuid.New()

	sellers.On("GetByTokenIdentifier", mock.Anything, "user|abc").Return(seller, nil)
	gigs.On("GetByID", mock.Anything, gigID).Return(&models.Gig{ID: gigID, SellerID: uuid.New()}, nil)

	err := service.AttachCover(context.Background(), auth.Verified("user|abc"), gigID, uuid.New())

	assert.ErrorIs(t, err, apperror.ErrForbidden)
	gigs.AssertNotCalled(t, "SetCover", mock.Anything, mock.Anything, mock.Anything)
}
