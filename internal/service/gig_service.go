package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignatzorin/gig-marketplace/internal/auth"
	"github.com/ignatzorin/gig-marketplace/internal/models"
	"github.com/ignatzorin/gig-marketplace/internal/pkg/apperror"
	"github.com/ignatzorin/gig-marketplace/internal/repository"
)

// SellerResolver находит запись продавца по token identifier.
type SellerResolver interface {
	GetByTokenIdentifier(ctx context.Context, tokenIdentifier string) (*models.User, error)
}

// GigStore описывает зависимости GigService от хранилища объявлений.
type GigStore interface {
	Create(ctx context.Context, gig *models.Gig) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Gig, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Gig, error)
	SetCover(ctx context.Context, gigID, mediaID uuid.UUID) error
}

// SubcategoryReader проверяет существование подкатегории.
type SubcategoryReader interface {
	GetSubcategoryByID(ctx context.Context, id uuid.UUID) (*models.Subcategory, error)
}

// GigService инкапсулирует бизнес-логику объявлений.
type GigService struct {
	gigs    GigStore
	sellers SellerResolver
	catalog SubcategoryReader
}

// CreateGigInput содержит данные для создания объявления.
type CreateGigInput struct {
	Title         string
	Description   string
	SubcategoryID uuid.UUID
}

// NewGigService создаёт сервис объявлений.
func NewGigService(gigs GigStore, sellers SellerResolver, catalog SubcategoryReader) *GigService {
	return &GigService{
		gigs:    gigs,
		sellers: sellers,
		catalog: catalog,
	}
}

// CreateGig создаёт объявление от имени аутентифицированного продавца.
// Длина заголовка проверяется формой; запись принимает любую строку.
func (s *GigService) CreateGig(ctx context.Context, ident auth.Identity, in CreateGigInput) (*models.Gig, error) {
	if !ident.Authenticated() {
		return nil, apperror.ErrUnauthorized
	}

	seller, err := s.resolveSeller(ctx, ident)
	if err != nil {
		return nil, err
	}

	if _, err := s.catalog.GetSubcategoryByID(ctx, in.SubcategoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, apperror.ErrSubcategoryNotFound
		}
		return nil, fmt.Errorf("gig service: проверка подкатегории: %w", err)
	}

	gig := &models.Gig{
		Title:         in.Title,
		Description:   in.Description,
		SubcategoryID: in.SubcategoryID,
		SellerID:      seller.ID,
		Published:     false,
		Clicks:        0,
	}

	if err := s.gigs.Create(ctx, gig); err != nil {
		return nil, err
	}

	return gig, nil
}

// GetGig возвращает объявление по идентификатору.
func (s *GigService) GetGig(ctx context.Context, id uuid.UUID) (*models.Gig, error) {
	gig, err := s.gigs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGigNotFound) {
			return nil, apperror.ErrGigNotFound
		}
		return nil, err
	}
	return gig, nil
}

// ListMyGigs возвращает объявления текущего продавца.
func (s *GigService) ListMyGigs(ctx context.Context, ident auth.Identity) ([]models.Gig, error) {
	if !ident.Authenticated() {
		return nil, apperror.ErrUnauthorized
	}

	seller, err := s.resolveSeller(ctx, ident)
	if err != nil {
		return nil, err
	}

	return s.gigs.ListBySeller(ctx, seller.ID)
}

// AttachCover привязывает загруженную обложку к объявлению владельца.
func (s *GigService) AttachCover(ctx context.Context, ident auth.Identity, gigID, mediaID uuid.UUID) error {
	if !ident.Authenticated() {
		return apperror.ErrUnauthorized
	}

	seller, err := s.resolveSeller(ctx, ident)
	if err != nil {
		return err
	}

	gig, err := s.gigs.GetByID(ctx, gigID)
	if err != nil {
		if errors.Is(err, repository.ErrGigNotFound) {
			return apperror.ErrGigNotFound
		}
		return err
	}

	if gig.SellerID != seller.ID {
		return apperror.ErrForbidden
	}

	return s.gigs.SetCover(ctx, gigID, mediaID)
}

// resolveSeller находит запись продавца для проверенной identity. Отсутствие
// записи — отдельная ошибка SellerNotFound, а не вставка битой ссылки.
func (s *GigService) resolveSeller(ctx context.Context, ident auth.Identity) (*models.User, error) {
	seller, err := s.sellers.GetByTokenIdentifier(ctx, ident.TokenIdentifier())
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrSellerNotFound
		}
		return nil, fmt.Errorf("gig service: поиск продавца: %w", err)
	}
	return seller, nil
}
