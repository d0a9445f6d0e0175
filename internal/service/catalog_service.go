package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ignatzorin/gig-marketplace/internal/auth"
	"github.com/ignatzorin/gig-marketplace/internal/models"
	"github.com/ignatzorin/gig-marketplace/internal/pkg/apperror"
	"github.com/ignatzorin/gig-marketplace/internal/repository"
)

// defaultCatalog — фиксированный набор категорий площадки.
var defaultCatalog = []repository.SeedCategory{
	{Name: "Web Development", Subcategories: []string{"Frontend", "Backend", "Full Stack", "CMS", "E-commerce"}},
	{Name: "Mobile Development", Subcategories: []string{"iOS", "Android", "Cross-platform"}},
	{Name: "Design", Subcategories: []string{"UI/UX", "Logo Design", "Illustration", "Branding"}},
	{Name: "Writing", Subcategories: []string{"Copywriting", "Technical Writing", "Translation", "Editing"}},
	{Name: "Marketing", Subcategories: []string{"SEO", "Social Media", "Email Marketing", "Advertising"}},
	{Name: "Data Science", Subcategories: []string{"Data Analysis", "Data Visualization", "Data Engineering"}},
	{Name: "AI", Subcategories: []string{"Machine Learning", "Chatbots", "Computer Vision", "NLP"}},
	{Name: "Game Development", Subcategories: []string{"Unity", "Unreal Engine", "Game Design"}},
	{Name: "Finance", Subcategories: []string{"Accounting", "Financial Modeling", "Tax Consulting"}},
	{Name: "Photography", Subcategories: []string{"Product Photography", "Portrait", "Photo Editing"}},
}

// CatalogStore описывает зависимости CatalogService от хранилища.
type CatalogStore interface {
	GetCategoriesWithSubcategories(ctx context.Context) ([]models.Category, error)
	SeedCatalog(ctx context.Context, entries []repository.SeedCategory) (int64, error)
}

// CatalogNotifier извещает подписчиков об изменении каталога.
type CatalogNotifier interface {
	CatalogUpdated(ctx context.Context)
}

// Время жизни кэшированного дерева каталога.
const catalogCacheTTL = 5 * time.Minute

// CatalogService отвечает за чтение и сидирование таксономии категорий.
type CatalogService struct {
	store    CatalogStore
	notifier CatalogNotifier
	cache    *CacheService
}

// NewCatalogService создаёт сервис каталога. notifier и cache могут быть nil.
func NewCatalogService(store CatalogStore, notifier CatalogNotifier, cache *CacheService) *CatalogService {
	return &CatalogService{store: store, notifier: notifier, cache: cache}
}

// ListCatalog возвращает категории с подкатегориями. Дерево кэшируется:
// таксономия меняется только при сидировании.
func (s *CatalogService) ListCatalog(ctx context.Context) ([]models.Category, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(CatalogTreeCacheKey); ok {
			if categories, ok := cached.([]models.Category); ok {
				return categories, nil
			}
		}
	}

	categories, err := s.store.GetCategoriesWithSubcategories(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(CatalogTreeCacheKey, categories, catalogCacheTTL)
	}

	return categories, nil
}

// SeedCatalog вставляет фиксированный набор категорий. Один транзакционный
// upsert по имени: повторный вызов не создаёт дубликатов и сообщает 0 вставок.
func (s *CatalogService) SeedCatalog(ctx context.Context, ident auth.Identity) (int64, error) {
	if !ident.Authenticated() {
		return 0, apperror.ErrUnauthorized
	}

	inserted, err := s.store.SeedCatalog(ctx, defaultCatalog)
	if err != nil {
		return 0, fmt.Errorf("catalog service: %w", err)
	}

	if inserted > 0 {
		if s.cache != nil {
			s.cache.Delete(CatalogTreeCacheKey)
		}
		if s.notifier != nil {
			s.notifier.CatalogUpdated(ctx)
		}
	}

	return inserted, nil
}
