package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/gig-marketplace/internal/models"
	"github.com/ignatzorin/gig-marketplace/internal/repository/common"
)

// ErrCategoryNotFound возвращается, когда категория или подкатегория не найдена.
var ErrCategoryNotFound = errors.New("category not found")

// SeedCategory описывает одну категорию фиксированного набора для сидирования.
type SeedCategory struct {
	Name          string
	Subcategories []string
}

type CatalogRepository struct {
	db *sqlx.DB
}

func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListCategories возвращает все категории без подкатегорий.
func (r *CatalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.SelectContext(ctx, &categories, `
		SELECT id, name, sort_order, created_at
		FROM categories ORDER BY sort_order, name
	`)
	return categories, err
}

// ListSubcategories возвращает подкатегории для указанной категории.
func (r *CatalogRepository) ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]models.Subcategory, error) {
	var subcategories []models.Subcategory
	err := r.db.SelectContext(ctx, &subcategories, `
		SELECT id, category_id, name, sort_order, created_at
		FROM subcategories WHERE category_id = $1 ORDER BY sort_order, name
	`, categoryID)
	return subcategories, err
}

// GetSubcategoryByID возвращает подкатегорию по ID.
func (r *CatalogRepository) GetSubcategoryByID(ctx context.Context, id uuid.UUID) (*models.Subcategory, error) {
	var subcategory models.Subcategory
	err := r.db.GetContext(ctx, &subcategory, `
		SELECT id, category_id, name, sort_order, created_at
		FROM subcategories WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("catalog repository: get subcategory %w", err)
	}
	return &subcategory, nil
}

// GetCategoriesWithSubcategories возвращает категории с вложенными подкатегориями
// одним проходом: сначала категории, затем все подкатегории одним запросом.
func (r *CatalogRepository) GetCategoriesWithSubcategories(ctx context.Context) ([]models.Category, error) {
	categories, err := r.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog repository: list categories %w", err)
	}

	var subcategories []models.Subcategory
	err = r.db.SelectContext(ctx, &subcategories, `
		SELECT id, category_id, name, sort_order, created_at
		FROM subcategories ORDER BY sort_order, name
	`)
	if err != nil {
		return nil, fmt.Errorf("catalog repository: list subcategories %w", err)
	}

	byCategory := make(map[uuid.UUID][]models.Subcategory, len(categories))
	for _, sub := range subcategories {
		byCategory[sub.CategoryID] = append(byCategory[sub.CategoryID], sub)
	}

	for i := range categories {
		categories[i].Subcategories = byCategory[categories[i].ID]
	}

	return categories, nil
}

// SeedCatalog вставляет фиксированный набор категорий и подкатегорий в одной
// транзакции. Upsert по имени: повторный запуск ничего не дублирует.
// Возвращает количество реально вставленных строк.
func (r *CatalogRepository) SeedCatalog(ctx context.Context, entries []SeedCategory) (int64, error) {
	var inserted int64

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		for i, entry := range entries {
			res, err := tx.ExecContext(ctx, `
				INSERT INTO categories (name, sort_order)
				VALUES ($1, $2)
				ON CONFLICT (name) DO NOTHING
			`, entry.Name, i)
			if err != nil {
				return fmt.Errorf("seed category %q: %w", entry.Name, err)
			}
			if n, err := res.RowsAffected(); err == nil {
				inserted += n
			}

			var categoryID uuid.UUID
			if err := tx.GetContext(ctx, &categoryID, `SELECT id FROM categories WHERE name = $1`, entry.Name); err != nil {
				return fmt.Errorf("seed category %q: resolve id: %w", entry.Name, err)
			}

			if len(entry.Subcategories) == 0 {
				continue
			}

			batch := common.NewBatchInserter(tx,
				`INSERT INTO subcategories (category_id, name, sort_order)`,
				`ON CONFLICT (category_id, name) DO NOTHING`,
				3, 100)
			for j, sub := range entry.Subcategories {
				if err := batch.Add(ctx, categoryID, sub, j); err != nil {
					return fmt.Errorf("seed subcategory %q: %w", sub, err)
				}
			}
			if err := batch.Flush(ctx); err != nil {
				return fmt.Errorf("seed subcategories for %q: %w", entry.Name, err)
			}
			inserted += batch.Affected()
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("catalog repository: seed %w", err)
	}

	return inserted, nil
}
