package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/gig-marketplace/internal/models"
)

// ErrGigNotFound возвращается, когда объявление не найдено.
var ErrGigNotFound = errors.New("gig not found")

// GigRepository отвечает за работу с таблицей gigs.
type GigRepository struct {
	db *sqlx.DB
}

// NewGigRepository создаёт экземпляр репозитория.
func NewGigRepository(db *sqlx.DB) *GigRepository {
	return &GigRepository{db: db}
}

// Create вставляет новое объявление и заполняет его ID и timestamps.
func (r *GigRepository) Create(ctx context.Context, gig *models.Gig) error {
	query := `
		INSERT INTO gigs (title, description, subcategory_id, seller_id, published, clicks)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		gig.Title, gig.Description, gig.SubcategoryID, gig.SellerID, gig.Published, gig.Clicks,
	).Scan(&gig.ID, &gig.CreatedAt, &gig.UpdatedAt); err != nil {
		return fmt.Errorf("gig repository: create %w", err)
	}

	return nil
}

// GetByID возвращает объявление по идентификатору.
func (r *GigRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Gig, error) {
	var gig models.Gig
	query := `
		SELECT id, title, description, subcategory_id, seller_id, published, clicks, cover_media_id, created_at, updated_at
		FROM gigs
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &gig, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGigNotFound
		}
		return nil, fmt.Errorf("gig repository: get by id %w", err)
	}

	return &gig, nil
}

// ListBySeller возвращает объявления продавца, новые первыми.
func (r *GigRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Gig, error) {
	var gigs []models.Gig
	query := `
		SELECT id, title, description, subcategory_id, seller_id, published, clicks, cover_media_id, created_at, updated_at
		FROM gigs
		WHERE seller_id = $1
		ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &gigs, query, sellerID); err != nil {
		return nil, fmt.Errorf("gig repository: list by seller %w", err)
	}

	return gigs, nil
}

// SetCover привязывает загруженную обложку к объявлению.
func (r *GigRepository) SetCover(ctx context.Context, gigID, mediaID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE gigs SET cover_media_id = $2, updated_at = NOW() WHERE id = $1
	`, gigID, mediaID)
	if err != nil {
		return fmt.Errorf("gig repository: set cover %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrGigNotFound
	}

	return nil
}
