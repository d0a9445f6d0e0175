package models

import (
	"time"

	"github.com/google/uuid"
)

// Gig описывает объявление продавца об услуге.
type Gig struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	Title         string     `db:"title" json:"title"`
	Description   string     `db:"description" json:"description"`
	SubcategoryID uuid.UUID  `db:"subcategory_id" json:"subcategory_id"`
	SellerID      uuid.UUID  `db:"seller_id" json:"seller_id"`
	Published     bool       `db:"published" json:"published"`
	Clicks        int        `db:"clicks" json:"clicks"`
	CoverMediaID  *uuid.UUID `db:"cover_media_id" json:"cover_media_id,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}
