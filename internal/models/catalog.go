package models

import (
	"time"

	"github.com/google/uuid"
)

// Category представляет категорию услуг верхнего уровня.
type Category struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	Name          string        `db:"name" json:"name"`
	SortOrder     int           `db:"sort_order" json:"sort_order"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	Subcategories []Subcategory `json:"subcategories,omitempty"`
}

// Subcategory представляет подкатегорию внутри категории.
type Subcategory struct {
	ID         uuid.UUID `db:"id" json:"id"`
	CategoryID uuid.UUID `db:"category_id" json:"category_id"`
	Name       string    `db:"name" json:"name"`
	SortOrder  int       `db:"sort_order" json:"sort_order"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
