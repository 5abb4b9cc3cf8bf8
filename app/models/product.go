package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is one jewelry piece in the catalog. Price is nullable: pieces
// without a listed price show "Consultar preço" on the storefront and the
// customer asks over WhatsApp.
type Product struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"size:255;not null;index" json:"name"`
	Description *string    `gorm:"type:text" json:"description"`
	Price       *float64   `json:"price"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	Featured    bool       `gorm:"not null;default:false" json:"featured"`
	// Active carries no column default: gorm would skip a false zero value
	// on insert, so callers set it explicitly.
	Active    bool       `gorm:"not null" json:"active"`
	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Category *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Images   []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProductImage is one image attached to a product, ordered by DisplayOrder.
type ProductImage struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	ImageURL     string    `gorm:"size:1024;not null" json:"image_url"`
	AltText      *string   `gorm:"size:255" json:"alt_text"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

func (i *ProductImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
