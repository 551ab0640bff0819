package domain

import "time"

type ProductImage struct {
	URL string `bson:"url" json:"url"`
	Alt string `bson:"alt,omitempty" json:"alt,omitempty"`
}

type Product struct {
	ID            string         `bson:"_id,omitempty" json:"id"`
	Name          string         `bson:"name" json:"name"`
	Description   string         `bson:"description" json:"description"`
	Price         float64        `bson:"price" json:"price"`
	OriginalPrice float64        `bson:"original_price,omitempty" json:"original_price,omitempty"`
	Category      string         `bson:"category" json:"category"`
	Brand         string         `bson:"brand,omitempty" json:"brand,omitempty"`
	SKU           string         `bson:"sku,omitempty" json:"sku,omitempty"`
	Images        []ProductImage `bson:"images" json:"images"`
	Stock         int            `bson:"stock" json:"stock"`
	Rating        float64        `bson:"rating" json:"rating"`
	NumReviews    int            `bson:"num_reviews" json:"num_reviews"`
	Featured      bool           `bson:"featured" json:"featured"`
	CreatedAt     time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `bson:"updated_at" json:"updated_at"`
}

// ProductSnapshot is the subset of product fields copied into a cart item
// at add time. Later product edits never change it.
type ProductSnapshot struct {
	ProductID string  `bson:"product_id" json:"product_id"`
	Name      string  `bson:"name" json:"name"`
	Image     string  `bson:"image,omitempty" json:"image,omitempty"`
	Price     float64 `bson:"price" json:"price"`
}

// Snapshot captures the denormalized fields a cart item keeps.
func (p *Product) Snapshot() ProductSnapshot {
	var image string
	if len(p.Images) > 0 {
		image = p.Images[0].URL
	}
	return ProductSnapshot{
		ProductID: p.ID,
		Name:      p.Name,
		Image:     image,
		Price:     p.Price,
	}
}
