package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/meyashjha/ecommerce-fullstack/internal/domain"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError names the product whose stock could not cover a
// requested quantity.
type InsufficientStockError struct {
	ProductID string
	Name      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %d, requested %d",
		e.Name, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// ListParams filters and pages the product listing.
type ListParams struct {
	Category string
	Search   string
	Sort     string // newest | price_asc | price_desc | rating
	Featured bool
	Page     int
	PageSize int
}

// ProductRepository defines the catalog storage operations the services
// consume. Stock is mutated only through AdjustStock, which must be a
// guarded atomic update: a negative delta is applied only while
// stock >= -delta still holds at write time.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, params ListParams) ([]domain.Product, int64, error)
	Insert(ctx context.Context, product *domain.Product) error
	AdjustStock(ctx context.Context, id string, delta int) error
}
