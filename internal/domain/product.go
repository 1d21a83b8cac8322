package domain

import (
	"context"
	"time"
)

// Product is a single catalog entry.
type Product struct {
	ID          string
	Name        string
	Price       float64
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductPatch carries a partial update. Nil fields are left untouched.
type ProductPatch struct {
	Name        *string
	Price       *float64
	Description *string
}

// Empty reports whether the patch changes nothing.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Price == nil && p.Description == nil
}

// ProductRepository defines persistence operations for products.
// GetByID and Update return ErrNotFound for unknown ids; an id the backend
// cannot parse is an ordinary error. Delete reports whether a record was removed.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Update(ctx context.Context, id string, patch ProductPatch) (*Product, error)
	Delete(ctx context.Context, id string) (bool, error)
}
