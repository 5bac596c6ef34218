package cache

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/micJ-r/ecommerce-app/internal/domain"
)

type ProductCache interface {
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	Set(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

var ErrCacheMiss = errors.New("cache miss")

// Nop is used when no redis address is configured; every read misses and
// writes go nowhere.
type Nop struct{}

func (Nop) Get(context.Context, primitive.ObjectID) (*domain.Product, error) {
	return nil, ErrCacheMiss
}
func (Nop) Set(context.Context, *domain.Product) error       { return nil }
func (Nop) Delete(context.Context, primitive.ObjectID) error { return nil }
