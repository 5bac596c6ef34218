package service

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/singleflight"

	"github.com/micJ-r/ecommerce-app/internal/cache"
	"github.com/micJ-r/ecommerce-app/internal/domain"
	"github.com/micJ-r/ecommerce-app/internal/repository"
)

// CatalogService fronts the product repository with a cache-aside read path.
// Admin writes invalidate; listing queries go straight to the repository.
type CatalogService struct {
	repo  repository.ProductRepository
	cache cache.ProductCache
	sfg   singleflight.Group // prevents cache stampede
}

func NewCatalogService(repo repository.ProductRepository, productCache cache.ProductCache) *CatalogService {
	return &CatalogService{repo: repo, cache: productCache}
}

func (s *CatalogService) GetProduct(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	v, err, _ := s.sfg.Do(id.Hex(), func() (interface{}, error) {
		p, err := s.cache.Get(ctx, id)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("catalog: cache get error: %v", err)
		}

		p, err = s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if err := s.cache.Set(ctx, p); err != nil {
			log.Printf("catalog: cache set error: %v", err)
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

func (s *CatalogService) List(ctx context.Context, f repository.ProductFilter) ([]domain.Product, error) {
	return s.repo.List(ctx, f)
}

func (s *CatalogService) Search(ctx context.Context, query string) ([]domain.Product, error) {
	return s.repo.Search(ctx, query)
}

func (s *CatalogService) Create(ctx context.Context, p *domain.Product) error {
	return s.repo.Create(ctx, p)
}

func (s *CatalogService) Update(ctx context.Context, id primitive.ObjectID, p *domain.Product) (*domain.Product, error) {
	updated, err := s.repo.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return updated, nil
}

func (s *CatalogService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, id primitive.ObjectID) {
	if err := s.cache.Delete(ctx, id); err != nil {
		log.Printf("catalog: cache invalidate error: %v", err)
	}
}
