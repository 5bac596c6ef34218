package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/micJ-r/ecommerce-app/internal/cache"
	"github.com/micJ-r/ecommerce-app/internal/domain"
	"github.com/micJ-r/ecommerce-app/internal/pricing"
	"github.com/micJ-r/ecommerce-app/internal/repository"
)

// mockOrderRepo mimics the transactional create: all products resolve from
// the catalog map or nothing is written.
type mockOrderRepo struct {
	catalog  map[primitive.ObjectID]domain.Product
	orders   []*domain.Order
	failWith error
}

func (m *mockOrderRepo) Create(_ context.Context, o *domain.Order) error {
	if m.failWith != nil {
		return m.failWith
	}
	for i := range o.Items {
		p, ok := m.catalog[o.Items[i].ProductID]
		if !ok {
			return fmt.Errorf("%w: %s", repository.ErrProductNotFound, o.Items[i].ProductID.Hex())
		}
		o.Items[i].Name = p.Name
		o.Items[i].Price = p.Price
	}
	o.TotalAmount = pricing.Subtotal(pricing.OrderLines(o.Items))
	o.Status = domain.StatusPending
	o.CreatedAt = time.Now()
	o.ID = primitive.NewObjectID()
	m.orders = append(m.orders, o)
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Order, error) {
	for _, o := range m.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (m *mockOrderRepo) ListAll(context.Context) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (m *mockOrderRepo) ListByCustomer(_ context.Context, customerID primitive.ObjectID) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range m.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) MarkPaid(ctx context.Context, id primitive.ObjectID, result domain.PaymentResult) (*domain.Order, error) {
	o, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	o.IsPaid = true
	o.PaidAt = &now
	o.PaymentResult = &result
	return o, nil
}

func (m *mockOrderRepo) MarkDelivered(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	o, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	o.IsDelivered = true
	o.DeliveredAt = &now
	return o, nil
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.Status) (*domain.Order, error) {
	o, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Status = status
	return o, nil
}

func (m *mockOrderRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, o := range m.orders {
		if o.ID == id {
			m.orders = append(m.orders[:i], m.orders[i+1:]...)
			return nil
		}
	}
	return repository.ErrOrderNotFound
}

type recordingPublisher struct {
	published []*domain.Order
}

func (r *recordingPublisher) OrderCreated(_ context.Context, o *domain.Order) {
	r.published = append(r.published, o)
}

// mockProductRepo backs catalog service tests and counts repository hits.
type mockProductRepo struct {
	products map[primitive.ObjectID]domain.Product
	getCalls int
}

func (m *mockProductRepo) Create(_ context.Context, p *domain.Product) error {
	p.ID = primitive.NewObjectID()
	m.products[p.ID] = *p
	return nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Product, error) {
	m.getCalls++
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return &p, nil
}

func (m *mockProductRepo) List(context.Context, repository.ProductFilter) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockProductRepo) Search(context.Context, string) ([]domain.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) Update(_ context.Context, id primitive.ObjectID, p *domain.Product) (*domain.Product, error) {
	if _, ok := m.products[id]; !ok {
		return nil, repository.ErrProductNotFound
	}
	updated := *p
	updated.ID = id
	m.products[id] = updated
	return &updated, nil
}

func (m *mockProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

// memoryCache is a map-backed cache.ProductCache.
type memoryCache struct {
	entries map[primitive.ObjectID]domain.Product
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[primitive.ObjectID]domain.Product{}}
}

func (m *memoryCache) Get(_ context.Context, id primitive.ObjectID) (*domain.Product, error) {
	p, ok := m.entries[id]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return &p, nil
}

func (m *memoryCache) Set(_ context.Context, p *domain.Product) error {
	m.entries[p.ID] = *p
	return nil
}

func (m *memoryCache) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(m.entries, id)
	return nil
}
