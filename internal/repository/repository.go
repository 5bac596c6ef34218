package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/micJ-r/ecommerce-app/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailExists     = errors.New("email already exists")
)

// ProductFilter mirrors the catalog listing query parameters. Nil price
// bounds mean unbounded.
type ProductFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Name     string
	Sort     string // price_asc, price_desc, name_asc, name_desc; default newest first
}

type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	List(ctx context.Context, f ProductFilter) ([]domain.Product, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id primitive.ObjectID, u *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type OrderRepository interface {
	// Create resolves every item's product inside one transaction, stamps the
	// catalog price onto each item, computes the total, and writes the order.
	// Any missing product aborts the whole transaction with
	// ErrProductNotFound.
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]domain.Order, error)
	MarkPaid(ctx context.Context, id primitive.ObjectID, result domain.PaymentResult) (*domain.Order, error)
	MarkDelivered(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.Status) (*domain.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
