package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/micJ-r/ecommerce-app/internal/domain"
	"github.com/micJ-r/ecommerce-app/internal/events"
	"github.com/micJ-r/ecommerce-app/internal/repository"
)

// OrderLineInput is one product reference from a checkout submission. Any
// price the client may have attached is ignored; only id and quantity count.
type OrderLineInput struct {
	ProductID string `json:"product"`
	Quantity  int    `json:"quantity"`
}

type PlaceOrderInput struct {
	Items           []OrderLineInput `json:"products"`
	ShippingAddress string           `json:"shippingAddress"`
	PaymentMethod   string           `json:"paymentMethod"`
}

// OrderService is the order assembler: it validates a checkout submission,
// stamps customer identity from the authenticated user, and delegates the
// atomic resolve-and-write to the repository.
type OrderService struct {
	orders    repository.OrderRepository
	publisher events.Publisher
}

func NewOrderService(orders repository.OrderRepository, publisher events.Publisher) *OrderService {
	return &OrderService{orders: orders, publisher: publisher}
}

// PlaceOrder turns an authenticated user's submission into a durable order.
// Customer fields come from the session, never from the request body. There
// is no idempotency key: a client retry after a timeout places a second
// order, a known gap kept until product decides otherwise.
func (s *OrderService) PlaceOrder(ctx context.Context, customer *domain.User, in PlaceOrderInput) (*domain.Order, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: no products provided", ErrInvalidRequest)
	}

	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		productID, err := primitive.ObjectIDFromHex(line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: bad product id %q", ErrInvalidRequest, line.ProductID)
		}
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidRequest)
		}
		items = append(items, domain.OrderItem{ProductID: productID, Quantity: line.Quantity})
	}

	order := &domain.Order{
		Items:           items,
		CustomerID:      customer.ID,
		CustomerName:    customer.Username,
		CustomerEmail:   customer.Email,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.publisher.OrderCreated(ctx, order)
	return order, nil
}

// Get returns the order when the requester owns it or is an admin.
func (s *OrderService) Get(ctx context.Context, id primitive.ObjectID, requester *domain.User) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.OwnedBy(requester.ID) && !requester.IsAdmin() {
		return nil, ErrUnauthorized
	}
	return o, nil
}

func (s *OrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListAll(ctx)
}

func (s *OrderService) ListMine(ctx context.Context, requester *domain.User) ([]domain.Order, error) {
	return s.orders.ListByCustomer(ctx, requester.ID)
}

// Pay flips the paid flag; owner or admin may do it, and the status machine
// is untouched on purpose.
func (s *OrderService) Pay(ctx context.Context, id primitive.ObjectID, requester *domain.User, result domain.PaymentResult) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.OwnedBy(requester.ID) && !requester.IsAdmin() {
		return nil, ErrUnauthorized
	}
	return s.orders.MarkPaid(ctx, id, result)
}

func (s *OrderService) Deliver(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	return s.orders.MarkDelivered(ctx, id)
}

// Transition moves the order through the status machine.
func (s *OrderService) Transition(ctx context.Context, id primitive.ObjectID, to domain.Status) (*domain.Order, error) {
	if !domain.ValidStatus(to) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, to)
	}
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(o.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, to)
	}
	return s.orders.UpdateStatus(ctx, id, to)
}

func (s *OrderService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.orders.Delete(ctx, id)
}
