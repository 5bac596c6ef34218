package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/micJ-r/ecommerce-app/internal/domain"
	"github.com/micJ-r/ecommerce-app/internal/pricing"
)

type mongoOrderRepository struct {
	db       *mongo.Database
	orders   *mongo.Collection
	products *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &mongoOrderRepository{
		db:       db,
		orders:   db.Collection("orders"),
		products: db.Collection("products"),
	}
}

// Create runs resolve-and-write as one transaction: every item's product is
// read within the session, its current catalog price is stamped onto the
// item, and the order is inserted only if every product resolved. A single
// missing product aborts the whole transaction, so an order referencing a
// product deleted mid-flight is never half-written.
//
// Stock is deliberately not decremented here; the catalog records stock as
// admin-managed data and the observed checkout flow never reserves it.
func (m *mongoOrderRepository) Create(ctx context.Context, o *domain.Order) error {
	session, err := m.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for i := range o.Items {
			var p domain.Product
			err := m.products.FindOne(sc, bson.M{"_id": o.Items[i].ProductID}).Decode(&p)
			if err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					return nil, fmt.Errorf("%w: %s", ErrProductNotFound, o.Items[i].ProductID.Hex())
				}
				return nil, fmt.Errorf("failed to resolve product %s: %w", o.Items[i].ProductID.Hex(), err)
			}
			o.Items[i].Name = p.Name
			o.Items[i].Price = p.Price
		}

		o.TotalAmount = pricing.Subtotal(pricing.OrderLines(o.Items))
		o.Status = domain.StatusPending
		o.CreatedAt = time.Now()

		res, err := m.orders.InsertOne(sc, o)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order: %w", err)
		}
		o.ID = res.InsertedID.(primitive.ObjectID)
		return nil, nil
	})
	return err
}

func (m *mongoOrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	var o domain.Order
	err := m.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &o, nil
}

func (m *mongoOrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	return m.list(ctx, bson.M{})
}

func (m *mongoOrderRepository) ListByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]domain.Order, error) {
	return m.list(ctx, bson.M{"customer_id": customerID})
}

func (m *mongoOrderRepository) list(ctx context.Context, filter bson.M) ([]domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := m.orders.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Order
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return out, nil
}

// MarkPaid sets the paid flag and payment details. It does not touch Status;
// the paid flag and the status machine are independent, as the admin console
// expects.
func (m *mongoOrderRepository) MarkPaid(ctx context.Context, id primitive.ObjectID, result domain.PaymentResult) (*domain.Order, error) {
	now := time.Now()
	update := bson.M{"$set": bson.M{
		"is_paid":        true,
		"paid_at":        now,
		"payment_result": result,
	}}
	return m.findOneAndUpdate(ctx, id, update)
}

func (m *mongoOrderRepository) MarkDelivered(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	now := time.Now()
	update := bson.M{"$set": bson.M{
		"is_delivered": true,
		"delivered_at": now,
	}}
	return m.findOneAndUpdate(ctx, id, update)
}

func (m *mongoOrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.Status) (*domain.Order, error) {
	return m.findOneAndUpdate(ctx, id, bson.M{"$set": bson.M{"status": status}})
}

func (m *mongoOrderRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*domain.Order, error) {
	var updated domain.Order
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := m.orders.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return &updated, nil
}

func (m *mongoOrderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.orders.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}
