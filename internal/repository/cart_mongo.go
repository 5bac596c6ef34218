package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/micJ-r/ecommerce-app/internal/cart"
	"github.com/micJ-r/ecommerce-app/internal/domain"
)

// mongoCartRepository implements cart.Store; carts survive across sessions
// as one document per user.
type mongoCartRepository struct {
	collection *mongo.Collection
}

func NewCartRepository(db *mongo.Database) cart.Store {
	return &mongoCartRepository{collection: db.Collection("carts")}
}

func (m *mongoCartRepository) Load(ctx context.Context, userID primitive.ObjectID) (*domain.Cart, error) {
	var c domain.Cart
	err := m.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cart.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return &c, nil
}

func (m *mongoCartRepository) Save(ctx context.Context, c *domain.Cart) error {
	filter := bson.M{"user_id": c.UserID}
	update := bson.M{"$set": bson.M{
		"user_id":    c.UserID,
		"items":      c.Items,
		"created_at": c.CreatedAt,
		"updated_at": c.UpdatedAt,
	}}
	opts := options.Update().SetUpsert(true)

	if _, err := m.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (m *mongoCartRepository) Delete(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := m.collection.DeleteOne(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
