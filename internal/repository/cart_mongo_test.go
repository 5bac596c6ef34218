package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/micJ-r/ecommerce-app/internal/cart"
	"github.com/micJ-r/ecommerce-app/internal/domain"
)

func TestCartLoad_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewCartRepository(db)
	_, err := store.Load(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, cart.ErrNotFound)
}

func TestCartSaveLoadRoundTrip(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	store := NewCartRepository(db)
	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	c := &domain.Cart{
		UserID: userID,
		Items:  []domain.CartItem{{ProductID: productID, Name: "widget", Price: 9.99, Quantity: 2}},
	}
	require.NoError(t, store.Save(ctx, c))

	loaded, err := store.Load(ctx, userID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, productID, loaded.Items[0].ProductID)
	assert.Equal(t, 2, loaded.Items[0].Quantity)

	// save again upserts rather than duplicating
	c.Items[0].Quantity = 3
	require.NoError(t, store.Save(ctx, c))
	loaded, err = store.Load(ctx, userID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, 3, loaded.Items[0].Quantity)
}

func TestCartDelete(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	store := NewCartRepository(db)
	userID := primitive.NewObjectID()
	require.NoError(t, store.Save(ctx, &domain.Cart{UserID: userID}))

	require.NoError(t, store.Delete(ctx, userID))
	_, err := store.Load(ctx, userID)
	assert.ErrorIs(t, err, cart.ErrNotFound)

	// deleting an absent cart is not an error
	require.NoError(t, store.Delete(ctx, userID))
}
