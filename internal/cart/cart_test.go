package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/micJ-r/ecommerce-app/internal/domain"
)

type memoryStore struct {
	cart    *domain.Cart
	loadErr error
	saves   int
}

func (m *memoryStore) Load(_ context.Context, userID primitive.ObjectID) (*domain.Cart, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.cart == nil {
		return nil, ErrNotFound
	}
	return m.cart, nil
}

func (m *memoryStore) Save(_ context.Context, c *domain.Cart) error {
	m.cart = c
	m.saves++
	return nil
}

func (m *memoryStore) Delete(_ context.Context, _ primitive.ObjectID) error {
	m.cart = nil
	return nil
}

func product(price float64) domain.Product {
	return domain.Product{ID: primitive.NewObjectID(), Name: "widget", Price: price}
}

func TestAdd_SameProductTwiceMergesIntoOneLine(t *testing.T) {
	store := &memoryStore{}
	b := Open(context.Background(), store, primitive.NewObjectID())

	p := product(10.00)
	require.NoError(t, b.Add(context.Background(), p))
	require.NoError(t, b.Add(context.Background(), p))

	require.Len(t, b.Items(), 1)
	assert.Equal(t, 2, b.Items()[0].Quantity)
	assert.Equal(t, 2, b.Count())
}

func TestAdd_PersistsAfterEveryMutation(t *testing.T) {
	store := &memoryStore{}
	b := Open(context.Background(), store, primitive.NewObjectID())

	p := product(10.00)
	require.NoError(t, b.Add(context.Background(), p))
	require.NoError(t, b.Add(context.Background(), p))
	require.NoError(t, b.Remove(context.Background(), p.ID))

	assert.Equal(t, 3, store.saves)
}

func TestRemove_DecrementsThenDeletesLine(t *testing.T) {
	store := &memoryStore{}
	b := Open(context.Background(), store, primitive.NewObjectID())

	p := product(10.00)
	require.NoError(t, b.Add(context.Background(), p))
	require.NoError(t, b.Add(context.Background(), p))

	require.NoError(t, b.Remove(context.Background(), p.ID))
	require.Len(t, b.Items(), 1)
	assert.Equal(t, 1, b.Items()[0].Quantity)

	require.NoError(t, b.Remove(context.Background(), p.ID))
	assert.Empty(t, b.Items())
}

func TestRemove_AbsentProductIsNoop(t *testing.T) {
	store := &memoryStore{}
	b := Open(context.Background(), store, primitive.NewObjectID())

	require.NoError(t, b.Remove(context.Background(), primitive.NewObjectID()))
	assert.Equal(t, 0, b.Count())
	// a no-op must not touch storage either
	assert.Equal(t, 0, store.saves)
}

func TestCountMatchesQuantitySumAndNoLineHitsZero(t *testing.T) {
	store := &memoryStore{}
	b := Open(context.Background(), store, primitive.NewObjectID())

	a, c := product(1.00), product(2.00)
	ops := []func() error{
		func() error { return b.Add(context.Background(), a) },
		func() error { return b.Add(context.Background(), a) },
		func() error { return b.Add(context.Background(), c) },
		func() error { return b.Remove(context.Background(), a.ID) },
		func() error { return b.Add(context.Background(), c) },
		func() error { return b.Remove(context.Background(), primitive.NewObjectID()) },
	}
	for _, op := range ops {
		require.NoError(t, op())
		var sum int
		for _, it := range b.Items() {
			require.Greater(t, it.Quantity, 0)
			sum += it.Quantity
		}
		assert.Equal(t, sum, b.Count())
	}
	assert.Equal(t, 3, b.Count())
}

func TestTotal_UsesAddTimePriceSnapshot(t *testing.T) {
	store := &memoryStore{}
	b := Open(context.Background(), store, primitive.NewObjectID())

	pa := product(10.00)
	pb := product(5.00)
	require.NoError(t, b.Add(context.Background(), pa))
	require.NoError(t, b.Add(context.Background(), pa))
	require.NoError(t, b.Add(context.Background(), pb))

	assert.Equal(t, 25.00, b.Total())
	// idempotent without mutation
	assert.Equal(t, b.Total(), b.Total())
}

func TestOpen_UnreadableCartStartsEmpty(t *testing.T) {
	store := &memoryStore{loadErr: errors.New("bson: corrupt document")}
	b := Open(context.Background(), store, primitive.NewObjectID())

	assert.Equal(t, 0, b.Count())
	assert.Empty(t, b.Items())
}

func TestOpen_MissingCartStartsEmpty(t *testing.T) {
	store := &memoryStore{}
	userID := primitive.NewObjectID()
	b := Open(context.Background(), store, userID)

	assert.Equal(t, 0, b.Count())
	assert.Equal(t, userID, b.Cart().UserID)
}

func TestClear(t *testing.T) {
	store := &memoryStore{}
	b := Open(context.Background(), store, primitive.NewObjectID())

	require.NoError(t, b.Add(context.Background(), product(3.50)))
	require.NoError(t, b.Clear(context.Background()))

	assert.Equal(t, 0, b.Count())
	assert.Nil(t, store.cart)
}
