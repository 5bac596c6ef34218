// Package cart holds the pre-checkout basket. The basket itself is a plain
// reducer over add/remove actions; durability goes through an injected Store
// so the logic is testable without a database.
package cart

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/micJ-r/ecommerce-app/internal/domain"
	"github.com/micJ-r/ecommerce-app/internal/pricing"
)

// Store is the persistence port for baskets. The mongo implementation lives
// in internal/repository.
type Store interface {
	Load(ctx context.Context, userID primitive.ObjectID) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, userID primitive.ObjectID) error
}

// ErrNotFound is returned by Store.Load when the user has no saved cart.
var ErrNotFound = errors.New("cart not found")

type Basket struct {
	store Store
	cart  *domain.Cart
}

// Open loads the user's saved cart. A missing cart starts empty; a cart that
// fails to load is discarded and also starts empty, but the discard is
// logged so storage corruption does not stay invisible.
func Open(ctx context.Context, store Store, userID primitive.ObjectID) *Basket {
	saved, err := store.Load(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("cart: discarding unreadable cart for user %s: %v", userID.Hex(), err)
		}
		saved = &domain.Cart{UserID: userID, CreatedAt: time.Now()}
	}
	return &Basket{store: store, cart: saved}
}

// Add puts one unit of the product into the basket, merging into an existing
// line when the product is already present. The persisted copy is written
// before Add returns.
func (b *Basket) Add(ctx context.Context, p domain.Product) error {
	b.cart.Items = addItem(b.cart.Items, p)
	return b.save(ctx)
}

// Remove takes one unit of the product out of the basket, deleting the line
// when it reaches zero. Removing an absent product is a no-op.
func (b *Basket) Remove(ctx context.Context, productID primitive.ObjectID) error {
	next, changed := removeItem(b.cart.Items, productID)
	if !changed {
		return nil
	}
	b.cart.Items = next
	return b.save(ctx)
}

// Clear empties the basket and deletes the persisted copy.
func (b *Basket) Clear(ctx context.Context) error {
	b.cart.Items = nil
	if err := b.store.Delete(ctx, b.cart.UserID); err != nil {
		return err
	}
	return nil
}

// Count is the sum of all line quantities.
func (b *Basket) Count() int {
	var n int
	for _, it := range b.cart.Items {
		n += it.Quantity
	}
	return n
}

// Total sums quantity times the add-time price snapshot, rounded to cents.
// It is display data only; checkout recomputes from the catalog.
func (b *Basket) Total() float64 {
	return pricing.Subtotal(pricing.CartLines(b.cart.Items))
}

func (b *Basket) Items() []domain.CartItem {
	return b.cart.Items
}

func (b *Basket) Cart() *domain.Cart {
	return b.cart
}

func (b *Basket) save(ctx context.Context) error {
	b.cart.UpdatedAt = time.Now()
	return b.store.Save(ctx, b.cart)
}

// addItem is the pure add reducer: one line per product, quantity bumped by
// one on repeat adds, no upper bound.
func addItem(items []domain.CartItem, p domain.Product) []domain.CartItem {
	for i := range items {
		if items[i].ProductID == p.ID {
			items[i].Quantity++
			return items
		}
	}
	return append(items, domain.CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
	})
}

// removeItem is the pure remove reducer. The second return reports whether
// anything changed.
func removeItem(items []domain.CartItem, productID primitive.ObjectID) ([]domain.CartItem, bool) {
	for i := range items {
		if items[i].ProductID != productID {
			continue
		}
		if items[i].Quantity > 1 {
			items[i].Quantity--
			return items, true
		}
		return append(items[:i], items[i+1:]...), true
	}
	return items, false
}
