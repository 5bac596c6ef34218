// Package pricing is the single place cart and order totals are computed.
// Both the cart endpoints and the order assembler go through it, so the
// amount shown before checkout and the amount persisted on the order cannot
// drift apart.
package pricing

import (
	"fmt"
	"math"

	"github.com/micJ-r/ecommerce-app/internal/domain"
)

// Line is one priced quantity, independent of whether it came from a cart
// item or a resolved catalog product.
type Line struct {
	UnitPrice float64
	Quantity  int
}

func LineTotal(l Line) float64 {
	return RoundCents(l.UnitPrice * float64(l.Quantity))
}

func Subtotal(lines []Line) float64 {
	var total float64
	for _, l := range lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return RoundCents(total)
}

func CartLines(items []domain.CartItem) []Line {
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, Line{UnitPrice: it.Price, Quantity: it.Quantity})
	}
	return lines
}

func OrderLines(items []domain.OrderItem) []Line {
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, Line{UnitPrice: it.Price, Quantity: it.Quantity})
	}
	return lines
}

func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// Format renders an amount with exactly two decimal places.
func Format(amount float64) string {
	return fmt.Sprintf("%.2f", RoundCents(amount))
}
