package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem carries the unit price captured at order creation time. The
// snapshot never changes afterwards, even if the catalog price does or the
// product is deleted.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

type PaymentResult struct {
	ID           string `bson:"id,omitempty" json:"id,omitempty"`
	Status       string `bson:"status,omitempty" json:"status,omitempty"`
	UpdateTime   string `bson:"update_time,omitempty" json:"updateTime,omitempty"`
	EmailAddress string `bson:"email_address,omitempty" json:"emailAddress,omitempty"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Items           []OrderItem        `bson:"items" json:"items"`
	CustomerID      primitive.ObjectID `bson:"customer_id" json:"customerId"`
	CustomerName    string             `bson:"customer_name" json:"customerName"`
	CustomerEmail   string             `bson:"customer_email" json:"customerEmail"`
	ShippingAddress string             `bson:"shipping_address" json:"shippingAddress"`
	PaymentMethod   string             `bson:"payment_method" json:"paymentMethod"`
	TotalAmount     float64            `bson:"total_amount" json:"totalAmount"`
	Status          Status             `bson:"status" json:"status"`
	IsPaid          bool               `bson:"is_paid" json:"isPaid"`
	PaidAt          *time.Time         `bson:"paid_at,omitempty" json:"paidAt,omitempty"`
	IsDelivered     bool               `bson:"is_delivered" json:"isDelivered"`
	DeliveredAt     *time.Time         `bson:"delivered_at,omitempty" json:"deliveredAt,omitempty"`
	PaymentResult   *PaymentResult     `bson:"payment_result,omitempty" json:"paymentResult,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
}

// OwnedBy reports whether the order belongs to the given user.
func (o *Order) OwnedBy(userID primitive.ObjectID) bool {
	return o.CustomerID == userID
}
