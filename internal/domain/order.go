package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Cancellable reports whether the order may still transition to cancelled.
// Shipped, delivered and cancelled are terminal for the customer.
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusPending || s == OrderStatusProcessing
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

type Address struct {
	FullName string `bson:"full_name" json:"full_name"`
	Street   string `bson:"street" json:"street"`
	City     string `bson:"city" json:"city"`
	State    string `bson:"state,omitempty" json:"state,omitempty"`
	ZipCode  string `bson:"zip_code" json:"zip_code"`
	Country  string `bson:"country" json:"country"`
	Phone    string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// OrderItem is a frozen snapshot of a purchased product line. It stays valid
// even if the product is edited or deleted later.
type OrderItem struct {
	ProductID string  `bson:"product_id" json:"product_id"`
	Name      string  `bson:"name" json:"name"`
	Image     string  `bson:"image,omitempty" json:"image,omitempty"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

// Order is immutable after creation except for Status, TrackingNumber and
// UpdatedAt. TotalAmount == Subtotal + ShippingCost + Tax, permanently.
type Order struct {
	ID                string      `bson:"_id,omitempty" json:"id"`
	OrderNumber       string      `bson:"order_number" json:"order_number"`
	UserID            string      `bson:"user_id" json:"user_id"`
	Items             []OrderItem `bson:"items" json:"items"`
	ShippingAddress   Address     `bson:"shipping_address" json:"shipping_address"`
	PaymentMethod     string      `bson:"payment_method" json:"payment_method"`
	Subtotal          float64     `bson:"subtotal" json:"subtotal"`
	ShippingCost      float64     `bson:"shipping_cost" json:"shipping_cost"`
	Tax               float64     `bson:"tax" json:"tax"`
	TotalAmount       float64     `bson:"total_amount" json:"total_amount"`
	Status            OrderStatus `bson:"status" json:"status"`
	TrackingNumber    string      `bson:"tracking_number,omitempty" json:"tracking_number,omitempty"`
	EstimatedDelivery time.Time   `bson:"estimated_delivery" json:"estimated_delivery"`
	CreatedAt         time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time   `bson:"updated_at" json:"updated_at"`
}
