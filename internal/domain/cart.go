package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID        string    `bson:"item_id" json:"id"`
	ProductID string    `bson:"product_id" json:"product_id"`
	Name      string    `bson:"name" json:"name"`
	Image     string    `bson:"image,omitempty" json:"image,omitempty"`
	Price     float64   `bson:"price" json:"price"` // unit price captured at add time
	Quantity  int       `bson:"quantity" json:"quantity"`
	AddedAt   time.Time `bson:"added_at" json:"added_at"`
}

type Cart struct {
	ID          string     `bson:"_id,omitempty" json:"id,omitempty"`
	UserID      string     `bson:"user_id" json:"user_id"`
	Items       []CartItem `bson:"items" json:"items"`
	TotalItems  int        `bson:"total_items" json:"total_items"`
	TotalAmount float64    `bson:"total_amount" json:"total_amount"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}

// Add merges into an existing item for the same product, otherwise appends a
// new item whose unit price is the snapshot price at the time of the call.
// The price is never re-fetched afterwards. No stock check happens here.
func (c *Cart) Add(snap ProductSnapshot, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.Items {
		if c.Items[i].ProductID == snap.ProductID {
			c.Items[i].Quantity += quantity
			c.recompute()
			return
		}
	}
	c.Items = append(c.Items, CartItem{
		ID:        uuid.NewString(),
		ProductID: snap.ProductID,
		Name:      snap.Name,
		Image:     snap.Image,
		Price:     snap.Price,
		Quantity:  quantity,
		AddedAt:   time.Now(),
	})
	c.recompute()
}

// SetQuantity overwrites an item's quantity. A quantity below 1 removes the
// item. An absent item id is a no-op.
func (c *Cart) SetQuantity(itemID string, quantity int) {
	if quantity < 1 {
		c.Remove(itemID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].Quantity = quantity
			c.recompute()
			return
		}
	}
}

// Remove deletes an item. Removing an absent item is a no-op.
func (c *Cart) Remove(itemID string) {
	for i, item := range c.Items {
		if item.ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.recompute()
			return
		}
	}
}

func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.recompute()
}

// recompute derives the totals from the item collection from scratch. Totals
// are never accumulated incrementally, so they cannot drift from the items.
func (c *Cart) recompute() {
	total := decimal.Zero
	count := 0
	for _, item := range c.Items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
		count += item.Quantity
	}
	c.TotalItems = count
	c.TotalAmount = total.Round(2).InexactFloat64()
}

// Subtotal returns the sum of captured unit prices times quantities as a
// decimal, for callers that need exact arithmetic rather than the float64
// document field.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total.Round(2)
}
