// Package cart keeps the quantity-keyed line items of a client's shopping
// cart and derives its monetary totals. The collection has exactly one
// logical owner (the active client session), so no locking is done here.
package cart

import "github.com/shopspring/decimal"

// StorageKey names the client-side store the serialized cart lives under.
const StorageKey = "cartItems"

// DeliveryFee is the flat shipping cost in RSD added to every order.
var DeliveryFee = decimal.NewFromFloat(350.00)

// LineItem is one cart row. Name, image and unit price are captured at
// add-to-cart time and are not live-joined to the catalog afterwards.
type LineItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type Cart struct {
	items []LineItem
}

func New(items ...LineItem) *Cart {
	c := &Cart{}
	for _, it := range items {
		c.Add(it)
	}
	return c
}

// Add puts an item into the cart. When a line with the same product id
// already exists its quantity is incremented instead of appending a
// duplicate line. A non-positive quantity is clamped to 1.
func (c *Cart) Add(item LineItem) {
	if item.ProductID == "" {
		return
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for i := range c.items {
		if c.items[i].ProductID == item.ProductID {
			c.items[i].Quantity += item.Quantity
			return
		}
	}
	c.items = append(c.items, item)
}

// Remove drops the line with the given product id; removing an absent
// product is a no-op.
func (c *Cart) Remove(productID string) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart, used after a successful order submission.
func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int { return len(c.items) }

func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

// LineTotal is unit price times quantity, rounded half-to-even at two
// decimal places.
func LineTotal(item LineItem) decimal.Decimal {
	return decimal.NewFromFloat(item.Price).
		Mul(decimal.NewFromInt(int64(item.Quantity))).
		RoundBank(2)
}

// Subtotal sums the line totals of every item.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(LineTotal(it))
	}
	return total.RoundBank(2)
}

// Total is the subtotal plus the flat delivery fee.
func (c *Cart) Total() decimal.Decimal {
	return c.Subtotal().Add(DeliveryFee).RoundBank(2)
}
