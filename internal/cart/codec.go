package cart

import "encoding/json"

// Encode serializes the cart as the plain line-item array the client store
// holds. The store is rewritten in full after every mutation.
func (c *Cart) Encode() []byte {
	items := c.items
	if items == nil {
		items = []LineItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return []byte("[]")
	}
	return b
}

// Decode rebuilds a cart from its stored form. Corrupted or missing data
// reads as an empty cart; no error surfaces to the caller. Stored lines are
// replayed through Add so the invariants (one line per product, quantity
// at least 1) hold even for tampered input.
func Decode(data []byte) *Cart {
	c := &Cart{}
	if len(data) == 0 {
		return c
	}
	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return c
	}
	for _, it := range items {
		c.Add(it)
	}
	return c
}
