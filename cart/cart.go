// Package cart holds the in-memory cart aggregate. A cart is an ordered
// list of lines, at most one per menu item; mutation keeps the invariant
// that every line has quantity >= 1.
package cart

import (
	"strconv"

	"github.com/gladiator-burger/ordering-api/models"
)

// Line is one selected item with its quantity.
type Line struct {
	ItemID     string `json:"itemId"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Quantity   int    `json:"quantity"`
	ImageURL   string `json:"imageUrl"`
	Category   string `json:"category"`
}

type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// FromLines builds a cart from stored lines, collapsing any duplicate
// item IDs and dropping non-positive quantities.
func FromLines(lines []Line) *Cart {
	c := New()
	for _, line := range lines {
		if line.Quantity < 1 {
			continue
		}
		c.add(line)
	}
	return c
}

// AddItem adds a menu item to the cart. Adding an item already present
// increments its quantity instead of appending a duplicate line.
func (c *Cart) AddItem(item models.MenuItem, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	c.add(Line{
		ItemID:     strconv.FormatUint(uint64(item.ID), 10),
		Name:       item.Name,
		PriceCents: item.PriceCents,
		Quantity:   quantity,
		ImageURL:   item.ImageURL,
		Category:   item.Category,
	})
}

func (c *Cart) add(line Line) {
	for i := range c.lines {
		if c.lines[i].ItemID == line.ItemID {
			c.lines[i].Quantity += line.Quantity
			return
		}
	}
	c.lines = append(c.lines, line)
}

// UpdateQuantity sets the quantity of an existing line. A quantity of
// zero or less removes the line.
func (c *Cart) UpdateQuantity(itemID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(itemID)
		return
	}
	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) RemoveItem(itemID string) {
	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

// ItemCount is the total number of units across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

func (c *Cart) TotalCents() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.PriceCents * int64(line.Quantity)
	}
	return total
}

// Lines returns a copy of the cart's lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Merge folds guest lines into this cart: quantities are summed for
// matching item IDs, new items are appended. Used once, at login.
func (c *Cart) Merge(guest []Line) {
	for _, line := range guest {
		if line.Quantity < 1 {
			continue
		}
		c.add(line)
	}
}
