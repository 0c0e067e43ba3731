package cart

import (
	"testing"

	"github.com/gladiator-burger/ordering-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func menuItem(id uint, name string, priceCents int64) models.MenuItem {
	return models.MenuItem{
		Model:      gorm.Model{ID: id},
		Name:       name,
		PriceCents: priceCents,
	}
}

func TestAddItem_IncrementsExistingLine(t *testing.T) {
	c := New()
	burger := menuItem(1, "Colosseum Burger", 1299)

	c.AddItem(burger, 1)
	c.AddItem(burger, 2)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, 3, c.ItemCount())
}

func TestAddItem_NeverDuplicatesLines(t *testing.T) {
	c := New()
	burger := menuItem(1, "Colosseum Burger", 1299)
	fries := menuItem(2, "Spartan Fries", 499)

	c.AddItem(burger, 1)
	c.AddItem(fries, 1)
	c.AddItem(burger, 1)
	c.UpdateQuantity("2", 4)
	c.AddItem(fries, 2)

	seen := map[string]bool{}
	for _, line := range c.Lines() {
		require.False(t, seen[line.ItemID], "duplicate line for item %s", line.ItemID)
		seen[line.ItemID] = true
		assert.GreaterOrEqual(t, line.Quantity, 1)
	}
}

func TestUpdateQuantity_ZeroEqualsRemove(t *testing.T) {
	burger := menuItem(1, "Colosseum Burger", 1299)
	fries := menuItem(2, "Spartan Fries", 499)

	updated := New()
	updated.AddItem(burger, 2)
	updated.AddItem(fries, 1)
	updated.UpdateQuantity("1", 0)

	removed := New()
	removed.AddItem(burger, 2)
	removed.AddItem(fries, 1)
	removed.RemoveItem("1")

	assert.Equal(t, removed.Lines(), updated.Lines())
}

func TestUpdateQuantity_MissingItemIsNoop(t *testing.T) {
	c := New()
	c.AddItem(menuItem(1, "Colosseum Burger", 1299), 1)
	c.UpdateQuantity("99", 5)

	require.Len(t, c.Lines(), 1)
	assert.Equal(t, 1, c.Lines()[0].Quantity)
}

func TestClear(t *testing.T) {
	c := New()
	c.AddItem(menuItem(1, "Colosseum Burger", 1299), 2)
	c.Clear()

	assert.Empty(t, c.Lines())
	assert.Equal(t, 0, c.ItemCount())
	assert.Equal(t, int64(0), c.TotalCents())
}

func TestTotalCents(t *testing.T) {
	c := New()
	c.AddItem(menuItem(1, "Colosseum Burger", 1299), 2)
	c.AddItem(menuItem(2, "Spartan Fries", 499), 1)

	assert.Equal(t, int64(3097), c.TotalCents())
}

func TestMerge_SumsQuantitiesInsteadOfDuplicating(t *testing.T) {
	account := FromLines([]Line{
		{ItemID: "A", Name: "Colosseum Burger", PriceCents: 1299, Quantity: 1},
	})

	account.Merge([]Line{
		{ItemID: "A", Name: "Colosseum Burger", PriceCents: 1299, Quantity: 2},
		{ItemID: "B", Name: "Spartan Fries", PriceCents: 499, Quantity: 1},
	})

	lines := account.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "A", lines[0].ItemID)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, "B", lines[1].ItemID)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestFromLines_DropsInvalidQuantities(t *testing.T) {
	c := FromLines([]Line{
		{ItemID: "A", Quantity: 2},
		{ItemID: "B", Quantity: 0},
		{ItemID: "A", Quantity: 1},
	})

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}
