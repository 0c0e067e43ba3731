package orders

import (
	"context"
	"testing"
	"time"

	"github.com/gladiator-burger/ordering-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedOrder(t *testing.T) *models.Order {
	t.Helper()
	items, err := models.MarshalItems([]models.OrderItemSnapshot{
		{Name: "Colosseum Burger", Quantity: 2, PriceCents: 1299, Image: "burger.jpg"},
		{Name: "Spartan Fries", Quantity: 1, PriceCents: 499},
	})
	require.NoError(t, err)

	order := &models.Order{
		ReceiptToken:    "11111111-2222-3333-4444-555555555555",
		CustomerName:    "Maximus D.",
		CustomerPhone:   "(555) 123-4567",
		Items:           items,
		TotalCents:      3097,
		SquarePaymentID: "pay_123",
		Status:          "paid",
		PickupTime:      time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC),
	}
	order.ID = 42
	order.CreatedAt = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	return order
}

func TestByReceiptToken_FormatsOrderView(t *testing.T) {
	store := &memStore{}
	order := storedOrder(t)
	store.orders = append(store.orders, order)
	svc := NewReceiptService(store, 0.13)

	view, err := svc.ByReceiptToken(context.Background(), order.ReceiptToken)
	require.NoError(t, err)

	assert.Equal(t, "ORD-00000042", view.OrderNumber)
	assert.Equal(t, "March 14, 2026", view.Date)
	assert.Equal(t, "VISA", view.PaymentMethod)
	assert.Equal(t, "Maximus D.", view.CustomerName)
	assert.Equal(t, "N/A", view.CustomerEmail, "missing contact fields display as N/A")
	assert.Equal(t, "N/A", view.BillingAddress)

	require.Len(t, view.Items, 2)
	assert.Equal(t, "Colosseum Burger", view.Items[0].Name)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, 12.99, view.Items[0].Price)
	assert.Equal(t, "burger.jpg", view.Items[0].ImageURL)

	assert.Equal(t, 30.97, view.Total)
	assert.InDelta(t, view.Total, view.Subtotal+view.Tax, 0.01)
	assert.Equal(t, "paid", view.Status)
	assert.Equal(t, order.PickupTime, view.PickupTime)
}

func TestByReceiptToken_UnknownTokenIsNotFound(t *testing.T) {
	store := &memStore{}
	store.orders = append(store.orders, storedOrder(t))
	svc := NewReceiptService(store, 0.13)

	_, err := svc.ByReceiptToken(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestByReceiptToken_EmptyTokenIsNotFound(t *testing.T) {
	svc := NewReceiptService(&memStore{}, 0.13)

	_, err := svc.ByReceiptToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestByReceiptToken_RepeatLookupsStayValid(t *testing.T) {
	store := &memStore{}
	order := storedOrder(t)
	store.orders = append(store.orders, order)
	svc := NewReceiptService(store, 0.13)

	first, err := svc.ByReceiptToken(context.Background(), order.ReceiptToken)
	require.NoError(t, err)
	second, err := svc.ByReceiptToken(context.Background(), order.ReceiptToken)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestByID_SameShapeAsTokenPath(t *testing.T) {
	store := &memStore{}
	order := storedOrder(t)
	store.orders = append(store.orders, order)
	svc := NewReceiptService(store, 0.13)

	byToken, err := svc.ByReceiptToken(context.Background(), order.ReceiptToken)
	require.NoError(t, err)
	byID, err := svc.ByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, byToken, byID)
}

func TestView_ZeroRateDecomposesToZeroTax(t *testing.T) {
	store := &memStore{}
	order := storedOrder(t)
	store.orders = append(store.orders, order)
	svc := NewReceiptService(store, 0)

	view, err := svc.ByReceiptToken(context.Background(), order.ReceiptToken)
	require.NoError(t, err)
	assert.Equal(t, 0.0, view.Tax)
	assert.Equal(t, view.Total, view.Subtotal)
}
