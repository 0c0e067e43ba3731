package orders

import (
	"context"
	"testing"
	"time"

	"github.com/gladiator-burger/ordering-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A pooled second connection would see an empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Order{}))
	return NewGormStore(db)
}

func TestGormStore_InsertAndFindByReceiptToken(t *testing.T) {
	store := testStore(t)

	items, err := models.MarshalItems([]models.OrderItemSnapshot{
		{Name: "Colosseum Burger", Quantity: 1, PriceCents: 1299},
	})
	require.NoError(t, err)

	order := &models.Order{
		ReceiptToken:    "token-abc",
		CustomerName:    "Maximus D.",
		Items:           items,
		TotalCents:      1299,
		SquarePaymentID: "pay_1",
		Status:          "paid",
		PickupTime:      time.Now().Add(30 * time.Minute),
	}
	require.NoError(t, store.Insert(context.Background(), order))
	require.NotZero(t, order.ID)

	found, err := store.FindByReceiptToken(context.Background(), "token-abc")
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
	assert.Equal(t, int64(1299), found.TotalCents)

	byID, err := store.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "token-abc", byID.ReceiptToken)
}

func TestGormStore_MissReturnsErrOrderNotFound(t *testing.T) {
	store := testStore(t)

	_, err := store.FindByReceiptToken(context.Background(), "never-issued")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = store.FindByID(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGormStore_ReceiptTokenIsUnique(t *testing.T) {
	store := testStore(t)

	items, err := models.MarshalItems([]models.OrderItemSnapshot{
		{Name: "Spartan Fries", Quantity: 1, PriceCents: 499},
	})
	require.NoError(t, err)

	first := &models.Order{ReceiptToken: "dup-token", Items: items, TotalCents: 499, Status: "paid"}
	require.NoError(t, store.Insert(context.Background(), first))

	second := &models.Order{ReceiptToken: "dup-token", Items: items, TotalCents: 499, Status: "paid"}
	assert.Error(t, store.Insert(context.Background(), second))
}
