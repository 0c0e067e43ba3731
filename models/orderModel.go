package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrderItemSnapshot is one line of an order, frozen at submission time.
// Later cart or menu edits never touch it.
type OrderItemSnapshot struct {
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
	Image      string `json:"image"`
}

// OrderDetails is the submission-time snapshot sent with a payment token.
// It is the sole input to payment submission.
type OrderDetails struct {
	CustomerName   string              `json:"customerName" binding:"required"`
	CustomerEmail  string              `json:"customerEmail" binding:"required,email"`
	CustomerPhone  string              `json:"customerPhone" binding:"required"`
	BillingAddress string              `json:"billingAddress"`
	BillingCountry string              `json:"billingCountry"`
	Items          []OrderItemSnapshot `json:"items" binding:"required,min=1"`
	TotalCents     int64               `json:"totalCents"`
	PickupTime     time.Time           `json:"pickupTime"`
}

// Order is the persisted record. ID never crosses the client boundary
// after creation; all consumer-facing lookups go through ReceiptToken.
type Order struct {
	gorm.Model
	ReceiptToken    string         `json:"-" gorm:"uniqueIndex;size:64"`
	CustomerName    string         `json:"customerName"`
	CustomerEmail   string         `json:"customerEmail"`
	CustomerPhone   string         `json:"customerPhone"`
	BillingAddress  string         `json:"billingAddress"`
	BillingCountry  string         `json:"billingCountry"`
	Items           datatypes.JSON `json:"items"`
	TotalCents      int64          `json:"totalCents"`
	SquarePaymentID string         `json:"-"`
	Status          string         `json:"status"`
	PickupTime      time.Time      `json:"pickupTime"`
}

// MarshalItems validates the snapshot lines and encodes them for the JSON
// column. Malformed lines are rejected here, at the persistence boundary,
// rather than stored and discovered at read time.
func MarshalItems(items []OrderItemSnapshot) (datatypes.JSON, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("order has no items")
	}
	for i, item := range items {
		if item.Name == "" {
			return nil, fmt.Errorf("item %d has no name", i)
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("item %q has quantity %d", item.Name, item.Quantity)
		}
		if item.PriceCents < 0 {
			return nil, fmt.Errorf("item %q has negative price", item.Name)
		}
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order items: %w", err)
	}
	return datatypes.JSON(encoded), nil
}

func UnmarshalItems(raw datatypes.JSON) ([]OrderItemSnapshot, error) {
	var items []OrderItemSnapshot
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode order items: %w", err)
	}
	return items, nil
}

// OrderViewItem is one formatted receipt line.
type OrderViewItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
}

// OrderView is the receipt shape returned to clients. It carries a
// display-only order number, never the record ID as a lookup key.
type OrderView struct {
	OrderNumber    string          `json:"orderNumber"`
	Date           string          `json:"date"`
	PaymentMethod  string          `json:"paymentMethod"`
	CustomerName   string          `json:"customerName"`
	CustomerEmail  string          `json:"customerEmail"`
	CustomerPhone  string          `json:"customerPhone"`
	BillingAddress string          `json:"billingAddress"`
	BillingCountry string          `json:"billingCountry"`
	Items          []OrderViewItem `json:"items"`
	Subtotal       float64         `json:"subtotal"`
	Tax            float64         `json:"tax"`
	Total          float64         `json:"total"`
	Status         string          `json:"status"`
	PickupTime     time.Time       `json:"pickupTime"`
}
