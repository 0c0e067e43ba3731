package orders

import (
	"context"
	"fmt"

	"github.com/gladiator-burger/ordering-api/models"
	"github.com/gladiator-burger/ordering-api/utils"
)

// ReceiptService resolves persisted orders into the client-facing
// OrderView. The consumer flow looks up by receipt token only; ByID
// exists for the authenticated internal path.
type ReceiptService struct {
	store Store

	// Inclusive tax rate for this deployment. Stored totals are
	// decomposed at this rate on redisplay; zero yields zero tax.
	taxRate float64
}

func NewReceiptService(store Store, taxRate float64) *ReceiptService {
	return &ReceiptService{store: store, taxRate: taxRate}
}

func (s *ReceiptService) ByReceiptToken(ctx context.Context, token string) (*models.OrderView, error) {
	if token == "" {
		return nil, ErrOrderNotFound
	}
	order, err := s.store.FindByReceiptToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.view(order)
}

func (s *ReceiptService) ByID(ctx context.Context, id uint) (*models.OrderView, error) {
	order, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(order)
}

func (s *ReceiptService) view(order *models.Order) (*models.OrderView, error) {
	items, err := models.UnmarshalItems(order.Items)
	if err != nil {
		return nil, fmt.Errorf("order %d has malformed items: %w", order.ID, err)
	}

	viewItems := make([]models.OrderViewItem, 0, len(items))
	for _, item := range items {
		viewItems = append(viewItems, models.OrderViewItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    utils.CentsToDollars(item.PriceCents),
			ImageURL: item.Image,
		})
	}

	subtotal, tax := utils.DecomposeTotal(order.TotalCents, s.taxRate)

	return &models.OrderView{
		// Zero-padded display number; not a lookup key.
		OrderNumber:    fmt.Sprintf("ORD-%08d", order.ID),
		Date:           order.CreatedAt.Format("January 2, 2006"),
		PaymentMethod:  "VISA",
		CustomerName:   order.CustomerName,
		CustomerEmail:  valueOr(order.CustomerEmail, "N/A"),
		CustomerPhone:  order.CustomerPhone,
		BillingAddress: valueOr(order.BillingAddress, "N/A"),
		BillingCountry: valueOr(order.BillingCountry, "N/A"),
		Items:          viewItems,
		Subtotal:       subtotal,
		Tax:            tax,
		Total:          utils.CentsToDollars(order.TotalCents),
		Status:         order.Status,
		PickupTime:     order.PickupTime,
	}, nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
