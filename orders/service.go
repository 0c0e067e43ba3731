// Package orders implements the checkout-to-order pipeline: one
// idempotency-key-guarded charge, one order row, one receipt token.
package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gladiator-burger/ordering-api/models"
	"github.com/gladiator-burger/ordering-api/payment"
	"github.com/google/uuid"
)

// ErrInvalidInput rejects a submission before any external call is made.
var ErrInvalidInput = errors.New("invalid order submission")

// RecordError means the customer was charged but the order row could not
// be written. It is a reportable inconsistency, never to be conflated
// with a decline: retrying the submission would risk a second charge.
type RecordError struct {
	PaymentID string
	Err       error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("payment %s succeeded but order was not recorded: %v", e.PaymentID, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Charger is the provider-facing side of submission, satisfied by
// *payment.Client.
type Charger interface {
	CreatePayment(ctx context.Context, req payment.CreatePaymentRequest) (*payment.Payment, error)
}

// Receipt is what a successful submission hands back to the client. The
// receipt token is the only identifier that may cross the client
// boundary afterwards.
type Receipt struct {
	OrderID      uint   `json:"orderId"`
	ReceiptToken string `json:"receiptToken"`
	PaymentID    string `json:"paymentId"`
}

const defaultPickupDelay = 30 * time.Minute

type SubmissionService struct {
	charger Charger
	store   Store
	now     func() time.Time
}

func NewSubmissionService(charger Charger, store Store) *SubmissionService {
	return &SubmissionService{
		charger: charger,
		store:   store,
		now:     time.Now,
	}
}

// Submit charges the card and records the order. The sequence is strict:
// the charge must complete before persistence is attempted, and the
// receipt token is minted only once a charge has succeeded.
//
// A fresh idempotency key is generated per submission attempt. The
// provider de-duplicates only retries presenting the same key, so
// re-entrant submission is blocked at the client boundary, not here.
func (s *SubmissionService) Submit(ctx context.Context, sourceID string, details models.OrderDetails) (*Receipt, error) {
	if sourceID == "" {
		return nil, fmt.Errorf("%w: missing payment token", ErrInvalidInput)
	}
	if details.TotalCents <= 0 {
		return nil, fmt.Errorf("%w: missing or non-positive total", ErrInvalidInput)
	}
	items, err := models.MarshalItems(details.Items)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	charged, err := s.charger.CreatePayment(ctx, payment.CreatePaymentRequest{
		SourceID:       sourceID,
		IdempotencyKey: uuid.NewString(),
		AmountCents:    details.TotalCents,
	})
	if err != nil {
		return nil, err
	}

	// Independent of the order's primary key so the real record ID
	// never needs to leave the server.
	receiptToken := uuid.NewString()

	pickupTime := details.PickupTime
	if pickupTime.IsZero() {
		pickupTime = s.now().Add(defaultPickupDelay)
	}

	order := models.Order{
		ReceiptToken:    receiptToken,
		CustomerName:    details.CustomerName,
		CustomerEmail:   details.CustomerEmail,
		CustomerPhone:   details.CustomerPhone,
		BillingAddress:  details.BillingAddress,
		BillingCountry:  details.BillingCountry,
		Items:           items,
		TotalCents:      details.TotalCents,
		SquarePaymentID: charged.ID,
		Status:          "paid",
		PickupTime:      pickupTime,
	}

	if err := s.store.Insert(ctx, &order); err != nil {
		recordErr := &RecordError{PaymentID: charged.ID, Err: err}
		log.Printf("RECONCILE: %v", recordErr)
		return nil, recordErr
	}

	return &Receipt{
		OrderID:      order.ID,
		ReceiptToken: receiptToken,
		PaymentID:    charged.ID,
	}, nil
}
