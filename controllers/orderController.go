package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gladiator-burger/ordering-api/models"
	"github.com/gladiator-burger/ordering-api/orders"
	"github.com/gladiator-burger/ordering-api/payment"
	"github.com/gladiator-burger/ordering-api/stash"
)

const (
	msgInvalidBody        = "Invalid request body"
	msgMissingToken       = "Missing payment token"
	msgMissingDetails     = "Missing order details"
	msgPaymentInFlight    = "A payment for this order is already in progress"
	msgOrderNotFound      = "Order not found"
	msgOrderNotRecorded   = "We hit a problem finalizing your order. Please contact support before retrying."
	msgPaymentUnavailable = "Payment system failed to load"
	msgPaymentFailed      = "Payment failed"
	msgMissingOrderData   = "Missing order data or email"
)

// Submitter runs the charge-then-persist pipeline.
type Submitter interface {
	Submit(ctx context.Context, sourceID string, details models.OrderDetails) (*orders.Receipt, error)
}

// ReceiptLookup resolves persisted orders into OrderViews.
type ReceiptLookup interface {
	ByReceiptToken(ctx context.Context, token string) (*models.OrderView, error)
	ByID(ctx context.Context, id uint) (*models.OrderView, error)
}

// ReceiptMailer sends a confirmation email for an already-resolved view.
type ReceiptMailer interface {
	SendReceipt(view models.OrderView) (string, error)
}

type OrderController struct {
	submitter Submitter
	receipts  ReceiptLookup
	mailer    ReceiptMailer
	widget    payment.WidgetConfig

	// inflight guards against double-submission: the provider's
	// idempotency key is fresh per attempt, so a user double-click must
	// be stopped here, before a second charge is attempted.
	inflight *stash.Stash
}

func NewOrderController(submitter Submitter, receipts ReceiptLookup, mailer ReceiptMailer, widget payment.WidgetConfig) *OrderController {
	return &OrderController{
		submitter: submitter,
		receipts:  receipts,
		mailer:    mailer,
		widget:    widget,
		inflight:  stash.New(2 * time.Minute),
	}
}

type paymentRequest struct {
	SourceID     string              `json:"sourceId"`
	OrderDetails models.OrderDetails `json:"orderDetails"`
}

// CreatePayment handles POST /payments.
func (c *OrderController) CreatePayment(ctx *gin.Context) {
	var req paymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Printf("JSON binding error: %v", err)
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if req.SourceID == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, msgMissingToken)
		return
	}
	if req.OrderDetails.TotalCents <= 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgMissingDetails)
		return
	}

	// One logical order at a time. Keyed by the submission's own fields
	// so a double-click cannot race two charges.
	fingerprint := fmt.Sprintf("%s|%s|%d", req.SourceID, req.OrderDetails.CustomerEmail, req.OrderDetails.TotalCents)
	if !c.inflight.PutOnce(fingerprint, "in-flight") {
		sendErrorResponse(ctx, http.StatusConflict, msgPaymentInFlight)
		return
	}
	defer c.inflight.Clear(fingerprint)

	receipt, err := c.submitter.Submit(ctx.Request.Context(), req.SourceID, req.OrderDetails)
	if err != nil {
		c.respondToSubmitError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success":      true,
		"orderId":      receipt.OrderID,
		"receiptToken": receipt.ReceiptToken,
		"paymentId":    receipt.PaymentID,
	})
}

func (c *OrderController) respondToSubmitError(ctx *gin.Context, err error) {
	var decline *payment.DeclineError
	var recordErr *orders.RecordError

	switch {
	case errors.Is(err, orders.ErrInvalidInput):
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	case errors.As(err, &decline):
		// The provider's decline detail is the one external message we
		// surface verbatim.
		sendErrorResponse(ctx, http.StatusBadRequest, decline.Error())
	case errors.As(err, &recordErr):
		log.Printf("Order recording failed after charge: %v", recordErr)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgOrderNotRecorded)
	case errors.Is(err, payment.ErrNotReady):
		sendErrorResponse(ctx, http.StatusServiceUnavailable, msgPaymentUnavailable)
	default:
		log.Printf("Payment error: %v", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgPaymentFailed)
	}
}

// GetOrderByReceiptToken handles GET /orders/receipt/:receiptToken, the
// only consumer-facing lookup path.
func (c *OrderController) GetOrderByReceiptToken(ctx *gin.Context) {
	view, err := c.receipts.ByReceiptToken(ctx.Request.Context(), ctx.Param("receiptToken"))
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": msgOrderNotFound})
			return
		}
		log.Printf("Receipt lookup error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}
	ctx.JSON(http.StatusOK, view)
}

// GetOrderByID handles GET /orders/:orderId for authenticated internal
// use. The consumer confirmation flow never touches this path.
func (c *OrderController) GetOrderByID(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	view, err := c.receipts.ByID(ctx.Request.Context(), uint(orderID))
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": msgOrderNotFound})
			return
		}
		log.Printf("Order lookup error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}
	ctx.JSON(http.StatusOK, view)
}

type sendReceiptRequest struct {
	OrderData models.OrderView `json:"orderData"`
}

// SendReceipt handles POST /send-receipt. Sending is user-triggered and
// retryable by re-invoking; there is no dispatcher-side retry.
func (c *OrderController) SendReceipt(ctx *gin.Context) {
	var req sendReceiptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if req.OrderData.CustomerEmail == "" || req.OrderData.CustomerEmail == "N/A" {
		sendErrorResponse(ctx, http.StatusBadRequest, msgMissingOrderData)
		return
	}

	messageID, err := c.mailer.SendReceipt(req.OrderData)
	if err != nil {
		log.Printf("Error sending receipt email: %v", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to send email")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success":   true,
		"messageId": messageID,
	})
}

// GetPaymentConfig handles GET /payments/config: the public bootstrap
// data the hosted card widget needs.
func (c *OrderController) GetPaymentConfig(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.widget)
}
