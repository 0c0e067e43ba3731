package utils

import (
	"fmt"
	"time"

	"github.com/gladiator-burger/ordering-api/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptEmailItem is one pre-formatted line for the template.
type ReceiptEmailItem struct {
	Name      string
	Quantity  int
	LineTotal string
}

// ReceiptEmailData is everything the receipt template renders. All
// amounts arrive formatted; the template is a dumb collaborator.
type ReceiptEmailData struct {
	OrderNumber   string
	Date          string
	PaymentMethod string
	PickupTime    string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Address       string
	Items         []ReceiptEmailItem
	Subtotal      string
	Tax           string
	Total         string
}

// ReceiptMailer turns a resolved OrderView into a confirmation email.
type ReceiptMailer struct {
	mailer       *Mailer
	templatePath string
}

func NewReceiptMailer(mailer *Mailer, templatePath string) *ReceiptMailer {
	return &ReceiptMailer{mailer: mailer, templatePath: templatePath}
}

// SendReceipt mails the confirmation and returns a message ID for the
// caller's records. Failure is reported to the caller; re-invoking is
// the retry mechanism.
func (r *ReceiptMailer) SendReceipt(view models.OrderView) (string, error) {
	data := buildReceiptEmail(view)
	subject := "Order Confirmation - " + view.OrderNumber
	if err := r.mailer.Send(view.CustomerEmail, subject, data, r.templatePath); err != nil {
		return "", err
	}
	return uuid.NewString(), nil
}

func buildReceiptEmail(view models.OrderView) ReceiptEmailData {
	items := make([]ReceiptEmailItem, 0, len(view.Items))
	for _, item := range view.Items {
		lineTotal := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		items = append(items, ReceiptEmailItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			LineTotal: "$" + lineTotal.StringFixed(2),
		})
	}

	return ReceiptEmailData{
		OrderNumber:   view.OrderNumber,
		Date:          view.Date,
		PaymentMethod: view.PaymentMethod,
		PickupTime:    view.PickupTime.Format(time.Kitchen),
		CustomerName:  view.CustomerName,
		CustomerEmail: view.CustomerEmail,
		CustomerPhone: view.CustomerPhone,
		Address:       view.BillingAddress,
		Items:         items,
		Subtotal:      fmt.Sprintf("$%.2f", view.Subtotal),
		Tax:           fmt.Sprintf("$%.2f", view.Tax),
		Total:         fmt.Sprintf("$%.2f", view.Total),
	}
}
