package clover

import (
	"strings"

	"cloversync/internal/models"

	"github.com/shopspring/decimal"
)

const orderTitlePrefix = "WC Order #"

var oneHundred = decimal.NewFromInt(100)

// Translator converts a WooCommerce order into the Clover order payload.
// Translation is pure and never fails: malformed optional fields are
// omitted, not rejected.
type Translator struct {
	roundCents bool
}

// NewTranslator keeps the historical truncate-toward-zero cent conversion.
// Pass roundCents=true to round half away from zero instead; the Clover-side
// reconciliation has only ever seen truncated amounts, so rounding stays
// opt-in.
func NewTranslator(roundCents bool) *Translator {
	return &Translator{roundCents: roundCents}
}

// Translate maps the order into Clover's schema. The order-level note is
// composed by the caller and passed through unchanged.
func (t *Translator) Translate(order *models.SourceOrder, note string) *Order {
	elements := make([]LineItem, 0, len(order.LineItems))
	for _, item := range order.LineItems {
		elements = append(elements, LineItem{
			Name:    item.Name,
			Price:   t.toCents(unitPrice(item)),
			UnitQty: item.Quantity,
			Note:    itemNote(item),
		})
	}

	out := &Order{
		State:             "open",
		Title:             orderTitlePrefix + order.OrderNumber,
		Note:              note,
		TaxRemoved:        false,
		ManualTransaction: true,
		GroupLineItems:    false,
		LineItems:         LineItems{Elements: elements},
		Attributes: []Attribute{
			{Name: "woocommerce_order_id", Value: order.ID},
			{Name: "order_number", Value: order.OrderNumber},
			{Name: "payment_method", Value: order.PaymentMethodTitle},
			{Name: "shipping_method", Value: order.ShippingMethod},
			{Name: "order_date", Value: order.CreatedAt.Format("2006-01-02 15:04:05")},
		},
	}

	if order.Customer.FirstName != "" || order.Customer.LastName != "" {
		info := &CustomerInfo{
			FirstName:        order.Customer.FirstName,
			LastName:         order.Customer.LastName,
			PhoneNumber:      order.Customer.Phone,
			EmailAddress:     order.Customer.Email,
			MarketingAllowed: false,
		}
		if order.Customer.Address.Line1 != "" {
			info.Address = &Address{
				Address1: order.Customer.Address.Line1,
				Address2: order.Customer.Address.Line2,
				City:     order.Customer.Address.City,
				State:    order.Customer.Address.State,
				Zip:      order.Customer.Address.Zip,
				Country:  order.Customer.Address.Country,
			}
		}
		out.CustomerInfo = info
	}

	return out
}

// unitPrice is the average price per unit, item total divided by quantity
// clamped to at least 1. The catalog price is not available on the order
// line, so the average is what gets sent.
func unitPrice(item models.OrderLineItem) decimal.Decimal {
	qty := item.Quantity
	if qty < 1 {
		qty = 1
	}
	return item.Total.Div(decimal.NewFromInt(int64(qty)))
}

func (t *Translator) toCents(amount decimal.Decimal) int64 {
	cents := amount.Mul(oneHundred)
	if t.roundCents {
		return cents.Round(0).IntPart()
	}
	// IntPart truncates toward zero, matching the original cast-to-int
	// conversion.
	return cents.IntPart()
}

func itemNote(item models.OrderLineItem) string {
	parts := make([]string, 0, len(item.Variations)+len(item.AddOns))
	for _, v := range item.Variations {
		parts = append(parts, v.Name+": "+v.Value)
	}
	for _, a := range item.AddOns {
		parts = append(parts, a.Name+": "+a.Value)
	}
	return strings.Join(parts, ", ")
}

// ComposeOrderNote builds the free-text order note from shipping method,
// payment method and customer note, skipping empty parts, in that order.
func ComposeOrderNote(order *models.SourceOrder) string {
	parts := make([]string, 0, 3)
	if order.ShippingMethod != "" {
		parts = append(parts, "Shipping: "+order.ShippingMethod)
	}
	if order.PaymentMethodTitle != "" {
		parts = append(parts, "Payment: "+order.PaymentMethodTitle)
	}
	if order.CustomerNote != "" {
		parts = append(parts, "Customer note: "+order.CustomerNote)
	}
	return strings.Join(parts, " | ")
}
