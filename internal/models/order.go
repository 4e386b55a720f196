package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceOrder is the read-only view of a WooCommerce order as received
// from the store, normalized for the Clover sync workflow.
type SourceOrder struct {
	ID                 string          `json:"id"`
	OrderNumber        string          `json:"order_number"`
	Customer           Customer        `json:"customer"`
	LineItems          []OrderLineItem `json:"line_items"`
	Total              decimal.Decimal `json:"total"`
	TaxAmount          decimal.Decimal `json:"tax_amount"`
	PaymentMethodTitle string          `json:"payment_method_title"`
	ShippingMethod     string          `json:"shipping_method"`
	CustomerNote       string          `json:"customer_note"`
	CreatedAt          time.Time       `json:"created_at"`
}

type Customer struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email"`
	Address   Address `json:"address"`
}

type Address struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// OrderLineItem carries the item total rather than a catalog price; the
// translator derives the per-unit price from Total and Quantity.
type OrderLineItem struct {
	Name       string               `json:"name"`
	Total      decimal.Decimal      `json:"total"`
	Quantity   int                  `json:"quantity"`
	Variations []VariationAttribute `json:"variations"`
	AddOns     []AddOn              `json:"add_ons"`
}

// VariationAttribute preserves the order attributes appeared in, which the
// item note composition depends on.
type VariationAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type AddOn struct {
	Name  string          `json:"name"`
	Value string          `json:"value"`
	Price decimal.Decimal `json:"price"`
}
