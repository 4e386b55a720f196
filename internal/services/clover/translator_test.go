package clover_test

import (
	"testing"
	"time"

	"cloversync/internal/models"
	"cloversync/internal/services/clover"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func fakeLineItem() models.OrderLineItem {
	qty := gofakeit.Number(1, 5)
	return models.OrderLineItem{
		Name:     gofakeit.ProductName(),
		Total:    decimal.NewFromFloat(gofakeit.Price(1, 200)),
		Quantity: qty,
	}
}

func fakeOrder(itemCount int) *models.SourceOrder {
	items := make([]models.OrderLineItem, 0, itemCount)
	for range itemCount {
		items = append(items, fakeLineItem())
	}

	return &models.SourceOrder{
		ID:          gofakeit.UUID(),
		OrderNumber: gofakeit.DigitN(5),
		Customer: models.Customer{
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			Phone:     gofakeit.Phone(),
			Email:     gofakeit.Email(),
			Address: models.Address{
				Line1:   gofakeit.Street(),
				City:    gofakeit.City(),
				State:   gofakeit.State(),
				Zip:     gofakeit.Zip(),
				Country: "US",
			},
		},
		LineItems:          items,
		Total:              decimal.NewFromFloat(gofakeit.Price(1, 500)),
		PaymentMethodTitle: "Credit Card",
		ShippingMethod:     "Standard",
		CreatedAt:          time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestTranslate_LineItemCountAndOrder(t *testing.T) {
	translator := clover.NewTranslator(false)

	order := fakeOrder(gofakeit.Number(1, 8))
	out := translator.Translate(order, "")

	require.Len(t, out.LineItems.Elements, len(order.LineItems))
	for i, element := range out.LineItems.Elements {
		require.Equal(t, order.LineItems[i].Name, element.Name)
		require.Equal(t, order.LineItems[i].Quantity, element.UnitQty)
	}
}

func TestTranslate_FixedOrderFields(t *testing.T) {
	translator := clover.NewTranslator(false)

	order := fakeOrder(1)
	order.OrderNumber = "1042"
	out := translator.Translate(order, "some note")

	require.Equal(t, "open", out.State)
	require.Equal(t, "WC Order #1042", out.Title)
	require.Equal(t, "some note", out.Note)
	require.False(t, out.TaxRemoved)
	require.True(t, out.ManualTransaction)
	require.False(t, out.GroupLineItems)
}

func TestTranslate_CentsTruncation(t *testing.T) {
	translator := clover.NewTranslator(false)

	order := fakeOrder(1)
	order.LineItems[0].Total = decimal.RequireFromString("19.999")
	order.LineItems[0].Quantity = 1

	out := translator.Translate(order, "")
	require.Equal(t, int64(1999), out.LineItems.Elements[0].Price)
}

func TestTranslate_CentsRoundingMode(t *testing.T) {
	translator := clover.NewTranslator(true)

	order := fakeOrder(1)
	order.LineItems[0].Total = decimal.RequireFromString("19.999")
	order.LineItems[0].Quantity = 1

	out := translator.Translate(order, "")
	require.Equal(t, int64(2000), out.LineItems.Elements[0].Price)
}

func TestTranslate_UnitPriceIsAverage(t *testing.T) {
	translator := clover.NewTranslator(false)

	order := fakeOrder(1)
	order.LineItems[0].Total = decimal.RequireFromString("30.00")
	order.LineItems[0].Quantity = 3

	out := translator.Translate(order, "")
	require.Equal(t, int64(1000), out.LineItems.Elements[0].Price)
	require.Equal(t, 3, out.LineItems.Elements[0].UnitQty)
}

func TestTranslate_ZeroQuantityClampedForUnitPrice(t *testing.T) {
	translator := clover.NewTranslator(false)

	order := fakeOrder(1)
	order.LineItems[0].Total = decimal.RequireFromString("12.50")
	order.LineItems[0].Quantity = 0

	out := translator.Translate(order, "")
	require.Equal(t, int64(1250), out.LineItems.Elements[0].Price)
}

func TestTranslate_CustomerInfoOmittedWhenNamesEmpty(t *testing.T) {
	translator := clover.NewTranslator(false)

	order := fakeOrder(1)
	order.Customer.FirstName = ""
	order.Customer.LastName = ""

	out := translator.Translate(order, "")
	require.Nil(t, out.CustomerInfo)
}

func TestTranslate_AddressOmittedWhenLine1Empty(t *testing.T) {
	translator := clover.NewTranslator(false)

	order := fakeOrder(1)
	order.Customer.FirstName = "Jane"
	order.Customer.LastName = ""
	order.Customer.Address.Line1 = ""

	out := translator.Translate(order, "")
	require.NotNil(t, out.CustomerInfo)
	require.Equal(t, "Jane", out.CustomerInfo.FirstName)
	require.Nil(t, out.CustomerInfo.Address)
}

func TestTranslate_ItemNoteFromVariationsAndAddOns(t *testing.T) {
	translator := clover.NewTranslator(false)

	order := fakeOrder(1)
	order.LineItems[0].Variations = []models.VariationAttribute{
		{Name: "Size", Value: "Large"},
		{Name: "Milk", Value: "Oat"},
	}
	order.LineItems[0].AddOns = []models.AddOn{
		{Name: "extra-shot", Value: "yes"},
	}

	out := translator.Translate(order, "")
	require.Equal(t, "Size: Large, Milk: Oat, extra-shot: yes", out.LineItems.Elements[0].Note)
}

func TestTranslate_EmptyItemNote(t *testing.T) {
	translator := clover.NewTranslator(false)

	order := fakeOrder(1)
	out := translator.Translate(order, "")
	require.Empty(t, out.LineItems.Elements[0].Note)
}

func TestTranslate_AttributeOrder(t *testing.T) {
	translator := clover.NewTranslator(false)

	order := fakeOrder(1)
	order.ID = "77"
	order.OrderNumber = "1077"
	order.PaymentMethodTitle = "Cash on delivery"
	order.ShippingMethod = "Local pickup"

	out := translator.Translate(order, "")
	require.Equal(t, []clover.Attribute{
		{Name: "woocommerce_order_id", Value: "77"},
		{Name: "order_number", Value: "1077"},
		{Name: "payment_method", Value: "Cash on delivery"},
		{Name: "shipping_method", Value: "Local pickup"},
		{Name: "order_date", Value: "2024-03-15 10:30:00"},
	}, out.Attributes)
}

func TestComposeOrderNote(t *testing.T) {
	testCases := []struct {
		desc     string
		shipping string
		payment  string
		note     string
		expected string
	}{
		{
			desc:     "all parts",
			shipping: "Standard",
			payment:  "Credit Card",
			note:     "Ring the bell",
			expected: "Shipping: Standard | Payment: Credit Card | Customer note: Ring the bell",
		},
		{
			desc:     "payment missing",
			shipping: "Standard",
			note:     "Leave at door",
			expected: "Shipping: Standard | Customer note: Leave at door",
		},
		{
			desc:     "all empty",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			order := &models.SourceOrder{
				ShippingMethod:     tc.shipping,
				PaymentMethodTitle: tc.payment,
				CustomerNote:       tc.note,
			}
			require.Equal(t, tc.expected, clover.ComposeOrderNote(order))
		})
	}
}
