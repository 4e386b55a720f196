package woocommerce

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloversync/internal/logger"
	"cloversync/internal/models"

	"github.com/shopspring/decimal"
)

// Wire shapes of a WooCommerce REST v3 order payload, as delivered by the
// order webhooks.
type orderPayload struct {
	ID                 int64          `json:"id"`
	Number             string         `json:"number"`
	Total              string         `json:"total"`
	TotalTax           string         `json:"total_tax"`
	CustomerNote       string         `json:"customer_note"`
	PaymentMethodTitle string         `json:"payment_method_title"`
	DateCreatedGMT     string         `json:"date_created_gmt"`
	Billing            billing        `json:"billing"`
	ShippingLines      []shippingLine `json:"shipping_lines"`
	LineItems          []lineItem     `json:"line_items"`
}

type billing struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type shippingLine struct {
	MethodTitle string `json:"method_title"`
}

type lineItem struct {
	Name        string     `json:"name"`
	Quantity    int        `json:"quantity"`
	Total       string     `json:"total"`
	VariationID int64      `json:"variation_id"`
	MetaData    []itemMeta `json:"meta_data"`
}

type itemMeta struct {
	Key          string      `json:"key"`
	Value        interface{} `json:"value"`
	DisplayKey   string      `json:"display_key"`
	DisplayValue interface{} `json:"display_value"`
}

type Connector struct {
	logger *logger.Logger
}

func New(logger *logger.Logger) *Connector {
	return &Connector{logger: logger}
}

// ParseOrder converts a WooCommerce order payload into a SourceOrder. An
// order without line items is invalid for sync and rejected here; malformed
// optional fields are dropped instead.
func (c *Connector) ParseOrder(payload []byte) (*models.SourceOrder, error) {
	var raw orderPayload
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse order payload: %w", err)
	}

	if len(raw.LineItems) == 0 {
		return nil, fmt.Errorf("order #%d has no line items", raw.ID)
	}

	order := &models.SourceOrder{
		ID:                 strconv.FormatInt(raw.ID, 10),
		OrderNumber:        raw.Number,
		Total:              parseAmount(raw.Total),
		TaxAmount:          parseAmount(raw.TotalTax),
		PaymentMethodTitle: raw.PaymentMethodTitle,
		ShippingMethod:     shippingMethod(raw.ShippingLines),
		CustomerNote:       raw.CustomerNote,
		CreatedAt:          parseDate(raw.DateCreatedGMT),
		Customer: models.Customer{
			FirstName: raw.Billing.FirstName,
			LastName:  raw.Billing.LastName,
			Phone:     raw.Billing.Phone,
			Email:     raw.Billing.Email,
			Address: models.Address{
				Line1:   raw.Billing.Address1,
				Line2:   raw.Billing.Address2,
				City:    raw.Billing.City,
				State:   raw.Billing.State,
				Zip:     raw.Billing.Postcode,
				Country: raw.Billing.Country,
			},
		},
	}

	if raw.Number == "" {
		order.OrderNumber = order.ID
	}

	order.LineItems = make([]models.OrderLineItem, 0, len(raw.LineItems))
	for _, item := range raw.LineItems {
		order.LineItems = append(order.LineItems, models.OrderLineItem{
			Name:       item.Name,
			Total:      parseAmount(item.Total),
			Quantity:   item.Quantity,
			Variations: variationAttributes(item),
			AddOns:     addOns(item),
		})
	}

	return order, nil
}

// variationAttributes extracts product attribute meta ("pa_size" etc.) in
// the order it appears in the payload.
func variationAttributes(item lineItem) []models.VariationAttribute {
	if item.VariationID == 0 {
		return nil
	}

	var attrs []models.VariationAttribute
	for _, meta := range item.MetaData {
		if !strings.HasPrefix(meta.Key, "pa_") && !strings.HasPrefix(meta.Key, "attribute_pa_") {
			continue
		}
		value := metaValueString(meta.DisplayValue)
		if value == "" {
			value = metaValueString(meta.Value)
		}
		attrs = append(attrs, models.VariationAttribute{
			Name:  attributeLabel(strings.TrimPrefix(meta.Key, "attribute_")),
			Value: value,
		})
	}
	return attrs
}

// addOns extracts YITH product add-on meta. The add-on price is not carried
// on the order item meta, so it stays zero.
func addOns(item lineItem) []models.AddOn {
	var result []models.AddOn
	for _, meta := range item.MetaData {
		name := ""
		switch {
		case strings.HasPrefix(meta.Key, "yith_wapo_"):
			name = strings.TrimPrefix(meta.Key, "yith_wapo_")
		case strings.HasPrefix(meta.Key, "_ywapo_"):
			name = strings.TrimPrefix(meta.Key, "_ywapo_")
		default:
			continue
		}
		result = append(result, models.AddOn{
			Name:  name,
			Value: metaValueString(meta.Value),
		})
	}
	return result
}

// attributeLabel turns "pa_cup-size" into "Cup Size", mirroring how the
// store displays attribute names.
func attributeLabel(key string) string {
	label := strings.TrimPrefix(key, "pa_")
	label = strings.NewReplacer("-", " ", "_", " ").Replace(label)

	words := strings.Fields(label)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func metaValueString(v interface{}) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		return ""
	}
}

func parseAmount(s string) decimal.Decimal {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// shippingMethod joins the shipping line titles the way the order screen
// shows them.
func shippingMethod(lines []shippingLine) string {
	titles := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.MethodTitle != "" {
			titles = append(titles, line.MethodTitle)
		}
	}
	return strings.Join(titles, ", ")
}

func parseDate(s string) time.Time {
	for _, layout := range []string{"2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}
