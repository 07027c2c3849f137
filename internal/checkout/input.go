package checkout

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/internal/customers"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// Input is a validated COD checkout request.
type Input struct {
	Items         []ItemInput
	Customer      customers.Contact
	ShippingCents *int64
	Notes         *string
	// AdminID is set when an admin keys the order in manually.
	AdminID *uuid.UUID
}

// ItemInput is one cart line. Without a VariantID the product itself is the stock unit.
type ItemInput struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Qty       int
}

// Result is returned after the order commits.
type Result struct {
	OrderID uuid.UUID       `json:"orderId"`
	Order   orders.OrderDTO `json:"order"`
}

var validate = validator.New()

type stockKey struct {
	id      uuid.UUID
	variant bool
}

// line is one aggregated stock unit of the request.
type line struct {
	key       stockKey
	productID uuid.UUID
	variantID *uuid.UUID
	qty       int
}

func (in Input) validate() error {
	details := map[string]string{}
	if len(in.Items) == 0 {
		details["items"] = "must contain at least one item"
	}
	for i, item := range in.Items {
		if item.ProductID == uuid.Nil {
			details[itemField(i, "productId")] = "is required"
		}
		if item.Qty < 1 {
			details[itemField(i, "qty")] = "must be at least 1"
		}
	}
	if strings.TrimSpace(in.Customer.Name) == "" {
		details["customer.name"] = "is required"
	}
	if err := validate.Var(strings.TrimSpace(in.Customer.Email), "required,email"); err != nil {
		details["customer.email"] = "must be a valid email"
	}
	if customers.NormalizePhone(in.Customer.Phone) == "" {
		details["customer.phone"] = "is required"
	}
	if strings.TrimSpace(in.Customer.Address) == "" {
		details["customer.address"] = "is required"
	}
	if in.ShippingCents != nil && *in.ShippingCents < 0 {
		details["shippingCents"] = "must be at least 0"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

func itemField(i int, name string) string {
	return fmt.Sprintf("items[%d].%s", i, name)
}

// aggregate merges repeated stock units, keeping first-seen order.
func aggregate(items []ItemInput) []line {
	index := map[stockKey]int{}
	lines := make([]line, 0, len(items))
	for _, item := range items {
		key := stockKey{id: item.ProductID}
		if item.VariantID != nil {
			key = stockKey{id: *item.VariantID, variant: true}
		}
		if i, ok := index[key]; ok {
			lines[i].qty += item.Qty
			continue
		}
		index[key] = len(lines)
		lines = append(lines, line{key: key, productID: item.ProductID, variantID: item.VariantID, qty: item.Qty})
	}
	return lines
}
