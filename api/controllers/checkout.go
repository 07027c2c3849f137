package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	checkoutsvc "github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/internal/customers"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

const maxNotesLength = 1000

type checkoutRequest struct {
	Items         []checkoutItemRequest   `json:"items" validate:"required,min=1,dive"`
	Customer      checkoutCustomerRequest `json:"customer"`
	ShippingCents *int64                  `json:"shippingCents,omitempty" validate:"omitempty,min=0"`
	Notes         *string                 `json:"notes,omitempty"`
}

type checkoutItemRequest struct {
	ProductID string  `json:"productId" validate:"required,uuid"`
	VariantID *string `json:"variantId,omitempty" validate:"omitempty,uuid"`
	Qty       int     `json:"qty" validate:"min=1"`
}

type checkoutCustomerRequest struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   string  `json:"phone" validate:"required,max=32"`
	Address string  `json:"address" validate:"required,max=500"`
	City    *string `json:"city,omitempty" validate:"omitempty,max=100"`
}

// CheckoutCOD places a cash-on-delivery order from the storefront cart.
func CheckoutCOD(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return placeOrder(svc, logg, false)
}

// AdminCreateOrder keys in a manual order on behalf of a customer.
func AdminCreateOrder(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return placeOrder(svc, logg, true)
}

func placeOrder(svc checkoutsvc.Service, logg *logger.Logger, manual bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := payload.toInput()
		if manual {
			input.AdminID = middleware.AdminIDPtrFromContext(r.Context())
			if input.AdminID == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "admin context missing"))
				return
			}
		}

		result, err := svc.Execute(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// toInput runs after validation, so the uuid strings are known to parse.
func (p checkoutRequest) toInput() checkoutsvc.Input {
	items := make([]checkoutsvc.ItemInput, 0, len(p.Items))
	for _, item := range p.Items {
		in := checkoutsvc.ItemInput{
			ProductID: uuid.MustParse(item.ProductID),
			Qty:       item.Qty,
		}
		if item.VariantID != nil {
			id := uuid.MustParse(*item.VariantID)
			in.VariantID = &id
		}
		items = append(items, in)
	}

	var notes *string
	if p.Notes != nil {
		trimmed := validators.SanitizeString(*p.Notes, maxNotesLength)
		notes = &trimmed
	}

	return checkoutsvc.Input{
		Items: items,
		Customer: customers.Contact{
			Name:    p.Customer.Name,
			Email:   p.Customer.Email,
			Phone:   p.Customer.Phone,
			Address: p.Customer.Address,
			City:    p.Customer.City,
		},
		ShippingCents: p.ShippingCents,
		Notes:         notes,
	}
}
