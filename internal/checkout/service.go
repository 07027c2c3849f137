package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/activity"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/customers"
	"github.com/angelmondragon/storefront-backend/internal/notifications"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/money"
	"github.com/angelmondragon/storefront-backend/pkg/push"
)

// LowStockThreshold is the exclusive upper bound that triggers a low-stock alert.
const LowStockThreshold = 5

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type dispatcher interface {
	Dispatch(ctx context.Context, evt notifications.Event) (notifications.Event, error)
}

// Service executes COD checkout.
type Service interface {
	Execute(ctx context.Context, input Input) (*Result, error)
}

// ServiceParams groups the checkout dependencies.
type ServiceParams struct {
	TX         txRunner
	Catalog    *catalog.Repository
	Customers  *customers.Repository
	Orders     orders.Repository
	Dispatcher dispatcher
	Push       push.Notifier
	Activity   activity.Recorder
	Metrics    *metrics.CheckoutMetrics
	Logger     *logger.Logger
	Config     config.CheckoutConfig
	// Dev surfaces push failures at warn level instead of debug.
	Dev bool
}

type service struct {
	tx         txRunner
	catalog    *catalog.Repository
	customers  *customers.Repository
	orders     orders.Repository
	dispatcher dispatcher
	push       push.Notifier
	activity   activity.Recorder
	metrics    *metrics.CheckoutMetrics
	logg       *logger.Logger
	cfg        config.CheckoutConfig
	dev        bool
	now        func() time.Time
}

// NewService builds the checkout service.
func NewService(p ServiceParams) (Service, error) {
	if p.TX == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if p.Catalog == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if p.Customers == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	if p.Orders == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if p.Dispatcher == nil {
		return nil, fmt.Errorf("notification dispatcher required")
	}
	if p.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if p.Push == nil {
		p.Push = push.Noop{}
	}
	if p.Activity == nil {
		p.Activity = activity.Nop{}
	}
	return &service{
		tx:         p.TX,
		catalog:    p.Catalog,
		customers:  p.Customers,
		orders:     p.Orders,
		dispatcher: p.Dispatcher,
		push:       p.Push,
		activity:   p.Activity,
		metrics:    p.Metrics,
		logg:       p.Logger,
		cfg:        p.Config,
		dev:        p.Dev,
		now:        time.Now,
	}, nil
}

func (s *service) Execute(ctx context.Context, input Input) (*Result, error) {
	started := s.now()
	result, err := s.execute(ctx, input)
	s.metrics.Observe(resultLabel(err), s.now().Sub(started))
	return result, err
}

func (s *service) execute(ctx context.Context, input Input) (*Result, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	lines := aggregate(input.Items)
	items, err := s.price(ctx, lines)
	if err != nil {
		return nil, err
	}

	var subtotal int64
	for _, item := range items {
		subtotal += item.LineTotalCents
	}
	shipping := s.cfg.DefaultShippingCents
	if input.ShippingCents != nil {
		shipping = *input.ShippingCents
	}
	const tax = 0
	total := subtotal + tax + shipping

	order := &models.Order{
		Items:         items,
		SubtotalCents: subtotal,
		TaxCents:      tax,
		ShippingCents: shipping,
		TotalCents:    total,
		Status:        enums.OrderStatusPending,
		PaymentMethod: enums.PaymentMethodCOD,
		CustomerNotes: trimmed(input.Notes),
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		catalogRepo := s.catalog.WithTx(tx)
		for _, l := range lines {
			ok, err := s.decrement(ctx, catalogRepo, l)
			if err != nil {
				return unexpected(err, "decrement stock")
			}
			if !ok {
				return insufficientStock(l, 0, "stock changed during checkout")
			}
		}

		customer, err := s.customers.WithTx(tx).RecordOrder(ctx, input.Customer, total)
		if err != nil {
			return unexpected(err, "upsert customer")
		}
		order.CustomerID = customer.ID
		order.Customer = customer

		if err := s.orders.WithTx(tx).Create(ctx, order); err != nil {
			return unexpected(err, "create order")
		}
		return nil
	})
	if err != nil {
		return nil, unexpected(err, "checkout transaction")
	}

	ctx = s.logg.WithOrderID(ctx, order.ID.String())
	s.metrics.AddRevenue(total)
	s.logg.Info(s.logg.WithField(ctx, "total_cents", total), "checkout.order_created")

	s.afterCommit(ctx, order, lines, input)

	return &Result{OrderID: order.ID, Order: orders.NewOrderDTO(order)}, nil
}

// price loads every stock unit, checks availability and snapshots the lines.
// Nothing is written here, so a failure leaves the database untouched.
func (s *service) price(ctx context.Context, lines []line) ([]models.OrderItem, error) {
	var variantIDs, productIDs []uuid.UUID
	for _, l := range lines {
		productIDs = append(productIDs, l.productID)
		if l.variantID != nil {
			variantIDs = append(variantIDs, *l.variantID)
		}
	}

	variants, err := s.catalog.FindVariantsByIDs(ctx, variantIDs)
	if err != nil {
		return nil, unexpected(err, "load variants")
	}
	products, err := s.catalog.FindProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, unexpected(err, "load products")
	}
	variantByID := make(map[uuid.UUID]models.Variant, len(variants))
	for _, v := range variants {
		variantByID[v.ID] = v
	}
	productByID := make(map[uuid.UUID]models.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		product, ok := productByID[l.productID]
		if !ok || !product.IsActive {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithDetails(map[string]any{"productId": l.productID.String()})
		}

		item := models.OrderItem{
			ProductID:      product.ID,
			SKU:            product.SKU,
			Title:          product.Title,
			UnitPriceCents: product.PriceCents,
			Qty:            l.qty,
			Image:          firstImage(product.Images),
		}
		available := product.Stock

		if l.variantID != nil {
			variant, ok := variantByID[*l.variantID]
			if !ok || variant.ProductID != product.ID {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found").
					WithDetails(map[string]any{"productId": l.productID.String(), "variantId": l.variantID.String()})
			}
			id := variant.ID
			item.VariantID = &id
			item.SKU = variant.SKU
			item.Color = variant.Color
			item.Size = variant.Size
			item.UnitPriceCents = variant.PriceCents
			if img := firstImage(variant.Images); img != nil {
				item.Image = img
			}
			available = variant.Stock
		}

		if l.qty > available {
			return nil, insufficientStock(l, available, "insufficient stock")
		}
		item.LineTotalCents = item.UnitPriceCents * int64(item.Qty)
		items = append(items, item)
	}
	return items, nil
}

func (s *service) decrement(ctx context.Context, repo *catalog.Repository, l line) (bool, error) {
	if l.key.variant {
		return repo.DecrementVariantStock(ctx, l.key.id, l.qty)
	}
	return repo.DecrementProductStock(ctx, l.key.id, l.qty)
}

// afterCommit runs the best-effort side effects. Their failures are logged
// and counted but never change the checkout outcome.
func (s *service) afterCommit(ctx context.Context, order *models.Order, lines []line, input Input) {
	var errs error

	if err := s.alertLowStock(ctx, lines); err != nil {
		errs = multierr.Append(errs, err)
	}

	number := orders.Number(order.ID)
	link := "/admin/orders/" + order.ID.String()
	body := fmt.Sprintf("%s placed %s for %s", strings.TrimSpace(input.Customer.Name), number, money.Format(order.TotalCents, s.cfg.Currency))
	total := order.TotalCents
	if _, err := s.dispatcher.Dispatch(ctx, notifications.Event{
		Type:       enums.NotificationTypeNewOrder,
		Title:      "New order " + number,
		Message:    body,
		Link:       &link,
		OrderID:    &order.ID,
		TotalCents: &total,
	}); err != nil {
		s.metrics.IncSideEffectFailure("notify_new_order")
		errs = multierr.Append(errs, fmt.Errorf("new-order notification: %w", err))
	}

	if err := s.push.Send(ctx, push.Message{
		Title: "New order " + number,
		Body:  body,
		URL:   link,
		Tag:   "order-" + order.ID.String(),
		Data:  map[string]string{"orderId": order.ID.String()},
	}); err != nil {
		s.metrics.IncSideEffectFailure("push")
		if s.dev {
			s.logg.WarnErr(ctx, "checkout.push_failed", err)
		} else {
			s.logg.Debug(s.logg.WithField(ctx, "error", err.Error()), "checkout.push_failed")
		}
	}

	if input.AdminID != nil {
		s.activity.Record(ctx, activity.Entry{
			AdminID:    input.AdminID,
			Action:     enums.ActivityOrderCreated,
			EntityType: enums.EntityOrder,
			EntityID:   &order.ID,
			Summary:    fmt.Sprintf("Manual order %s created for %s", number, strings.TrimSpace(input.Customer.Name)),
		})
	}

	for _, err := range multierr.Errors(errs) {
		s.logg.WarnErr(ctx, "checkout.side_effect_failed", err)
	}
}

func (s *service) alertLowStock(ctx context.Context, lines []line) error {
	var ids []uuid.UUID
	for _, l := range lines {
		if l.key.variant {
			ids = append(ids, l.key.id)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	variants, err := s.catalog.FindVariantsByIDs(ctx, ids)
	if err != nil {
		s.metrics.IncSideEffectFailure("notify_low_stock")
		return fmt.Errorf("re-read variants: %w", err)
	}

	var errs error
	for _, v := range variants {
		if v.Stock <= 0 || v.Stock >= LowStockThreshold {
			continue
		}
		variantID := v.ID
		stock := v.Stock
		link := "/admin/products/" + v.ProductID.String()
		s.metrics.IncLowStock()
		if _, err := s.dispatcher.Dispatch(ctx, notifications.Event{
			Type:      enums.NotificationTypeLowStock,
			Title:     "Low stock: " + v.SKU,
			Message:   fmt.Sprintf("Only %d left of %s", v.Stock, v.SKU),
			Link:      &link,
			VariantID: &variantID,
			Stock:     &stock,
		}); err != nil {
			s.metrics.IncSideEffectFailure("notify_low_stock")
			errs = multierr.Append(errs, fmt.Errorf("low-stock notification %s: %w", v.SKU, err))
		}
	}
	return errs
}

func insufficientStock(l line, available int, message string) error {
	details := map[string]any{
		"productId": l.productID.String(),
		"requested": l.qty,
		"available": available,
	}
	if l.variantID != nil {
		details["variantId"] = l.variantID.String()
	}
	return pkgerrors.New(pkgerrors.CodeInsufficientStock, message).WithDetails(details)
}

// unexpected keeps coded errors as they are and maps everything else to a 500.
func unexpected(err error, message string) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, message)
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return metrics.ResultCreated
	case pkgerrors.HasCode(err, pkgerrors.CodeValidation):
		return metrics.ResultValidation
	case pkgerrors.HasCode(err, pkgerrors.CodeInsufficientStock):
		return metrics.ResultInsufficientStock
	case pkgerrors.HasCode(err, pkgerrors.CodeNotFound):
		return metrics.ResultNotFound
	default:
		return metrics.ResultError
	}
}

func firstImage(images []string) *string {
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			return &img
		}
	}
	return nil
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return nil
	}
	return &v
}
