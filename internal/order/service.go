package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/alaminute/backend-prints/internal/common"
	"github.com/alaminute/backend-prints/internal/obs"
	"github.com/alaminute/backend-prints/internal/pricing"
	"github.com/alaminute/backend-prints/internal/repo"
)

// maxOrderNoAttempts bounds how often a colliding order number is
// regenerated before the creation fails.
const maxOrderNoAttempts = 5

type orderStore interface {
	Insert(ctx context.Context, order *repo.Order) error
	FindByNumberAndEmail(ctx context.Context, orderNumber, email string) (repo.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (repo.Order, error)
	UpdateStatus(ctx context.Context, orderNumber, status string) error
}

// Service owns order creation, lookup and status transitions.
type Service struct {
	store orderStore
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Store orderStore
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Store == nil {
		return nil, errors.New("order: order store is required")
	}
	return &Service{store: cfg.Store}, nil
}

// ItemInput is one line of the order payload. Price is the frozen snapshot
// the client carried from the cart.
type ItemInput struct {
	ProductID string  `json:"productId"`
	SKU       string  `json:"sku" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Variant   string  `json:"variant"`
	Price     float64 `json:"price" validate:"required,gt=0"`
	Quantity  int     `json:"quantity" validate:"required,gte=1"`
	Image     string  `json:"image"`
}

// CustomerInput identifies the buyer.
type CustomerInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

// AddressInput is the shipping destination.
type AddressInput struct {
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" validate:"required"`
	District   string `json:"district" validate:"required"`
	PostalCode string `json:"postalCode"`
}

// CreateInput is the order creation payload.
type CreateInput struct {
	Items           []ItemInput   `json:"items" validate:"required,min=1,dive"`
	CustomerInfo    CustomerInput `json:"customerInfo" validate:"required"`
	ShippingAddress AddressInput  `json:"shippingAddress" validate:"required"`
	PaymentMethod   string        `json:"paymentMethod"`
	Notes           string        `json:"notes"`
}

// CreateOutput is the creation response body.
type CreateOutput struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
}

// Create persists a new order. Monetary totals are recomputed server-side
// from the submitted line snapshots; the client's own totals are ignored.
// Order numbers are random, so a duplicate-key insert triggers a bounded
// regenerate-and-retry loop.
func (s *Service) Create(ctx context.Context, in CreateInput) (CreateOutput, error) {
	items := make([]repo.OrderItem, 0, len(in.Items))
	lines := make([]pricing.LineItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, repo.OrderItem{
			ProductID: it.ProductID,
			SKU:       it.SKU,
			Name:      it.Name,
			Variant:   it.Variant,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Image:     it.Image,
		})
		lines = append(lines, pricing.LineItem{Price: it.Price, Quantity: it.Quantity})
	}
	summary := pricing.Totals(lines)

	order := repo.Order{
		CustomerInfo: repo.Customer{
			Name:  strings.TrimSpace(in.CustomerInfo.Name),
			Email: strings.ToLower(strings.TrimSpace(in.CustomerInfo.Email)),
			Phone: strings.TrimSpace(in.CustomerInfo.Phone),
		},
		ShippingAddress: repo.Address{
			Line1:      in.ShippingAddress.Line1,
			Line2:      in.ShippingAddress.Line2,
			City:       in.ShippingAddress.City,
			District:   in.ShippingAddress.District,
			PostalCode: in.ShippingAddress.PostalCode,
		},
		Items:         items,
		Subtotal:      summary.Subtotal,
		ShippingCost:  summary.Shipping,
		Total:         summary.Total,
		Status:        repo.OrderStatusPending,
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
	}

	var insertErr error
	for attempt := 0; attempt < maxOrderNoAttempts; attempt++ {
		order.OrderNumber = pricing.OrderNo()
		insertErr = s.store.Insert(ctx, &order)
		if insertErr == nil {
			countOrderResult("success")
			return CreateOutput{OrderID: order.ID.Hex(), OrderNumber: order.OrderNumber}, nil
		}
		if !errors.Is(insertErr, repo.ErrDuplicateKey) {
			break
		}
		if obs.OrderNoRetriesTotal != nil {
			obs.OrderNoRetriesTotal.Inc()
		}
	}
	countOrderResult("error")
	return CreateOutput{}, common.PersistenceError(fmt.Errorf("insert order: %w", insertErr))
}

// Lookup fetches an order by number, gated on the buyer's email.
func (s *Service) Lookup(ctx context.Context, orderNumber, email string) (repo.Order, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	email = strings.ToLower(strings.TrimSpace(email))
	if orderNumber == "" || email == "" {
		return repo.Order{}, common.ValidationError("orderNumber and email are required", nil)
	}
	order, err := s.store.FindByNumberAndEmail(ctx, orderNumber, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return repo.Order{}, common.NotFoundError("order not found")
		}
		return repo.Order{}, common.PersistenceError(fmt.Errorf("find order: %w", err))
	}
	return order, nil
}

// legalTransitions encodes the fulfilment state machine. Cancellation is
// allowed from every non-terminal state, including shipped; delivered and
// cancelled are terminal.
var legalTransitions = map[string][]string{
	repo.OrderStatusPending:    {repo.OrderStatusPaid, repo.OrderStatusCancelled},
	repo.OrderStatusPaid:       {repo.OrderStatusProcessing, repo.OrderStatusCancelled},
	repo.OrderStatusProcessing: {repo.OrderStatusShipped, repo.OrderStatusCancelled},
	repo.OrderStatusShipped:    {repo.OrderStatusDelivered, repo.OrderStatusCancelled},
}

func transitionAllowed(from, to string) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdateStatus transitions an order along the fulfilment state machine.
func (s *Service) UpdateStatus(ctx context.Context, orderNumber, status string) error {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return common.ValidationError("orderNumber is required", nil)
	}
	switch status {
	case repo.OrderStatusPaid, repo.OrderStatusProcessing, repo.OrderStatusShipped,
		repo.OrderStatusDelivered, repo.OrderStatusCancelled:
	default:
		return common.ValidationError("unsupported status", map[string]any{"status": status})
	}
	current, err := s.store.GetByNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return common.NotFoundError("order not found")
		}
		return common.PersistenceError(fmt.Errorf("get order: %w", err))
	}
	if !transitionAllowed(current.Status, status) {
		return &common.AppError{
			Code:       "INVALID_STATE",
			Message:    fmt.Sprintf("cannot transition from %s to %s", current.Status, status),
			HTTPStatus: http.StatusConflict,
		}
	}
	if err := s.store.UpdateStatus(ctx, orderNumber, status); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return common.NotFoundError("order not found")
		}
		return common.PersistenceError(fmt.Errorf("update order status: %w", err))
	}
	return nil
}

func countOrderResult(result string) {
	if obs.OrdersCreatedTotal != nil {
		obs.OrdersCreatedTotal.WithLabelValues(result).Inc()
	}
}
