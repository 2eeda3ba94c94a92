package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alaminute/backend-prints/internal/common"
	"github.com/alaminute/backend-prints/internal/obs"
	"github.com/alaminute/backend-prints/internal/pricing"
	"github.com/alaminute/backend-prints/internal/repo"
)

// Item is one configured print in a cart. Price is the quote taken when the
// item was added; it stays frozen until checkout.
type Item struct {
	ID       string  `json:"id"`
	Product  string  `json:"productSlug"`
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Variant  string  `json:"variant"`
	Size     string  `json:"size"`
	Frame    string  `json:"frame"`
	Glass    string  `json:"glass"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
}

// Cart is the redis-persisted cart document.
type Cart struct {
	ID        string    `json:"id"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type productGetter interface {
	GetBySlug(ctx context.Context, slug string) (repo.Product, error)
}

// Service owns the cart lifecycle. Carts live in redis under a TTL that is
// refreshed on every mutation.
type Service struct {
	client   *redis.Client
	products productGetter
	ttl      time.Duration
	now      func() time.Time
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Redis    *redis.Client
	Products productGetter
	TTL      time.Duration
	Now      func() time.Time
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Redis == nil {
		return nil, errors.New("cart: redis client is required")
	}
	if cfg.Products == nil {
		return nil, errors.New("cart: product getter is required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{client: cfg.Redis, products: cfg.Products, ttl: ttl, now: now}, nil
}

func cartKey(id string) string { return "cart:" + id }

// load hydrates a cart from redis. A missing key or a corrupt payload yields
// an empty cart under the same id, so a broken entry never blocks the buyer.
func (s *Service) load(ctx context.Context, id string) (Cart, error) {
	empty := Cart{ID: id, Items: []Item{}}
	data, err := s.client.Get(ctx, cartKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return empty, nil
		}
		return Cart{}, common.PersistenceError(fmt.Errorf("load cart: %w", err))
	}
	var cart Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return empty, nil
	}
	cart.ID = id
	if cart.Items == nil {
		cart.Items = []Item{}
	}
	return cart, nil
}

func (s *Service) persist(ctx context.Context, cart *Cart) error {
	cart.UpdatedAt = s.now().UTC()
	data, err := json.Marshal(cart)
	if err != nil {
		return common.PersistenceError(fmt.Errorf("encode cart: %w", err))
	}
	if err := s.client.Set(ctx, cartKey(cart.ID), data, s.ttl).Err(); err != nil {
		return common.PersistenceError(fmt.Errorf("persist cart: %w", err))
	}
	return nil
}

// Create allocates a new empty cart.
func (s *Service) Create(ctx context.Context) (Cart, error) {
	cart := Cart{ID: pricing.NewCartItemID(), Items: []Item{}}
	if err := s.persist(ctx, &cart); err != nil {
		return Cart{}, err
	}
	countMutation("create")
	return cart, nil
}

// Get returns the cart for the id. Unknown ids come back as empty carts.
func (s *Service) Get(ctx context.Context, id string) (Cart, error) {
	if id == "" {
		return Cart{}, common.ValidationError("cart id is required", nil)
	}
	return s.load(ctx, id)
}

// AddItemInput selects a product configuration to add.
type AddItemInput struct {
	ProductSlug string `json:"productSlug" validate:"required"`
	Size        string `json:"size" validate:"required"`
	Frame       string `json:"frame" validate:"required"`
	Glass       string `json:"glass" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,gte=1"`
}

// AddItem quotes the configuration and merges it into the cart. Two adds of
// the same configuration collapse into one line with a summed quantity.
func (s *Service) AddItem(ctx context.Context, cartID string, in AddItemInput) (Cart, error) {
	if cartID == "" {
		return Cart{}, common.ValidationError("cart id is required", nil)
	}
	cart, err := s.load(ctx, cartID)
	if err != nil {
		return Cart{}, err
	}

	product, err := s.products.GetBySlug(ctx, in.ProductSlug)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return Cart{}, common.NotFoundError("product not found")
		}
		return Cart{}, common.PersistenceError(fmt.Errorf("get product for cart: %w", err))
	}

	sku := pricing.SKU(product.Slug, in.Size, in.Frame, in.Glass)
	merged := false
	for i := range cart.Items {
		if cart.Items[i].SKU == sku {
			cart.Items[i].Quantity += in.Quantity
			merged = true
			break
		}
	}
	if !merged {
		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}
		cart.Items = append(cart.Items, Item{
			ID:       pricing.NewCartItemID(),
			Product:  product.Slug,
			SKU:      sku,
			Name:     product.Name,
			Variant:  pricing.VariantLabel(in.Size, in.Frame, in.Glass),
			Size:     in.Size,
			Frame:    in.Frame,
			Glass:    in.Glass,
			Price:    float64(pricing.Quote(product.BasePrice, in.Size, in.Frame, in.Glass)),
			Quantity: in.Quantity,
			Image:    image,
		})
	}
	if err := s.persist(ctx, &cart); err != nil {
		return Cart{}, err
	}
	countMutation("add")
	return cart, nil
}

// UpdateQuantity sets the quantity of a line. Zero or negative removes it.
func (s *Service) UpdateQuantity(ctx context.Context, cartID, itemID string, quantity int) (Cart, error) {
	if cartID == "" || itemID == "" {
		return Cart{}, common.ValidationError("cart id and item id are required", nil)
	}
	cart, err := s.load(ctx, cartID)
	if err != nil {
		return Cart{}, err
	}
	idx := -1
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Cart{}, common.NotFoundError("cart item not found")
	}
	if quantity <= 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	} else {
		cart.Items[idx].Quantity = quantity
	}
	if err := s.persist(ctx, &cart); err != nil {
		return Cart{}, err
	}
	countMutation("update")
	return cart, nil
}

// RemoveItem drops a line from the cart. Removing an absent line is a no-op.
func (s *Service) RemoveItem(ctx context.Context, cartID, itemID string) (Cart, error) {
	if cartID == "" || itemID == "" {
		return Cart{}, common.ValidationError("cart id and item id are required", nil)
	}
	cart, err := s.load(ctx, cartID)
	if err != nil {
		return Cart{}, err
	}
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			countMutation("remove")
			break
		}
	}
	if err := s.persist(ctx, &cart); err != nil {
		return Cart{}, err
	}
	return cart, nil
}

// Clear empties the cart but keeps the id alive.
func (s *Service) Clear(ctx context.Context, cartID string) error {
	if cartID == "" {
		return common.ValidationError("cart id is required", nil)
	}
	cart := Cart{ID: cartID, Items: []Item{}}
	if err := s.persist(ctx, &cart); err != nil {
		return err
	}
	countMutation("clear")
	return nil
}

// Summary totals the cart using the shared order math, so the number shown
// in the cart matches the number charged at checkout.
func (s *Service) Summary(ctx context.Context, cartID string) (pricing.Summary, error) {
	if cartID == "" {
		return pricing.Summary{}, common.ValidationError("cart id is required", nil)
	}
	cart, err := s.load(ctx, cartID)
	if err != nil {
		return pricing.Summary{}, err
	}
	lines := make([]pricing.LineItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		lines = append(lines, pricing.LineItem{Price: it.Price, Quantity: it.Quantity})
	}
	return pricing.Totals(lines), nil
}

func countMutation(kind string) {
	if obs.CartMutationsTotal != nil {
		obs.CartMutationsTotal.WithLabelValues(kind).Inc()
	}
}
