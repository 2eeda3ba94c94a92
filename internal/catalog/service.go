package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/alaminute/backend-prints/internal/common"
	"github.com/alaminute/backend-prints/internal/pricing"
	"github.com/alaminute/backend-prints/internal/repo"
)

type productStore interface {
	Find(ctx context.Context, filter repo.ProductFilter, skip, limit int64) ([]repo.Product, error)
	Count(ctx context.Context, filter repo.ProductFilter) (int64, error)
	GetBySlug(ctx context.Context, slug string) (repo.Product, error)
	Insert(ctx context.Context, product *repo.Product) error
}

// Service orchestrates product queries, variant quoting, and caching.
type Service struct {
	store        productStore
	cache        *Cache
	defaultLimit int
	maxLimit     int
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Store        productStore
	Cache        *Cache
	DefaultLimit int
	MaxLimit     int
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Store == nil {
		return nil, errors.New("catalog: product store is required")
	}
	defaultLimit := cfg.DefaultLimit
	if defaultLimit < 1 {
		defaultLimit = 50
	}
	maxLimit := cfg.MaxLimit
	if maxLimit < 1 {
		maxLimit = 100
	}
	if defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}
	return &Service{
		store:        cfg.Store,
		cache:        cfg.Cache,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}, nil
}

// ListParams captures filters for product listing.
type ListParams struct {
	Category string
	New      bool
	Featured bool
	Page     int
	Limit    int
}

// ListResult contains list data and pagination metadata.
type ListResult struct {
	Products []repo.Product
	Total    int64
	Page     int
	Limit    int
}

// VariantQuote is the configurator payload for one stored variant.
type VariantQuote struct {
	SKU   string `json:"sku"`
	Size  string `json:"size"`
	Frame string `json:"frame"`
	Glass string `json:"glass"`
	Label string `json:"label"`
	Price int64  `json:"price"`
	Stock int    `json:"stock"`
}

// Detail aggregates a product with its option catalogs and per-variant quotes.
type Detail struct {
	Product repo.Product   `json:"product"`
	Options OptionCatalogs `json:"options"`
	Quotes  []VariantQuote `json:"quotes"`
}

// OptionCatalogs exposes the static option tables to the configurator UI.
type OptionCatalogs struct {
	Sizes        []pricing.SizeOption  `json:"sizes"`
	Frames       []pricing.FrameOption `json:"frames"`
	Glass        []pricing.GlassOption `json:"glass"`
	Passepartout []string              `json:"passepartout"`
}

// ParseListParams normalises raw query values into strongly typed filters.
func (s *Service) ParseListParams(values url.Values) (ListParams, error) {
	params := ListParams{
		Page:  1,
		Limit: s.defaultLimit,
	}
	params.Category = strings.TrimSpace(values.Get("category"))
	params.New = strings.EqualFold(strings.TrimSpace(values.Get("new")), "true")
	params.Featured = strings.EqualFold(strings.TrimSpace(values.Get("featured")), "true")

	if v := strings.TrimSpace(values.Get("page")); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return params, badRequest("page", "page must be a positive integer", err)
		}
		params.Page = page
	}
	if v := strings.TrimSpace(values.Get("limit")); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return params, badRequest("limit", "limit must be a positive integer", err)
		}
		params.Limit = limit
	}
	if params.Limit > s.maxLimit {
		params.Limit = s.maxLimit
	}
	return params, nil
}

// List returns active products matching the filters, newest first.
func (s *Service) List(ctx context.Context, params ListParams) (ListResult, error) {
	key, cacheable := s.listCacheKey(params)
	if cacheable && s.cache != nil {
		var cached cachedList
		if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return ListResult{Products: cached.Products, Total: cached.Total, Page: params.Page, Limit: params.Limit}, nil
		}
	}

	filter := repo.ProductFilter{Category: params.Category, New: params.New, Featured: params.Featured}
	total, err := s.store.Count(ctx, filter)
	if err != nil {
		return ListResult{}, common.PersistenceError(fmt.Errorf("count products: %w", err))
	}
	skip := int64(params.Page-1) * int64(params.Limit)
	if skip < 0 {
		skip = 0
	}
	products, err := s.store.Find(ctx, filter, skip, int64(params.Limit))
	if err != nil {
		return ListResult{}, common.PersistenceError(fmt.Errorf("list products: %w", err))
	}
	result := ListResult{Products: products, Total: total, Page: params.Page, Limit: params.Limit}
	if cacheable && s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, cachedList{Products: products, Total: total})
	}
	return result, nil
}

// GetDetail returns product detail with option catalogs and live quotes for
// every stored variant.
func (s *Service) GetDetail(ctx context.Context, slug string) (Detail, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return Detail{}, badRequest("slug", "slug is required", nil)
	}
	product, err := s.store.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return Detail{}, common.NotFoundError("product not found")
		}
		return Detail{}, common.PersistenceError(fmt.Errorf("get product by slug: %w", err))
	}
	detail := Detail{
		Product: product,
		Options: OptionCatalogs{
			Sizes:        pricing.SizeOptions,
			Frames:       pricing.FrameOptions,
			Glass:        pricing.GlassOptions,
			Passepartout: pricing.PassepartoutOptions,
		},
	}
	detail.Quotes = make([]VariantQuote, 0, len(product.Variants))
	for _, v := range product.Variants {
		detail.Quotes = append(detail.Quotes, VariantQuote{
			SKU:   v.SKU,
			Size:  v.Size,
			Frame: v.Frame,
			Glass: v.Glass,
			Label: pricing.VariantLabel(v.Size, v.Frame, v.Glass),
			Price: pricing.Quote(product.BasePrice, v.Size, v.Frame, v.Glass),
			Stock: v.Stock,
		})
	}
	return detail, nil
}

// CreateInput is the admin product-creation payload.
type CreateInput struct {
	Name        string                `json:"name" validate:"required"`
	Slug        string                `json:"slug"`
	Description string                `json:"description"`
	Artist      string                `json:"artist"`
	Category    string                `json:"category" validate:"required"`
	Tags        []string              `json:"tags"`
	Images      []string              `json:"images"`
	BasePrice   float64               `json:"basePrice" validate:"required,gt=0"`
	Variants    []repo.ProductVariant `json:"variants"`
	IsActive    *bool                 `json:"isActive"`
	IsFeatured  bool                  `json:"isFeatured"`
	IsNew       bool                  `json:"isNew"`
}

// Create stores a new product. Missing slugs derive from the name; variants
// without a SKU or price get both derived from the selection.
func (s *Service) Create(ctx context.Context, in CreateInput) (repo.Product, error) {
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = Slugify(in.Name)
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	product := repo.Product{
		Name:        strings.TrimSpace(in.Name),
		Slug:        slug,
		Description: in.Description,
		Artist:      in.Artist,
		Category:    in.Category,
		Tags:        in.Tags,
		Images:      in.Images,
		BasePrice:   in.BasePrice,
		Variants:    in.Variants,
		IsActive:    active,
		IsFeatured:  in.IsFeatured,
		IsNew:       in.IsNew,
	}
	for i, v := range product.Variants {
		if v.SKU == "" {
			product.Variants[i].SKU = pricing.SKU(slug, v.Size, v.Frame, v.Glass)
		}
		if v.Price == 0 {
			product.Variants[i].Price = pricing.Quote(product.BasePrice, v.Size, v.Frame, v.Glass)
		}
	}
	if err := s.store.Insert(ctx, &product); err != nil {
		if errors.Is(err, repo.ErrDuplicateKey) {
			return repo.Product{}, &common.AppError{
				Code:       "CONFLICT",
				Message:    "a product with this slug already exists",
				HTTPStatus: http.StatusConflict,
				Err:        err,
			}
		}
		return repo.Product{}, common.PersistenceError(fmt.Errorf("insert product: %w", err))
	}
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, defaultListCacheKey)
	}
	return product, nil
}

type cachedList struct {
	Products []repo.Product `json:"products"`
	Total    int64          `json:"total"`
}

const defaultListCacheKey = "catalog:products:list:default"

func (s *Service) listCacheKey(params ListParams) (string, bool) {
	if params.Page != 1 || params.Limit != s.defaultLimit {
		return "", false
	}
	if params.Category != "" || params.New || params.Featured {
		return "", false
	}
	return defaultListCacheKey, true
}

func badRequest(field, message string, err error) *common.AppError {
	return &common.AppError{
		Code:       "BAD_REQUEST",
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
		Details: map[string]any{
			"field": field,
		},
	}
}
