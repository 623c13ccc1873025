package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/promolab-cl/backend-promolab/internal/common"
	"github.com/promolab-cl/backend-promolab/internal/money"
	"github.com/promolab-cl/backend-promolab/internal/pricing"
)

// Service orchestrates catalog filtering, DTO assembly, and caching.
type Service struct {
	store        *Store
	cache        *Cache
	defaultPage  int
	defaultLimit int
	maxLimit     int
	collator     *collate.Collator
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Store        *Store
	Cache        *Cache
	DefaultPage  int
	DefaultLimit int
	MaxLimit     int
}

// ListParams captures filters for product listing.
type ListParams struct {
	Query    string
	Category string
	Supplier string
	Sort     string
	Page     int
	Limit    int
}

// ProductListItem represents an entry in list responses.
type ProductListItem struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	SKU       string      `json:"sku"`
	Category  string      `json:"category"`
	Supplier  string      `json:"supplier"`
	BasePrice money.Money `json:"basePrice"`
	Stock     int         `json:"stock"`
	Summary   CardSummary `json:"summary"`
}

// ProductDetail aggregates the full detail payload.
type ProductDetail struct {
	Product
	Summary CardSummary `json:"summary"`
}

// ProductListResult contains list data and pagination metadata.
type ProductListResult struct {
	Items []ProductListItem
	Total int
	Page  int
	Limit int
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Store == nil {
		return nil, errors.New("catalog: store is required")
	}
	defaultPage := cfg.DefaultPage
	if defaultPage < 1 {
		defaultPage = 1
	}
	defaultLimit := cfg.DefaultLimit
	if defaultLimit < 1 {
		defaultLimit = 20
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
		defaultPage:  defaultPage,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		collator:     collate.New(language.Spanish, collate.IgnoreCase),
	}, nil
}

// ParseListParams normalises raw query values into strongly typed filters.
func (s *Service) ParseListParams(values url.Values) (ListParams, error) {
	params := ListParams{
		Page:  s.defaultPage,
		Limit: s.defaultLimit,
	}
	params.Query = strings.TrimSpace(values.Get("q"))
	params.Category = strings.TrimSpace(values.Get("category"))
	params.Supplier = strings.TrimSpace(values.Get("supplier"))

	if v := strings.TrimSpace(values.Get("page")); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return params, badRequest("page", "page must be a positive integer", err)
		}
		params.Page = page
	}

	limit := s.defaultLimit
	if v := strings.TrimSpace(values.Get("limit")); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil || l < 1 {
			return params, badRequest("limit", "limit must be a positive integer", err)
		}
		limit = l
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	params.Limit = limit

	params.Sort = normalizeSort(values.Get("sort"))
	return params, nil
}

// ListProducts returns the filtered, sorted product list with pagination
// metadata. Pending and inactive products never appear in listings.
func (s *Service) ListProducts(ctx context.Context, params ListParams) (ProductListResult, error) {
	key, cacheable := s.listCacheKey(params)
	if cacheable && s.cache != nil {
		var cached cachedList
		ok, err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil && ok {
			return ProductListResult{Items: cached.Items, Total: cached.Total, Page: params.Page, Limit: params.Limit}, nil
		}
	}

	filtered := s.filter(params)
	s.sortProducts(filtered, params.Sort)

	total := len(filtered)
	start := (params.Page - 1) * params.Limit
	if start > total {
		start = total
	}
	end := start + params.Limit
	if end > total {
		end = total
	}

	items := make([]ProductListItem, 0, end-start)
	for _, p := range filtered[start:end] {
		items = append(items, toListItem(p))
	}
	result := ProductListResult{Items: items, Total: total, Page: params.Page, Limit: params.Limit}
	if cacheable && s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, cachedList{Items: items, Total: total})
	}
	return result, nil
}

// GetProductDetail returns the full product payload with card summary.
func (s *Service) GetProductDetail(ctx context.Context, id int64) (ProductDetail, error) {
	cacheKey := detailCacheKey(id)
	if s.cache != nil {
		var cached ProductDetail
		ok, err := s.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && ok {
			return cached, nil
		}
	}
	p, ok := s.store.ProductByID(id)
	if !ok {
		return ProductDetail{}, &common.AppError{Code: "NOT_FOUND", Message: "product not found", HTTPStatus: http.StatusNotFound}
	}
	detail := ProductDetail{Product: p, Summary: Summarize(p)}
	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, cacheKey, detail)
	}
	return detail, nil
}

// ListCategories returns all categories with active-product counts.
func (s *Service) ListCategories(context.Context) ([]Category, error) {
	return s.store.Categories(), nil
}

// ListSuppliers returns all suppliers with active-product counts.
func (s *Service) ListSuppliers(context.Context) ([]Supplier, error) {
	return s.store.Suppliers(), nil
}

// Company exposes the seller identity for the quote layer.
func (s *Service) Company() Company {
	return s.store.Company()
}

// SortedBreaks returns a product's tiers in resolver order for display.
func SortedBreaks(p Product) []pricing.PriceBreak {
	return pricing.SortBreaks(p.PriceBreaks)
}

func (s *Service) filter(params ListParams) []Product {
	all := s.store.Products()
	result := make([]Product, 0, len(all))
	query := foldAccents(params.Query)
	for _, p := range all {
		if p.Status == StatusPending || p.Status == StatusInactive {
			continue
		}
		if params.Category != "" && params.Category != "all" && p.Category != params.Category {
			continue
		}
		if params.Supplier != "" && params.Supplier != "default" && p.Supplier != params.Supplier {
			continue
		}
		if query != "" {
			name := foldAccents(p.Name)
			sku := foldAccents(p.SKU)
			if !strings.Contains(name, query) && !strings.Contains(sku, query) {
				continue
			}
		}
		result = append(result, p)
	}
	return result
}

func (s *Service) sortProducts(products []Product, key string) {
	switch key {
	case "price-asc":
		sort.SliceStable(products, func(i, j int) bool { return products[i].BasePrice < products[j].BasePrice })
	case "price-desc":
		sort.SliceStable(products, func(i, j int) bool { return products[i].BasePrice > products[j].BasePrice })
	case "stock":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Stock > products[j].Stock })
	default:
		sort.SliceStable(products, func(i, j int) bool {
			return s.collator.CompareString(products[i].Name, products[j].Name) < 0
		})
	}
}

func toListItem(p Product) ProductListItem {
	return ProductListItem{
		ID:        p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		Category:  p.Category,
		Supplier:  p.Supplier,
		BasePrice: p.BasePrice,
		Stock:     p.Stock,
		Summary:   Summarize(p),
	}
}

type cachedList struct {
	Items []ProductListItem `json:"items"`
	Total int               `json:"total"`
}

func (s *Service) listCacheKey(params ListParams) (string, bool) {
	if params.Page != s.defaultPage || params.Limit != s.defaultLimit {
		return "", false
	}
	if params.Query != "" || params.Category != "" || params.Supplier != "" || params.Sort != "" {
		return "", false
	}
	return "catalog:products:list:default", true
}

func detailCacheKey(id int64) string {
	return "catalog:products:detail:" + strconv.FormatInt(id, 10)
}

func normalizeSort(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "name", "price-asc", "price-desc", "stock":
		return s
	default:
		return ""
	}
}

// foldAccents lowercases and strips combining marks so searches match
// regardless of accents ("poleron" finds "Polerón").
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return folded
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
