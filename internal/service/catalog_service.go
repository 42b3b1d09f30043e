package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/lordsmint/portal-api/internal/cache"
	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/erp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CatalogService serves master data and prices. Slow-changing lists are
// read through the cache.
type CatalogService struct {
	erp    CatalogERP
	cache  *cache.Cache
	logger *zap.Logger
}

func NewCatalogService(erpClient CatalogERP, c *cache.Cache, logger *zap.Logger) *CatalogService {
	return &CatalogService{erp: erpClient, cache: c, logger: logger}
}

func (s *CatalogService) cached(ctx context.Context, key string, dest interface{}, load func(context.Context) (interface{}, error)) error {
	err := s.cache.FetchJSON(ctx, key, dest, func(loadCtx context.Context) (interface{}, error) {
		return load(ctxFor(loadCtx))
	})
	if err != nil {
		return translateERPError(err, key)
	}
	return nil
}

// Warehouses returns enabled warehouses matching search
func (s *CatalogService) Warehouses(ctx context.Context, search string, page, pageSize int) (*domain.PageResponse, error) {
	page, pageSize = normalizePagination(page, pageSize)
	search = strings.TrimSpace(search)

	var rows []domain.Warehouse
	key := cache.Key("warehouses", strings.ToLower(search), strconv.Itoa(page), strconv.Itoa(pageSize))
	err := s.cached(ctx, key, &rows, func(ctx context.Context) (interface{}, error) {
		return s.erp.ListWarehouses(ctx, search, page, pageSize)
	})
	if err != nil {
		return nil, err
	}
	return &domain.PageResponse{Data: nonNil(rows), Page: page, PageSize: pageSize, HasMore: len(rows) >= pageSize}, nil
}

func (s *CatalogService) Plants(ctx context.Context) ([]domain.Plant, error) {
	var rows []domain.Plant
	err := s.cached(ctx, cache.Key("plants"), &rows, func(ctx context.Context) (interface{}, error) {
		return s.erp.ListPlants(ctx)
	})
	return nonNil(rows), err
}

func (s *CatalogService) ItemGroups(ctx context.Context) ([]domain.ItemGroup, error) {
	var rows []domain.ItemGroup
	err := s.cached(ctx, cache.Key("item-groups"), &rows, func(ctx context.Context) (interface{}, error) {
		return s.erp.ListItemGroups(ctx)
	})
	return nonNil(rows), err
}

func (s *CatalogService) Companies(ctx context.Context) ([]domain.Company, error) {
	var rows []domain.Company
	err := s.cached(ctx, cache.Key("companies"), &rows, func(ctx context.Context) (interface{}, error) {
		return s.erp.ListCompanies(ctx)
	})
	return nonNil(rows), err
}

func (s *CatalogService) PriceLists(ctx context.Context) ([]domain.PriceList, error) {
	var rows []domain.PriceList
	err := s.cached(ctx, cache.Key("price-lists"), &rows, func(ctx context.Context) (interface{}, error) {
		return s.erp.ListPriceLists(ctx)
	})
	return nonNil(rows), err
}

// Items returns sales items, optionally narrowed by name and group
func (s *CatalogService) Items(ctx context.Context, search, group string, page, pageSize int) (*domain.PageResponse, error) {
	page, pageSize = normalizePagination(page, pageSize)
	var rows []domain.Item
	key := cache.Key("items", strings.ToLower(strings.TrimSpace(search)), group, strconv.Itoa(page), strconv.Itoa(pageSize))
	err := s.cached(ctx, key, &rows, func(ctx context.Context) (interface{}, error) {
		return s.erp.ListItems(ctx, strings.TrimSpace(search), group, page, pageSize)
	})
	if err != nil {
		return nil, err
	}
	return &domain.PageResponse{Data: nonNil(rows), Page: page, PageSize: pageSize, HasMore: len(rows) >= pageSize}, nil
}

func (s *CatalogService) GetItem(ctx context.Context, code string) (*domain.Item, error) {
	item, err := s.erp.GetItem(ctxFor(ctx), code)
	if err != nil {
		return nil, translateERPError(err, "get item "+code)
	}
	return item, nil
}

// PriceList returns the priced items of a warehouse's price list
func (s *CatalogService) PriceList(ctx context.Context, warehouse, search string, page, pageSize int) (*domain.PageResponse, error) {
	warehouse = strings.TrimSpace(warehouse)
	if warehouse == "" {
		return nil, fmt.Errorf("%w: warehouse is required", ErrInvalidInput)
	}
	page, pageSize = normalizePagination(page, pageSize)

	prices, err := s.erp.ListItemPrices(ctxFor(ctx), erp.ItemPriceFilter{
		PriceList: warehouse,
		Search:    strings.TrimSpace(search),
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		return nil, translateERPError(err, "list item prices")
	}

	items := make([]domain.PricedItem, len(prices))
	for i, p := range prices {
		items[i] = domain.PricedItem{
			ItemCode:  p.ItemCode,
			ItemName:  p.ItemName,
			Price:     p.PriceListRate,
			Currency:  p.Currency,
			PriceList: p.PriceList,
			ValidFrom: p.ValidFrom,
			ValidUpto: p.ValidUpto,
			Warehouse: warehouse,
		}
	}
	return &domain.PageResponse{Data: items, Page: page, PageSize: pageSize, HasMore: len(prices) >= pageSize}, nil
}

// SearchItems finds sales items by name and prices them from priceList.
// Items without a price on priceList fall back to any other price, then zero.
func (s *CatalogService) SearchItems(ctx context.Context, query, priceList string, page, pageSize int) (*domain.PageResponse, error) {
	query = strings.TrimSpace(query)
	page, pageSize = normalizePagination(page, pageSize)
	erpCtx := ctxFor(ctx)

	var (
		items  []domain.Item
		prices []domain.ItemPrice
	)
	g, gctx := errgroup.WithContext(erpCtx)
	g.Go(func() error {
		var err error
		items, err = s.erp.ListItems(gctx, query, "", page, pageSize)
		return err
	})
	g.Go(func() error {
		var err error
		prices, err = s.erp.ListItemPrices(gctx, erp.ItemPriceFilter{Search: query})
		if err != nil {
			s.logger.Warn("failed to fetch prices for item search", zap.String("query", query), zap.Error(err))
			prices = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, translateERPError(err, "search items")
	}

	return &domain.PageResponse{
		Data:     CombineItemsWithPrices(items, prices, priceList),
		Page:     page,
		PageSize: pageSize,
		HasMore:  len(items) >= pageSize,
	}, nil
}

// StockBalance returns the stock of an item, optionally in one warehouse
func (s *CatalogService) StockBalance(ctx context.Context, itemCode, warehouse string) ([]domain.StockBalance, error) {
	if strings.TrimSpace(itemCode) == "" {
		return nil, fmt.Errorf("%w: itemCode is required", ErrInvalidInput)
	}
	rows, err := s.erp.StockBalance(ctxFor(ctx), itemCode, warehouse)
	if err != nil {
		return nil, translateERPError(err, "stock balance")
	}
	return nonNil(rows), nil
}

// CombineItemsWithPrices joins items with their price: the price on
// priceList when there is one, else the first price seen for the item, else
// zero.
func CombineItemsWithPrices(items []domain.Item, prices []domain.ItemPrice, priceList string) []domain.PricedItem {
	byItem := make(map[string][]domain.ItemPrice, len(prices))
	for _, p := range prices {
		byItem[p.ItemCode] = append(byItem[p.ItemCode], p)
	}

	out := make([]domain.PricedItem, 0, len(items))
	for _, item := range items {
		priced := domain.PricedItem{
			ItemCode:  item.ItemCode,
			ItemName:  item.ItemName,
			ItemGroup: item.ItemGroup,
			StockUOM:  item.StockUOM,
			Image:     item.Image,
		}
		if price := selectPrice(byItem[item.ItemCode], priceList); price != nil {
			priced.Price = price.PriceListRate
			priced.Currency = price.Currency
			priced.PriceList = price.PriceList
			priced.ValidFrom = price.ValidFrom
			priced.ValidUpto = price.ValidUpto
		}
		out = append(out, priced)
	}
	return out
}

func selectPrice(prices []domain.ItemPrice, priceList string) *domain.ItemPrice {
	if len(prices) == 0 {
		return nil
	}
	if priceList != "" {
		for i := range prices {
			if prices[i].PriceList == priceList {
				return &prices[i]
			}
		}
	}
	return &prices[0]
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
