package handler

import (
	"context"

	orderv1 "github.com/fekuna/omnipos-order-service/api/orderv1"
	"github.com/fekuna/omnipos-order-service/internal/catalog"
	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/fekuna/omnipos-order-service/internal/pricing"
	"github.com/fekuna/omnipos-order-service/pkg/logger"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type MenuHandler struct {
	orderv1.UnimplementedMenuServiceServer
	menu   catalog.Catalog
	logger logger.ZapLogger
}

func NewMenuHandler(menu catalog.Catalog, log logger.ZapLogger) *MenuHandler {
	return &MenuHandler{
		menu:   menu,
		logger: log,
	}
}

func (h *MenuHandler) ListProducts(ctx context.Context, req *orderv1.ListProductsRequest) (*orderv1.ListProductsResponse, error) {
	var products []model.Product
	if req.Category == "" {
		products = h.menu.List()
	} else {
		category := model.Category(req.Category)
		if !category.Valid() {
			return nil, status.Error(codes.InvalidArgument, "unknown category")
		}
		products = h.menu.ByCategory(category)
	}

	protos := make([]*orderv1.Product, len(products))
	for i := range products {
		protos[i] = MapProductToProto(&products[i])
	}

	categories := make([]string, len(model.Categories))
	for i, c := range model.Categories {
		categories[i] = string(c)
	}

	return &orderv1.ListProductsResponse{
		Products:   protos,
		Categories: categories,
	}, nil
}

func MapProductToProto(p *model.Product) *orderv1.Product {
	out := &orderv1.Product{
		ID:                  int32(p.ID),
		Name:                p.Name,
		Description:         p.Description,
		Category:            string(p.Category),
		Price:               MapMoney(p.Price),
		PriceLabel:          p.PriceLabel,
		SecondaryPriceLabel: p.SecondaryPriceLabel,
		BaseIngredients:     p.BaseIngredients,
	}
	if p.SecondaryPrice != nil {
		m := MapMoney(*p.SecondaryPrice)
		out.SecondaryPrice = &m
	}
	return out
}

func MapMoney(d decimal.Decimal) orderv1.Money {
	return orderv1.Money{
		Amount:  d.String(),
		Display: pricing.FormatCOP(d),
	}
}
