package repository

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed menu.yaml
var embeddedMenu []byte

type menuFile struct {
	Products []menuEntry `yaml:"products"`
}

type menuEntry struct {
	ID                  int      `yaml:"id"`
	Name                string   `yaml:"name"`
	Description         string   `yaml:"description"`
	Price               int64    `yaml:"price"`
	PriceLabel          string   `yaml:"price_label"`
	SecondaryPrice      *int64   `yaml:"secondary_price"`
	SecondaryPriceLabel string   `yaml:"secondary_price_label"`
	Category            string   `yaml:"category"`
	BaseIngredients     []string `yaml:"base_ingredients"`
}

// YAMLRepository serves a menu document, either the built-in one or a file on disk.
type YAMLRepository struct {
	path string
}

func NewEmbeddedRepository() *YAMLRepository {
	return &YAMLRepository{}
}

func NewFileRepository(path string) *YAMLRepository {
	return &YAMLRepository{path: path}
}

func (r *YAMLRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	data := embeddedMenu
	if r.path != "" {
		b, err := os.ReadFile(r.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read menu file: %w", err)
		}
		data = b
	}
	return ParseMenu(data)
}

func ParseMenu(data []byte) ([]model.Product, error) {
	var f menuFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse menu: %w", err)
	}

	products := make([]model.Product, 0, len(f.Products))
	for _, e := range f.Products {
		p := model.Product{
			ID:                  e.ID,
			Name:                e.Name,
			Description:         e.Description,
			Price:               decimal.NewFromInt(e.Price),
			PriceLabel:          e.PriceLabel,
			SecondaryPriceLabel: e.SecondaryPriceLabel,
			Category:            model.Category(e.Category),
			BaseIngredients:     e.BaseIngredients,
		}
		if e.SecondaryPrice != nil {
			sp := decimal.NewFromInt(*e.SecondaryPrice)
			p.SecondaryPrice = &sp
		}
		products = append(products, p)
	}
	return products, nil
}
