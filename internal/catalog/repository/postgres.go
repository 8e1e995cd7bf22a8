package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

type productRow struct {
	ID                  int                 `db:"id"`
	Name                string              `db:"name"`
	Description         string              `db:"description"`
	Price               decimal.Decimal     `db:"price"`
	PriceLabel          sql.NullString      `db:"price_label"`
	SecondaryPrice      decimal.NullDecimal `db:"secondary_price"`
	SecondaryPriceLabel sql.NullString      `db:"secondary_price_label"`
	Category            string              `db:"category"`
	BaseIngredients     []byte              `db:"base_ingredients"`
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT id, name, description, price, price_label, secondary_price, secondary_price_label,
		       category, COALESCE(base_ingredients, '[]'::jsonb) AS base_ingredients
		FROM menu_products
		WHERE is_active = true
		ORDER BY sort_order, id`

	var rows []productRow
	if err := r.DB.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to query menu products: %w", err)
	}

	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		p := model.Product{
			ID:                  row.ID,
			Name:                row.Name,
			Description:         row.Description,
			Price:               row.Price,
			PriceLabel:          row.PriceLabel.String,
			SecondaryPriceLabel: row.SecondaryPriceLabel.String,
			Category:            model.Category(row.Category),
		}
		if row.SecondaryPrice.Valid {
			sp := row.SecondaryPrice.Decimal
			p.SecondaryPrice = &sp
		}
		if len(row.BaseIngredients) > 0 {
			if err := json.Unmarshal(row.BaseIngredients, &p.BaseIngredients); err != nil {
				return nil, fmt.Errorf("product %d: invalid base ingredients: %w", row.ID, err)
			}
		}
		products = append(products, p)
	}
	return products, nil
}
