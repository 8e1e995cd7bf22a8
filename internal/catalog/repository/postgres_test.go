package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "pgx"), mock
}

var productColumns = []string{
	"id", "name", "description", "price", "price_label", "secondary_price",
	"secondary_price_label", "category", "base_ingredients",
}

func TestPGRepository_FindAll(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGRepository(db)

	rows := sqlmock.NewRows(productColumns).
		AddRow(1, "Clasica", "Carne de res", "14000", "Sin Papa", "16000", "Con Papa", "Hamburguesas", []byte(`["Cebolla","Lechuga"]`)).
		AddRow(46, "Coca-Cola", "Personal 400ml", "4000", nil, nil, nil, "Bebidas", []byte(`[]`))
	mock.ExpectQuery("FROM menu_products").WillReturnRows(rows)

	products, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("len = %d, want 2", len(products))
	}

	clasica := products[0]
	if clasica.Price.IntPart() != 14000 || clasica.SecondaryPrice == nil || clasica.SecondaryPrice.IntPart() != 16000 {
		t.Errorf("Clasica prices = %s / %v", clasica.Price, clasica.SecondaryPrice)
	}
	if len(clasica.BaseIngredients) != 2 || clasica.BaseIngredients[1] != "Lechuga" {
		t.Errorf("Clasica base ingredients = %v", clasica.BaseIngredients)
	}

	coca := products[1]
	if coca.SecondaryPrice != nil || coca.PriceLabel != "" {
		t.Errorf("Coca-Cola = %+v", coca)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPGRepository_FindAll_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGRepository(db)

	mock.ExpectQuery("FROM menu_products").WillReturnError(errors.New("connection refused"))

	if _, err := repo.FindAll(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
