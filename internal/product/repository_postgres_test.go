package product

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "description", "price", "stock", "image", "category", "created_at", "updated_at"})
}

func TestPostgresGetByID_NullColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM products WHERE id").
		WithArgs(1).
		WillReturnRows(productRows().AddRow(1, "Sourdough Loaf", nil, 6.5, 5, nil, nil, nil, nil))

	repo := NewPostgresRepository(db)
	p, err := repo.GetByID(1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Name != "Sourdough Loaf" || p.Description != "" || p.Category != nil {
		t.Errorf("unexpected product: %+v", p)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM products WHERE id").
		WithArgs(99).
		WillReturnRows(productRows())

	repo := NewPostgresRepository(db)
	if _, err := repo.GetByID(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresListByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = ANY`).
		WithArgs(pq.Array([]int{1, 2})).
		WillReturnRows(productRows().
			AddRow(1, "Sourdough Loaf", "country loaf", 6.5, 5, "/uploads/sourdough.jpg", "Bread", nil, nil).
			AddRow(2, "Croissant", "", 3.0, 10, "", "Pastries", nil, nil))

	repo := NewPostgresRepository(db)
	products, err := repo.ListByIDs([]int{1, 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("products = %d, want 2", len(products))
	}
	if products[1].Category == nil || *products[1].Category != "Pastries" {
		t.Errorf("category not decoded: %+v", products[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresListByIDs_Empty(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewPostgresRepository(db)
	products, err := repo.ListByIDs(nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("expected no query and empty result, got %+v", products)
	}
}
