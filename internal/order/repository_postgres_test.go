package order

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func orderRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "reference", "items", "total", "customer", "shipping", "payment", "user_id", "status", "created_at", "updated_at"})
}

func TestPostgresCreate_ReturnsGeneratedID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	ord := Order{
		Reference: "ref-1",
		Items:     []LineItem{{ProductID: 1, Name: "Sourdough Loaf", Price: 6.5, Quantity: 2}},
		Total:     13.0,
		UserID:    7,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs("ref-1", sqlmock.AnyArg(), 13.0, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), 7, StatusPending, now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	repo := NewPostgresRepository(db)
	created, err := repo.Create(ord)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 5 {
		t.Errorf("id = %d, want 5", created.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id").
		WithArgs(5).
		WillReturnRows(orderRows().AddRow(
			5, "ref-1",
			[]byte(`[{"product":1,"name":"Sourdough Loaf","price":6.5,"quantity":2,"image":""}]`),
			13.0,
			[]byte(`{"name":"Alma","email":"alma@example.com"}`),
			[]byte(`{}`), []byte(`{"method":"card"}`),
			7, "Pending", now, now))

	repo := NewPostgresRepository(db)
	ord, err := repo.GetByID(5)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ord.Reference != "ref-1" || ord.UserID != 7 || ord.Status != StatusPending {
		t.Errorf("unexpected order: %+v", ord)
	}
	if len(ord.Items) != 1 || ord.Items[0].Name != "Sourdough Loaf" {
		t.Errorf("items not decoded: %+v", ord.Items)
	}
	if ord.Customer.Email != "alma@example.com" {
		t.Errorf("customer not decoded: %+v", ord.Customer)
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

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id").
		WithArgs(99).
		WillReturnRows(orderRows())

	repo := NewPostgresRepository(db)
	if _, err := repo.GetByID(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresList_FilterClauses(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	day := time.Date(2026, 4, 1, 15, 30, 0, 0, time.UTC)
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT (.+) FROM orders WHERE status = \$1 AND created_at >= \$2 AND created_at < \$3 ORDER BY created_at DESC`).
		WithArgs("Completed", start, start.AddDate(0, 0, 1)).
		WillReturnRows(orderRows().AddRow(
			1, "ref-1", []byte(`[]`), 10.0, []byte(`{}`), []byte(`{}`), []byte(`{}`),
			7, "Completed", day, day))

	repo := NewPostgresRepository(db)
	orders, err := repo.List(Filter{Status: "Completed", Date: &day})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 1 || orders[0].Status != StatusCompleted {
		t.Errorf("unexpected result: %+v", orders)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresUpdate_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE orders SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresRepository(db)
	if _, err := repo.Update(99, Order{Status: StatusCompleted}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
