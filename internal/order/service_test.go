package order

import (
	"errors"
	"testing"
	"time"

	"github.com/wildflour/bakery-backend/internal/inventory"
	"github.com/wildflour/bakery-backend/internal/product"
)

var (
	customerActor = Actor{UserID: 7, Role: "user"}
	otherActor    = Actor{UserID: 8, Role: "user"}
	adminActor    = Actor{UserID: 1, Role: "admin"}
)

func newTestService(orders []Order, products []product.Product) (*Service, *InMemoryRepository, *product.InMemoryRepository) {
	orderRepo := NewInMemoryRepository(orders)
	productRepo := product.NewInMemoryRepository(products)
	s := NewService(orderRepo, productRepo, inventory.NewMemoryLedger(productRepo))
	return s, orderRepo, productRepo
}

func bakeryProducts() []product.Product {
	return []product.Product{
		{ID: 1, Name: "Sourdough Loaf", Price: 6.5, Stock: 5, Image: "/uploads/sourdough.jpg"},
		{ID: 2, Name: "Croissant", Price: 3.0, Stock: 10, Image: "/uploads/croissant.jpg"},
	}
}

func TestCreate_SnapshotsProductDetails(t *testing.T) {
	s, _, productRepo := newTestService(nil, bakeryProducts())

	input := CreateInput{
		Items:    []ItemInput{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 1}},
		Total:    16.0,
		Customer: Customer{Name: "Alma", Email: "alma@example.com"},
		Payment:  Payment{Method: "card"},
	}
	ord, err := s.Create(input, customerActor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ord.Status != StatusPending {
		t.Errorf("status = %s, want Pending", ord.Status)
	}
	if ord.Reference == "" {
		t.Error("expected a generated order reference")
	}
	if ord.UserID != customerActor.UserID {
		t.Errorf("userID = %d, want %d", ord.UserID, customerActor.UserID)
	}
	if len(ord.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(ord.Items))
	}
	first := ord.Items[0]
	if first.Name != "Sourdough Loaf" || first.Price != 6.5 || first.Image != "/uploads/sourdough.jpg" {
		t.Errorf("snapshot not taken from product: %+v", first)
	}

	p, _ := productRepo.GetByID(1)
	if p.Stock != 3 {
		t.Errorf("product 1 stock = %d, want 3", p.Stock)
	}

	// later product edits must not alter the stored snapshot
	p.Price = 99
	p.Name = "Renamed"
	productRepo.Update(1, p)
	stored, err := s.Get(ord.ID, customerActor)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Items[0].Name != "Sourdough Loaf" || stored.Items[0].Price != 6.5 {
		t.Errorf("snapshot mutated by product edit: %+v", stored.Items[0])
	}
}

func TestCreate_InsufficientStockAborts(t *testing.T) {
	s, orderRepo, productRepo := newTestService(nil, bakeryProducts())

	input := CreateInput{
		Items: []ItemInput{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 11}},
		Total: 50,
	}
	_, err := s.Create(input, customerActor)
	if !errors.Is(err, inventory.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	// no order persisted, no stock consumed
	orders, _ := orderRepo.List(Filter{})
	if len(orders) != 0 {
		t.Errorf("expected no orders, got %d", len(orders))
	}
	p1, _ := productRepo.GetByID(1)
	p2, _ := productRepo.GetByID(2)
	if p1.Stock != 5 || p2.Stock != 10 {
		t.Errorf("stock mutated on failed checkout: %d, %d", p1.Stock, p2.Stock)
	}
}

func TestCreate_UnknownProduct(t *testing.T) {
	s, _, _ := newTestService(nil, bakeryProducts())

	_, err := s.Create(CreateInput{Items: []ItemInput{{ProductID: 42, Quantity: 1}}}, customerActor)
	if !errors.Is(err, inventory.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCreate_RejectsEmptyAndInvalidItems(t *testing.T) {
	s, _, _ := newTestService(nil, bakeryProducts())

	if _, err := s.Create(CreateInput{}, customerActor); !errors.Is(err, ErrEmptyOrder) {
		t.Errorf("expected ErrEmptyOrder, got %v", err)
	}
	_, err := s.Create(CreateInput{Items: []ItemInput{{ProductID: 1, Quantity: 0}}}, customerActor)
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}
}

// recordingProductRepo counts batch reads so tests can assert how the
// snapshot set is fetched.
type recordingProductRepo struct {
	*product.InMemoryRepository
	listByIDsCalls int
	listByIDsArgs  []int
}

func (r *recordingProductRepo) ListByIDs(ids []int) ([]product.Product, error) {
	r.listByIDsCalls++
	r.listByIDsArgs = append([]int(nil), ids...)
	return r.InMemoryRepository.ListByIDs(ids)
}

func TestCreate_BatchFetchesSnapshotSet(t *testing.T) {
	recorder := &recordingProductRepo{InMemoryRepository: product.NewInMemoryRepository(bakeryProducts())}
	s := NewService(NewInMemoryRepository(nil), recorder, inventory.NewMemoryLedger(recorder))

	ord, err := s.Create(CreateInput{
		Items: []ItemInput{{ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: 2}},
		Total: 12.5,
	}, customerActor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// one batch read covers the whole snapshot set
	if recorder.listByIDsCalls != 1 {
		t.Errorf("listByIDs calls = %d, want 1", recorder.listByIDsCalls)
	}
	if len(recorder.listByIDsArgs) != 2 || recorder.listByIDsArgs[0] != 1 || recorder.listByIDsArgs[1] != 2 {
		t.Errorf("listByIDs args = %v, want [1 2]", recorder.listByIDsArgs)
	}
	if len(ord.Items) != 2 || ord.Items[0].Name != "Sourdough Loaf" || ord.Items[1].Name != "Croissant" {
		t.Errorf("snapshot not built from batch read: %+v", ord.Items)
	}
}

// failingProductRepo simulates a store outage on the batch read.
type failingProductRepo struct {
	*product.InMemoryRepository
	err error
}

func (r *failingProductRepo) ListByIDs([]int) ([]product.Product, error) {
	return nil, r.err
}

func TestCreate_ProductStoreErrorIsNotNotFound(t *testing.T) {
	boom := errors.New("connection refused")
	repo := &failingProductRepo{InMemoryRepository: product.NewInMemoryRepository(bakeryProducts()), err: boom}
	s := NewService(NewInMemoryRepository(nil), repo, inventory.NewMemoryLedger(repo))

	_, err := s.Create(CreateInput{Items: []ItemInput{{ProductID: 1, Quantity: 1}}}, customerActor)
	if !errors.Is(err, boom) {
		t.Fatalf("expected the store error to propagate, got %v", err)
	}
	if errors.Is(err, inventory.ErrProductNotFound) {
		t.Errorf("store outage must not surface as a missing product: %v", err)
	}
}

func TestGet_Authorization(t *testing.T) {
	seed := []Order{{ID: 10, UserID: 7, Status: StatusPending}}
	s, _, _ := newTestService(seed, bakeryProducts())

	if _, err := s.Get(10, customerActor); err != nil {
		t.Errorf("owner should read own order: %v", err)
	}
	if _, err := s.Get(10, adminActor); err != nil {
		t.Errorf("admin should read any order: %v", err)
	}
	if _, err := s.Get(10, otherActor); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if _, err := s.Get(99, adminActor); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestList_AdminOnlyAndFiltered(t *testing.T) {
	day1 := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	seed := []Order{
		{ID: 1, Status: StatusPending, CreatedAt: day1},
		{ID: 2, Status: StatusCompleted, CreatedAt: day1},
		{ID: 3, Status: StatusCompleted, CreatedAt: day2},
	}
	s, _, _ := newTestService(seed, nil)

	if _, err := s.List(Filter{}, customerActor); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}

	completed, err := s.List(Filter{Status: "Completed"}, adminActor)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(completed) != 2 {
		t.Fatalf("completed = %d, want 2", len(completed))
	}
	// newest first
	if completed[0].ID != 3 {
		t.Errorf("expected order 3 first, got %d", completed[0].ID)
	}

	onDay1, err := s.List(Filter{Date: &day1}, adminActor)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(onDay1) != 2 {
		t.Errorf("orders on day1 = %d, want 2", len(onDay1))
	}
}

func TestUpdateStatus_EnforcesLifecycle(t *testing.T) {
	seed := []Order{
		{ID: 1, Status: StatusPending},
		{ID: 2, Status: StatusRefunded},
	}
	s, _, _ := newTestService(seed, nil)

	if _, err := s.UpdateStatus(1, StatusCompleted, customerActor); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}

	ord, err := s.UpdateStatus(1, StatusCompleted, adminActor)
	if err != nil {
		t.Fatalf("Pending -> Completed should succeed: %v", err)
	}
	if ord.Status != StatusCompleted {
		t.Errorf("status = %s, want Completed", ord.Status)
	}

	if _, err := s.UpdateStatus(1, StatusPending, adminActor); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Completed -> Pending should be rejected, got %v", err)
	}
	if _, err := s.UpdateStatus(2, StatusCompleted, adminActor); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Refunded is terminal, got %v", err)
	}
	if _, err := s.UpdateStatus(1, Status("Shipped"), adminActor); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("unknown status should be rejected, got %v", err)
	}
	if _, err := s.UpdateStatus(99, StatusCompleted, adminActor); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRefund_FullLifecycle(t *testing.T) {
	s, _, productRepo := newTestService(nil, bakeryProducts())

	ord, err := s.Create(CreateInput{
		Items: []ItemInput{{ProductID: 1, Quantity: 3}},
		Total: 250.00,
	}, customerActor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	p, _ := productRepo.GetByID(1)
	if p.Stock != 2 {
		t.Fatalf("stock after create = %d, want 2", p.Stock)
	}

	if _, err := s.UpdateStatus(ord.ID, StatusCompleted, adminActor); err != nil {
		t.Fatalf("complete: %v", err)
	}

	refunded, err := s.Refund(ord.ID, customerActor)
	if err != nil {
		t.Fatalf("refund: %v", err)
	}
	if refunded.Status != StatusRefunded {
		t.Errorf("status = %s, want Refunded", refunded.Status)
	}
	p, _ = productRepo.GetByID(1)
	if p.Stock != 5 {
		t.Errorf("stock after refund = %d, want 5", p.Stock)
	}

	// Refunded is terminal: a second refund must fail
	if _, err := s.Refund(ord.ID, customerActor); !errors.Is(err, ErrInvalidState) {
		t.Errorf("second refund should fail with ErrInvalidState, got %v", err)
	}
}

func TestRefund_RequiresCompletedStatus(t *testing.T) {
	for _, status := range []Status{StatusPending, StatusDelivered, StatusCancelled, StatusRefunded} {
		seed := []Order{{ID: 1, UserID: 7, Status: status, Items: []LineItem{{ProductID: 1, Quantity: 1}}}}
		s, repo, productRepo := newTestService(seed, bakeryProducts())

		_, err := s.Refund(1, adminActor)
		if !errors.Is(err, ErrInvalidState) {
			t.Errorf("refund from %s: expected ErrInvalidState, got %v", status, err)
		}
		ord, _ := repo.GetByID(1)
		if ord.Status != status {
			t.Errorf("refund from %s mutated status to %s", status, ord.Status)
		}
		p, _ := productRepo.GetByID(1)
		if p.Stock != 5 {
			t.Errorf("refund from %s mutated stock to %d", status, p.Stock)
		}
	}
}

func TestRefund_RestoresSnapshotQuantities(t *testing.T) {
	// the snapshot quantity governs the restock even when the live product
	// stock has changed since the order was placed
	seed := []Order{{
		ID:     1,
		UserID: 7,
		Status: StatusCompleted,
		Items:  []LineItem{{ProductID: 1, Name: "Sourdough Loaf", Quantity: 4}},
	}}
	s, _, productRepo := newTestService(seed, bakeryProducts())

	p, _ := productRepo.GetByID(1)
	p.Stock = 100
	productRepo.Update(1, p)

	if _, err := s.Refund(1, customerActor); err != nil {
		t.Fatalf("refund: %v", err)
	}
	p, _ = productRepo.GetByID(1)
	if p.Stock != 104 {
		t.Errorf("stock = %d, want 104", p.Stock)
	}
}

// failingUpdateRepo rejects status commits to exercise the refund
// compensation path.
type failingUpdateRepo struct {
	*InMemoryRepository
	err error
}

func (r *failingUpdateRepo) Update(int, Order) (Order, error) {
	return Order{}, r.err
}

func TestRefund_FailedCommitReReservesStock(t *testing.T) {
	boom := errors.New("write conflict")
	seed := []Order{{
		ID:     1,
		UserID: 7,
		Status: StatusCompleted,
		Items:  []LineItem{{ProductID: 1, Name: "Sourdough Loaf", Quantity: 2}},
	}}
	orderRepo := &failingUpdateRepo{InMemoryRepository: NewInMemoryRepository(seed), err: boom}
	productRepo := product.NewInMemoryRepository(bakeryProducts())
	s := NewService(orderRepo, productRepo, inventory.NewMemoryLedger(productRepo))

	_, err := s.Refund(1, customerActor)
	if !errors.Is(err, boom) {
		t.Fatalf("expected the commit error, got %v", err)
	}

	// the restock was compensated, so a failed refund never gives stock away
	p, _ := productRepo.GetByID(1)
	if p.Stock != 5 {
		t.Errorf("stock = %d, want 5", p.Stock)
	}
	ord, _ := orderRepo.InMemoryRepository.GetByID(1)
	if ord.Status != StatusCompleted {
		t.Errorf("status = %s, want Completed", ord.Status)
	}
}

func TestRefund_Authorization(t *testing.T) {
	seed := []Order{{ID: 1, UserID: 7, Status: StatusCompleted}}
	s, _, _ := newTestService(seed, bakeryProducts())

	if _, err := s.Refund(1, otherActor); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for unrelated user, got %v", err)
	}
	if _, err := s.Refund(1, adminActor); err != nil {
		t.Errorf("admin refund should succeed: %v", err)
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusCompleted, true},
		{StatusPending, StatusDelivered, true},
		{StatusPending, StatusCancelled, true},
		{StatusCompleted, StatusRefunded, true},
		{StatusPending, StatusRefunded, false},
		{StatusDelivered, StatusRefunded, false},
		{StatusRefunded, StatusPending, false},
		{StatusCancelled, StatusCompleted, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
