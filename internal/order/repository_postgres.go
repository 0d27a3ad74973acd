package order

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const orderColumns = `id, reference, items, total, customer, shipping, payment, user_id, status, created_at, updated_at`

func (r *PostgresRepository) Create(ord Order) (Order, error) {
	itemsJSON, err := json.Marshal(ord.Items)
	if err != nil {
		return Order{}, err
	}
	customerJSON, err := json.Marshal(ord.Customer)
	if err != nil {
		return Order{}, err
	}
	shippingJSON, err := json.Marshal(ord.Shipping)
	if err != nil {
		return Order{}, err
	}
	paymentJSON, err := json.Marshal(ord.Payment)
	if err != nil {
		return Order{}, err
	}

	err = r.db.QueryRow(`INSERT INTO orders (reference, items, total, customer, shipping, payment, user_id, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id`,
		ord.Reference, itemsJSON, ord.Total, customerJSON, shippingJSON, paymentJSON, ord.UserID, ord.Status, ord.CreatedAt, ord.UpdatedAt).Scan(&ord.ID)
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	row := r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	ord, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	return ord, err
}

func (r *PostgresRepository) List(f Filter) ([]Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	where := ""
	args := []interface{}{}

	addClause := func(clause string, arg interface{}) {
		args = append(args, arg)
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(clause, len(args))
	}

	if f.Status != "" {
		addClause("status = $%d", f.Status)
	}
	if f.UserID != 0 {
		addClause("user_id = $%d", f.UserID)
	}
	if f.Date != nil {
		start := time.Date(f.Date.Year(), f.Date.Month(), f.Date.Day(), 0, 0, 0, 0, f.Date.Location())
		addClause("created_at >= $%d", start)
		addClause("created_at < $%d", start.AddDate(0, 0, 1))
	}

	rows, err := r.db.Query(query+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) Update(id int, ord Order) (Order, error) {
	itemsJSON, err := json.Marshal(ord.Items)
	if err != nil {
		return Order{}, err
	}

	res, err := r.db.Exec(`UPDATE orders SET items=$1, total=$2, status=$3, updated_at=$4 WHERE id=$5`,
		itemsJSON, ord.Total, ord.Status, ord.UpdatedAt, id)
	if err != nil {
		return Order{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Order{}, ErrNotFound
	}
	ord.ID = id
	return ord, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (Order, error) {
	var (
		ord          Order
		itemsJSON    []byte
		customerJSON []byte
		shippingJSON []byte
		paymentJSON  []byte
		userID       sql.NullInt64
	)
	if err := row.Scan(&ord.ID, &ord.Reference, &itemsJSON, &ord.Total, &customerJSON, &shippingJSON, &paymentJSON, &userID, &ord.Status, &ord.CreatedAt, &ord.UpdatedAt); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(itemsJSON, &ord.Items); err != nil {
		return Order{}, err
	}
	if len(customerJSON) > 0 {
		if err := json.Unmarshal(customerJSON, &ord.Customer); err != nil {
			return Order{}, err
		}
	}
	if len(shippingJSON) > 0 {
		if err := json.Unmarshal(shippingJSON, &ord.Shipping); err != nil {
			return Order{}, err
		}
	}
	if len(paymentJSON) > 0 {
		if err := json.Unmarshal(paymentJSON, &ord.Payment); err != nil {
			return Order{}, err
		}
	}
	ord.UserID = int(userID.Int64)
	return ord, nil
}
