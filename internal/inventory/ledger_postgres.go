package inventory

import (
	"database/sql"
)

// PostgresLedger implements Ledger with a single transaction per call.
// Each product row is locked with FOR UPDATE before the conditional
// decrement, so concurrent checkouts against the same product cannot lose
// updates; any shortfall rolls the whole transaction back.
type PostgresLedger struct {
	db *sql.DB
}

func NewPostgresLedger(db *sql.DB) *PostgresLedger {
	return &PostgresLedger{db: db}
}

func (l *PostgresLedger) ReserveAll(items []Reservation) error {
	tx, err := l.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, it := range items {
		var (
			name  string
			stock int
		)
		err := tx.QueryRow(`SELECT name, stock FROM products WHERE id = $1 FOR UPDATE`, it.ProductID).Scan(&name, &stock)
		if err == sql.ErrNoRows {
			return productNotFound(it.ProductID)
		}
		if err != nil {
			return err
		}
		if stock < it.Quantity {
			return insufficientStock(name, it.Quantity, stock)
		}
		if _, err := tx.Exec(`UPDATE products SET stock = stock - $2 WHERE id = $1`, it.ProductID, it.Quantity); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (l *PostgresLedger) RestoreAll(items []Reservation) error {
	tx, err := l.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, it := range items {
		// missing products are skipped: the order snapshot outlives the product
		if _, err := tx.Exec(`UPDATE products SET stock = stock + $2 WHERE id = $1`, it.ProductID, it.Quantity); err != nil {
			return err
		}
	}

	return tx.Commit()
}
