package category

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Category, error) {
	rows, err := r.db.Query(`SELECT id, name, image FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		var (
			cat   Category
			image sql.NullString
		)
		if err := rows.Scan(&cat.ID, &cat.Name, &image); err != nil {
			return nil, err
		}
		cat.Image = image.String
		out = append(out, cat)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(cat Category) (Category, error) {
	err := r.db.QueryRow(`INSERT INTO categories (name, image) VALUES ($1,$2) RETURNING id`, cat.Name, cat.Image).Scan(&cat.ID)
	if err != nil {
		return Category{}, err
	}
	return cat, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
