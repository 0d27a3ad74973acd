package page

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Page, error) {
	rows, err := r.db.Query(`SELECT id, slug, title, content, updated_at FROM pages ORDER BY slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Page, 0)
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetBySlug(slug string) (Page, error) {
	row := r.db.QueryRow(`SELECT id, slug, title, content, updated_at FROM pages WHERE slug = $1`, slug)
	p, err := scanPage(row)
	if err == sql.ErrNoRows {
		return Page{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) Upsert(p Page) (Page, error) {
	err := r.db.QueryRow(`INSERT INTO pages (slug, title, content, updated_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (slug) DO UPDATE SET title = EXCLUDED.title, content = EXCLUDED.content, updated_at = EXCLUDED.updated_at
		RETURNING id`,
		p.Slug, p.Title, p.Content, p.UpdatedAt).Scan(&p.ID)
	if err != nil {
		return Page{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Delete(slug string) error {
	res, err := r.db.Exec(`DELETE FROM pages WHERE slug = $1`, slug)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPage(row interface{ Scan(...interface{}) error }) (Page, error) {
	var (
		p       Page
		content sql.NullString
		updated sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Slug, &p.Title, &content, &updated); err != nil {
		return Page{}, err
	}
	p.Content = content.String
	p.UpdatedAt = updated.String
	return p, nil
}
