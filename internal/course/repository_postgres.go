package course

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const courseColumns = `id, title, description, price, image, schedule, created_at, updated_at`

func (r *PostgresRepository) List() ([]Course, error) {
	rows, err := r.db.Query(`SELECT ` + courseColumns + ` FROM courses ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Course, error) {
	row := r.db.QueryRow(`SELECT `+courseColumns+` FROM courses WHERE id = $1`, id)
	c, err := scanCourse(row)
	if err == sql.ErrNoRows {
		return Course{}, ErrNotFound
	}
	return c, err
}

func (r *PostgresRepository) Create(c Course) (Course, error) {
	err := r.db.QueryRow(`INSERT INTO courses (title, description, price, image, schedule, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id`,
		c.Title, c.Description, c.Price, c.Image, c.Schedule, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
	if err != nil {
		return Course{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Update(id int, c Course) (Course, error) {
	res, err := r.db.Exec(`UPDATE courses SET title=$1, description=$2, price=$3, image=$4, schedule=$5, updated_at=$6 WHERE id=$7`,
		c.Title, c.Description, c.Price, c.Image, c.Schedule, c.UpdatedAt, id)
	if err != nil {
		return Course{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Course{}, ErrNotFound
	}
	c.ID = id
	return c, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ListApplications() ([]Application, error) {
	rows, err := r.db.Query(`SELECT id, course_id, name, email, phone, message, created_at FROM course_applications ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Application, 0)
	for rows.Next() {
		var (
			a       Application
			phone   sql.NullString
			message sql.NullString
			created sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.CourseID, &a.Name, &a.Email, &phone, &message, &created); err != nil {
			return nil, err
		}
		a.Phone = phone.String
		a.Message = message.String
		a.CreatedAt = created.String
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) CreateApplication(a Application) (Application, error) {
	err := r.db.QueryRow(`INSERT INTO course_applications (course_id, name, email, phone, message, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id`,
		a.CourseID, a.Name, a.Email, a.Phone, a.Message, a.CreatedAt).Scan(&a.ID)
	if err != nil {
		return Application{}, err
	}
	return a, nil
}

func scanCourse(row interface{ Scan(...interface{}) error }) (Course, error) {
	var (
		c        Course
		desc     sql.NullString
		image    sql.NullString
		schedule sql.NullString
		created  sql.NullString
		updated  sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Title, &desc, &c.Price, &image, &schedule, &created, &updated); err != nil {
		return Course{}, err
	}
	c.Description = desc.String
	c.Image = image.String
	c.Schedule = schedule.String
	c.CreatedAt = created.String
	c.UpdatedAt = updated.String
	return c, nil
}
