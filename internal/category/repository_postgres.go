package category

import (
	"database/sql"
)

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

const (
	listCategoriesQuery = `
		SELECT "categoryId", "categoryName", color, icon, image
		FROM category
		ORDER BY "categoryId"
	`
	getCategoryByIDQuery = `
		SELECT "categoryId", "categoryName", color, icon, image
		FROM category
		WHERE "categoryId" = $1
	`
	getCategoryByNameQuery = `
		SELECT "categoryId", "categoryName", color, icon, image
		FROM category
		WHERE "categoryName" = $1
	`
	insertCategoryQuery = `
		INSERT INTO category ("categoryName", color, icon, image)
		VALUES ($1, $2, $3, $4)
		RETURNING "categoryId"
	`
	updateCategoryQuery = `
		UPDATE category
		SET "categoryName" = $1, color = $2, icon = $3, image = $4
		WHERE "categoryId" = $5
	`
	deleteCategoryQuery = `DELETE FROM category WHERE "categoryId" = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Category, error) {
	rows, err := r.db.Query(listCategoriesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			continue
		}
		out = append(out, cat)
	}
	return out, nil
}

func (r *PostgresRepository) GetByID(id int) (Category, error) {
	return r.getOne(getCategoryByIDQuery, id)
}

func (r *PostgresRepository) GetByName(name string) (Category, error) {
	return r.getOne(getCategoryByNameQuery, name)
}

func (r *PostgresRepository) getOne(query string, arg any) (Category, error) {
	cat, err := scanCategory(r.db.QueryRow(query, arg))
	if err == sql.ErrNoRows {
		return Category{}, ErrNotFound
	}
	if err != nil {
		return Category{}, err
	}
	return cat, nil
}

func (r *PostgresRepository) Create(cat Category) (Category, error) {
	err := r.db.QueryRow(insertCategoryQuery, cat.Name, cat.Color, cat.Icon, cat.Image).Scan(&cat.ID)
	if err != nil {
		return Category{}, err
	}
	return cat, nil
}

func (r *PostgresRepository) Update(id int, cat Category) (Category, error) {
	res, err := r.db.Exec(updateCategoryQuery, cat.Name, cat.Color, cat.Icon, cat.Image, id)
	if err != nil {
		return Category{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Category{}, ErrNotFound
	}
	cat.ID = id
	return cat, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteCategoryQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (Category, error) {
	var (
		cat   Category
		color sql.NullString
		icon  sql.NullString
		image sql.NullString
	)
	if err := row.Scan(&cat.ID, &cat.Name, &color, &icon, &image); err != nil {
		return Category{}, err
	}
	if color.Valid {
		cat.Color = &color.String
	}
	if icon.Valid {
		cat.Icon = &icon.String
	}
	if image.Valid {
		cat.Image = &image.String
	}
	return cat, nil
}
