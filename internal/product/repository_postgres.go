package product

import (
	"database/sql"

	"github.com/lib/pq"
)

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

const productColumns = `
	p."productId", p."productName", p."productDesc", p."productPrice",
	p."categoryId", c."categoryName", p."productImg", p."countInStock",
	p."createdAt", p."updatedAt"
`

const (
	listProductsQuery = `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN category c ON c."categoryId" = p."categoryId"
		ORDER BY p."productId"
	`
	listProductsByCategoryQuery = `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN category c ON c."categoryId" = p."categoryId"
		WHERE p."categoryId" = ANY($1::int[])
		ORDER BY p."productId"
	`
	getProductByIDQuery = `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN category c ON c."categoryId" = p."categoryId"
		WHERE p."productId" = $1
	`
	insertProductQuery = `
		INSERT INTO products ("productName", "productDesc", "productPrice", "categoryId", "productImg", "countInStock", "createdAt", "updatedAt")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING "productId"
	`
	updateProductQuery = `
		UPDATE products
		SET "productName" = $1,
			"productDesc" = $2,
			"productPrice" = $3,
			"categoryId" = $4,
			"countInStock" = $5,
			"updatedAt" = $6
		WHERE "productId" = $7
	`
	setProductImageQuery = `UPDATE products SET "productImg" = $1 WHERE "productId" = $2`
	deleteProductQuery   = `DELETE FROM products WHERE "productId" = $1`
	countProductsQuery   = `SELECT COUNT(*) FROM products`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(categoryIDs []int) ([]Product, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if len(categoryIDs) > 0 {
		rows, err = r.db.Query(listProductsByCategoryQuery, pq.Array(categoryIDs))
	} else {
		rows, err = r.db.Query(listProductsQuery)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(getProductByIDQuery, id))
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	err := r.db.QueryRow(insertProductQuery,
		p.Name, p.Description, p.Price, p.CategoryID, p.Image, p.CountInStock, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	res, err := r.db.Exec(updateProductQuery,
		p.Name, p.Description, p.Price, p.CategoryID, p.CountInStock, p.UpdatedAt, id,
	)
	if err != nil {
		return Product{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Product{}, ErrNotFound
	}
	p.ID = id
	return p, nil
}

func (r *PostgresRepository) SetImage(id int, filename string) error {
	res, err := r.db.Exec(setProductImageQuery, filename, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteProductQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(countProductsQuery).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var (
		p            Product
		desc         sql.NullString
		categoryID   sql.NullInt64
		categoryName sql.NullString
		image        sql.NullString
		createdAt    sql.NullString
		updatedAt    sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &desc, &p.Price, &categoryID, &categoryName, &image, &p.CountInStock, &createdAt, &updatedAt); err != nil {
		return Product{}, err
	}
	if desc.Valid {
		p.Description = desc.String
	}
	if categoryID.Valid {
		id := int(categoryID.Int64)
		p.CategoryID = &id
	}
	if categoryName.Valid {
		p.CategoryName = &categoryName.String
	}
	if image.Valid {
		p.Image = &image.String
	}
	if createdAt.Valid {
		p.CreatedAt = createdAt.String
	}
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.String
	}
	return p, nil
}
