package order

import (
	"database/sql"
	"log"

	"github.com/shopspring/decimal"
)

// PostgresRepository implements Repository using Postgres. Multi-row
// writes run inside a transaction so an order and its items become
// visible atomically, or not at all.
type PostgresRepository struct {
	db *sql.DB
}

const orderSelect = `
	SELECT o."orderId", o."shippingAddress1", o."shippingAddress2", o.city, o.zip, o.country, o.phone,
		o.status, o."totalPrice", o."userId",
		COALESCE(u."firstName" || ' ' || u."lastName", ''),
		o."dateOrdered",
		oi."orderItemId", oi."productId", oi.quantity, p."productName", p."productPrice", c."categoryName"
	FROM orders o
	LEFT JOIN users u ON u."userId" = o."userId"
	LEFT JOIN order_items oi ON oi."orderId" = o."orderId"
	LEFT JOIN products p ON p."productId" = oi."productId"
	LEFT JOIN category c ON c."categoryId" = p."categoryId"
`

const (
	getOrderQuery = orderSelect + `
		WHERE o."orderId" = $1
		ORDER BY oi."orderItemId"
	`
	listOrdersQuery = orderSelect + `
		ORDER BY o."dateOrdered" DESC, o."orderId" DESC, oi."orderItemId"
	`
	listOrdersByUserQuery = orderSelect + `
		WHERE o."userId" = $1
		ORDER BY o."dateOrdered" DESC, o."orderId" DESC, oi."orderItemId"
	`

	insertOrderQuery = `
		INSERT INTO orders ("shippingAddress1", "shippingAddress2", city, zip, country, phone, status, "totalPrice", "userId", "dateOrdered")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING "orderId"
	`
	insertOrderItemQuery = `
		INSERT INTO order_items ("orderId", "productId", quantity)
		VALUES ($1, $2, $3)
	`
	updateOrderQuery = `
		UPDATE orders
		SET "shippingAddress1" = $1,
			"shippingAddress2" = $2,
			city = $3,
			zip = $4,
			country = $5,
			phone = $6,
			status = $7,
			"totalPrice" = $8,
			"userId" = $9
		WHERE "orderId" = $10
	`
	deleteOrderItemsQuery = `DELETE FROM order_items WHERE "orderId" = $1`
	deleteOrderQuery      = `DELETE FROM orders WHERE "orderId" = $1`
	countOrdersQuery      = `SELECT COUNT(*) FROM orders`
	totalSalesQuery       = `SELECT COALESCE(SUM("totalPrice"), 0) FROM orders`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ord Order, items []ItemInput) (Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, err
	}
	defer tx.Rollback()

	err = tx.QueryRow(insertOrderQuery,
		ord.ShippingAddress1, ord.ShippingAddress2, ord.City, ord.Zip, ord.Country, ord.Phone,
		ord.Status, ord.TotalPrice, ord.UserID, ord.DateOrdered,
	).Scan(&ord.ID)
	if err != nil {
		return Order{}, err
	}

	for _, item := range items {
		if _, err := tx.Exec(insertOrderItemQuery, ord.ID, item.ProductID, item.Quantity); err != nil {
			return Order{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	rows, err := r.db.Query(getOrderQuery, id)
	if err != nil {
		return Order{}, err
	}
	defer rows.Close()

	orders, err := foldOrderRows(rows)
	if err != nil {
		return Order{}, err
	}
	if len(orders) == 0 {
		return Order{}, ErrNotFound
	}
	return orders[0], nil
}

func (r *PostgresRepository) Update(id int, ord Order, items []ItemInput) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(updateOrderQuery,
		ord.ShippingAddress1, ord.ShippingAddress2, ord.City, ord.Zip, ord.Country, ord.Phone,
		ord.Status, ord.TotalPrice, ord.UserID, id,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	// item replacement: old rows go first so their ids become
	// unresolvable, then the fresh ones are created
	if items != nil {
		if _, err := tx.Exec(deleteOrderItemsQuery, id); err != nil {
			return err
		}
		for _, item := range items {
			if _, err := tx.Exec(insertOrderItemQuery, id, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) Delete(id int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(deleteOrderItemsQuery, id); err != nil {
		return err
	}

	res, err := tx.Exec(deleteOrderQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

func (r *PostgresRepository) List() ([]Order, error) {
	rows, err := r.db.Query(listOrdersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return foldOrderRows(rows)
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	rows, err := r.db.Query(listOrdersByUserQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return foldOrderRows(rows)
}

func (r *PostgresRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(countOrdersQuery).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) TotalSales() (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.QueryRow(totalSalesQuery).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// foldOrderRows collapses the joined result set into orders with their
// expanded items, preserving the row order of the query.
func foldOrderRows(rows *sql.Rows) ([]Order, error) {
	orders := make([]Order, 0)
	index := make(map[int]int)

	for rows.Next() {
		var (
			ord          Order
			itemID       sql.NullInt64
			productID    sql.NullInt64
			quantity     sql.NullInt64
			productName  sql.NullString
			productPrice decimal.NullDecimal
			categoryName sql.NullString
		)
		err := rows.Scan(&ord.ID, &ord.ShippingAddress1, &ord.ShippingAddress2, &ord.City, &ord.Zip,
			&ord.Country, &ord.Phone, &ord.Status, &ord.TotalPrice, &ord.UserID, &ord.UserName,
			&ord.DateOrdered, &itemID, &productID, &quantity, &productName, &productPrice, &categoryName)
		if err != nil {
			log.Printf("order row scan failed: %v", err)
			continue
		}

		pos, seen := index[ord.ID]
		if !seen {
			ord.Items = make([]Item, 0, 1)
			orders = append(orders, ord)
			pos = len(orders) - 1
			index[ord.ID] = pos
		}

		if itemID.Valid {
			item := Item{
				ID:        int(itemID.Int64),
				ProductID: int(productID.Int64),
				Quantity:  int(quantity.Int64),
			}
			if productName.Valid {
				item.ProductName = productName.String
			}
			if productPrice.Valid {
				item.ProductPrice = productPrice.Decimal
			}
			if categoryName.Valid {
				item.CategoryName = &categoryName.String
			}
			orders[pos].Items = append(orders[pos].Items, item)
		}
	}

	return orders, rows.Err()
}
