package order

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("order not found")

// Repository defines persistence operations for orders. Create and
// Update must persist the order row and its items atomically; Delete
// must cascade to the items.
type Repository interface {
	// Create persists ord and its items in one transaction and returns
	// ord with its new id.
	Create(ord Order, items []ItemInput) (Order, error)
	// GetByID returns the order with items expanded (product name and
	// price) and the user's name resolved.
	GetByID(id int) (Order, error)
	// Update persists the merged order fields. A non-nil items slice
	// replaces every existing item in the same transaction; nil leaves
	// the item list untouched.
	Update(id int, ord Order, items []ItemInput) error
	// Delete removes the order and every item it owns.
	Delete(id int) error
	List() ([]Order, error)
	ListByUser(userID int) ([]Order, error)
	Count() (int, error)
	TotalSales() (decimal.Decimal, error)
}
