package order

import (
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ashikReza/eshop-backend/internal/events"
	"github.com/ashikReza/eshop-backend/internal/product"
)

var (
	ErrEmptyItems      = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("item quantity must be positive")
	ErrUnknownProduct  = errors.New("order item references an unknown product")
)

// ProductCatalog is the slice of the product service the order workflow
// needs: price resolution at total-computation time.
type ProductCatalog interface {
	GetByID(id int) (product.Product, error)
}

// Service implements the order workflow: item materialization, total
// aggregation and the read-time expansion of related records.
type Service struct {
	repo      Repository
	catalog   ProductCatalog
	publisher events.Publisher
}

func NewService(r Repository, catalog ProductCatalog, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Service{repo: r, catalog: catalog, publisher: publisher}
}

// Create validates the item list, resolves every product's current
// price, computes the total and persists order plus items in a single
// transaction. A missing product fails the whole order before anything
// is written.
func (s *Service) Create(ord Order, items []ItemInput) (Order, error) {
	if len(items) == 0 {
		return Order{}, ErrEmptyItems
	}

	total, err := s.priceItems(items)
	if err != nil {
		return Order{}, err
	}
	ord.TotalPrice = total

	if ord.Status == "" {
		ord.Status = StatusPending
	}
	ord.DateOrdered = time.Now().UTC().Format(time.RFC3339)

	created, err := s.repo.Create(ord, items)
	if err != nil {
		return Order{}, err
	}

	s.publish(created.ID, "created")
	return s.repo.GetByID(created.ID)
}

// UpdatePatch carries a partial order update. Nil fields keep the
// stored value; a non-empty Items slice replaces the whole item list.
type UpdatePatch struct {
	ShippingAddress1 *string     `json:"shippingAddress1"`
	ShippingAddress2 *string     `json:"shippingAddress2"`
	City             *string     `json:"city"`
	Zip              *string     `json:"zip"`
	Country          *string     `json:"country"`
	Phone            *string     `json:"phone"`
	Status           *string     `json:"status"`
	User             *int        `json:"user"`
	Items            []ItemInput `json:"orderItems"`
}

// Update merges the patch into the stored order. When the patch
// carries items, the old items are deleted, the new ones created and
// the total recomputed, all inside one transaction; otherwise items and
// total stay as they are.
func (s *Service) Update(id int, patch UpdatePatch) (Order, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return Order{}, err
	}

	if patch.ShippingAddress1 != nil {
		existing.ShippingAddress1 = *patch.ShippingAddress1
	}
	if patch.ShippingAddress2 != nil {
		existing.ShippingAddress2 = *patch.ShippingAddress2
	}
	if patch.City != nil {
		existing.City = *patch.City
	}
	if patch.Zip != nil {
		existing.Zip = *patch.Zip
	}
	if patch.Country != nil {
		existing.Country = *patch.Country
	}
	if patch.Phone != nil {
		existing.Phone = *patch.Phone
	}
	if patch.Status != nil {
		existing.Status = *patch.Status
	}
	if patch.User != nil {
		existing.UserID = *patch.User
	}

	var items []ItemInput
	if len(patch.Items) > 0 {
		total, err := s.priceItems(patch.Items)
		if err != nil {
			return Order{}, err
		}
		existing.TotalPrice = total
		items = patch.Items
	}

	if err := s.repo.Update(id, existing, items); err != nil {
		return Order{}, err
	}

	s.publish(id, "updated")
	return s.repo.GetByID(id)
}

// Delete removes the order and cascades to every item it owns.
func (s *Service) Delete(id int) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publish(id, "deleted")
	return nil
}

func (s *Service) GetByID(id int) (Order, error) {
	return s.repo.GetByID(id)
}

func (s *Service) List() ([]Order, error) {
	return s.repo.List()
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) Count() (int, error) {
	return s.repo.Count()
}

// TotalSales sums totalPrice over all orders; an empty order set yields
// zero, not an error.
func (s *Service) TotalSales() (decimal.Decimal, error) {
	return s.repo.TotalSales()
}

func (s *Service) priceItems(items []ItemInput) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range items {
		if item.Quantity <= 0 {
			return decimal.Zero, ErrInvalidQuantity
		}
		p, err := s.catalog.GetByID(item.ProductID)
		if err != nil {
			if err == product.ErrNotFound {
				return decimal.Zero, ErrUnknownProduct
			}
			return decimal.Zero, err
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total, nil
}

func (s *Service) publish(orderID int, eventType string) {
	if err := s.publisher.PublishOrderEvent(orderID, eventType); err != nil {
		log.Printf("order event publish failed (order %d, %s): %v", orderID, eventType, err)
	}
}
