package order

import "github.com/shopspring/decimal"

// Item is one line of an order. Items are owned exclusively by their
// parent order and never shared. ProductName, ProductPrice and
// CategoryName are filled at read time by joining the catalog; the
// price lives on the product, not the item.
type Item struct {
	ID           int             `json:"orderItemId"`
	ProductID    int             `json:"productId"`
	ProductName  string          `json:"productName,omitempty"`
	ProductPrice decimal.Decimal `json:"productPrice"`
	CategoryName *string         `json:"categoryName,omitempty"`
	Quantity     int             `json:"quantity"`
}

// Order is the aggregate returned by the order API. TotalPrice is
// computed once, when the item list is created or replaced; later
// product price changes never touch stored totals.
type Order struct {
	ID               int             `json:"orderId"`
	Items            []Item          `json:"orderItems"`
	ShippingAddress1 string          `json:"shippingAddress1"`
	ShippingAddress2 string          `json:"shippingAddress2,omitempty"`
	City             string          `json:"city"`
	Zip              string          `json:"zip"`
	Country          string          `json:"country"`
	Phone            string          `json:"phone"`
	Status           string          `json:"status"`
	TotalPrice       decimal.Decimal `json:"totalPrice"`
	UserID           int             `json:"user"`
	UserName         string          `json:"userName,omitempty"`
	DateOrdered      string          `json:"dateOrdered"`
}

// ItemInput is the (product, quantity) pair clients send. Duplicate
// products are legal and kept as separate line entries.
type ItemInput struct {
	ProductID int `json:"product"`
	Quantity  int `json:"quantity"`
}

const StatusPending = "pending"
