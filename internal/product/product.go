package product

import "github.com/shopspring/decimal"

// Product is a catalog entry. Price is decimal so order totals never
// pick up float drift. CategoryName is filled on reads that join the
// category table.
type Product struct {
	ID           int             `json:"productId"`
	Name         string          `json:"productName"`
	Description  string          `json:"productDesc,omitempty"`
	Price        decimal.Decimal `json:"productPrice"`
	CategoryID   *int            `json:"categoryId,omitempty"`
	CategoryName *string         `json:"categoryName,omitempty"`
	Image        *string         `json:"productImg,omitempty"`
	CountInStock int             `json:"countInStock"`
	CreatedAt    string          `json:"createdAt,omitempty"`
	UpdatedAt    string          `json:"updatedAt,omitempty"`
}
