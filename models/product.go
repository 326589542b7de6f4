package models

import (
	"github.com/shopspring/decimal"

	"retail-core/retail"
)

type Product struct {
	ProductID      int             `json:"product_id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	Stock          int             `json:"stock"`
	Kind           string          `json:"kind"`
	WarrantyMonths int             `json:"warranty_months,omitempty"`
	Brand          string          `json:"brand,omitempty"`
}

type CreateProductRequest struct {
	ProductID      int             `json:"product_id" binding:"required,min=1"`
	Name           string          `json:"name" binding:"required"`
	Price          decimal.Decimal `json:"price"`
	Stock          int             `json:"stock"`
	Kind           string          `json:"kind" binding:"omitempty,oneof=standard electronics"`
	WarrantyMonths int             `json:"warranty_months"`
	Brand          string          `json:"brand"`
}

// UpdateProductRequest changes price and/or stock. Absent fields are left alone.
type UpdateProductRequest struct {
	Price *decimal.Decimal `json:"price"`
	Stock *int             `json:"stock"`
}

type DiscountResponse struct {
	Original   decimal.Decimal `json:"original"`
	Rate       float64         `json:"rate"`
	Discounted decimal.Decimal `json:"discounted"`
}

func NewProduct(item retail.Item) Product {
	p := Product{
		ProductID: item.ID(),
		Name:      item.Name(),
		Price:     item.Price(),
		Stock:     item.Stock(),
		Kind:      string(item.Kind()),
	}
	if el, ok := item.(*retail.Electronics); ok {
		p.WarrantyMonths = el.WarrantyMonths()
		p.Brand = el.Brand()
	}
	return p
}

func NewProducts(items []retail.Item) []Product {
	out := make([]Product, len(items))
	for i, item := range items {
		out[i] = NewProduct(item)
	}
	return out
}
