package domain

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// CategoryAll is the filter sentinel that selects the whole catalog
const CategoryAll = "All"

// PlantRecord is a plant exactly as the catalog API returned it.
// Optional fields stay nil when absent; defaults are applied at render time.
type PlantRecord struct {
	ID          any     `json:"id,omitempty"`
	Name        string  `json:"name"`
	Category    *string `json:"category,omitempty"`
	Price       any     `json:"price,omitempty"`
	Image       *string `json:"image,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CategoryName returns the category, or "" when absent
func (p PlantRecord) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return *p.Category
}

// HasPrice reports whether the API supplied any price value at all
func (p PlantRecord) HasPrice() bool {
	return p.Price != nil
}

// ParsePrice coerces the raw price to a decimal. ok is false when the
// price is absent or not a finite number.
func (p PlantRecord) ParsePrice() (price decimal.Decimal, ok bool) {
	switch v := p.Price.(type) {
	case nil, bool:
		return decimal.Zero, false
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(v), true
	}

	f, err := cast.ToFloat64E(p.Price)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

// PriceValue is the price used for totals: missing or invalid prices count as 0
func (p PlantRecord) PriceValue() decimal.Decimal {
	price, _ := p.ParsePrice()
	return price
}

// PlantCard is the render-ready form of a PlantRecord
type PlantCard struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	PriceLabel  string          `json:"priceLabel"`
	Raw         PlantRecord     `json:"raw"`
}

// CatalogResponse is the envelope returned by the catalog API.
// The plant list arrives under either "data" or "plants".
type CatalogResponse struct {
	Status  any             `json:"status,omitempty"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Plants  json.RawMessage `json:"plants,omitempty"`
}
