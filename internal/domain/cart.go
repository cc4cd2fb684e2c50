package domain

import "github.com/shopspring/decimal"

// CartLine is one distinct cart entry. Quantity is always at least 1.
type CartLine struct {
	Plant    PlantRecord `json:"plant"`
	Quantity int         `json:"quantity"`
}

// CartLineView is a cart line ready for rendering
type CartLineView struct {
	Plant          PlantCard       `json:"plant"`
	Quantity       int             `json:"quantity"`
	LineTotal      decimal.Decimal `json:"lineTotal"`
	LineTotalLabel string          `json:"lineTotalLabel"`
}

// CartSummary is the cart panel: lines in insertion order plus the total
type CartSummary struct {
	Lines      []CartLineView  `json:"lines"`
	Total      decimal.Decimal `json:"total"`
	TotalLabel string          `json:"totalLabel"`
	ItemCount  int             `json:"itemCount"`
	Empty      bool            `json:"empty"`
}
