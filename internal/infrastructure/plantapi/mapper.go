package plantapi

import (
	"github.com/plantshop/backend/internal/domain"
	"github.com/shopspring/decimal"
)

// NotAvailable is shown in place of a missing or unusable price
const NotAvailable = "N/A"

// Display holds the substitutions applied when a record field is absent
type Display struct {
	PlaceholderImage       string
	PlaceholderDescription string
	CurrencySymbol         string
}

// DefaultDisplay is used when no display settings are configured
var DefaultDisplay = Display{
	PlaceholderImage:       "https://via.placeholder.com/300x200?text=Plant",
	PlaceholderDescription: "No description available.",
	CurrencySymbol:         "৳",
}

// MapToCard converts a raw plant record into its render-ready card
func MapToCard(plant domain.PlantRecord, display Display) domain.PlantCard {
	card := domain.PlantCard{
		Name:        plant.Name,
		Category:    plant.CategoryName(),
		Image:       display.PlaceholderImage,
		Description: display.PlaceholderDescription,
		PriceLabel:  NotAvailable,
		Price:       decimal.Zero,
		Raw:         plant,
	}

	if plant.Image != nil && *plant.Image != "" {
		card.Image = *plant.Image
	}
	if plant.Description != nil && *plant.Description != "" {
		card.Description = *plant.Description
	}
	if price, ok := plant.ParsePrice(); ok {
		card.Price = price
		card.PriceLabel = FormatPrice(price, display.CurrencySymbol)
	}

	return card
}

// MapToCards converts a list of records, preserving order
func MapToCards(plants []domain.PlantRecord, display Display) []domain.PlantCard {
	cards := make([]domain.PlantCard, 0, len(plants))
	for _, plant := range plants {
		cards = append(cards, MapToCard(plant, display))
	}
	return cards
}

// MapToCartSummary builds the cart panel from the current lines and total
func MapToCartSummary(lines []domain.CartLine, total decimal.Decimal, display Display) domain.CartSummary {
	summary := domain.CartSummary{
		Lines:      make([]domain.CartLineView, 0, len(lines)),
		Total:      total,
		TotalLabel: FormatPrice(total, display.CurrencySymbol),
		Empty:      len(lines) == 0,
	}

	for _, line := range lines {
		lineTotal := line.Plant.PriceValue().Mul(decimal.NewFromInt(int64(line.Quantity)))
		summary.Lines = append(summary.Lines, domain.CartLineView{
			Plant:          MapToCard(line.Plant, display),
			Quantity:       line.Quantity,
			LineTotal:      lineTotal,
			LineTotalLabel: FormatPrice(lineTotal, display.CurrencySymbol),
		})
		summary.ItemCount += line.Quantity
	}

	return summary
}

// FormatPrice renders an amount with the currency symbol, e.g. "৳200"
func FormatPrice(amount decimal.Decimal, symbol string) string {
	return symbol + amount.String()
}
