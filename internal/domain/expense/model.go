package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies an expense.
type Category string

const (
	CategoryPerDiem  Category = "Per Diem"
	CategoryTaxi     Category = "Taxi/Uber"
	CategoryHotel    Category = "Hotel"
	CategoryParking  Category = "Parking"
	CategorySupplies Category = "Supplies"
	CategoryOther    Category = "Other"
)

// DefaultCategory applies when an expense is added without a category.
const DefaultCategory = CategoryPerDiem

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryPerDiem, CategoryTaxi, CategoryHotel, CategoryParking, CategorySupplies, CategoryOther:
		return true
	}
	return false
}

// Expense is a reimbursable cost incurred for a show.
type Expense struct {
	ID          string          `json:"id"`
	ShowID      string          `json:"show_id"`
	Date        string          `json:"date"`
	Category    Category        `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Amounts extracts the expense amounts for the billing aggregator.
func Amounts(expenses []Expense) []decimal.Decimal {
	amounts := make([]decimal.Decimal, len(expenses))
	for i, e := range expenses {
		amounts[i] = e.Amount
	}
	return amounts
}
