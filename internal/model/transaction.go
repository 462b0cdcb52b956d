package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies a transaction as money in or money out.
type Category string

const (
	CategoryIncome  Category = "INCOME"
	CategoryExpense Category = "EXPENSE"
)

// Transaction is one normalized row from an uploaded sales/expense sheet.
type Transaction struct {
	OccurredOn  time.Time
	Description string
	Amount      decimal.Decimal // never negative
	Category    Category
}
