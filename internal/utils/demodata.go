package utils

import (
	"fmt"

	"github.com/ledgerline/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DemoTransactions builds the fixed synthetic dataset used to seed an empty
// store on first start: one record on the 15th of every month from 2024-01
// through 2025-12, alternating a salary income and a dining expense.
// IDs are left empty; the store assigns them on insert.
func DemoTransactions() []domain.Transaction {
	salary := decimal.NewFromInt(5000)
	dining := decimal.NewFromInt(200)

	var data []domain.Transaction
	income := true
	for year := 2024; year <= 2025; year++ {
		for month := 1; month <= 12; month++ {
			t := domain.Transaction{
				Date: fmt.Sprintf("%04d-%02d-15", year, month),
			}
			if income {
				t.Type = domain.Income
				t.Category = "Salary"
				t.Amount = salary
				t.Notes = "Monthly salary"
			} else {
				t.Type = domain.Expense
				t.Category = "Food"
				t.Amount = dining
				t.Notes = "Dining out"
			}
			data = append(data, t)
			income = !income
		}
	}
	return data
}
