package accounts

import "github.com/cleared-dev/tiers/internal/model"

// DefaultChart returns the class 4 (third party) accounts of the OHADA chart,
// in the order they are offered on the record screen.
func DefaultChart() []model.Account {
	return []model.Account{
		{ID: 40, Code: "40", Name: "Suppliers and related accounts", Class: 4},
		{ID: 401, Code: "401", Name: "Suppliers, payables", Class: 4, Description: "Trade payables"},
		{ID: 4011, Code: "4011", Name: "Suppliers", Class: 4},
		{ID: 409, Code: "409", Name: "Suppliers, debit balances", Class: 4, Description: "Advances paid to suppliers"},
		{ID: 41, Code: "41", Name: "Customers and related accounts", Class: 4},
		{ID: 411, Code: "411", Name: "Customers", Class: 4, Description: "Trade receivables"},
		{ID: 4111, Code: "4111", Name: "Customers, sales", Class: 4},
		{ID: 419, Code: "419", Name: "Customers, credit balances", Class: 4, Description: "Advances received from customers"},
		{ID: 42, Code: "42", Name: "Staff", Class: 4},
		{ID: 421, Code: "421", Name: "Staff, advances", Class: 4},
		{ID: 422, Code: "422", Name: "Staff, wages payable", Class: 4, Description: "Net salaries due"},
		{ID: 425, Code: "425", Name: "Staff representatives", Class: 4},
	}
}
