package model

import "strings"

// PartyType classifies a third party record.
type PartyType string

const (
	PartySupplier PartyType = "SUPPLIER"
	PartyCustomer PartyType = "CUSTOMER"
	PartyEmployee PartyType = "EMPLOYEE"
	PartyOther    PartyType = "OTHER"
)

// PartyTypes lists every type a record can carry, in display order.
var PartyTypes = []PartyType{PartyCustomer, PartySupplier, PartyEmployee, PartyOther}

// ParsePartyType accepts a type tag in any case. Unknown or empty input returns false.
func ParsePartyType(s string) (PartyType, bool) {
	t := PartyType(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range PartyTypes {
		if t == known {
			return t, true
		}
	}
	return "", false
}

// Display returns the human label used in selects and listings.
func (t PartyType) Display() string {
	switch t {
	case PartyCustomer:
		return "Customer"
	case PartySupplier:
		return "Supplier"
	case PartyEmployee:
		return "Employee"
	case PartyOther:
		return "Other"
	default:
		return string(t)
	}
}
