package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePartyType(t *testing.T) {
	tests := []struct {
		in     string
		want   PartyType
		wantOK bool
	}{
		{"SUPPLIER", PartySupplier, true},
		{" customer ", PartyCustomer, true},
		{"Employee", PartyEmployee, true},
		{"other", PartyOther, true},
		{"", "", false},
		{"VENDOR", "", false},
	}
	for _, tt := range tests {
		got, ok := ParsePartyType(tt.in)
		assert.Equal(t, tt.wantOK, ok, "ParsePartyType(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParsePartyType(%q)", tt.in)
	}
}

func TestAccountLabelAndCandidate(t *testing.T) {
	acct := Account{ID: 4010, Code: "401", Name: "Suppliers", Class: 4}
	assert.Equal(t, "401 - Suppliers", acct.Label())
	assert.Equal(t, AccountCandidate{ID: "4010", Label: "401 - Suppliers"}, acct.Candidate())

	bare := Account{ID: 1, Code: "42"}
	assert.Equal(t, "42", bare.Label())
}
