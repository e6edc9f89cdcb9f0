package model

import "strconv"

// Account represents a row in chart-of-accounts.csv.
type Account struct {
	ID          int
	Code        string
	Name        string
	Class       int // OHADA class, 1-9; third parties live in class 4
	Description string
}

// Label renders the account the way the record screens display it: "401 - Suppliers".
func (a Account) Label() string {
	if a.Name == "" {
		return a.Code
	}
	return a.Code + " - " + a.Name
}

// Candidate converts the account into a selectable option for the account field.
func (a Account) Candidate() AccountCandidate {
	return AccountCandidate{ID: strconv.Itoa(a.ID), Label: a.Label()}
}

// AccountCandidate is one selectable option of the account field.
// ID is opaque to everything except the form submission.
type AccountCandidate struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}
