package accounts

import (
	"strings"

	"github.com/cleared-dev/tiers/internal/model"
)

// labelSeparator splits a code from its description in candidate labels.
const labelSeparator = " - "

// matches reports whether label designates the account for prefix. A label
// carrying the prefix twice in a row ("401 401") is malformed and never matches.
func matches(prefix, label string) bool {
	return strings.Contains(label, prefix) && !strings.Contains(label, prefix+" "+prefix)
}

// Resolve returns the ID of the first candidate whose label matches prefix.
func Resolve(prefix string, candidates []model.AccountCandidate) (string, bool) {
	if prefix == "" {
		return "", false
	}
	for _, c := range candidates {
		if matches(prefix, c.Label) {
			return c.ID, true
		}
	}
	return "", false
}

// NormalizeLabels strips the redundant text after the first separator from
// every candidate matching prefix: "401 - Suppliers" becomes "401". A label
// is only rewritten when the kept part still contains prefix, so the result
// of Resolve is the same before and after. It returns the number of labels
// rewritten; a second pass rewrites nothing.
func NormalizeLabels(prefix string, candidates []model.AccountCandidate) int {
	if prefix == "" {
		return 0
	}
	n := 0
	for i := range candidates {
		label := candidates[i].Label
		if !matches(prefix, label) {
			continue
		}
		head, _, found := strings.Cut(label, labelSeparator)
		if !found || !strings.Contains(head, prefix) {
			continue
		}
		candidates[i].Label = head
		n++
	}
	return n
}
