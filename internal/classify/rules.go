// Package classify maps the three-character prefix of an accounting code to a
// third-party type and back.
package classify

import (
	"strings"
	"unicode/utf8"

	"github.com/cleared-dev/tiers/internal/model"
)

// PrefixLen is the number of leading code characters used as the classification key.
const PrefixLen = 3

// Rule links one code prefix to one party type.
type Rule struct {
	Prefix string
	Type   model.PartyType
}

// Rules is the fixed rule set. Prefixes and types are each unique, so the
// mapping is a bijection.
var Rules = []Rule{
	{Prefix: "401", Type: model.PartySupplier},
	{Prefix: "411", Type: model.PartyCustomer},
	{Prefix: "422", Type: model.PartyEmployee},
}

var (
	byPrefix = make(map[string]model.PartyType, len(Rules))
	byType   = make(map[model.PartyType]string, len(Rules))
)

func init() {
	for _, r := range Rules {
		byPrefix[r.Prefix] = r.Type
		byType[r.Type] = r.Prefix
	}
}

// Prefix returns the normalized (trimmed, upper-cased) first three characters
// of code. It returns false when the normalized code is too short.
func Prefix(code string) (string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if utf8.RuneCountInString(code) < PrefixLen {
		return "", false
	}
	return string([]rune(code)[:PrefixLen]), true
}

// Classify returns the party type encoded in the prefix of code.
func Classify(code string) (model.PartyType, bool) {
	prefix, ok := Prefix(code)
	if !ok {
		return "", false
	}
	t, ok := byPrefix[prefix]
	return t, ok
}

// PrefixFor returns the code prefix assigned to t.
func PrefixFor(t model.PartyType) (string, bool) {
	p, ok := byType[t]
	return p, ok
}
