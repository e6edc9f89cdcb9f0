// Package codegen derives a third-party code from its type and name.
package codegen

import (
	"strings"

	"github.com/cleared-dev/tiers/internal/classify"
	"github.com/cleared-dev/tiers/internal/model"
)

// NamePartLen is the maximum number of name letters appended to the prefix.
const NamePartLen = 3

// Generate returns the code for a record of type t named name, e.g.
// (SUPPLIER, "Acme Corp") -> "401ACM". It returns "" when t has no prefix or
// name has no ASCII letters.
func Generate(t model.PartyType, name string) string {
	prefix, ok := classify.PrefixFor(t)
	if !ok {
		return ""
	}
	part := NamePart(name)
	if part == "" {
		return ""
	}
	return prefix + part
}

// NamePart keeps the first three ASCII letters of name, upper-cased.
func NamePart(name string) string {
	var b strings.Builder
	for i := 0; i < len(name) && b.Len() < NamePartLen; i++ {
		c := name[i]
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
			b.WriteByte(c)
		}
	}
	return strings.ToUpper(b.String())
}
