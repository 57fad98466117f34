// Package isbn validates and canonicalizes ISBN identifiers.
package isbn

import (
	"log/slog"
	"strings"
)

// Canonical strips hyphens and spaces, leaving only the bare identifier.
func Canonical(s string) string {
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, " ", "")
}

// IsISBN10 reports whether s is a valid 10-digit ISBN in canonical form.
// The final position may be the roman numeral X (value 10).
func IsISBN10(s string) bool {
	if len(s) != 10 {
		return false
	}

	sum := 0
	for i, c := range s {
		var digit int
		switch {
		case c >= '0' && c <= '9':
			digit = int(c - '0')
		case (c == 'X' || c == 'x') && i == 9:
			digit = 10
		default:
			return false
		}
		sum += (10 - i) * digit
	}

	return sum%11 == 0
}

// IsISBN13 reports whether s is a valid 13-digit ISBN in canonical form.
func IsISBN13(s string) bool {
	if len(s) != 13 {
		return false
	}

	sum := 0
	for i, c := range s {
		if c < '0' || c > '9' {
			return false
		}
		digit := int(c - '0')
		if i%2 == 1 {
			digit *= 3
		}
		sum += digit
	}

	return sum%10 == 0
}

// ToISBN13 converts a canonical 10-digit ISBN to its 13-digit equivalent
// by prefixing the 978 bookland code and recomputing the check digit.
// The input must already satisfy IsISBN10.
func ToISBN13(isbn10 string) string {
	core := "978" + isbn10[:9]

	sum := 0
	for i, c := range core {
		digit := int(c - '0')
		if i%2 == 1 {
			digit *= 3
		}
		sum += digit
	}
	check := (10 - sum%10) % 10

	return core + string(rune('0'+check))
}

// Normalize reduces raw input to the set of unique, valid, canonical
// 13-digit ISBNs. Ten-digit values are converted to their 13-digit form.
// Invalid values are logged and dropped; equivalent formattings of the
// same ISBN collapse to a single entry. The order of the returned slice
// is unspecified.
func Normalize(logger *slog.Logger, raw []string) []string {
	unique := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		unique[r] = struct{}{}
	}

	seen := make(map[string]struct{}, len(unique))
	isbns := make([]string, 0, len(unique))
	for r := range unique {
		isbn := Canonical(r)
		if IsISBN10(isbn) {
			isbn = ToISBN13(isbn)
		}
		if !IsISBN13(isbn) {
			logger.Error("Not a valid ISBN", "value", r)
			continue
		}
		if _, dup := seen[isbn]; dup {
			continue
		}
		seen[isbn] = struct{}{}
		isbns = append(isbns, isbn)
	}

	return isbns
}
