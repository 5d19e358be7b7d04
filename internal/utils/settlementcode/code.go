// Package settlementcode derives human-legible settlement codes from the
// driver name, a reference date and the number of trips being settled.
// Uniqueness is enforced by the persistence layer (unique constraint plus
// regenerate-on-conflict), not here.
package settlementcode

import (
	"fmt"
	"strings"
	"time"
)

const (
	prefix       = "AC"
	nameFragment = 4
)

// accentFold maps the accented letters that show up in Brazilian driver names
// to their ASCII equivalents.
var accentFold = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"í", "i", "ì", "i", "î", "i", "ï", "i",
	"ó", "o", "ò", "o", "ô", "o", "õ", "o", "ö", "o",
	"ú", "u", "ù", "u", "û", "u", "ü", "u",
	"ç", "c", "ñ", "n",
	"Á", "A", "À", "A", "Â", "A", "Ã", "A", "Ä", "A",
	"É", "E", "È", "E", "Ê", "E", "Ë", "E",
	"Í", "I", "Ì", "I", "Î", "I", "Ï", "I",
	"Ó", "O", "Ò", "O", "Ô", "O", "Õ", "O", "Ö", "O",
	"Ú", "U", "Ù", "U", "Û", "U", "Ü", "U",
	"Ç", "C", "Ñ", "N",
)

// Generate produces a settlement code like "AC-JOAO-20250302-3": prefix,
// normalized driver-name fragment, date token and trip count.
func Generate(driverName string, referenceDate time.Time, tripCount int) string {
	return fmt.Sprintf("%s-%s-%s-%d",
		prefix,
		normalizeName(driverName),
		referenceDate.Format("20060102"),
		tripCount,
	)
}

// GenerateWithSuffix appends a disambiguating suffix; used when the plain code
// collides with an existing settlement.
func GenerateWithSuffix(driverName string, referenceDate time.Time, tripCount int, suffix string) string {
	return Generate(driverName, referenceDate, tripCount) + "-" + strings.ToUpper(suffix)
}

// normalizeName folds accents, strips non-letters and returns the first
// letters of the name, uppercased. Falls back to "DRV" for names with no
// usable letters.
func normalizeName(name string) string {
	folded := accentFold.Replace(strings.TrimSpace(name))

	var b strings.Builder
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
			if b.Len() >= nameFragment {
				break
			}
		}
	}
	if b.Len() == 0 {
		return "DRV"
	}
	return strings.ToUpper(b.String())
}
