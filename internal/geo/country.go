// Package geo turns free-text locations into country codes for display
// statistics. Matching is heuristic: unknown or ambiguous text yields no
// match rather than a guess.
package geo

import (
	"strings"
	"unicode"
)

const (
	CountryUS = "US"
	CountryCA = "CA"

	// Phrases this short are only trusted when they make up a whole
	// comma-separated segment ("NYC", "UK"), never inside running text.
	minFreeTextPhraseLen = 4
	maxPhraseWords       = 4
)

var (
	usStateAbbrs    = invert(usStates)
	caProvinceAbbrs = invert(caProvinces)
)

// DetectCountry maps a location such as "Berlin, Germany", "Austin, TX" or
// "Greater London Area" to an ISO 3166-1 alpha-2 code.
func DetectCountry(location string) (string, bool) {
	location = strings.TrimSpace(location)
	if location == "" {
		return "", false
	}

	// Most people write "city, region, country"; the last segment is the
	// most specific signal for the country.
	parts := strings.FieldsFunc(location, func(r rune) bool {
		return r == ',' || r == ';' || r == '|' || r == '/'
	})
	for i := len(parts) - 1; i >= 0; i-- {
		if code, ok := matchSegment(parts[i]); ok {
			return code, true
		}
	}

	return matchFreeText(location)
}

func matchSegment(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	// "TX" or "CA 94103": an upper-case postal abbreviation, optionally
	// followed by a postal code.
	fields := strings.Fields(raw)
	if isPostalAbbr(fields[0]) && (len(fields) == 1 || looksLikePostalCode(fields[1:])) {
		if _, ok := usStateAbbrs[fields[0]]; ok {
			return CountryUS, true
		}
		if _, ok := caProvinceAbbrs[fields[0]]; ok {
			return CountryCA, true
		}
	}

	return lookupPhrase(normalize(raw))
}

func matchFreeText(location string) (string, bool) {
	words := strings.FieldsFunc(strings.ToLower(location), func(r rune) bool {
		return !(unicode.IsLetter(r) || r == '.' || r == '\'')
	})
	for i := range words {
		words[i] = strings.Trim(words[i], ".'")
	}

	for n := min(maxPhraseWords, len(words)); n >= 1; n-- {
		for i := len(words) - n; i >= 0; i-- {
			phrase := strings.Join(words[i:i+n], " ")
			if len(phrase) < minFreeTextPhraseLen {
				continue
			}
			if code, ok := lookupPhrase(phrase); ok {
				return code, true
			}
		}
	}
	return "", false
}

func lookupPhrase(p string) (string, bool) {
	for _, candidate := range []string{p, strings.TrimSuffix(p, ".")} {
		if code, ok := countryAliases[candidate]; ok {
			return code, true
		}
		if _, ok := usStates[candidate]; ok {
			return CountryUS, true
		}
		if _, ok := caProvinces[candidate]; ok {
			return CountryCA, true
		}
		if code, ok := cityCountries[candidate]; ok {
			return code, true
		}
	}
	return "", false
}

func normalize(s string) string {
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	return strings.Trim(s, " !?()\"'")
}

func isPostalAbbr(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func looksLikePostalCode(fields []string) bool {
	for _, f := range fields {
		for _, r := range f {
			if !unicode.IsDigit(r) && !unicode.IsUpper(r) && r != '-' {
				return false
			}
		}
	}
	return true
}

func invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}
