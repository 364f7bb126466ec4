package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectCountry(t *testing.T) {
	cases := []struct {
		location string
		want     string
		ok       bool
	}{
		{"Berlin, Germany", "DE", true},
		{"germany", "DE", true},
		{"Austin, TX", "US", true},
		{"San Francisco, CA 94103", "US", true},
		{"Toronto, ON", "CA", true},
		{"Montréal, Québec", "CA", true},
		{"London", "GB", true},
		{"Greater London Area", "GB", true},
		{"San Francisco Bay Area", "US", true},
		{"Tokyo, Japan", "JP", true},
		{"São Paulo", "BR", true},
		{"U.S.", "US", true},
		{"UK", "GB", true},
		{"New York", "US", true},
		{"Lagos, Nigeria", "NG", true},
		{"Georgia", "US", true},
		{"", "", false},
		{"   ", "", false},
		{"Earth", "", false},
		{"Remote", "", false},
		{"somewhere over the rainbow", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.location, func(t *testing.T) {
			got, ok := DetectCountry(tc.location)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDetectCountryIgnoresShortWordsInFreeText(t *testing.T) {
	// "us" inside a sentence must not be read as the United States.
	_, ok := DetectCountry("wherever you need us")
	assert.False(t, ok)
}

func TestAbbreviationTablesAreConsistent(t *testing.T) {
	for name, abbr := range usStates {
		assert.Equal(t, name, usStateAbbrs[abbr])
	}
	for name, abbr := range caProvinces {
		// Newfoundland has two spellings sharing one abbreviation.
		if abbr == "NL" || abbr == "QC" {
			continue
		}
		assert.Equal(t, name, caProvinceAbbrs[abbr])
	}
}
