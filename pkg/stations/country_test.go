package stations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCountryCode(t *testing.T) {
	cases := []struct {
		name         string
		raw          string
		expectedCode string
		expected     CountryCodeStatus
	}{
		{name: "two letter code accepted as-is", raw: "us", expectedCode: "us", expected: CountryPresent},
		{name: "no case enforcement", raw: "DE", expectedCode: "DE", expected: CountryPresent},
		{name: "three letters map to sentinel", raw: "USA", expectedCode: "UN", expected: CountryUnknown},
		{name: "single letter maps to sentinel", raw: "u", expectedCode: "UN", expected: CountryUnknown},
		{name: "whitespace only maps to sentinel", raw: "   ", expectedCode: "UN", expected: CountryUnknown},
		{name: "empty input is absent, not unknown", raw: "", expectedCode: "", expected: CountryAbsent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, status := NormalizeCountryCode(tc.raw)
			assert.Equal(t, tc.expected, status)
			assert.Equal(t, tc.expectedCode, code)
		})
	}
}

func TestNormalizeCountryCodeKeepsSurroundingWhitespace(t *testing.T) {
	// The trimmed form decides acceptance but the input is returned unchanged.
	// Downstream validation rejects codes that are not exactly 2 characters.
	code, status := NormalizeCountryCode(" fr ")
	assert.Equal(t, CountryPresent, status)
	assert.Equal(t, " fr ", code)
}
