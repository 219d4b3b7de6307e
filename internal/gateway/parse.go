package gateway

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	numberPattern   = regexp.MustCompile(`[0-9]+(?:[.,][0-9]+)?`)
	bedroomsPattern = regexp.MustCompile(`^([0-9]+)\s*\+\s*(?:KK|kk|[0-9]+)`)
)

// ParsePrice extracts a numeric amount from a textual price such as
// "23 400", "23400 CZK" or "23,400". Returns 0 when nothing numeric is
// present; callers keep the raw text alongside.
func ParsePrice(raw string) float64 {
	cleaned := strings.ReplaceAll(raw, " ", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	match := numberPattern.FindString(cleaned)
	if match == "" {
		return 0
	}
	match = strings.ReplaceAll(match, ",", ".")
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseSizeM2 extracts square meters from strings like "50m2" or
// "50 m²". Returns 0 when unparseable.
func ParseSizeM2(raw string) float64 {
	return ParsePrice(raw)
}

// ParseBedrooms derives a bedroom count from a Czech layout string such
// as "2+1 Apartment" or "1+KK Studio". The first number of the layout
// is the room count used as bedrooms. Returns 0 when the layout is
// missing or unparseable.
func ParseBedrooms(propertyType string) int {
	m := bedroomsPattern.FindStringSubmatch(strings.TrimSpace(propertyType))
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
