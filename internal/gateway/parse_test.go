package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"23400", 23400},
		{"23 400", 23400},
		{"23 400 Kč", 23400},
		{"23,400", 23.4}, // comma is treated as a decimal separator
		{"from 18900 CZK/month", 18900},
		{"1500.50", 1500.5},
		{"", 0},
		{"price on request", 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePrice(tt.raw))
		})
	}
}

func TestParseSizeM2(t *testing.T) {
	assert.Equal(t, 50.0, ParseSizeM2("50m2"))
	assert.Equal(t, 50.0, ParseSizeM2("50 m²"))
	assert.Equal(t, 62.5, ParseSizeM2("62.5 m2"))
	assert.Equal(t, 0.0, ParseSizeM2("unknown"))
}

func TestParseBedrooms(t *testing.T) {
	tests := []struct {
		layout string
		want   int
	}{
		{"2+1 Apartment", 2},
		{"1+KK Studio", 1},
		{"1+kk", 1},
		{"3+1", 3},
		{" 2+1 ", 2},
		{"Studio", 0},
		{"", 0},
		{"loft apartment", 0},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseBedrooms(tt.layout))
		})
	}
}
