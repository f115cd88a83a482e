package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrency_TwoDecimalsWithSymbol(t *testing.T) {
	f := New("es-MX", "$")
	assert.Equal(t, "$25.50", f.Currency(25.5))
	assert.Equal(t, "$0.00", f.Currency(0))
}

func TestCurrency_ConfiguredSymbol(t *testing.T) {
	f := New("es-MX", "MX$")
	assert.Equal(t, "MX$10.00", f.Currency(10))
}

func TestNew_InvalidLocaleFallsBack(t *testing.T) {
	f := New("??", "")
	assert.Equal(t, "$1.25", f.Currency(1.25))
}

func TestDateTime(t *testing.T) {
	f := New("", "")
	d := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	h := time.Date(2025, 4, 1, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, "01/04/2025 15:30", f.DateTime(d, h))
	assert.Equal(t, "01/04/2025", f.DateTime(d, time.Time{}))
	assert.Equal(t, "", f.DateTime(time.Time{}, time.Time{}))
}

func TestNumber_LocaleGrouping(t *testing.T) {
	assert.Equal(t, "3", New("es-MX", "").Number(3))
	assert.Equal(t, "1,234,567", New("en-US", "").Number(1234567))
}
