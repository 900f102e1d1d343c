package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		want   float64
		wantOK bool
	}{
		{name: "dot thousands with currency", raw: "45.000 TL", want: 45000, wantOK: true},
		{name: "comma thousands", raw: "45,000", want: 45000, wantOK: true},
		{name: "plain digits", raw: "32999", want: 32999, wantOK: true},
		{name: "decimal comma", raw: "1.299,99 TL", want: 1299.99, wantOK: true},
		{name: "decimal point", raw: "45,000.50", want: 45000.5, wantOK: true},
		{name: "space grouping", raw: "₺45 000", want: 45000, wantOK: true},
		{name: "no-break space grouping", raw: "45 000 TL", want: 45000, wantOK: true},
		{name: "minor unit artifact", raw: "459", want: 45900, wantOK: true},
		{name: "leading text", raw: "Fiyat: 27.500", want: 27500, wantOK: true},
		{name: "zero", raw: "0", want: 0, wantOK: true},
		{name: "empty", raw: "", wantOK: false},
		{name: "garbage", raw: "fiyat yok", wantOK: false},
		{name: "separators only", raw: ".,.", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Price(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 0.001)
			}
		})
	}
}

func TestScreenSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want float64
	}{
		{`15.6"`, 15.6},
		{"14 inç", 14},
		{"13,3 inch", 13.3},
		{"39.6 cm", 15.6},
		{"", DefaultScreenSize},
		{"belirtilmemiş", DefaultScreenSize},
		{"0", DefaultScreenSize},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, ScreenSize(tt.raw), 0.001)
		})
	}
}

func TestStorage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want int
	}{
		{"1TB", 1024},
		{"1 tb SSD", 1024},
		{"2TB NVMe", 2048},
		{"1.5TB", 1536},
		{"512GB", 512},
		{"512 gb ssd", 512},
		{"512GB SSD + 1TB HDD", 1024},
		{"256", 256},
		{"", DefaultStorageGB},
		{"yok", DefaultStorageGB},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Storage(tt.raw))
		})
	}
}

func TestRAM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want int
	}{
		{"16GB", 16},
		{"16 GB DDR5", 16},
		{"32GB (2x16GB)", 32},
		{"8", 8},
		{"32", 32},
		{"8192", 8},
		{"16384 MB", 16},
		{"64", 4},
		{"", DefaultRAMGB},
		{"n/a", DefaultRAMGB},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, RAM(tt.raw))
		})
	}
}

func TestNormalizers_Totality(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"", " ", "\x00\xff", "💻💻", "-1", "NaN", "Inf", "1e309",
		"99999999999999999999999999 GB", "TB", "GB", "....", "15..6",
		"İıŞşĞğ", "1,,,,,2",
	}

	for _, in := range inputs {
		assert.NotPanics(t, func() {
			if p, ok := Price(in); ok {
				assert.GreaterOrEqual(t, p, 0.0)
			}
			assert.Positive(t, ScreenSize(in))
			assert.GreaterOrEqual(t, Storage(in), 0)
			assert.GreaterOrEqual(t, RAM(in), 0)
		}, "input %q", in)
	}
}

func TestLower(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "intel core ultra 9 275hx", Lower("  Intel Core ULTRA 9 275HX "))
	assert.Equal(t, "msi katana", Lower("MSI KATANA"))
	assert.Equal(t, "dahili", Lower("DAHILI"))
}
