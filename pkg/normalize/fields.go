// Package normalize converts free-text laptop listing fields into canonical
// values. Every normalizer is total: malformed input yields a documented
// default instead of an error.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Field defaults used when nothing parses.
const (
	DefaultScreenSize = 15.6
	DefaultStorageGB  = 256
	DefaultRAMGB      = 8

	// minPlausiblePrice is the value below which a parsed price is treated
	// as recorded in hundreds.
	minPlausiblePrice = 1000
	priceUnitFactor   = 100

	// maxPlainRAMGB is the largest bare RAM figure read as gigabytes.
	// Larger bare numbers are megabytes.
	maxPlainRAMGB = 32
	minRAMGB      = 4

	cmPerInch = 2.54
)

var (
	// priceRegex matches the first number in a price, allowing dot, comma
	// and space group separators ("45.000", "1.299,99", "45 000").
	priceRegex = regexp.MustCompile(`\d(?:[\d.,\s\x{00A0}\x{202F}]*\d)?`)

	screenRegex  = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(cm)?`)
	tbRegex      = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*tb`)
	gbRegex      = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*gb`)
	integerRegex = regexp.MustCompile(`\d+`)

	groupSpaces = strings.NewReplacer(" ", "", "\t", "", "\u00a0", "", "\u202f", "")
)

// Lower lower-cases s without locale-specific folding, so a Turkish dotless
// "ı" stays distinct and "I" always becomes "i".
func Lower(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// Price parses a listing price. A separator followed by exactly one or two
// trailing digits is a decimal point; all other separators group thousands.
// Values below 1000 are scaled by 100. The boolean is false when the input
// holds no number at all.
func Price(raw string) (float64, bool) {
	match := priceRegex.FindString(raw)
	if match == "" {
		return 0, false
	}
	s := groupSpaces.Replace(match)

	intPart, frac := s, ""
	if i := strings.LastIndexAny(s, ".,"); i >= 0 {
		if tail := s[i+1:]; len(tail) == 1 || len(tail) == 2 {
			intPart, frac = s[:i], tail
		}
	}
	intPart = strings.NewReplacer(".", "", ",", "").Replace(intPart)
	if intPart == "" {
		intPart = "0"
	}
	if frac != "" {
		intPart += "." + frac
	}

	v, err := strconv.ParseFloat(intPart, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, false
	}
	if v < minPlausiblePrice {
		v *= priceUnitFactor
	}
	return v, true
}

// ScreenSize returns the screen diagonal in inches. Centimetre values are
// converted. Returns 15.6 when no positive number is present.
func ScreenSize(raw string) float64 {
	m := screenRegex.FindStringSubmatch(raw)
	if m == nil {
		return DefaultScreenSize
	}
	v, ok := parseDecimal(m[1])
	if !ok || v <= 0 {
		return DefaultScreenSize
	}
	if m[2] != "" {
		v = math.Round(v/cmPerInch*10) / 10
	}
	return v
}

// Storage returns total storage in GB: a TB figure times 1024, else a GB
// figure, else a bare integer. Returns 256 when nothing parses.
func Storage(raw string) int {
	v, _, ok := capacity(raw)
	if !ok {
		return DefaultStorageGB
	}
	return v
}

// RAM returns memory in GB using the same units as Storage. A bare integer
// above 32 is taken as megabytes, divided by 1024 and floored at 4.
// Returns 8 when nothing parses.
func RAM(raw string) int {
	v, unit, ok := capacity(raw)
	if !ok {
		return DefaultRAMGB
	}
	if !unit && v > maxPlainRAMGB {
		v = max(v/1024, minRAMGB)
	}
	return v
}

// capacity extracts a size in GB. The second result reports whether an
// explicit TB/GB unit was present.
func capacity(raw string) (int, bool, bool) {
	if m := tbRegex.FindStringSubmatch(raw); m != nil {
		if v, ok := parseDecimal(m[1]); ok {
			return clampInt(math.Round(v * 1024)), true, true
		}
	}
	if m := gbRegex.FindStringSubmatch(raw); m != nil {
		if v, ok := parseDecimal(m[1]); ok {
			return clampInt(math.Round(v)), true, true
		}
	}
	if m := integerRegex.FindString(raw); m != "" {
		if v, err := strconv.Atoi(m); err == nil {
			return v, false, true
		}
	}
	return 0, false, false
}

func parseDecimal(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func clampInt(v float64) int {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}
