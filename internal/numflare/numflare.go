// Package numflare encodes numbers into compact, sortable text tokens such as
// "s0012p3" (-12.3 as a latitude) and decodes them back.
//
// A token is an optional sign flag, a zero-padded integer part, an optional
// fraction introduced by the decimal marker and an optional magnitude suffix:
//
//	token    := sign? digit+ ('p' digit+)? suffix?
//	sign     := 'n' | 's' | 'e' | 'w'
//	suffix   := 'd' | 'c' | 'k' | 'm' | 'b'
//
// Encode and Decode are pure functions and safe for concurrent use.
package numflare

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DecimalMarker stands in for the decimal point inside a token.
const DecimalMarker = "p"

// SignMode selects which pair of sign flags Encode emits.
type SignMode int

const (
	Latitude SignMode = iota
	Longitude
)

func (m SignMode) String() string {
	switch m {
	case Latitude:
		return "latitude"
	case Longitude:
		return "longitude"
	default:
		return fmt.Sprintf("SignMode(%d)", int(m))
	}
}

// ParseSignMode accepts "latitude"/"lat" and "longitude"/"lon" in any case.
func ParseSignMode(s string) (SignMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "latitude", "lat", "":
		return Latitude, nil
	case "longitude", "lon", "lng":
		return Longitude, nil
	default:
		return 0, fmt.Errorf("%w: unknown sign mode %q", ErrInvalidValue, s)
	}
}

// SignFlags is the positive/negative flag pair of one sign mode.
type SignFlags struct {
	Positive string
	Negative string
}

// SignTable maps each mode to its flags. All four flags are distinct.
var SignTable = map[SignMode]SignFlags{
	Latitude:  {Positive: "n", Negative: "s"},
	Longitude: {Positive: "e", Negative: "w"},
}

// Magnitude is a single-character suffix scaling a token by Factor.
type Magnitude struct {
	Suffix string
	Factor float64
}

// Magnitudes is ordered by ascending factor.
var Magnitudes = []Magnitude{
	{Suffix: "d", Factor: 10},
	{Suffix: "c", Factor: 100},
	{Suffix: "k", Factor: 1_000},
	{Suffix: "m", Factor: 1_000_000},
	{Suffix: "b", Factor: 1_000_000_000},
}

// Upper bounds accepted by Encode. float64 carries no more than 17
// significant digits, and widths beyond MaxWidth only add padding.
const (
	MaxDecimals = 20
	MaxWidth    = 64
)

// Options controls how Encode renders a number.
type Options struct {
	// Decimals is the number of fractional digits kept. Zero encodes a
	// rounded integer with no decimal marker.
	Decimals int
	// MinWidth left-pads the integer part with zeros.
	MinWidth int
	Mode     SignMode
	// CollapseMagnitude divides the number by the largest magnitude factor
	// not exceeding it and appends that factor's suffix.
	CollapseMagnitude bool
}

// Encode renders number as a lowercase token. The sign flag is always
// present; zero is encoded with the positive flag.
func Encode(number float64, opts Options) (string, error) {
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return "", fmt.Errorf("%w: number %v is not finite", ErrInvalidValue, number)
	}
	if opts.Decimals < 0 || opts.Decimals > MaxDecimals {
		return "", fmt.Errorf("%w: decimals must be between 0 and %d, got %d", ErrInvalidValue, MaxDecimals, opts.Decimals)
	}
	if opts.MinWidth < 0 || opts.MinWidth > MaxWidth {
		return "", fmt.Errorf("%w: min width must be between 0 and %d, got %d", ErrInvalidValue, MaxWidth, opts.MinWidth)
	}
	flags, ok := SignTable[opts.Mode]
	if !ok {
		return "", fmt.Errorf("%w: unknown sign mode %v", ErrInvalidValue, opts.Mode)
	}

	flag := flags.Positive
	if number < 0 {
		flag = flags.Negative
	}
	abs := math.Abs(number)

	suffix := ""
	if opts.CollapseMagnitude {
		abs, suffix = collapse(abs)
	}

	digits := strconv.FormatFloat(abs, 'f', opts.Decimals, 64)
	intPart, fracPart, hasFrac := strings.Cut(digits, ".")

	var b strings.Builder
	b.WriteString(flag)
	for i := len(intPart); i < opts.MinWidth; i++ {
		b.WriteByte('0')
	}
	b.WriteString(intPart)
	if hasFrac {
		b.WriteString(DecimalMarker)
		b.WriteString(fracPart)
	}
	b.WriteString(suffix)

	return strings.ToLower(b.String()), nil
}

// collapse applies the largest factor <= v. The table is scanned from the
// top so the first match is the largest one.
func collapse(v float64) (float64, string) {
	for i := len(Magnitudes) - 1; i >= 0; i-- {
		m := Magnitudes[i]
		if v >= m.Factor {
			return v / m.Factor, m.Suffix
		}
	}
	return v, ""
}

// Decode parses a token produced by Encode. Tokens without a sign flag are
// read as positive.
func Decode(token string) (float64, error) {
	if token == "" {
		return 0, parseErr(token, "empty token")
	}
	s := strings.ToLower(token)

	scale := 1.0
	if f, ok := magnitudeFactor(s[len(s)-1:]); ok {
		scale = f
		s = s[:len(s)-1]
	}

	sign := 1.0
	if s != "" {
		switch s[:1] {
		case SignTable[Latitude].Negative, SignTable[Longitude].Negative:
			sign = -1
			s = s[1:]
		case SignTable[Latitude].Positive, SignTable[Longitude].Positive:
			s = s[1:]
		}
	}

	if strings.Count(s, DecimalMarker) > 1 {
		return 0, parseErr(token, "more than one decimal marker")
	}

	if intText, fracText, ok := strings.Cut(s, DecimalMarker); ok {
		if intText == "" {
			return 0, parseErr(token, "missing integer part")
		}
		if !isDigits(fracText) {
			return 0, parseErr(token, fmt.Sprintf("fraction part %q is not a digit string", fracText))
		}
		whole, err := Decode(intText)
		if err != nil {
			return 0, parseErr(token, fmt.Sprintf("integer part %q: %v", intText, err))
		}
		if whole < 0 || whole != math.Trunc(whole) {
			return 0, parseErr(token, fmt.Sprintf("integer part %q is not an unsigned whole number", intText))
		}
		s = strconv.FormatFloat(whole, 'f', -1, 64) + "." + fracText
	} else if s == "" {
		return 0, parseErr(token, "no digits")
	} else if !isDigits(s) {
		return 0, parseErr(token, fmt.Sprintf("integer part %q is not a digit string", s))
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, parseErr(token, err.Error())
	}

	out := sign * v * scale
	if math.IsInf(out, 0) {
		return 0, parseErr(token, "value out of range")
	}

	return out, nil
}

func magnitudeFactor(suffix string) (float64, bool) {
	for _, m := range Magnitudes {
		if m.Suffix == suffix {
			return m.Factor, true
		}
	}
	return 0, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
