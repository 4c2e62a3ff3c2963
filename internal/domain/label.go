package domain

import (
	"errors"
	"flare-label-service/internal/numflare"
	"fmt"
	"strconv"
	"strings"
)

// LabelSeparator joins the latitude and longitude tokens of a label.
const LabelSeparator = "_"

var ErrInvalidLabel = errors.New("invalid label")

// Controls the precision and padding of coordinate labels.
type LabelOptions struct {
	Decimals int
	LatWidth int
	LonWidth int
}

// Widths of 2 and 3 keep every label of the same precision the same length.
func DefaultLabelOptions() LabelOptions {
	return LabelOptions{Decimals: 4, LatWidth: 2, LonWidth: 3}
}

// MaxLabelDecimals bounds LabelOptions.Decimals.
const MaxLabelDecimals = 10

func (o LabelOptions) Validate() error {
	if o.Decimals < 0 || o.Decimals > MaxLabelDecimals {
		return fmt.Errorf("%w: decimals must be between 0 and %d, got %d", ErrInvalidLabel, MaxLabelDecimals, o.Decimals)
	}
	if o.LatWidth < 0 || o.LatWidth > numflare.MaxWidth || o.LonWidth < 0 || o.LonWidth > numflare.MaxWidth {
		return fmt.Errorf("%w: widths must be between 0 and %d", ErrInvalidLabel, numflare.MaxWidth)
	}
	return nil
}

// CacheKey identifies the label of one site rendered with these options.
// The coordinates are part of the key so a moved site never reuses its
// old label.
func (o LabelOptions) CacheKey(s Site) string {
	return fmt.Sprintf("%d:%s:%s:%d:%d:%d",
		s.SiteID,
		strconv.FormatFloat(s.Coordinates.Lat, 'g', -1, 64),
		strconv.FormatFloat(s.Coordinates.Lon, 'g', -1, 64),
		o.Decimals, o.LatWidth, o.LonWidth,
	)
}

// EncodeLabel renders c as "<lat token>_<lon token>", e.g. "s23p5500_w046p6300".
func EncodeLabel(c Coordinates, opts LabelOptions) (string, error) {
	if err := c.Validate(); err != nil {
		return "", fmt.Errorf("encode label: %w", err)
	}

	lat, err := numflare.Encode(c.Lat, numflare.Options{
		Decimals: opts.Decimals,
		MinWidth: opts.LatWidth,
		Mode:     numflare.Latitude,
	})
	if err != nil {
		return "", fmt.Errorf("encode label: lat: %w", err)
	}

	lon, err := numflare.Encode(c.Lon, numflare.Options{
		Decimals: opts.Decimals,
		MinWidth: opts.LonWidth,
		Mode:     numflare.Longitude,
	})
	if err != nil {
		return "", fmt.Errorf("encode label: lon: %w", err)
	}

	return lat + LabelSeparator + lon, nil
}

// DecodeLabel is the inverse of EncodeLabel. Each token must carry the
// sign flag of its own axis.
func DecodeLabel(label string) (Coordinates, error) {
	latText, lonText, ok := strings.Cut(strings.ToLower(strings.TrimSpace(label)), LabelSeparator)
	if !ok || strings.Contains(lonText, LabelSeparator) {
		return Coordinates{}, fmt.Errorf("%w: %q must have exactly two tokens", ErrInvalidLabel, label)
	}

	if !hasFlag(latText, numflare.SignTable[numflare.Latitude]) {
		return Coordinates{}, fmt.Errorf("%w: latitude token %q has no n/s flag", ErrInvalidLabel, latText)
	}
	if !hasFlag(lonText, numflare.SignTable[numflare.Longitude]) {
		return Coordinates{}, fmt.Errorf("%w: longitude token %q has no e/w flag", ErrInvalidLabel, lonText)
	}

	lat, err := numflare.Decode(latText)
	if err != nil {
		return Coordinates{}, fmt.Errorf("decode label: lat: %w", err)
	}
	lon, err := numflare.Decode(lonText)
	if err != nil {
		return Coordinates{}, fmt.Errorf("decode label: lon: %w", err)
	}

	c := Coordinates{Lon: lon, Lat: lat}
	if err := c.Validate(); err != nil {
		return Coordinates{}, fmt.Errorf("decode label: %w", err)
	}

	return c, nil
}

func hasFlag(token string, flags numflare.SignFlags) bool {
	return strings.HasPrefix(token, flags.Positive) || strings.HasPrefix(token, flags.Negative)
}
