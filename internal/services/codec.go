package services

import (
	"flare-label-service/internal/numflare"
	"fmt"
)

type EncodeNumberRequest struct {
	Number   float64
	Decimals int
	MinWidth int
	Mode     string
	Collapse bool
}

// EncodeNumber resolves the textual sign mode and encodes the number.
func EncodeNumber(req EncodeNumberRequest) (string, error) {
	mode, err := numflare.ParseSignMode(req.Mode)
	if err != nil {
		return "", fmt.Errorf("encode number: %w", err)
	}

	token, err := numflare.Encode(req.Number, numflare.Options{
		Decimals:          req.Decimals,
		MinWidth:          req.MinWidth,
		Mode:              mode,
		CollapseMagnitude: req.Collapse,
	})
	if err != nil {
		return "", fmt.Errorf("encode number: %w", err)
	}

	return token, nil
}

func DecodeNumber(token string) (float64, error) {
	v, err := numflare.Decode(token)
	if err != nil {
		return 0, fmt.Errorf("decode number: %w", err)
	}
	return v, nil
}
