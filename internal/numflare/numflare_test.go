package numflare

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"
)

func TestEncodeKnownTokens(t *testing.T) {
	tests := []struct {
		name   string
		number float64
		opts   Options
		want   string
	}{
		{"negative latitude", -12.3, Options{Decimals: 1, MinWidth: 4, Mode: Latitude}, "s0012p3"},
		{"positive latitude", 2.3, Options{Decimals: 1, MinWidth: 3, Mode: Latitude}, "n002p3"},
		{"positive longitude", 45, Options{Mode: Longitude}, "e45"},
		{"negative longitude", -5_000_000, Options{Decimals: 1, MinWidth: 2, Mode: Longitude, CollapseMagnitude: true}, "w05p0m"},
		{"zero is positive", 0, Options{MinWidth: 2}, "n00"},
		{"padding", 5, Options{MinWidth: 3}, "n005"},
		{"width shorter than digits", 1234, Options{MinWidth: 2}, "n1234"},
		{"rounds integer", 7.6, Options{}, "n8"},
		{"rounds fraction", 1.256, Options{Decimals: 2}, "n1p26"},
		{"collapse below smallest factor", 7, Options{CollapseMagnitude: true}, "n7"},
		{"collapse tens", 30, Options{CollapseMagnitude: true}, "n3d"},
		{"collapse hundreds", 300, Options{CollapseMagnitude: true}, "n3c"},
		{"collapse picks largest factor", 3_000, Options{CollapseMagnitude: true}, "n3k"},
		{"collapse billions", -2_000_000_000, Options{Mode: Longitude, CollapseMagnitude: true}, "w2b"},
		{"collapse with fraction", 2_500, Options{Decimals: 1, CollapseMagnitude: true}, "n2p5k"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.number, tt.opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Encode(%v) = %q, want %q", tt.number, got, tt.want)
			}
		})
	}
}

func TestEncodeRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		number float64
		opts   Options
	}{
		{"nan", math.NaN(), Options{}},
		{"positive infinity", math.Inf(1), Options{}},
		{"negative infinity", math.Inf(-1), Options{}},
		{"negative decimals", 1, Options{Decimals: -1}},
		{"negative width", 1, Options{MinWidth: -2}},
		{"width above bound", 1, Options{MinWidth: MaxWidth + 1}},
		{"huge width", 1, Options{MinWidth: math.MaxInt}},
		{"decimals above bound", 1, Options{Decimals: MaxDecimals + 1}},
		{"huge decimals", 1, Options{Decimals: math.MaxInt}},
		{"unknown mode", 1, Options{Mode: SignMode(7)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.number, tt.opts)
			if !errors.Is(err, ErrInvalidValue) {
				t.Fatalf("err = %v, want ErrInvalidValue", err)
			}
		})
	}
}

func TestDecodeKnownTokens(t *testing.T) {
	tests := []struct {
		token string
		want  float64
	}{
		{"s0012p3", -12.3},
		{"n002p3", 2.3},
		{"s023p4", -23.4},
		{"w05p0m", -5_000_000},
		{"23p44c", 2344},
		{"00002", 2},
		{"2", 2},
		{"e45", 45},
		{"N002P3", 2.3},
		{"n3k", 3_000},
		{"w2b", -2_000_000_000},
		{"n0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := Decode(tt.token)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Decode(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestDecodeExactLiteral(t *testing.T) {
	got, err := Decode("s0012p3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != -12.3 {
		t.Fatalf("Decode = %v, want -12.3", got)
	}

	padded, _ := Decode("00002")
	plain, _ := Decode("2")
	if padded != plain {
		t.Fatalf("Decode(00002) = %v, Decode(2) = %v", padded, plain)
	}
}

func TestDecodeRejectsMalformedTokens(t *testing.T) {
	tokens := []string{
		"",
		"1" + strings.Repeat("0", 300) + "b",
		"w1" + strings.Repeat("0", 305) + "p5m",
		"n",
		"k",
		"sk",
		"abc",
		"n12x",
		"n-12",
		"n12p",
		"np5",
		"n1p2p3",
		"n12p3x4",
		"n1.5",
		"n12pab",
		"ns5p3",
	}

	for _, token := range tokens {
		t.Run(token, func(t *testing.T) {
			_, err := Decode(token)
			if err == nil {
				t.Fatalf("Decode(%q) succeeded, want error", token)
			}
			if !errors.Is(err, ErrParse) {
				t.Fatalf("err = %v, want ErrParse", err)
			}

			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("err = %T, want *ParseError", err)
			}
			if perr.Token != token {
				t.Errorf("ParseError.Token = %q, want %q", perr.Token, token)
			}
		})
	}
}

func TestEncodeAtBounds(t *testing.T) {
	got, err := Encode(1, Options{Decimals: MaxDecimals, MinWidth: MaxWidth})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "n" + strings.Repeat("0", MaxWidth-1) + "1" + DecimalMarker + strings.Repeat("0", MaxDecimals)
	if got != want {
		t.Fatalf("Encode = %q, want %q", got, want)
	}
}

func TestSignFlags(t *testing.T) {
	tests := []struct {
		number float64
		mode   SignMode
		want   string
	}{
		{-23, Latitude, "s"},
		{23, Latitude, "n"},
		{0, Latitude, "n"},
		{-45, Longitude, "w"},
		{45, Longitude, "e"},
		{0, Longitude, "e"},
	}

	for _, tt := range tests {
		got, err := Encode(tt.number, Options{Mode: tt.mode})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(got, tt.want) {
			t.Errorf("Encode(%v, %v) = %q, want prefix %q", tt.number, tt.mode, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 2000; i++ {
		x := (r.Float64()*2 - 1) * math.Pow(10, float64(r.Intn(7)))
		decimals := r.Intn(5)
		width := 1 + r.Intn(5)
		mode := Latitude
		if r.Intn(2) == 1 {
			mode = Longitude
		}

		token, err := Encode(x, Options{Decimals: decimals, MinWidth: width, Mode: mode})
		if err != nil {
			t.Fatalf("Encode(%v): %v", x, err)
		}
		got, err := Decode(token)
		if err != nil {
			t.Fatalf("Decode(%q): %v", token, err)
		}

		tol := math.Pow(10, -float64(decimals))/2 + 1e-9
		if math.Abs(got-x) > tol {
			t.Fatalf("round trip %v -> %q -> %v, off by more than %v", x, token, got, tol)
		}
	}
}

func TestMagnitudeCollapse(t *testing.T) {
	token, err := Encode(2_500, Options{CollapseMagnitude: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(token, "k") {
		t.Fatalf("token = %q, want k suffix", token)
	}
	got, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode(%q): %v", token, err)
	}
	// A single integer digit of thousands cannot keep the hundreds.
	if math.Abs(got-2_500) > 500 {
		t.Fatalf("Decode(%q) = %v, want within 500 of 2500", token, got)
	}

	for _, m := range Magnitudes {
		exact := 7 * m.Factor
		token, err := Encode(exact, Options{CollapseMagnitude: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "n7"+m.Suffix {
			t.Errorf("Encode(%v) = %q, want %q", exact, token, "n7"+m.Suffix)
		}
		got, err := Decode(token)
		if err != nil {
			t.Fatalf("Decode(%q): %v", token, err)
		}
		if got != exact {
			t.Errorf("Decode(%q) = %v, want %v", token, got, exact)
		}
	}
}

func TestPaddedIntegerPart(t *testing.T) {
	token, err := Encode(5, Options{MinWidth: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token[1:] != "005" {
		t.Fatalf("integer part = %q, want 005", token[1:])
	}
}

func TestReservedCharactersAreDistinct(t *testing.T) {
	seen := map[string]string{DecimalMarker: "decimal marker"}
	add := func(c, what string) {
		if c != strings.ToLower(c) || len(c) != 1 {
			t.Errorf("%s %q must be one lowercase character", what, c)
		}
		if prev, ok := seen[c]; ok {
			t.Errorf("%s %q collides with %s", what, c, prev)
		}
		seen[c] = what
	}

	for mode, flags := range SignTable {
		add(flags.Positive, mode.String()+" positive flag")
		add(flags.Negative, mode.String()+" negative flag")
	}
	for i, m := range Magnitudes {
		add(m.Suffix, "magnitude suffix")
		if i > 0 && m.Factor <= Magnitudes[i-1].Factor {
			t.Errorf("magnitude %q is not in ascending order", m.Suffix)
		}
	}
}

func TestParseSignMode(t *testing.T) {
	tests := []struct {
		in      string
		want    SignMode
		wantErr bool
	}{
		{"latitude", Latitude, false},
		{"LAT", Latitude, false},
		{"", Latitude, false},
		{"longitude", Longitude, false},
		{"lon", Longitude, false},
		{"altitude", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseSignMode(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidValue) {
				t.Errorf("ParseSignMode(%q) err = %v, want ErrInvalidValue", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSignMode(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSignMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
