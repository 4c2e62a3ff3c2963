// Command flare encodes and decodes flare number tokens and coordinate labels.
//
//	flare encode --decimals=1 --width=4 -- -12.3   # s0012p3
//	flare decode s0012p3 w05p0m                  # -12.3, -5000000
//	flare label -- -23.55 -46.63                 # s23p5500_w046p6300
package main

import (
	"flare-label-service/internal/domain"
	"flare-label-service/internal/services"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
)

// CLI defines the command-line interface for flare.
type CLI struct {
	Encode     EncodeCmd     `cmd:"" help:"Encode a number into a token"`
	Decode     DecodeCmd     `cmd:"" help:"Decode one or more tokens"`
	Label      LabelCmd      `cmd:"" help:"Encode a latitude/longitude pair into a label"`
	ParseLabel ParseLabelCmd `cmd:"" name:"parse-label" help:"Decode a label into latitude/longitude"`
}

type runContext struct {
	Out io.Writer
}

type EncodeCmd struct {
	Number   float64 `arg:"" help:"Number to encode (use -- before negative numbers)"`
	Decimals int     `short:"d" default:"0" help:"Fractional digits to keep"`
	Width    int     `short:"w" default:"1" help:"Minimum integer width, zero padded"`
	Mode     string  `short:"m" enum:"latitude,longitude" default:"latitude" help:"Sign flags to use (latitude: n/s, longitude: e/w)"`
	Collapse bool    `short:"c" help:"Collapse into a magnitude suffix (d, c, k, m, b)"`
}

func (c *EncodeCmd) Run(rc *runContext) error {
	token, err := services.EncodeNumber(services.EncodeNumberRequest{
		Number:   c.Number,
		Decimals: c.Decimals,
		MinWidth: c.Width,
		Mode:     c.Mode,
		Collapse: c.Collapse,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(rc.Out, token)
	return err
}

type DecodeCmd struct {
	Tokens []string `arg:"" help:"Tokens to decode"`
}

func (c *DecodeCmd) Run(rc *runContext) error {
	for _, t := range c.Tokens {
		v, err := services.DecodeNumber(t)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(rc.Out, strconv.FormatFloat(v, 'f', -1, 64)); err != nil {
			return err
		}
	}
	return nil
}

type LabelCmd struct {
	Lat      float64 `arg:"" help:"Latitude in degrees"`
	Lon      float64 `arg:"" help:"Longitude in degrees"`
	Decimals int     `short:"d" default:"4" help:"Fractional digits to keep"`
}

func (c *LabelCmd) Run(rc *runContext) error {
	opts := domain.DefaultLabelOptions()
	opts.Decimals = c.Decimals

	label, err := domain.EncodeLabel(domain.Coordinates{Lon: c.Lon, Lat: c.Lat}, opts)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(rc.Out, label)
	return err
}

type ParseLabelCmd struct {
	Label string `arg:"" help:"Label such as s23p5500_w046p6300"`
}

func (c *ParseLabelCmd) Run(rc *runContext) error {
	coords, err := domain.DecodeLabel(c.Label)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(rc.Out, "lat=%s lon=%s\n",
		strconv.FormatFloat(coords.Lat, 'f', -1, 64),
		strconv.FormatFloat(coords.Lon, 'f', -1, 64),
	)
	return err
}

func run(args []string, out io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("flare"),
		kong.Description("Encode and decode flare number tokens."),
		kong.UsageOnError(),
		kong.Writers(out, out),
	)
	if err != nil {
		return err
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return ctx.Run(&runContext{Out: out})
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "flare:", err)
		os.Exit(1)
	}
}
