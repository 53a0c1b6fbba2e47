// Command qrforge is a thin demonstration CLI over the encoder and
// decoder pipelines: encode text to a rasterized QR symbol, or decode a
// QR symbol image back to text. It carries no framework dependency, in
// the spirit of the teacher's os.Args-based qrcode/cmd/main.go, but uses
// the standard library's flag package for subcommand parsing since there
// is no teacher CLI library to preserve.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"strings"

	"github.com/jalphad/qrforge/qrcode/decode"
	"github.com/jalphad/qrforge/qrcode/encoder"
	"github.com/jalphad/qrforge/qrcode/qrimage"
	"github.com/jalphad/qrforge/qrcode/render"
	"github.com/jalphad/qrforge/qrcode/segment"
	"github.com/jalphad/qrforge/qrcode/version"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "encode":
		err = runEncode(os.Args[2:])
	case "decode":
		err = runDecode(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "qrforge: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("qrforge - QR Code encoder/decoder")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  qrforge encode [-level L|M|Q|H] [-version N] [-scale N] [-gif] -out <file> <text>")
	fmt.Println("  qrforge decode [-v] <image>")
}

func runEncode(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	level := fs.String("level", "M", "error correction level: L, M, Q, or H")
	ver := fs.Int("version", 0, "QR version 1-40, 0 for auto")
	scale := fs.Int("scale", 8, "pixels per module")
	asGIF := fs.Bool("gif", false, "write a GIF instead of a PNG")
	out := fs.String("out", "", "output file path (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" || fs.NArg() == 0 {
		return fmt.Errorf("encode: -out and a text argument are required")
	}
	text := strings.Join(fs.Args(), " ")

	ecl, err := parseLevel(*level)
	if err != nil {
		return err
	}

	seg := segment.FromText(text)
	result, err := encoder.Encode([]segment.Segment{seg}, ecl, *ver)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	if *asGIF {
		if err := render.WriteGIF(f, result.Matrix, *scale); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	} else {
		img, err := render.Raster(result.Matrix, *scale)
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		if err := png.Encode(f, img); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	}

	fmt.Printf("wrote version %d, level %s, mask %d to %s\n", result.Version.Number, ecl, result.Mask, *out)
	return nil
}

func runDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	verbose := fs.Bool("v", false, "print per-block Reed-Solomon statistics")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("decode: an image path is required")
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	result, err := decode.Decode(qrimage.ToRGBA(src), decode.AttemptBoth)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	fmt.Printf("version: %d\n", result.Version)
	fmt.Printf("mask: %d\n", result.Mask)
	fmt.Printf("message: %q\n", result.Message)
	if result.NumErrorsCorrected > 0 {
		fmt.Printf("corrected %d error(s)\n", result.NumErrorsCorrected)
	}

	if *verbose {
		for _, b := range result.BlockResults {
			fmt.Printf("block %d: %d data + %d ec codewords, %d error(s) corrected, ok=%v\n",
				b.BlockIndex, b.NumDataCodewords, b.NumECCodewords, b.ErrorsFound, b.CorrectionSucceeded)
		}
	}
	return nil
}

func parseLevel(s string) (version.ECLevel, error) {
	switch strings.ToUpper(s) {
	case "L":
		return version.ECLevelL, nil
	case "M":
		return version.ECLevelM, nil
	case "Q":
		return version.ECLevelQ, nil
	case "H":
		return version.ECLevelH, nil
	}
	return 0, fmt.Errorf("invalid error correction level %q", s)
}
