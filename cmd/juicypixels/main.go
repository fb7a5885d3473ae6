package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	juicypixels "github.com/alpmestan/juicypixels"
	"github.com/alpmestan/juicypixels/pixel"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprint(os.Stderr, "decode: juicypixels decode <in.png|in.jpg> <out.png>\nencode: juicypixels encode <in.png> <out.jpg> [quality 0-100]\n")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "decode":
		if len(os.Args) != 4 {
			fmt.Fprintln(os.Stderr, "decode: juicypixels decode <in.png|in.jpg> <out.png>")
			os.Exit(1)
		}
		if err := decodeCmd(os.Args[2], os.Args[3]); err != nil {
			fmt.Fprintln(os.Stderr, "decode error:", err)
			os.Exit(1)
		}
	case "encode":
		if len(os.Args) < 4 || len(os.Args) > 5 {
			fmt.Fprintln(os.Stderr, "encode: juicypixels encode <in.png> <out.jpg> [quality 0-100]")
			os.Exit(1)
		}
		quality := 75
		if len(os.Args) == 5 {
			q, err := strconv.Atoi(os.Args[4])
			if err != nil || q < 0 || q > 100 {
				fmt.Fprintln(os.Stderr, "quality must be an integer between 0 and 100")
				os.Exit(1)
			}
			quality = q
		}
		if err := encodeCmd(os.Args[2], os.Args[3], quality); err != nil {
			fmt.Fprintln(os.Stderr, "encode error:", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", os.Args[1])
		os.Exit(1)
	}
}

// decodeCmd normalizes any supported input (PNG or JPEG, sniffed by
// its signature bytes) through DynamicImage, then re-encodes it as PNG.
func decodeCmd(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	dyn, err := juicypixels.DecodeAny(in)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	return encodeDynamicAsPNG(out, dyn)
}

// encodeDynamicAsPNG dispatches on DynamicImage's concrete kind since
// png.Encode is generic over a statically-known pixel type.
func encodeDynamicAsPNG(w *os.File, dyn pixel.DynamicImage) error {
	switch d := dyn.(type) {
	case pixel.DynY8:
		return juicypixels.EncodePNG(w, d.Image)
	case pixel.DynRGB8:
		return juicypixels.EncodePNG(w, d.Image)
	case pixel.DynRGBA8:
		return juicypixels.EncodePNG(w, d.Image)
	case pixel.DynYCbCr8:
		rgb := pixel.PixelMap[uint8, pixel.YCbCr8, uint8, pixel.RGB8](d.Image, pixel.ConvertYCbCr8ToRGB8)
		return juicypixels.EncodePNG(w, rgb)
	default:
		return pixel.Errorf(pixel.UnsupportedFeature, "no PNG encoding path for decoded kind %v", dyn.Kind())
	}
}

// encodeCmd decodes a PNG and encodes it as a 4:2:0 baseline JPEG,
// converting RGB8/RGBA8/Y8 sources to YCbCr8 first since EncodeJPEG
// only accepts that color space.
func encodeCmd(inPath, outPath string, quality int) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	dyn, err := juicypixels.DecodePNG(in)
	if err != nil {
		return err
	}

	ycbcr, err := toYCbCr8(dyn)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if ext := strings.ToLower(filepath.Ext(outPath)); ext != ".jpg" && ext != ".jpeg" {
		fmt.Fprintf(os.Stderr, "warning: output path %q doesn't look like a JPEG\n", outPath)
	}

	return juicypixels.EncodeJPEG(out, ycbcr, quality)
}

func toYCbCr8(dyn pixel.DynamicImage) (pixel.Image[uint8, pixel.YCbCr8], error) {
	switch d := dyn.(type) {
	case pixel.DynYCbCr8:
		return d.Image, nil
	case pixel.DynRGB8:
		return pixel.PixelMap[uint8, pixel.RGB8, uint8, pixel.YCbCr8](d.Image, pixel.ConvertRGB8ToYCbCr8), nil
	case pixel.DynRGBA8:
		rgb := pixel.PixelMap[uint8, pixel.RGBA8, uint8, pixel.RGB8](d.Image, func(p pixel.RGBA8) pixel.RGB8 {
			return pixel.RGB8{R: p.R, G: p.G, B: p.B}
		})
		return pixel.PixelMap[uint8, pixel.RGB8, uint8, pixel.YCbCr8](rgb, pixel.ConvertRGB8ToYCbCr8), nil
	case pixel.DynY8:
		rgb := pixel.PixelMap[uint8, pixel.Y8, uint8, pixel.RGB8](d.Image, pixel.PromoteY8ToRGB8)
		return pixel.PixelMap[uint8, pixel.RGB8, uint8, pixel.YCbCr8](rgb, pixel.ConvertRGB8ToYCbCr8), nil
	default:
		return pixel.Image[uint8, pixel.YCbCr8]{}, pixel.Errorf(pixel.UnsupportedFeature, "no YCbCr8 conversion path for decoded kind %v", dyn.Kind())
	}
}
