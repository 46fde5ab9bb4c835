// Package imgio loads grayscale images into core.Image planes and
// writes correlation surfaces back out as 8-bit PNGs.
package imgio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	_ "golang.org/x/image/tiff" // TIFF decoding, for 16-bit inputs

	"github.com/cwbudde/algo-image/img/core"
)

// ErrEmptyBounds is returned for images with no pixels.
var ErrEmptyBounds = errors.New("imgio: image has empty bounds")

// ReadGray decodes the PNG or TIFF file at path into a float64 image.
// Gray and Gray16 pixels are taken verbatim; anything else is reduced
// with the usual Rec. 601 luma weights on the 16-bit channel values.
func ReadGray(path string) (*core.Image, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imgio: %w", err)
	}
	defer fd.Close()

	src, _, err := image.Decode(fd)
	if err != nil {
		return nil, fmt.Errorf("imgio: decoding %s: %w", path, err)
	}

	return FromImage(src)
}

// FromImage converts a decoded image to a float64 grayscale plane.
func FromImage(src image.Image) (*core.Image, error) {
	bounds := src.Bounds()
	h := bounds.Dy()
	w := bounds.Dx()
	if h <= 0 || w <= 0 {
		return nil, ErrEmptyBounds
	}

	out, err := core.NewImage(h, w)
	if err != nil {
		return nil, err
	}

	switch im := src.(type) {
	case *image.Gray:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Set(y, x, float64(im.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y))
			}
		}
	case *image.Gray16:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Set(y, x, float64(im.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y))
			}
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				out.Set(y, x, 0.299*float64(r)+0.587*float64(g)+0.114*float64(b))
			}
		}
	}

	return out, nil
}

// WriteCorrelationPNG maps a [-1, +1] correlation surface to [0, 255]
// and writes it as an 8-bit grayscale PNG. The mapping shifts by 1,
// scales by 255/2 and truncates, so values numerically near 0 land on
// 127 whether they sit slightly below or above zero.
func WriteCorrelationPNG(path string, im *core.Image) error {
	gray := image.NewGray(image.Rect(0, 0, im.W, im.H))
	for y := 0; y < im.H; y++ {
		for x := 0; x < im.W; x++ {
			v := (im.At(y, x) + 1) * (255.0 / 2.0)
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			gray.SetGray(x, y, color.Gray{Y: uint8(v)})
		}
	}

	fd, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imgio: %w", err)
	}

	if err := png.Encode(fd, gray); err != nil {
		fd.Close()
		return fmt.Errorf("imgio: encoding %s: %w", path, err)
	}
	return fd.Close()
}
