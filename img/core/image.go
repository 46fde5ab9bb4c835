// Package core provides the shared image container and numeric helpers
// used across the imaging packages.
//
// Images are rectangular float64 grids stored row-major, carrying the
// geometric metadata (origin, spacing, direction) needed to map pixel
// indices to physical coordinates. The container is deliberately small:
// it owns its pixel slice and nothing else.
package core

import "errors"

// Errors returned by image constructors and accessors.
var (
	ErrEmptySize    = errors.New("core: image dimensions must be positive")
	ErrPixelCount   = errors.New("core: pixel slice length does not match dimensions")
	ErrSizeMismatch = errors.New("core: image sizes do not match")
)

// Image is a 2D grid of float64 samples in row-major order.
//
// Geometry follows the usual medical-imaging convention: Origin is the
// physical position of pixel (0,0), Spacing the physical step per index
// along (row, col), and Direction a 2x2 matrix of direction cosines
// mapping index axes to physical axes.
type Image struct {
	H, W int
	Pix  []float64

	Origin    [2]float64
	Spacing   [2]float64
	Direction [2][2]float64
}

// NewImage allocates a zero-filled h-by-w image with identity geometry
// (origin 0, unit spacing, identity direction).
func NewImage(h, w int) (*Image, error) {
	if h <= 0 || w <= 0 {
		return nil, ErrEmptySize
	}

	return &Image{
		H:         h,
		W:         w,
		Pix:       make([]float64, h*w),
		Spacing:   [2]float64{1, 1},
		Direction: [2][2]float64{{1, 0}, {0, 1}},
	}, nil
}

// NewImageFrom wraps an existing row-major pixel slice without copying.
// The slice length must be exactly h*w.
func NewImageFrom(h, w int, pix []float64) (*Image, error) {
	if h <= 0 || w <= 0 {
		return nil, ErrEmptySize
	}
	if len(pix) != h*w {
		return nil, ErrPixelCount
	}

	return &Image{
		H:         h,
		W:         w,
		Pix:       pix,
		Spacing:   [2]float64{1, 1},
		Direction: [2][2]float64{{1, 0}, {0, 1}},
	}, nil
}

// At returns the sample at row y, column x. No bounds checking beyond
// the slice's own.
func (im *Image) At(y, x int) float64 {
	return im.Pix[y*im.W+x]
}

// Set stores v at row y, column x.
func (im *Image) Set(y, x int, v float64) {
	im.Pix[y*im.W+x] = v
}

// SameSize reports whether im and other have identical pixel dimensions.
func (im *Image) SameSize(other *Image) bool {
	return im.H == other.H && im.W == other.W
}

// Clone returns a deep copy of the image including geometry.
func (im *Image) Clone() *Image {
	out := *im
	out.Pix = make([]float64, len(im.Pix))
	copy(out.Pix, im.Pix)
	return &out
}

// CopyGeometry copies origin, spacing and direction from src.
func (im *Image) CopyGeometry(src *Image) {
	im.Origin = src.Origin
	im.Spacing = src.Spacing
	im.Direction = src.Direction
}

// IndexToPhysical maps a (row, col) index to physical coordinates using
// origin, spacing and direction cosines.
func (im *Image) IndexToPhysical(y, x int) (py, px float64) {
	sy := im.Spacing[0] * float64(y)
	sx := im.Spacing[1] * float64(x)
	py = im.Origin[0] + im.Direction[0][0]*sy + im.Direction[0][1]*sx
	px = im.Origin[1] + im.Direction[1][0]*sy + im.Direction[1][1]*sx
	return py, px
}
