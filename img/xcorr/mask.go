package xcorr

import "github.com/cwbudde/algo-image/img/core"

// Binarize returns a copy of mask coerced to strict {0, 1} values:
// exactly 1 where the source sample is non-zero, exactly 0 otherwise.
func Binarize(mask *core.Image) *core.Image {
	out := mask.Clone()
	for i, v := range out.Pix {
		if v != 0 {
			out.Pix[i] = 1
		} else {
			out.Pix[i] = 0
		}
	}
	return out
}

// maskPlane writes the binarized mask into a zeroed ph-by-pw padded
// plane, top-left aligned. A nil mask synthesizes all ones over the
// h-by-w image region.
func maskPlane(dst []float64, ph, pw int, mask *core.Image, h, w int) {
	core.Zero(dst)

	if mask == nil {
		for y := 0; y < h; y++ {
			row := dst[y*pw : y*pw+w]
			for x := range row {
				row[x] = 1
			}
		}
		return
	}

	for y := 0; y < h; y++ {
		row := dst[y*pw : y*pw+w]
		src := mask.Pix[y*w : (y+1)*w]
		for x := range row {
			if src[x] != 0 {
				row[x] = 1
			}
		}
	}
}
