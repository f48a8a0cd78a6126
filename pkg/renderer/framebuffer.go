package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/rt1we/go-raytracer/pkg/core"
)

// Framebuffer is a row-major grid of linear RGB pixels. The renderer writes
// gamma-corrected values in [0,1]; quantization to 8 bits happens only when
// converting to an image or encoding a file.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, index y*Width+x, row 0 at the top
}

// NewFramebuffer creates a zeroed framebuffer of the given dimensions
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// Set writes the pixel at (x, y)
func (fb *Framebuffer) Set(x, y int, c core.Vec3) {
	fb.Pixels[y*fb.Width+x] = c
}

// At returns the pixel at (x, y)
func (fb *Framebuffer) At(x, y int) core.Vec3 {
	return fb.Pixels[y*fb.Width+x]
}

// QuantizeChannel converts one linear channel in [0,1] to an 8-bit value
func QuantizeChannel(v float64) uint8 {
	return uint8(math.Round(255 * max(0, min(1, v))))
}

// ToRGBA converts the framebuffer to an 8-bit RGBA image
func (fb *Framebuffer) ToRGBA() *image.RGBA {
	return fb.RGBAForBounds(image.Rect(0, 0, fb.Width, fb.Height))
}

// RGBAForBounds converts a sub-region of the framebuffer to an 8-bit RGBA
// image. Used to extract completed tiles for streaming.
func (fb *Framebuffer) RGBAForBounds(bounds image.Rectangle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			p := fb.At(x, y)
			img.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, color.RGBA{
				R: QuantizeChannel(p.X),
				G: QuantizeChannel(p.Y),
				B: QuantizeChannel(p.Z),
				A: 255,
			})
		}
	}

	return img
}
