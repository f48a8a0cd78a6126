package output

import (
	"bufio"
	"fmt"
	"image/png"
	"io"
	"os"

	"github.com/rt1we/go-raytracer/pkg/renderer"
)

// EncodePPM writes the framebuffer in plain-text PPM (P3) format:
// a header line, dimensions, the maximum channel value, then one
// whitespace-separated RGB triple per pixel in row-major order
func EncodePPM(w io.Writer, fb *renderer.Framebuffer) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return fmt.Errorf("ppm header: %w", err)
	}

	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			p := fb.At(x, y)
			r := renderer.QuantizeChannel(p.X)
			g := renderer.QuantizeChannel(p.Y)
			b := renderer.QuantizeChannel(p.Z)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
				return fmt.Errorf("ppm pixel (%d,%d): %w", x, y, err)
			}
		}
	}

	return bw.Flush()
}

// EncodePPMBinary writes the framebuffer in binary PPM (P6) format
func EncodePPMBinary(w io.Writer, fb *renderer.Framebuffer) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return fmt.Errorf("ppm header: %w", err)
	}

	row := make([]byte, fb.Width*3)
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			p := fb.At(x, y)
			row[x*3] = renderer.QuantizeChannel(p.X)
			row[x*3+1] = renderer.QuantizeChannel(p.Y)
			row[x*3+2] = renderer.QuantizeChannel(p.Z)
		}
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("ppm row %d: %w", y, err)
		}
	}

	return bw.Flush()
}

// WritePPMFile saves the framebuffer to a PPM file, binary (P6) or
// plain text (P3)
func WritePPMFile(path string, fb *renderer.Framebuffer, binary bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if binary {
		if err := EncodePPMBinary(f, fb); err != nil {
			return err
		}
	} else {
		if err := EncodePPM(f, fb); err != nil {
			return err
		}
	}

	return f.Close()
}

// WritePNGFile saves the framebuffer to a PNG file
func WritePNGFile(path string, fb *renderer.Framebuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, fb.ToRGBA()); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	return f.Close()
}
