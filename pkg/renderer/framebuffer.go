package renderer

import (
	"image"
	"image/color"

	"github.com/davehc/go-whitted-raytracer/pkg/core"
)

// FrameBuffer is a width×height×3 byte image, row-major RGB, one byte
// per channel. Row 0 is the bottom of the image. Workers write disjoint
// row ranges, so no locking is needed.
type FrameBuffer struct {
	width  int
	height int
	pix    []byte
}

// NewFrameBuffer allocates a zeroed frame buffer
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		width:  width,
		height: height,
		pix:    make([]byte, width*height*3),
	}
}

// Width returns the buffer width in pixels
func (f *FrameBuffer) Width() int { return f.width }

// Height returns the buffer height in pixels
func (f *FrameBuffer) Height() int { return f.height }

// SetPixel quantizes a [0,1] color into the buffer at (i, j).
// Channels are truncated, not rounded: byte = floor(255 * channel).
func (f *FrameBuffer) SetPixel(i, j int, c core.Vec3) {
	offset := (i + j*f.width) * 3
	f.pix[offset] = byte(255 * c.X)
	f.pix[offset+1] = byte(255 * c.Y)
	f.pix[offset+2] = byte(255 * c.Z)
}

// Pixel returns the stored RGB bytes at (i, j)
func (f *FrameBuffer) Pixel(i, j int) (r, g, b byte) {
	offset := (i + j*f.width) * 3
	return f.pix[offset], f.pix[offset+1], f.pix[offset+2]
}

// Bytes returns the raw pixel storage
func (f *FrameBuffer) Bytes() []byte {
	return f.pix
}

// ToImage converts the buffer to an image.RGBA, flipping rows since
// image coordinates grow downwards.
func (f *FrameBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	for j := 0; j < f.height; j++ {
		for i := 0; i < f.width; i++ {
			r, g, b := f.Pixel(i, j)
			img.Set(i, f.height-1-j, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
