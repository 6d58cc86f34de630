package fbhost

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/phanxgames/garden"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

var (
	stripColor  = color.RGBA{0x1e, 0x2b, 0x1a, 0xff}
	textColor   = color.RGBA{0xe4, 0xff, 0xd9, 0xff}
	recordColor = color.RGBA{0xe5, 0x39, 0x35, 0xff}
)

// Compositor lays a painted frame above a status strip on one canvas.
type Compositor struct {
	canvas  *image.RGBA
	face    font.Face
	frameW  int
	frameH  int
	density float64
}

// NewCompositor returns a compositor for frames of w×h device pixels painted
// at density.
func NewCompositor(w, h int, density float64, face font.Face) *Compositor {
	strip := int(math.Round(garden.StripHeight * density))
	return &Compositor{
		canvas:  image.NewRGBA(image.Rect(0, 0, w, h+strip)),
		face:    face,
		frameW:  w,
		frameH:  h,
		density: density,
	}
}

// Canvas returns the composed image. It is reused by every Compose.
func (c *Compositor) Canvas() *image.RGBA { return c.canvas }

// Compose copies the frame and draws the status lines under it. A red
// marker is drawn while recording.
func (c *Compositor) Compose(pix []byte, lines []string, recording bool) *image.RGBA {
	rowBytes := c.frameW * 4
	for y := 0; y < c.frameH && (y+1)*rowBytes <= len(pix); y++ {
		copy(c.canvas.Pix[y*c.canvas.Stride:], pix[y*rowBytes:(y+1)*rowBytes])
	}

	strip := image.Rect(0, c.frameH, c.frameW, c.canvas.Bounds().Dy())
	draw.Draw(c.canvas, strip, &image.Uniform{C: stripColor}, image.Point{}, draw.Src)

	pad := int(math.Round(12 * c.density))
	x := strip.Min.X + pad
	if recording {
		size := int(math.Round(10 * c.density))
		mark := image.Rect(x, strip.Min.Y+pad, x+size, strip.Min.Y+pad+size)
		draw.Draw(c.canvas, mark, &image.Uniform{C: recordColor}, image.Point{}, draw.Src)
		x += size + pad
	}
	if c.face == nil {
		return c.canvas
	}

	d := &font.Drawer{Dst: c.canvas, Src: &image.Uniform{C: textColor}, Face: c.face}
	lineH := c.face.Metrics().Height.Ceil()
	baseline := strip.Min.Y + pad + c.face.Metrics().Ascent.Ceil()
	for _, line := range lines {
		if baseline > c.canvas.Bounds().Dy() {
			break
		}
		d.Dot = fixed.P(x, baseline)
		d.DrawString(line)
		baseline += lineH
	}
	return c.canvas
}

// pixelSetter is the part of a framebuffer device blit writes to.
type pixelSetter interface {
	Bounds() image.Rectangle
	Set(x, y int, c color.Color)
}

// blit scales src onto dst with nearest-neighbour sampling, forcing alpha to
// opaque.
func blit(dst pixelSetter, src *image.RGBA) {
	bounds := dst.Bounds()
	dstW, dstH := bounds.Dx(), bounds.Dy()
	srcW, srcH := src.Bounds().Dx(), src.Bounds().Dy()
	if dstW == 0 || dstH == 0 || srcW == 0 || srcH == 0 {
		return
	}
	for y := 0; y < dstH; y++ {
		sy := (y * srcH) / dstH
		for x := 0; x < dstW; x++ {
			sx := (x * srcW) / dstW
			p := src.RGBAAt(src.Bounds().Min.X+sx, src.Bounds().Min.Y+sy)
			dst.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xff})
		}
	}
}
