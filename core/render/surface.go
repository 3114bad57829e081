package render

import (
	"image/color"

	"sentinel/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Surface adapts a hal.Framebuffer to the drivers.Displayer contract so
// tinyfont renders onto it, and adds the rectangle and line primitives the
// layouts need. Every operation clips to the framebuffer bounds; the
// surface is never read back.
type Surface struct {
	fb hal.Framebuffer
}

// NewSurface wraps a framebuffer. Only RGB565 framebuffers are drawable;
// other formats turn all operations into no-ops.
func NewSurface(fb hal.Framebuffer) *Surface {
	return &Surface{fb: fb}
}

// Size implements drivers.Displayer.
func (s *Surface) Size() (x, y int16) {
	if s.fb == nil {
		return 0, 0
	}
	return int16(s.fb.Width()), int16(s.fb.Height())
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int {
	if s.fb == nil {
		return 0
	}
	return s.fb.Width()
}

// Height returns the surface height in pixels.
func (s *Surface) Height() int {
	if s.fb == nil {
		return 0
	}
	return s.fb.Height()
}

// SetPixel implements drivers.Displayer.
func (s *Surface) SetPixel(x, y int16, c color.RGBA) {
	if s.fb == nil || s.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := s.fb.Buffer()
	if buf == nil {
		return
	}

	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= s.fb.Width() || iy < 0 || iy >= s.fb.Height() {
		return
	}

	pixel := rgb565From888(c.R, c.G, c.B)
	off := iy*s.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

// Display implements drivers.Displayer by presenting the framebuffer.
func (s *Surface) Display() error {
	if s.fb == nil {
		return nil
	}
	return s.fb.Present()
}

// SetRotation implements drivers.Displayer; rotation is fixed by the panel.
func (s *Surface) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

// Fill paints the whole surface.
func (s *Surface) Fill(c color.RGBA) {
	w, h := s.Size()
	s.FillRect(0, 0, int(w), int(h), c)
}

// FillRect paints a solid rectangle, clipped to the surface.
func (s *Surface) FillRect(x, y, width, height int, c color.RGBA) {
	if s.fb == nil || s.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := s.fb.Buffer()
	if buf == nil {
		return
	}

	x0 := clampInt(x, 0, s.fb.Width())
	y0 := clampInt(y, 0, s.fb.Height())
	x1 := clampInt(x+width, 0, s.fb.Width())
	y1 := clampInt(y+height, 0, s.fb.Height())
	if x0 >= x1 || y0 >= y1 {
		return
	}

	pixel := rgb565From888(c.R, c.G, c.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)

	stride := s.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off < 0 || off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
}

// DrawRect outlines a rectangle.
func (s *Surface) DrawRect(x, y, width, height int, c color.RGBA) {
	if width <= 0 || height <= 0 {
		return
	}
	s.HLine(x, y, width, c)
	s.HLine(x, y+height-1, width, c)
	s.VLine(x, y, height, c)
	s.VLine(x+width-1, y, height, c)
}

// HLine draws a horizontal line of the given width.
func (s *Surface) HLine(x, y, width int, c color.RGBA) {
	s.FillRect(x, y, width, 1, c)
}

// VLine draws a vertical line of the given height.
func (s *Surface) VLine(x, y, height int, c color.RGBA) {
	s.FillRect(x, y, 1, height, c)
}

// Line draws an arbitrary line segment (Bresenham).
func (s *Surface) Line(x0, y0, x1, y1 int, c color.RGBA) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		s.SetPixel(int16(x0), int16(y0), c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Text draws a string with its baseline at y.
func (s *Surface) Text(font tinyfont.Fonter, x, y int, c color.RGBA, text string) {
	tinyfont.WriteLine(s, font, int16(x), int16(y), text, c)
}

// TextWidth reports the advance width of text in the given font.
func (s *Surface) TextWidth(font tinyfont.Fonter, text string) int {
	_, outbox := tinyfont.LineWidth(font, text)
	return int(outbox)
}

// CenterText draws text horizontally centered on the surface.
func (s *Surface) CenterText(font tinyfont.Fonter, y int, c color.RGBA, text string) {
	x := (s.Width() - s.TextWidth(font, text)) / 2
	s.Text(font, x, y, c, text)
}

func rgb565From888(r, g, b uint8) uint16 {
	return uint16((uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | (uint16(b>>3) & 0x1F))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
