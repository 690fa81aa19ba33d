package console

import (
	"image/color"

	"termsh/hal"

	"tinygo.org/x/drivers"
)

// fbDisplay presents a hal.Framebuffer as a drivers.Displayer. Drawing goes
// to a private VRAM whose first visible row is set by SetScroll, the way a
// panel with hardware scrolling behaves; Display copies the visible window
// into the framebuffer.
type fbDisplay struct {
	fb     hal.Framebuffer
	w, h   int
	vram   []byte
	scroll int
}

var _ drivers.Displayer = (*fbDisplay)(nil)

func newFBDisplay(fb hal.Framebuffer) *fbDisplay {
	d := &fbDisplay{fb: fb}
	if fb != nil && fb.Format() == hal.PixelFormatRGB565 {
		d.w, d.h = fb.Width(), fb.Height()
		d.vram = make([]byte, d.w*d.h*2)
	}
	return d
}

func (d *fbDisplay) Size() (x, y int16) {
	return int16(d.w), int16(d.h)
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.w || iy < 0 || iy >= d.h {
		return
	}
	pixel := rgb565From888(c.R, c.G, c.B)
	off := (iy*d.w + ix) * 2
	d.vram[off] = byte(pixel)
	d.vram[off+1] = byte(pixel >> 8)
}

func (d *fbDisplay) Display() error {
	if d.vram == nil {
		return nil
	}
	buf := d.fb.Buffer()
	stride := d.fb.StrideBytes()
	row := d.w * 2
	for y := 0; y < d.h; y++ {
		src := ((y + d.scroll) % d.h) * row
		dst := y * stride
		if dst+row > len(buf) {
			break
		}
		copy(buf[dst:dst+row], d.vram[src:src+row])
	}
	return d.fb.Present()
}

func (d *fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	x0 := clampInt(int(x), 0, d.w)
	y0 := clampInt(int(y), 0, d.h)
	x1 := clampInt(int(x)+int(width), 0, d.w)
	y1 := clampInt(int(y)+int(height), 0, d.h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := rgb565From888(c.R, c.G, c.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for py := y0; py < y1; py++ {
		row := py * d.w * 2
		for px := x0; px < x1; px++ {
			d.vram[row+px*2] = lo
			d.vram[row+px*2+1] = hi
		}
	}
	return nil
}

// SetScroll makes VRAM row line the top of the visible window.
func (d *fbDisplay) SetScroll(line int16) {
	if d.h == 0 {
		return
	}
	d.scroll = ((int(line) % d.h) + d.h) % d.h
}

func (d *fbDisplay) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

func (d *fbDisplay) clear() {
	for i := range d.vram {
		d.vram[i] = 0
	}
	d.scroll = 0
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
