//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Keys that produce the same bytes a VT100 terminal sends.
var seqKeys = []struct {
	key ebiten.Key
	seq string
}{
	{ebiten.KeyArrowUp, "\x1b[A"},
	{ebiten.KeyArrowDown, "\x1b[B"},
	{ebiten.KeyArrowRight, "\x1b[C"},
	{ebiten.KeyArrowLeft, "\x1b[D"},
	{ebiten.KeyHome, "\x1b[H"},
	{ebiten.KeyDelete, "\x1b[3~"},
	{ebiten.KeyEnter, "\r"},
	{ebiten.KeyNumpadEnter, "\r"},
	{ebiten.KeyBackspace, "\b"},
	{ebiten.KeyTab, "\t"},
}

var ctrlKeys = []struct {
	key ebiten.Key
	b   byte
}{
	{ebiten.KeyC, 0x03},
	{ebiten.KeyH, 0x08},
	{ebiten.KeyL, 0x0c},
}

const (
	repeatDelay    = 30 // frames before a held key repeats
	repeatInterval = 4
)

func keyRepeats(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0)
}

// appendKeyBytes appends the terminal bytes for this frame's key input.
func appendKeyBytes(dst []byte) []byte {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	if ctrl {
		for _, k := range ctrlKeys {
			if inpututil.IsKeyJustPressed(k.key) {
				dst = append(dst, k.b)
			}
		}
	} else {
		for _, r := range ebiten.AppendInputChars(nil) {
			if r >= 0x20 && r < 0x7f {
				dst = append(dst, byte(r))
			}
		}
	}
	for _, k := range seqKeys {
		if keyRepeats(k.key) {
			dst = append(dst, k.seq...)
		}
	}
	return dst
}
