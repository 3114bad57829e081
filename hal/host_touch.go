//go:build !tinygo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hostTouch synthesizes touch presses from the mouse (and the space bar as
// a keyboard convenience). inpututil's "just pressed" checks give the
// edge-trigger the Touch contract requires: one event per press.
type hostTouch struct {
	ch chan TouchEvent
}

func newHostTouch() *hostTouch {
	return &hostTouch{ch: make(chan TouchEvent, 16)}
}

func (t *hostTouch) Events() <-chan TouchEvent { return t.ch }

func (t *hostTouch) poll() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		t.emit(TouchEvent{X: x, Y: y})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		t.emit(TouchEvent{X: panelWidth / 2, Y: panelHeight / 2})
	}
}

func (t *hostTouch) emit(ev TouchEvent) {
	select {
	case t.ch <- ev:
	default:
	}
}
