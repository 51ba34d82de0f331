//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) emit(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}

var windowKeys = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyBackspace, KeyBackspace},
	{ebiten.KeyTab, KeyTab},
	{ebiten.KeyDelete, KeyDelete},
	{ebiten.KeyHome, KeyHome},
	{ebiten.KeyEnd, KeyEnd},
	{ebiten.KeyPageUp, KeyPageUp},
	{ebiten.KeyPageDown, KeyPageDown},
	{ebiten.KeyF1, KeyF1},
}

func (k *hostKeyboard) poll() {
	for _, r := range ebiten.AppendInputChars(nil) {
		k.emit(KeyEvent{Press: true, Rune: r})
	}

	for _, m := range windowKeys {
		if inpututil.IsKeyJustPressed(m.key) {
			k.emit(KeyEvent{Code: m.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(m.key) {
			k.emit(KeyEvent{Code: m.code, Press: false})
		}
	}
}

// pointerPoller turns ebiten's polled mouse state into events.
type pointerPoller struct {
	lastX, lastY int
	seen         bool
}

func (p *pointerPoller) poll(out *hostPointer) {
	x, y := ebiten.CursorPosition()
	if !p.seen || x != p.lastX || y != p.lastY {
		out.emit(PointerEvent{Kind: PointerMove, X: x, Y: y})
		p.lastX, p.lastY, p.seen = x, y, true
	}
	for _, b := range []struct {
		src ebiten.MouseButton
		dst PointerButton
	}{
		{ebiten.MouseButtonLeft, ButtonLeft},
		{ebiten.MouseButtonRight, ButtonRight},
		{ebiten.MouseButtonMiddle, ButtonMiddle},
	} {
		if inpututil.IsMouseButtonJustPressed(b.src) {
			out.emit(PointerEvent{Kind: PointerDown, X: x, Y: y, Button: b.dst})
		}
		if inpututil.IsMouseButtonJustReleased(b.src) {
			out.emit(PointerEvent{Kind: PointerUp, X: x, Y: y, Button: b.dst})
		}
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		out.emit(PointerEvent{Kind: PointerWheel, X: x, Y: y, Wheel: dy})
	}
}
