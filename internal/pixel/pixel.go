// Package pixel renders the emulator's frame buffer in a pixelgl window and
// feeds keyboard state back to the keypad.
package pixel

import (
	"fmt"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"
)

const gridWidth float64 = 64
const gridHeight float64 = 32
const screenWidth float64 = 1024
const screenHeight float64 = 512

// PixelSource reports whether the pixel at column x, row y is lit, with the
// origin at the top-left. The emulator's VM satisfies it.
type PixelSource interface {
	IsPixelOn(x, y int) bool
}

// Window embeds a pixelgl window and holds the keymapping of hex keypad
// digits to physical keys:
//  1 2 3 C        1 2 3 4
//  4 5 6 D   ->   Q W E R
//  7 8 9 E        A S D F
//  A 0 B F        Z X C V
type Window struct {
	*pixelgl.Window
	KeyMap map[byte]pixelgl.Button
}

// NewWindow handles creating a new pixelgl window config, initializing the
// window, and returning a Window with the standard keymap.
func NewWindow() (*Window, error) {
	cfg := pixelgl.WindowConfig{
		Title:  "octo",
		Bounds: pixel.R(0, 0, screenWidth, screenHeight),
		VSync:  true,
	}
	w, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating new window: %v", err)
	}
	km := map[byte]pixelgl.Button{
		0x1: pixelgl.Key1, 0x2: pixelgl.Key2,
		0x3: pixelgl.Key3, 0xC: pixelgl.Key4,
		0x4: pixelgl.KeyQ, 0x5: pixelgl.KeyW,
		0x6: pixelgl.KeyE, 0xD: pixelgl.KeyR,
		0x7: pixelgl.KeyA, 0x8: pixelgl.KeyS,
		0x9: pixelgl.KeyD, 0xE: pixelgl.KeyF,
		0xA: pixelgl.KeyZ, 0x0: pixelgl.KeyX,
		0xB: pixelgl.KeyC, 0xF: pixelgl.KeyV,
	}
	return &Window{Window: w, KeyMap: km}, nil
}

// DrawGraphics rasters the frame buffer, one filled rectangle per lit pixel.
// The emulator origin is the top-left; pixel's is the bottom-left, so rows
// are mirrored.
func (w *Window) DrawGraphics(src PixelSource) {
	w.Clear(colornames.Black)
	imDraw := imdraw.New(nil)
	imDraw.Color = pixel.RGB(1, 1, 1)
	width, height := screenWidth/gridWidth, screenHeight/gridHeight

	for x := 0; x < int(gridWidth); x++ {
		for y := 0; y < int(gridHeight); y++ {
			if !src.IsPixelOn(x, int(gridHeight)-1-y) {
				continue
			}
			imDraw.Push(pixel.V(width*float64(x), height*float64(y)))
			imDraw.Push(pixel.V(width*float64(x)+width, height*float64(y)+height))
			imDraw.Rectangle(0)
		}
	}

	imDraw.Draw(w)
	w.Update()
}

// HandleKeyInput forwards keymap press and release edges to the keypad.
// Call it once per host frame, after the window has polled input.
func (w *Window) HandleKeyInput(press, release func(key byte)) {
	for k, btn := range w.KeyMap {
		if w.JustPressed(btn) {
			press(k)
		}
		if w.JustReleased(btn) {
			release(k)
		}
	}
}
