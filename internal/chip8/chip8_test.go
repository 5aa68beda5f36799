package chip8

import (
	"bytes"
	"testing"
)

func TestNewVM(t *testing.T) {
	vm := NewVM(nil)

	if got, want := vm.PC(), uint16(romStart); got != want {
		t.Errorf("PC => %#x; want %#x", got, want)
	}
	if got, want := vm.I(), uint16(0); got != want {
		t.Errorf("I => %#x; want %#x", got, want)
	}
	for i, v := range vm.DumpRegisters() {
		if v != 0 {
			t.Errorf("V%X => %d; want 0", i, v)
		}
	}
	for i, b := range fontSet {
		if got := vm.mem.readU8(uint16(fontStart + i)); got != b {
			t.Fatalf("font byte %d => %#x; want %#x", i, got, b)
		}
	}
	for x := 0; x < DisplayWidth; x++ {
		for y := 0; y < DisplayHeight; y++ {
			if vm.IsPixelOn(x, y) {
				t.Fatalf("pixel (%d, %d) lit at construction", x, y)
			}
		}
	}
	if vm.IsSoundOn() {
		t.Error("sound on at construction")
	}
	if got, want := vm.Config, DefaultConfig(); got != want {
		t.Errorf("config => %+v; want %+v", got, want)
	}
}

func TestTickAdvancesPC(t *testing.T) {
	vm := testVM()
	loadROM(t, vm, 0x60, 0x12)

	vm.Tick()

	if got, want := vm.PC(), uint16(0x202); got != want {
		t.Errorf("PC => %#x; want %#x", got, want)
	}
}

func TestLoadROMPlacesBytesAtProgramStart(t *testing.T) {
	vm := testVM()
	loadROM(t, vm, 0xA2, 0xF0, 0x13, 0x00)

	if got, want := vm.mem.readU16(romStart), uint16(0xA2F0); got != want {
		t.Errorf("first word => %#x; want %#x", got, want)
	}
	if got, want := vm.mem.readU16(romStart+2), uint16(0x1300); got != want {
		t.Errorf("second word => %#x; want %#x", got, want)
	}
}

func TestLoadROMRejectsOversizedImage(t *testing.T) {
	vm := testVM()

	if err := vm.LoadROM(make([]byte, maxROMSize)); err != nil {
		t.Errorf("LoadROM at the limit => %v; want nil", err)
	}
	if err := vm.LoadROM(make([]byte, maxROMSize+1)); err == nil {
		t.Error("LoadROM over the limit => nil; want error")
	}
}

func TestLoadROMResetsVolatileState(t *testing.T) {
	vm := testVM()
	vm.Config.Shift = CopyThenShift
	loadROM(t, vm, 0x60, 0xAA, 0x23, 0x00, 0xD0, 0x15)

	vm.cpu.i = fontStart
	vm.execute(decode(0xD015))
	vm.Tick()
	vm.Tick()
	vm.PressKey(0x4)
	vm.cpu.delay = 99

	loadROM(t, vm, 0x13, 0x00)

	if got, want := vm.PC(), uint16(romStart); got != want {
		t.Errorf("PC => %#x; want %#x", got, want)
	}
	for i, v := range vm.DumpRegisters() {
		if v != 0 {
			t.Errorf("V%X => %d; want 0", i, v)
		}
	}
	if got := vm.stack.sp; got != 0 {
		t.Errorf("stack depth => %d; want 0", got)
	}
	if got := vm.Delay(); got != 0 {
		t.Errorf("delay => %d; want 0", got)
	}
	if vm.keys.isPressed(0x4) {
		t.Error("key 4 still pressed after load")
	}
	for x := 0; x < DisplayWidth; x++ {
		for y := 0; y < DisplayHeight; y++ {
			if vm.IsPixelOn(x, y) {
				t.Fatalf("pixel (%d, %d) survived the load", x, y)
			}
		}
	}
	// Old program bytes are gone past the new image.
	if got := vm.mem.readU16(romStart + 2); got != 0 {
		t.Errorf("stale word => %#x; want 0", got)
	}
	// Font table and configuration survive.
	if got, want := vm.mem.readU8(fontStart), fontSet[0]; got != want {
		t.Errorf("font byte => %#x; want %#x", got, want)
	}
	if got, want := vm.Config.Shift, CopyThenShift; got != want {
		t.Errorf("config => %v; want %v", got, want)
	}
}

func TestPressAndReleaseKey(t *testing.T) {
	vm := testVM()

	for k := byte(0); k < 16; k++ {
		vm.PressKey(k)
		if !vm.keys.isPressed(k) {
			t.Errorf("key %X should be pressed", k)
		}
		vm.ReleaseKey(k)
		if vm.keys.isPressed(k) {
			t.Errorf("key %X should be released", k)
		}
	}
}

func TestDumpRegistersIsASnapshot(t *testing.T) {
	vm := testVM()
	vm.cpu.v[2] = 0x33

	snap := vm.DumpRegisters()
	snap[2] = 0x44

	if got, want := vm.cpu.v[2], byte(0x33); got != want {
		t.Errorf("V2 => %#x; want %#x (snapshot must not alias)", got, want)
	}
}

func TestDrawFlagClearsOnNonDrawTick(t *testing.T) {
	vm := testVM()
	loadROM(t, vm, 0xD0, 0x15, 0x60, 0x01)
	vm.cpu.i = fontStart

	vm.Tick()
	if !vm.DrawFlag() {
		t.Fatal("draw flag should be set after a DRW tick")
	}

	vm.Tick()
	if vm.DrawFlag() {
		t.Error("draw flag should clear on a tick that doesn't draw")
	}
}

func TestFrameBufferDebugString(t *testing.T) {
	vm := testVM()
	vm.frame.flip(0, 0)

	out := vm.frame.String()
	if got, want := out[0], byte('#'); got != want {
		t.Errorf("first cell => %q; want %q", got, want)
	}
	if !bytes.Contains([]byte(out), []byte("\n")) {
		t.Error("debug render should be line separated")
	}
}
