// Package chip8 implements the CHIP-8 virtual machine. Chip-8 used to be
// implemented on 4k systems like the Telmac 1800 and Cosmac VIP where the
// chip-8 interpreter itself occupied the first 512 bytes of memory (up to
// 0x200). In modern implementations like this one, where the interpreter runs
// natively outside the 4K memory space, the low region only holds the
// built-in font table, and programs load and execute from 0x200.
//
// The package is the interpreter core only: it executes instructions against
// its memory, registers, frame buffer, keypad and timers, and exposes the
// state the host needs to render pixels and produce sound. The event loop,
// window, audio and ROM files live with the host.
package chip8

import (
	"fmt"
	"io"
	"log"
	"math/rand"
)

// Options configures a VM. The zero value of every field selects a sensible
// default, so NewVM(nil) yields a working machine.
type Options struct {
	// Clock supplies monotonic milliseconds for the delay and sound timers.
	// Defaults to a time.Since based clock.
	Clock Clock
	// Seed seeds the random byte source. Runs with the same seed and inputs
	// are reproducible.
	Seed int64
	// Logger receives unknown-opcode warnings. Defaults to discarding them.
	Logger *log.Logger
	// Config selects the quirk behaviors. The zero value is the default
	// configuration.
	Config Config
}

// VM is the CHIP-8 virtual machine: the register file, 4KiB of memory, the
// call stack, the packed frame buffer, the keypad and the two countdown
// timers, driven one fetch-decode-execute step at a time by Tick.
//
// The VM is single-threaded and cooperative. Nothing in here blocks or spawns
// goroutines; host mutators (PressKey, ReleaseKey, LoadROM) must not be
// called concurrently with Tick.
type VM struct {
	// Config selects between historically incompatible instruction
	// semantics. The host may change it between ticks.
	Config Config

	mem   memory
	stack stack
	cpu   cpu
	frame frameBuffer
	keys  keypad

	delayTimer timer
	soundTimer timer

	rng    *rand.Rand
	logger *log.Logger

	drawFlag bool
}

// NewVM returns a VM with the font sprites preloaded, the program counter at
// the program start, and all user memory zero. A nil opts selects defaults.
func NewVM(opts *Options) *VM {
	if opts == nil {
		opts = &Options{}
	}
	clock := opts.Clock
	if clock == nil {
		clock = defaultClock()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	vm := &VM{
		Config: opts.Config,
		cpu:    newCPU(),
		rng:    rand.New(rand.NewSource(opts.Seed)),
		logger: logger,
	}
	vm.delayTimer = newTimer(clock)
	vm.soundTimer = newTimer(clock)
	vm.mem.copyFrom(fontStart, fontSet[:])
	return vm
}

// LoadROM resets all volatile state and copies the image into memory at the
// program start. The font table and the quirks configuration survive a load.
// Images over 3584 bytes don't fit above 0x200 and are rejected.
func (vm *VM) LoadROM(rom []byte) error {
	if len(rom) > maxROMSize {
		return fmt.Errorf("rom too large: %d bytes (max %d)", len(rom), maxROMSize)
	}
	vm.mem.clearUserArea()
	vm.cpu = newCPU()
	vm.stack = stack{}
	vm.frame.clear()
	vm.keys = keypad{}
	vm.delayTimer.rearm()
	vm.soundTimer.rearm()
	vm.drawFlag = false
	vm.mem.copyFrom(romStart, rom)
	return nil
}

// Tick runs one cycle: advance the timers, fetch the big-endian word at PC,
// advance PC past it, decode, and execute. Unknown opcodes log a warning and
// fall through as no-ops; everything else cannot fail observably.
func (vm *VM) Tick() {
	vm.stepTimers()
	word := vm.mem.readU16(vm.cpu.pc)
	vm.cpu.advancePC()
	vm.drawFlag = false
	vm.execute(decode(word))
}

func (vm *VM) stepTimers() {
	if vm.cpu.delay > 0 {
		vm.cpu.delay = countDown(vm.cpu.delay, vm.delayTimer.steps())
	} else {
		vm.delayTimer.rearm()
	}
	if vm.cpu.sound > 0 {
		vm.cpu.sound = countDown(vm.cpu.sound, vm.soundTimer.steps())
	} else {
		vm.soundTimer.rearm()
	}
}

func countDown(register, steps byte) byte {
	if steps >= register {
		return 0
	}
	return register - steps
}

// PressKey records key k (0-15) as held.
func (vm *VM) PressKey(k byte) {
	vm.keys.press(k)
}

// ReleaseKey records key k (0-15) as released.
func (vm *VM) ReleaseKey(k byte) {
	vm.keys.release(k)
}

// IsPixelOn reports whether the frame-buffer pixel at column x, row y is lit.
func (vm *VM) IsPixelOn(x, y int) bool {
	return vm.frame.isOn(x, y)
}

// IsSoundOn reports whether the sound register is counting down. The host
// produces the actual tone.
func (vm *VM) IsSoundOn() bool {
	return vm.cpu.sound > 0
}

// DrawFlag reports whether the last tick touched the frame buffer, so hosts
// can skip redraws on ticks that didn't.
func (vm *VM) DrawFlag() bool {
	return vm.drawFlag
}

// DumpRegisters returns a snapshot of V0..VF for tests and debugging.
func (vm *VM) DumpRegisters() [16]byte {
	return vm.cpu.v
}

// PC returns the program counter.
func (vm *VM) PC() uint16 {
	return vm.cpu.pc
}

// I returns the index register.
func (vm *VM) I() uint16 {
	return vm.cpu.i
}

// Delay returns the delay register.
func (vm *VM) Delay() byte {
	return vm.cpu.delay
}
