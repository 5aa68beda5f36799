package chip8

import "testing"

// mockClock is a hand-advanced millisecond clock for timer tests.
type mockClock struct {
	ms int64
}

func (c *mockClock) now() int64 {
	return c.ms
}

func TestTimerSteps(t *testing.T) {
	clk := &mockClock{}
	tm := newTimer(clk.now)

	clk.ms = 50
	if got, want := tm.steps(), byte(3); got != want {
		t.Errorf("steps after 50ms => %d; want %d", got, want)
	}
	if got := tm.steps(); got != 0 {
		t.Errorf("steps with no elapsed time => %d; want 0", got)
	}

	clk.ms = 100
	if got, want := tm.steps(), byte(3); got != want {
		t.Errorf("steps after another 50ms => %d; want %d", got, want)
	}
}

// Sub-step remainders accumulate across polls instead of being discarded.
func TestTimerKeepsRemainder(t *testing.T) {
	clk := &mockClock{}
	tm := newTimer(clk.now)

	var total int
	for ms := int64(10); ms <= 100; ms += 10 {
		clk.ms = ms
		total += int(tm.steps())
	}

	// 100ms at 60Hz is 6 whole steps no matter how often we polled.
	if got, want := total, 6; got != want {
		t.Errorf("steps over 100ms of 10ms polls => %d; want %d", got, want)
	}
}

func TestTimerRearm(t *testing.T) {
	clk := &mockClock{}
	tm := newTimer(clk.now)

	clk.ms = 5000
	tm.rearm()

	clk.ms = 5010
	if got := tm.steps(); got != 0 {
		t.Errorf("steps right after rearm => %d; want 0", got)
	}
}

func TestTimerClampsLongPause(t *testing.T) {
	clk := &mockClock{}
	tm := newTimer(clk.now)

	clk.ms = 60 * 60 * 1000
	if got, want := tm.steps(), byte(255); got != want {
		t.Errorf("steps after an hour => %d; want %d", got, want)
	}
}

func TestVMDelayCountdown(t *testing.T) {
	clk := &mockClock{}
	vm := NewVM(&Options{Clock: clk.now})

	vm.cpu.v[1] = 5
	vm.execute(decode(0xF115))
	if got, want := vm.Delay(), byte(5); got != want {
		t.Fatalf("delay => %d; want %d", got, want)
	}

	clk.ms = 50
	vm.Tick()
	if got, want := vm.Delay(), byte(2); got != want {
		t.Errorf("delay after 50ms => %d; want %d", got, want)
	}

	clk.ms = 100
	vm.Tick()
	if got, want := vm.Delay(), byte(0); got != want {
		t.Errorf("delay after 100ms => %d; want %d", got, want)
	}
}

// Loading a countdown register after a long idle stretch must not burn
// through the accumulated idle time at once.
func TestVMDelayNoBurstCatchUp(t *testing.T) {
	clk := &mockClock{}
	vm := NewVM(&Options{Clock: clk.now})

	clk.ms = 10000
	vm.Tick()

	vm.cpu.v[1] = 10
	vm.execute(decode(0xF115))

	clk.ms = 10017
	vm.Tick()
	if got, want := vm.Delay(), byte(9); got != want {
		t.Errorf("delay => %d; want %d", got, want)
	}
}

func TestVMSoundCountdownAndFlag(t *testing.T) {
	clk := &mockClock{}
	vm := NewVM(&Options{Clock: clk.now})

	if vm.IsSoundOn() {
		t.Error("sound on at construction; want off")
	}

	vm.cpu.v[3] = 2
	vm.execute(decode(0xF318))
	if !vm.IsSoundOn() {
		t.Error("sound off after LD ST; want on")
	}

	clk.ms = 100
	vm.Tick()
	if vm.IsSoundOn() {
		t.Error("sound still on after countdown; want off")
	}
}
