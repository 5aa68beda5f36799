package chip8

// cpu is the register file: sixteen general purpose 8-bit registers V0-VF,
// the 16-bit index register, the program counter, and the two countdown
// registers. VF doubles as the carry/borrow/collision flag, so programs using
// it as scratch see it clobbered by the next arithmetic, shift or draw.
type cpu struct {
	v     [16]byte
	i     uint16
	pc    uint16
	delay byte
	sound byte
}

func newCPU() cpu {
	return cpu{pc: romStart}
}

func (c *cpu) advancePC() {
	c.pc += 2
}

// rollbackPC backs the program counter up one instruction so the word at the
// old PC executes again next tick. Used by the wait-for-key instruction.
func (c *cpu) rollbackPC() {
	c.pc -= 2
}

func (c *cpu) carryOn() {
	c.v[0xF] = 1
}

func (c *cpu) carryOff() {
	c.v[0xF] = 0
}
