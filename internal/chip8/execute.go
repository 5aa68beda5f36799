package chip8

// execute dispatches a decoded instruction to its semantic routine. By the
// time it runs, the PC has already moved past the instruction word; jumps,
// skips and the wait-for-key rollback adjust it from there. Routines with
// more than one documented behavior consult the quirks configuration at
// dispatch time, so the same decoded instruction can behave differently
// across ticks if the host changes the config.
func (vm *VM) execute(in instruction) {
	switch in.kind {
	case opClearScreen:
		vm.frame.clear()
		vm.drawFlag = true
	case opReturn:
		vm.cpu.pc = vm.stack.pop()
	case opJump:
		vm.cpu.pc = in.nnn
	case opJumpOffset:
		vm.jumpOffset(in)
	case opCall:
		vm.stack.push(vm.cpu.pc)
		vm.cpu.pc = in.nnn
	case opSkipIfValueEqual:
		if vm.cpu.v[in.x] == in.nn {
			vm.cpu.advancePC()
		}
	case opSkipIfValueNotEqual:
		if vm.cpu.v[in.x] != in.nn {
			vm.cpu.advancePC()
		}
	case opSkipIfRegisterEqual:
		if vm.cpu.v[in.x] == vm.cpu.v[in.y] {
			vm.cpu.advancePC()
		}
	case opSkipIfRegisterNotEqual:
		if vm.cpu.v[in.x] != vm.cpu.v[in.y] {
			vm.cpu.advancePC()
		}
	case opLoad:
		vm.cpu.v[in.x] = in.nn
	case opLoadRegister:
		vm.cpu.v[in.x] = vm.cpu.v[in.y]
	case opLoadI:
		vm.cpu.i = in.nnn
	case opAdd:
		// Wrapping add; VF untouched.
		vm.cpu.v[in.x] += in.nn
	case opAddRegisters:
		vm.addRegisters(in)
	case opAddI:
		vm.cpu.i += uint16(vm.cpu.v[in.x])
	case opOr:
		vm.cpu.v[in.x] |= vm.cpu.v[in.y]
	case opAnd:
		vm.cpu.v[in.x] &= vm.cpu.v[in.y]
	case opXor:
		vm.cpu.v[in.x] ^= vm.cpu.v[in.y]
	case opSub:
		vm.sub(in)
	case opSubInverse:
		vm.subInverse(in)
	case opShiftRight:
		vm.shiftRight(in)
	case opShiftLeft:
		vm.shiftLeft(in)
	case opRandomAnd:
		vm.cpu.v[in.x] = byte(vm.rng.Intn(256)) & in.nn
	case opDrawSprite:
		vm.drawSprite(in)
	case opSkipIfKeyPressed:
		if vm.keys.isPressed(vm.cpu.v[in.x]) {
			vm.cpu.advancePC()
		}
	case opSkipIfKeyNotPressed:
		if !vm.keys.isPressed(vm.cpu.v[in.x]) {
			vm.cpu.advancePC()
		}
	case opLoadDelay:
		vm.cpu.v[in.x] = vm.cpu.delay
	case opSetDelay:
		vm.cpu.delay = vm.cpu.v[in.x]
		vm.delayTimer.rearm()
	case opSetSound:
		vm.cpu.sound = vm.cpu.v[in.x]
		vm.soundTimer.rearm()
	case opWaitKeyPress:
		vm.waitKeyPress(in)
	case opLoadSpriteDigit:
		vm.cpu.i = fontStart + 5*uint16(vm.cpu.v[in.x]&0xF)
	case opLoadBCD:
		vm.loadBCD(in)
	case opDumpRegisters:
		vm.dumpRegisters(in)
	case opLoadRegisters:
		vm.loadRegisters(in)
	case opInvalid:
		vm.logger.Printf("unknown opcode 0x%04X, skipping", in.word)
	}
}

// 8XY4 -> add VY into VX; VF reports the carry out of bit 7.
func (vm *VM) addRegisters(in instruction) {
	sum := uint16(vm.cpu.v[in.x]) + uint16(vm.cpu.v[in.y])
	vm.cpu.v[in.x] = byte(sum)
	if sum > 0xFF {
		vm.cpu.carryOn()
	} else {
		vm.cpu.carryOff()
	}
}

// 8XY5 -> VX -= VY; VF is 1 when no borrow occurs, 0 when one does.
func (vm *VM) sub(in instruction) {
	vx, vy := vm.cpu.v[in.x], vm.cpu.v[in.y]
	if vx >= vy {
		vm.cpu.carryOn()
	} else {
		vm.cpu.carryOff()
	}
	vm.cpu.v[in.x] = vx - vy
}

// 8XY7 -> VX = VY - VX; VF is 1 when no borrow occurs, 0 when one does.
func (vm *VM) subInverse(in instruction) {
	vx, vy := vm.cpu.v[in.x], vm.cpu.v[in.y]
	if vy >= vx {
		vm.cpu.carryOn()
	} else {
		vm.cpu.carryOff()
	}
	vm.cpu.v[in.x] = vy - vx
}

// 8XY6 -> shift right one bit; VF receives the bit shifted out. Which
// register supplies the operand depends on the configured shift style.
func (vm *VM) shiftRight(in instruction) {
	if vm.Config.Shift == CopyThenShift {
		vm.cpu.v[in.x] = vm.cpu.v[in.y]
	}
	out := vm.cpu.v[in.x] & 0x01
	vm.cpu.v[in.x] >>= 1
	vm.cpu.v[0xF] = out
}

// 8XYE -> shift left one bit; VF receives the MSB shifted out.
func (vm *VM) shiftLeft(in instruction) {
	if vm.Config.Shift == CopyThenShift {
		vm.cpu.v[in.x] = vm.cpu.v[in.y]
	}
	out := (vm.cpu.v[in.x] & 0x80) >> 7
	vm.cpu.v[in.x] <<= 1
	vm.cpu.v[0xF] = out
}

// BNNN -> jump with offset. The legacy behavior offsets from V0; the variable
// behavior offsets from the register named by the high nibble of NNN.
func (vm *VM) jumpOffset(in instruction) {
	switch vm.Config.Jump {
	case OffsetFromV0:
		vm.cpu.pc = in.nnn + uint16(vm.cpu.v[0])
	default:
		vm.cpu.pc = in.nnn + uint16(vm.cpu.v[in.x])
	}
}

// DXYN -> XOR-blit an N-row sprite from memory[I] at (VX, VY). The starting
// coordinate wraps; rows and columns that run off the bottom or right edge
// clip. VF reports whether any pixel was flipped off.
func (vm *VM) drawSprite(in instruction) {
	x0 := int(vm.cpu.v[in.x]) % DisplayWidth
	y0 := int(vm.cpu.v[in.y]) % DisplayHeight
	vm.cpu.carryOff()

	for r := 0; r < int(in.n); r++ {
		y := y0 + r
		if y >= DisplayHeight {
			break
		}
		row := vm.mem.readU8(vm.cpu.i + uint16(r))
		for c := 0; c < 8; c++ {
			x := x0 + c
			if x >= DisplayWidth {
				break
			}
			if row&(0x80>>c) == 0 {
				continue
			}
			if vm.frame.flip(x, y) {
				vm.cpu.carryOn()
			}
		}
	}
	vm.drawFlag = true
}

// FX0A -> block on the keypad by re-issuing the instruction every tick until
// a key is down, then store the lowest-index pressed key. Timers keep
// counting while the machine waits.
func (vm *VM) waitKeyPress(in instruction) {
	key, ok := vm.keys.firstPressed()
	if !ok {
		vm.cpu.rollbackPC()
		return
	}
	vm.cpu.v[in.x] = key
}

// FX33 -> hundreds, tens and units digits of VX into memory[I..I+2].
func (vm *VM) loadBCD(in instruction) {
	v := vm.cpu.v[in.x]
	vm.mem.writeU8(vm.cpu.i, v/100)
	vm.mem.writeU8(vm.cpu.i+1, v/10%10)
	vm.mem.writeU8(vm.cpu.i+2, v%10)
}

// FX55 -> store V0..VX in memory starting at I.
func (vm *VM) dumpRegisters(in instruction) {
	if vm.Config.DumpLoad == MutatingI {
		for r := byte(0); r <= in.x; r++ {
			vm.mem.writeU8(vm.cpu.i, vm.cpu.v[r])
			vm.cpu.i++
		}
		return
	}
	for r := byte(0); r <= in.x; r++ {
		vm.mem.writeU8(vm.cpu.i+uint16(r), vm.cpu.v[r])
	}
}

// FX65 -> fill V0..VX from memory starting at I.
func (vm *VM) loadRegisters(in instruction) {
	if vm.Config.DumpLoad == MutatingI {
		for r := byte(0); r <= in.x; r++ {
			vm.cpu.v[r] = vm.mem.readU8(vm.cpu.i)
			vm.cpu.i++
		}
		return
	}
	for r := byte(0); r <= in.x; r++ {
		vm.cpu.v[r] = vm.mem.readU8(vm.cpu.i + uint16(r))
	}
}
