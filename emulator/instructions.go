package emulator

// Instruction execution for the SM83 subset the machine carries: loads,
// 8/16 bit inc/dec, the accumulator ALU group, stack ops, jumps/calls and
// the interrupt control instructions. Anything else panics, the decoder is
// grown as ROMs need it

// Operand indexes used by the regular opcode blocks. 6 is the (HL)
// memory operand
const operandHL = 6

// Returns the 8 bit operand for `idx` (B, C, D, E, H, L, (HL), A)
func (cpu *CPU) reg8(idx byte) byte {
	switch idx {
	case 0:
		return cpu.B
	case 1:
		return cpu.C
	case 2:
		return cpu.D
	case 3:
		return cpu.E
	case 4:
		return cpu.H
	case 5:
		return cpu.L
	case operandHL:
		return cpu.Inter.Load8(cpu.HL())
	case 7:
		return cpu.A
	}
	panicFmt("cpu: invalid operand index %d", idx)
	return 0
}

// Stores `v` into the 8 bit operand for `idx`
func (cpu *CPU) setReg8(idx, v byte) {
	switch idx {
	case 0:
		cpu.B = v
	case 1:
		cpu.C = v
	case 2:
		cpu.D = v
	case 3:
		cpu.E = v
	case 4:
		cpu.H = v
	case 5:
		cpu.L = v
	case operandHL:
		cpu.Inter.Store8(cpu.HL(), v)
	case 7:
		cpu.A = v
	default:
		panicFmt("cpu: invalid operand index %d", idx)
	}
}

// Executes the instruction at PC and returns its cycle cost
func (cpu *CPU) Execute() int {
	op := cpu.Fetch8()

	switch {
	case op == 0x00: // NOP
		return 4

	case op == 0x76: // HALT
		return cpu.opHalt()

	case op == 0xf3: // DI
		cpu.Irq.RequestImmediateDisable()
		return 4

	case op == 0xfb: // EI
		cpu.Irq.RequestDelayedEnable()
		return 4

	case op == 0xd9: // RETI
		cpu.PC = cpu.Pop16()
		cpu.Irq.RequestImmediateEnable()
		return 16

	case op >= 0x40 && op <= 0x7f: // LD r, r'
		src := op & 7
		dst := (op >> 3) & 7
		cpu.setReg8(dst, cpu.reg8(src))
		if src == operandHL || dst == operandHL {
			return 8
		}
		return 4

	case op >= 0x80 && op <= 0xbf: // ALU A, r
		cpu.alu((op>>3)&7, cpu.reg8(op&7))
		if op&7 == operandHL {
			return 8
		}
		return 4

	case op&0xc7 == 0x06: // LD r, n
		dst := (op >> 3) & 7
		cpu.setReg8(dst, cpu.Fetch8())
		if dst == operandHL {
			return 12
		}
		return 8

	case op&0xc7 == 0x04: // INC r
		dst := (op >> 3) & 7
		cpu.setReg8(dst, cpu.inc8(cpu.reg8(dst)))
		if dst == operandHL {
			return 12
		}
		return 4

	case op&0xc7 == 0x05: // DEC r
		dst := (op >> 3) & 7
		cpu.setReg8(dst, cpu.dec8(cpu.reg8(dst)))
		if dst == operandHL {
			return 12
		}
		return 4

	case op&0xc7 == 0xc6: // ALU A, n
		cpu.alu((op>>3)&7, cpu.Fetch8())
		return 8
	}

	return cpu.executeMisc(op)
}

// The opcodes that don't fall into a regular block
func (cpu *CPU) executeMisc(op byte) int {
	switch op {
	// 16 bit loads
	case 0x01:
		cpu.SetBC(cpu.Fetch16())
		return 12
	case 0x11:
		cpu.SetDE(cpu.Fetch16())
		return 12
	case 0x21:
		cpu.SetHL(cpu.Fetch16())
		return 12
	case 0x31:
		cpu.SP = cpu.Fetch16()
		return 12

	// 16 bit inc/dec
	case 0x03:
		cpu.SetBC(cpu.BC() + 1)
		return 8
	case 0x13:
		cpu.SetDE(cpu.DE() + 1)
		return 8
	case 0x23:
		cpu.SetHL(cpu.HL() + 1)
		return 8
	case 0x33:
		cpu.SP++
		return 8
	case 0x0b:
		cpu.SetBC(cpu.BC() - 1)
		return 8
	case 0x1b:
		cpu.SetDE(cpu.DE() - 1)
		return 8
	case 0x2b:
		cpu.SetHL(cpu.HL() - 1)
		return 8
	case 0x3b:
		cpu.SP--
		return 8

	// accumulator loads through pointer registers
	case 0x02:
		cpu.Inter.Store8(cpu.BC(), cpu.A)
		return 8
	case 0x12:
		cpu.Inter.Store8(cpu.DE(), cpu.A)
		return 8
	case 0x0a:
		cpu.A = cpu.Inter.Load8(cpu.BC())
		return 8
	case 0x1a:
		cpu.A = cpu.Inter.Load8(cpu.DE())
		return 8
	case 0x22:
		cpu.Inter.Store8(cpu.HL(), cpu.A)
		cpu.SetHL(cpu.HL() + 1)
		return 8
	case 0x32:
		cpu.Inter.Store8(cpu.HL(), cpu.A)
		cpu.SetHL(cpu.HL() - 1)
		return 8
	case 0x2a:
		cpu.A = cpu.Inter.Load8(cpu.HL())
		cpu.SetHL(cpu.HL() + 1)
		return 8
	case 0x3a:
		cpu.A = cpu.Inter.Load8(cpu.HL())
		cpu.SetHL(cpu.HL() - 1)
		return 8

	// absolute and high page loads
	case 0xea:
		cpu.Inter.Store8(cpu.Fetch16(), cpu.A)
		return 16
	case 0xfa:
		cpu.A = cpu.Inter.Load8(cpu.Fetch16())
		return 16
	case 0xe0:
		cpu.Inter.Store8(0xff00+uint16(cpu.Fetch8()), cpu.A)
		return 12
	case 0xf0:
		cpu.A = cpu.Inter.Load8(0xff00 + uint16(cpu.Fetch8()))
		return 12
	case 0xe2:
		cpu.Inter.Store8(0xff00+uint16(cpu.C), cpu.A)
		return 8
	case 0xf2:
		cpu.A = cpu.Inter.Load8(0xff00 + uint16(cpu.C))
		return 8

	// stack
	case 0xc5:
		cpu.Push16(cpu.BC())
		return 16
	case 0xd5:
		cpu.Push16(cpu.DE())
		return 16
	case 0xe5:
		cpu.Push16(cpu.HL())
		return 16
	case 0xf5:
		cpu.Push16(cpu.AF())
		return 16
	case 0xc1:
		cpu.SetBC(cpu.Pop16())
		return 12
	case 0xd1:
		cpu.SetDE(cpu.Pop16())
		return 12
	case 0xe1:
		cpu.SetHL(cpu.Pop16())
		return 12
	case 0xf1:
		cpu.SetAF(cpu.Pop16())
		return 12

	// jumps, calls, returns
	case 0xc3:
		cpu.PC = cpu.Fetch16()
		return 16
	case 0xe9:
		cpu.PC = cpu.HL()
		return 4
	case 0x18:
		cpu.jumpRelative()
		return 12
	case 0x20:
		return cpu.jumpRelativeIf(!cpu.Flag(FLAG_Z))
	case 0x28:
		return cpu.jumpRelativeIf(cpu.Flag(FLAG_Z))
	case 0x30:
		return cpu.jumpRelativeIf(!cpu.Flag(FLAG_C))
	case 0x38:
		return cpu.jumpRelativeIf(cpu.Flag(FLAG_C))
	case 0xc2:
		return cpu.jumpAbsoluteIf(!cpu.Flag(FLAG_Z))
	case 0xca:
		return cpu.jumpAbsoluteIf(cpu.Flag(FLAG_Z))
	case 0xd2:
		return cpu.jumpAbsoluteIf(!cpu.Flag(FLAG_C))
	case 0xda:
		return cpu.jumpAbsoluteIf(cpu.Flag(FLAG_C))
	case 0xcd:
		addr := cpu.Fetch16()
		cpu.Push16(cpu.PC)
		cpu.PC = addr
		return 24
	case 0xc9:
		cpu.PC = cpu.Pop16()
		return 16
	case 0xc0:
		return cpu.returnIf(!cpu.Flag(FLAG_Z))
	case 0xc8:
		return cpu.returnIf(cpu.Flag(FLAG_Z))
	case 0xd0:
		return cpu.returnIf(!cpu.Flag(FLAG_C))
	case 0xd8:
		return cpu.returnIf(cpu.Flag(FLAG_C))

	case 0x2f: // CPL
		cpu.A = ^cpu.A
		cpu.SetFlag(FLAG_N, true)
		cpu.SetFlag(FLAG_H, true)
		return 4
	}

	panicFmt("cpu: unhandled instruction 0x%02x at 0x%04x", op, cpu.PC-1)
	return 0
}

// HALT. When the master enable is off and nothing is requested-and-enabled
// at this exact instant, the hardware double-fetch latch gets armed; with
// something already pending the ordinary wake paths apply and the latch
// stays off
func (cpu *CPU) opHalt() int {
	if !cpu.Irq.MasterEnable && !cpu.Irq.Active() {
		cpu.HaltBug = true
	}
	cpu.Halted = true
	return 4
}

// Dispatches one of the 8 accumulator ALU operations
func (cpu *CPU) alu(op, val byte) {
	switch op {
	case 0: // ADD
		cpu.add(val, false)
	case 1: // ADC
		cpu.add(val, cpu.Flag(FLAG_C))
	case 2: // SUB
		cpu.A = cpu.sub(val, false)
	case 3: // SBC
		cpu.A = cpu.sub(val, cpu.Flag(FLAG_C))
	case 4: // AND
		cpu.A &= val
		cpu.F = FLAG_H
		cpu.SetFlag(FLAG_Z, cpu.A == 0)
	case 5: // XOR
		cpu.A ^= val
		cpu.F = 0
		cpu.SetFlag(FLAG_Z, cpu.A == 0)
	case 6: // OR
		cpu.A |= val
		cpu.F = 0
		cpu.SetFlag(FLAG_Z, cpu.A == 0)
	case 7: // CP
		cpu.sub(val, false)
	}
}

func (cpu *CPU) add(val byte, carry bool) {
	c := uint16(oneIfTrue(carry))
	r := uint16(cpu.A) + uint16(val) + c
	cpu.SetFlag(FLAG_Z, byte(r) == 0)
	cpu.SetFlag(FLAG_N, false)
	cpu.SetFlag(FLAG_H, (cpu.A&0xf)+(val&0xf)+byte(c) > 0xf)
	cpu.SetFlag(FLAG_C, r > 0xff)
	cpu.A = byte(r)
}

// Shared by SUB, SBC and CP (which drops the result)
func (cpu *CPU) sub(val byte, carry bool) byte {
	c := int(oneIfTrue(carry))
	r := int(cpu.A) - int(val) - c
	cpu.SetFlag(FLAG_Z, byte(r) == 0)
	cpu.SetFlag(FLAG_N, true)
	cpu.SetFlag(FLAG_H, int(cpu.A&0xf)-int(val&0xf)-c < 0)
	cpu.SetFlag(FLAG_C, r < 0)
	return byte(r)
}

func (cpu *CPU) inc8(v byte) byte {
	r := v + 1
	cpu.SetFlag(FLAG_Z, r == 0)
	cpu.SetFlag(FLAG_N, false)
	cpu.SetFlag(FLAG_H, v&0xf == 0xf)
	return r
}

func (cpu *CPU) dec8(v byte) byte {
	r := v - 1
	cpu.SetFlag(FLAG_Z, r == 0)
	cpu.SetFlag(FLAG_N, true)
	cpu.SetFlag(FLAG_H, v&0xf == 0)
	return r
}

func (cpu *CPU) jumpRelative() {
	offset := int8(cpu.Fetch8())
	cpu.PC = uint16(int32(cpu.PC) + int32(offset))
}

func (cpu *CPU) jumpRelativeIf(cond bool) int {
	if cond {
		cpu.jumpRelative()
		return 12
	}
	cpu.Fetch8()
	return 8
}

func (cpu *CPU) jumpAbsoluteIf(cond bool) int {
	addr := cpu.Fetch16()
	if cond {
		cpu.PC = addr
		return 16
	}
	return 12
}

func (cpu *CPU) returnIf(cond bool) int {
	if cond {
		cpu.PC = cpu.Pop16()
		return 20
	}
	return 8
}
