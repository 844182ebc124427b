package emulator

// Flag bits in the F register
const (
	FLAG_Z byte = 0x80 // Zero
	FLAG_N byte = 0x40 // Subtract
	FLAG_H byte = 0x20 // Half carry
	FLAG_C byte = 0x10 // Carry
)

// CPU state. Execution of a single instruction is Execute() in
// instructions.go; stepping, timer ticking and interrupt dispatch are
// orchestrated by GameBoy.Step
type CPU struct {
	A, F    byte          // Accumulator and flags
	B, C    byte          // BC pair
	D, E    byte          // DE pair
	H, L    byte          // HL pair
	PC      uint16        // Program counter
	SP      uint16        // Stack pointer
	Halted  bool          // True while the CPU sleeps waiting for an interrupt
	HaltBug bool          // Armed halt double-fetch latch
	Inter   *Interconnect // Memory interface
	Irq     *IrqState     // Interrupt controller, driven by DI/EI/RETI
}

// Creates a new CPU in the post-boot-ROM state
func NewCPU(inter *Interconnect, irq *IrqState) *CPU {
	cpu := &CPU{Inter: inter, Irq: irq}
	cpu.Reset()
	return cpu
}

// Resets the CPU to the documented DMG post-boot values
func (cpu *CPU) Reset() {
	cpu.A, cpu.F = 0x01, 0xb0
	cpu.B, cpu.C = 0x00, 0x13
	cpu.D, cpu.E = 0x00, 0xd8
	cpu.H, cpu.L = 0x01, 0x4d
	cpu.PC = 0x0100 // execution starts after the boot ROM
	cpu.SP = 0xfffe
	cpu.Halted = false
	cpu.HaltBug = false
}

func (cpu *CPU) BC() uint16 { return uint16(cpu.B)<<8 | uint16(cpu.C) }
func (cpu *CPU) DE() uint16 { return uint16(cpu.D)<<8 | uint16(cpu.E) }
func (cpu *CPU) HL() uint16 { return uint16(cpu.H)<<8 | uint16(cpu.L) }
func (cpu *CPU) AF() uint16 { return uint16(cpu.A)<<8 | uint16(cpu.F&0xf0) }

func (cpu *CPU) SetBC(v uint16) { cpu.B, cpu.C = byte(v>>8), byte(v) }
func (cpu *CPU) SetDE(v uint16) { cpu.D, cpu.E = byte(v>>8), byte(v) }
func (cpu *CPU) SetHL(v uint16) { cpu.H, cpu.L = byte(v>>8), byte(v) }
func (cpu *CPU) SetAF(v uint16) { cpu.A, cpu.F = byte(v>>8), byte(v)&0xf0 }

// Returns the flag `mask` as a bool
func (cpu *CPU) Flag(mask byte) bool {
	return cpu.F&mask != 0
}

// Sets or clears the flag `mask`
func (cpu *CPU) SetFlag(mask byte, v bool) {
	if v {
		cpu.F |= mask
	} else {
		cpu.F &^= mask
	}
}

// Fetches the byte at PC and increments PC. While the halt double-fetch
// latch is armed the increment is suppressed once, so the byte after the
// halt instruction gets executed twice
func (cpu *CPU) Fetch8() byte {
	v := cpu.Inter.Load8(cpu.PC)
	if cpu.HaltBug {
		cpu.HaltBug = false
	} else {
		cpu.PC++
	}
	return v
}

// Fetches a 16 bit little endian value at PC
func (cpu *CPU) Fetch16() uint16 {
	lo := uint16(cpu.Fetch8())
	hi := uint16(cpu.Fetch8())
	return hi<<8 | lo
}

// Decrements SP and writes `v` there. This is also the stack interface
// interrupt dispatch pushes the return address through
func (cpu *CPU) PushByte(v byte) {
	cpu.SP--
	cpu.Inter.Store8(cpu.SP, v)
}

// Pushes a 16 bit value, high byte first
func (cpu *CPU) Push16(v uint16) {
	cpu.PushByte(byte(v >> 8))
	cpu.PushByte(byte(v))
}

// Pops a 16 bit value
func (cpu *CPU) Pop16() uint16 {
	lo := uint16(cpu.Inter.Load8(cpu.SP))
	cpu.SP++
	hi := uint16(cpu.Inter.Load8(cpu.SP))
	cpu.SP++
	return hi<<8 | lo
}
