package emulator

// Represents an interrupt source (a bit index in the IF/IE masks)
type Interrupt uint8

const (
	INTERRUPT_VBLANK Interrupt = 0 // Display entered vertical blanking
	INTERRUPT_STAT   Interrupt = 1 // Display status condition
	INTERRUPT_TIMER  Interrupt = 2 // Timer counter overflow
	INTERRUPT_SERIAL Interrupt = 3 // Serial transfer complete
	INTERRUPT_JOYPAD Interrupt = 4 // Input line edge
)

// Handler entry addresses, indexed by interrupt bit. Priority is strictly
// bit index order, lowest index first
var InterruptVectors = [5]uint16{
	0x0040, // VBlank
	0x0048, // LCD STAT
	0x0050, // Timer
	0x0058, // Serial
	0x0060, // Joypad
}

// Only bits 0-4 of the masks correspond to interrupt sources
const INTERRUPT_SOURCE_MASK byte = 0x1f

// Base cycle cost of an interrupt dispatch
const DISPATCH_CYCLES = 20

// State of the interrupt controller: the two memory mapped masks (through
// the register bank) plus the two control bits that are not addressable,
// the master enable and the delayed-enable pending flag
type IrqState struct {
	Regs          *Registers // Register bank holding IF and IE
	MasterEnable  bool       // Gates dispatch, not request accumulation
	EnablePending bool       // Set by the delayed-enable instruction, committed one instruction later
}

// Returns a new interrupt controller attached to `regs`. The master enable
// is false at power-on
func NewIrqState(regs *Registers) *IrqState {
	return &IrqState{Regs: regs}
}

// Returns the requested-and-enabled sources, ignoring the master enable.
// This is what the halt wake-up check looks at
func (irq *IrqState) Pending() byte {
	return irq.Regs.If & irq.Regs.Ie & INTERRUPT_SOURCE_MASK
}

// Returns true if any interrupt is requested and enabled
func (irq *IrqState) Active() bool {
	return irq.Pending() != 0
}

// ORs the request bit for `interrupt` into IF without disturbing the other
// bits. This is the only way hardware sources may touch the request mask
func (irq *IrqState) SetHigh(interrupt Interrupt) {
	irq.Regs.If |= 1 << interrupt
}

// Returns the vector of the highest priority interrupt that is requested,
// enabled and gated in by the master enable, or false if nothing should
// dispatch. Pure function, clears no state
func (irq *IrqState) PendingVector() (uint16, bool) {
	if !irq.MasterEnable {
		return 0, false
	}
	pending := irq.Pending()
	if pending == 0 {
		return 0, false
	}
	for bit := uint(0); bit < 5; bit++ {
		if pending&(1<<bit) != 0 {
			return InterruptVectors[bit], true
		}
	}
	// pending is masked to 5 bits, one of them must be set
	panic("irq: unreachable")
}

// Performs an interrupt dispatch: clears the master enable and pushes the
// return address through `push` (high byte first, each push decrements the
// stack pointer before writing). The caller installs the vector as the new
// program counter. Returns the base cycle cost.
//
// Note that the request bit stays set. Hardware never clears IF bits on
// dispatch, the handler has to write 0xff0f itself; a handler that doesn't
// re-triggers forever once the master enable is restored
func (irq *IrqState) Dispatch(pc uint16, push func(byte)) int {
	irq.MasterEnable = false
	push(byte(pc >> 8))
	push(byte(pc))
	return DISPATCH_CYCLES
}

// Sets the master enable immediately, dropping any delayed enable still in
// flight. This is the RETI behavior
func (irq *IrqState) RequestImmediateEnable() {
	irq.MasterEnable = true
	irq.EnablePending = false
}

// Clears the master enable immediately (DI)
func (irq *IrqState) RequestImmediateDisable() {
	irq.MasterEnable = false
	irq.EnablePending = false
}

// Arms the one-instruction delayed enable (EI). The master enable is not
// touched until the next instruction has retired
func (irq *IrqState) RequestDelayedEnable() {
	irq.EnablePending = true
}

// Commits an armed delayed enable. The scheduler calls this exactly once
// per step, after the instruction following the delayed-enable request has
// fully retired
func (irq *IrqState) ResolveDelayedEnable() {
	if irq.EnablePending {
		irq.MasterEnable = true
		irq.EnablePending = false
	}
}

// Resets the controller to its power-on state
func (irq *IrqState) Reset() {
	irq.MasterEnable = false
	irq.EnablePending = false
}
