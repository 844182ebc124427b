package emulator

// Memory mapped register addresses. These are fixed by the hardware and
// ROMs rely on the exact values
const (
	ADDR_DIV  uint16 = 0xff04 // Divider register
	ADDR_TIMA uint16 = 0xff05 // Timer counter
	ADDR_TMA  uint16 = 0xff06 // Timer modulo (reload value)
	ADDR_TAC  uint16 = 0xff07 // Timer control
	ADDR_IF   uint16 = 0xff0f // Interrupt request mask
	ADDR_IE   uint16 = 0xffff // Interrupt enable mask
)

// TAC only implements its low 3 bits (enable + 2 bit frequency select)
const TAC_MASK byte = 0x07

// Holds the registers that are plain storage: the two interrupt masks and
// the timer registers. DIV is not stored here since it's derived from the
// timer's internal counter (see Timer).
//
// Unused high bits of IF and IE are preserved as written and read back
// unchanged; everything that consumes the masks applies the 0x1f source
// mask itself.
type Registers struct {
	If   byte // Interrupt request mask (0xff0f), bits 0-4 meaningful
	Ie   byte // Interrupt enable mask (0xffff), bits 0-4 meaningful
	Tima byte // Timer counter (0xff05)
	Tma  byte // Timer reload value (0xff06)
	Tac  byte // Timer control (0xff07), low 3 bits only
}

// Creates a new register bank with the power-on values (all zero)
func NewRegisters() *Registers {
	return &Registers{}
}

// Returns the stored value of the register at `addr`. Panics if the
// address is not one of the bank's registers
func (regs *Registers) Read(addr uint16) byte {
	switch addr {
	case ADDR_TIMA:
		return regs.Tima
	case ADDR_TMA:
		return regs.Tma
	case ADDR_TAC:
		return regs.Tac
	case ADDR_IF:
		return regs.If
	case ADDR_IE:
		return regs.Ie
	}
	panicFmt("registers: unhandled read at address 0x%04x", addr)
	return 0
}

// Stores `val` into the register at `addr`, masking to the bits the
// register actually implements. No side effects beyond storage
func (regs *Registers) Write(addr uint16, val byte) {
	switch addr {
	case ADDR_TIMA:
		regs.Tima = val
	case ADDR_TMA:
		regs.Tma = val
	case ADDR_TAC:
		regs.Tac = val & TAC_MASK
	case ADDR_IF:
		regs.If = val
	case ADDR_IE:
		regs.Ie = val
	default:
		panicFmt("registers: unhandled write at address 0x%04x", addr)
	}
}

// Resets every register to its power-on value
func (regs *Registers) Reset() {
	*regs = Registers{}
}
