package emulator

// Serial register addresses
const (
	ADDR_SB uint16 = 0xff01 // Transfer data
	ADDR_SC uint16 = 0xff02 // Transfer control
)

// A serial transfer shifts 8 bits at 8192Hz, 512 cycles total
const SERIAL_TRANSFER_CYCLES = 512

// Serial port with no link partner attached. A transfer started on the
// internal clock completes after the usual 512 cycles, shifts in 0xff and
// raises the serial interrupt; external clock transfers never complete
// since there is nobody driving the clock
type Serial struct {
	Irq       *IrqState // Raises INTERRUPT_SERIAL on completion
	Sb        byte      // Transfer data register
	Sc        byte      // Transfer control register
	remaining int       // Cycles left in the active transfer, 0 when idle
}

// Returns a new serial port attached to `irq`
func NewSerial(irq *IrqState) *Serial {
	return &Serial{Irq: irq}
}

// Advances the serial port by `cycles`
func (serial *Serial) Tick(cycles int) {
	if serial.remaining == 0 {
		return
	}
	serial.remaining -= cycles
	if serial.remaining <= 0 {
		serial.remaining = 0
		serial.Sb = 0xff // nothing on the other end of the link
		serial.Sc &^= 0x80
		serial.Irq.SetHigh(INTERRUPT_SERIAL)
	}
}

func (serial *Serial) ReadRegister(addr uint16) byte {
	switch addr {
	case ADDR_SB:
		return serial.Sb
	case ADDR_SC:
		return serial.Sc
	}
	panicFmt("serial: unhandled read at address 0x%04x", addr)
	return 0
}

func (serial *Serial) WriteRegister(addr uint16, val byte) {
	switch addr {
	case ADDR_SB:
		serial.Sb = val
	case ADDR_SC:
		serial.Sc = val
		// transfer start with the internal clock selected
		if val&0x80 != 0 && val&0x01 != 0 {
			serial.remaining = SERIAL_TRANSFER_CYCLES
		}
	default:
		panicFmt("serial: unhandled write at address 0x%04x", addr)
	}
}
