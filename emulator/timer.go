package emulator

// Cycles per TIMA increment for each value of the TAC frequency field
var TimerRateTable = [4]int{1024, 16, 64, 256}

// The timer unit. The divider register is the high byte of a free-running
// 16 bit counter that always advances; TIMA is driven from the same cycle
// stream through an accumulate-and-subtract sub-counter, which produces the
// same overflow timing as edge-detecting the divider bits for every cycle
// chunking the CPU produces
type Timer struct {
	Regs       *Registers // Register bank holding TIMA/TMA/TAC
	Counter    uint16     // Free-running counter, DIV reads the high byte
	SubCounter int        // Cycles accumulated towards the next TIMA increment
}

// Returns a new timer attached to `regs`
func NewTimer(regs *Registers) *Timer {
	return &Timer{Regs: regs}
}

// Returns true if the TAC enable bit is set
func (timer *Timer) Enabled() bool {
	return bitN(timer.Regs.Tac, 2)
}

// Returns the cycles-per-increment rate selected by the TAC frequency field
func (timer *Timer) Rate() int {
	switch timer.Regs.Tac & 3 {
	case 0:
		return TimerRateTable[0]
	case 1:
		return TimerRateTable[1]
	case 2:
		return TimerRateTable[2]
	case 3:
		return TimerRateTable[3]
	}
	// a 2 bit field has 4 values, getting here is a programming defect
	panicFmt("timer: unreachable frequency select %d", timer.Regs.Tac&3)
	return 0
}

// Advances the timer by `cycles`. The free-running counter always moves,
// wrapping silently at 16 bits. While enabled, TIMA increments at the
// selected rate; every wrap from 0xff reloads TMA and counts as one
// overflow. Returns true if at least one overflow happened during this
// call. Large cycle counts may produce several overflows in a single call
// and each one reloads
func (timer *Timer) Tick(cycles int) bool {
	timer.Counter += uint16(cycles)

	if !timer.Enabled() {
		return false
	}

	timer.SubCounter += cycles
	rate := timer.Rate()
	overflow := false

	for timer.SubCounter >= rate {
		timer.SubCounter -= rate
		timer.Regs.Tima++
		if timer.Regs.Tima == 0 {
			timer.Regs.Tima = timer.Regs.Tma
			overflow = true
		}
	}
	return overflow
}

// Reads one of the four timer registers. DIV returns the high byte of the
// internal counter, the others go through the register bank
func (timer *Timer) ReadRegister(addr uint16) byte {
	if addr == ADDR_DIV {
		return byte(timer.Counter >> 8)
	}
	return timer.Regs.Read(addr)
}

// Writes one of the four timer registers. Writing any value to DIV zeroes
// the entire internal counter, including the sub-counter alignment; the
// others are plain stores through the register bank
func (timer *Timer) WriteRegister(addr uint16, val byte) {
	if addr == ADDR_DIV {
		timer.Counter = 0
		timer.SubCounter = 0
		return
	}
	timer.Regs.Write(addr, val)
}

// Resets the timer to its power-on state. Register contents are owned by
// the bank and reset there
func (timer *Timer) Reset() {
	timer.Counter = 0
	timer.SubCounter = 0
}
