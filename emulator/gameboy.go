package emulator

// Fixed step costs of the halt state machine
const (
	HALT_IDLE_CYCLES = 4 // One idle unit while sleeping with nothing pending
	WAKE_CYCLES      = 4 // Leaving the halt state
)

// CPU cycles in one video frame
const CYCLES_PER_FRAME = CYCLES_PER_LINE * LINES_PER_FRAME

// The whole machine. Owns every component and drives them in the order
// the hardware requires, one step at a time
type GameBoy struct {
	Regs   *Registers
	Timer  *Timer
	Irq    *IrqState
	Ram    *RAM
	Cart   *Cartridge
	Serial *Serial
	Pad    *Gamepad
	Screen *Screen
	Inter  *Interconnect
	Cpu    *CPU
	Dbg    *Debugger // Optional, attached by the front end
}

// Attaches a debugger to the machine. Breakpoints fire before an
// instruction executes, watchpoints on every bus access
func (gb *GameBoy) AttachDebugger(dbg *Debugger) {
	gb.Dbg = dbg
	gb.Inter.Dbg = dbg
}

// Creates a new machine with `cart` inserted, in the post-boot power-on
// state
func NewGameBoy(cart *Cartridge) *GameBoy {
	regs := NewRegisters()
	irq := NewIrqState(regs)
	timer := NewTimer(regs)
	ram := NewRAM()
	serial := NewSerial(irq)
	pad := NewGamepad(irq)
	screen := NewScreen(irq, ram)
	inter := NewInterconnect(cart, ram, regs, timer, serial, pad, screen)

	return &GameBoy{
		Regs:   regs,
		Timer:  timer,
		Irq:    irq,
		Ram:    ram,
		Cart:   cart,
		Serial: serial,
		Pad:    pad,
		Screen: screen,
		Inter:  inter,
		Cpu:    NewCPU(inter, irq),
	}
}

// Executes one step of emulated time and returns its cycle cost.
//
// The order is fixed: decide sleep-wake from IF & IE alone (the master
// enable does not matter for waking), execute or idle, advance the timer
// and the other cycle-driven peripherals with the consumed cycles, fold a
// timer overflow into the request mask, commit a delayed enable armed two
// steps ago, then evaluate dispatch. A dispatch replaces the step's
// reported cost (20, or 24 when it follows a wake) but the peripherals
// have already been ticked with the pre-dispatch cost
func (gb *GameBoy) Step() int {
	wake := false
	var cycles int

	// a delayed enable armed by the instruction executed this step must
	// not commit before the next one retires, so only a flag that was
	// already armed when the step began may resolve at its end
	delayArmed := gb.Irq.EnablePending

	if gb.Cpu.Halted {
		if !gb.Irq.Active() {
			// still asleep
			gb.tick(HALT_IDLE_CYCLES)
			return HALT_IDLE_CYCLES
		}
		gb.Cpu.Halted = false
		wake = true
		cycles = WAKE_CYCLES
	} else {
		if gb.Dbg != nil {
			gb.Dbg.ChangedPC(gb.Cpu.PC)
		}
		cycles = gb.Cpu.Execute()
	}

	gb.tick(cycles)
	if delayArmed {
		gb.Irq.ResolveDelayedEnable()
	}

	if vector, ok := gb.Irq.PendingVector(); ok {
		cost := gb.Irq.Dispatch(gb.Cpu.PC, gb.Cpu.PushByte)
		gb.Cpu.PC = vector
		gb.Cpu.Halted = false
		if wake {
			return WAKE_CYCLES + cost
		}
		return cost
	}
	return cycles
}

// Steps the machine for one frame worth of cycles
func (gb *GameBoy) StepFrame() {
	elapsed := 0
	for elapsed < CYCLES_PER_FRAME {
		elapsed += gb.Step()
	}
}

// ORs a single request bit into the interrupt request mask. This is the
// entry point for any external hardware source
func (gb *GameBoy) RequestInterrupt(interrupt Interrupt) {
	gb.Irq.SetHigh(interrupt)
}

// Advances the cycle-driven peripherals by `cycles`. A timer overflow is
// ORed into the request mask, never a full overwrite, so bits set by
// other sources in the same step survive
func (gb *GameBoy) tick(cycles int) {
	if gb.Timer.Tick(cycles) {
		gb.Irq.SetHigh(INTERRUPT_TIMER)
	}
	gb.Serial.Tick(cycles)
	gb.Screen.Tick(cycles)
}

// Resets the machine to its power-on state. The cartridge stays inserted
func (gb *GameBoy) Reset() {
	gb.Regs.Reset()
	gb.Timer.Reset()
	gb.Irq.Reset()
	gb.Cpu.Reset()
}
