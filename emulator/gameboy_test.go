package emulator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Builds a machine with `program` placed at the entry point. Everything
// else in the ROM is 0x00 (NOP), including the interrupt vectors
func newTestGameBoy(program ...byte) *GameBoy {
	rom := make([]byte, 0x8000)
	copy(rom[0x0100:], program)
	return NewGameBoy(&Cartridge{Data: rom})
}

const (
	opNOP  = 0x00
	opINCA = 0x3c
	opHALT = 0x76
	opRETI = 0xd9
	opDI   = 0xf3
	opEI   = 0xfb
)

func TestHaltIdleStepCosts4(t *testing.T) {
	gb := newTestGameBoy(opHALT)

	require.Equal(t, 4, gb.Step()) // the halt instruction itself
	require.True(t, gb.Cpu.Halted)

	// nothing pending: the machine stays asleep, each step burns one
	// idle unit and the timer keeps running
	require.Equal(t, 4, gb.Step())
	require.True(t, gb.Cpu.Halted)
	require.Equal(t, uint16(8), gb.Timer.Counter)
}

func TestHaltWakeWithoutMasterEnable(t *testing.T) {
	gb := newTestGameBoy(opHALT, opNOP)
	gb.Step()
	require.True(t, gb.Cpu.Halted)

	gb.Regs.Ie = 0x04
	gb.RequestInterrupt(INTERRUPT_TIMER)

	// requested and enabled, master enable off: resume within 4 cycles,
	// no vector dispatch, the request bit stays set
	require.Equal(t, 4, gb.Step())
	require.False(t, gb.Cpu.Halted)
	require.Equal(t, uint16(0x0101), gb.Cpu.PC)
	require.Equal(t, byte(0x04), gb.Regs.If)
}

func TestHaltWakeWithMasterEnableDispatches(t *testing.T) {
	gb := newTestGameBoy(opEI, opNOP, opHALT)
	gb.Step() // EI
	gb.Step() // NOP, master enable commits after this retires
	gb.Step() // HALT
	require.True(t, gb.Cpu.Halted)
	require.True(t, gb.Irq.MasterEnable)

	gb.Regs.Ie = 0x04
	gb.RequestInterrupt(INTERRUPT_TIMER)

	// 4 cycles wake plus 20 cycles dispatch
	require.Equal(t, 24, gb.Step())
	require.False(t, gb.Cpu.Halted)
	require.Equal(t, uint16(0x0050), gb.Cpu.PC)
	require.False(t, gb.Irq.MasterEnable)
	// return address points past the halt instruction
	require.Equal(t, uint16(0xfffc), gb.Cpu.SP)
	require.Equal(t, uint16(0x0103), gb.Inter.Load16(gb.Cpu.SP))
	// dispatch never clears the request bit
	require.Equal(t, byte(0x04), gb.Regs.If)
}

func TestDispatchAfterInstructionReports20(t *testing.T) {
	gb := newTestGameBoy(opNOP)
	gb.Irq.MasterEnable = true
	gb.Regs.Ie = 0x10
	gb.RequestInterrupt(INTERRUPT_JOYPAD)

	require.Equal(t, 20, gb.Step())
	require.Equal(t, uint16(0x0060), gb.Cpu.PC)
	require.Equal(t, uint16(0x0101), gb.Inter.Load16(gb.Cpu.SP))

	// the timer was advanced with the instruction cost before dispatch,
	// not with the dispatch cost
	require.Equal(t, uint16(4), gb.Timer.Counter)
}

func TestDelayedEnableSequencing(t *testing.T) {
	gb := newTestGameBoy(opEI, opNOP, opNOP)

	gb.Step() // EI
	require.False(t, gb.Irq.MasterEnable, "enable must not commit in the EI step")
	require.True(t, gb.Irq.EnablePending)

	gb.Step() // the following instruction retires, then the enable commits
	require.True(t, gb.Irq.MasterEnable)
	require.False(t, gb.Irq.EnablePending)
}

func TestDelayedEnableCancelledByImmediateDisable(t *testing.T) {
	gb := newTestGameBoy(opEI, opDI, opNOP)

	gb.Step() // EI
	gb.Step() // DI retires with the old enable state and drops the pending enable
	require.False(t, gb.Irq.MasterEnable)
	require.False(t, gb.Irq.EnablePending)

	gb.Step()
	require.False(t, gb.Irq.MasterEnable)
}

func TestImmediateEnableOnReturn(t *testing.T) {
	// RETI at the entry point: returns to whatever garbage address is on
	// the stack, but the master enable is on in the same step
	gb := newTestGameBoy(opRETI)
	gb.Cpu.SP = 0xfffc
	gb.Inter.Store16(gb.Cpu.SP, 0x0200)

	gb.Step()
	require.True(t, gb.Irq.MasterEnable)
	require.Equal(t, uint16(0x0200), gb.Cpu.PC)
}

func TestHaltBugDoubleExecutesFollowingByte(t *testing.T) {
	gb := newTestGameBoy(opHALT, opINCA)

	// halt with master enable off and nothing pending arms the latch
	gb.Step()
	require.True(t, gb.Cpu.HaltBug)

	gb.Regs.Ie = 0x04
	gb.RequestInterrupt(INTERRUPT_TIMER)
	gb.Step() // wake, no dispatch
	require.False(t, gb.Cpu.Halted)

	a := gb.Cpu.A
	gb.Step() // INC A executes, but PC does not advance
	require.Equal(t, a+1, gb.Cpu.A)
	require.Equal(t, uint16(0x0101), gb.Cpu.PC)

	gb.Step() // INC A executes a second time
	require.Equal(t, a+2, gb.Cpu.A)
	require.Equal(t, uint16(0x0102), gb.Cpu.PC)
}

func TestHaltBugNotArmedWhenPending(t *testing.T) {
	gb := newTestGameBoy(opHALT, opINCA)
	gb.Regs.Ie = 0x04
	gb.RequestInterrupt(INTERRUPT_TIMER)

	gb.Step() // HALT with a pending request: ordinary wake path, no latch
	require.False(t, gb.Cpu.HaltBug)
	require.True(t, gb.Cpu.Halted)

	gb.Step() // wake
	a := gb.Cpu.A
	gb.Step()
	require.Equal(t, a+1, gb.Cpu.A)
	require.Equal(t, uint16(0x0102), gb.Cpu.PC)
}

func TestUnclearedRequestRedispatches(t *testing.T) {
	// a handler that never writes the request mask re-triggers as soon
	// as the master enable comes back, faithfully to hardware
	gb := newTestGameBoy(opNOP, opNOP)
	gb.Irq.MasterEnable = true
	gb.Regs.Ie = 0x04
	gb.RequestInterrupt(INTERRUPT_TIMER)

	require.Equal(t, 20, gb.Step())
	require.Equal(t, uint16(0x0050), gb.Cpu.PC)

	gb.Irq.RequestImmediateEnable()
	require.Equal(t, 20, gb.Step())
	require.Equal(t, uint16(0x0050), gb.Cpu.PC)
	require.Equal(t, uint16(0xfffa), gb.Cpu.SP)
}

func TestTimerOverflowFoldsIntoRequestMask(t *testing.T) {
	gb := newTestGameBoy(opNOP, opNOP, opNOP, opNOP)
	gb.Regs.Tac = 0x05 // enabled, rate 16
	gb.Regs.Tima = 0xff
	gb.Regs.If = 0x11 // bits set by other sources this step must survive

	for i := 0; i < 4; i++ { // 4 NOPs, 16 cycles
		gb.Step()
	}
	require.Equal(t, byte(0x15), gb.Regs.If)
}

func TestPriorityAcrossSteps(t *testing.T) {
	// two requests pending at once: the lower bit dispatches first, the
	// other stays pending for a later evaluation
	gb := newTestGameBoy(opNOP, opNOP)
	gb.Irq.MasterEnable = true
	gb.Regs.Ie = 0x1f
	gb.RequestInterrupt(INTERRUPT_TIMER)
	gb.RequestInterrupt(INTERRUPT_JOYPAD)

	gb.Step()
	require.Equal(t, uint16(0x0050), gb.Cpu.PC)
	require.Equal(t, byte(0x14), gb.Regs.If)

	// handler clears its own bit and re-enables: the joypad request is
	// still there and dispatches next
	gb.Regs.If &^= 0x04
	gb.Irq.RequestImmediateEnable()
	gb.Step()
	require.Equal(t, uint16(0x0060), gb.Cpu.PC)
}

func TestResetRestoresPowerOnState(t *testing.T) {
	gb := newTestGameBoy(opEI, opNOP)
	gb.Step()
	gb.Step()
	gb.Regs.If = 0x1f
	gb.Timer.Tick(500)

	gb.Reset()
	require.False(t, gb.Irq.MasterEnable)
	require.Equal(t, byte(0), gb.Regs.If)
	require.Equal(t, uint16(0), gb.Timer.Counter)
	require.Equal(t, uint16(0x0100), gb.Cpu.PC)
}
