package emulator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestIrq() *IrqState {
	return NewIrqState(NewRegisters())
}

func TestPendingVectorGatedByMasterEnable(t *testing.T) {
	irq := newTestIrq()
	irq.Regs.If = 0x04
	irq.Regs.Ie = 0x1f

	_, ok := irq.PendingVector()
	require.False(t, ok)

	irq.MasterEnable = true
	vector, ok := irq.PendingVector()
	require.True(t, ok)
	require.Equal(t, uint16(0x0050), vector)
}

func TestPendingVectorPriorityOrder(t *testing.T) {
	irq := newTestIrq()
	irq.MasterEnable = true
	irq.Regs.Ie = 0x1f
	irq.Regs.If = 0x14 // timer and joypad both requested

	vector, ok := irq.PendingVector()
	require.True(t, ok)
	require.Equal(t, uint16(0x0050), vector, "bit 2 must win over bit 4")

	// evaluation is pure: both request bits survive
	require.Equal(t, byte(0x14), irq.Regs.If)
	require.True(t, irq.MasterEnable)
}

func TestPendingVectorIgnoresUnusedHighBits(t *testing.T) {
	irq := newTestIrq()
	irq.MasterEnable = true
	irq.Regs.If = 0xe0
	irq.Regs.Ie = 0xff

	_, ok := irq.PendingVector()
	require.False(t, ok)
}

func TestDispatchPushesReturnAddressHighFirst(t *testing.T) {
	irq := newTestIrq()
	irq.MasterEnable = true
	irq.Regs.If = 0x01
	irq.Regs.Ie = 0x01

	var pushed []byte
	cost := irq.Dispatch(0x1234, func(v byte) {
		pushed = append(pushed, v)
	})

	require.Equal(t, DISPATCH_CYCLES, cost)
	require.Equal(t, []byte{0x12, 0x34}, pushed)
	require.False(t, irq.MasterEnable)
	// the request bit is the handler's to clear
	require.Equal(t, byte(0x01), irq.Regs.If)
}

func TestImmediateEnableHasNoLatency(t *testing.T) {
	irq := newTestIrq()
	irq.RequestImmediateEnable()
	require.True(t, irq.MasterEnable)
}

func TestImmediateEnableDropsDelayedEnable(t *testing.T) {
	irq := newTestIrq()
	irq.RequestDelayedEnable()
	irq.RequestImmediateEnable()
	require.True(t, irq.MasterEnable)
	require.False(t, irq.EnablePending)
}

func TestImmediateDisable(t *testing.T) {
	irq := newTestIrq()
	irq.MasterEnable = true
	irq.RequestDelayedEnable()
	irq.RequestImmediateDisable()
	require.False(t, irq.MasterEnable)
	require.False(t, irq.EnablePending)
}

func TestDelayedEnableCommitsOnResolve(t *testing.T) {
	irq := newTestIrq()
	irq.RequestDelayedEnable()
	require.False(t, irq.MasterEnable, "delayed enable must not take effect immediately")

	irq.ResolveDelayedEnable()
	require.True(t, irq.MasterEnable)
	require.False(t, irq.EnablePending)
}

func TestResolveWithoutPendingIsANoop(t *testing.T) {
	irq := newTestIrq()
	irq.ResolveDelayedEnable()
	require.False(t, irq.MasterEnable)
}

func TestSetHighPreservesOtherBits(t *testing.T) {
	irq := newTestIrq()
	irq.Regs.If = 0x1b
	irq.SetHigh(INTERRUPT_TIMER)
	require.Equal(t, byte(0x1f), irq.Regs.If)
}
