package emulator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistersMaskControlWrites(t *testing.T) {
	regs := NewRegisters()
	regs.Write(ADDR_TAC, 0xff)
	require.Equal(t, byte(0x07), regs.Read(ADDR_TAC))
}

func TestRegistersPreserveMaskHighBits(t *testing.T) {
	// unused bits of both masks keep whatever was written; consumers
	// apply the 0x1f source mask themselves
	regs := NewRegisters()
	regs.Write(ADDR_IF, 0xe3)
	regs.Write(ADDR_IE, 0xa5)
	require.Equal(t, byte(0xe3), regs.Read(ADDR_IF))
	require.Equal(t, byte(0xa5), regs.Read(ADDR_IE))
}

func TestRegistersDirectWriteOverwrites(t *testing.T) {
	// software writes to the request mask replace the whole byte, unlike
	// hardware sources which may only OR single bits in
	regs := NewRegisters()
	regs.If = 0x1f
	regs.Write(ADDR_IF, 0x02)
	require.Equal(t, byte(0x02), regs.If)
}

func TestRegistersReset(t *testing.T) {
	regs := NewRegisters()
	regs.Write(ADDR_IE, 0x1f)
	regs.Write(ADDR_TIMA, 0x42)
	regs.Reset()
	require.Equal(t, byte(0), regs.Read(ADDR_IE))
	require.Equal(t, byte(0), regs.Read(ADDR_TIMA))
}

func TestRegistersPanicOnUnmappedAddress(t *testing.T) {
	regs := NewRegisters()
	require.Panics(t, func() { regs.Read(0xff00) })
	require.Panics(t, func() { regs.Write(0xff04, 0) }) // DIV belongs to the timer
}
