package emulator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStackPushOrder(t *testing.T) {
	gb := newTestGameBoy()
	gb.Cpu.SP = 0xfffe

	gb.Cpu.Push16(0xbeef)
	require.Equal(t, uint16(0xfffc), gb.Cpu.SP)
	require.Equal(t, byte(0xbe), gb.Inter.Load8(0xfffd), "high byte pushed first")
	require.Equal(t, byte(0xef), gb.Inter.Load8(0xfffc))
	require.Equal(t, uint16(0xbeef), gb.Cpu.Pop16())
	require.Equal(t, uint16(0xfffe), gb.Cpu.SP)
}

func TestLoadImmediate(t *testing.T) {
	gb := newTestGameBoy(0x3e, 0x42) // LD A, 0x42
	require.Equal(t, 8, gb.Step())
	require.Equal(t, byte(0x42), gb.Cpu.A)
}

func TestLoadThroughHL(t *testing.T) {
	gb := newTestGameBoy(
		0x21, 0x00, 0xc0, // LD HL, 0xc000
		0x36, 0x99, // LD (HL), 0x99
		0x7e, // LD A, (HL)
	)
	gb.Step()
	gb.Step()
	gb.Step()
	require.Equal(t, byte(0x99), gb.Cpu.A)
	require.Equal(t, byte(0x99), gb.Inter.Load8(0xc000))
}

func TestALUFlags(t *testing.T) {
	gb := newTestGameBoy(
		0x3e, 0x0f, // LD A, 0x0f
		0xc6, 0x01, // ADD A, 0x01
		0xd6, 0x10, // SUB 0x10
	)
	gb.Step()
	gb.Step()
	require.Equal(t, byte(0x10), gb.Cpu.A)
	require.True(t, gb.Cpu.Flag(FLAG_H), "half carry out of bit 3")
	require.False(t, gb.Cpu.Flag(FLAG_Z))

	gb.Step()
	require.Equal(t, byte(0x00), gb.Cpu.A)
	require.True(t, gb.Cpu.Flag(FLAG_Z))
	require.True(t, gb.Cpu.Flag(FLAG_N))
}

func TestCompareDoesNotWriteA(t *testing.T) {
	gb := newTestGameBoy(
		0x3e, 0x42, // LD A, 0x42
		0xfe, 0x42, // CP 0x42
	)
	gb.Step()
	gb.Step()
	require.Equal(t, byte(0x42), gb.Cpu.A)
	require.True(t, gb.Cpu.Flag(FLAG_Z))
}

func TestConditionalJumpCycles(t *testing.T) {
	// JR NZ taken costs 12, not taken costs 8
	gb := newTestGameBoy(
		0x3e, 0x01, // LD A, 0x01
		0xd6, 0x00, // SUB 0x00, clears Z
		0x20, 0x02, // JR NZ, +2 (taken)
	)
	gb.Step()
	gb.Step()
	require.Equal(t, 12, gb.Step())
	require.Equal(t, uint16(0x0108), gb.Cpu.PC)

	gb2 := newTestGameBoy(
		0x3e, 0x01, // LD A, 0x01
		0xd6, 0x01, // SUB 0x01, sets Z
		0x20, 0x02, // JR NZ, +2 (not taken)
	)
	gb2.Step()
	gb2.Step()
	require.Equal(t, 8, gb2.Step())
	require.Equal(t, uint16(0x0106), gb2.Cpu.PC)
}

func TestCallPushesReturnAddress(t *testing.T) {
	gb := newTestGameBoy(0xcd, 0x00, 0x02) // CALL 0x0200
	require.Equal(t, 24, gb.Step())
	require.Equal(t, uint16(0x0200), gb.Cpu.PC)
	require.Equal(t, uint16(0xfffc), gb.Cpu.SP)
	require.Equal(t, uint16(0x0103), gb.Inter.Load16(gb.Cpu.SP))
}

func TestUnhandledOpcodePanics(t *testing.T) {
	gb := newTestGameBoy(0xcb) // prefix opcodes are not implemented
	require.Panics(t, func() { gb.Step() })
}
