package emulator

// Display constants
const (
	SCREEN_WIDTH      = 160
	SCREEN_HEIGHT     = 144
	CYCLES_PER_LINE   = 456 // One scanline worth of CPU cycles
	LINES_PER_FRAME   = 154 // 144 visible lines plus 10 of vertical blank
	VBLANK_START_LINE = 144
)

// LCD register addresses handled by the screen
const (
	ADDR_LCDC uint16 = 0xff40 // LCD control
	ADDR_SCY  uint16 = 0xff42 // Background scroll Y
	ADDR_SCX  uint16 = 0xff43 // Background scroll X
	ADDR_LY   uint16 = 0xff44 // Current scanline, read only
	ADDR_BGP  uint16 = 0xff47 // Background palette
)

// A frame pacer standing in for the PPU. It counts scanlines at the
// hardware cadence and raises the VBlank interrupt at line 144, and once
// per frame renders the background map out of VRAM into an RGBA buffer
// for the front end. Mode timing, STAT interrupts and sprites are not
// modeled
type Screen struct {
	Irq         *IrqState // Raises INTERRUPT_VBLANK at the start of vertical blank
	Ram         *RAM      // VRAM source for the background render
	Lcdc        byte      // LCD control register
	Scy, Scx    byte      // Background scroll registers
	Bgp         byte      // Background palette register
	Line        int       // Current scanline (LY)
	lineCycles  int       // Cycles into the current scanline
	Framebuffer []byte    // RGBA, SCREEN_WIDTH x SCREEN_HEIGHT
}

// DMG green-ish shades for the 4 palette colors
var screenShades = [4][3]byte{
	{0xe0, 0xf8, 0xd0},
	{0x88, 0xc0, 0x70},
	{0x34, 0x68, 0x56},
	{0x08, 0x18, 0x20},
}

// Returns a new screen attached to `irq` reading tiles from `ram`
func NewScreen(irq *IrqState, ram *RAM) *Screen {
	screen := &Screen{
		Irq:         irq,
		Ram:         ram,
		Lcdc:        0x91, // post-boot value, display on
		Bgp:         0xfc,
		Framebuffer: make([]byte, SCREEN_WIDTH*SCREEN_HEIGHT*4),
	}
	// blank to the lightest shade until the first frame renders
	for i := 0; i < len(screen.Framebuffer); i += 4 {
		screen.Framebuffer[i+0] = screenShades[0][0]
		screen.Framebuffer[i+1] = screenShades[0][1]
		screen.Framebuffer[i+2] = screenShades[0][2]
		screen.Framebuffer[i+3] = 0xff
	}
	return screen
}

// Advances the scanline counter by `cycles` and raises VBlank when the
// visible area ends
func (screen *Screen) Tick(cycles int) {
	screen.lineCycles += cycles
	for screen.lineCycles >= CYCLES_PER_LINE {
		screen.lineCycles -= CYCLES_PER_LINE
		screen.Line++
		if screen.Line == VBLANK_START_LINE {
			screen.Irq.SetHigh(INTERRUPT_VBLANK)
			screen.renderBackground()
		} else if screen.Line >= LINES_PER_FRAME {
			screen.Line = 0
		}
	}
}

func (screen *Screen) ReadRegister(addr uint16) byte {
	switch addr {
	case ADDR_LCDC:
		return screen.Lcdc
	case ADDR_SCY:
		return screen.Scy
	case ADDR_SCX:
		return screen.Scx
	case ADDR_LY:
		return byte(screen.Line)
	case ADDR_BGP:
		return screen.Bgp
	}
	// unmodeled LCD register
	return 0xff
}

func (screen *Screen) WriteRegister(addr uint16, val byte) {
	switch addr {
	case ADDR_LCDC:
		screen.Lcdc = val
	case ADDR_SCY:
		screen.Scy = val
	case ADDR_SCX:
		screen.Scx = val
	case ADDR_BGP:
		screen.Bgp = val
	}
	// writes to unmodeled LCD registers are dropped
}

// Renders the background tile map into the framebuffer. Good enough to
// see what a ROM is doing, not a real PPU
func (screen *Screen) renderBackground() {
	mapBase := 0x1800 // tile map 0 at 0x9800
	if bitN(screen.Lcdc, 3) {
		mapBase = 0x1c00
	}
	unsignedTiles := bitN(screen.Lcdc, 4)

	for y := 0; y < SCREEN_HEIGHT; y++ {
		bgY := (y + int(screen.Scy)) & 0xff
		for x := 0; x < SCREEN_WIDTH; x++ {
			bgX := (x + int(screen.Scx)) & 0xff

			tileIdx := screen.Ram.Vram[mapBase+(bgY/8)*32+bgX/8]
			var tileAddr int
			if unsignedTiles {
				tileAddr = int(tileIdx) * 16
			} else {
				tileAddr = 0x1000 + int(int8(tileIdx))*16
			}

			lo := screen.Ram.Vram[tileAddr+(bgY%8)*2]
			hi := screen.Ram.Vram[tileAddr+(bgY%8)*2+1]
			bit := uint(7 - bgX%8)
			color := (oneIfTrue(bitN(hi, bit)) << 1) | oneIfTrue(bitN(lo, bit))
			shade := screenShades[(screen.Bgp>>(color*2))&3]

			offset := (y*SCREEN_WIDTH + x) * 4
			screen.Framebuffer[offset+0] = shade[0]
			screen.Framebuffer[offset+1] = shade[1]
			screen.Framebuffer[offset+2] = shade[2]
			screen.Framebuffer[offset+3] = 0xff
		}
	}
}
