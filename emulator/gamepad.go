package emulator

// Joypad register address
const ADDR_P1 uint16 = 0xff00

// Joypad buttons. The first four sit on the direction select line, the
// rest on the action select line
type Button uint8

const (
	BUTTON_RIGHT  Button = 0
	BUTTON_LEFT   Button = 1
	BUTTON_UP     Button = 2
	BUTTON_DOWN   Button = 3
	BUTTON_A      Button = 4
	BUTTON_B      Button = 5
	BUTTON_SELECT Button = 6
	BUTTON_START  Button = 7
)

// Joypad state. P1 bits 4 and 5 select which half of the button matrix is
// visible in the low nibble; all button lines read 0 when pressed. A
// press edge raises the joypad interrupt
type Gamepad struct {
	Irq     *IrqState // Raises INTERRUPT_JOYPAD on a press edge
	Select  byte      // Last written select bits (bits 4-5)
	Pressed [8]bool   // Current button states
}

// Returns a new gamepad attached to `irq`
func NewGamepad(irq *IrqState) *Gamepad {
	return &Gamepad{Irq: irq, Select: 0x30}
}

// Records a button state change coming from the host. A released-to-
// pressed edge ORs the joypad bit into the request mask
func (pad *Gamepad) SetButton(button Button, pressed bool) {
	if pressed && !pad.Pressed[button] {
		pad.Irq.SetHigh(INTERRUPT_JOYPAD)
	}
	pad.Pressed[button] = pressed
}

// Returns the P1 register value for the currently selected matrix lines
func (pad *Gamepad) Read() byte {
	v := 0xc0 | pad.Select | 0x0f
	if pad.Select&0x10 == 0 { // direction keys selected
		for i := 0; i < 4; i++ {
			if pad.Pressed[i] {
				v &^= 1 << uint(i)
			}
		}
	}
	if pad.Select&0x20 == 0 { // action keys selected
		for i := 0; i < 4; i++ {
			if pad.Pressed[i+4] {
				v &^= 1 << uint(i)
			}
		}
	}
	return v
}

// Stores the select bits, the rest of P1 is read-only
func (pad *Gamepad) Write(val byte) {
	pad.Select = val & 0x30
}
