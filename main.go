package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/veikko/godmg/emulator"
)

// Host key bindings for the joypad
var keymap = map[ebiten.Key]emulator.Button{
	ebiten.KeyArrowRight: emulator.BUTTON_RIGHT,
	ebiten.KeyArrowLeft:  emulator.BUTTON_LEFT,
	ebiten.KeyArrowUp:    emulator.BUTTON_UP,
	ebiten.KeyArrowDown:  emulator.BUTTON_DOWN,
	ebiten.KeyZ:          emulator.BUTTON_A,
	ebiten.KeyX:          emulator.BUTTON_B,
	ebiten.KeyBackspace:  emulator.BUTTON_SELECT,
	ebiten.KeyEnter:      emulator.BUTTON_START,
}

type game struct {
	gb *emulator.GameBoy
}

func (g *game) Update() error {
	for key, button := range keymap {
		g.gb.Pad.SetButton(button, ebiten.IsKeyPressed(key))
	}
	g.gb.StepFrame()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.gb.Screen.Framebuffer)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return emulator.SCREEN_WIDTH, emulator.SCREEN_HEIGHT
}

func main() {
	// parse arguments
	headless := flag.Bool("headless", false, "run without a window")
	steps := flag.Int("steps", 1_000_000, "steps to run in headless mode")
	breakAt := flag.Int("break", -1, "address to break at in headless mode")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("usage: godmg [-headless] [-steps n] <rom.gb>")
	}

	// start emulator
	cart := loadCartridge(flag.Arg(0))
	gb := emulator.NewGameBoy(cart)

	if *headless {
		dbg := emulator.NewDebugger()
		if *breakAt >= 0 {
			dbg.AddBreakpoint(uint16(*breakAt))
			gb.AttachDebugger(dbg)
		}
		for i := 0; i < *steps && !dbg.Paused; i++ {
			gb.Step()
		}
		log.Printf("done, halted: %v, pc: 0x%04x", gb.Cpu.Halted, gb.Cpu.PC)
		return
	}

	ebiten.SetWindowSize(emulator.SCREEN_WIDTH*4, emulator.SCREEN_HEIGHT*4)
	ebiten.SetWindowTitle("godmg - " + cart.Header.Title)
	if err := ebiten.RunGame(&game{gb: gb}); err != nil {
		log.Fatal(err)
	}
}

func loadCartridge(path string) *emulator.Cartridge {
	log.Printf("loading rom \"%s\"", path)
	start := time.Now()

	file, err := os.Open(path)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	cart, err := emulator.LoadCartridge(file)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("loaded \"%s\" (%d bytes) in %s", cart.Header.Title, len(cart.Data), time.Since(start))
	return cart
}
