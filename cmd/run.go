package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/bradford-hamilton/octo/internal/audio"
	"github.com/bradford-hamilton/octo/internal/chip8"
	"github.com/bradford-hamilton/octo/internal/pixel"
	"github.com/faiface/pixel/pixelgl"
	"github.com/spf13/cobra"
)

var (
	clockHz   int
	rngSeed   int64
	shiftFlag string
	jumpFlag  string
	dumpFlag  string
)

func init() {
	runCmd.Flags().IntVar(&clockHz, "clock", 300, "instruction rate in Hz")
	runCmd.Flags().Int64Var(&rngSeed, "seed", 0, "seed for the random byte source")
	runCmd.Flags().StringVar(&shiftFlag, "shift", "in-place", "shift behavior: in-place or copy")
	runCmd.Flags().StringVar(&jumpFlag, "jump", "variable", "jump-offset behavior: variable or v0")
	runCmd.Flags().StringVar(&dumpFlag, "dump-load", "static", "register dump/load behavior: static or mutating")
}

// runCmd runs the octo virtual machine until the window closes
var runCmd = &cobra.Command{
	Use:   "run `path/to/rom`",
	Short: "run the octo interpreter",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// pixelgl needs access to the main thread so this pattern is suggested
		pixelgl.Run(func() { runOcto(args[0]) })
	},
}

func runOcto(pathToROM string) {
	rom, err := os.ReadFile(pathToROM)
	if err != nil {
		fmt.Printf("\nerror reading ROM: %v\n", err)
		os.Exit(1)
	}

	config, err := configFromFlags()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	vm := chip8.NewVM(&chip8.Options{
		Seed:   rngSeed,
		Logger: log.New(os.Stderr, "octo: ", 0),
		Config: config,
	})
	if err := vm.LoadROM(rom); err != nil {
		fmt.Printf("\nerror loading ROM: %v\n", err)
		os.Exit(1)
	}

	win, err := pixel.NewWindow()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	bleeper, err := audio.NewBleeper()
	if err != nil {
		fmt.Printf("audio unavailable, running silent: %v\n", err)
	}

	ticker := time.NewTicker(time.Second / time.Duration(clockHz))
	defer ticker.Stop()

	for range ticker.C {
		if win.Closed() {
			fmt.Println("exit signal detected, gracefully shutting down...")
			return
		}

		vm.Tick()

		if vm.DrawFlag() {
			win.DrawGraphics(vm)
		} else {
			win.UpdateInput()
		}
		win.HandleKeyInput(vm.PressKey, vm.ReleaseKey)

		if bleeper != nil {
			bleeper.Update(vm.IsSoundOn())
		}
	}
}

func configFromFlags() (chip8.Config, error) {
	config := chip8.DefaultConfig()

	switch shiftFlag {
	case "in-place":
		config.Shift = chip8.ShiftInPlace
	case "copy":
		config.Shift = chip8.CopyThenShift
	default:
		return config, fmt.Errorf("unknown shift behavior %q", shiftFlag)
	}

	switch jumpFlag {
	case "variable":
		config.Jump = chip8.OffsetVariable
	case "v0":
		config.Jump = chip8.OffsetFromV0
	default:
		return config, fmt.Errorf("unknown jump-offset behavior %q", jumpFlag)
	}

	switch dumpFlag {
	case "static":
		config.DumpLoad = chip8.StaticI
	case "mutating":
		config.DumpLoad = chip8.MutatingI
	default:
		return config, fmt.Errorf("unknown dump/load behavior %q", dumpFlag)
	}

	return config, nil
}
