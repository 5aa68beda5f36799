package cmd

import (
	"fmt"
	"os"

	"github.com/bradford-hamilton/octo/internal/chip8"
	"github.com/spf13/cobra"
)

// disasmCmd prints a pseudo-asm listing of a ROM image
var disasmCmd = &cobra.Command{
	Use:   "disasm `path/to/rom`",
	Short: "print a pseudo-asm listing of a ROM",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rom, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Printf("\nerror reading ROM: %v\n", err)
			os.Exit(1)
		}
		if err := chip8.Disassemble(os.Stdout, rom); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}
