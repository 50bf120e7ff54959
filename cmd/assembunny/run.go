package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/averas/assembunny/machine"
)

func newRunCommand(opts *rootOptions) *cobra.Command {
	var overrides []string
	var optimize bool

	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Run a program and print the final registers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := opts.loadRunConfig()
			if err != nil {
				return err
			}
			if optimize {
				conf.Optimize = true
			}

			prog, err := loadProgram(args[0], conf, opts.Verbose)
			if err != nil {
				return err
			}

			regs, err := initialRegisters(conf, overrides)
			if err != nil {
				return err
			}

			m := machine.NewMachine(prog, regs)
			m.Verbose = opts.Verbose
			if err := m.Run(); err != nil {
				return err
			}

			fmt.Print(m)
			if opts.Verbose {
				fmt.Print(m.Stats())
			}

			return nil
		},
	}
	cmd.Flags().StringArrayVar(&overrides, "reg", nil, `initial register override, e.g. "a=7"`)
	cmd.Flags().BoolVar(&optimize, "optimize", false, "apply the multiply rewrite before running")

	return cmd
}
