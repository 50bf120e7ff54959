package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/averas/assembunny/internal"
)

func newStreamCommand(opts *rootOptions) *cobra.Command {
	var overrides []string
	var count int

	cmd := &cobra.Command{
		Use:   "stream FILE",
		Short: "Run an output-producing program and print its first emitted values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := opts.loadRunConfig()
			if err != nil {
				return err
			}
			if count > 0 {
				conf.Count = count
			}

			prog, err := loadProgram(args[0], conf, opts.Verbose)
			if err != nil {
				return err
			}

			regs, err := initialRegisters(conf, overrides)
			if err != nil {
				return err
			}

			for value, err := range internal.IterSeq2Take(prog.Outputs(regs), conf.Count) {
				if err != nil {
					return err
				}
				fmt.Println(value)
			}

			return nil
		},
	}
	cmd.Flags().StringArrayVar(&overrides, "reg", nil, `initial register override, e.g. "a=7"`)
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of outputs to pull")

	return cmd
}
