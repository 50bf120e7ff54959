package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/averas/assembunny/solve"
)

func newSolveCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve DAY FILE",
		Short: "Solve one of the machine puzzles (day 12, 23, or 25)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}

			inf, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer inf.Close()

			ans, err := solve.Solve(day, inf)
			if err != nil {
				return err
			}

			fmt.Printf("Part One: %v\n", ans.PartOne)
			fmt.Printf("Part Two: %v\n", ans.PartTwo)

			return nil
		},
	}

	return cmd
}
