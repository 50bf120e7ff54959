package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

// rootOptions holds the global flags shared by every subcommand.
type rootOptions struct {
	Config  string
	Verbose bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "assembunny",
		Short:         "Run and optimize assembunny programs",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&opts.Config, "config", "", "run configuration file")
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose mode")

	root.AddCommand(newRunCommand(opts))
	root.AddCommand(newStreamCommand(opts))
	root.AddCommand(newSolveCommand(opts))

	return root
}

func main() {
	log.SetFlags(0)

	if err := newRootCommand().Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
