package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	// Catch panics and show a short error instead of a raw stack trace.
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	root := &cobra.Command{
		Use:           "ucls",
		Short:         "ucode language tooling: static checker and language server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCheckCommand())
	root.AddCommand(newLspCommand())

	if err := root.Execute(); err != nil {
		if err != errCheckFailed {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}
