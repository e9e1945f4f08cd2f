package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ucodekit/ucls/internal/lsp"
	"github.com/ucodekit/ucls/internal/modules"
)

func newLspCommand() *cobra.Command {
	var logFile string
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol; logging goes to stderr or a file.
			log.SetOutput(os.Stderr)
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return err
				}
				defer f.Close()
				log.SetOutput(f)
			}

			server := lsp.NewServer(os.Stdin, os.Stdout, modules.NewRegistry())
			return server.Start()
		},
	}
	cmd.Flags().StringVar(&logFile, "log", "", "append server logs to this file instead of stderr")
	return cmd
}
