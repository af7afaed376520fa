package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is stamped by the build (-ldflags "-X main.version=...").
var version = ""

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the scribe version",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved := version
			if resolved == "" {
				if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
					resolved = info.Main.Version
				}
			}
			if resolved == "" {
				resolved = "unknown"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "scribe %s\n", resolved)
			return nil
		},
	}
}
