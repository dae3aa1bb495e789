package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/vango-dev/htmlattrs/pkg/element"
)

func versionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Version needs no configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "htmlattrs %s\n", version)
			fmt.Fprintf(a.stdout, "  commit:      %s\n", commit)
			fmt.Fprintf(a.stdout, "  built:       %s\n", date)
			fmt.Fprintf(a.stdout, "  element api: %.1f\n", element.APIVersion)
			fmt.Fprintf(a.stdout, "  go:          %s\n", runtime.Version())
		},
	}
}
