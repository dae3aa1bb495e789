package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/htmlattrs/pkg/attrs"
)

func parseCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse [attributes]",
		Short: "Print the normalized attributes",
		Long: `Parse an attribute string and print one name=value pair per line.

Names are lowercased, boolean attributes get their own name as value and
malformed fragments are skipped (use --verbose to see them).

Examples:
  htmlattrs parse 'class="card" DISABLED'
  echo 'id=main' | htmlattrs parse --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.readInput(args)
			if err != nil {
				return err
			}
			return runParse(a, input, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the attributes as a JSON array")

	return cmd
}

func runParse(a *app, input string, asJSON bool) error {
	store := attrs.New(attrs.Raw(input), attrs.WithLogger(a.logger))

	if asJSON {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(store.All())
	}

	for _, at := range store.All() {
		fmt.Fprintf(a.stdout, "%s=%s\n", at.Name, at.Value)
	}
	return nil
}
