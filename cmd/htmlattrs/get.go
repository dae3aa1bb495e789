package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/htmlattrs/internal/errors"
	"github.com/vango-dev/htmlattrs/pkg/attrs"
)

func getCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <name> [attributes]",
		Short: "Print the value of one attribute",
		Long: `Print the raw (unescaped) value of an attribute.

The name is matched case-insensitively. Exits with an error when the
attribute is not present.

Examples:
  htmlattrs get class 'class="card wide" id=main'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.readInput(args[1:])
			if err != nil {
				return err
			}
			value, ok := attrs.New(attrs.Raw(input), attrs.WithLogger(a.logger)).Get(args[0])
			if !ok {
				return errors.New("E131").WithDetail(fmt.Sprintf("No attribute named %q", args[0]))
			}
			_, err = fmt.Fprintln(a.stdout, value)
			return err
		},
	}
}
