package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/htmlattrs/internal/errors"
	"github.com/vango-dev/htmlattrs/pkg/attrs"
	"github.com/vango-dev/htmlattrs/pkg/element"
)

type formatOptions struct {
	set     []string
	bools   []string
	merge   []string
	remove  []string
	tag     string
	text    string
	comment string
}

func formatCmd(a *app) *cobra.Command {
	var opts formatOptions

	cmd := &cobra.Command{
		Use:   "format [attributes]",
		Short: "Edit attributes and print the escaped attribute string",
		Long: `Parse an attribute string, apply edits and print it escaped.

Edits are applied in order: --merge, --set, --bool, then --remove.
With --tag the attributes are rendered inside an element using the
indentation and line end settings from htmlattrs.json.

Examples:
  htmlattrs format 'class=card' --set 'title=Tom & Jerry'
  htmlattrs format 'type=checkbox checked' --remove checked --bool disabled
  htmlattrs format 'href=/' --tag a --text Home --comment nav`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.readInput(args)
			if err != nil {
				return err
			}
			return runFormat(a, input, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.set, "set", nil, "Set an attribute (name=value, repeatable)")
	cmd.Flags().StringArrayVar(&opts.bools, "bool", nil, "Set a boolean attribute (repeatable)")
	cmd.Flags().StringArrayVar(&opts.merge, "merge", nil, "Merge an attribute string (repeatable)")
	cmd.Flags().StringArrayVar(&opts.remove, "remove", nil, "Remove an attribute (repeatable)")
	cmd.Flags().StringVar(&opts.tag, "tag", "", "Render as an element with this tag name")
	cmd.Flags().StringVar(&opts.text, "text", "", "Text content when rendering with --tag")
	cmd.Flags().StringVar(&opts.comment, "comment", "", "Comment written before the element with --tag")

	return cmd
}

func runFormat(a *app, input string, opts formatOptions) error {
	storeOpts := []attrs.Option{attrs.WithLogger(a.logger), attrs.WithCharset(a.charset)}

	var (
		store *attrs.Store
		tag   *element.Tag
	)
	if opts.tag != "" {
		tag = element.NewTag(opts.tag, attrs.Raw(input), storeOpts...)
		tag.SetTab(a.cfg.Element.Tab)
		tag.SetLineEnd(a.cfg.Element.LineEnd)
		tag.SetTabOffset(a.cfg.Element.TabOffset)
		tag.SetComment(opts.comment)
		tag.SetText(opts.text)
		store = tag.Store
	} else {
		store = attrs.New(attrs.Raw(input), storeOpts...)
	}

	for _, m := range opts.merge {
		store.Update(attrs.Raw(m))
	}
	for _, assignment := range opts.set {
		name, value, err := splitAssignment(assignment)
		if err != nil {
			return err
		}
		store.Set(name, value)
	}
	for _, name := range opts.bools {
		store.SetBool(name)
	}
	for _, name := range opts.remove {
		store.Remove(name)
	}

	if tag != nil {
		if err := element.Display(a.stdout, tag); err != nil {
			return err
		}
		_, err := fmt.Fprint(a.stdout, tag.LineEnd())
		return err
	}
	_, err := fmt.Fprintln(a.stdout, store.String())
	return err
}

// splitAssignment splits "name=value". The value is taken verbatim.
func splitAssignment(s string) (string, string, error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", errors.New("E130").
			WithDetail(fmt.Sprintf("%q is not of the form name=value", s)).
			WithSuggestion("Use --bool for attributes without a value")
	}
	return name, value, nil
}
