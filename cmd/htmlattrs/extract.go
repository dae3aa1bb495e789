package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/vango-dev/htmlattrs/internal/errors"
	"github.com/vango-dev/htmlattrs/pkg/attrs"
)

func extractCmd(a *app) *cobra.Command {
	var only string

	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Print the attributes of every start tag in an HTML document",
		Long: `Tokenize an HTML document and print each start tag with its
normalized, re-escaped attributes, one tag per line.

Examples:
  htmlattrs extract index.html
  curl -s https://example.com | htmlattrs extract --tag a`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := a.stdin
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.New("E132").Wrap(err).WithDetail(err.Error())
				}
				defer f.Close()
				r = f
			}
			return runExtract(a, r, only)
		},
	}

	cmd.Flags().StringVar(&only, "tag", "", "Only print tags with this name")

	return cmd
}

func runExtract(a *app, r io.Reader, only string) error {
	only = strings.ToLower(only)
	z := html.NewTokenizer(r)

	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return errors.New("E132").Wrap(err)
			}
			return nil
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if only != "" && tok.Data != only {
				continue
			}
			in := make(attrs.Attrs, 0, len(tok.Attr))
			for _, at := range tok.Attr {
				in = append(in, attrs.Attr{Name: at.Key, Value: at.Val})
			}
			store := attrs.New(in, attrs.WithCharset(a.charset))
			fmt.Fprintf(a.stdout, "%s%s\n", tok.Data, store.String())
		}
	}
}
