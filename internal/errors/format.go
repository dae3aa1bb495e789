package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiRed   = "\033[31m"
	ansiBlue  = "\033[34m"
	ansiCyan  = "\033[36m"
)

var colorEnabled = true

// SetColor turns ANSI styling in Format on or off.
func SetColor(enabled bool) {
	colorEnabled = enabled
}

func style(codes, text string) string {
	if !colorEnabled || text == "" {
		return text
	}
	return codes + text + ansiReset
}

// Format renders the error for a terminal:
//
//	error[E120]: Invalid configuration
//	 --> htmlattrs.json:2:14
//	  |
//	1 | {
//	2 |   "charset": ,
//	  |              ^
//	  = htmlattrs.json could not be read or is not valid JSON.
//	  = hint: Check that htmlattrs.json is valid JSON
func (e *AttrError) Format() string {
	var b strings.Builder

	b.WriteString(style(ansiBold+ansiRed, "error"))
	if e.Code != "" {
		b.WriteString(style(ansiBold+ansiRed, "["+e.Code+"]"))
	}
	b.WriteString(style(ansiBold, ": "+e.Message))
	b.WriteByte('\n')

	width := 1
	if e.Location != nil {
		width = len(strconv.Itoa(e.Location.Line))
	}
	gutter := strings.Repeat(" ", width)
	bar := style(ansiBlue, "|")

	if e.Location != nil {
		fmt.Fprintf(&b, "%s%s %s\n", gutter, style(ansiBlue, "-->"), e.Location)
		if len(e.Source) > 0 {
			fmt.Fprintf(&b, "%s %s\n", gutter, bar)
			for _, line := range e.Source {
				fmt.Fprintf(&b, "%*d %s %s\n", width, line.Number, bar, line.Text)
			}
			fmt.Fprintf(&b, "%s %s %s%s\n", gutter, bar,
				strings.Repeat(" ", max(e.Location.Column-1, 0)), style(ansiRed, "^"))
		}
	}

	note := func(label, text string) {
		if text == "" {
			return
		}
		fmt.Fprintf(&b, "%s %s %s%s\n", gutter, style(ansiBlue, "="), label, text)
	}
	note("", e.Detail)
	note(style(ansiCyan, "hint: "), e.Suggestion)
	note(style(ansiCyan, "docs: "), e.DocURL)

	return b.String()
}

// FormatCompact renders the error on one line, for log records.
func (e *AttrError) FormatCompact() string {
	var b strings.Builder
	if e.Location != nil {
		b.WriteString(e.Location.String())
		b.WriteString(": ")
	}
	b.WriteString(e.Error())
	if e.Detail != "" {
		b.WriteString(" (")
		b.WriteString(e.Detail)
		b.WriteByte(')')
	}
	return b.String()
}

// MarshalJSON encodes the fields a client can act on. Wrapped causes and
// quoted source lines stay server side.
func (e *AttrError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code       string    `json:"code,omitempty"`
		Category   Category  `json:"category,omitempty"`
		Message    string    `json:"message"`
		Detail     string    `json:"detail,omitempty"`
		Location   *Location `json:"location,omitempty"`
		Suggestion string    `json:"suggestion,omitempty"`
		DocURL     string    `json:"docUrl,omitempty"`
	}{e.Code, e.Category, e.Message, e.Detail, e.Location, e.Suggestion, e.DocURL})
}

// PrintError writes err to stderr.
func PrintError(err error) {
	Fprint(os.Stderr, err)
}

// Fprint writes err to w, using Format for coded errors.
func Fprint(w io.Writer, err error) {
	var ae *AttrError
	if stderrors.As(err, &ae) {
		fmt.Fprint(w, ae.Format())
		return
	}
	fmt.Fprintf(w, "%s: %s\n", style(ansiBold+ansiRed, "error"), err)
}
