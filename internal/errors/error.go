package errors

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// Category groups error codes by the part of htmlattrs that reports them.
type Category string

const (
	CategoryCharset Category = "charset"
	CategoryConfig  Category = "config"
	CategoryCLI     Category = "cli"
	CategoryService Category = "service"
)

// sourceLines is how many lines of htmlattrs.json are shown up to and
// including the offending one.
const sourceLines = 3

// Location is a position in a file such as htmlattrs.json. Column counts
// runes, starting at 1.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// String returns file:line:column.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// SourceLine is one numbered line quoted from the file at Location.
type SourceLine struct {
	Number int
	Text   string
}

// AttrError is a coded error. Parsing attributes never produces one; they
// report bad charset names, bad configuration, bad CLI usage and bad
// service requests.
type AttrError struct {
	Code     string
	Category Category
	Message  string
	Detail   string

	// Location and Source are set for configuration file errors.
	Location *Location
	Source   []SourceLine

	Suggestion string
	DocURL     string
	Wrapped    error
}

// Error implements the error interface.
func (e *AttrError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}

// Unwrap returns the wrapped error.
func (e *AttrError) Unwrap() error {
	return e.Wrapped
}

// WithOffset points the error at data[offset-1], the last byte encoding/json
// consumed before failing, and quotes the lines leading up to it. Offsets
// outside data are ignored.
func (e *AttrError) WithOffset(file string, data []byte, offset int64) *AttrError {
	if offset <= 0 || offset > int64(len(data)) {
		return e
	}
	pos := int(offset - 1)

	lineStart := bytes.LastIndexByte(data[:pos], '\n') + 1
	lineNo := bytes.Count(data[:lineStart], []byte{'\n'}) + 1
	e.Location = &Location{
		File:   file,
		Line:   lineNo,
		Column: utf8.RuneCount(data[lineStart:pos]) + 1,
	}

	lines := bytes.Split(data, []byte{'\n'})
	first := max(lineNo-sourceLines+1, 1)
	e.Source = e.Source[:0]
	for n := first; n <= lineNo; n++ {
		e.Source = append(e.Source, SourceLine{
			Number: n,
			Text:   string(bytes.TrimRight(lines[n-1], "\r")),
		})
	}
	return e
}

// WithDetail sets the explanation shown under the message.
func (e *AttrError) WithDetail(d string) *AttrError {
	e.Detail = d
	return e
}

// WithSuggestion sets the hint shown to the user.
func (e *AttrError) WithSuggestion(s string) *AttrError {
	e.Suggestion = s
	return e
}

// Wrap records the underlying cause.
func (e *AttrError) Wrap(err error) *AttrError {
	e.Wrapped = err
	return e
}

// New returns an error for a registered code. Unregistered codes produce a
// generic message so callers never get nil.
func New(code string) *AttrError {
	t, ok := registry[code]
	if !ok {
		return &AttrError{Code: code, Message: "Unknown error"}
	}
	return &AttrError{
		Code:     code,
		Category: t.Category,
		Message:  t.Message,
		Detail:   t.Detail,
		DocURL:   docBase + code,
	}
}

// FromError returns err itself when it already is an *AttrError and wraps
// it in a new error with code otherwise.
func FromError(err error, code string) *AttrError {
	if err == nil {
		return nil
	}
	if ae, ok := err.(*AttrError); ok {
		return ae
	}
	return New(code).Wrap(err).WithDetail(err.Error())
}
