package element

import (
	"io"
	"strings"

	"github.com/vango-dev/htmlattrs/pkg/attrs"
)

// APIVersion is the version of the element API.
const APIVersion = 2.0

// Line end styles accepted by SetLineEnd.
const (
	LineEndWin  = "win"
	LineEndUnix = "unix"
	LineEndMac  = "mac"
)

// Renderer is implemented by elements that produce markup.
type Renderer interface {
	ToHTML() string
}

// Common holds the attributes and formatting state of an element.
type Common struct {
	*attrs.Store

	tabOffset int
	tab       string
	lineEnd   string
	comment   string
}

// NewCommon creates the element base with the given attributes and indent offset.
func NewCommon(in attrs.Input, tabOffset int, opts ...attrs.Option) *Common {
	return &Common{
		Store:     attrs.New(in, opts...),
		tabOffset: tabOffset,
		tab:       "\t",
		lineEnd:   "\n",
	}
}

// Attributes returns the serialized attribute string, ready to follow a tag name.
func (c *Common) Attributes() string {
	return c.Store.String()
}

// SetLineEnd sets the line end to "win", "unix", "mac" or a custom string.
func (c *Common) SetLineEnd(style string) {
	switch style {
	case LineEndWin:
		c.lineEnd = "\r\n"
	case LineEndUnix:
		c.lineEnd = "\n"
	case LineEndMac:
		c.lineEnd = "\r"
	default:
		c.lineEnd = style
	}
}

// LineEnd returns the line end string.
func (c *Common) LineEnd() string {
	return c.lineEnd
}

// SetTabOffset sets the indent offset in tabs.
func (c *Common) SetTabOffset(offset int) {
	c.tabOffset = offset
}

// TabOffset returns the indent offset in tabs.
func (c *Common) TabOffset() int {
	return c.tabOffset
}

// SetTab sets the string used for one level of indentation.
func (c *Common) SetTab(tab string) {
	c.tab = tab
}

// Tab returns the string used for one level of indentation.
func (c *Common) Tab() string {
	return c.tab
}

// Tabs returns the indentation for the whole element.
func (c *Common) Tabs() string {
	if c.tabOffset <= 0 {
		return ""
	}
	return strings.Repeat(c.tab, c.tabOffset)
}

// SetComment sets the comment written before the element.
func (c *Common) SetComment(comment string) {
	c.comment = comment
}

// Comment returns the element comment.
func (c *Common) Comment() string {
	return c.comment
}

// Display writes the markup of r to w.
func Display(w io.Writer, r Renderer) error {
	_, err := io.WriteString(w, r.ToHTML())
	return err
}
