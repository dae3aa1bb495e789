package element

import (
	"strings"

	"github.com/vango-dev/htmlattrs/pkg/attrs"
)

// voidElements cannot have children and have no closing tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoid reports whether tag is a void element.
func IsVoid(tag string) bool {
	return voidElements[strings.ToLower(tag)]
}

// Tag is a single element with optional text content.
type Tag struct {
	*Common

	name string
	text string
}

// NewTag creates a tag named name with the given attributes.
func NewTag(name string, in attrs.Input, opts ...attrs.Option) *Tag {
	return &Tag{
		Common: NewCommon(in, 0, opts...),
		name:   strings.ToLower(name),
	}
}

// Name returns the tag name.
func (t *Tag) Name() string {
	return t.name
}

// SetText sets the text content. It is escaped with the store's charset
// when rendered; & < > become entities, quotes stay literal. Void elements
// ignore it.
func (t *Tag) SetText(text string) {
	t.text = text
}

// Text returns the text content.
func (t *Tag) Text() string {
	return t.text
}

// ToHTML renders the tag on one indented line, preceded by the comment
// on its own line when set.
func (t *Tag) ToHTML() string {
	var b strings.Builder
	tabs := t.Tabs()

	if t.comment != "" {
		b.WriteString(tabs)
		b.WriteString("<!-- ")
		b.WriteString(t.comment)
		b.WriteString(" -->")
		b.WriteString(t.lineEnd)
	}

	b.WriteString(tabs)
	b.WriteByte('<')
	b.WriteString(t.name)
	b.WriteString(t.Attributes())
	b.WriteByte('>')

	if !IsVoid(t.name) {
		b.WriteString(t.Charset().EscapeText(t.text))
		b.WriteString("</")
		b.WriteString(t.name)
		b.WriteByte('>')
	}

	return b.String()
}
