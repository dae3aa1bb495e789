package charset

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// EscapeAttr escapes s for inclusion in a double-quoted attribute value:
// & " < > become entities, single quotes are left alone. s is interpreted
// in c and the result is encoded in c as well.
func (c *Charset) EscapeAttr(s string) string {
	return c.escape(s, true)
}

// EscapeText escapes s for inclusion in element content. Only & < > are
// replaced; quotes need no escaping outside attribute values.
func (c *Charset) EscapeText(s string) string {
	return c.escape(s, false)
}

func (c *Charset) escape(s string, quotes bool) string {
	if s == "" {
		return ""
	}
	enc := c.Encoding()

	// UTF-8 input needs no decode/encode round trip.
	if enc == unicode.UTF8 {
		if !utf8.ValidString(s) {
			s = strings.ToValidUTF8(s, string(utf8.RuneError))
		}
		return escapeUTF8(s, quotes)
	}

	t := transform.Chain(
		enc.NewDecoder(),
		escaper{quotes: quotes},
		encoding.HTMLEscapeUnsupported(enc.NewEncoder()),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		// Only reachable for encodings that are not ASCII compatible.
		return escapeUTF8(s, quotes)
	}
	return out
}

// escapeUTF8 replaces the special characters of an already UTF-8 string.
// All of them are ASCII, so matching byte-wise is safe.
func escapeUTF8(s string, quotes bool) string {
	special := "&<>"
	if quotes {
		special = `&"<>`
	}
	if !strings.ContainsAny(s, special) {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s) + 16)

	for i := 0; i < len(s); i++ {
		if rep := entity(s[i], quotes); rep != "" {
			buf.WriteString(rep)
			continue
		}
		buf.WriteByte(s[i])
	}

	return buf.String()
}

func entity(b byte, quotes bool) string {
	switch b {
	case '&':
		return "&amp;"
	case '<':
		return "&lt;"
	case '>':
		return "&gt;"
	case '"':
		if quotes {
			return "&quot;"
		}
	}
	return ""
}

// escaper is a transform.Transformer over UTF-8 text that replaces the
// special characters with entities. quotes adds the double quote.
type escaper struct {
	transform.NopResetter
	quotes bool
}

func (e escaper) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		b := src[nSrc]
		rep := entity(b, e.quotes)
		if rep == "" {
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = b
			nDst++
			nSrc++
			continue
		}
		if nDst+len(rep) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], rep)
		nSrc++
	}
	return nDst, nSrc, nil
}
