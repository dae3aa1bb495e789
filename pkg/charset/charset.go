package charset

import (
	"strings"
	"sync"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/vango-dev/htmlattrs/internal/errors"
)

// DefaultName is the charset used when nothing else is configured.
const DefaultName = "ISO-8859-1"

// Charset is a named character encoding used when escaping attribute values.
// A Charset is immutable and safe for concurrent use.
type Charset struct {
	name string
	enc  encoding.Encoding
}

var (
	// Latin1 is ISO-8859-1. Every byte maps to a code point, so arbitrary
	// byte strings survive escaping unchanged apart from the entities.
	Latin1 = &Charset{name: DefaultName, enc: charmap.ISO8859_1}

	// UTF8 is UTF-8. Invalid sequences are replaced with U+FFFD.
	UTF8 = &Charset{name: "UTF-8", enc: unicode.UTF8}
)

// Name returns the canonical name of the charset.
func (c *Charset) Name() string {
	if c == nil {
		return DefaultName
	}
	return c.name
}

// Encoding returns the underlying x/text encoding.
func (c *Charset) Encoding() encoding.Encoding {
	if c == nil {
		return charmap.ISO8859_1
	}
	return c.enc
}

// String implements fmt.Stringer.
func (c *Charset) String() string {
	return c.Name()
}

// Lookup resolves a charset by name. IANA names and aliases are tried first
// (so "ISO-8859-1" is true Latin-1), then the WHATWG labels used by browsers.
// Matching is case-insensitive.
func Lookup(name string) (*Charset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("E103")
	}

	if enc, err := ianaindex.IANA.Encoding(name); err == nil {
		if enc == nil {
			return nil, errors.New("E102").
				WithDetail("No encoder is available for charset " + name).
				WithSuggestion("Use UTF-8 or a single-byte charset such as ISO-8859-1")
		}
		return &Charset{name: ianaName(enc, name), enc: enc}, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, errors.New("E101").
			Wrap(err).
			WithDetail(`"` + name + `" is not a known charset`).
			WithSuggestion("Use an IANA name such as ISO-8859-1, UTF-8 or Shift_JIS")
	}
	label, err := htmlindex.Name(enc)
	if err != nil {
		label = name
	}
	return &Charset{name: ianaName(enc, label), enc: enc}, nil
}

// ianaName prefers the MIME name ("ISO-8859-1") over the registry name
// ("ISO_8859-1:1987"), so WHATWG labels such as "utf8" resolve to the same
// spelling as their IANA names. Encodings IANA does not know keep fallback.
func ianaName(enc encoding.Encoding, fallback string) string {
	if n, err := ianaindex.MIME.Name(enc); err == nil && n != "" {
		return n
	}
	if n, err := ianaindex.IANA.Name(enc); err == nil && n != "" {
		return n
	}
	return fallback
}

// MustLookup is like Lookup but panics on error.
// Intended for package-level variables with constant names.
func MustLookup(name string) *Charset {
	c, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return c
}

var (
	defaultMu sync.RWMutex
	current   = Latin1
)

// Default returns the process-wide charset.
func Default() *Charset {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return current
}

// SetDefault changes the process-wide charset. The current default is kept
// when name cannot be resolved.
func SetDefault(name string) error {
	c, err := Lookup(name)
	if err != nil {
		return err
	}
	defaultMu.Lock()
	current = c
	defaultMu.Unlock()
	return nil
}

// Current returns the name of the process-wide charset. When a new value is
// given it is installed first; with no argument Current is a pure read.
func Current(newValue ...string) (string, error) {
	if len(newValue) > 0 {
		if err := SetDefault(newValue[0]); err != nil {
			return Default().Name(), err
		}
	}
	return Default().Name(), nil
}
