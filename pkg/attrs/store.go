package attrs

import (
	"io"
	"log/slog"
	"strings"

	"github.com/vango-dev/htmlattrs/pkg/charset"
)

// Store is the attribute set of one element.
type Store struct {
	attrs   Attrs
	charset *charset.Charset
	logger  *slog.Logger
	onSkip  func(fragment string)
}

// Option configures a Store.
type Option func(*Store)

// WithCharset pins the charset used by String and WriteTo. Without it the
// process-wide default is read at serialization time.
func WithCharset(cs *charset.Charset) Option {
	return func(s *Store) {
		s.charset = cs
	}
}

// WithLogger logs skipped Raw fragments at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// OnSkip registers a callback invoked for every skipped Raw fragment.
func OnSkip(fn func(fragment string)) Option {
	return func(s *Store) {
		s.onSkip = fn
	}
}

// New creates a Store holding the attributes parsed from in.
func New(in Input, opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	s.attrs = s.parse(in)
	return s
}

func (s *Store) parse(in Input) Attrs {
	if s.logger == nil && s.onSkip == nil {
		return parse(in, nil)
	}
	return parse(in, func(frag string) {
		if s.logger != nil {
			s.logger.Debug("skipped attribute fragment", "fragment", frag)
		}
		if s.onSkip != nil {
			s.onSkip(frag)
		}
	})
}

// Get returns the value of name (case-insensitive) and whether it is set.
func (s *Store) Get(name string) (string, bool) {
	return s.attrs.Get(lower(name))
}

// Has reports whether name is set, whatever its value.
func (s *Store) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Set stores value under the lowercased name. The value is kept verbatim;
// escaping happens on serialization.
func (s *Store) Set(name, value string) {
	s.attrs.put(lower(name), value)
}

// SetBool sets the boolean attribute name, i.e. name="name".
func (s *Store) SetBool(name string) {
	name = lower(name)
	s.attrs.put(name, name)
}

// Update merges the attributes parsed from in, overwriting existing names
// and keeping the others. It reports false, changing nothing, when in is nil.
func (s *Store) Update(in Input) bool {
	if in == nil {
		return false
	}
	for _, at := range s.parse(in) {
		s.attrs.put(at.Name, at.Value)
	}
	return true
}

// Replace discards all attributes and parses in.
func (s *Store) Replace(in Input) {
	s.attrs = s.parse(in)
}

// Remove deletes name if present.
func (s *Store) Remove(name string) {
	s.attrs.del(lower(name))
}

// Len returns the number of attributes.
func (s *Store) Len() int {
	return len(s.attrs)
}

// All returns a copy of the attributes in order.
func (s *Store) All() Attrs {
	out := make(Attrs, len(s.attrs))
	copy(out, s.attrs)
	return out
}

// Map returns the attributes as a map.
func (s *Store) Map() map[string]string {
	return s.attrs.Map()
}

// Clone returns an independent copy sharing the same options.
func (s *Store) Clone() *Store {
	c := *s
	c.attrs = s.All()
	return &c
}

// Charset returns the charset used for serialization.
func (s *Store) Charset() *charset.Charset {
	if s.charset != nil {
		return s.charset
	}
	return charset.Default()
}

// String serializes the attributes as ` name="value"` pairs with escaped
// values. An empty store yields "".
func (s *Store) String() string {
	return s.Format(s.Charset())
}

// Format serializes the attributes escaping values for cs.
func (s *Store) Format(cs *charset.Charset) string {
	if len(s.attrs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, at := range s.attrs {
		b.WriteByte(' ')
		b.WriteString(at.Name)
		b.WriteString(`="`)
		b.WriteString(cs.EscapeAttr(at.Value))
		b.WriteByte('"')
	}
	return b.String()
}

// WriteTo writes the serialized attributes to w.
func (s *Store) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}
