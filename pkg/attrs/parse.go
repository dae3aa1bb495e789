package attrs

import "strings"

// Parse normalizes in into an ordered attribute list. Names are lowercased;
// on a name collision the last value wins and the first position is kept.
// Parse never fails: malformed fragments of a Raw string are skipped and a
// nil Input yields an empty result.
func Parse(in Input) Attrs {
	return parse(in, nil)
}

// parse is Parse with a callback receiving each skipped Raw fragment.
func parse(in Input, skipped func(string)) Attrs {
	out := Attrs{}

	switch v := in.(type) {
	case Raw:
		scanRaw(string(v), &out, skipped)
	case Map:
		for _, k := range v.sortedKeys() {
			out.put(lower(k), v[k])
		}
	case List:
		for _, name := range v {
			name = lower(name)
			out.put(name, name)
		}
	case Attrs:
		for _, at := range v {
			if at.Name == "" {
				name := lower(at.Value)
				out.put(name, name)
				continue
			}
			out.put(lower(at.Name), at.Value)
		}
	}

	return out
}

// scanRaw tokenizes a markup-style attribute string:
//
//	name  = [A-Za-z_:\x80-\xff] [A-Za-z0-9_:.\-\x80-\xff]*
//	attr  = name [ws] [ "=" [ws] value ]
//	value = '"' [^"]* '"' | "'" [^']* "'" | [^ws]*
//
// Bytes that cannot start a name are skipped.
func scanRaw(s string, out *Attrs, skipped func(string)) {
	junk := -1
	flush := func(end int) {
		if junk < 0 {
			return
		}
		if frag := strings.Trim(s[junk:end], " \n\t\r"); frag != "" && skipped != nil {
			skipped(frag)
		}
		junk = -1
	}

	i := 0
	for i < len(s) {
		if !isNameStart(s[i]) {
			if junk < 0 {
				junk = i
			}
			i++
			continue
		}
		flush(i)

		start := i
		i++
		for i < len(s) && isNameChar(s[i]) {
			i++
		}
		name := lower(s[start:i])

		j := skipSpace(s, i)
		if j >= len(s) || s[j] != '=' {
			// Boolean attribute; the trailing whitespace belongs to it.
			out.put(name, name)
			i = j
			continue
		}

		j = skipSpace(s, j+1)
		value, end := scanValue(s, j)
		out.put(name, unquote(value))
		i = end
	}
	flush(len(s))
}

// scanValue returns the raw value token starting at i and the index just past it.
func scanValue(s string, i int) (string, int) {
	if i < len(s) && (s[i] == '"' || s[i] == '\'') {
		if k := strings.IndexByte(s[i+1:], s[i]); k >= 0 {
			end := i + 1 + k + 1
			return s[i:end], end
		}
	}
	end := i
	for end < len(s) && !isSpace(s[end]) {
		end++
	}
	return s[i:end], end
}

// unquote strips the first and last byte of a value that starts with a
// quote and trims an unquoted one. An unterminated quote still loses its
// last byte.
func unquote(v string) string {
	if v != "" && (v[0] == '"' || v[0] == '\'') {
		if len(v) < 2 {
			return ""
		}
		return v[1 : len(v)-1]
	}
	return strings.Trim(v, " \t\n\r\x00\x0b")
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}

func isNameStart(b byte) bool {
	return b >= 0x80 || b == '_' || b == ':' ||
		('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func isNameChar(b byte) bool {
	return isNameStart(b) || b == '.' || b == '-' || ('0' <= b && b <= '9')
}

// lower folds ASCII letters only; bytes >= 0x80 pass through unchanged.
func lower(s string) string {
	for i := 0; i < len(s); i++ {
		if 'A' <= s[i] && s[i] <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if 'A' <= b[j] && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
