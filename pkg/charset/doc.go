// Package charset resolves character set names and escapes attribute values
// for safe embedding in markup.
//
// Escaping follows the HTML "compat" rules: ampersands, double quotes and
// angle brackets are replaced by entities while single quotes are left alone.
// A value is decoded from the configured charset before it is scanned and
// re-encoded afterwards, so the trail bytes of a multi-byte sequence are never
// mistaken for markup characters.
//
// # Process-wide default
//
// Stores that are not given an explicit Charset use the process-wide default,
// which starts as ISO-8859-1:
//
//	name, _ := charset.Current()          // "ISO-8859-1"
//	name, err := charset.Current("UTF-8") // sets and returns "UTF-8"
//
// The default is guarded by a RW mutex, but it is intended to be configured
// once at process start.
package charset
