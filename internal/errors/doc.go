// Package errors provides the coded errors reported by htmlattrs.
//
// Attribute parsing never fails, so nothing in pkg/attrs returns these.
// They cover the conditions that are genuinely exceptional:
//   - charset (E10x): an unknown or unsupported charset name
//   - config (E12x): a missing or malformed htmlattrs.json
//   - cli (E13x): bad command-line usage
//   - service (E14x): a bad request to the HTTP service
//
// Errors are built from the registry and refined with builders:
//
//	err := errors.New("E101").
//	    WithDetail(`"latin-9x" is not a known charset`).
//	    WithSuggestion("Use an IANA name such as ISO-8859-1 or UTF-8")
//
// The CLI prints them with Format, the service logs FormatCompact and
// returns the JSON encoding to clients. Configuration errors carry the
// offending htmlattrs.json lines:
//
//	error[E120]: Invalid configuration
//	 --> htmlattrs.json:2:14
//	  |
//	1 | {
//	2 |   "charset": ,
//	  |              ^
//	  = Failed to parse htmlattrs.json: invalid character ',' looking for beginning of value
package errors
