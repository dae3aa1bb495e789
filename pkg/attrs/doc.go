// Package attrs implements the attribute set of a markup element.
//
// A Store holds an ordered mapping from lowercased attribute names to values.
// It is built from an Input, which is one of:
//
//	attrs.Raw(`class="card" disabled`)            // markup-style string
//	attrs.Map{"Class": "card"}                     // named entries
//	attrs.List{"checked"}                          // boolean shorthand
//	attrs.Attrs{{Name: "id", Value: "x"}, attrs.Bool("checked")}
//	nil                                            // nothing
//
// Parsing is best-effort. Fragments that do not look like attributes are
// skipped and never reported as errors:
//
//	s := attrs.New(attrs.Raw(`=foo ==bar class="ok"`))
//	s.Get("class") // "ok", true
//
// Names are lowercased on the way in. Values are stored verbatim and only
// escaped when the store is serialized:
//
//	s := attrs.New(nil)
//	s.Set("Title", `a "quoted" & <tag>`)
//	s.String() // ` title="a &quot;quoted&quot; &amp; &lt;tag&gt;"`
//
// A Store is owned by a single element and is not safe for concurrent
// mutation.
package attrs
