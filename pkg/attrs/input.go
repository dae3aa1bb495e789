package attrs

import "sort"

// Input is an attribute specification accepted by Parse, New and Update.
// It is implemented by Raw, Map, List and Attrs; nil means no attributes.
type Input interface {
	isInput()
}

// Raw is a markup-style attribute string such as `class="foo" disabled`.
type Raw string

// Map holds named attributes. Entries are applied in sorted key order so the
// result does not depend on map iteration.
type Map map[string]string

// List holds positional entries. Each value becomes a boolean attribute whose
// name and value are the lowercased entry.
type List []string

// Attr is a single attribute. An empty Name marks a positional entry whose
// Value is used as both name and value.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Bool returns a positional entry for the boolean attribute name.
func Bool(name string) Attr {
	return Attr{Value: name}
}

// Attrs is an ordered list of attributes. It is both an Input and the
// normalized form returned by Parse.
type Attrs []Attr

func (Raw) isInput()   {}
func (Map) isInput()   {}
func (List) isInput()  {}
func (Attrs) isInput() {}

// Get returns the value of the first entry named name. name is compared
// exactly; Attrs returned by Parse are already lowercased.
func (a Attrs) Get(name string) (string, bool) {
	if i := a.index(name); i >= 0 {
		return a[i].Value, true
	}
	return "", false
}

// Map converts the attributes to a map. Later entries win.
func (a Attrs) Map() map[string]string {
	m := make(map[string]string, len(a))
	for _, at := range a {
		m[at.Name] = at.Value
	}
	return m
}

func (a Attrs) index(name string) int {
	for i := range a {
		if a[i].Name == name {
			return i
		}
	}
	return -1
}

// put sets name to value, keeping the position of an existing entry.
func (a *Attrs) put(name, value string) {
	if i := a.index(name); i >= 0 {
		(*a)[i].Value = value
		return
	}
	*a = append(*a, Attr{Name: name, Value: value})
}

// del removes name, preserving the order of the remaining entries.
func (a *Attrs) del(name string) bool {
	i := a.index(name)
	if i < 0 {
		return false
	}
	*a = append((*a)[:i], (*a)[i+1:]...)
	return true
}

func (m Map) sortedKeys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
