package attrs

import (
	"bytes"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/vango-dev/htmlattrs/pkg/charset"
)

func TestNew(t *testing.T) {
	s := New(Raw(`Class="card" DISABLED`))
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	want := Attrs{{"class", "card"}, {"disabled", "disabled"}}
	if got := s.All(); !reflect.DeepEqual(got, want) {
		t.Errorf("All() = %#v, want %#v", got, want)
	}

	if empty := New(nil); empty.Len() != 0 || empty.String() != "" {
		t.Errorf("New(nil) = %d attrs, %q", empty.Len(), empty.String())
	}
}

func TestStore_GetIsCaseInsensitive(t *testing.T) {
	s := New(Map{"Data-ID": "42"})
	s.Set("TITLE", "Hello")

	for _, name := range []string{"data-id", "DATA-ID", "Data-Id"} {
		if v, ok := s.Get(name); !ok || v != "42" {
			t.Errorf("Get(%q) = %q, %v; want 42, true", name, v, ok)
		}
	}
	if v, ok := s.Get("title"); !ok || v != "Hello" {
		t.Errorf("Get(title) = %q, %v; want Hello, true", v, ok)
	}
	if v, ok := s.Get("missing"); ok || v != "" {
		t.Errorf("Get(missing) = %q, %v; want empty, false", v, ok)
	}
}

func TestStore_SetBool(t *testing.T) {
	s := New(nil)
	s.SetBool("Checked")

	if v, _ := s.Get("checked"); v != "checked" {
		t.Errorf("Get(checked) = %q, want checked", v)
	}
	if got := s.String(); got != ` checked="checked"` {
		t.Errorf("String() = %q", got)
	}
}

func TestStore_SetKeepsValueVerbatim(t *testing.T) {
	s := New(nil)
	s.Set("title", "&amp; Mixed Case")

	if v, _ := s.Get("title"); v != "&amp; Mixed Case" {
		t.Errorf("Get(title) = %q", v)
	}
}

func TestStore_Update(t *testing.T) {
	s := New(Attrs{{"a", "1"}, {"b", "2"}})

	if !s.Update(Map{"b": "3", "c": "4"}) {
		t.Fatal("Update(Map) = false, want true")
	}
	want := Attrs{{"a", "1"}, {"b", "3"}, {"c", "4"}}
	if got := s.All(); !reflect.DeepEqual(got, want) {
		t.Errorf("All() = %#v, want %#v", got, want)
	}

	if !s.Update(Raw(`D=5 hidden`)) {
		t.Fatal("Update(Raw) = false, want true")
	}
	if v, _ := s.Get("d"); v != "5" {
		t.Errorf("Get(d) = %q, want 5", v)
	}
	if !s.Has("hidden") {
		t.Error("Has(hidden) = false after Update")
	}
}

func TestStore_UpdateNil(t *testing.T) {
	s := New(Map{"a": "1"})
	if s.Update(nil) {
		t.Error("Update(nil) = true, want false")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d after Update(nil), want 1", s.Len())
	}
}

func TestStore_Replace(t *testing.T) {
	s := New(Map{"a": "1", "b": "2"})
	s.Replace(Raw("c=3"))

	want := Attrs{{"c", "3"}}
	if got := s.All(); !reflect.DeepEqual(got, want) {
		t.Errorf("All() = %#v, want %#v", got, want)
	}
}

func TestStore_Remove(t *testing.T) {
	s := New(Map{"a": "1"})

	s.Remove("missing")
	if s.Len() != 1 {
		t.Fatalf("Remove(missing) changed store: %d", s.Len())
	}

	s.Remove("A")
	if s.Len() != 0 {
		t.Errorf("Len() = %d after Remove(A), want 0", s.Len())
	}
	if s.String() != "" {
		t.Errorf("String() = %q, want empty", s.String())
	}
}

func TestStore_RemoveKeepsOrder(t *testing.T) {
	s := New(Raw("a=1 b=2 c=3"))
	s.Remove("b")

	if got, want := s.String(), ` a="1" c="3"`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestStore_Has(t *testing.T) {
	s := New(Raw(`alt="" Disabled`))

	tests := []struct {
		name string
		want bool
	}{
		{"alt", true},
		{"ALT", true},
		{"disabled", true},
		{"title", false},
	}
	for _, tt := range tests {
		if got := s.Has(tt.name); got != tt.want {
			t.Errorf("Has(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestStore_String(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *Store)
		want  string
	}{
		{
			name:  "empty",
			setup: func(s *Store) {},
			want:  "",
		},
		{
			name: "escaping",
			setup: func(s *Store) {
				s.Set("title", `a "quoted" & <tag>`)
			},
			want: ` title="a &quot;quoted&quot; &amp; &lt;tag&gt;"`,
		},
		{
			name: "insertion order",
			setup: func(s *Store) {
				s.Set("z", "1")
				s.Set("a", "2")
				s.Set("Z", "3")
			},
			want: ` z="3" a="2"`,
		},
		{
			name: "single quotes untouched",
			setup: func(s *Store) {
				s.Set("onclick", "alert('x')")
			},
			want: ` onclick="alert('x')"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(nil, WithCharset(charset.UTF8))
			tt.setup(s)
			if got := s.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStore_Charset(t *testing.T) {
	s := New(nil)
	if s.Charset() != charset.Default() {
		t.Errorf("Charset() = %v, want process default", s.Charset())
	}

	pinned := New(nil, WithCharset(charset.UTF8))
	if pinned.Charset() != charset.UTF8 {
		t.Errorf("Charset() = %v, want UTF-8", pinned.Charset())
	}

	pinned.Set("v", "\xff")
	if got := pinned.String(); got != ` v="�"` {
		t.Errorf("UTF-8 String() = %q", got)
	}
	if got := pinned.Format(charset.Latin1); got != " v=\"\xff\"" {
		t.Errorf("Format(Latin1) = %q", got)
	}
}

func TestStore_WriteTo(t *testing.T) {
	s := New(Raw(`id=x`))
	var buf bytes.Buffer
	n, err := s.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if buf.String() != ` id="x"` || n != int64(buf.Len()) {
		t.Errorf("WriteTo() = %d, %q", n, buf.String())
	}
}

func TestStore_CloneAndViews(t *testing.T) {
	s := New(Map{"a": "1"})
	c := s.Clone()
	c.Set("b", "2")

	if s.Has("b") {
		t.Error("Clone shares attributes with original")
	}

	all := s.All()
	all[0].Value = "changed"
	if v, _ := s.Get("a"); v != "1" {
		t.Error("All() returned a slice aliasing the store")
	}

	if m := c.Map(); !reflect.DeepEqual(m, map[string]string{"a": "1", "b": "2"}) {
		t.Errorf("Map() = %v", m)
	}
}

func TestStore_OnSkipAndLogger(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var skipped []string
	s := New(Raw(`== class="ok"`),
		WithLogger(logger),
		OnSkip(func(frag string) { skipped = append(skipped, frag) }),
	)
	s.Update(Raw(`42 id=x`))

	if !reflect.DeepEqual(skipped, []string{"==", "42"}) {
		t.Errorf("skipped = %q", skipped)
	}
	if !strings.Contains(logs.String(), "skipped attribute fragment") {
		t.Errorf("expected debug log, got %q", logs.String())
	}
}

// The serialized form must read back identically through a real HTML tokenizer.
func TestStore_StringTokenizesBack(t *testing.T) {
	s := New(Raw(`class="card wide" disabled data-json='{"a":1}'`), WithCharset(charset.UTF8))
	s.Set("title", `Tom & "Jerry" <3`)
	s.Set("data-note", "naïve 世界")

	z := html.NewTokenizer(strings.NewReader("<div" + s.String() + ">"))
	if z.Next() != html.StartTagToken {
		t.Fatalf("expected start tag, got %v", z.Err())
	}
	tok := z.Token()

	got := make(map[string]string, len(tok.Attr))
	for _, a := range tok.Attr {
		got[a.Key] = a.Val
	}
	if want := s.Map(); !reflect.DeepEqual(got, want) {
		t.Errorf("tokenized attrs = %v, want %v", got, want)
	}
}

func BenchmarkStore_String(b *testing.B) {
	s := New(Raw(`class="card shadow" id=main disabled title="Tom & Jerry"`), WithCharset(charset.UTF8))
	for i := 0; i < b.N; i++ {
		_ = s.String()
	}
}
