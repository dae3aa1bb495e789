package main

import (
	"bytes"
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/htmlattrs/internal/errors"
	"github.com/vango-dev/htmlattrs/pkg/charset"
)

// execute runs the CLI against an isolated config file.
func execute(t *testing.T, config, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() {
		if err := charset.SetDefault(charset.DefaultName); err != nil {
			t.Fatalf("reset charset: %v", err)
		}
	})

	path := filepath.Join(t.TempDir(), "htmlattrs.json")
	if err := os.WriteFile(path, []byte(config), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var stdout, stderr bytes.Buffer
	a := &app{stdin: strings.NewReader(stdin), stdout: &stdout, stderr: &stderr}
	cmd := newRootCmd(a)
	cmd.SetArgs(append([]string{"--config", path}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func errorCode(err error) string {
	var ae *errors.AttrError
	if stderrors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{
			name: "argument",
			args: []string{"parse", `class="card" DISABLED`},
			want: "class=card\ndisabled=disabled\n",
		},
		{
			name:  "stdin",
			args:  []string{"parse"},
			stdin: "ID=main\n",
			want:  "id=main\n",
		},
		{
			name:  "dash reads stdin",
			args:  []string{"parse", "-"},
			stdin: "a=1 b=2",
			want:  "a=1\nb=2\n",
		},
		{
			name: "json",
			args: []string{"parse", "--json", "checked"},
			want: "[\n  {\n    \"name\": \"checked\",\n    \"value\": \"checked\"\n  }\n]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, "{}", tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestFormatCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "escapes set values",
			args: []string{"format", "class=card", "--set", "title=Tom & Jerry"},
			want: ` class="card" title="Tom &amp; Jerry"` + "\n",
		},
		{
			name: "set keeps everything after the first equals sign",
			args: []string{"format", "", "--set", "data-expr=a=b"},
			want: ` data-expr="a=b"` + "\n",
		},
		{
			name: "bool and remove",
			args: []string{"format", "type=checkbox checked", "--remove", "CHECKED", "--bool", "Disabled"},
			want: ` type="checkbox" disabled="disabled"` + "\n",
		},
		{
			name: "merge overwrites",
			args: []string{"format", `class=a id=x`, "--merge", `class="b c" hidden`},
			want: ` class="b c" id="x" hidden="hidden"` + "\n",
		},
		{
			name: "empty input",
			args: []string{"format", ""},
			want: "\n",
		},
		{
			name: "utf-8 charset",
			args: []string{"--charset", "utf-8", "format", "", "--set", "title=café <b>"},
			want: ` title="café &lt;b&gt;"` + "\n",
		},
		{
			name: "tag",
			args: []string{"format", "href=/", "--tag", "a", "--text", "Home & away", "--comment", "nav"},
			want: "<!-- nav -->\n<a href=\"/\">Home &amp; away</a>\n",
		},
		{
			name: "void tag",
			args: []string{"format", "src=x.png", "--tag", "img"},
			want: "<img src=\"x.png\">\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, "{}", "", tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestFormatCommandUsesElementConfig(t *testing.T) {
	config := `{"element": {"tab": "  ", "tabOffset": 2, "lineEnd": "win"}}`

	out, _, err := execute(t, config, "", "format", "id=x", "--tag", "p", "--text", "hi", "--comment", "c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "    <!-- c -->\r\n    <p id=\"x\">hi</p>\r\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestFormatCommandRejectsBadAssignment(t *testing.T) {
	_, _, err := execute(t, "{}", "", "format", "", "--set", "novalue")
	if got := errorCode(err); got != "E130" {
		t.Errorf("error code = %q, want E130 (err: %v)", got, err)
	}
}

func TestSplitAssignment(t *testing.T) {
	tests := []struct {
		in        string
		wantName  string
		wantValue string
		wantErr   bool
	}{
		{in: "a=b", wantName: "a", wantValue: "b"},
		{in: " a =b", wantName: "a", wantValue: "b"},
		{in: "a=", wantName: "a", wantValue: ""},
		{in: "a= b ", wantName: "a", wantValue: " b "},
		{in: "a", wantErr: true},
		{in: "=b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			name, value, err := splitAssignment(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q=%q", name, value)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if name != tt.wantName || value != tt.wantValue {
				t.Errorf("got %q=%q, want %q=%q", name, value, tt.wantName, tt.wantValue)
			}
		})
	}
}

func TestGetCommand(t *testing.T) {
	out, _, err := execute(t, "{}", "", "get", "CLASS", `class="card &amp; wide" id=main`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "card &amp; wide\n" {
		t.Errorf("output = %q", out)
	}

	_, _, err = execute(t, "{}", "", "get", "title", "id=main")
	if got := errorCode(err); got != "E131" {
		t.Errorf("error code = %q, want E131", got)
	}
}

func TestExtractCommand(t *testing.T) {
	doc := `<!doctype html>
<html lang="en">
<body>
  <a HREF="/a?x=1&amp;y=2" class=nav>one</a>
  <input type="checkbox" checked/>
  <a href='/b' title="say &quot;hi&quot;">two</a>
</body>
</html>`

	out, _, err := execute(t, "{}", doc, "extract")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := strings.Join([]string{
		`html lang="en"`,
		`body`,
		`a href="/a?x=1&amp;y=2" class="nav"`,
		`input type="checkbox" checked=""`,
		`a href="/b" title="say &quot;hi&quot;"`,
	}, "\n") + "\n"
	if out != want {
		t.Errorf("output =\n%s\nwant\n%s", out, want)
	}

	out, _, err = execute(t, "{}", doc, "extract", "--tag", "A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Count(out, "\n") != 2 || !strings.HasPrefix(out, "a ") {
		t.Errorf("filtered output = %q", out)
	}
}

func TestExtractCommandMissingFile(t *testing.T) {
	_, _, err := execute(t, "{}", "", "extract", filepath.Join(t.TempDir(), "missing.html"))
	if got := errorCode(err); got != "E132" {
		t.Errorf("error code = %q, want E132", got)
	}
}

func TestInvalidCharset(t *testing.T) {
	_, _, err := execute(t, "{}", "", "--charset", "no-such-charset", "parse", "a")
	if err == nil {
		t.Fatal("expected error for unknown charset")
	}
}

func TestVerboseLogsSkippedFragments(t *testing.T) {
	_, stderr, err := execute(t, "{}", "", "-v", "parse", `123 class=x`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stderr, "skipped attribute fragment") {
		t.Errorf("stderr = %q, want skipped fragment log", stderr)
	}
}

func TestVersionCommand(t *testing.T) {
	var stdout bytes.Buffer
	a := &app{stdin: strings.NewReader(""), stdout: &stdout, stderr: &bytes.Buffer{}}
	cmd := newRootCmd(a)
	cmd.SetArgs([]string{"--config", "/does/not/exist.json", "version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version should not load config: %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "htmlattrs dev\n") {
		t.Errorf("output = %q", stdout.String())
	}
}

func TestNewServiceExposesMetrics(t *testing.T) {
	t.Cleanup(func() { charset.SetDefault(charset.DefaultName) })

	a := &app{stdin: strings.NewReader(""), stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	a.configPath = filepath.Join(t.TempDir(), "htmlattrs.json")
	if err := os.WriteFile(a.configPath, []byte(`{"metrics": {"enabled": true, "namespace": "cli_test"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := a.init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	registry := prometheus.NewRegistry()
	srv := httptest.NewServer(newService(a, registry, registry).Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1/parse", "application/json", strings.NewReader(`{"input": "class=x 9"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	defer resp.Body.Close()

	var body bytes.Buffer
	body.ReadFrom(resp.Body)
	for _, name := range []string{"cli_test_requests_total", "cli_test_attributes_parsed_total"} {
		if !strings.Contains(body.String(), name) {
			t.Errorf("metrics missing %s", name)
		}
	}
}
