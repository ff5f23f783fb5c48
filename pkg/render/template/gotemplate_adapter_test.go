package template_test

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-modelgen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-modelgen/pkg/testsupport"
)

var templateFiles = fstest.MapFS{
	"hello.tmpl":      {Data: []byte("class {{ name }}(BaseModel):")},
	"use-global.tmpl": {Data: []byte("# generated from {{ settings.source }}")},
	"use-filter.tmpl": {Data: []byte("{{ name|shout_record }}")},
	"alias.tmpl":      {Data: []byte(`alias="{{ wire|pyquote }}"`)},
	"records.tmpl":    {Data: []byte("{% for r in records %}{{ r.name }};{% endfor %}")},
}

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Model"}, w)
	})

	want := "class Model(BaseModel):"
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"source": "sample.json"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "# generated from sample.json"; result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout_record", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "address"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "ADDRESS!"; result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}

	if err := engine.RegisterFilter("shout_record", func(input any, _ any) (any, error) { return input, nil }); err == nil {
		t.Fatalf("expected duplicate filter registration to fail")
	}
}

func TestGoTemplateEngine_PyQuoteFilter(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("alias", map[string]any{"wire": "say \"hi\" \\ <now>\n\x01"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := `alias="say \"hi\" \\ <now>\n\x01"`; result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_StructContext(t *testing.T) {
	engine := newEngine(t)

	type record struct {
		Name string `json:"name"`
	}
	data := struct {
		Records []record `json:"records"`
	}{Records: []record{{Name: "Address"}, {Name: "Model"}}}

	result, err := engine.RenderTemplate("records", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "Address;Model;"; result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_RejectsNonObjectContext(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("records", []string{"Address"}); err == nil {
		t.Fatalf("expected error for list data")
	}
}

func TestGoTemplateEngine_RenderInline(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Render("{{ a }}-{{ b }}", map[string]any{"a": "x", "b": "y"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "x-y" {
		t.Fatalf("inline render mismatch: %q", result)
	}

	if _, err := engine.Render("missing", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestGoTemplateEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	engine, err := gotemplate.New(gotemplate.WithFS(templateFiles))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestGoTemplateEngine_CacheIsBounded(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(templateFiles), gotemplate.WithCacheSize(2))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	for _, name := range []string{"hello", "hello", "alias"} {
		if _, err := engine.RenderTemplate(name, map[string]any{"name": "M", "wire": "w"}); err != nil {
			t.Fatalf("render %s: %v", name, err)
		}
	}
	if got := engine.CachedTemplates(); got != 2 {
		t.Fatalf("cached templates = %d, want 2", got)
	}

	for i := 0; i < 3; i++ {
		if _, err := engine.RenderString(fmt.Sprintf("{{ n }}-%d", i), map[string]any{"n": i}); err != nil {
			t.Fatalf("render inline %d: %v", i, err)
		}
	}
	if got := engine.CachedTemplates(); got != 2 {
		t.Fatalf("cached templates after inline renders = %d, want 2", got)
	}
}
