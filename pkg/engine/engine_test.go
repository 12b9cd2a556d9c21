package engine_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-envgen/pkg/engine"
)

func TestEngine_RenderTemplate(t *testing.T) {
	eng := newEngine(t, fstest.MapFS{
		"apps/config.yml": tpl("host: {{ HOST }}\n"),
	})

	rendered, err := eng.RenderTemplate("apps/config.yml", map[string]any{"HOST": "app.local"})
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	if want := "host: app.local\n"; rendered != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, rendered)
	}
}

func TestEngine_RenderTemplate_FirstRootWins(t *testing.T) {
	core := fstest.MapFS{"greeting.txt": tpl("core")}
	override := fstest.MapFS{"greeting.txt": tpl("override")}

	eng, err := engine.New(
		engine.WithRoot("core", core),
		engine.WithRoot("plugin", override),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	rendered, err := eng.RenderTemplate("greeting.txt", nil)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	if rendered != "core" {
		t.Fatalf("expected the first root to shadow later ones, got %q", rendered)
	}
}

func TestEngine_RenderTemplate_SecondRootResolves(t *testing.T) {
	core := fstest.MapFS{"greeting.txt": tpl("core")}
	extra := fstest.MapFS{"only/in/plugin.txt": tpl("plugin {{ NAME }}")}

	eng, err := engine.New(
		engine.WithRoot("core", core),
		engine.WithRoot("plugin", extra),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	rendered, err := eng.RenderTemplate("only/in/plugin.txt", map[string]any{"NAME": "x"})
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	if rendered != "plugin x" {
		t.Fatalf("unexpected render: %q", rendered)
	}
}

func TestEngine_RenderTemplate_MissingKey(t *testing.T) {
	eng := newEngine(t, fstest.MapFS{
		"apps/config.yml": tpl("host: {{ HOST }}\n"),
	})

	_, err := eng.RenderTemplate("apps/config.yml", map[string]any{})
	var missing *engine.MissingKeyError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingKeyError, got %v", err)
	}
	if missing.Key != "HOST" {
		t.Fatalf("expected missing key HOST, got %q", missing.Key)
	}
}

func TestEngine_RenderTemplate_MissingKeyInInclude(t *testing.T) {
	eng := newEngine(t, fstest.MapFS{
		"config.yml":  tpl("{% include \"header.yml\" %}\nhost: {{ HOST }}\n"),
		"header.yml":  tpl("# {{ PROJECT_NAME }}\n"),
		"ignored.yml": tpl("{{ NEVER_RENDERED }}"),
	})

	_, err := eng.RenderTemplate("config.yml", map[string]any{"HOST": "app.local"})
	var missing *engine.MissingKeyError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingKeyError, got %v", err)
	}
	if missing.Key != "PROJECT_NAME" {
		t.Fatalf("expected missing key PROJECT_NAME, got %q", missing.Key)
	}
	if missing.Template != "header.yml" {
		t.Fatalf("expected the include to be named, got %q", missing.Template)
	}
}

func TestEngine_RenderTemplate_MissingKeyInRelativeInclude(t *testing.T) {
	eng := newEngine(t, fstest.MapFS{
		"apps/app/config.yml":          tpl("{% include \"partials/header.yml\" %}\nhost: {{ HOST }}\n"),
		"apps/app/partials/header.yml": tpl("# {{ PROJECT_NAME }}\n"),
	})

	_, err := eng.RenderTemplate("apps/app/config.yml", map[string]any{"HOST": "app.local"})
	var missing *engine.MissingKeyError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingKeyError, got %v", err)
	}
	if missing.Key != "PROJECT_NAME" {
		t.Fatalf("expected missing key PROJECT_NAME, got %q", missing.Key)
	}
	if missing.Template != "apps/app/partials/header.yml" {
		t.Fatalf("expected the resolved include to be named, got %q", missing.Template)
	}
}

func TestEngine_RenderTemplate_NotFound(t *testing.T) {
	eng := newEngine(t, fstest.MapFS{})

	_, err := eng.RenderTemplate("nope.yml", nil)
	if err == nil || !strings.Contains(err.Error(), "nope.yml") {
		t.Fatalf("expected a not-found error naming the path, got %v", err)
	}
}

func TestEngine_RenderString(t *testing.T) {
	eng := newEngine(t, fstest.MapFS{"unused.txt": tpl("")})

	rendered, err := eng.RenderString("{{ A }}-{{ B }}", map[string]any{"A": "1", "B": "2"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if rendered != "1-2" {
		t.Fatalf("unexpected render: %q", rendered)
	}

	_, err = eng.RenderString("{{ A }}-{{ B }}", map[string]any{"A": "1"})
	var missing *engine.MissingKeyError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingKeyError, got %v", err)
	}
	if missing.Key != "B" {
		t.Fatalf("expected missing key B, got %q", missing.Key)
	}
}

func TestEngine_Globals(t *testing.T) {
	eng, err := engine.New(
		engine.WithRoot("core", fstest.MapFS{"v.txt": tpl("{{ TOOL_VERSION }}")}),
		engine.WithGlobal("TOOL_VERSION", "1.2.3"),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	rendered, err := eng.RenderTemplate("v.txt", map[string]any{})
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	if rendered != "1.2.3" {
		t.Fatalf("unexpected render: %q", rendered)
	}
}

func TestEngine_SetGlobalFunction(t *testing.T) {
	eng := newEngine(t, fstest.MapFS{"unused.txt": tpl("")})
	eng.SetGlobal("shout", func() string { return "HEY" })

	rendered, err := eng.RenderString("{{ shout() }}", nil)
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if rendered != "HEY" {
		t.Fatalf("unexpected render: %q", rendered)
	}
}

func TestEngine_RequiresRoot(t *testing.T) {
	if _, err := engine.New(); err == nil {
		t.Fatal("expected an error when no template root is configured")
	}
}

func newEngine(t *testing.T, fsys fstest.MapFS) *engine.Engine {
	t.Helper()

	eng, err := engine.New(engine.WithRoot("core", fsys))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return eng
}

func tpl(content string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(content)}
}
