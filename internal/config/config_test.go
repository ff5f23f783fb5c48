package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelgen/pkg/model"
)

func envMap(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "modelgen.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", envMap(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, `
root: FileRoot
renderer: jsonschema
timeout: 3s
templates: ./file-templates
renames:
  Users: User
log:
  level: debug
  file: /tmp/modelgen.log
`)

	cfg, err := Load(path, envMap(map[string]string{
		"MODELGEN_RENDERER":   "openapi",
		"MODELGEN_TIMEOUT_MS": "1500",
		"MODELGEN_LOG_LEVEL":  "error",
		"MODELGEN_TEMPLATES":  "/srv/templates",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.RootName != "FileRoot" {
		t.Errorf("file value lost: root=%q", cfg.RootName)
	}
	if cfg.Renderer != "openapi" {
		t.Errorf("env should override file: renderer=%q", cfg.Renderer)
	}
	if cfg.Templates != "/srv/templates" {
		t.Errorf("env should override file: templates=%q", cfg.Templates)
	}
	if cfg.Timeout != 1500*time.Millisecond {
		t.Errorf("env timeout: %v", cfg.Timeout)
	}
	if cfg.Log.Level != "error" || cfg.Log.FilePath != "/tmp/modelgen.log" {
		t.Errorf("log block: %+v", cfg.Log)
	}
	if cfg.Log.MaxBackups != Default().Log.MaxBackups {
		t.Errorf("unset file keys should keep defaults: %+v", cfg.Log)
	}
	if diff := cmp.Diff(map[string]string{"Users": "User"}, cfg.Renames); diff != "" {
		t.Errorf("renames (-want +got):\n%s", diff)
	}
}

func TestLoad_FileDuration(t *testing.T) {
	cfg, err := Load(writeConfig(t, "timeout: 250ms\n"), envMap(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Timeout != 250*time.Millisecond {
		t.Fatalf("timeout: %v", cfg.Timeout)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), envMap(nil)); err == nil {
		t.Fatalf("expected missing file error")
	}
	if _, err := Load(writeConfig(t, "root: [unclosed\n"), envMap(nil)); err == nil {
		t.Fatalf("expected parse error")
	}

	_, err := Load("", envMap(map[string]string{
		"MODELGEN_ALLOW_HTTP": "maybe",
		"MODELGEN_MAX_BYTES":  "lots",
	}))
	if err == nil {
		t.Fatalf("expected env errors")
	}
	for _, want := range []string{"MODELGEN_ALLOW_HTTP", "MODELGEN_MAX_BYTES"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %s", err, want)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Collision = "explode"
	cfg.Format = "toml"
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	if !strings.Contains(err.Error(), "explode") || !strings.Contains(err.Error(), "toml") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCollisionPolicy(t *testing.T) {
	cfg := Default()
	cfg.Collision = "overwrite"
	if cfg.CollisionPolicy() != model.CollisionOverwrite {
		t.Fatalf("policy: %v", cfg.CollisionPolicy())
	}
	cfg.Collision = ""
	if cfg.CollisionPolicy() != model.CollisionQualify {
		t.Fatalf("empty policy should default to qualify")
	}
}
