package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
codeBasePath: https://main--site--org.hlx.page
blockSelector: div.contact-form
templatesDir: ./templates
logging:
  level: debug
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := &Config{
		CodeBasePath:  "https://main--site--org.hlx.page",
		BlockSelector: "div.contact-form",
		TemplatesDir:  "./templates",
		Logging:       LoggingConfig{Level: LevelDebug},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}

	cfg, err = Parse([]byte("codeBasePath: /code\nblockSelector: \"\"\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.BlockSelector != DefaultBlockSelector || cfg.Logging.Level != LevelNormal {
		t.Fatalf("expected defaults to be filled, got %+v", cfg)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown key":  "codeBasePath: /code\nbasePath: /typo\n",
		"bad level":    "logging:\n  level: verbose\n",
		"invalid yaml": "codeBasePath: [\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestFileBasePath_ReadsOnEveryCall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formblock.yaml")
	write := func(base string) {
		t.Helper()
		if err := os.WriteFile(path, []byte("codeBasePath: "+base+"\n"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
	}

	provider := FileBasePath(path)

	write("https://one.example.com")
	first, err := provider.BasePath()
	if err != nil {
		t.Fatalf("base path: %v", err)
	}
	write("https://two.example.com")
	second, err := provider.BasePath()
	if err != nil {
		t.Fatalf("base path: %v", err)
	}

	if first != "https://one.example.com" || second != "https://two.example.com" {
		t.Fatalf("expected base path to follow the file, got %q then %q", first, second)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestStaticBasePath(t *testing.T) {
	got, err := StaticBasePath("/code").BasePath()
	if err != nil || got != "/code" {
		t.Fatalf("unexpected %q err=%v", got, err)
	}

	var cfg *Config
	if _, err := cfg.BasePath(); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

func TestLoggingConfig_Prepare(t *testing.T) {
	var stdout, stderr bytes.Buffer

	logger := LoggingConfig{Level: LevelNormal}.PrepareWith(&stdout, &stderr)
	logger.Debug("hidden")
	logger.Info("shown")
	logger.Error("failed")
	_ = logger.Sync()

	if strings.Contains(stdout.String(), "hidden") {
		t.Fatalf("debug output leaked at normal level: %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "shown") || strings.Contains(stdout.String(), "failed") {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "failed") {
		t.Fatalf("expected errors on stderr, got %q", stderr.String())
	}

	stdout.Reset()
	debug := LoggingConfig{Level: LevelDebug}.PrepareWith(&stdout, &stderr)
	debug.Debug("details")
	if !strings.Contains(stdout.String(), "details") {
		t.Fatalf("expected debug output, got %q", stdout.String())
	}

	stdout.Reset()
	LoggingConfig{Level: LevelNone}.PrepareWith(&stdout, &stderr).Info("quiet")
	if stdout.Len() != 0 {
		t.Fatalf("expected no output at level none, got %q", stdout.String())
	}
}
