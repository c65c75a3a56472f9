package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vidquiz/internal/question"
)

func writeConfig(t *testing.T, root, body string) string {
	t.Helper()
	dir := ConfigDir(root)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestParseKeepsDefaults verifies omitted fields fall back to defaults.
func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("version: 1\nlocale: vi\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Locale != "vi" || cfg.Title != DefaultTitle || cfg.Preview.TickMS != DefaultPreviewTick {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if err := Validate(&cfg); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

// TestParseRejectsUnknownFields verifies strict decoding.
func TestParseRejectsUnknownFields(t *testing.T) {
	if _, err := Parse([]byte("version: 1\nautoplay: true\n")); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

// TestParseRejectsMultipleDocuments verifies the single-document rule.
func TestParseRejectsMultipleDocuments(t *testing.T) {
	_, err := Parse([]byte("version: 1\n---\nversion: 1\n"))
	if err == nil || !strings.Contains(err.Error(), "multiple YAML documents") {
		t.Fatalf("expected multiple documents error, got %v", err)
	}
}

// TestValidateReportsEveryIssue verifies validator failures map to config fields.
func TestValidateReportsEveryIssue(t *testing.T) {
	cfg := Default()
	cfg.Version = 2
	cfg.Locale = "fr"
	cfg.Log.Level = "loud"
	cfg.Preview.Addr = "nowhere"
	cfg.Preview.TickMS = 1
	cfg.Labels = map[string]string{"submit": "Go", "skip": "Skip"}

	err := Validate(&cfg)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	fields := map[string]bool{}
	for _, issue := range validationErr.Issues {
		fields[issue.Field] = true
	}
	for _, want := range []string{"version", "locale", "log.level", "preview.addr", "preview.tick_ms", "labels.skip"} {
		if !fields[want] {
			t.Fatalf("expected issue for %s, got %+v", want, validationErr.Issues)
		}
	}
	if fields["labels.submit"] {
		t.Fatalf("submit is a known label")
	}
}

// TestApplyEnvOverrides verifies VIDQUIZ_* variables win over file values.
func TestApplyEnvOverrides(t *testing.T) {
	env := map[string]string{
		EnvLocale:      "vi",
		EnvOutputDir:   "/tmp/out",
		EnvPreviewTick: "100",
		EnvLogMode:     "  ",
	}
	cfg := Default()
	err := ApplyEnv(&cfg, func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	})
	if err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.Locale != "vi" || cfg.OutputDir != "/tmp/out" || cfg.Preview.TickMS != 100 || cfg.Log.Mode != "dev" {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	env[EnvPreviewTick] = "fast"
	if err := ApplyEnv(&cfg, func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}); err == nil {
		t.Fatalf("expected tick parse error")
	}
}

// TestResolveFindsConfigUpward verifies discovery from a nested directory.
func TestResolveFindsConfigUpward(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "version: 1\ntitle: Lesson\n")
	nested := filepath.Join(root, "media", "clips")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	loaded, err := Resolve("", nested)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if loaded.Title != "Lesson" || loaded.Path == "" {
		t.Fatalf("unexpected resolve result: %+v", loaded)
	}
	if resolved, _ := filepath.EvalSymlinks(loaded.Root); resolved != mustEval(t, root) {
		t.Fatalf("expected root %s, got %s", root, loaded.Root)
	}
}

func mustEval(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("eval symlinks: %v", err)
	}
	return resolved
}

// TestResolveWithoutConfigUsesDefaults verifies the config file is optional.
func TestResolveWithoutConfigUsesDefaults(t *testing.T) {
	loaded, err := Resolve("", t.TempDir())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if loaded.Path != "" || loaded.Title != DefaultTitle {
		t.Fatalf("expected defaults, got %+v", loaded)
	}
}

// TestLoadReadsEnvFile verifies .env values apply without overriding the environment.
func TestLoadReadsEnvFile(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "version: 1\n")
	if err := os.WriteFile(filepath.Join(root, EnvFileName), []byte("VIDQUIZ_TITLE=From Env File\nVIDQUIZ_LOCALE=vi\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv(EnvLocale, "en")
	t.Setenv(EnvTitle, "")
	os.Unsetenv(EnvTitle)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Title != "From Env File" {
		t.Fatalf("expected title from .env, got %q", cfg.Title)
	}
	if cfg.Locale != "en" {
		t.Fatalf("expected process env to win, got %q", cfg.Locale)
	}
}

// TestFindConfigPathMissingFile verifies the incomplete config directory error.
func TestFindConfigPathMissingFile(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(ConfigDir(root), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	_, err := FindConfigPath(root)
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected missing config file error, got %v", err)
	}
}

// TestScaffoldWritesLoadableFiles verifies init output loads cleanly.
func TestScaffoldWritesLoadableFiles(t *testing.T) {
	root := t.TempDir()
	configPath, questionsPath, err := Scaffold(root)
	if err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	if _, err := Load(configPath); err != nil {
		t.Fatalf("load scaffold config: %v", err)
	}
	file, err := question.LoadFile(questionsPath)
	if err != nil {
		t.Fatalf("load sample questions: %v", err)
	}
	if len(file.Questions) != 3 {
		t.Fatalf("expected three sample questions, got %d", len(file.Questions))
	}
	if _, _, err := Scaffold(root); err == nil {
		t.Fatalf("expected scaffold to refuse existing files")
	}
}

// TestExportOptionsApplyLabels verifies label overrides reach the exporter.
func TestExportOptionsApplyLabels(t *testing.T) {
	cfg := Default()
	cfg.Locale = "vi"
	cfg.Labels = map[string]string{"continue": "Next"}
	opts, err := cfg.ExportOptions()
	if err != nil {
		t.Fatalf("export options: %v", err)
	}
	if opts.Labels.Continue != "Next" || opts.Labels.Submit != "Trả lời" || opts.Locale != "vi" {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

// TestValidateKeepsTickInsideTriggerWindow verifies the preview tick stays below half a second.
func TestValidateKeepsTickInsideTriggerWindow(t *testing.T) {
	cfg := Default()
	cfg.Preview.TickMS = 499
	if err := Validate(&cfg); err != nil {
		t.Fatalf("expected 499ms to be accepted, got %v", err)
	}
	cfg.Preview.TickMS = 500
	err := Validate(&cfg)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(validationErr.Issues) != 1 || validationErr.Issues[0].Field != "preview.tick_ms" {
		t.Fatalf("unexpected issues: %+v", validationErr.Issues)
	}
}
