package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolver(t *testing.T) {
	lookup := func(vars map[string]string) func(string) (string, bool) {
		return func(name string) (string, bool) {
			v, ok := vars[name]
			return v, ok
		}
	}

	t.Run("plain values pass through", func(t *testing.T) {
		r := NewResolverWithLookup(lookup(nil))
		got, err := r.Resolve("literal-key")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if got != "literal-key" {
			t.Errorf("Resolve() = %q, want %q", got, "literal-key")
		}
	})

	t.Run("expands environment references", func(t *testing.T) {
		r := NewResolverWithLookup(lookup(map[string]string{"GEMINI_API_KEY": "secret"}))
		got, err := r.Resolve("$GEMINI_API_KEY")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if got != "secret" {
			t.Errorf("Resolve() = %q, want %q", got, "secret")
		}
	})

	t.Run("unset variable is an error", func(t *testing.T) {
		r := NewResolverWithLookup(lookup(nil))
		if _, err := r.Resolve("$MISSING"); err == nil {
			t.Error("Resolve() error = nil, want error for unset variable")
		}
	})
}

func TestSaveAndLoadFromFile(t *testing.T) {
	t.Run("round-trips the template not the resolved key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "haven.json")

		cfg := NewConfig()
		cfg.APIKey = "$GEMINI_API_KEY"
		cfg.Model = "gemini-2.0-flash"
		cfg.Options.Debug = true

		if err := SaveToFile(cfg, path); err != nil {
			t.Fatalf("SaveToFile() error = %v", err)
		}

		t.Setenv("GEMINI_API_KEY", "resolved-secret")
		loaded, err := LoadFromFile(path)
		if err != nil {
			t.Fatalf("LoadFromFile() error = %v", err)
		}

		if loaded.APIKey != "resolved-secret" {
			t.Errorf("APIKey = %q, want resolved value", loaded.APIKey)
		}
		if loaded.APIKeyTemplate() != "$GEMINI_API_KEY" {
			t.Errorf("APIKeyTemplate() = %q, want the template", loaded.APIKeyTemplate())
		}
		if loaded.Model != "gemini-2.0-flash" {
			t.Errorf("Model = %q, want gemini-2.0-flash", loaded.Model)
		}
		if loaded.Options == nil || !loaded.Options.Debug {
			t.Error("Options.Debug not preserved")
		}

		// The file on disk must never contain the resolved key.
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading config file: %v", err)
		}
		if !strings.Contains(string(data), "$GEMINI_API_KEY") {
			t.Errorf("config file should store the template, got: %s", data)
		}
		if strings.Contains(string(data), "resolved-secret") {
			t.Errorf("config file must not contain the resolved key, got: %s", data)
		}
	})

	t.Run("unset env resolves to empty key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "haven.json")

		cfg := NewConfig()
		cfg.APIKey = "$HAVEN_TEST_UNSET_KEY"
		if err := SaveToFile(cfg, path); err != nil {
			t.Fatalf("SaveToFile() error = %v", err)
		}

		loaded, err := LoadFromFile(path)
		if err != nil {
			t.Fatalf("LoadFromFile() error = %v", err)
		}
		if loaded.APIKey != "" {
			t.Errorf("APIKey = %q, want empty for unset variable", loaded.APIKey)
		}
	})

	t.Run("defaults fill missing fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "haven.json")
		if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
			t.Fatalf("writing empty config: %v", err)
		}

		loaded, err := LoadFromFile(path)
		if err != nil {
			t.Fatalf("LoadFromFile() error = %v", err)
		}
		if loaded.Model != DefaultModel {
			t.Errorf("Model = %q, want default %q", loaded.Model, DefaultModel)
		}
		if loaded.APIKeyTemplate() != DefaultAPIKeyTemplate {
			t.Errorf("APIKeyTemplate() = %q, want default %q", loaded.APIKeyTemplate(), DefaultAPIKeyTemplate)
		}
		if loaded.DataDir() == "" {
			t.Error("DataDir() is empty, want a default path")
		}
	})
}

func TestSetConfigField(t *testing.T) {
	t.Run("updates only the named field", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "haven.json")

		cfg := NewConfig()
		cfg.APIKey = "$GEMINI_API_KEY"
		cfg.Model = "gemini-2.0-flash"
		if err := SaveToFile(cfg, path); err != nil {
			t.Fatalf("SaveToFile() error = %v", err)
		}

		if err := setConfigField(path, "options.debug", true); err != nil {
			t.Fatalf("setConfigField() error = %v", err)
		}

		loaded, err := LoadFromFile(path)
		if err != nil {
			t.Fatalf("LoadFromFile() error = %v", err)
		}
		if loaded.Options == nil || !loaded.Options.Debug {
			t.Error("options.debug not set")
		}
		if loaded.Model != "gemini-2.0-flash" {
			t.Errorf("Model = %q, the other fields must survive the update", loaded.Model)
		}
		if loaded.APIKeyTemplate() != "$GEMINI_API_KEY" {
			t.Errorf("APIKeyTemplate() = %q, the other fields must survive the update", loaded.APIKeyTemplate())
		}
	})

	t.Run("creates the file when missing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "haven.json")

		if err := setConfigField(path, "options.debug", true); err != nil {
			t.Fatalf("setConfigField() error = %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading config file: %v", err)
		}
		if !strings.Contains(string(data), `"debug":true`) {
			t.Errorf("config file missing the written field, got: %s", data)
		}
	})
}
