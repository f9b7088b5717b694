package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.OpenAI.TextModel != "gpt-4o-mini" {
		t.Errorf("Expected default text model, got %q", cfg.OpenAI.TextModel)
	}
	if cfg.Generation.NarrationMaxAttempts != 3 {
		t.Errorf("Expected 3 narration attempts, got %d", cfg.Generation.NarrationMaxAttempts)
	}
	if cfg.Generation.PlaceholderImageURL == "" {
		t.Error("Expected a default placeholder image URL")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
log_level = "debug"

[openai]
api_key = "sk-test"
text_model = "gpt-4o"

[generation]
narration_max_attempts = 5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("Expected api key from file, got %q", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.TextModel != "gpt-4o" {
		t.Errorf("Expected overridden text model, got %q", cfg.OpenAI.TextModel)
	}
	if cfg.Generation.NarrationMaxAttempts != 5 {
		t.Errorf("Expected 5 attempts, got %d", cfg.Generation.NarrationMaxAttempts)
	}
	// Untouched sections keep defaults
	if cfg.OpenAI.ImageModel != "dall-e-3" {
		t.Errorf("Expected default image model, got %q", cfg.OpenAI.ImageModel)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.OpenAI.APIKey = ""
	os.Unsetenv("OPENAI_API_KEY")
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error without api key")
	}

	cfg.OpenAI.APIKey = "sk-test"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Unexpected validation error: %v", err)
	}

	cfg.Generation.NarrationMaxAttempts = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error with zero attempts")
	}
}

func TestWriteSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := WriteSample(path); err != nil {
		t.Fatalf("Failed to write sample: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Sample config does not parse: %v", err)
	}
	if cfg.Generation.NarrationMaxAttempts != 3 {
		t.Errorf("Sample config changed defaults unexpectedly: %d", cfg.Generation.NarrationMaxAttempts)
	}

	// Refuses to clobber an existing file
	if err := WriteSample(path); err == nil {
		t.Error("Expected error writing over existing config")
	}
}
