package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// OpenAI holds credentials and model selection for the generative services.
type OpenAI struct {
	APIKey      string `toml:"api_key"`
	BaseURL     string `toml:"base_url"`
	TextModel   string `toml:"text_model"`
	ImageModel  string `toml:"image_model"`
	SpeechModel string `toml:"speech_model"`
}

// Generation tunes the asset assembly pipeline.
type Generation struct {
	PlaceholderImageURL  string `toml:"placeholder_image_url"`
	NarrationMaxAttempts int    `toml:"narration_max_attempts"`
	NarrationBackoffMS   int    `toml:"narration_backoff_ms"`
	NarrationEnabled     bool   `toml:"narration_enabled"`
}

// Paths contains data and export directory configuration.
type Paths struct {
	DataDir   string `toml:"data_dir"`
	ExportDir string `toml:"export_dir"`
}

type Config struct {
	OpenAI     OpenAI     `toml:"openai"`
	Generation Generation `toml:"generation"`
	Paths      Paths      `toml:"paths"`
	LogLevel   string     `toml:"log_level"`
}

// DefaultPlaceholderImageURL is the deterministic substitute used when image
// generation fails for a page.
const DefaultPlaceholderImageURL = "https://placehold.co/1024x1024/png?text=Illustration+unavailable"

func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	base := filepath.Join(homeDir, ".storyforge")
	return &Config{
		OpenAI: OpenAI{
			TextModel:   "gpt-4o-mini",
			ImageModel:  "dall-e-3",
			SpeechModel: "tts-1",
		},
		Generation: Generation{
			PlaceholderImageURL:  DefaultPlaceholderImageURL,
			NarrationMaxAttempts: 3,
			NarrationBackoffMS:   250,
			NarrationEnabled:     true,
		},
		Paths: Paths{
			DataDir:   base,
			ExportDir: filepath.Join(base, "exports"),
		},
		LogLevel: "info",
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".storyforge", "config.toml")
}

// Load reads the config at path, layering it over defaults. A missing file
// is not an error; the defaults are returned with the API key taken from
// the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := toml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.OpenAI.APIKey == "" {
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	return cfg, nil
}

// Validate checks that the config is usable for story generation.
func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return errors.New("openai api key missing; set openai.api_key or OPENAI_API_KEY")
	}
	if c.Generation.PlaceholderImageURL == "" {
		return errors.New("generation.placeholder_image_url cannot be empty")
	}
	if c.Generation.NarrationMaxAttempts < 1 {
		return errors.New("generation.narration_max_attempts must be at least 1")
	}
	return nil
}

// DatabasePath returns the location of the story database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "stories.db")
}

// WriteSample writes the embedded sample config to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0644)
}
