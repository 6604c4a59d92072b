package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Library  LibraryConfig  `toml:"library"`
	Audio    AudioConfig    `toml:"audio"`
	Search   SearchConfig   `toml:"search"`
	Database DatabaseConfig `toml:"database"`
	Theme    ThemeConfig    `toml:"theme"`
}

// LibraryConfig contains the music library location and scan settings.
type LibraryConfig struct {
	Root       string   `toml:"root"`
	Extensions []string `toml:"extensions"`
	Watch      bool     `toml:"watch"`
}

// AudioConfig contains audio output settings.
type AudioConfig struct {
	SampleRate   int `toml:"sample_rate"`
	BufferMillis int `toml:"buffer_ms"`
}

// SearchConfig contains fuzzy search tuning settings.
type SearchConfig struct {
	PollQuantum int `toml:"poll_quantum"`
}

// DatabaseConfig contains library cache database settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ThemeConfig contains color settings for the TUI, as hex strings.
type ThemeConfig struct {
	Accent     string `toml:"accent"`
	SelectedBg string `toml:"selected_bg"`
	SelectedFg string `toml:"selected_fg"`
	NowPlaying string `toml:"now_playing"`
	QueuedNext string `toml:"queued_next"`
	Help       string `toml:"help"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
