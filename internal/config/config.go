package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// UI contains presentation defaults persisted between sessions.
type UI struct {
	LastDirectory string `toml:"last_directory"`
	Theme         string `toml:"theme"`
	WindowWidth   int    `toml:"window_width"`
	WindowHeight  int    `toml:"window_height"`
}

// Export contains defaults applied to new projects and export runs.
type Export struct {
	AudioCrossfade float64 `toml:"audio_crossfade"`
	VideoCrossfade float64 `toml:"video_crossfade"`
	MusicVolume    float64 `toml:"music_volume"`
	VideoVolume    float64 `toml:"video_volume"`
	UseGPU         bool    `toml:"use_gpu"`
	SpeedPreset    string  `toml:"speed_preset"`
}

// Paths contains filesystem locations used by the tool.
type Paths struct {
	DataDir string `toml:"data_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for mixdown.
type Config struct {
	UI      UI      `toml:"ui"`
	Export  Export  `toml:"export"`
	Paths   Paths   `toml:"paths"`
	Logging Logging `toml:"logging"`
}

// Default returns the built-in configuration used when no file exists.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		UI: UI{
			LastDirectory: home,
			Theme:         "modern",
			WindowWidth:   1100,
			WindowHeight:  700,
		},
		Export: Export{
			AudioCrossfade: 10.0,
			VideoCrossfade: 1.0,
			MusicVolume:    70.0,
			VideoVolume:    100.0,
			UseGPU:         true,
			SpeedPreset:    "balanced",
		},
		Paths: Paths{
			DataDir: filepath.Join(home, ".local", "share", "mixdown"),
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/mixdown/config.toml")
}

// Load locates and parses a configuration file. A missing file yields the
// built-in defaults rather than an error. The returned config has all path
// fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// Save writes the configuration whole-file to the provided path.
func Save(cfg *Config, path string) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(expanded); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	payload, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(expanded, payload, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	dataDir, err := expandPath(c.Paths.DataDir)
	if err != nil {
		return err
	}
	c.Paths.DataDir = dataDir

	lastDir, err := expandPath(c.UI.LastDirectory)
	if err != nil {
		return err
	}
	c.UI.LastDirectory = lastDir

	c.Export.SpeedPreset = strings.ToLower(strings.TrimSpace(c.Export.SpeedPreset))
	if c.Export.SpeedPreset == "" {
		c.Export.SpeedPreset = "balanced"
	}
	if c.Export.MusicVolume > 110 {
		c.Export.MusicVolume = 110
	}
	if c.Export.VideoVolume > 110 {
		c.Export.VideoVolume = 110
	}
	return nil
}

// EnsureDirectories creates the directories mixdown writes into.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("data_dir is not configured")
	}
	if err := os.MkdirAll(c.Paths.DataDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.DataDir, err)
	}
	return nil
}

// HistoryDBPath returns the export history database location.
func (c *Config) HistoryDBPath() string {
	return filepath.Join(c.Paths.DataDir, "history.db")
}

// ExportLockPath returns the lock file guarding concurrent exports.
func (c *Config) ExportLockPath() string {
	return filepath.Join(c.Paths.DataDir, "export.lock")
}

// FFmpegBinary returns the transcoding engine executable name.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// FFprobeBinary returns the probe executable name.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

// FFplayBinary returns the preview player executable name.
func (c *Config) FFplayBinary() string {
	return "ffplay"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
