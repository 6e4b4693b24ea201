package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName    = "config"
	configType    = "toml"
	configDirName = "vrcswitch"

	configFileMode  = 0o600
	configDirMode   = 0o700
	tempFilePattern = ".config-*.toml.tmp"

	defaultBaseURL  = "https://api.vrchat.cloud/api/1"
	defaultInterval = 10 * time.Second
	defaultLogLevel = "warn"

	sessionFileName = "session.json"
)

// Config is the resolved runtime configuration. Values come from the TOML
// config file when present, with VRCSWITCH_* environment variables taking
// precedence and built-in defaults underneath.
type Config struct {
	APIBaseURL   string
	SessionPath  string
	Executable   string
	DesktopMode  bool
	PollInterval time.Duration
	LogLevel     string
}

// Load resolves the configuration. A missing config file is not an error;
// defaults and the environment apply. The launch executable, when not
// configured, is probed from well-known Steam library locations.
func Load(cfg *viper.Viper) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	configDir, err := Dir()
	if err != nil {
		return Config{}, err
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(configDir)

	cfg.SetDefault("api.base_url", defaultBaseURL)
	cfg.SetDefault("session.path", filepath.Join(configDir, sessionFileName))
	cfg.SetDefault("launch.executable", "")
	cfg.SetDefault("launch.desktop_mode", false)
	cfg.SetDefault("poll.interval", defaultInterval.String())
	cfg.SetDefault("log.level", defaultLogLevel)

	cfg.SetEnvPrefix("VRCSWITCH")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	interval := cfg.GetDuration("poll.interval")
	if interval <= 0 {
		interval = defaultInterval
	}

	executable := cfg.GetString("launch.executable")
	if executable == "" {
		executable = discoverExecutable()
	}

	loaded := Config{
		APIBaseURL:   cfg.GetString("api.base_url"),
		SessionPath:  cfg.GetString("session.path"),
		Executable:   executable,
		DesktopMode:  cfg.GetBool("launch.desktop_mode"),
		PollInterval: interval,
		LogLevel:     cfg.GetString("log.level"),
	}
	if loaded.APIBaseURL == "" {
		return Config{}, errors.New("api base url is empty")
	}
	if loaded.SessionPath == "" {
		return Config{}, errors.New("session path is empty")
	}

	return loaded, nil
}

// Dir returns the configuration directory, ~/.config/vrcswitch by default.
func Dir() (string, error) {
	if override := os.Getenv("VRCSWITCH_CONFIG_DIR"); override != "" {
		return override, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", configDirName), nil
}

// FilePath returns the config file location inside Dir.
func FilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, configName+"."+configType), nil
}

type fileSchema struct {
	API struct {
		BaseURL string `toml:"base_url"`
	} `toml:"api"`
	Session struct {
		Path string `toml:"path"`
	} `toml:"session"`
	Launch struct {
		Executable  string `toml:"executable"`
		DesktopMode bool   `toml:"desktop_mode"`
	} `toml:"launch"`
	Poll struct {
		Interval string `toml:"interval"`
	} `toml:"poll"`
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

// Save writes the configuration as a TOML file at path, atomically.
func Save(path string, cfg Config) error {
	var file fileSchema
	file.API.BaseURL = cfg.APIBaseURL
	file.Session.Path = cfg.SessionPath
	file.Launch.Executable = cfg.Executable
	file.Launch.DesktopMode = cfg.DesktopMode
	file.Poll.Interval = cfg.PollInterval.String()
	file.Log.Level = cfg.LogLevel

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), configDirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp config file: %w", err)
	}
	if err := tempFile.Chmod(configFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp config file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}
	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}

	cleanup = false

	return nil
}

// discoverExecutable probes the usual Steam library locations for the
// platform's launch helper. Empty when nothing is found; the user then has to
// configure launch.executable or pass --exe.
func discoverExecutable() string {
	for _, candidate := range steamLaunchCandidates() {
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		return candidate
	}

	return ""
}

func steamLaunchCandidates() []string {
	const suffix = "steamapps/common/VRChat/launch.exe"

	candidates := []string{
		filepath.Join(`C:\Program Files (x86)\Steam`, filepath.FromSlash(suffix)),
		filepath.Join(`E:\SteamLibrary`, filepath.FromSlash(suffix)),
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(homeDir, ".steam", "steam", filepath.FromSlash(suffix)),
			filepath.Join(homeDir, ".local", "share", "Steam", filepath.FromSlash(suffix)),
		)
	}

	return candidates
}
