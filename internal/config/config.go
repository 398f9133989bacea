package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by both tools.
type Config struct {
	// LogLevel is the minimum level of log entries written to stdout.
	LogLevel string `yaml:"log_level" default:"info" validate:"oneof=debug info warn error"`
	// UserAgent overrides the User-Agent header of HTTP requests.
	UserAgent string `yaml:"user_agent,omitempty"`
	// RequestTimeout bounds page and index fetches.
	RequestTimeout time.Duration `yaml:"request_timeout" default:"60s" validate:"gt=0"`
	// DownloadTimeout bounds the wait for response headers of artifact downloads.
	DownloadTimeout time.Duration `yaml:"download_timeout" default:"120s" validate:"gt=0"`
	// Python holds py-versions settings.
	Python Python `yaml:"python"`
	// VirtualBox holds vbox-installer settings.
	VirtualBox VirtualBox `yaml:"virtualbox"`
}

// Python holds the python.org scraper settings.
type Python struct {
	// DownloadsURL is the page listing release cycles and their status.
	DownloadsURL string `yaml:"downloads_url" default:"https://www.python.org/downloads/" validate:"required,url"`
}

// VirtualBox holds the installer settings.
type VirtualBox struct {
	// BaseURL is the root of the vendor download tree.
	BaseURL string `yaml:"base_url" default:"https://download.virtualbox.org/virtualbox" validate:"required,url"`
	// DownloadDir receives downloaded artifacts.
	DownloadDir string `yaml:"download_dir"`
	// Arch is the Debian architecture name; empty means the running architecture.
	Arch string `yaml:"arch,omitempty" validate:"omitempty,oneof=amd64 arm64 i386"`
	// LooseCodename allows a package built for another codename of the same family.
	LooseCodename bool `yaml:"loose_codename"`
	// SkipChecksums disables SHA-256 verification of downloaded artifacts.
	SkipChecksums bool `yaml:"skip_checksums"`
	// KeepDownloads keeps installed packages in DownloadDir.
	KeepDownloads bool `yaml:"keep_downloads"`
	// APTKeyURL is the armored signing key of the vendor apt repository.
	APTKeyURL string `yaml:"apt_key_url" default:"https://www.virtualbox.org/download/oracle_vbox_2016.asc" validate:"required,url"`
	// APTKeyring is where the dearmored key is written.
	APTKeyring string `yaml:"apt_keyring" default:"/usr/share/keyrings/oracle-virtualbox-2016.gpg" validate:"required"`
	// APTList is the apt sources list file for the vendor repository.
	APTList string `yaml:"apt_list" default:"/etc/apt/sources.list.d/virtualbox.list" validate:"required"`
	// APTRepoURL is the vendor apt repository.
	APTRepoURL string `yaml:"apt_repo_url" default:"https://download.virtualbox.org/virtualbox/debian" validate:"required,url"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "installer-helpers.yaml"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600

	// downloadSubdir is appended to the user download directory.
	downloadSubdir = "VirtualBox"
)

// errConfigIsNotSet is returned when a nil configuration is provided.
var errConfigIsNotSet = errors.New("configuration is not set")

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := new(Config)

	// Defaults cannot fail validation.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates it.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err = yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err = Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err = os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills unset fields with defaults and checks the result.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if err := defaults.Set(cfg); err != nil {
		return fmt.Errorf("apply defaults: %w", err)
	}

	if cfg.VirtualBox.DownloadDir == "" {
		cfg.VirtualBox.DownloadDir = DefaultDownloadDir()
	}

	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	return nil
}

// DefaultDownloadDir returns the XDG download directory with a VirtualBox subfolder.
func DefaultDownloadDir() string {
	return filepath.Join(xdg.UserDirs.Download, downloadSubdir)
}
