// Package config loads and validates the docsite configuration file.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Freddy-Gong/react-native-website/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "docsite.yaml"

// Config is the root of the configuration file.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Docs    DocsConfig    `yaml:"docs"`
	Build   BuildConfig   `yaml:"build,omitempty"`
	Output  OutputConfig  `yaml:"output"`
	Preview PreviewConfig `yaml:"preview,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`

	// Root is the directory relative paths are resolved against.
	Root string `yaml:"-"`
}

// SiteConfig describes the site as a whole.
type SiteConfig struct {
	URL            string `yaml:"url"`
	BaseURL        string `yaml:"base_url"`
	Title          string `yaml:"title"`
	TitleDelimiter string `yaml:"title_delimiter,omitempty"`
	Locale         string `yaml:"locale,omitempty"`
	Timezone       string `yaml:"timezone,omitempty"`
}

// DocsConfig describes the docs tree and its versions.
type DocsConfig struct {
	Path          string `yaml:"path,omitempty"`
	VersionedPath string `yaml:"versioned_path,omitempty"`
	// VersionsFile lists released versions when Versions is empty.
	VersionsFile  string `yaml:"versions_file,omitempty"`
	RouteBasePath string `yaml:"route_base_path,omitempty"`
	// Versions lists released versions, latest first.
	Versions              []string          `yaml:"versions,omitempty"`
	LastVersion           string            `yaml:"last_version,omitempty"`
	IncludeCurrentVersion *bool             `yaml:"include_current_version,omitempty"`
	CurrentLabel          string            `yaml:"current_label,omitempty"`
	VersionLabels         map[string]string `yaml:"version_labels,omitempty"`

	EditURL              string `yaml:"edit_url,omitempty"`
	EditCurrentVersion   bool   `yaml:"edit_current_version,omitempty"`
	ShowLastUpdateTime   bool   `yaml:"show_last_update_time,omitempty"`
	ShowLastUpdateAuthor bool   `yaml:"show_last_update_author,omitempty"`

	TOCMinLevel int `yaml:"toc_min_heading_level,omitempty"`
	TOCMaxLevel int `yaml:"toc_max_heading_level,omitempty"`
}

// IncludeCurrent reports whether the unreleased docs are built.
func (d DocsConfig) IncludeCurrent() bool {
	return d.IncludeCurrentVersion == nil || *d.IncludeCurrentVersion
}

// BuildConfig holds rendering switches.
type BuildConfig struct {
	UnsafeHTML  bool `yaml:"unsafe_html,omitempty"`
	Development bool `yaml:"development,omitempty"`
}

// OutputConfig describes where the site is written.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"`
}

// PreviewConfig configures the preview server.
type PreviewConfig struct {
	Host        string        `yaml:"host,omitempty"`
	Port        int           `yaml:"port,omitempty"`
	MetricsPath string        `yaml:"metrics_path,omitempty"`
	Debounce    time.Duration `yaml:"debounce,omitempty"`
	// RebuildInterval also rebuilds on a timer so new commits show up in
	// last-update info; zero disables it.
	RebuildInterval time.Duration `yaml:"rebuild_interval,omitempty"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// Load reads, expands, normalizes, defaults and validates a configuration file.
// .env and .env.local next to the file are loaded first; ${VAR} references
// in the file are expanded from the environment.
func Load(configPath string) (*Config, error) {
	root, err := filepath.Abs(filepath.Dir(configPath))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "resolve configuration directory").Build()
	}
	loadEnvFiles(root)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.NotFoundError("configuration file not found").
			WithContext("path", configPath).
			UserAction().
			Build()
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			WithContext("path", configPath).
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.Root = root
	if err := cfg.loadVersionsFile(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes configuration YAML, expands environment variables, then
// normalizes and applies defaults. It does not validate.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").Build()
	}
	if err := normalize(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Resolve makes p absolute against the configuration root.
func (c *Config) Resolve(p string) string {
	if filepath.IsAbs(p) || c.Root == "" {
		return p
	}
	return filepath.Join(c.Root, p)
}

// DocsDir is the directory of the current version's docs.
func (c *Config) DocsDir() string { return c.Resolve(c.Docs.Path) }

// VersionedDir is the directory holding version-<name> directories.
func (c *Config) VersionedDir() string { return c.Resolve(c.Docs.VersionedPath) }

// VersionDir is the content directory of the named version.
func (c *Config) VersionDir(name string) string {
	if name == "current" {
		return c.DocsDir()
	}
	return filepath.Join(c.VersionedDir(), "version-"+name)
}

// OutputDir is the directory the site is written to.
func (c *Config) OutputDir() string { return c.Resolve(c.Output.Directory) }

// Location returns the time zone dates are rendered in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Site.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// loadVersionsFile fills Docs.Versions from the versions file when the list
// is not configured inline. A missing file means no released versions.
func (c *Config) loadVersionsFile() error {
	if len(c.Docs.Versions) > 0 || c.Docs.VersionsFile == "" {
		return nil
	}
	path := c.Resolve(c.Docs.VersionsFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to read versions file").
			WithContext("path", path).
			Build()
	}
	// versions.json is a JSON array, which yaml.v3 reads as a flow sequence.
	var versions []string
	if err := yaml.Unmarshal(data, &versions); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid versions file").
			WithContext("path", path).
			Build()
	}
	c.Docs.Versions = versions
	return nil
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			UserAction().
			Build()
	}

	include := true
	example := Config{
		Site: SiteConfig{
			URL:            "https://reactnative.cn",
			BaseURL:        "/",
			Title:          "React Native 中文网",
			TitleDelimiter: "|",
			Locale:         "zh-CN",
			Timezone:       "Asia/Shanghai",
		},
		Docs: DocsConfig{
			Path:                  "docs",
			VersionedPath:         "versioned_docs",
			VersionsFile:          "versions.json",
			RouteBasePath:         "docs",
			IncludeCurrentVersion: &include,
			CurrentLabel:          "Next",
			EditURL:               "https://github.com/reactnativecn/react-native-website/edit/production/cnwebsite/",
			ShowLastUpdateTime:    true,
			ShowLastUpdateAuthor:  true,
			TOCMinLevel:           2,
			TOCMaxLevel:           3,
		},
		Output:  OutputConfig{Directory: "build", Clean: true},
		Preview: PreviewConfig{Host: "127.0.0.1", Port: 3000, MetricsPath: "/metrics", Debounce: defaultDebounce},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
