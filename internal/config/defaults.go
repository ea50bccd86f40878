package config

import (
	"strings"
	"time"

	"github.com/Freddy-Gong/react-native-website/internal/foundation/errors"
)

const defaultDebounce = 300 * time.Millisecond

// normalize canonicalizes enum spellings and path-like fields.
func normalize(cfg *Config) error {
	level, err := logLevelNormalizer.NormalizeWithError(string(cfg.Logging.Level))
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "logging.level").Build()
	}
	cfg.Logging.Level = level

	format, err := logFormatNormalizer.NormalizeWithError(string(cfg.Logging.Format))
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "logging.format").Build()
	}
	cfg.Logging.Format = format

	cfg.Site.URL = strings.TrimSuffix(strings.TrimSpace(cfg.Site.URL), "/")
	cfg.Site.BaseURL = normalizeBaseURL(cfg.Site.BaseURL)
	cfg.Docs.RouteBasePath = strings.Trim(strings.TrimSpace(cfg.Docs.RouteBasePath), "/")
	for i, v := range cfg.Docs.Versions {
		cfg.Docs.Versions[i] = strings.TrimSpace(v)
	}
	return nil
}

// normalizeBaseURL ensures a leading and trailing slash.
func normalizeBaseURL(s string) string {
	s = strings.Trim(strings.TrimSpace(s), "/")
	if s == "" {
		return "/"
	}
	return "/" + s + "/"
}

func applyDefaults(cfg *Config) {
	if cfg.Site.Title == "" {
		cfg.Site.Title = "Documentation"
	}
	if cfg.Site.TitleDelimiter == "" {
		cfg.Site.TitleDelimiter = "|"
	}
	if cfg.Site.Locale == "" {
		cfg.Site.Locale = "zh-CN"
	}
	if cfg.Site.Timezone == "" {
		cfg.Site.Timezone = "UTC"
	}

	if cfg.Docs.Path == "" {
		cfg.Docs.Path = "docs"
	}
	if cfg.Docs.VersionedPath == "" {
		cfg.Docs.VersionedPath = "versioned_docs"
	}
	if cfg.Docs.VersionsFile == "" {
		cfg.Docs.VersionsFile = "versions.json"
	}
	if cfg.Docs.RouteBasePath == "" {
		cfg.Docs.RouteBasePath = "docs"
	}
	if cfg.Docs.CurrentLabel == "" {
		cfg.Docs.CurrentLabel = "Next"
	}
	if cfg.Docs.TOCMinLevel == 0 {
		cfg.Docs.TOCMinLevel = 2
	}
	if cfg.Docs.TOCMaxLevel == 0 {
		cfg.Docs.TOCMaxLevel = 3
	}

	if cfg.Output.Directory == "" {
		cfg.Output.Directory = "build"
		cfg.Output.Clean = true
	}

	if cfg.Preview.Host == "" {
		cfg.Preview.Host = "127.0.0.1"
	}
	if cfg.Preview.Port == 0 {
		cfg.Preview.Port = 3000
	}
	if cfg.Preview.MetricsPath == "" {
		cfg.Preview.MetricsPath = "/metrics"
	}
	if cfg.Preview.Debounce <= 0 {
		cfg.Preview.Debounce = defaultDebounce
	}
}
