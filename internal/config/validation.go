package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/Freddy-Gong/react-native-website/internal/foundation/errors"
)

// Validate checks the configuration after defaults are applied.
func (c *Config) Validate() error {
	for _, check := range []func() error{c.validateSite, c.validateDocs, c.validatePreview} {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateSite() error {
	if c.Site.URL != "" {
		u, err := url.Parse(c.Site.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return invalid("site.url", c.Site.URL, "must be an absolute http(s) URL")
		}
	}
	if _, err := language.Parse(c.Site.Locale); err != nil {
		return invalid("site.locale", c.Site.Locale, "is not a BCP 47 language tag")
	}
	if _, err := time.LoadLocation(c.Site.Timezone); err != nil {
		return invalid("site.timezone", c.Site.Timezone, "is not a known time zone")
	}
	return nil
}

func (c *Config) validateDocs() error {
	d := c.Docs
	if !d.IncludeCurrent() && len(d.Versions) == 0 {
		return errors.ValidationError("no versions to build: include_current_version is false and no released versions are configured").
			UserAction().
			Build()
	}
	seen := make(map[string]bool, len(d.Versions))
	for _, v := range d.Versions {
		switch {
		case v == "":
			return invalid("docs.versions", v, "contains an empty version name")
		case v == "current" || v == "next":
			return invalid("docs.versions", v, "is a reserved version name")
		case strings.ContainsAny(v, `/\`):
			return invalid("docs.versions", v, "must not contain path separators")
		case seen[v]:
			return invalid("docs.versions", v, "is listed twice")
		}
		seen[v] = true
	}
	if d.LastVersion != "" && !seen[d.LastVersion] && !(d.LastVersion == "current" && d.IncludeCurrent()) {
		return invalid("docs.last_version", d.LastVersion, "is not a built version")
	}
	if d.TOCMinLevel < 2 || d.TOCMaxLevel > 6 || d.TOCMinLevel > d.TOCMaxLevel {
		return invalid("docs.toc_min_heading_level", fmt.Sprintf("%d-%d", d.TOCMinLevel, d.TOCMaxLevel), "must satisfy 2 <= min <= max <= 6")
	}
	if d.EditURL != "" {
		if u, err := url.Parse(d.EditURL); err != nil || u.Scheme == "" {
			return invalid("docs.edit_url", d.EditURL, "must be an absolute URL")
		}
	}
	return nil
}

func (c *Config) validatePreview() error {
	if c.Preview.Port < 1 || c.Preview.Port > 65535 {
		return invalid("preview.port", fmt.Sprint(c.Preview.Port), "must be between 1 and 65535")
	}
	if !strings.HasPrefix(c.Preview.MetricsPath, "/") {
		return invalid("preview.metrics_path", c.Preview.MetricsPath, "must start with /")
	}
	if c.Preview.RebuildInterval < 0 {
		return invalid("preview.rebuild_interval", c.Preview.RebuildInterval.String(), "must not be negative")
	}
	return nil
}

func invalid(field, value, reason string) error {
	return errors.ValidationError(fmt.Sprintf("%s %s", field, reason)).
		WithContext("field", field).
		WithContext("value", value).
		UserAction().
		Build()
}
