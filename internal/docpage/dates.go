package docpage

import (
	"time"

	"golang.org/x/text/language"
)

// dateLayouts lists the supported short date layouts. The first entry is the
// fallback for unmatched locales.
var dateLayouts = []struct {
	tag    language.Tag
	layout string
}{
	{language.AmericanEnglish, "1/2/2006"},
	{language.MustParse("zh-CN"), "2006/1/2"},
	{language.MustParse("zh-TW"), "2006/1/2"},
	{language.Japanese, "2006/1/2"},
	{language.Korean, "2006. 1. 2."},
	{language.BritishEnglish, "02/01/2006"},
	{language.French, "02/01/2006"},
	{language.German, "2.1.2006"},
	{language.Russian, "02.01.2006"},
	{language.Spanish, "2/1/2006"},
	{language.MustParse("pt-BR"), "02/01/2006"},
}

var dateMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(dateLayouts))
	for i, l := range dateLayouts {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// FormatDate renders t as a short numeric date in the conventions of locale
// (a BCP 47 tag such as "zh-CN"). Unknown or invalid locales use en-US.
func FormatDate(t time.Time, locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return t.Format(dateLayouts[0].layout)
	}
	_, idx, _ := dateMatcher.Match(tag)
	return t.Format(dateLayouts[idx].layout)
}

// isoTimestamp formats t like JavaScript's Date.prototype.toISOString.
func isoTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
