package docpage

import "golang.org/x/text/language"

// Labels holds the fixed UI strings of the page.
type Labels struct {
	Version              string
	EditThisPage         string
	LastUpdated          string
	LastUpdatedBy        string
	SimulatedLastUpdate  string
	Previous             string
	Next                 string
	PaginatorAriaLabel   string
	UnreleasedVersion    string
	UnmaintainedVersion  string
	LatestVersionPrefix  string
	LatestVersionLink    string
	LatestVersionSuffix  string
	TwitterImageAltLabel string
}

// ChineseLabels are the zh-CN strings the site ships with.
func ChineseLabels() Labels {
	return Labels{
		Version:              "版本:",
		EditThisPage:         "改进文档",
		LastUpdated:          "最近更新",
		LastUpdatedBy:        "by",
		SimulatedLastUpdate:  "(Simulated during dev for better perf)",
		Previous:             "上一页",
		Next:                 "下一页",
		PaginatorAriaLabel:   "文档分页导航",
		UnreleasedVersion:    "这是尚未发布的版本文档：",
		UnmaintainedVersion:  "这是不再积极维护的旧版本文档：",
		LatestVersionPrefix:  "最新的文档请查看",
		LatestVersionLink:    "最新版本",
		LatestVersionSuffix:  "。",
		TwitterImageAltLabel: "Image for",
	}
}

// EnglishLabels are the en strings.
func EnglishLabels() Labels {
	return Labels{
		Version:              "Version:",
		EditThisPage:         "Edit this page",
		LastUpdated:          "Last updated",
		LastUpdatedBy:        "by",
		SimulatedLastUpdate:  "(Simulated during dev for better perf)",
		Previous:             "Previous",
		Next:                 "Next",
		PaginatorAriaLabel:   "Docs pages navigation",
		UnreleasedVersion:    "This is unreleased documentation for",
		UnmaintainedVersion:  "This is documentation for a version that is no longer actively maintained:",
		LatestVersionPrefix:  "For up-to-date documentation, see the",
		LatestVersionLink:    "latest version",
		LatestVersionSuffix:  ".",
		TwitterImageAltLabel: "Image for",
	}
}

var labelMatcher = language.NewMatcher([]language.Tag{language.Chinese, language.English})

// LabelsFor picks the label set closest to locale, defaulting to Chinese.
func LabelsFor(locale string) Labels {
	tag, err := language.Parse(locale)
	if err != nil {
		return ChineseLabels()
	}
	if _, idx, conf := labelMatcher.Match(tag); idx == 1 && conf != language.No {
		return EnglishLabels()
	}
	return ChineseLabels()
}
